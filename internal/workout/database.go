package workout

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

const (
	workoutBucketName = "workouts"
	batchBucketName   = "batches"
)

// ErrNotFound is returned when a workout or batch does not exist
var ErrNotFound = errors.New("not found")

// DB defines the interface for workout history persistence
type DB interface {
	SaveWorkout(workout *Workout) error
	GetWorkout(id string) (*Workout, error)
	ListWorkouts() ([]*Workout, error)
	DeleteWorkout(id string) error

	SaveBatch(batch *Batch) error
	GetBatch(id string) (*Batch, error)
	ListBatches() ([]*Batch, error)

	Close() error
}

// BoltDB implements the DB interface using BoltDB
type BoltDB struct {
	db *bbolt.DB
}

// NewBoltDB opens (or creates) the database at path
func NewBoltDB(path string) (*BoltDB, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening boltdb: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range []string{workoutBucketName, batchBucketName} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating buckets: %w", err)
	}

	return &BoltDB{db: db}, nil
}

func (b *BoltDB) put(bucketName, id string, v any) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshaling %s: %w", bucketName, err)
		}
		return tx.Bucket([]byte(bucketName)).Put([]byte(id), data)
	})
}

func (b *BoltDB) get(bucketName, id string, v any) error {
	return b.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket([]byte(bucketName)).Get([]byte(id))
		if data == nil {
			return fmt.Errorf("%s %s: %w", bucketName, id, ErrNotFound)
		}
		return json.Unmarshal(data, v)
	})
}

// SaveWorkout inserts or replaces a workout
func (b *BoltDB) SaveWorkout(workout *Workout) error {
	return b.put(workoutBucketName, workout.ID, workout)
}

// GetWorkout retrieves a workout by ID
func (b *BoltDB) GetWorkout(id string) (*Workout, error) {
	var workout Workout
	if err := b.get(workoutBucketName, id, &workout); err != nil {
		return nil, err
	}
	return &workout, nil
}

// ListWorkouts returns all workouts in key order
func (b *BoltDB) ListWorkouts() ([]*Workout, error) {
	workouts := make([]*Workout, 0)
	err := b.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(workoutBucketName)).ForEach(func(k, v []byte) error {
			var workout Workout
			if err := json.Unmarshal(v, &workout); err != nil {
				return fmt.Errorf("unmarshaling workout %s: %w", k, err)
			}
			workouts = append(workouts, &workout)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return workouts, nil
}

// DeleteWorkout removes a workout; deleting a missing ID is not an error
func (b *BoltDB) DeleteWorkout(id string) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(workoutBucketName)).Delete([]byte(id))
	})
}

// SaveBatch inserts or replaces a batch
func (b *BoltDB) SaveBatch(batch *Batch) error {
	return b.put(batchBucketName, batch.ID, batch)
}

// GetBatch retrieves a batch by ID
func (b *BoltDB) GetBatch(id string) (*Batch, error) {
	var batch Batch
	if err := b.get(batchBucketName, id, &batch); err != nil {
		return nil, err
	}
	return &batch, nil
}

// ListBatches returns all batches in key order
func (b *BoltDB) ListBatches() ([]*Batch, error) {
	batches := make([]*Batch, 0)
	err := b.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(batchBucketName)).ForEach(func(k, v []byte) error {
			var batch Batch
			if err := json.Unmarshal(v, &batch); err != nil {
				return fmt.Errorf("unmarshaling batch %s: %w", k, err)
			}
			batches = append(batches, &batch)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return batches, nil
}

// Close closes the database
func (b *BoltDB) Close() error {
	return b.db.Close()
}
