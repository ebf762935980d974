package scanning

import (
	"context"
	"fmt"
)

// Recognizer turns a workout screenshot into plain text
type Recognizer interface {
	// Recognize returns the text found in the image, one visual line per line
	Recognize(ctx context.Context, imageData []byte, contentType string) (string, error)
	// Name identifies the engine in logs and errors
	Name() string
	// Close releases any resources held by the engine
	Close() error
}

// RecognitionError reports that an engine could not produce text from an image.
// When recognition fails no parsing happens.
type RecognitionError struct {
	Engine string
	Err    error
}

func (e *RecognitionError) Error() string {
	return fmt.Sprintf("%s recognition failed: %v", e.Engine, e.Err)
}

func (e *RecognitionError) Unwrap() error {
	return e.Err
}

// Fail wraps err as a RecognitionError for engine
func Fail(engine string, err error) error {
	if err == nil {
		return nil
	}
	return &RecognitionError{Engine: engine, Err: err}
}
