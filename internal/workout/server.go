package workout

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// Server handles HTTP requests for workouts and batches
type Server struct {
	service   *Service
	basicAuth BasicAuth
	log       *slog.Logger
	router    chi.Router
}

// NewServer creates a new Server with all routes configured
func NewServer(service *Service, basicAuth BasicAuth, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{
		service:   service,
		basicAuth: basicAuth,
		log:       log,
		router:    chi.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)
	s.router.Use(RequireAuth(s.basicAuth))

	s.router.Get("/", s.handleIndex)
	s.router.Get("/index.html", s.handleIndex)

	s.router.Route("/api/workouts", func(r chi.Router) {
		r.Get("/", s.handleListWorkouts)
		r.Post("/", s.handleUploadWorkout)
		r.Post("/text", s.handleConvertText)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetWorkout)
			r.Delete("/", s.handleDeleteWorkout)
			r.Get("/file", s.handleGetWorkoutFile)
			r.Get("/csv", s.handleExportCSV)
			r.Get("/fit", s.handleExportFIT)
		})
	})

	s.router.Route("/api/batches", func(r chi.Router) {
		r.Get("/", s.handleListBatches)
		r.Post("/", s.handleCreateBatch)
		r.Get("/{id}", s.handleGetBatch)
		r.Get("/{id}/csv", s.handleExportBatchCSV)
	})
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Start serves HTTP on addr until ctx is cancelled
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Error("Error shutting down server", "error", err)
		}
	}()

	s.log.Info("Starting server", "address", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
