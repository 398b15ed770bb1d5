package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/balkashynov/horizon/internal/models"
)

// Store is what the HTTP surface needs from the persistence layer
type Store interface {
	ListAll(ctx context.Context) ([]models.Task, error)
	ListOrdered(ctx context.Context) ([]models.Task, error)
	Create(ctx context.Context, req models.CreateTaskRequest) (*models.Task, error)
	UpdateByID(ctx context.Context, id string, patch models.TaskPatch) (*models.Task, error)
	DeleteByID(ctx context.Context, id string) error
}

// Error messages returned to clients. Causes are only logged.
const (
	msgFetchFailed  = "Error fetching tasks"
	msgCreateFailed = "Error creating task"
	msgUpdateFailed = "Error updating task"
	msgDeleteFailed = "Error deleting task"
	msgDeleted      = "Task deleted successfully"
)

type Server struct {
	store  Store
	logger *log.Logger
}

func NewServer(store Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{store: store, logger: logger}
}

// Handler returns the router wrapped in the standard middleware chain
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/api/tasks", s.listTasks).Methods(http.MethodGet)
	r.HandleFunc("/api/tasks", s.createTask).Methods(http.MethodPost)
	r.HandleFunc("/api/tasks", s.updateTask).Methods(http.MethodPut)
	r.HandleFunc("/api/tasks/{id}", s.deleteTask).Methods(http.MethodDelete)
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}).Methods(http.MethodGet)

	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return Chain(r,
		WithRequestID,
		WithRecover(s.logger),
		WithAccessLog(s.logger),
	)
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Printf("shutdown error: %v", err)
		}
	}()

	s.logger.Printf("listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// GET /api/tasks
func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
	var (
		tasks []models.Task
		err   error
	)
	if r.URL.Query().Get("order") == "position" {
		tasks, err = s.store.ListOrdered(r.Context())
	} else {
		tasks, err = s.store.ListAll(r.Context())
	}
	if err != nil {
		s.fail(w, r, msgFetchFailed, err)
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

// POST /api/tasks
func (s *Server) createTask(w http.ResponseWriter, r *http.Request) {
	var in models.CreateTaskRequest
	if err := decodeJSON(r, &in); err != nil {
		s.fail(w, r, msgCreateFailed, err)
		return
	}

	task, err := s.store.Create(r.Context(), in)
	if err != nil {
		s.fail(w, r, msgCreateFailed, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// updateRequest is the full record sent on PUT. Only id selects the target;
// revision and timestamps are accepted and ignored.
type updateRequest struct {
	ID string `json:"id"`
	models.TaskPatch
}

// PUT /api/tasks
func (s *Server) updateTask(w http.ResponseWriter, r *http.Request) {
	var in updateRequest
	if err := decodeJSON(r, &in); err != nil {
		s.fail(w, r, msgUpdateFailed, err)
		return
	}
	if in.ID == "" {
		s.fail(w, r, msgUpdateFailed, errors.New("missing id"))
		return
	}

	task, err := s.store.UpdateByID(r.Context(), in.ID, in.TaskPatch)
	if err != nil {
		s.fail(w, r, msgUpdateFailed, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// DELETE /api/tasks/{id}
func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := s.store.DeleteByID(r.Context(), id); err != nil {
		s.fail(w, r, msgDeleteFailed, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": msgDeleted})
}

// fail logs the cause and answers with the generic 500
func (s *Server) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	s.logger.Printf("%s %s request_id=%s: %s: %v", r.Method, r.URL.Path, RequestIDFromContext(r.Context()), msg, err)
	writeErr(w, http.StatusInternalServerError, msg)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func decodeJSON(r *http.Request, out any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(out)
}
