package tasks

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"smart-task-backend/internal/auth"
	"smart-task-backend/internal/classifier"
)

const apiVersion = "1.0.0"

type errorResponse struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
	Status  int          `json:"status"`
}

// Routes registers the task API on mux. Mutating routes go through mw.
func Routes(mux *http.ServeMux, store *Store, c *classifier.Classifier, mw auth.Middleware) {
	mux.HandleFunc("GET /{$}", RootHandler())
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("POST /api/classify", ClassifyHandler(c))

	mux.HandleFunc("POST /api/tasks", mw.Wrap(CreateTaskHandler(store)))
	mux.HandleFunc("GET /api/tasks", ListTasksHandler(store))
	mux.HandleFunc("GET /api/tasks/{id}", GetTaskHandler(store))
	mux.HandleFunc("PATCH /api/tasks/{id}", mw.Wrap(UpdateTaskHandler(store)))
	mux.HandleFunc("DELETE /api/tasks/{id}", mw.Wrap(DeleteTaskHandler(store)))
}

func RootHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"message": "Smart Task Manager API",
			"status":  "running",
			"version": apiVersion,
		})
	}
}

// -------------------------------
// HANDLERS
// -------------------------------

func CreateTaskHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body CreateTaskRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json: "+err.Error(), nil)
			return
		}

		t, err := store.Create(r.Context(), body, auth.ActorFromContext(r.Context()))
		if err != nil {
			handleStoreError(w, err, "Failed to create task")
			return
		}
		writeJSON(w, http.StatusCreated, t)
	}
}

func ListTasksHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := listParamsFromQuery(r)
		if err != nil {
			handleStoreError(w, err, "Invalid parameters")
			return
		}

		res, err := store.List(r.Context(), p)
		if err != nil {
			handleStoreError(w, err, "Failed to fetch tasks")
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func GetTaskHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		res, err := store.GetWithHistory(r.Context(), id)
		if err != nil {
			handleNotFound(w, err, id, "Failed to fetch task")
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func UpdateTaskHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		var body UpdateTaskRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json: "+err.Error(), nil)
			return
		}

		t, err := store.Update(r.Context(), id, body, auth.ActorFromContext(r.Context()))
		if err != nil {
			handleNotFound(w, err, id, "Failed to update task")
			return
		}
		writeJSON(w, http.StatusOK, t)
	}
}

func DeleteTaskHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if err := store.Delete(r.Context(), id); err != nil {
			handleNotFound(w, err, id, "Failed to delete task")
			return
		}
		writeJSON(w, http.StatusOK, DeleteTaskResponse{
			Message: "Task deleted successfully",
			TaskID:  id,
		})
	}
}

// ClassifyHandler runs the classifier without storing anything.
func ClassifyHandler(c *classifier.Classifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body CreateTaskRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json: "+err.Error(), nil)
			return
		}
		if err := body.Normalize(); err != nil {
			handleStoreError(w, err, "Invalid task")
			return
		}
		writeJSON(w, http.StatusOK, c.Classify(body.Title, body.Description, body.DueDate))
	}
}

// -------------------------------
// HELPERS
// -------------------------------

func listParamsFromQuery(r *http.Request) (ListParams, error) {
	q := r.URL.Query()
	verr := &ValidationError{}

	p := ListParams{
		Search:    q.Get("search"),
		SortBy:    q.Get("sort_by"),
		SortOrder: q.Get("sort_order"),
	}
	if v := q.Get("status"); v != "" {
		s := Status(v)
		p.Status = &s
	}
	if v := q.Get("category"); v != "" {
		c, ok := classifier.ParseCategory(v)
		if !ok {
			verr.add("category", "invalid category: "+v)
		}
		p.Category = &c
	}
	if v := q.Get("priority"); v != "" {
		pr, ok := classifier.ParsePriority(v)
		if !ok {
			verr.add("priority", "invalid priority: "+v)
		}
		p.Priority = &pr
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			verr.add("limit", "must be between 1 and "+strconv.Itoa(MaxLimit))
		}
		p.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			verr.add("offset", "must be an integer")
		}
		p.Offset = n
	}
	return p, verr.orNil()
}

func handleNotFound(w http.ResponseWriter, err error, id, msg string) {
	if errors.Is(err, ErrNotFound) {
		writeError(w, http.StatusNotFound, "Task not found: "+id, nil)
		return
	}
	handleStoreError(w, err, msg)
}

func handleStoreError(w http.ResponseWriter, err error, msg string) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		writeError(w, http.StatusBadRequest, "Validation error", verr.Details)
		return
	}
	log.Printf("[WARN] %s: %v", msg, err)
	writeError(w, http.StatusInternalServerError, msg+": "+err.Error(), nil)
}

func writeError(w http.ResponseWriter, status int, msg string, details []FieldError) {
	writeJSON(w, status, errorResponse{Error: msg, Details: details, Status: status})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// LogRequests writes one line per request.
func LogRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Printf("%s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Microsecond))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}
