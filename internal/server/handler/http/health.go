package http

import (
	"database/sql"
	"net/http"

	"github.com/fitkeeper/fittrack/internal/db"
)

// HealthHandler serves liveness and database health endpoints.
type HealthHandler struct {
	// DB is the database handle checked by DBCheck.
	DB *sql.DB
}

// Health reports that the service is running.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// DBCheck verifies the database connection and the goals table.
func (h *HealthHandler) DBCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := db.CheckConnection(ctx, h.DB); err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	if err := db.CheckTableExists(ctx, h.DB, "goals"); err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"database_status": "healthy"})
}
