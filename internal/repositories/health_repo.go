package repositories

import (
	"database/sql"
	"time"
)

// HealthStatus mirrors the probe contract the dashboard frontend expects.
type HealthStatus struct {
	Status    string    `json:"status"` // LIVE or ERROR
	Count     int64     `json:"count"`  // registered accounts
	Timestamp time.Time `json:"timestamp"`
}

type HealthRepo interface {
	Probe() HealthStatus
}

type healthRepo struct {
	db *sql.DB
}

func NewHealthRepo(db *sql.DB) HealthRepo {
	return &healthRepo{db: db}
}

// Probe checks database liveness with a cheap count query. It never
// returns an error; failures degrade to an ERROR status.
func (r *healthRepo) Probe() HealthStatus {
	status := HealthStatus{
		Status:    "LIVE",
		Timestamp: time.Now().UTC(),
	}

	var count int64
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM accounts`).Scan(&count); err != nil {
		status.Status = "ERROR"
		return status
	}

	status.Count = count
	return status
}
