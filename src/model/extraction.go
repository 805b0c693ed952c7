// backend/src/model/extraction.go
package model

import (
	"database/sql"
	"fmt"
	"time"
)

// ExtractionRun is the audit record persisted for every extraction
// performed by the service.
type ExtractionRun struct {
	ID         int64     `json:"id"`
	DocumentID string    `json:"document_id"`
	Filename   string    `json:"filename,omitempty"`
	Mode       string    `json:"mode"`
	Engine     string    `json:"engine,omitempty"`
	Confidence float64   `json:"confidence_score"`
	ResultJSON string    `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}

// InsertExtractionRun persists one audit row. CreatedAt is stored as
// RFC3339 text so the sqlite driver round-trips it losslessly.
func InsertExtractionRun(db *sql.DB, run *ExtractionRun) error {
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	result, err := db.Exec(
		`INSERT INTO extraction_runs (document_id, filename, mode, engine, confidence_score, result_json, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.DocumentID, run.Filename, run.Mode, run.Engine, run.Confidence, run.ResultJSON,
		run.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert extraction run: %w", err)
	}
	if id, err := result.LastInsertId(); err == nil {
		run.ID = id
	}
	return nil
}

// ListRecentExtractionRuns returns the newest audit rows, up to limit.
func ListRecentExtractionRuns(db *sql.DB, limit int) ([]ExtractionRun, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.Query(
		`SELECT id, document_id, filename, mode, engine, confidence_score, result_json, created_at
		 FROM extraction_runs ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query extraction runs: %w", err)
	}
	defer rows.Close()

	var runs []ExtractionRun
	for rows.Next() {
		var run ExtractionRun
		var createdAt string
		if err := rows.Scan(&run.ID, &run.DocumentID, &run.Filename, &run.Mode, &run.Engine,
			&run.Confidence, &run.ResultJSON, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan extraction run: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			run.CreatedAt = t
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
