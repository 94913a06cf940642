package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Consultation is the stored outcome of one routed message. The message
// text itself is never stored.
type Consultation struct {
	ID        string    `json:"id"`
	Mode      string    `json:"mode"`
	Symptoms  []string  `json:"symptoms"`
	Disease   string    `json:"disease,omitempty"`
	Fallback  string    `json:"fallback,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// SaveConsultation records the outcome of one routed message
func (db *DB) SaveConsultation(ctx context.Context, mode string, symptoms []string, disease, fallbackKind string) error {
	query := `
		INSERT INTO consultations (id, mode, symptoms, disease, fallback)
		VALUES ($1, $2, $3, $4, $5)
	`

	if symptoms == nil {
		symptoms = []string{}
	}

	_, err := db.ExecContext(ctx, query,
		uuid.New().String(), mode, pq.Array(symptoms), nullString(disease), nullString(fallbackKind),
	)
	if err != nil {
		return fmt.Errorf("failed to save consultation: %w", err)
	}
	return nil
}

// RecentConsultations returns the newest consultations first
func (db *DB) RecentConsultations(ctx context.Context, limit int) ([]Consultation, error) {
	query := `
		SELECT id, mode, symptoms, disease, fallback, created_at
		FROM consultations
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query consultations: %w", err)
	}
	defer rows.Close()

	consultations := []Consultation{}
	for rows.Next() {
		var (
			c                 Consultation
			disease, fallback sql.NullString
		)
		if err := rows.Scan(&c.ID, &c.Mode, pq.Array(&c.Symptoms), &disease, &fallback, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan consultation: %w", err)
		}
		c.Disease = disease.String
		c.Fallback = fallback.String
		consultations = append(consultations, c)
	}

	return consultations, rows.Err()
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
