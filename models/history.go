package models

import (
	"database/sql"
	"time"
)

// GenerationRecord is one past resume generation: the job description it
// was tailored to, the ATS score the analysis produced, and where the
// rendered artifact lives.
type GenerationRecord struct {
	ID             int       `json:"id"`
	UserID         int       `json:"-"`
	JobDescription string    `json:"job_description"`
	ATSScore       float64   `json:"ats_score"`
	Filename       string    `json:"filename"`
	StorageKey     string    `json:"storage_key,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type HistoryModel struct {
	DB *sql.DB
}

func NewHistoryModel(db *sql.DB) *HistoryModel {
	return &HistoryModel{DB: db}
}

func (m *HistoryModel) Record(userID int, jobDescription string, atsScore float64, filename, storageKey string) (*GenerationRecord, error) {
	rec := &GenerationRecord{}
	query := `
		INSERT INTO resume_history (user_id, job_description, ats_score, filename, storage_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, job_description, ats_score, filename, storage_key, created_at
	`
	err := m.DB.QueryRow(query, userID, jobDescription, atsScore, filename, storageKey, time.Now()).Scan(
		&rec.ID, &rec.UserID, &rec.JobDescription, &rec.ATSScore, &rec.Filename, &rec.StorageKey, &rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Delete removes one record owned by the user and returns its storage
// key so the caller can clean up the archived artifact.
func (m *HistoryModel) Delete(userID, recordID int) (string, error) {
	var storageKey string
	err := m.DB.QueryRow(`
		DELETE FROM resume_history WHERE id = $1 AND user_id = $2
		RETURNING storage_key
	`, recordID, userID).Scan(&storageKey)
	if err != nil {
		return "", err
	}
	return storageKey, nil
}

func (m *HistoryModel) ListByUser(userID int, limit int) ([]GenerationRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := m.DB.Query(`
		SELECT id, user_id, job_description, ats_score, filename, storage_key, created_at
		FROM resume_history WHERE user_id = $1
		ORDER BY created_at DESC LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []GenerationRecord{}
	for rows.Next() {
		var rec GenerationRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.JobDescription, &rec.ATSScore, &rec.Filename, &rec.StorageKey, &rec.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
