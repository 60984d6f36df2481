package db

import (
	"fmt"

	"galmaetgil/internal/domain"
)

const insertCompletion = `
	INSERT INTO completions (user_id, course_id, completion_seconds, completed_at, cumulative_count)
	VALUES ($1, $2, $3, $4, $5)
`

// BatchRecordCompletions journals records in one transaction.
func (d *DB) BatchRecordCompletions(records []domain.CompletionRecord) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(insertCompletion)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.Exec(int64(r.UserID), int(r.CourseID), r.CompletionTimeSeconds, r.Date, r.CumulativeCount); err != nil {
			return fmt.Errorf("recording completion in batch: %w", err)
		}
	}

	return tx.Commit()
}
