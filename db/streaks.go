// ABOUTME: Streak tracking with day-granularity increment/reset logic
// ABOUTME: Task completion and the streak update run in one transaction
package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kindling-crm/kindling/models"
)

// GetStreak returns the streak row, creating it lazily on first read.
func GetStreak(db *sql.DB) (*models.Streak, error) {
	streak, err := readStreak(db)
	if err == sql.ErrNoRows {
		if _, err := db.Exec(`INSERT INTO streaks (id) VALUES (1)`); err != nil {
			return nil, fmt.Errorf("failed to create streak row: %w", err)
		}
		return &models.Streak{}, nil
	}
	if err != nil {
		return nil, err
	}
	return streak, nil
}

// CompleteTask marks a daily task complete and updates the streak in the
// same transaction. Completing a second task on the same day leaves the
// streak untouched; a gap since the last activity day resets it to 1.
// Returns the updated streak.
func CompleteTask(db *sql.DB, taskID uuid.UUID, now time.Time) (*models.Streak, error) {
	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // Safe even after commit
	}()

	res, err := tx.Exec(`UPDATE daily_tasks SET completed = 1 WHERE id = ? AND completed = 0`, taskID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to complete task: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		// Already completed or unknown id; the streak must not move.
		streak, err := readStreakTx(tx)
		if err != nil && err != sql.ErrNoRows {
			return nil, err
		}
		if streak == nil {
			streak = &models.Streak{}
		}
		return streak, tx.Commit()
	}

	if _, err := tx.Exec(`INSERT OR IGNORE INTO streaks (id) VALUES (1)`); err != nil {
		return nil, fmt.Errorf("failed to ensure streak row: %w", err)
	}
	streak, err := readStreakTx(tx)
	if err != nil {
		return nil, err
	}

	today := formatDate(now)
	yesterday := formatDate(now.AddDate(0, 0, -1))

	switch {
	case streak.LastActivityDate != nil && formatDate(*streak.LastActivityDate) == today:
		// Second completion today; streak length unchanged.
	case streak.LastActivityDate != nil && formatDate(*streak.LastActivityDate) == yesterday:
		streak.CurrentStreak++
	default:
		streak.CurrentStreak = 1
	}
	if streak.CurrentStreak > streak.LongestStreak {
		streak.LongestStreak = streak.CurrentStreak
	}
	streak.TotalTasksCompleted++
	activity := dateOnly(now)
	streak.LastActivityDate = &activity

	_, err = tx.Exec(`
		UPDATE streaks
		SET current_streak = ?, longest_streak = ?, total_tasks_completed = ?, last_activity_date = ?
		WHERE id = 1
	`, streak.CurrentStreak, streak.LongestStreak, streak.TotalTasksCompleted, today)
	if err != nil {
		return nil, fmt.Errorf("failed to update streak: %w", err)
	}

	return streak, tx.Commit()
}

func readStreak(db *sql.DB) (*models.Streak, error) {
	return scanStreak(db.QueryRow(`
		SELECT current_streak, longest_streak, total_tasks_completed, last_activity_date
		FROM streaks WHERE id = 1
	`))
}

func readStreakTx(tx *sql.Tx) (*models.Streak, error) {
	return scanStreak(tx.QueryRow(`
		SELECT current_streak, longest_streak, total_tasks_completed, last_activity_date
		FROM streaks WHERE id = 1
	`))
}

func scanStreak(row rowScanner) (*models.Streak, error) {
	streak := &models.Streak{}
	var lastActivity sql.NullTime
	err := row.Scan(&streak.CurrentStreak, &streak.LongestStreak, &streak.TotalTasksCompleted, &lastActivity)
	if err != nil {
		return nil, err
	}
	if lastActivity.Valid {
		t := lastActivity.Time
		streak.LastActivityDate = &t
	}
	return streak, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
