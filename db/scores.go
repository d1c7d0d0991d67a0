// ABOUTME: Daily network-strength snapshots for week-over-week deltas
// ABOUTME: One row per calendar day, upserted on dashboard load
package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/kindling-crm/kindling/models"
)

// RecordScoreSnapshot upserts the network strength for the given day.
// Repeated loads on the same day keep the latest value.
func RecordScoreSnapshot(db *sql.DB, day time.Time, networkStrength int) error {
	_, err := db.Exec(`
		INSERT INTO score_snapshots (snapshot_date, network_strength)
		VALUES (?, ?)
		ON CONFLICT(snapshot_date) DO UPDATE SET network_strength = excluded.network_strength
	`, formatDate(day), networkStrength)
	if err != nil {
		return fmt.Errorf("failed to record score snapshot: %w", err)
	}
	return nil
}

// StrengthAsOf returns the most recent network strength recorded on or
// before the given day, or nil when no snapshot that old exists.
func StrengthAsOf(db *sql.DB, day time.Time) (*int, error) {
	var strength int
	err := db.QueryRow(`
		SELECT network_strength FROM score_snapshots
		WHERE snapshot_date <= ?
		ORDER BY snapshot_date DESC
		LIMIT 1
	`, formatDate(day)).Scan(&strength)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &strength, nil
}

// ListScoreSnapshots returns snapshots newest-first, up to limit.
func ListScoreSnapshots(db *sql.DB, limit int) ([]models.ScoreSnapshot, error) {
	rows, err := db.Query(`
		SELECT snapshot_date, network_strength FROM score_snapshots
		ORDER BY snapshot_date DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list score snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []models.ScoreSnapshot
	for rows.Next() {
		var snap models.ScoreSnapshot
		if err := rows.Scan(&snap.Date, &snap.NetworkStrength); err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snap)
	}
	return snapshots, rows.Err()
}
