// ABOUTME: Tests for daily network-strength snapshots
// ABOUTME: Covers the per-day upsert and week-ago lookups
package db

import (
	"testing"
	"time"
)

func TestRecordScoreSnapshotUpsert(t *testing.T) {
	db := setupTestDB(t)
	day := time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC)

	if err := RecordScoreSnapshot(db, day, 40); err != nil {
		t.Fatalf("RecordScoreSnapshot failed: %v", err)
	}
	// Same day again; the later value wins
	if err := RecordScoreSnapshot(db, day.Add(6*time.Hour), 55); err != nil {
		t.Fatalf("RecordScoreSnapshot upsert failed: %v", err)
	}

	snapshots, err := ListScoreSnapshots(db, 10)
	if err != nil {
		t.Fatalf("ListScoreSnapshots failed: %v", err)
	}
	if len(snapshots) != 1 {
		t.Fatalf("Expected 1 snapshot after upsert, got %d", len(snapshots))
	}
	if snapshots[0].NetworkStrength != 55 {
		t.Errorf("Expected strength 55, got %d", snapshots[0].NetworkStrength)
	}
}

func TestStrengthAsOf(t *testing.T) {
	db := setupTestDB(t)
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	if err := RecordScoreSnapshot(db, base, 30); err != nil {
		t.Fatalf("RecordScoreSnapshot failed: %v", err)
	}
	if err := RecordScoreSnapshot(db, base.AddDate(0, 0, 5), 45); err != nil {
		t.Fatalf("RecordScoreSnapshot failed: %v", err)
	}

	// Exact hit
	got, err := StrengthAsOf(db, base)
	if err != nil {
		t.Fatalf("StrengthAsOf failed: %v", err)
	}
	if got == nil || *got != 30 {
		t.Errorf("Expected 30 on exact day, got %v", got)
	}

	// Between snapshots the older one applies
	got, err = StrengthAsOf(db, base.AddDate(0, 0, 3))
	if err != nil {
		t.Fatalf("StrengthAsOf failed: %v", err)
	}
	if got == nil || *got != 30 {
		t.Errorf("Expected 30 between snapshots, got %v", got)
	}

	// After the newest snapshot
	got, err = StrengthAsOf(db, base.AddDate(0, 0, 10))
	if err != nil {
		t.Fatalf("StrengthAsOf failed: %v", err)
	}
	if got == nil || *got != 45 {
		t.Errorf("Expected 45 after latest snapshot, got %v", got)
	}

	// Before any history
	got, err = StrengthAsOf(db, base.AddDate(0, 0, -1))
	if err != nil {
		t.Fatalf("StrengthAsOf failed: %v", err)
	}
	if got != nil {
		t.Errorf("Expected nil before history, got %v", *got)
	}
}
