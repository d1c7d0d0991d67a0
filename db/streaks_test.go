// ABOUTME: Tests for streak tracking and task completion
// ABOUTME: Covers increment, same-day idempotence, and gap resets
package db

import (
	"testing"
	"time"

	"github.com/kindling-crm/kindling/models"
)

func TestGetStreakLazyCreate(t *testing.T) {
	db := setupTestDB(t)

	streak, err := GetStreak(db)
	if err != nil {
		t.Fatalf("GetStreak failed: %v", err)
	}
	if streak.CurrentStreak != 0 || streak.LongestStreak != 0 || streak.TotalTasksCompleted != 0 {
		t.Errorf("Expected zeroed streak, got %+v", streak)
	}
	if streak.LastActivityDate != nil {
		t.Error("Expected no last activity date on fresh streak")
	}

	// Second read hits the existing row
	again, err := GetStreak(db)
	if err != nil {
		t.Fatalf("GetStreak failed on second read: %v", err)
	}
	if again.CurrentStreak != 0 {
		t.Errorf("Expected zero streak, got %d", again.CurrentStreak)
	}
}

func TestCompleteTaskStartsStreak(t *testing.T) {
	db := setupTestDB(t)
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	task := &models.DailyTask{DueDate: now, TaskType: models.TaskReachOut, Description: "Reach out"}
	if err := CreateDailyTask(db, task); err != nil {
		t.Fatalf("CreateDailyTask failed: %v", err)
	}

	streak, err := CompleteTask(db, task.ID, now)
	if err != nil {
		t.Fatalf("CompleteTask failed: %v", err)
	}
	if streak.CurrentStreak != 1 {
		t.Errorf("Expected streak 1, got %d", streak.CurrentStreak)
	}
	if streak.LongestStreak != 1 {
		t.Errorf("Expected longest 1, got %d", streak.LongestStreak)
	}
	if streak.TotalTasksCompleted != 1 {
		t.Errorf("Expected 1 total, got %d", streak.TotalTasksCompleted)
	}

	completed, err := GetDailyTask(db, task.ID)
	if err != nil {
		t.Fatalf("GetDailyTask failed: %v", err)
	}
	if !completed.Completed {
		t.Error("Task not marked completed")
	}
}

func TestCompleteTaskSameDayKeepsStreak(t *testing.T) {
	db := setupTestDB(t)
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	first := &models.DailyTask{DueDate: now, TaskType: models.TaskReachOut, Description: "One"}
	second := &models.DailyTask{DueDate: now, TaskType: models.TaskFollowUp, Description: "Two"}
	for _, task := range []*models.DailyTask{first, second} {
		if err := CreateDailyTask(db, task); err != nil {
			t.Fatalf("CreateDailyTask failed: %v", err)
		}
	}

	if _, err := CompleteTask(db, first.ID, now); err != nil {
		t.Fatalf("CompleteTask failed: %v", err)
	}
	streak, err := CompleteTask(db, second.ID, now.Add(2*time.Hour))
	if err != nil {
		t.Fatalf("CompleteTask failed: %v", err)
	}

	if streak.CurrentStreak != 1 {
		t.Errorf("Second completion on same day should keep streak at 1, got %d", streak.CurrentStreak)
	}
	if streak.TotalTasksCompleted != 2 {
		t.Errorf("Expected 2 total, got %d", streak.TotalTasksCompleted)
	}
}

func TestCompleteTaskConsecutiveDaysIncrement(t *testing.T) {
	db := setupTestDB(t)
	day1 := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)
	day3 := day2.AddDate(0, 0, 1)

	for i, day := range []time.Time{day1, day2, day3} {
		task := &models.DailyTask{DueDate: day, TaskType: models.TaskReachOut, Description: "Daily"}
		if err := CreateDailyTask(db, task); err != nil {
			t.Fatalf("CreateDailyTask failed: %v", err)
		}
		streak, err := CompleteTask(db, task.ID, day)
		if err != nil {
			t.Fatalf("CompleteTask failed: %v", err)
		}
		if streak.CurrentStreak != i+1 {
			t.Errorf("Day %d: expected streak %d, got %d", i+1, i+1, streak.CurrentStreak)
		}
	}
}

func TestCompleteTaskGapResetsStreak(t *testing.T) {
	db := setupTestDB(t)
	day1 := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)
	day4 := day1.AddDate(0, 0, 3) // one-day gap after day2

	for _, day := range []time.Time{day1, day2} {
		task := &models.DailyTask{DueDate: day, TaskType: models.TaskReachOut, Description: "Daily"}
		if err := CreateDailyTask(db, task); err != nil {
			t.Fatalf("CreateDailyTask failed: %v", err)
		}
		if _, err := CompleteTask(db, task.ID, day); err != nil {
			t.Fatalf("CompleteTask failed: %v", err)
		}
	}

	task := &models.DailyTask{DueDate: day4, TaskType: models.TaskReachOut, Description: "Back again"}
	if err := CreateDailyTask(db, task); err != nil {
		t.Fatalf("CreateDailyTask failed: %v", err)
	}
	streak, err := CompleteTask(db, task.ID, day4)
	if err != nil {
		t.Fatalf("CompleteTask failed: %v", err)
	}

	if streak.CurrentStreak != 1 {
		t.Errorf("Expected streak reset to 1 after gap, got %d", streak.CurrentStreak)
	}
	if streak.LongestStreak != 2 {
		t.Errorf("Expected longest streak 2 preserved, got %d", streak.LongestStreak)
	}
	if streak.TotalTasksCompleted != 3 {
		t.Errorf("Expected 3 total, got %d", streak.TotalTasksCompleted)
	}
}

func TestCompleteTaskAlreadyCompleted(t *testing.T) {
	db := setupTestDB(t)
	now := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)

	task := &models.DailyTask{DueDate: now, TaskType: models.TaskReachOut, Description: "Once only"}
	if err := CreateDailyTask(db, task); err != nil {
		t.Fatalf("CreateDailyTask failed: %v", err)
	}

	if _, err := CompleteTask(db, task.ID, now); err != nil {
		t.Fatalf("CompleteTask failed: %v", err)
	}
	streak, err := CompleteTask(db, task.ID, now)
	if err != nil {
		t.Fatalf("Repeat CompleteTask failed: %v", err)
	}

	if streak.TotalTasksCompleted != 1 {
		t.Errorf("Repeat completion must not count twice, got %d total", streak.TotalTasksCompleted)
	}
	if streak.CurrentStreak != 1 {
		t.Errorf("Repeat completion must not move streak, got %d", streak.CurrentStreak)
	}
}
