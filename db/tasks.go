// ABOUTME: Daily task database operations
// ABOUTME: Task generation, listing by day, and completion
package db

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/kindling-crm/kindling/models"
)

const taskColumns = `id, due_date, task_type, description, completed, contact_id, company_id, created_at`

func CreateDailyTask(db *sql.DB, task *models.DailyTask) error {
	task.ID = uuid.New()
	task.CreatedAt = time.Now()

	_, err := db.Exec(`
		INSERT INTO daily_tasks (`+taskColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, task.ID.String(), formatDate(task.DueDate), task.TaskType, task.Description,
		task.Completed, uuidPtr(task.ContactID), uuidPtr(task.CompanyID), task.CreatedAt)

	return err
}

// TasksForDate returns the tasks due on the given day in creation order.
func TasksForDate(db *sql.DB, day time.Time) ([]models.DailyTask, error) {
	rows, err := db.Query(`
		SELECT `+taskColumns+` FROM daily_tasks
		WHERE due_date = ?
		ORDER BY created_at ASC
	`, formatDate(day))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.DailyTask
	for rows.Next() {
		var t models.DailyTask
		var contactID, companyID sql.NullString
		if err := rows.Scan(&t.ID, &t.DueDate, &t.TaskType, &t.Description, &t.Completed,
			&contactID, &companyID, &t.CreatedAt); err != nil {
			return nil, err
		}
		if contactID.Valid {
			if id, err := uuid.Parse(contactID.String); err == nil {
				t.ContactID = &id
			}
		}
		if companyID.Valid {
			if id, err := uuid.Parse(companyID.String); err == nil {
				t.CompanyID = &id
			}
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// HasTasksForDate reports whether any tasks exist for the given day.
func HasTasksForDate(db *sql.DB, day time.Time) (bool, error) {
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM daily_tasks WHERE due_date = ?`, formatDate(day)).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetDailyTask returns a task by id, nil when not found.
func GetDailyTask(db *sql.DB, id uuid.UUID) (*models.DailyTask, error) {
	row := db.QueryRow(`SELECT `+taskColumns+` FROM daily_tasks WHERE id = ?`, id.String())

	var t models.DailyTask
	var contactID, companyID sql.NullString
	err := row.Scan(&t.ID, &t.DueDate, &t.TaskType, &t.Description, &t.Completed,
		&contactID, &companyID, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if contactID.Valid {
		if cid, err := uuid.Parse(contactID.String); err == nil {
			t.ContactID = &cid
		}
	}
	if companyID.Valid {
		if cid, err := uuid.Parse(companyID.String); err == nil {
			t.CompanyID = &cid
		}
	}
	return &t, nil
}
