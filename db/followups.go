// ABOUTME: Follow-up database operations
// ABOUTME: Scheduling, completion, and the due-today join used by the prioritizer
package db

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/kindling-crm/kindling/insights"
	"github.com/kindling-crm/kindling/models"
)

const followUpColumns = `id, contact_id, due_date, note, completed, completed_at, created_at`

func CreateFollowUp(db *sql.DB, followUp *models.FollowUp) error {
	followUp.ID = uuid.New()
	followUp.CreatedAt = time.Now()

	_, err := db.Exec(`
		INSERT INTO follow_ups (`+followUpColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, followUp.ID.String(), followUp.ContactID.String(), formatDate(followUp.DueDate),
		followUp.Note, followUp.Completed, followUp.CompletedAt, followUp.CreatedAt)

	return err
}

// ListFollowUps returns follow-ups ordered by due date. When pendingOnly is
// set, completed ones are excluded.
func ListFollowUps(db *sql.DB, pendingOnly bool) ([]models.FollowUp, error) {
	query := `SELECT ` + followUpColumns + ` FROM follow_ups ORDER BY due_date ASC`
	if pendingOnly {
		query = `SELECT ` + followUpColumns + ` FROM follow_ups WHERE completed = 0 ORDER BY due_date ASC`
	}

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectFollowUps(rows)
}

// DueFollowUps returns pending follow-ups due on the given day, joined to
// their contacts, in creation order.
func DueFollowUps(db *sql.DB, day time.Time) ([]insights.DueFollowUp, error) {
	rows, err := db.Query(`
		SELECT f.id, f.contact_id, f.due_date, f.note, f.completed, f.completed_at, f.created_at,
		       `+prefixedContactColumns("c")+`
		FROM follow_ups f
		INNER JOIN contacts c ON c.id = f.contact_id
		WHERE f.completed = 0 AND f.due_date = ?
		ORDER BY f.created_at ASC
	`, formatDate(day))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var due []insights.DueFollowUp
	for rows.Next() {
		var f models.FollowUp
		var completedAt sql.NullTime
		contact := &models.Contact{}
		var (
			companyID   sql.NullString
			lastContact sql.NullTime
			influence   sql.NullString
			spec        sql.NullString
			archivedAt  sql.NullTime
			contactType string
			warmth      string
		)

		err := rows.Scan(
			&f.ID, &f.ContactID, &f.DueDate, &f.Note, &f.Completed, &completedAt, &f.CreatedAt,
			&contact.ID, &contact.Name, &contact.Email, &contact.Company, &companyID,
			&contact.Role, &contact.Notes, &contact.LinkedInURL, &contactType, &warmth,
			&lastContact, &influence, &spec, &contact.IsArchived, &archivedAt,
			&contact.CreatedAt, &contact.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		if completedAt.Valid {
			t := completedAt.Time
			f.CompletedAt = &t
		}
		if err := hydrateContact(contact, companyID, lastContact, influence, spec, archivedAt, contactType, warmth); err != nil {
			return nil, err
		}

		due = append(due, insights.DueFollowUp{FollowUp: f, Contact: *contact})
	}
	return due, rows.Err()
}

// CompleteFollowUp sets or clears a follow-up's completed state.
func CompleteFollowUp(db *sql.DB, id uuid.UUID, completed bool) error {
	var completedAt interface{}
	if completed {
		completedAt = time.Now()
	}
	_, err := db.Exec(`
		UPDATE follow_ups SET completed = ?, completed_at = ? WHERE id = ?
	`, completed, completedAt, id.String())
	return err
}

func collectFollowUps(rows *sql.Rows) ([]models.FollowUp, error) {
	var followUps []models.FollowUp
	for rows.Next() {
		var f models.FollowUp
		var completedAt sql.NullTime
		if err := rows.Scan(&f.ID, &f.ContactID, &f.DueDate, &f.Note, &f.Completed, &completedAt, &f.CreatedAt); err != nil {
			return nil, err
		}
		if completedAt.Valid {
			t := completedAt.Time
			f.CompletedAt = &t
		}
		followUps = append(followUps, f)
	}
	return followUps, rows.Err()
}
