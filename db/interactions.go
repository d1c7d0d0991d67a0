// ABOUTME: Interaction log database operations
// ABOUTME: Append-only log; logging advances the contact's last contact date
package db

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/kindling-crm/kindling/models"
)

const interactionColumns = `id, contact_id, interaction_type, interaction_date, notes, created_at`

// LogInteraction appends an interaction and advances the parent contact's
// last contact date. The warmth write-back happens on the next dashboard
// load, not here.
func LogInteraction(db *sql.DB, interaction *models.Interaction) error {
	if interaction.ID == uuid.Nil {
		interaction.ID = uuid.New()
	}
	interaction.CreatedAt = time.Now()

	_, err := db.Exec(`
		INSERT INTO interactions (`+interactionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)
	`, interaction.ID.String(), interaction.ContactID.String(), interaction.Type,
		formatDate(interaction.Date), interaction.Notes, interaction.CreatedAt)
	if err != nil {
		return err
	}

	return UpdateContactLastContacted(db, interaction.ContactID, interaction.Date)
}

// ListInteractions returns the interaction history for one contact, or for
// all contacts when contactID is nil, newest first.
func ListInteractions(db *sql.DB, contactID *uuid.UUID, limit int) ([]models.Interaction, error) {
	if limit <= 0 {
		limit = 100
	}

	var rows *sql.Rows
	var err error
	if contactID != nil {
		rows, err = db.Query(`
			SELECT `+interactionColumns+` FROM interactions
			WHERE contact_id = ?
			ORDER BY interaction_date DESC, created_at DESC
			LIMIT ?
		`, contactID.String(), limit)
	} else {
		rows, err = db.Query(`
			SELECT `+interactionColumns+` FROM interactions
			ORDER BY interaction_date DESC, created_at DESC
			LIMIT ?
		`, limit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var interactions []models.Interaction
	for rows.Next() {
		var i models.Interaction
		if err := rows.Scan(&i.ID, &i.ContactID, &i.Type, &i.Date, &i.Notes, &i.CreatedAt); err != nil {
			return nil, err
		}
		interactions = append(interactions, i)
	}
	return interactions, rows.Err()
}
