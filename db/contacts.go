// ABOUTME: Contact database operations
// ABOUTME: Handles CRUD, archiving, warmth write-back, and company id backfill
package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kindling-crm/kindling/models"
)

var contactCols = []string{
	"id", "name", "email", "company", "company_id", "role", "notes", "linkedin_url",
	"contact_type", "warmth_level", "last_contact_date", "connector_influence_company_ids",
	"recruiter_specialization", "is_archived", "archived_at", "created_at", "updated_at",
}

var contactColumns = strings.Join(contactCols, ", ")

// prefixedContactColumns qualifies the contact column list for joins.
func prefixedContactColumns(alias string) string {
	out := make([]string, len(contactCols))
	for i, c := range contactCols {
		out[i] = alias + "." + c
	}
	return strings.Join(out, ", ")
}

func CreateContact(db *sql.DB, contact *models.Contact) error {
	contact.ID = uuid.New()
	now := time.Now()
	contact.CreatedAt = now
	contact.UpdatedAt = now
	if contact.ContactType == "" {
		contact.ContactType = models.TypeUnspecified
	}
	if contact.WarmthLevel == "" {
		contact.WarmthLevel = models.WarmthCold
	}

	influence, err := marshalInfluence(contact)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		INSERT INTO contacts (`+contactColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, contact.ID.String(), contact.Name, contact.Email, contact.Company, uuidPtr(contact.CompanyID),
		contact.Role, contact.Notes, contact.LinkedInURL, string(contact.ContactType),
		string(contact.WarmthLevel), datePtr(contact.LastContactDate), influence,
		recruiterSpec(contact), contact.IsArchived, contact.ArchivedAt, contact.CreatedAt, contact.UpdatedAt)

	return err
}

func GetContact(db *sql.DB, id uuid.UUID) (*models.Contact, error) {
	row := db.QueryRow(`SELECT `+contactColumns+` FROM contacts WHERE id = ?`, id.String())
	contact, err := scanContact(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return contact, nil
}

// ListContacts returns contacts with the given archived state, newest first.
func ListContacts(db *sql.DB, archived bool) ([]models.Contact, error) {
	rows, err := db.Query(`
		SELECT `+contactColumns+` FROM contacts
		WHERE is_archived = ?
		ORDER BY created_at DESC
	`, archived)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectContacts(rows)
}

// FindContacts searches non-archived contacts by name or email.
func FindContacts(db *sql.DB, query string, limit int) ([]models.Contact, error) {
	if limit <= 0 {
		limit = 10
	}

	var rows *sql.Rows
	var err error
	if query != "" {
		pattern := "%" + strings.ToLower(query) + "%"
		rows, err = db.Query(`
			SELECT `+contactColumns+` FROM contacts
			WHERE is_archived = 0 AND (LOWER(name) LIKE ? OR LOWER(email) LIKE ?)
			ORDER BY created_at DESC
			LIMIT ?
		`, pattern, pattern, limit)
	} else {
		rows, err = db.Query(`
			SELECT `+contactColumns+` FROM contacts
			WHERE is_archived = 0
			ORDER BY created_at DESC
			LIMIT ?
		`, limit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectContacts(rows)
}

func UpdateContact(db *sql.DB, id uuid.UUID, updates *models.Contact) error {
	updates.UpdatedAt = time.Now()

	influence, err := marshalInfluence(updates)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		UPDATE contacts
		SET name = ?, email = ?, company = ?, company_id = ?, role = ?, notes = ?,
		    linkedin_url = ?, contact_type = ?, warmth_level = ?, last_contact_date = ?,
		    connector_influence_company_ids = ?, recruiter_specialization = ?, updated_at = ?
		WHERE id = ?
	`, updates.Name, updates.Email, updates.Company, uuidPtr(updates.CompanyID), updates.Role,
		updates.Notes, updates.LinkedInURL, string(updates.ContactType), string(updates.WarmthLevel),
		datePtr(updates.LastContactDate), influence, recruiterSpec(updates), updates.UpdatedAt, id.String())

	return err
}

// SetContactWarmth writes back a recomputed warmth level. The WHERE clause
// skips the write when the stored value already matches.
func SetContactWarmth(db *sql.DB, id uuid.UUID, warmth models.Warmth) error {
	_, err := db.Exec(`
		UPDATE contacts
		SET warmth_level = ?, updated_at = ?
		WHERE id = ? AND warmth_level != ?
	`, string(warmth), time.Now(), id.String(), string(warmth))
	return err
}

// UpdateContactLastContacted advances a contact's last contact date. The
// date never moves backwards; older interactions leave it untouched.
func UpdateContactLastContacted(db *sql.DB, contactID uuid.UUID, date time.Time) error {
	d := formatDate(date)
	_, err := db.Exec(`
		UPDATE contacts
		SET last_contact_date = ?, updated_at = ?
		WHERE id = ? AND (last_contact_date IS NULL OR last_contact_date < ?)
	`, d, time.Now(), contactID.String(), d)
	return err
}

func ArchiveContact(db *sql.DB, id uuid.UUID) error {
	now := time.Now()
	_, err := db.Exec(`
		UPDATE contacts SET is_archived = 1, archived_at = ?, updated_at = ? WHERE id = ?
	`, now, now, id.String())
	return err
}

func RestoreContact(db *sql.DB, id uuid.UUID) error {
	_, err := db.Exec(`
		UPDATE contacts SET is_archived = 0, archived_at = NULL, updated_at = ? WHERE id = ?
	`, time.Now(), id.String())
	return err
}

// DeleteContact hard-deletes a contact and its dependent interactions and
// follow-ups in one transaction. Daily tasks keep their row but lose the
// contact reference.
func DeleteContact(db *sql.DB, id uuid.UUID) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // Safe even after commit
	}()

	if _, err = tx.Exec(`DELETE FROM interactions WHERE contact_id = ?`, id.String()); err != nil {
		return fmt.Errorf("failed to delete interactions: %w", err)
	}
	if _, err = tx.Exec(`DELETE FROM follow_ups WHERE contact_id = ?`, id.String()); err != nil {
		return fmt.Errorf("failed to delete follow-ups: %w", err)
	}
	if _, err = tx.Exec(`UPDATE daily_tasks SET contact_id = NULL WHERE contact_id = ?`, id.String()); err != nil {
		return fmt.Errorf("failed to update daily tasks: %w", err)
	}
	if _, err = tx.Exec(`DELETE FROM contacts WHERE id = ?`, id.String()); err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}

	return tx.Commit()
}

// BackfillCompanyIDs links contacts that carry a company name but no
// company id to the matching company row, case-insensitively. Returns the
// number of contacts updated.
func BackfillCompanyIDs(db *sql.DB) (int, error) {
	companies, err := ListCompanies(db, false)
	if err != nil {
		return 0, fmt.Errorf("failed to list companies: %w", err)
	}
	byName := make(map[string]uuid.UUID, len(companies))
	for _, co := range companies {
		byName[strings.ToLower(strings.TrimSpace(co.Name))] = co.ID
	}

	rows, err := db.Query(`
		SELECT id, company FROM contacts
		WHERE company_id IS NULL AND company IS NOT NULL AND TRIM(company) != ''
	`)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	type pending struct {
		contactID string
		companyID uuid.UUID
	}
	var updates []pending
	for rows.Next() {
		var id, company string
		if err := rows.Scan(&id, &company); err != nil {
			return 0, err
		}
		companyID, ok := byName[strings.ToLower(strings.TrimSpace(company))]
		if !ok {
			continue
		}
		updates = append(updates, pending{contactID: id, companyID: companyID})
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}

	for _, u := range updates {
		if _, err := db.Exec(`UPDATE contacts SET company_id = ?, updated_at = ? WHERE id = ?`,
			u.companyID.String(), time.Now(), u.contactID); err != nil {
			return 0, err
		}
	}
	return len(updates), nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanContact(row rowScanner) (*models.Contact, error) {
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

	err := row.Scan(
		&contact.ID, &contact.Name, &contact.Email, &contact.Company, &companyID,
		&contact.Role, &contact.Notes, &contact.LinkedInURL, &contactType, &warmth,
		&lastContact, &influence, &spec, &contact.IsArchived, &archivedAt,
		&contact.CreatedAt, &contact.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := hydrateContact(contact, companyID, lastContact, influence, spec, archivedAt, contactType, warmth); err != nil {
		return nil, err
	}
	return contact, nil
}

// hydrateContact fills the nullable and type-dependent fields after a scan.
func hydrateContact(contact *models.Contact, companyID sql.NullString, lastContact sql.NullTime,
	influence, spec sql.NullString, archivedAt sql.NullTime, contactType, warmth string) error {

	contact.ContactType = models.ContactType(contactType)
	contact.WarmthLevel = models.Warmth(warmth)

	if companyID.Valid {
		cid, err := uuid.Parse(companyID.String)
		if err == nil {
			contact.CompanyID = &cid
		}
	}
	if lastContact.Valid {
		t := lastContact.Time
		contact.LastContactDate = &t
	}
	if archivedAt.Valid {
		t := archivedAt.Time
		contact.ArchivedAt = &t
	}

	if contact.ContactType == models.TypeConnector && influence.Valid && influence.String != "" {
		var ids []uuid.UUID
		if err := json.Unmarshal([]byte(influence.String), &ids); err != nil {
			return fmt.Errorf("failed to parse influence company ids: %w", err)
		}
		contact.Connector = &models.ConnectorProfile{InfluenceCompanyIDs: ids}
	}
	if contact.ContactType == models.TypeReliableRecruiter && spec.Valid && spec.String != "" {
		contact.Recruiter = &models.RecruiterProfile{
			Specialization: models.RecruiterSpecialization(spec.String),
		}
	}
	return nil
}

func collectContacts(rows *sql.Rows) ([]models.Contact, error) {
	var contacts []models.Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, *c)
	}
	return contacts, rows.Err()
}

// marshalInfluence serializes the connector influence set, nil for
// non-connectors or an empty set.
func marshalInfluence(c *models.Contact) (interface{}, error) {
	ids := c.InfluenceCompanyIDs()
	if len(ids) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal influence company ids: %w", err)
	}
	return string(b), nil
}

func recruiterSpec(c *models.Contact) interface{} {
	if c.ContactType != models.TypeReliableRecruiter || c.Recruiter == nil {
		return nil
	}
	return string(c.Recruiter.Specialization)
}

func uuidPtr(id *uuid.UUID) interface{} {
	if id == nil {
		return nil
	}
	return id.String()
}

// formatDate renders a day-granular DATE column value.
func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

func datePtr(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return formatDate(*t)
}
