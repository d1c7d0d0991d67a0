// ABOUTME: Company database operations
// ABOUTME: Handles CRUD, archiving, and case-insensitive name lookup
package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kindling-crm/kindling/models"
)

const companyColumns = `id, name, priority, industry, target_role, notes, is_archived, archived_at, created_at, updated_at`

func CreateCompany(db *sql.DB, company *models.Company) error {
	company.ID = uuid.New()
	now := time.Now()
	company.CreatedAt = now
	company.UpdatedAt = now

	_, err := db.Exec(`
		INSERT INTO companies (`+companyColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, company.ID.String(), company.Name, company.Priority, company.Industry, company.TargetRole,
		company.Notes, company.IsArchived, company.ArchivedAt, company.CreatedAt, company.UpdatedAt)

	return err
}

func GetCompany(db *sql.DB, id uuid.UUID) (*models.Company, error) {
	row := db.QueryRow(`SELECT `+companyColumns+` FROM companies WHERE id = ?`, id.String())
	company, err := scanCompany(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return company, nil
}

// FindCompanyByName looks up a company case-insensitively on the trimmed
// name. Returns nil when no match exists.
func FindCompanyByName(db *sql.DB, name string) (*models.Company, error) {
	row := db.QueryRow(`
		SELECT `+companyColumns+` FROM companies
		WHERE LOWER(TRIM(name)) = LOWER(TRIM(?))
		LIMIT 1
	`, name)
	company, err := scanCompany(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return company, nil
}

// ListCompanies returns companies with the given archived state, highest
// priority first.
func ListCompanies(db *sql.DB, archived bool) ([]models.Company, error) {
	rows, err := db.Query(`
		SELECT `+companyColumns+` FROM companies
		WHERE is_archived = ?
		ORDER BY priority DESC, name ASC
	`, archived)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var companies []models.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		companies = append(companies, *c)
	}
	return companies, rows.Err()
}

func UpdateCompany(db *sql.DB, id uuid.UUID, updates *models.Company) error {
	updates.UpdatedAt = time.Now()

	_, err := db.Exec(`
		UPDATE companies
		SET name = ?, priority = ?, industry = ?, target_role = ?, notes = ?, updated_at = ?
		WHERE id = ?
	`, updates.Name, updates.Priority, updates.Industry, updates.TargetRole, updates.Notes,
		updates.UpdatedAt, id.String())

	return err
}

func ArchiveCompany(db *sql.DB, id uuid.UUID) error {
	now := time.Now()
	_, err := db.Exec(`
		UPDATE companies SET is_archived = 1, archived_at = ?, updated_at = ? WHERE id = ?
	`, now, now, id.String())
	return err
}

func RestoreCompany(db *sql.DB, id uuid.UUID) error {
	_, err := db.Exec(`
		UPDATE companies SET is_archived = 0, archived_at = NULL, updated_at = ? WHERE id = ?
	`, time.Now(), id.String())
	return err
}

// DeleteCompany hard-deletes a company. Contacts keep their free-text
// company name but lose the id reference.
func DeleteCompany(db *sql.DB, id uuid.UUID) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // Safe even after commit
	}()

	if _, err = tx.Exec(`UPDATE contacts SET company_id = NULL WHERE company_id = ?`, id.String()); err != nil {
		return fmt.Errorf("failed to unlink contacts: %w", err)
	}
	if _, err = tx.Exec(`UPDATE daily_tasks SET company_id = NULL WHERE company_id = ?`, id.String()); err != nil {
		return fmt.Errorf("failed to update daily tasks: %w", err)
	}
	if _, err = tx.Exec(`DELETE FROM companies WHERE id = ?`, id.String()); err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
	}

	return tx.Commit()
}

func scanCompany(row rowScanner) (*models.Company, error) {
	company := &models.Company{}
	var archivedAt sql.NullTime

	err := row.Scan(
		&company.ID, &company.Name, &company.Priority, &company.Industry, &company.TargetRole,
		&company.Notes, &company.IsArchived, &archivedAt, &company.CreatedAt, &company.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if archivedAt.Valid {
		t := archivedAt.Time
		company.ArchivedAt = &t
	}
	return company, nil
}
