// ABOUTME: Write operations shared by the CLI and MCP surfaces
// ABOUTME: Validates input, hits the store, and invalidates cache slots
package dashboard

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kindling-crm/kindling/db"
	"github.com/kindling-crm/kindling/models"
)

func (s *Service) AddContact(ctx context.Context, contact *models.Contact) error {
	if err := contact.Validate(); err != nil {
		return err
	}
	if err := db.CreateContact(s.db, contact); err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}
	s.contacts.Invalidate()
	return nil
}

func (s *Service) UpdateContact(ctx context.Context, id uuid.UUID, updates *models.Contact) error {
	if err := updates.Validate(); err != nil {
		return err
	}
	if err := db.UpdateContact(s.db, id, updates); err != nil {
		return fmt.Errorf("failed to update contact: %w", err)
	}
	s.contacts.Invalidate()
	return nil
}

func (s *Service) ArchiveContact(ctx context.Context, id uuid.UUID) error {
	if err := db.ArchiveContact(s.db, id); err != nil {
		return fmt.Errorf("failed to archive contact: %w", err)
	}
	s.contacts.Invalidate()
	return nil
}

func (s *Service) RestoreContact(ctx context.Context, id uuid.UUID) error {
	if err := db.RestoreContact(s.db, id); err != nil {
		return fmt.Errorf("failed to restore contact: %w", err)
	}
	s.contacts.Invalidate()
	return nil
}

func (s *Service) DeleteContact(ctx context.Context, id uuid.UUID) error {
	if err := db.DeleteContact(s.db, id); err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	s.contacts.Invalidate()
	return nil
}

func (s *Service) AddCompany(ctx context.Context, company *models.Company) error {
	if err := company.Validate(); err != nil {
		return err
	}
	if err := db.CreateCompany(s.db, company); err != nil {
		return fmt.Errorf("failed to create company: %w", err)
	}
	s.companies.Invalidate()
	return nil
}

func (s *Service) UpdateCompany(ctx context.Context, id uuid.UUID, updates *models.Company) error {
	if err := updates.Validate(); err != nil {
		return err
	}
	if err := db.UpdateCompany(s.db, id, updates); err != nil {
		return fmt.Errorf("failed to update company: %w", err)
	}
	s.companies.Invalidate()
	return nil
}

func (s *Service) ArchiveCompany(ctx context.Context, id uuid.UUID) error {
	if err := db.ArchiveCompany(s.db, id); err != nil {
		return fmt.Errorf("failed to archive company: %w", err)
	}
	s.companies.Invalidate()
	return nil
}

func (s *Service) RestoreCompany(ctx context.Context, id uuid.UUID) error {
	if err := db.RestoreCompany(s.db, id); err != nil {
		return fmt.Errorf("failed to restore company: %w", err)
	}
	s.companies.Invalidate()
	return nil
}

func (s *Service) DeleteCompany(ctx context.Context, id uuid.UUID) error {
	if err := db.DeleteCompany(s.db, id); err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
	}
	// Contacts carry the company link, so both slots go
	s.companies.Invalidate()
	s.contacts.Invalidate()
	return nil
}

// LogInteraction appends to the interaction log. The contact's last
// contact date moves, so the contacts slot is dropped.
func (s *Service) LogInteraction(ctx context.Context, interaction *models.Interaction) error {
	if !models.ValidInteractionType(interaction.Type) {
		return &models.FieldError{Field: "type", Message: "unknown interaction type"}
	}
	if err := db.LogInteraction(s.db, interaction); err != nil {
		return fmt.Errorf("failed to log interaction: %w", err)
	}
	s.contacts.Invalidate()
	return nil
}

func (s *Service) AddFollowUp(ctx context.Context, followUp *models.FollowUp) error {
	if err := db.CreateFollowUp(s.db, followUp); err != nil {
		return fmt.Errorf("failed to create follow-up: %w", err)
	}
	return nil
}

func (s *Service) CompleteFollowUp(ctx context.Context, id uuid.UUID) error {
	if err := db.CompleteFollowUp(s.db, id, true); err != nil {
		return fmt.Errorf("failed to complete follow-up: %w", err)
	}
	return nil
}

// BackfillCompanyIDs links name-only contacts to company rows. Returns how
// many contacts were updated.
func (s *Service) BackfillCompanyIDs(ctx context.Context) (int, error) {
	updated, err := db.BackfillCompanyIDs(s.db)
	if err != nil {
		return 0, fmt.Errorf("failed to backfill company ids: %w", err)
	}
	if updated > 0 {
		s.contacts.Invalidate()
	}
	return updated, nil
}
