// ABOUTME: Contact MCP tool handlers
// ABOUTME: Implements add_contact, find_contacts, update_contact, archive_contact, and log_interaction
package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/kindling-crm/kindling/dashboard"
	"github.com/kindling-crm/kindling/db"
	"github.com/kindling-crm/kindling/models"
)

type ContactHandlers struct {
	svc *dashboard.Service
}

func NewContactHandlers(svc *dashboard.Service) *ContactHandlers {
	return &ContactHandlers{svc: svc}
}

type AddContactInput struct {
	Name           string `json:"name" jsonschema:"Contact name (required)"`
	Email          string `json:"email,omitempty" jsonschema:"Contact email address"`
	CompanyName    string `json:"company_name,omitempty" jsonschema:"Company name (will be looked up or created)"`
	Role           string `json:"role,omitempty" jsonschema:"Role or title"`
	Notes          string `json:"notes,omitempty" jsonschema:"Additional notes about the contact"`
	LinkedInURL    string `json:"linkedin_url,omitempty" jsonschema:"LinkedIn profile URL"`
	ContactType    string `json:"contact_type,omitempty" jsonschema:"Contact type: connector, trailblazer, or reliable_recruiter"`
	Specialization string `json:"specialization,omitempty" jsonschema:"Recruiter specialization: industry_knowledge, interview_prep, or offer_negotiation"`
}

type ContactOutput struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Email           string  `json:"email,omitempty"`
	Company         string  `json:"company,omitempty"`
	Role            string  `json:"role,omitempty"`
	ContactType     string  `json:"contact_type"`
	WarmthLevel     string  `json:"warmth_level"`
	LastContactDate *string `json:"last_contact_date,omitempty"`
	Notes           string  `json:"notes,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

func (h *ContactHandlers) AddContact(ctx context.Context, request *mcp.CallToolRequest, input AddContactInput) (*mcp.CallToolResult, ContactOutput, error) {
	if input.Name == "" {
		return nil, ContactOutput{}, fmt.Errorf("name is required")
	}

	contact := &models.Contact{
		Name:        input.Name,
		Email:       input.Email,
		Company:     input.CompanyName,
		Role:        input.Role,
		Notes:       input.Notes,
		LinkedInURL: input.LinkedInURL,
	}
	if input.ContactType != "" {
		contact.ContactType = models.ContactType(input.ContactType)
	}
	if input.Specialization != "" {
		contact.ContactType = models.TypeReliableRecruiter
		contact.Recruiter = &models.RecruiterProfile{
			Specialization: models.RecruiterSpecialization(input.Specialization),
		}
	}

	if input.CompanyName != "" {
		company, err := db.FindCompanyByName(h.svc.DB(), input.CompanyName)
		if err != nil {
			return nil, ContactOutput{}, fmt.Errorf("failed to lookup company: %w", err)
		}
		if company == nil {
			company = &models.Company{Name: input.CompanyName}
			if err := h.svc.AddCompany(ctx, company); err != nil {
				return nil, ContactOutput{}, fmt.Errorf("failed to create company: %w", err)
			}
		}
		contact.CompanyID = &company.ID
	}

	if err := h.svc.AddContact(ctx, contact); err != nil {
		return nil, ContactOutput{}, err
	}
	return nil, contactToOutput(contact), nil
}

type FindContactsInput struct {
	Query string `json:"query,omitempty" jsonschema:"Search query (searches name and email)"`
	Limit int    `json:"limit,omitempty" jsonschema:"Maximum number of results (default 10)"`
}

type FindContactsOutput struct {
	Contacts []ContactOutput `json:"contacts"`
}

func (h *ContactHandlers) FindContacts(_ context.Context, request *mcp.CallToolRequest, input FindContactsInput) (*mcp.CallToolResult, FindContactsOutput, error) {
	limit := input.Limit
	if limit == 0 {
		limit = 10
	}

	contacts, err := db.FindContacts(h.svc.DB(), input.Query, limit)
	if err != nil {
		return nil, FindContactsOutput{}, fmt.Errorf("failed to find contacts: %w", err)
	}

	result := make([]ContactOutput, len(contacts))
	for i := range contacts {
		result[i] = contactToOutput(&contacts[i])
	}
	return nil, FindContactsOutput{Contacts: result}, nil
}

type UpdateContactInput struct {
	ID          string `json:"id" jsonschema:"Contact ID (required)"`
	Name        string `json:"name,omitempty" jsonschema:"New contact name"`
	Email       string `json:"email,omitempty" jsonschema:"New email address"`
	CompanyName string `json:"company_name,omitempty" jsonschema:"New company name"`
	Role        string `json:"role,omitempty" jsonschema:"New role or title"`
	Notes       string `json:"notes,omitempty" jsonschema:"New notes"`
	ContactType string `json:"contact_type,omitempty" jsonschema:"New contact type"`
}

func (h *ContactHandlers) UpdateContact(ctx context.Context, request *mcp.CallToolRequest, input UpdateContactInput) (*mcp.CallToolResult, ContactOutput, error) {
	contactID, err := uuid.Parse(input.ID)
	if err != nil {
		return nil, ContactOutput{}, fmt.Errorf("invalid contact id: %w", err)
	}

	contact, err := db.GetContact(h.svc.DB(), contactID)
	if err != nil {
		return nil, ContactOutput{}, fmt.Errorf("failed to load contact: %w", err)
	}
	if contact == nil {
		return nil, ContactOutput{}, fmt.Errorf("contact not found: %s", input.ID)
	}

	if input.Name != "" {
		contact.Name = input.Name
	}
	if input.Email != "" {
		contact.Email = input.Email
	}
	if input.Role != "" {
		contact.Role = input.Role
	}
	if input.Notes != "" {
		contact.Notes = input.Notes
	}
	if input.ContactType != "" {
		contact.ContactType = models.ContactType(input.ContactType)
	}
	if input.CompanyName != "" {
		contact.Company = input.CompanyName
		match, err := db.FindCompanyByName(h.svc.DB(), input.CompanyName)
		if err != nil {
			return nil, ContactOutput{}, fmt.Errorf("failed to lookup company: %w", err)
		}
		if match != nil {
			contact.CompanyID = &match.ID
		} else {
			contact.CompanyID = nil
		}
	}

	if err := h.svc.UpdateContact(ctx, contactID, contact); err != nil {
		return nil, ContactOutput{}, err
	}
	return nil, contactToOutput(contact), nil
}

type ArchiveContactInput struct {
	ID      string `json:"id" jsonschema:"Contact ID (required)"`
	Restore bool   `json:"restore,omitempty" jsonschema:"Restore instead of archive"`
}

type ArchiveContactOutput struct {
	ID       string `json:"id"`
	Archived bool   `json:"archived"`
}

func (h *ContactHandlers) ArchiveContact(ctx context.Context, request *mcp.CallToolRequest, input ArchiveContactInput) (*mcp.CallToolResult, ArchiveContactOutput, error) {
	contactID, err := uuid.Parse(input.ID)
	if err != nil {
		return nil, ArchiveContactOutput{}, fmt.Errorf("invalid contact id: %w", err)
	}

	if input.Restore {
		err = h.svc.RestoreContact(ctx, contactID)
	} else {
		err = h.svc.ArchiveContact(ctx, contactID)
	}
	if err != nil {
		return nil, ArchiveContactOutput{}, err
	}
	return nil, ArchiveContactOutput{ID: input.ID, Archived: !input.Restore}, nil
}

type LogInteractionInput struct {
	ContactID string `json:"contact_id" jsonschema:"Contact ID (required)"`
	Type      string `json:"type" jsonschema:"Interaction type: email, call, meeting, message, or event"`
	Date      string `json:"date,omitempty" jsonschema:"Interaction date (YYYY-MM-DD, default today)"`
	Notes     string `json:"notes,omitempty" jsonschema:"What happened"`
}

type LogInteractionOutput struct {
	ID        string `json:"id"`
	ContactID string `json:"contact_id"`
	Type      string `json:"type"`
	Date      string `json:"date"`
}

func (h *ContactHandlers) LogInteraction(ctx context.Context, request *mcp.CallToolRequest, input LogInteractionInput) (*mcp.CallToolResult, LogInteractionOutput, error) {
	contactID, err := uuid.Parse(input.ContactID)
	if err != nil {
		return nil, LogInteractionOutput{}, fmt.Errorf("invalid contact id: %w", err)
	}

	day := time.Now()
	if input.Date != "" {
		day, err = time.Parse("2006-01-02", input.Date)
		if err != nil {
			return nil, LogInteractionOutput{}, fmt.Errorf("invalid date: %w", err)
		}
	}

	interaction := &models.Interaction{
		ContactID: contactID,
		Type:      input.Type,
		Date:      day,
		Notes:     input.Notes,
	}
	if err := h.svc.LogInteraction(ctx, interaction); err != nil {
		return nil, LogInteractionOutput{}, err
	}

	return nil, LogInteractionOutput{
		ID:        interaction.ID.String(),
		ContactID: input.ContactID,
		Type:      interaction.Type,
		Date:      day.Format("2006-01-02"),
	}, nil
}

func contactToOutput(contact *models.Contact) ContactOutput {
	out := ContactOutput{
		ID:          contact.ID.String(),
		Name:        contact.Name,
		Email:       contact.Email,
		Company:     contact.Company,
		Role:        contact.Role,
		ContactType: string(contact.ContactType),
		WarmthLevel: string(contact.WarmthLevel),
		Notes:       contact.Notes,
		CreatedAt:   contact.CreatedAt.Format(time.RFC3339),
	}
	if contact.LastContactDate != nil {
		d := contact.LastContactDate.Format("2006-01-02")
		out.LastContactDate = &d
	}
	return out
}
