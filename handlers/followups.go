// ABOUTME: Follow-up MCP tool handlers
// ABOUTME: Implements add_followup and complete_followup
package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/kindling-crm/kindling/dashboard"
	"github.com/kindling-crm/kindling/models"
)

type FollowUpHandlers struct {
	svc *dashboard.Service
}

func NewFollowUpHandlers(svc *dashboard.Service) *FollowUpHandlers {
	return &FollowUpHandlers{svc: svc}
}

type AddFollowUpInput struct {
	ContactID string `json:"contact_id" jsonschema:"Contact ID (required)"`
	DueDate   string `json:"due_date" jsonschema:"Due date (YYYY-MM-DD, required)"`
	Note      string `json:"note,omitempty" jsonschema:"What to follow up about"`
}

type FollowUpOutput struct {
	ID        string `json:"id"`
	ContactID string `json:"contact_id"`
	DueDate   string `json:"due_date"`
	Note      string `json:"note,omitempty"`
	Completed bool   `json:"completed"`
}

func (h *FollowUpHandlers) AddFollowUp(ctx context.Context, request *mcp.CallToolRequest, input AddFollowUpInput) (*mcp.CallToolResult, FollowUpOutput, error) {
	contactID, err := uuid.Parse(input.ContactID)
	if err != nil {
		return nil, FollowUpOutput{}, fmt.Errorf("invalid contact id: %w", err)
	}
	dueDate, err := time.Parse("2006-01-02", input.DueDate)
	if err != nil {
		return nil, FollowUpOutput{}, fmt.Errorf("invalid due date: %w", err)
	}

	followUp := &models.FollowUp{
		ContactID: contactID,
		DueDate:   dueDate,
		Note:      input.Note,
	}
	if err := h.svc.AddFollowUp(ctx, followUp); err != nil {
		return nil, FollowUpOutput{}, err
	}

	return nil, FollowUpOutput{
		ID:        followUp.ID.String(),
		ContactID: input.ContactID,
		DueDate:   dueDate.Format("2006-01-02"),
		Note:      followUp.Note,
	}, nil
}

type CompleteFollowUpInput struct {
	ID string `json:"id" jsonschema:"Follow-up ID (required)"`
}

func (h *FollowUpHandlers) CompleteFollowUp(ctx context.Context, request *mcp.CallToolRequest, input CompleteFollowUpInput) (*mcp.CallToolResult, FollowUpOutput, error) {
	id, err := uuid.Parse(input.ID)
	if err != nil {
		return nil, FollowUpOutput{}, fmt.Errorf("invalid follow-up id: %w", err)
	}
	if err := h.svc.CompleteFollowUp(ctx, id); err != nil {
		return nil, FollowUpOutput{}, err
	}
	return nil, FollowUpOutput{ID: input.ID, Completed: true}, nil
}
