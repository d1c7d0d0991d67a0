// ABOUTME: Company MCP tool handlers
// ABOUTME: Implements add_company and find_companies
package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/kindling-crm/kindling/dashboard"
	"github.com/kindling-crm/kindling/models"
)

type CompanyHandlers struct {
	svc *dashboard.Service
}

func NewCompanyHandlers(svc *dashboard.Service) *CompanyHandlers {
	return &CompanyHandlers{svc: svc}
}

type AddCompanyInput struct {
	Name       string `json:"name" jsonschema:"Company name (required)"`
	Priority   int    `json:"priority,omitempty" jsonschema:"Target priority 0-5"`
	Industry   string `json:"industry,omitempty" jsonschema:"Industry"`
	TargetRole string `json:"target_role,omitempty" jsonschema:"Role being pursued there"`
	Notes      string `json:"notes,omitempty" jsonschema:"Additional notes"`
}

type CompanyOutput struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Priority   int    `json:"priority"`
	Industry   string `json:"industry,omitempty"`
	TargetRole string `json:"target_role,omitempty"`
	Notes      string `json:"notes,omitempty"`
	CreatedAt  string `json:"created_at"`
}

func (h *CompanyHandlers) AddCompany(ctx context.Context, request *mcp.CallToolRequest, input AddCompanyInput) (*mcp.CallToolResult, CompanyOutput, error) {
	if input.Name == "" {
		return nil, CompanyOutput{}, fmt.Errorf("name is required")
	}

	company := &models.Company{
		Name:       input.Name,
		Priority:   input.Priority,
		Industry:   input.Industry,
		TargetRole: input.TargetRole,
		Notes:      input.Notes,
	}
	if err := h.svc.AddCompany(ctx, company); err != nil {
		return nil, CompanyOutput{}, err
	}
	return nil, companyToOutput(company), nil
}

type FindCompaniesInput struct {
	Query    string `json:"query,omitempty" jsonschema:"Name filter (case-insensitive substring)"`
	Archived bool   `json:"archived,omitempty" jsonschema:"Search archived companies instead"`
}

type FindCompaniesOutput struct {
	Companies []CompanyOutput `json:"companies"`
}

func (h *CompanyHandlers) FindCompanies(ctx context.Context, request *mcp.CallToolRequest, input FindCompaniesInput) (*mcp.CallToolResult, FindCompaniesOutput, error) {
	companies, err := h.svc.Companies(ctx, input.Archived)
	if err != nil {
		return nil, FindCompaniesOutput{}, fmt.Errorf("failed to list companies: %w", err)
	}

	query := strings.ToLower(strings.TrimSpace(input.Query))
	var result []CompanyOutput
	for i := range companies {
		if query != "" && !strings.Contains(strings.ToLower(companies[i].Name), query) {
			continue
		}
		result = append(result, companyToOutput(&companies[i]))
	}
	return nil, FindCompaniesOutput{Companies: result}, nil
}

func companyToOutput(company *models.Company) CompanyOutput {
	return CompanyOutput{
		ID:         company.ID.String(),
		Name:       company.Name,
		Priority:   company.Priority,
		Industry:   company.Industry,
		TargetRole: company.TargetRole,
		Notes:      company.Notes,
		CreatedAt:  company.CreatedAt.Format(time.RFC3339),
	}
}
