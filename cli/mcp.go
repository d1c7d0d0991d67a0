// ABOUTME: MCP server subcommand
// ABOUTME: Exposes the tool surface over stdio for assistant integration
package cli

import (
	"context"
	"log"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/kindling-crm/kindling/dashboard"
	"github.com/kindling-crm/kindling/handlers"
)

// MCPCommand starts the MCP server on stdio.
func MCPCommand(svc *dashboard.Service) error {
	log.Println("Starting Kindling MCP server...")

	contactHandlers := handlers.NewContactHandlers(svc)
	companyHandlers := handlers.NewCompanyHandlers(svc)
	followUpHandlers := handlers.NewFollowUpHandlers(svc)
	dashboardHandlers := handlers.NewDashboardHandlers(svc)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "kindling",
		Version: "0.1.0",
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_contact",
		Description: "Add a new contact to the network",
	}, contactHandlers.AddContact)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_contacts",
		Description: "Search contacts by name or email",
	}, contactHandlers.FindContacts)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_contact",
		Description: "Update an existing contact's information",
	}, contactHandlers.UpdateContact)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "archive_contact",
		Description: "Archive (or restore) a contact",
	}, contactHandlers.ArchiveContact)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "log_interaction",
		Description: "Log an interaction with a contact; advances their last contact date",
	}, contactHandlers.LogInteraction)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_company",
		Description: "Add a target company",
	}, companyHandlers.AddCompany)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_companies",
		Description: "Search target companies by name",
	}, companyHandlers.FindCompanies)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_followup",
		Description: "Schedule a follow-up reminder for a contact",
	}, followUpHandlers.AddFollowUp)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "complete_followup",
		Description: "Mark a follow-up as done",
	}, followUpHandlers.CompleteFollowUp)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_dashboard",
		Description: "Get scores, streak, recommended actions, and today's tasks",
	}, dashboardHandlers.GetDashboard)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "complete_task",
		Description: "Complete a daily task and update the streak",
	}, dashboardHandlers.CompleteTask)

	ctx := context.Background()
	return server.Run(ctx, &mcp.StdioTransport{})
}
