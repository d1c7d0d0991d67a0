// ABOUTME: Interaction log CLI commands
// ABOUTME: Logging advances last contact dates; listing shows history
package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/uuid"

	"github.com/kindling-crm/kindling/dashboard"
	"github.com/kindling-crm/kindling/db"
	"github.com/kindling-crm/kindling/models"
)

// LogInteractionCommand records a touchpoint with a contact.
func LogInteractionCommand(svc *dashboard.Service, args []string) error {
	fs := flag.NewFlagSet("log-interaction", flag.ExitOnError)
	interactionType := fs.String("type", models.InteractionEmail, "Interaction type (email/call/meeting/message/event)")
	date := fs.String("date", "today", "Interaction date (YYYY-MM-DD)")
	notes := fs.String("notes", "", "Notes")
	_ = fs.Parse(args)

	if len(fs.Args()) < 1 {
		return fmt.Errorf("contact ID or name is required")
	}
	contact, err := contactByRef(svc, fs.Args()[0])
	if err != nil {
		return err
	}

	day, err := parseDate(*date)
	if err != nil {
		return fmt.Errorf("invalid date: %w", err)
	}

	interaction := &models.Interaction{
		ContactID: contact.ID,
		Type:      *interactionType,
		Date:      day,
		Notes:     *notes,
	}
	if err := svc.LogInteraction(context.Background(), interaction); err != nil {
		return err
	}

	fmt.Printf("✓ Logged %s with %s on %s\n", interaction.Type, contact.Name, day.Format("2006-01-02"))
	return nil
}

// ListInteractionsCommand shows the interaction log, newest first.
func ListInteractionsCommand(svc *dashboard.Service, args []string) error {
	fs := flag.NewFlagSet("list-interactions", flag.ExitOnError)
	contactArg := fs.String("contact", "", "Filter by contact ID or name")
	limit := fs.Int("limit", 20, "Maximum results")
	_ = fs.Parse(args)

	var contactID *uuid.UUID
	if *contactArg != "" {
		contact, err := contactByRef(svc, *contactArg)
		if err != nil {
			return err
		}
		contactID = &contact.ID
	}

	interactions, err := db.ListInteractions(svc.DB(), contactID, *limit)
	if err != nil {
		return fmt.Errorf("failed to list interactions: %w", err)
	}
	if len(interactions) == 0 {
		fmt.Println("No interactions logged")
		return nil
	}

	// Resolve names once
	contacts, err := svc.Contacts(context.Background(), false)
	if err != nil {
		return fmt.Errorf("failed to load contacts: %w", err)
	}
	names := make(map[uuid.UUID]string, len(contacts))
	for _, c := range contacts {
		names[c.ID] = c.Name
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "DATE\tTYPE\tCONTACT\tNOTES")
	_, _ = fmt.Fprintln(w, "----\t----\t-------\t-----")

	for _, i := range interactions {
		name := names[i.ContactID]
		if name == "" {
			name = i.ContactID.String()[:8]
		}
		notes := i.Notes
		if notes == "" {
			notes = "-"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", i.Date.Format("2006-01-02"), i.Type, name, notes)
	}
	_ = w.Flush()
	return nil
}
