// ABOUTME: Follow-up CLI commands
// ABOUTME: Scheduling, listing, and completing follow-up reminders
package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"

	"github.com/kindling-crm/kindling/dashboard"
	"github.com/kindling-crm/kindling/db"
	"github.com/kindling-crm/kindling/models"
)

// AddFollowUpCommand schedules a follow-up for a contact.
func AddFollowUpCommand(svc *dashboard.Service, args []string) error {
	fs := flag.NewFlagSet("add-followup", flag.ExitOnError)
	due := fs.String("due", "today", "Due date (YYYY-MM-DD)")
	note := fs.String("note", "", "What to follow up about")
	_ = fs.Parse(args)

	if len(fs.Args()) < 1 {
		return fmt.Errorf("contact ID or name is required")
	}
	contact, err := contactByRef(svc, fs.Args()[0])
	if err != nil {
		return err
	}

	dueDate, err := parseDate(*due)
	if err != nil {
		return fmt.Errorf("invalid due date: %w", err)
	}

	followUp := &models.FollowUp{
		ContactID: contact.ID,
		DueDate:   dueDate,
		Note:      *note,
	}
	if err := svc.AddFollowUp(context.Background(), followUp); err != nil {
		return err
	}

	fmt.Printf("✓ Follow-up scheduled with %s for %s\n", contact.Name, dueDate.Format("2006-01-02"))
	return nil
}

// ListFollowUpsCommand lists follow-ups, soonest due first.
func ListFollowUpsCommand(svc *dashboard.Service, args []string) error {
	fs := flag.NewFlagSet("list-followups", flag.ExitOnError)
	dueToday := fs.Bool("due-today", false, "Only follow-ups due today")
	all := fs.Bool("all", false, "Include completed follow-ups")
	_ = fs.Parse(args)

	if *dueToday {
		due, err := db.DueFollowUps(svc.DB(), time.Now())
		if err != nil {
			return fmt.Errorf("failed to list due follow-ups: %w", err)
		}
		if len(due) == 0 {
			fmt.Println("Nothing due today")
			return nil
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "CONTACT\tNOTE\tID")
		_, _ = fmt.Fprintln(w, "-------\t----\t--")
		for _, d := range due {
			note := d.FollowUp.Note
			if note == "" {
				note = "-"
			}
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", d.Contact.Name, note, d.FollowUp.ID.String()[:8])
		}
		_ = w.Flush()
		return nil
	}

	followUps, err := db.ListFollowUps(svc.DB(), !*all)
	if err != nil {
		return fmt.Errorf("failed to list follow-ups: %w", err)
	}
	if len(followUps) == 0 {
		fmt.Println("No follow-ups scheduled")
		return nil
	}

	contacts, err := svc.Contacts(context.Background(), false)
	if err != nil {
		return fmt.Errorf("failed to load contacts: %w", err)
	}
	names := make(map[uuid.UUID]string, len(contacts))
	for _, c := range contacts {
		names[c.ID] = c.Name
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "DUE\tCONTACT\tNOTE\tSTATUS\tID")
	_, _ = fmt.Fprintln(w, "---\t-------\t----\t------\t--")

	for _, f := range followUps {
		name := names[f.ContactID]
		if name == "" {
			name = f.ContactID.String()[:8]
		}
		note := f.Note
		if note == "" {
			note = "-"
		}
		status := "pending"
		if f.Completed {
			status = "done"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			f.DueDate.Format("2006-01-02"), name, note, status, f.ID.String()[:8])
	}
	_ = w.Flush()
	return nil
}

// CompleteFollowUpCommand marks a follow-up done.
func CompleteFollowUpCommand(svc *dashboard.Service, args []string) error {
	fs := flag.NewFlagSet("complete-followup", flag.ExitOnError)
	_ = fs.Parse(args)

	if len(fs.Args()) < 1 {
		return fmt.Errorf("follow-up ID is required")
	}
	id, err := uuid.Parse(fs.Args()[0])
	if err != nil {
		return fmt.Errorf("invalid follow-up ID: %w", err)
	}

	if err := svc.CompleteFollowUp(context.Background(), id); err != nil {
		return err
	}
	fmt.Println("✓ Follow-up completed")
	return nil
}
