// ABOUTME: Contact CLI commands
// ABOUTME: Human-friendly commands for managing contacts
package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"

	"github.com/kindling-crm/kindling/dashboard"
	"github.com/kindling-crm/kindling/db"
	"github.com/kindling-crm/kindling/models"
)

// AddContactCommand adds a new contact.
func AddContactCommand(svc *dashboard.Service, args []string) error {
	fs := flag.NewFlagSet("add-contact", flag.ExitOnError)
	name := fs.String("name", "", "Contact name (required)")
	email := fs.String("email", "", "Email address")
	company := fs.String("company", "", "Company name")
	role := fs.String("role", "", "Role or title")
	notes := fs.String("notes", "", "Notes about the contact")
	linkedin := fs.String("linkedin", "", "LinkedIn profile URL")
	contactType := fs.String("type", "", "Contact type (connector/trailblazer/reliable_recruiter)")
	specialization := fs.String("specialization", "", "Recruiter specialization (industry_knowledge/interview_prep/offer_negotiation)")
	_ = fs.Parse(args)

	if *name == "" {
		return fmt.Errorf("--name is required")
	}

	contact := &models.Contact{
		Name:        *name,
		Email:       *email,
		Company:     *company,
		Role:        *role,
		Notes:       *notes,
		LinkedInURL: *linkedin,
	}
	if *contactType != "" {
		contact.ContactType = models.ContactType(*contactType)
	}
	if *specialization != "" {
		contact.ContactType = models.TypeReliableRecruiter
		contact.Recruiter = &models.RecruiterProfile{
			Specialization: models.RecruiterSpecialization(*specialization),
		}
	}

	// Link to a company row, creating one on first mention
	if *company != "" {
		existing, err := db.FindCompanyByName(svc.DB(), *company)
		if err != nil {
			return fmt.Errorf("failed to lookup company: %w", err)
		}
		if existing == nil {
			newCompany := &models.Company{Name: *company}
			if err := svc.AddCompany(context.Background(), newCompany); err != nil {
				return fmt.Errorf("failed to create company: %w", err)
			}
			contact.CompanyID = &newCompany.ID
		} else {
			contact.CompanyID = &existing.ID
		}
	}

	if err := svc.AddContact(context.Background(), contact); err != nil {
		return err
	}

	fmt.Printf("✓ Contact created: %s (ID: %s)\n", contact.Name, contact.ID)
	if contact.Email != "" {
		fmt.Printf("  Email: %s\n", contact.Email)
	}
	if *company != "" {
		fmt.Printf("  Company: %s\n", *company)
	}
	if contact.Role != "" {
		fmt.Printf("  Role: %s\n", contact.Role)
	}
	return nil
}

// ListContactsCommand lists contacts.
func ListContactsCommand(svc *dashboard.Service, args []string) error {
	fs := flag.NewFlagSet("list-contacts", flag.ExitOnError)
	query := fs.String("query", "", "Search by name or email")
	archived := fs.Bool("archived", false, "Show archived contacts")
	limit := fs.Int("limit", 50, "Maximum results")
	_ = fs.Parse(args)

	var contacts []models.Contact
	var err error
	if *query != "" {
		contacts, err = db.FindContacts(svc.DB(), *query, *limit)
	} else {
		contacts, err = svc.Contacts(context.Background(), *archived)
	}
	if err != nil {
		return fmt.Errorf("failed to list contacts: %w", err)
	}

	if len(contacts) == 0 {
		fmt.Println("No contacts found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tWARMTH\tCOMPANY\tLAST CONTACT\tID")
	_, _ = fmt.Fprintln(w, "----\t------\t-------\t------------\t--")

	for _, contact := range contacts {
		company := contact.Company
		if company == "" {
			company = "-"
		}
		lastContact := "never"
		if contact.LastContactDate != nil {
			lastContact = contact.LastContactDate.Format("2006-01-02")
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			contact.Name, warmthBadge(contact.WarmthLevel), company, lastContact,
			contact.ID.String()[:8])
	}
	_ = w.Flush()

	fmt.Printf("\nTotal: %d contact(s)\n", len(contacts))
	return nil
}

// ShowContactCommand prints one contact in full with recent interactions.
func ShowContactCommand(svc *dashboard.Service, args []string) error {
	contact, err := resolveContact(svc, args, "show-contact")
	if err != nil {
		return err
	}

	fmt.Printf("%s\n", contact.Name)
	fmt.Printf("  Warmth: %s\n", warmthBadge(contact.WarmthLevel))
	if contact.Email != "" {
		fmt.Printf("  Email: %s\n", contact.Email)
	}
	if contact.Company != "" {
		fmt.Printf("  Company: %s\n", contact.Company)
	}
	if contact.Role != "" {
		fmt.Printf("  Role: %s\n", contact.Role)
	}
	if contact.LinkedInURL != "" {
		fmt.Printf("  LinkedIn: %s\n", contact.LinkedInURL)
	}
	if contact.ContactType != models.TypeUnspecified && contact.ContactType != "" {
		fmt.Printf("  Type: %s\n", contact.ContactType)
	}
	if contact.Recruiter != nil {
		fmt.Printf("  Specialization: %s\n", contact.Recruiter.Specialization)
	}
	if contact.LastContactDate != nil {
		fmt.Printf("  Last contact: %s\n", contact.LastContactDate.Format("2006-01-02"))
	}
	if contact.Notes != "" {
		fmt.Printf("  Notes: %s\n", contact.Notes)
	}

	interactions, err := db.ListInteractions(svc.DB(), &contact.ID, 10)
	if err != nil {
		return fmt.Errorf("failed to list interactions: %w", err)
	}
	if len(interactions) > 0 {
		fmt.Println("\nRecent interactions:")
		for _, i := range interactions {
			note := ""
			if i.Notes != "" {
				note = " - " + i.Notes
			}
			fmt.Printf("  %s %s%s\n", i.Date.Format("2006-01-02"), i.Type, note)
		}
	}
	return nil
}

// UpdateContactCommand updates fields on an existing contact.
func UpdateContactCommand(svc *dashboard.Service, args []string) error {
	fs := flag.NewFlagSet("update-contact", flag.ExitOnError)
	name := fs.String("name", "", "Contact name")
	email := fs.String("email", "", "Email address")
	company := fs.String("company", "", "Company name")
	role := fs.String("role", "", "Role or title")
	notes := fs.String("notes", "", "Notes about the contact")
	linkedin := fs.String("linkedin", "", "LinkedIn profile URL")
	contactType := fs.String("type", "", "Contact type")
	_ = fs.Parse(args)

	if len(fs.Args()) < 1 {
		return fmt.Errorf("contact ID is required")
	}
	contactID, err := uuid.Parse(fs.Args()[0])
	if err != nil {
		return fmt.Errorf("invalid contact ID: %w", err)
	}

	existing, err := db.GetContact(svc.DB(), contactID)
	if err != nil {
		return fmt.Errorf("failed to load contact: %w", err)
	}
	if existing == nil {
		return fmt.Errorf("contact not found: %s", contactID)
	}

	if *name != "" {
		existing.Name = *name
	}
	if *email != "" {
		existing.Email = *email
	}
	if *role != "" {
		existing.Role = *role
	}
	if *notes != "" {
		existing.Notes = *notes
	}
	if *linkedin != "" {
		existing.LinkedInURL = *linkedin
	}
	if *contactType != "" {
		existing.ContactType = models.ContactType(*contactType)
	}
	if *company != "" {
		existing.Company = *company
		match, err := db.FindCompanyByName(svc.DB(), *company)
		if err != nil {
			return fmt.Errorf("failed to lookup company: %w", err)
		}
		if match != nil {
			existing.CompanyID = &match.ID
		} else {
			existing.CompanyID = nil
		}
	}

	if err := svc.UpdateContact(context.Background(), contactID, existing); err != nil {
		return err
	}
	fmt.Printf("✓ Contact updated: %s\n", existing.Name)
	return nil
}

// ArchiveContactCommand hides a contact from lists and the dashboard.
func ArchiveContactCommand(svc *dashboard.Service, args []string) error {
	contact, err := resolveContact(svc, args, "archive-contact")
	if err != nil {
		return err
	}
	if err := svc.ArchiveContact(context.Background(), contact.ID); err != nil {
		return err
	}
	fmt.Printf("✓ Contact archived: %s\n", contact.Name)
	return nil
}

// RestoreContactCommand brings an archived contact back.
func RestoreContactCommand(svc *dashboard.Service, args []string) error {
	contact, err := resolveContact(svc, args, "restore-contact")
	if err != nil {
		return err
	}
	if err := svc.RestoreContact(context.Background(), contact.ID); err != nil {
		return err
	}
	fmt.Printf("✓ Contact restored: %s\n", contact.Name)
	return nil
}

// DeleteContactCommand permanently removes a contact and its history.
func DeleteContactCommand(svc *dashboard.Service, args []string) error {
	contact, err := resolveContact(svc, args, "delete-contact")
	if err != nil {
		return err
	}
	if err := svc.DeleteContact(context.Background(), contact.ID); err != nil {
		return err
	}
	fmt.Printf("✓ Contact deleted: %s\n", contact.Name)
	return nil
}

// BackfillCommand links name-only contacts to company rows.
func BackfillCommand(svc *dashboard.Service, args []string) error {
	updated, err := svc.BackfillCompanyIDs(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("✓ Linked %d contact(s) to companies\n", updated)
	return nil
}

// resolveContact reads the first positional arg as a contact id or name.
func resolveContact(svc *dashboard.Service, args []string, cmd string) (*models.Contact, error) {
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	_ = fs.Parse(args)

	if len(fs.Args()) < 1 {
		return nil, fmt.Errorf("contact ID or name is required")
	}
	return contactByRef(svc, fs.Args()[0])
}

// contactByRef resolves a uuid or a unique name fragment to a contact.
func contactByRef(svc *dashboard.Service, ref string) (*models.Contact, error) {
	if contactID, err := uuid.Parse(ref); err == nil {
		contact, err := db.GetContact(svc.DB(), contactID)
		if err != nil {
			return nil, fmt.Errorf("failed to load contact: %w", err)
		}
		if contact == nil {
			return nil, fmt.Errorf("contact not found: %s", contactID)
		}
		return contact, nil
	}

	matches, err := db.FindContacts(svc.DB(), ref, 2)
	if err != nil {
		return nil, fmt.Errorf("failed to lookup contact: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("contact not found: %s", ref)
	}
	if len(matches) > 1 {
		return nil, fmt.Errorf("more than one contact matches %q, use the ID", ref)
	}
	return &matches[0], nil
}

func warmthBadge(w models.Warmth) string {
	switch w {
	case models.WarmthWarm:
		return "🟢 warm"
	case models.WarmthCooling:
		return "🟡 cooling"
	default:
		return "🔴 cold"
	}
}

// parseDate accepts YYYY-MM-DD or "today".
func parseDate(s string) (time.Time, error) {
	if s == "" || strings.EqualFold(s, "today") {
		return time.Now(), nil
	}
	return time.Parse("2006-01-02", s)
}
