// ABOUTME: Company CLI commands
// ABOUTME: Target companies carry a 0-5 priority used by the prioritizer
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

// AddCompanyCommand adds a target company.
func AddCompanyCommand(svc *dashboard.Service, args []string) error {
	fs := flag.NewFlagSet("add-company", flag.ExitOnError)
	name := fs.String("name", "", "Company name (required)")
	priority := fs.Int("priority", 0, "Priority 0-5")
	industry := fs.String("industry", "", "Industry")
	targetRole := fs.String("target-role", "", "Role being pursued there")
	notes := fs.String("notes", "", "Notes")
	_ = fs.Parse(args)

	if *name == "" {
		return fmt.Errorf("--name is required")
	}

	company := &models.Company{
		Name:       *name,
		Priority:   *priority,
		Industry:   *industry,
		TargetRole: *targetRole,
		Notes:      *notes,
	}
	if err := svc.AddCompany(context.Background(), company); err != nil {
		return err
	}

	fmt.Printf("✓ Company created: %s (ID: %s)\n", company.Name, company.ID)
	if company.Priority > 0 {
		fmt.Printf("  Priority: %d\n", company.Priority)
	}
	return nil
}

// ListCompaniesCommand lists companies, highest priority first.
func ListCompaniesCommand(svc *dashboard.Service, args []string) error {
	fs := flag.NewFlagSet("list-companies", flag.ExitOnError)
	archived := fs.Bool("archived", false, "Show archived companies")
	_ = fs.Parse(args)

	companies, err := svc.Companies(context.Background(), *archived)
	if err != nil {
		return fmt.Errorf("failed to list companies: %w", err)
	}
	if len(companies) == 0 {
		fmt.Println("No companies found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tPRIORITY\tINDUSTRY\tTARGET ROLE\tID")
	_, _ = fmt.Fprintln(w, "----\t--------\t--------\t-----------\t--")

	for _, company := range companies {
		industry := company.Industry
		if industry == "" {
			industry = "-"
		}
		role := company.TargetRole
		if role == "" {
			role = "-"
		}
		_, _ = fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n",
			company.Name, company.Priority, industry, role, company.ID.String()[:8])
	}
	_ = w.Flush()

	fmt.Printf("\nTotal: %d company(ies)\n", len(companies))
	return nil
}

// UpdateCompanyCommand updates fields on an existing company.
func UpdateCompanyCommand(svc *dashboard.Service, args []string) error {
	fs := flag.NewFlagSet("update-company", flag.ExitOnError)
	name := fs.String("name", "", "Company name")
	priority := fs.Int("priority", -1, "Priority 0-5")
	industry := fs.String("industry", "", "Industry")
	targetRole := fs.String("target-role", "", "Role being pursued there")
	notes := fs.String("notes", "", "Notes")
	_ = fs.Parse(args)

	company, err := companyFromArgs(svc, fs.Args())
	if err != nil {
		return err
	}

	if *name != "" {
		company.Name = *name
	}
	if *priority >= 0 {
		company.Priority = *priority
	}
	if *industry != "" {
		company.Industry = *industry
	}
	if *targetRole != "" {
		company.TargetRole = *targetRole
	}
	if *notes != "" {
		company.Notes = *notes
	}

	if err := svc.UpdateCompany(context.Background(), company.ID, company); err != nil {
		return err
	}
	fmt.Printf("✓ Company updated: %s\n", company.Name)
	return nil
}

// ArchiveCompanyCommand hides a company from the target list.
func ArchiveCompanyCommand(svc *dashboard.Service, args []string) error {
	company, err := companyFromArgs(svc, args)
	if err != nil {
		return err
	}
	if err := svc.ArchiveCompany(context.Background(), company.ID); err != nil {
		return err
	}
	fmt.Printf("✓ Company archived: %s\n", company.Name)
	return nil
}

// RestoreCompanyCommand brings an archived company back.
func RestoreCompanyCommand(svc *dashboard.Service, args []string) error {
	company, err := companyFromArgs(svc, args)
	if err != nil {
		return err
	}
	if err := svc.RestoreCompany(context.Background(), company.ID); err != nil {
		return err
	}
	fmt.Printf("✓ Company restored: %s\n", company.Name)
	return nil
}

// DeleteCompanyCommand removes a company; contacts keep the free-text name.
func DeleteCompanyCommand(svc *dashboard.Service, args []string) error {
	company, err := companyFromArgs(svc, args)
	if err != nil {
		return err
	}
	if err := svc.DeleteCompany(context.Background(), company.ID); err != nil {
		return err
	}
	fmt.Printf("✓ Company deleted: %s\n", company.Name)
	return nil
}

// companyFromArgs resolves the first positional arg as a company id or name.
func companyFromArgs(svc *dashboard.Service, args []string) (*models.Company, error) {
	if len(args) < 1 {
		return nil, fmt.Errorf("company ID or name is required")
	}

	if id, err := uuid.Parse(args[0]); err == nil {
		company, err := db.GetCompany(svc.DB(), id)
		if err != nil {
			return nil, fmt.Errorf("failed to load company: %w", err)
		}
		if company == nil {
			return nil, fmt.Errorf("company not found: %s", id)
		}
		return company, nil
	}

	company, err := db.FindCompanyByName(svc.DB(), args[0])
	if err != nil {
		return nil, fmt.Errorf("failed to lookup company: %w", err)
	}
	if company == nil {
		return nil, fmt.Errorf("company not found: %s", args[0])
	}
	return company, nil
}
