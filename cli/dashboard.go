// ABOUTME: Dashboard CLI command
// ABOUTME: Prints scores, streak, weekly summary, and today's actions
package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/kindling-crm/kindling/dashboard"
	"github.com/kindling-crm/kindling/insights"
	"github.com/kindling-crm/kindling/tui"
)

// DashboardCommand renders the dashboard, either as text or as a TUI.
func DashboardCommand(svc *dashboard.Service, args []string) error {
	fs := flag.NewFlagSet("dashboard", flag.ExitOnError)
	useTUI := fs.Bool("tui", false, "Open the interactive dashboard")
	_ = fs.Parse(args)

	if *useTUI {
		return tui.Run(svc)
	}

	data, err := svc.Load(context.Background())
	if err != nil {
		return fmt.Errorf("failed to load dashboard: %w", err)
	}

	fmt.Println("KINDLING DASHBOARD")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("  Network strength: %d/100\n", data.NetworkStrength)
	fmt.Printf("  Offer momentum:   %d/100\n", data.OfferMomentum)
	fmt.Printf("  Streak: %d day(s) (longest %d, %d tasks total)\n",
		data.Streak.CurrentStreak, data.Streak.LongestStreak, data.Streak.TotalTasksCompleted)

	fmt.Println("\nTHIS WEEK")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("  Interactions: %d\n", data.Weekly.InteractionsThisWeek)
	fmt.Printf("  Warm contacts: %d\n", data.Weekly.WarmContacts)
	fmt.Printf("  Relationships kept warm: %d\n", data.Weekly.CoolingSaved)
	fmt.Printf("  New paths into companies: %d\n", data.Weekly.NewPaths)
	if data.Weekly.NetworkStrengthDelta != 0 {
		fmt.Printf("  Network strength change: %+d\n", data.Weekly.NetworkStrengthDelta)
	}

	fmt.Println("\nTODAY'S ACTIONS")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	if len(data.Actions) == 0 {
		fmt.Println("  Nothing urgent — log an interaction or add a contact")
	} else {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for i, action := range data.Actions {
			_, _ = fmt.Fprintf(w, "  %d.\t%s\n", i+1, describeAction(action))
		}
		_ = w.Flush()
	}

	if len(data.Tasks) > 0 {
		done := 0
		for _, t := range data.Tasks {
			if t.Completed {
				done++
			}
		}
		fmt.Printf("\nTasks: %d/%d done today\n", done, len(data.Tasks))
	}

	var earned []string
	for _, badge := range data.Badges {
		if badge.Earned {
			earned = append(earned, badge.Icon+" "+badge.Name)
		}
	}
	if len(earned) > 0 {
		fmt.Println("\nACHIEVEMENTS")
		fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		for _, b := range earned {
			fmt.Printf("  %s\n", b)
		}
	}
	return nil
}

func describeAction(action insights.Action) string {
	switch action.Type {
	case insights.ActionFollowUp:
		return fmt.Sprintf("Follow up with %s", action.Contact.Name)
	case insights.ActionCompanyOverlap:
		return fmt.Sprintf("Ask %s for an intro at %s", action.Contact.Name, action.Metadata)
	default:
		if action.Metadata != "" {
			return fmt.Sprintf("Reach out to %s at %s", action.Contact.Name, action.Metadata)
		}
		return fmt.Sprintf("Reach out to %s", action.Contact.Name)
	}
}
