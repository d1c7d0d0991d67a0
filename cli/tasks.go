// ABOUTME: Daily task CLI commands
// ABOUTME: Generating today's list, showing it, and completing tasks
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
)

// GenerateTasksCommand turns today's recommended actions into tasks.
func GenerateTasksCommand(svc *dashboard.Service, args []string) error {
	tasks, err := svc.GenerateDailyTasks(context.Background())
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		fmt.Println("Nothing to do today — the network is warm")
		return nil
	}
	fmt.Printf("✓ %d task(s) for today\n", len(tasks))
	return printTasks(svc, args)
}

// TodayCommand lists today's tasks.
func TodayCommand(svc *dashboard.Service, args []string) error {
	return printTasks(svc, args)
}

func printTasks(svc *dashboard.Service, args []string) error {
	tasks, err := db.TasksForDate(svc.DB(), time.Now())
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}
	if len(tasks) == 0 {
		fmt.Println("No tasks for today — run generate-tasks first")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "STATUS\tTYPE\tDESCRIPTION\tID")
	_, _ = fmt.Fprintln(w, "------\t----\t-----------\t--")
	for _, t := range tasks {
		status := "[ ]"
		if t.Completed {
			status = "[✓]"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", status, t.TaskType, t.Description, t.ID.String()[:8])
	}
	_ = w.Flush()
	return nil
}

// CompleteTaskCommand marks a task done and reports the streak.
func CompleteTaskCommand(svc *dashboard.Service, args []string) error {
	fs := flag.NewFlagSet("complete-task", flag.ExitOnError)
	_ = fs.Parse(args)

	if len(fs.Args()) < 1 {
		return fmt.Errorf("task ID is required")
	}
	taskID, err := resolveTaskID(svc, fs.Args()[0])
	if err != nil {
		return err
	}

	streak, err := svc.CompleteTask(context.Background(), taskID)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Task completed — streak: %d day(s), longest: %d, total: %d\n",
		streak.CurrentStreak, streak.LongestStreak, streak.TotalTasksCompleted)
	return nil
}

// resolveTaskID accepts a full uuid or the 8-char prefix printed in lists.
func resolveTaskID(svc *dashboard.Service, arg string) (uuid.UUID, error) {
	if id, err := uuid.Parse(arg); err == nil {
		return id, nil
	}

	tasks, err := db.TasksForDate(svc.DB(), time.Now())
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	for _, t := range tasks {
		if len(arg) >= 4 && len(arg) <= 36 && t.ID.String()[:len(arg)] == arg {
			return t.ID, nil
		}
	}
	return uuid.Nil, fmt.Errorf("task not found: %s", arg)
}
