// ABOUTME: Dashboard MCP tool handlers
// ABOUTME: Implements get_dashboard and complete_task
package handlers

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/kindling-crm/kindling/dashboard"
)

type DashboardHandlers struct {
	svc *dashboard.Service
}

func NewDashboardHandlers(svc *dashboard.Service) *DashboardHandlers {
	return &DashboardHandlers{svc: svc}
}

type GetDashboardInput struct {
	GenerateTasks bool `json:"generate_tasks,omitempty" jsonschema:"Also generate today's tasks if missing"`
}

type ActionOutput struct {
	Type        string `json:"type"`
	ContactID   string `json:"contact_id"`
	ContactName string `json:"contact_name"`
	Company     string `json:"company,omitempty"`
}

type TaskOutput struct {
	ID          string `json:"id"`
	TaskType    string `json:"task_type"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

type StreakOutput struct {
	CurrentStreak       int `json:"current_streak"`
	LongestStreak       int `json:"longest_streak"`
	TotalTasksCompleted int `json:"total_tasks_completed"`
}

type BadgeOutput struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Icon   string `json:"icon"`
	Earned bool   `json:"earned"`
}

type GetDashboardOutput struct {
	NetworkStrength      int            `json:"network_strength"`
	OfferMomentum        int            `json:"offer_momentum"`
	Actions              []ActionOutput `json:"actions"`
	Tasks                []TaskOutput   `json:"tasks"`
	Badges               []BadgeOutput  `json:"badges"`
	Streak               StreakOutput   `json:"streak"`
	InteractionsThisWeek int            `json:"interactions_this_week"`
	WarmContacts         int            `json:"warm_contacts"`
	NetworkStrengthDelta int            `json:"network_strength_delta"`
}

func (h *DashboardHandlers) GetDashboard(ctx context.Context, request *mcp.CallToolRequest, input GetDashboardInput) (*mcp.CallToolResult, GetDashboardOutput, error) {
	if input.GenerateTasks {
		if _, err := h.svc.GenerateDailyTasks(ctx); err != nil {
			return nil, GetDashboardOutput{}, err
		}
	}

	data, err := h.svc.Load(ctx)
	if err != nil {
		return nil, GetDashboardOutput{}, err
	}

	out := GetDashboardOutput{
		NetworkStrength: data.NetworkStrength,
		OfferMomentum:   data.OfferMomentum,
		Streak: StreakOutput{
			CurrentStreak:       data.Streak.CurrentStreak,
			LongestStreak:       data.Streak.LongestStreak,
			TotalTasksCompleted: data.Streak.TotalTasksCompleted,
		},
		InteractionsThisWeek: data.Weekly.InteractionsThisWeek,
		WarmContacts:         data.Weekly.WarmContacts,
		NetworkStrengthDelta: data.Weekly.NetworkStrengthDelta,
	}
	for _, action := range data.Actions {
		out.Actions = append(out.Actions, ActionOutput{
			Type:        string(action.Type),
			ContactID:   action.Contact.ID.String(),
			ContactName: action.Contact.Name,
			Company:     action.Metadata,
		})
	}
	for _, task := range data.Tasks {
		out.Tasks = append(out.Tasks, TaskOutput{
			ID:          task.ID.String(),
			TaskType:    task.TaskType,
			Description: task.Description,
			Completed:   task.Completed,
		})
	}
	for _, badge := range data.Badges {
		out.Badges = append(out.Badges, BadgeOutput{
			ID:     badge.ID,
			Name:   badge.Name,
			Icon:   badge.Icon,
			Earned: badge.Earned,
		})
	}
	return nil, out, nil
}

type CompleteTaskInput struct {
	ID string `json:"id" jsonschema:"Task ID (required)"`
}

type CompleteTaskOutput struct {
	ID     string       `json:"id"`
	Streak StreakOutput `json:"streak"`
}

func (h *DashboardHandlers) CompleteTask(ctx context.Context, request *mcp.CallToolRequest, input CompleteTaskInput) (*mcp.CallToolResult, CompleteTaskOutput, error) {
	taskID, err := uuid.Parse(input.ID)
	if err != nil {
		return nil, CompleteTaskOutput{}, fmt.Errorf("invalid task id: %w", err)
	}

	streak, err := h.svc.CompleteTask(ctx, taskID)
	if err != nil {
		return nil, CompleteTaskOutput{}, err
	}

	return nil, CompleteTaskOutput{
		ID: input.ID,
		Streak: StreakOutput{
			CurrentStreak:       streak.CurrentStreak,
			LongestStreak:       streak.LongestStreak,
			TotalTasksCompleted: streak.TotalTasksCompleted,
		},
	}, nil
}
