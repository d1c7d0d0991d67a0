// ABOUTME: Aggregate dashboard scores: network strength, offer momentum, weekly summary
// ABOUTME: Pure functions over an in-memory snapshot; nothing here persists
package insights

import (
	"math"
	"time"

	"github.com/kindling-crm/kindling/models"
)

// Network strength sub-score targets and weights.
const (
	warmTarget        = 10.0
	warmWeight        = 40.0
	recentTarget      = 10.0
	recentWeight      = 20.0
	streakTarget      = 30.0
	streakWeight      = 20.0
	completedTarget   = 100.0
	completedWeight   = 20.0
	warmPathTarget    = 5.0
	warmPathWeight    = 30.0
	weekTarget        = 5.0
	weekWeight        = 30.0
	momentumStreakCap = 10.0
)

// NetworkStrength scores the overall network 0-100 as a weighted sum of
// four saturating sub-scores: warm-contact density, recent-interaction
// density (30 days), streak length, and lifetime completed tasks.
func NetworkStrength(contacts []models.Contact, interactions []models.Interaction, streak models.Streak, now time.Time) int {
	warm := countWarm(contacts, now)
	recent := countInteractionsSince(interactions, now, 30)

	score := subScore(float64(warm), warmTarget, warmWeight) +
		subScore(float64(recent), recentTarget, recentWeight) +
		subScore(float64(streak.CurrentStreak), streakTarget, streakWeight) +
		subScore(float64(streak.TotalTasksCompleted), completedTarget, completedWeight)

	return int(math.Round(score))
}

// OfferMomentum scores short-term job-search momentum 0-100, blending
// network strength with warm paths into target companies and the past
// week's activity.
func OfferMomentum(contacts []models.Contact, companies []models.Company, interactions []models.Interaction, streak models.Streak, now time.Time) int {
	ns := NetworkStrength(contacts, interactions, streak, now)
	warmPaths := countWarmPaths(contacts, companies, now)
	week := countInteractionsSince(interactions, now, 7)

	score := 0.4*float64(ns) +
		subScore(float64(warmPaths), warmPathTarget, warmPathWeight) +
		subScore(float64(week), weekTarget, weekWeight) +
		subScore(float64(streak.CurrentStreak), 7.0, momentumStreakCap)

	if score > 100 {
		score = 100
	}
	return int(math.Round(score))
}

// WeeklySummary aggregates the past seven days of activity.
type WeeklySummary struct {
	InteractionsThisWeek int `json:"interactions_this_week"`
	WarmContacts         int `json:"warm_contacts"`
	// CoolingSaved counts this week's interactions whose contact is
	// currently warm, a proxy for successful re-engagement.
	CoolingSaved int `json:"cooling_saved"`
	// NewPaths counts contacts created this week that resolve to a company.
	NewPaths      int `json:"new_paths"`
	CurrentStreak int `json:"current_streak"`
	// NetworkStrengthDelta is the change versus the closest snapshot at
	// least a week old, zero when no history exists yet.
	NetworkStrengthDelta int `json:"network_strength_delta"`
}

// SummarizeWeek computes the weekly summary. priorStrength is the
// network-strength snapshot from a week ago, nil when none is recorded.
func SummarizeWeek(contacts []models.Contact, companies []models.Company, interactions []models.Interaction, streak models.Streak, priorStrength *int, now time.Time) WeeklySummary {
	warmByID := make(map[string]bool)
	for _, c := range contacts {
		if ClassifyWarmth(c.LastContactDate, now) == models.WarmthWarm {
			warmByID[c.ID.String()] = true
		}
	}

	byName := make(map[string]models.Company, len(companies))
	for _, co := range companies {
		byName[normalizeName(co.Name)] = co
	}

	s := WeeklySummary{
		WarmContacts:  len(warmByID),
		CurrentStreak: streak.CurrentStreak,
	}

	// "This week" means the last seven calendar days, so the window does
	// not shift with the time of day the summary runs.
	for _, i := range interactions {
		if daysBetween(i.Date, now) >= 7 {
			continue
		}
		s.InteractionsThisWeek++
		if warmByID[i.ContactID.String()] {
			s.CoolingSaved++
		}
	}

	for _, c := range contacts {
		if daysBetween(c.CreatedAt, now) >= 7 {
			continue
		}
		if _, ok := resolveTarget(c, companies, byName); ok {
			s.NewPaths++
		}
	}

	if priorStrength != nil {
		s.NetworkStrengthDelta = NetworkStrength(contacts, interactions, streak, now) - *priorStrength
	}

	return s
}

// subScore scales actual against target, saturating at weight. Monotonic
// and never negative.
func subScore(actual, target, weight float64) float64 {
	if actual <= 0 {
		return 0
	}
	s := actual / target * weight
	if s > weight {
		return weight
	}
	return s
}

func countWarm(contacts []models.Contact, now time.Time) int {
	n := 0
	for _, c := range contacts {
		if ClassifyWarmth(c.LastContactDate, now) == models.WarmthWarm {
			n++
		}
	}
	return n
}

// countInteractionsSince counts interactions within the last days calendar
// days. Dates compare at day granularity, matching the warmth classifier.
func countInteractionsSince(interactions []models.Interaction, now time.Time, days int) int {
	n := 0
	for _, i := range interactions {
		if daysBetween(i.Date, now) < days {
			n++
		}
	}
	return n
}

// countWarmPaths counts warm contacts that resolve to a target company by
// id or name fallback.
func countWarmPaths(contacts []models.Contact, companies []models.Company, now time.Time) int {
	byName := make(map[string]models.Company, len(companies))
	for _, co := range companies {
		byName[normalizeName(co.Name)] = co
	}
	n := 0
	for _, c := range contacts {
		if ClassifyWarmth(c.LastContactDate, now) != models.WarmthWarm {
			continue
		}
		if _, ok := resolveTarget(c, companies, byName); ok {
			n++
		}
	}
	return n
}
