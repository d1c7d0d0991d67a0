// ABOUTME: Achievement badges derived from streak and network milestones
// ABOUTME: Pure table evaluation over a snapshot; earned state is never stored
package insights

import (
	"time"

	"github.com/kindling-crm/kindling/models"
)

// Badge milestone thresholds.
const (
	badgeStreakShort      = 3
	badgeStreakLong       = 7
	badgeInteractionCount = 10
	badgeWarmContacts     = 5
	badgeWarmPathCount    = 3
)

// Badge is one achievement, earned or still locked.
type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Earned      bool   `json:"earned"`
}

type badgeStats struct {
	streak        int
	interactions  int
	warmContacts  int
	warmCompanies int
	hasConnector  bool
}

type badgeRule struct {
	id          string
	name        string
	description string
	icon        string
	earned      func(badgeStats) bool
}

var badgeRules = []badgeRule{
	{"streak_3", "3 Days in a Row", "Maintained a 3-day streak", "🔥",
		func(s badgeStats) bool { return s.streak >= badgeStreakShort }},
	{"streak_7", "Week Warrior", "Maintained a 7-day streak", "⚡",
		func(s badgeStats) bool { return s.streak >= badgeStreakLong }},
	{"interactions_10", "Network Builder", "Logged 10 interactions", "🤝",
		func(s badgeStats) bool { return s.interactions >= badgeInteractionCount }},
	{"warm_5", "Warm Network", "5 warm contacts", "☀️",
		func(s badgeStats) bool { return s.warmContacts >= badgeWarmContacts }},
	{"paths_3", "Path Finder", "3 companies with warm paths", "🎯",
		func(s badgeStats) bool { return s.warmCompanies >= badgeWarmPathCount }},
	{"first_connector", "First Connector", "Added your first connector", "👥",
		func(s badgeStats) bool { return s.hasConnector }},
}

// EvaluateBadges derives every badge's earned state from the current
// snapshot. The result always lists all badges, in a stable order.
func EvaluateBadges(contacts []models.Contact, companies []models.Company, interactions []models.Interaction, streak models.Streak, now time.Time) []Badge {
	stats := badgeStats{
		streak:        streak.CurrentStreak,
		interactions:  len(interactions),
		warmContacts:  countWarm(contacts, now),
		warmCompanies: countCompaniesWithWarmPaths(contacts, companies, now),
	}
	for _, c := range contacts {
		if c.ContactType == models.TypeConnector {
			stats.hasConnector = true
			break
		}
	}

	badges := make([]Badge, 0, len(badgeRules))
	for _, rule := range badgeRules {
		badges = append(badges, Badge{
			ID:          rule.id,
			Name:        rule.name,
			Description: rule.description,
			Icon:        rule.icon,
			Earned:      rule.earned(stats),
		})
	}
	return badges
}

// countCompaniesWithWarmPaths counts distinct target companies reachable
// through at least one warm contact.
func countCompaniesWithWarmPaths(contacts []models.Contact, companies []models.Company, now time.Time) int {
	byName := make(map[string]models.Company, len(companies))
	for _, co := range companies {
		byName[normalizeName(co.Name)] = co
	}
	seen := make(map[string]bool)
	for _, c := range contacts {
		if ClassifyWarmth(c.LastContactDate, now) != models.WarmthWarm {
			continue
		}
		if target, ok := resolveTarget(c, companies, byName); ok {
			seen[target.ID.String()] = true
		}
	}
	return len(seen)
}
