// ABOUTME: Warmth classification from elapsed time since last contact
// ABOUTME: Pure, total function; the stored warmth column is never consulted
package insights

import (
	"time"

	"github.com/kindling-crm/kindling/models"
)

// Warmth thresholds in calendar days. A contact engaged within the last
// two weeks is warm, within a month cooling, otherwise cold.
const (
	warmMaxDays    = 14
	coolingMaxDays = 30
)

// ClassifyWarmth derives the warmth level for a contact from its last
// contact date. A nil date means never contacted and classifies as cold.
// The function is pure and total; callers pass "now" explicitly.
func ClassifyWarmth(lastContact *time.Time, now time.Time) models.Warmth {
	if lastContact == nil {
		return models.WarmthCold
	}
	d := daysBetween(*lastContact, now)
	switch {
	case d <= warmMaxDays:
		return models.WarmthWarm
	case d <= coolingMaxDays:
		return models.WarmthCooling
	default:
		return models.WarmthCold
	}
}

// daysBetween counts whole calendar days from one date to another,
// ignoring time of day so threshold boundaries land exactly on day counts.
func daysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	d := int(t.Sub(f).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}
