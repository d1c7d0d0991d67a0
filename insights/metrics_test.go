package insights

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/kindling-crm/kindling/models"
)

func warmContacts(n int) []models.Contact {
	var out []models.Contact
	for i := 0; i < n; i++ {
		out = append(out, contact(fmt.Sprintf("warm-%d", i), days(2)))
	}
	return out
}

func interactionsOn(contactID uuid.UUID, n, daysBack int) []models.Interaction {
	var out []models.Interaction
	for i := 0; i < n; i++ {
		out = append(out, models.Interaction{
			ID:        uuid.New(),
			ContactID: contactID,
			Type:      models.InteractionEmail,
			Date:      testNow.AddDate(0, 0, -daysBack),
		})
	}
	return out
}

func TestNetworkStrengthEmpty(t *testing.T) {
	assert.Equal(t, 0, NetworkStrength(nil, nil, models.Streak{}, testNow))
}

func TestNetworkStrengthFullMarks(t *testing.T) {
	streak := models.Streak{CurrentStreak: 30, TotalTasksCompleted: 100}
	contacts := warmContacts(10)
	interactions := interactionsOn(contacts[0].ID, 10, 5)
	assert.Equal(t, 100, NetworkStrength(contacts, interactions, streak, testNow))
}

func TestNetworkStrengthSaturates(t *testing.T) {
	// Doubling every input past its target changes nothing.
	streak := models.Streak{CurrentStreak: 60, TotalTasksCompleted: 200}
	contacts := warmContacts(20)
	interactions := interactionsOn(contacts[0].ID, 20, 5)
	assert.Equal(t, 100, NetworkStrength(contacts, interactions, streak, testNow))
}

func TestNetworkStrengthMonotonic(t *testing.T) {
	streak := models.Streak{CurrentStreak: 5, TotalTasksCompleted: 20}
	base := NetworkStrength(warmContacts(3), nil, streak, testNow)

	moreWarm := NetworkStrength(warmContacts(4), nil, streak, testNow)
	assert.GreaterOrEqual(t, moreWarm, base)

	withInteractions := NetworkStrength(warmContacts(3), interactionsOn(uuid.New(), 2, 3), streak, testNow)
	assert.GreaterOrEqual(t, withInteractions, base)

	longerStreak := NetworkStrength(warmContacts(3), nil, models.Streak{CurrentStreak: 6, TotalTasksCompleted: 20}, testNow)
	assert.GreaterOrEqual(t, longerStreak, base)

	moreCompleted := NetworkStrength(warmContacts(3), nil, models.Streak{CurrentStreak: 5, TotalTasksCompleted: 21}, testNow)
	assert.GreaterOrEqual(t, moreCompleted, base)
}

func TestNetworkStrengthSubScoreWeights(t *testing.T) {
	// 5 warm contacts against a target of 10 is exactly half of the
	// 40-point warm weight.
	got := NetworkStrength(warmContacts(5), nil, models.Streak{}, testNow)
	assert.Equal(t, 20, got)
}

func TestOfferMomentumEmpty(t *testing.T) {
	assert.Equal(t, 0, OfferMomentum(nil, nil, nil, models.Streak{}, testNow))
}

func TestOfferMomentumCappedAt100(t *testing.T) {
	acme := models.Company{ID: uuid.New(), Name: "Acme"}
	contacts := warmContacts(20)
	for i := range contacts {
		contacts[i].CompanyID = &acme.ID
	}
	interactions := interactionsOn(contacts[0].ID, 30, 2)
	streak := models.Streak{CurrentStreak: 60, TotalTasksCompleted: 500}

	got := OfferMomentum(contacts, []models.Company{acme}, interactions, streak, testNow)
	assert.Equal(t, 100, got)
}

func TestOfferMomentumCountsWarmPathsByNameFallback(t *testing.T) {
	acme := models.Company{ID: uuid.New(), Name: "acme"}
	c := contact("warm-path", days(2))
	c.Company = "Acme"

	with := OfferMomentum([]models.Contact{c}, []models.Company{acme}, nil, models.Streak{}, testNow)
	without := OfferMomentum([]models.Contact{c}, nil, nil, models.Streak{}, testNow)
	assert.Greater(t, with, without)
}

func TestSummarizeWeek(t *testing.T) {
	acme := models.Company{ID: uuid.New(), Name: "Acme", CreatedAt: testNow.AddDate(0, 0, -30)}

	warm := contact("warm", days(2))
	warm.CompanyID = &acme.ID
	warm.CreatedAt = testNow.AddDate(0, 0, -3) // new path this week

	cold := contact("cold", days(60))
	cold.CreatedAt = testNow.AddDate(0, 0, -60)

	interactions := append(
		interactionsOn(warm.ID, 2, 3),      // this week, warm contact
		interactionsOn(cold.ID, 1, 2)...,   // this week, cold contact
	)
	interactions = append(interactions, interactionsOn(warm.ID, 1, 20)...) // older

	prior := 10
	s := SummarizeWeek([]models.Contact{warm, cold}, []models.Company{acme}, interactions, models.Streak{CurrentStreak: 4}, &prior, testNow)

	assert.Equal(t, 3, s.InteractionsThisWeek)
	assert.Equal(t, 1, s.WarmContacts)
	assert.Equal(t, 2, s.CoolingSaved)
	assert.Equal(t, 1, s.NewPaths)
	assert.Equal(t, 4, s.CurrentStreak)

	current := NetworkStrength([]models.Contact{warm, cold}, interactions, models.Streak{CurrentStreak: 4}, testNow)
	assert.Equal(t, current-prior, s.NetworkStrengthDelta)
}

func TestCountInteractionsSinceUsesCalendarDays(t *testing.T) {
	contactID := uuid.New()
	// Logged seven calendar days back but later in the day than now.
	// Wall-clock cutoff arithmetic would let it sneak into the window.
	edge := models.Interaction{
		ID:        uuid.New(),
		ContactID: contactID,
		Type:      models.InteractionEmail,
		Date:      time.Date(2025, 6, 8, 14, 0, 0, 0, time.UTC),
	}
	inside := models.Interaction{
		ID:        uuid.New(),
		ContactID: contactID,
		Type:      models.InteractionEmail,
		Date:      time.Date(2025, 6, 9, 23, 59, 0, 0, time.UTC),
	}

	assert.Equal(t, 1, countInteractionsSince([]models.Interaction{edge, inside}, testNow, 7))
}

func TestSummarizeWeekUsesCalendarDayWindow(t *testing.T) {
	warm := contact("edge", days(2))

	// Seven calendar days ago, afternoon. Not this week, regardless of
	// the hour the summary runs.
	late := models.Interaction{
		ID:        uuid.New(),
		ContactID: warm.ID,
		Type:      models.InteractionCall,
		Date:      time.Date(2025, 6, 8, 18, 0, 0, 0, time.UTC),
	}
	s := SummarizeWeek([]models.Contact{warm}, nil, []models.Interaction{late}, models.Streak{}, nil, testNow)
	assert.Equal(t, 0, s.InteractionsThisWeek)
	assert.Equal(t, 0, s.CoolingSaved)

	// Six calendar days ago still counts.
	late.Date = time.Date(2025, 6, 9, 18, 0, 0, 0, time.UTC)
	s = SummarizeWeek([]models.Contact{warm}, nil, []models.Interaction{late}, models.Streak{}, nil, testNow)
	assert.Equal(t, 1, s.InteractionsThisWeek)
}

func TestSummarizeWeekNewPathsUsesCalendarDayWindow(t *testing.T) {
	acme := models.Company{ID: uuid.New(), Name: "Acme", CreatedAt: testNow.AddDate(0, 0, -30)}

	c := contact("path", days(2))
	c.CompanyID = &acme.ID
	c.CreatedAt = time.Date(2025, 6, 8, 18, 0, 0, 0, time.UTC) // seven calendar days ago

	s := SummarizeWeek([]models.Contact{c}, []models.Company{acme}, nil, models.Streak{}, nil, testNow)
	assert.Equal(t, 0, s.NewPaths)

	c.CreatedAt = time.Date(2025, 6, 9, 2, 0, 0, 0, time.UTC)
	s = SummarizeWeek([]models.Contact{c}, []models.Company{acme}, nil, models.Streak{}, nil, testNow)
	assert.Equal(t, 1, s.NewPaths)
}

func TestSummarizeWeekNoHistory(t *testing.T) {
	s := SummarizeWeek(nil, nil, nil, models.Streak{}, nil, testNow)
	assert.Equal(t, 0, s.NetworkStrengthDelta)
	assert.Equal(t, 0, s.InteractionsThisWeek)
}
