// ABOUTME: Today's-action prioritizer over contacts, companies, and due follow-ups
// ABOUTME: Strict six-tier waterfall capped at three actions, stable within tiers
package insights

import (
	"strings"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"

	"github.com/kindling-crm/kindling/models"
)

// ActionType constants.
type ActionType string

const (
	ActionFollowUp       ActionType = "follow_up"
	ActionColdContact    ActionType = "cold_contact"
	ActionCompanyOverlap ActionType = "company_overlap"
)

// MaxDailyActions caps the recommended list.
const MaxDailyActions = 3

// Action is one recommended outreach step for today.
type Action struct {
	Type    ActionType     `json:"type"`
	Contact models.Contact `json:"contact"`
	// Metadata carries the matched company name for overlap and
	// name-match actions.
	Metadata string `json:"metadata,omitempty"`
}

// DueFollowUp joins a pending follow-up due today with its contact.
type DueFollowUp struct {
	FollowUp models.FollowUp `json:"follow_up"`
	Contact  models.Contact  `json:"contact"`
}

// PrioritizeActions produces at most MaxDailyActions recommended actions.
// Tiers fill remaining capacity in order and never revisit a contact:
//
//  1. follow-ups due today
//  2. cooling contacts
//  3. connectors whose influence set overlaps a target company
//  4. cold contacts at a target company (name match)
//  5. never-contacted contacts
//  6. reliable recruiters
//
// Warmth is recomputed from last contact dates; the persisted warmth
// column plays no part. Ties within a tier keep input order.
func PrioritizeActions(contacts []models.Contact, companies []models.Company, dueToday []DueFollowUp, now time.Time) []Action {
	actions := make([]Action, 0, MaxDailyActions)
	picked := make(map[uuid.UUID]bool)

	add := func(a Action) bool {
		if len(actions) >= MaxDailyActions || picked[a.Contact.ID] {
			return len(actions) < MaxDailyActions
		}
		picked[a.Contact.ID] = true
		actions = append(actions, a)
		return len(actions) < MaxDailyActions
	}

	// Tier 1: follow-ups due today.
	for _, f := range dueToday {
		if !add(Action{Type: ActionFollowUp, Contact: f.Contact}) {
			return actions
		}
	}

	// Tier 2: contacts that are cooling off.
	for _, c := range contacts {
		if ClassifyWarmth(c.LastContactDate, now) != models.WarmthCooling {
			continue
		}
		if !add(Action{Type: ActionColdContact, Contact: c}) {
			return actions
		}
	}

	// Tier 3: connectors with influence at a target company.
	targetIDs := mapset.NewThreadUnsafeSet[uuid.UUID]()
	for _, co := range companies {
		targetIDs.Add(co.ID)
	}
	for _, c := range contacts {
		influence := c.InfluenceCompanyIDs()
		if len(influence) == 0 {
			continue
		}
		overlap := mapset.NewThreadUnsafeSet(influence...).Intersect(targetIDs)
		if overlap.Cardinality() == 0 {
			continue
		}
		matched := ""
		for _, co := range companies {
			if overlap.Contains(co.ID) {
				matched = co.Name
				break
			}
		}
		if !add(Action{Type: ActionCompanyOverlap, Contact: c, Metadata: matched}) {
			return actions
		}
	}

	// Tier 4: cold contacts whose company name matches a target company.
	byName := make(map[string]models.Company, len(companies))
	for _, co := range companies {
		byName[normalizeName(co.Name)] = co
	}
	for _, c := range contacts {
		if ClassifyWarmth(c.LastContactDate, now) != models.WarmthCold {
			continue
		}
		target, ok := resolveTarget(c, companies, byName)
		if !ok {
			continue
		}
		if !add(Action{Type: ActionColdContact, Contact: c, Metadata: target.Name}) {
			return actions
		}
	}

	// Tier 5: contacts never contacted at all.
	for _, c := range contacts {
		if c.LastContactDate != nil {
			continue
		}
		if !add(Action{Type: ActionColdContact, Contact: c}) {
			return actions
		}
	}

	// Tier 6: reliable recruiters not yet selected.
	for _, c := range contacts {
		if c.ContactType != models.TypeReliableRecruiter {
			continue
		}
		if !add(Action{Type: ActionColdContact, Contact: c}) {
			return actions
		}
	}

	return actions
}

// resolveTarget resolves a contact's company against the target list:
// company_id takes precedence, falling back to a case-insensitive,
// trimmed match on the free-text company name.
func resolveTarget(c models.Contact, companies []models.Company, byName map[string]models.Company) (models.Company, bool) {
	if c.CompanyID != nil {
		for _, co := range companies {
			if co.ID == *c.CompanyID {
				return co, true
			}
		}
	}
	if c.Company == "" {
		return models.Company{}, false
	}
	co, ok := byName[normalizeName(c.Company)]
	return co, ok
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
