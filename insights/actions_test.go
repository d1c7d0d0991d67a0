package insights

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kindling-crm/kindling/models"
)

func contact(name string, lastContactDays *int) models.Contact {
	c := models.Contact{
		ID:          uuid.New(),
		Name:        name,
		ContactType: models.TypeUnspecified,
	}
	if lastContactDays != nil {
		c.LastContactDate = daysAgo(*lastContactDays)
	}
	return c
}

func days(d int) *int { return &d }

func TestPrioritizeActionsEmpty(t *testing.T) {
	actions := PrioritizeActions(nil, nil, nil, testNow)
	assert.Empty(t, actions)
}

func TestPrioritizeActionsCapAndNoDuplicates(t *testing.T) {
	var contacts []models.Contact
	for i := 0; i < 10; i++ {
		contacts = append(contacts, contact(fmt.Sprintf("cooling-%d", i), days(20)))
	}

	actions := PrioritizeActions(contacts, nil, nil, testNow)
	require.Len(t, actions, MaxDailyActions)

	seen := make(map[uuid.UUID]bool)
	for _, a := range actions {
		assert.False(t, seen[a.Contact.ID], "contact selected twice")
		seen[a.Contact.ID] = true
	}
}

func TestPrioritizeActionsFollowUpsFirst(t *testing.T) {
	// Two due-today follow-ups and five cooling contacts: the two
	// follow-ups come first in input order, then exactly one cooling.
	fu1 := contact("followup-one", days(40))
	fu2 := contact("followup-two", days(3))
	due := []DueFollowUp{
		{FollowUp: models.FollowUp{ID: uuid.New(), ContactID: fu1.ID, DueDate: testNow}, Contact: fu1},
		{FollowUp: models.FollowUp{ID: uuid.New(), ContactID: fu2.ID, DueDate: testNow}, Contact: fu2},
	}

	var contacts []models.Contact
	for i := 0; i < 5; i++ {
		contacts = append(contacts, contact(fmt.Sprintf("cooling-%d", i), days(20)))
	}

	actions := PrioritizeActions(contacts, nil, due, testNow)
	require.Len(t, actions, 3)
	assert.Equal(t, ActionFollowUp, actions[0].Type)
	assert.Equal(t, "followup-one", actions[0].Contact.Name)
	assert.Equal(t, ActionFollowUp, actions[1].Type)
	assert.Equal(t, "followup-two", actions[1].Contact.Name)
	assert.Equal(t, ActionColdContact, actions[2].Type)
	assert.Equal(t, "cooling-0", actions[2].Contact.Name)
}

func TestPrioritizeActionsConnectorOverlap(t *testing.T) {
	acme := models.Company{ID: uuid.New(), Name: "Acme"}
	other := uuid.New()

	conn := contact("connie", days(60))
	conn.ContactType = models.TypeConnector
	conn.Connector = &models.ConnectorProfile{InfluenceCompanyIDs: []uuid.UUID{other, acme.ID}}

	noOverlap := contact("nobody", days(60))
	noOverlap.ContactType = models.TypeConnector
	noOverlap.Connector = &models.ConnectorProfile{InfluenceCompanyIDs: []uuid.UUID{uuid.New()}}

	actions := PrioritizeActions([]models.Contact{noOverlap, conn}, []models.Company{acme}, nil, testNow)
	require.Len(t, actions, 1)
	assert.Equal(t, ActionCompanyOverlap, actions[0].Type)
	assert.Equal(t, "connie", actions[0].Contact.Name)
	assert.Equal(t, "Acme", actions[0].Metadata)
}

func TestPrioritizeActionsColdNameFallback(t *testing.T) {
	// A cold contact with company_id unset and company "Acme" matches the
	// company row named "acme" case-insensitively.
	acme := models.Company{ID: uuid.New(), Name: "acme"}
	cold := contact("frosty", days(45))
	cold.Company = "  Acme "

	actions := PrioritizeActions([]models.Contact{cold}, []models.Company{acme}, nil, testNow)
	require.Len(t, actions, 1)
	assert.Equal(t, ActionColdContact, actions[0].Type)
	assert.Equal(t, "acme", actions[0].Metadata)
}

func TestPrioritizeActionsNeverContactedAndRecruiters(t *testing.T) {
	never := contact("fresh", nil)
	recruiter := contact("rex", days(45))
	recruiter.ContactType = models.TypeReliableRecruiter
	recruiter.Recruiter = &models.RecruiterProfile{Specialization: models.SpecInterviewPrep}

	actions := PrioritizeActions([]models.Contact{recruiter, never}, nil, nil, testNow)
	require.Len(t, actions, 2)
	// Tier 5 (never contacted) outranks tier 6 (recruiters) regardless of
	// input order.
	assert.Equal(t, "fresh", actions[0].Contact.Name)
	assert.Equal(t, "rex", actions[1].Contact.Name)
}

func TestPrioritizeActionsEarlierTiersDominate(t *testing.T) {
	// Three cooling contacts exhaust capacity before a connector with a
	// perfect overlap is ever considered.
	acme := models.Company{ID: uuid.New(), Name: "Acme"}
	conn := contact("connie", days(60))
	conn.ContactType = models.TypeConnector
	conn.Connector = &models.ConnectorProfile{InfluenceCompanyIDs: []uuid.UUID{acme.ID}}

	contacts := []models.Contact{
		contact("cooling-a", days(16)),
		contact("cooling-b", days(20)),
		contact("cooling-c", days(30)),
		conn,
	}

	actions := PrioritizeActions(contacts, []models.Company{acme}, nil, testNow)
	require.Len(t, actions, 3)
	for _, a := range actions {
		assert.Equal(t, ActionColdContact, a.Type)
	}
}

func TestPrioritizeActionsFollowUpContactNotRepeated(t *testing.T) {
	// A cooling contact already picked as a follow-up is not selected
	// again by tier 2.
	c := contact("double", days(20))
	due := []DueFollowUp{
		{FollowUp: models.FollowUp{ID: uuid.New(), ContactID: c.ID, DueDate: testNow}, Contact: c},
	}

	actions := PrioritizeActions([]models.Contact{c}, nil, due, testNow)
	require.Len(t, actions, 1)
	assert.Equal(t, ActionFollowUp, actions[0].Type)
}
