// ABOUTME: Integration tests covering the full contact lifecycle
// ABOUTME: Exercises companies, interactions, and follow-ups together
package db

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kindling-crm/kindling/models"
)

// TestNetworkingScenario walks a realistic week: meet a contact at a target
// company, log interactions, schedule a follow-up, and complete it.
func TestNetworkingScenario(t *testing.T) {
	db := setupTestDB(t)
	today := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)

	// A target company on the radar
	acme := &models.Company{
		Name:       "Acme Corporation",
		Priority:   4,
		Industry:   "Technology",
		TargetRole: "Staff Engineer",
	}
	require.NoError(t, CreateCompany(db, acme))

	// Met a connector there
	alice := &models.Contact{
		Name:        "Alice Johnson",
		Email:       "alice@acme.com",
		Company:     "Acme Corporation",
		CompanyID:   &acme.ID,
		Role:        "VP of Engineering",
		ContactType: models.TypeConnector,
		Connector:   &models.ConnectorProfile{InfluenceCompanyIDs: []uuid.UUID{acme.ID}},
	}
	require.NoError(t, CreateContact(db, alice))

	// A coffee meeting four days ago
	meeting := &models.Interaction{
		ContactID: alice.ID,
		Type:      models.InteractionMeeting,
		Date:      today.AddDate(0, 0, -4),
		Notes:     "Coffee chat about the platform team",
	}
	require.NoError(t, LogInteraction(db, meeting))

	// Logging advanced the contact's last contact date
	found, err := GetContact(db, alice.ID)
	require.NoError(t, err)
	require.NotNil(t, found.LastContactDate)
	assert.Equal(t, formatDate(meeting.Date), formatDate(*found.LastContactDate))

	// Schedule a follow-up for today
	followUp := &models.FollowUp{
		ContactID: alice.ID,
		DueDate:   today,
		Note:      "Send the portfolio link",
	}
	require.NoError(t, CreateFollowUp(db, followUp))

	// It surfaces in the due-today join with the full contact attached
	due, err := DueFollowUps(db, today)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, followUp.ID, due[0].FollowUp.ID)
	assert.Equal(t, "Alice Johnson", due[0].Contact.Name)
	require.NotNil(t, due[0].Contact.Connector)
	assert.Equal(t, []uuid.UUID{acme.ID}, due[0].Contact.Connector.InfluenceCompanyIDs)

	// Complete it; the pending list empties
	require.NoError(t, CompleteFollowUp(db, followUp.ID, true))

	pending, err := ListFollowUps(db, true)
	require.NoError(t, err)
	assert.Empty(t, pending)

	due, err = DueFollowUps(db, today)
	require.NoError(t, err)
	assert.Empty(t, due)

	// The completed follow-up keeps its completion timestamp
	all, err := ListFollowUps(db, false)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].Completed)
	assert.NotNil(t, all[0].CompletedAt)
}

// TestCompanyNameLookup confirms the trimmed case-insensitive match used by
// the action prioritizer's fallback path.
func TestCompanyNameLookup(t *testing.T) {
	db := setupTestDB(t)

	company := &models.Company{Name: "Globex"}
	require.NoError(t, CreateCompany(db, company))

	found, err := FindCompanyByName(db, "  gLoBeX ")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, company.ID, found.ID)

	missing, err := FindCompanyByName(db, "Initech")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

// TestFollowUpsNotDueTomorrow confirms day-exact matching in the due query.
func TestFollowUpsNotDueTomorrow(t *testing.T) {
	db := setupTestDB(t)
	today := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)

	contact := &models.Contact{Name: "Future Person"}
	require.NoError(t, CreateContact(db, contact))

	followUp := &models.FollowUp{
		ContactID: contact.ID,
		DueDate:   today.AddDate(0, 0, 1),
		Note:      "Not yet",
	}
	require.NoError(t, CreateFollowUp(db, followUp))

	due, err := DueFollowUps(db, today)
	require.NoError(t, err)
	assert.Empty(t, due)

	due, err = DueFollowUps(db, today.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Len(t, due, 1)
}
