// ABOUTME: Tests for dashboard loading, task generation, and streaks
// ABOUTME: Runs against an in-memory sqlite store with a fixed clock
package dashboard

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kindling-crm/kindling/db"
	"github.com/kindling-crm/kindling/insights"
	"github.com/kindling-crm/kindling/models"
)

var testNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, opts ...Option) (*Service, *sql.DB) {
	t.Helper()
	database, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	database.SetMaxOpenConns(1)
	require.NoError(t, db.InitSchema(database))
	t.Cleanup(func() { _ = database.Close() })

	opts = append([]Option{WithClock(func() time.Time { return testNow })}, opts...)
	return NewService(database, opts...), database
}

func daysAgo(d int) *time.Time {
	t := testNow.AddDate(0, 0, -d)
	return &t
}

func TestLoadEmptyDatabase(t *testing.T) {
	svc, _ := newTestService(t)

	data, err := svc.Load(context.Background())
	require.NoError(t, err)

	assert.Empty(t, data.Contacts)
	assert.Empty(t, data.Companies)
	assert.Empty(t, data.Actions)
	assert.Equal(t, 0, data.NetworkStrength)
	assert.Equal(t, 0, data.OfferMomentum)
	assert.Equal(t, 0, data.Streak.CurrentStreak)
	assert.Equal(t, testNow, data.GeneratedAt)
}

func TestLoadWritesBackWarmth(t *testing.T) {
	svc, database := newTestService(t)

	contact := &models.Contact{Name: "Gone Quiet", LastContactDate: daysAgo(45)}
	require.NoError(t, db.CreateContact(database, contact))
	// Force a stale label to prove the load corrects it
	require.NoError(t, db.SetContactWarmth(database, contact.ID, models.WarmthWarm))

	data, err := svc.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, data.Contacts, 1)
	assert.Equal(t, models.WarmthCold, data.Contacts[0].WarmthLevel)

	stored, err := db.GetContact(database, contact.ID)
	require.NoError(t, err)
	assert.Equal(t, models.WarmthCold, stored.WarmthLevel)
}

func TestLoadKeepsContactsCacheWhenWarmthUnchanged(t *testing.T) {
	svc, database := newTestService(t)

	contact := &models.Contact{Name: "Settled", LastContactDate: daysAgo(2)}
	require.NoError(t, db.CreateContact(database, contact))
	// Stored label already matches what the classifier will compute
	require.NoError(t, db.SetContactWarmth(database, contact.ID, models.WarmthWarm))

	_, err := svc.Load(context.Background())
	require.NoError(t, err)

	_, cached, err := svc.contacts.Get(context.Background(), activeFilter, func(ctx context.Context) ([]models.Contact, error) {
		return db.ListContacts(database, false)
	})
	require.NoError(t, err)
	assert.True(t, cached, "load with no warmth drift should leave the contacts slot warm")
}

func TestLoadInvalidatesContactsCacheOnWarmthChange(t *testing.T) {
	svc, database := newTestService(t)

	contact := &models.Contact{Name: "Drifted", LastContactDate: daysAgo(45)}
	require.NoError(t, db.CreateContact(database, contact))
	require.NoError(t, db.SetContactWarmth(database, contact.ID, models.WarmthWarm))

	_, err := svc.Load(context.Background())
	require.NoError(t, err)

	_, cached, err := svc.contacts.Get(context.Background(), activeFilter, func(ctx context.Context) ([]models.Contact, error) {
		return db.ListContacts(database, false)
	})
	require.NoError(t, err)
	assert.False(t, cached, "a corrected label must drop the cached slot")
}

func TestLoadEvaluatesBadges(t *testing.T) {
	svc, database := newTestService(t)

	for i := 0; i < 5; i++ {
		contact := &models.Contact{Name: "Warm Friend", LastContactDate: daysAgo(1)}
		require.NoError(t, db.CreateContact(database, contact))
	}

	data, err := svc.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, data.Badges, 6)
	found := false
	for _, badge := range data.Badges {
		if badge.ID == "warm_5" {
			found = true
			assert.True(t, badge.Earned)
		}
	}
	assert.True(t, found)
}

func TestLoadRecordsDailyScoreSnapshot(t *testing.T) {
	svc, database := newTestService(t)

	contact := &models.Contact{Name: "Warm Friend", LastContactDate: daysAgo(2)}
	require.NoError(t, db.CreateContact(database, contact))

	_, err := svc.Load(context.Background())
	require.NoError(t, err)

	strength, err := db.StrengthAsOf(database, testNow)
	require.NoError(t, err)
	require.NotNil(t, strength)
	assert.Greater(t, *strength, 0)
}

func TestLoadComputesWeeklyDelta(t *testing.T) {
	svc, database := newTestService(t)

	require.NoError(t, db.RecordScoreSnapshot(database, testNow.AddDate(0, 0, -8), 10))
	for i := 0; i < 5; i++ {
		contact := &models.Contact{Name: "Warm Friend", LastContactDate: daysAgo(1)}
		require.NoError(t, db.CreateContact(database, contact))
	}

	data, err := svc.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, data.NetworkStrength-10, data.Weekly.NetworkStrengthDelta)
}

func TestLoadPrioritizesDueFollowUps(t *testing.T) {
	svc, database := newTestService(t)

	overdue := &models.Contact{Name: "Due Person", LastContactDate: daysAgo(3)}
	cooling := &models.Contact{Name: "Cooling Person", LastContactDate: daysAgo(20)}
	require.NoError(t, db.CreateContact(database, overdue))
	require.NoError(t, db.CreateContact(database, cooling))

	followUp := &models.FollowUp{ContactID: overdue.ID, DueDate: testNow, Note: "ping"}
	require.NoError(t, db.CreateFollowUp(database, followUp))

	data, err := svc.Load(context.Background())
	require.NoError(t, err)

	require.NotEmpty(t, data.Actions)
	assert.Equal(t, insights.ActionFollowUp, data.Actions[0].Type)
	assert.Equal(t, "Due Person", data.Actions[0].Contact.Name)
}

func TestGenerateDailyTasks(t *testing.T) {
	svc, database := newTestService(t)

	cooling := &models.Contact{Name: "Cooling Person", LastContactDate: daysAgo(20)}
	require.NoError(t, db.CreateContact(database, cooling))
	due := &models.Contact{Name: "Due Person", LastContactDate: daysAgo(3)}
	require.NoError(t, db.CreateContact(database, due))
	followUp := &models.FollowUp{ContactID: due.ID, DueDate: testNow, Note: "ping"}
	require.NoError(t, db.CreateFollowUp(database, followUp))

	tasks, err := svc.GenerateDailyTasks(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	assert.Equal(t, models.TaskFollowUp, tasks[0].TaskType)
	assert.Contains(t, tasks[0].Description, "Due Person")
	assert.Equal(t, models.TaskReachOut, tasks[1].TaskType)
	assert.Contains(t, tasks[1].Description, "Cooling Person")
}

func TestGenerateDailyTasksIdempotent(t *testing.T) {
	svc, database := newTestService(t)

	cooling := &models.Contact{Name: "Cooling Person", LastContactDate: daysAgo(20)}
	require.NoError(t, db.CreateContact(database, cooling))

	first, err := svc.GenerateDailyTasks(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := svc.GenerateDailyTasks(context.Background())
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].ID, second[0].ID)
}

func TestCompleteTaskUpdatesStreak(t *testing.T) {
	svc, database := newTestService(t)

	cooling := &models.Contact{Name: "Cooling Person", LastContactDate: daysAgo(20)}
	require.NoError(t, db.CreateContact(database, cooling))

	tasks, err := svc.GenerateDailyTasks(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	streak, err := svc.CompleteTask(context.Background(), tasks[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 1, streak.CurrentStreak)
	assert.Equal(t, 1, streak.TotalTasksCompleted)

	completed, err := db.GetDailyTask(database, tasks[0].ID)
	require.NoError(t, err)
	assert.True(t, completed.Completed)
}

func TestMutationsInvalidateCache(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	data, err := svc.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, data.Contacts)

	contact := &models.Contact{Name: "Fresh Face"}
	require.NoError(t, svc.AddContact(ctx, contact))

	data, err = svc.Load(ctx)
	require.NoError(t, err)
	require.Len(t, data.Contacts, 1)
	assert.Equal(t, "Fresh Face", data.Contacts[0].Name)
}

func TestAddContactValidation(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.AddContact(context.Background(), &models.Contact{Name: ""})
	require.Error(t, err)

	var fieldErr *models.FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "name", fieldErr.Field)
}

func TestLogInteractionRejectsUnknownType(t *testing.T) {
	svc, database := newTestService(t)

	contact := &models.Contact{Name: "Type Check"}
	require.NoError(t, db.CreateContact(database, contact))

	err := svc.LogInteraction(context.Background(), &models.Interaction{
		ContactID: contact.ID,
		Type:      "carrier_pigeon",
		Date:      testNow,
	})
	require.Error(t, err)
}
