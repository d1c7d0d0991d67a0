// ABOUTME: Dashboard orchestration tying the store, caches, and insights
// ABOUTME: All mutations route through here so cache slots stay honest
package dashboard

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kindling-crm/kindling/cache"
	"github.com/kindling-crm/kindling/db"
	"github.com/kindling-crm/kindling/insights"
	"github.com/kindling-crm/kindling/models"
)

const (
	activeFilter   = "active"
	archivedFilter = "archived"

	// warmthWriteConcurrency bounds the parallel warmth write-back.
	warmthWriteConcurrency = 4

	// interactionScanLimit bounds how much history the scoring reads.
	interactionScanLimit = 1000
)

// Data is one computed dashboard frame.
type Data struct {
	Contacts        []models.Contact       `json:"contacts"`
	Companies       []models.Company       `json:"companies"`
	Actions         []insights.Action      `json:"actions"`
	NetworkStrength int                    `json:"network_strength"`
	OfferMomentum   int                    `json:"offer_momentum"`
	Weekly          insights.WeeklySummary `json:"weekly"`
	Streak          models.Streak          `json:"streak"`
	Tasks           []models.DailyTask     `json:"tasks"`
	Badges          []insights.Badge       `json:"badges"`
	GeneratedAt     time.Time              `json:"generated_at"`
}

// Service owns the dashboard lifecycle: loading collections through the
// cache, recomputing warmth and scores, and recording daily snapshots.
type Service struct {
	db        *sql.DB
	contacts  *cache.Collection[models.Contact]
	companies *cache.Collection[models.Company]
	snapshots *cache.SnapshotStore
	now       func() time.Time
	logger    *zap.Logger
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithSnapshotStore enables persisted dashboard snapshots. Without one the
// service still works; only the instant first paint is lost.
func WithSnapshotStore(store *cache.SnapshotStore) Option {
	return func(s *Service) { s.snapshots = store }
}

func NewService(database *sql.DB, opts ...Option) *Service {
	s := &Service{
		db:     database,
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.contacts = cache.NewCollection[models.Contact]("contacts",
		cache.WithClock[models.Contact](s.now), cache.WithLogger[models.Contact](s.logger))
	s.companies = cache.NewCollection[models.Company]("companies",
		cache.WithClock[models.Company](s.now), cache.WithLogger[models.Company](s.logger))
	return s
}

// DB exposes the underlying store for read-only command paths.
func (s *Service) DB() *sql.DB {
	return s.db
}

// Contacts returns contacts with the given archived state through the cache.
func (s *Service) Contacts(ctx context.Context, archived bool) ([]models.Contact, error) {
	filter := activeFilter
	if archived {
		filter = archivedFilter
	}
	contacts, _, err := s.contacts.Get(ctx, filter, func(ctx context.Context) ([]models.Contact, error) {
		return db.ListContacts(s.db, archived)
	})
	return contacts, err
}

// Companies returns companies with the given archived state through the cache.
func (s *Service) Companies(ctx context.Context, archived bool) ([]models.Company, error) {
	filter := activeFilter
	if archived {
		filter = archivedFilter
	}
	companies, _, err := s.companies.Get(ctx, filter, func(ctx context.Context) ([]models.Company, error) {
		return db.ListCompanies(s.db, archived)
	})
	return companies, err
}

// CachedSnapshot returns the last persisted dashboard frame, or nil when
// none exists or it cannot be decoded.
func (s *Service) CachedSnapshot() *Data {
	if s.snapshots == nil {
		return nil
	}
	blob := s.snapshots.Latest()
	if blob == nil {
		return nil
	}
	var data Data
	if err := json.Unmarshal(blob, &data); err != nil {
		s.logger.Warn("discarding undecodable dashboard snapshot", zap.Error(err))
		return nil
	}
	return &data
}

// Load computes a fresh dashboard frame. Warmth labels are recomputed and
// written back before scoring; individual write failures are logged and do
// not fail the load.
func (s *Service) Load(ctx context.Context) (*Data, error) {
	now := s.now()

	contacts, _, err := s.contacts.Get(ctx, activeFilter, func(ctx context.Context) ([]models.Contact, error) {
		return db.ListContacts(s.db, false)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load contacts: %w", err)
	}

	contacts = s.refreshWarmth(ctx, contacts, now)

	companies, _, err := s.companies.Get(ctx, activeFilter, func(ctx context.Context) ([]models.Company, error) {
		return db.ListCompanies(s.db, false)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load companies: %w", err)
	}

	interactions, err := db.ListInteractions(s.db, nil, interactionScanLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load interactions: %w", err)
	}

	dueToday, err := db.DueFollowUps(s.db, now)
	if err != nil {
		return nil, fmt.Errorf("failed to load due follow-ups: %w", err)
	}

	streak, err := db.GetStreak(s.db)
	if err != nil {
		return nil, fmt.Errorf("failed to load streak: %w", err)
	}

	priorStrength, err := db.StrengthAsOf(s.db, now.AddDate(0, 0, -7))
	if err != nil {
		return nil, fmt.Errorf("failed to load score history: %w", err)
	}

	tasks, err := db.TasksForDate(s.db, now)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	data := &Data{
		Contacts:        contacts,
		Companies:       companies,
		Actions:         insights.PrioritizeActions(contacts, companies, dueToday, now),
		NetworkStrength: insights.NetworkStrength(contacts, interactions, *streak, now),
		OfferMomentum:   insights.OfferMomentum(contacts, companies, interactions, *streak, now),
		Streak:          *streak,
		Tasks:           tasks,
		Badges:          insights.EvaluateBadges(contacts, companies, interactions, *streak, now),
		GeneratedAt:     now,
	}
	data.Weekly = insights.SummarizeWeek(contacts, companies, interactions, *streak, priorStrength, now)

	if err := db.RecordScoreSnapshot(s.db, now, data.NetworkStrength); err != nil {
		s.logger.Warn("failed to record score snapshot", zap.Error(err))
	}
	s.persistSnapshot(data)

	return data, nil
}

// refreshWarmth reclassifies every contact and writes back only the rows
// whose stored label differs. Rows fail independently; a failed write keeps
// the freshly computed label in the returned slice anyway, it just gets
// recomputed next load.
func (s *Service) refreshWarmth(ctx context.Context, contacts []models.Contact, now time.Time) []models.Contact {
	out := make([]models.Contact, len(contacts))
	copy(out, contacts)

	var g errgroup.Group
	g.SetLimit(warmthWriteConcurrency)
	changed := 0
	for i := range out {
		want := insights.ClassifyWarmth(out[i].LastContactDate, now)
		if out[i].WarmthLevel == want {
			continue
		}
		out[i].WarmthLevel = want
		changed++

		id, warmth := out[i].ID, want
		g.Go(func() error {
			if err := db.SetContactWarmth(s.db, id, warmth); err != nil {
				s.logger.Warn("warmth write-back failed",
					zap.String("contact_id", id.String()),
					zap.Error(err))
			}
			return nil
		})
	}
	_ = g.Wait()
	// A load with no label drift issued no writes, so the cached slot is
	// still good.
	if changed > 0 {
		s.contacts.Invalidate()
	}
	return out
}

func (s *Service) persistSnapshot(data *Data) {
	if s.snapshots == nil {
		return
	}
	blob, err := json.Marshal(data)
	if err != nil {
		s.logger.Warn("failed to encode dashboard snapshot", zap.Error(err))
		return
	}
	if err := s.snapshots.Save(blob); err != nil {
		s.logger.Warn("failed to persist dashboard snapshot", zap.Error(err))
	}
}

// CompleteTask marks a daily task done and returns the updated streak.
func (s *Service) CompleteTask(ctx context.Context, taskID uuid.UUID) (*models.Streak, error) {
	streak, err := db.CompleteTask(s.db, taskID, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to complete task: %w", err)
	}
	return streak, nil
}

// GenerateDailyTasks turns today's prioritized actions into daily task
// rows. Generation is idempotent: when today already has tasks the
// existing ones are returned untouched.
func (s *Service) GenerateDailyTasks(ctx context.Context) ([]models.DailyTask, error) {
	now := s.now()

	exists, err := db.HasTasksForDate(s.db, now)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing tasks: %w", err)
	}
	if exists {
		return db.TasksForDate(s.db, now)
	}

	contacts, _, err := s.contacts.Get(ctx, activeFilter, func(ctx context.Context) ([]models.Contact, error) {
		return db.ListContacts(s.db, false)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load contacts: %w", err)
	}
	companies, _, err := s.companies.Get(ctx, activeFilter, func(ctx context.Context) ([]models.Company, error) {
		return db.ListCompanies(s.db, false)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load companies: %w", err)
	}
	dueToday, err := db.DueFollowUps(s.db, now)
	if err != nil {
		return nil, fmt.Errorf("failed to load due follow-ups: %w", err)
	}

	actions := insights.PrioritizeActions(contacts, companies, dueToday, now)
	tasks := make([]models.DailyTask, 0, len(actions))
	for _, action := range actions {
		task := taskFromAction(action, now)
		if action.Metadata != "" {
			if company, err := db.FindCompanyByName(s.db, action.Metadata); err == nil && company != nil {
				task.CompanyID = &company.ID
			}
		}
		if err := db.CreateDailyTask(s.db, &task); err != nil {
			return nil, fmt.Errorf("failed to create daily task: %w", err)
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func taskFromAction(action insights.Action, day time.Time) models.DailyTask {
	contactID := action.Contact.ID
	task := models.DailyTask{
		DueDate:   day,
		ContactID: &contactID,
	}
	switch action.Type {
	case insights.ActionFollowUp:
		task.TaskType = models.TaskFollowUp
		task.Description = fmt.Sprintf("Follow up with %s", action.Contact.Name)
	case insights.ActionCompanyOverlap:
		task.TaskType = models.TaskWarmUp
		task.Description = fmt.Sprintf("Ask %s for an intro at %s", action.Contact.Name, action.Metadata)
	default:
		task.TaskType = models.TaskReachOut
		task.Description = fmt.Sprintf("Reach out to %s", action.Contact.Name)
		if action.Metadata != "" {
			task.Description = fmt.Sprintf("Reach out to %s at %s", action.Contact.Name, action.Metadata)
		}
	}
	return task
}

// Close releases the snapshot store if one is attached.
func (s *Service) Close() error {
	if s.snapshots == nil {
		return nil
	}
	return s.snapshots.Close()
}
