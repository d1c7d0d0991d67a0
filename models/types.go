// ABOUTME: Data models for networking CRM entities
// ABOUTME: Defines Contact, Company, Interaction, FollowUp, DailyTask, and Streak structs
package models

import (
	"time"

	"github.com/google/uuid"
)

// Warmth classifies how recently a contact was engaged.
type Warmth string

const (
	WarmthWarm    Warmth = "warm"
	WarmthCooling Warmth = "cooling"
	WarmthCold    Warmth = "cold"
)

// ContactType constants.
type ContactType string

const (
	TypeConnector         ContactType = "connector"
	TypeTrailblazer       ContactType = "trailblazer"
	TypeReliableRecruiter ContactType = "reliable_recruiter"
	TypeUnspecified       ContactType = "unspecified"
)

// RecruiterSpecialization constants.
type RecruiterSpecialization string

const (
	SpecIndustryKnowledge RecruiterSpecialization = "industry_knowledge"
	SpecInterviewPrep     RecruiterSpecialization = "interview_prep"
	SpecOfferNegotiation  RecruiterSpecialization = "offer_negotiation"
)

// ConnectorProfile holds fields that only apply to connector contacts.
type ConnectorProfile struct {
	InfluenceCompanyIDs []uuid.UUID `json:"influence_company_ids,omitempty"`
}

// RecruiterProfile holds fields that only apply to reliable_recruiter contacts.
type RecruiterProfile struct {
	Specialization RecruiterSpecialization `json:"specialization"`
}

type Contact struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Email       string      `json:"email,omitempty"`
	Company     string      `json:"company,omitempty"` // free-text name, kept alongside CompanyID
	CompanyID   *uuid.UUID  `json:"company_id,omitempty"`
	Role        string      `json:"role,omitempty"`
	Notes       string      `json:"notes,omitempty"`
	LinkedInURL string      `json:"linkedin_url,omitempty"`
	ContactType ContactType `json:"contact_type"`

	// WarmthLevel is a persisted projection of the classifier. The scoring
	// engine always recomputes from LastContactDate; this field is only a
	// write-back cache for display surfaces.
	WarmthLevel     Warmth     `json:"warmth_level"`
	LastContactDate *time.Time `json:"last_contact_date,omitempty"`

	// Connector is populated only when ContactType == TypeConnector.
	Connector *ConnectorProfile `json:"connector,omitempty"`
	// Recruiter is populated only when ContactType == TypeReliableRecruiter.
	Recruiter *RecruiterProfile `json:"recruiter,omitempty"`

	IsArchived bool       `json:"is_archived"`
	ArchivedAt *time.Time `json:"archived_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// InfluenceCompanyIDs returns the connector influence set, empty for
// non-connector contacts.
func (c *Contact) InfluenceCompanyIDs() []uuid.UUID {
	if c.ContactType != TypeConnector || c.Connector == nil {
		return nil
	}
	return c.Connector.InfluenceCompanyIDs
}

type Company struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Priority   int        `json:"priority"` // 0-5 ordinal
	Industry   string     `json:"industry,omitempty"`
	TargetRole string     `json:"target_role,omitempty"`
	Notes      string     `json:"notes,omitempty"`
	IsArchived bool       `json:"is_archived"`
	ArchivedAt *time.Time `json:"archived_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// InteractionType constants.
type InteractionType string

const (
	InteractionEmail   = "email"
	InteractionCall    = "call"
	InteractionMeeting = "meeting"
	InteractionMessage = "message"
	InteractionEvent   = "event"
)

// Interaction is an append-only log entry. Creating one advances the
// parent contact's LastContactDate.
type Interaction struct {
	ID        uuid.UUID `json:"id"`
	ContactID uuid.UUID `json:"contact_id"`
	Type      string    `json:"interaction_type"`
	Date      time.Time `json:"interaction_date"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type FollowUp struct {
	ID          uuid.UUID  `json:"id"`
	ContactID   uuid.UUID  `json:"contact_id"`
	DueDate     time.Time  `json:"due_date"`
	Note        string     `json:"note,omitempty"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// DailyTask type constants.
const (
	TaskReachOut = "reach_out"
	TaskFollowUp = "follow_up"
	TaskWarmUp   = "warm_up"
	TaskResearch = "research"
)

type DailyTask struct {
	ID          uuid.UUID  `json:"id"`
	DueDate     time.Time  `json:"due_date"`
	TaskType    string     `json:"task_type"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed"`
	ContactID   *uuid.UUID `json:"contact_id,omitempty"`
	CompanyID   *uuid.UUID `json:"company_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Streak is a single lazily-created row tracking daily-task consistency.
type Streak struct {
	CurrentStreak       int        `json:"current_streak"`
	LongestStreak       int        `json:"longest_streak"`
	TotalTasksCompleted int        `json:"total_tasks_completed"`
	LastActivityDate    *time.Time `json:"last_activity_date,omitempty"`
}

// ScoreSnapshot records one network-strength reading per day so the weekly
// summary can report a real delta instead of a placeholder.
type ScoreSnapshot struct {
	Date            time.Time `json:"snapshot_date"`
	NetworkStrength int       `json:"network_strength"`
}

// ValidContactType reports whether s is a known contact type.
func ValidContactType(s string) bool {
	switch ContactType(s) {
	case TypeConnector, TypeTrailblazer, TypeReliableRecruiter, TypeUnspecified:
		return true
	}
	return false
}

// ValidWarmth reports whether s is a known warmth level.
func ValidWarmth(s string) bool {
	switch Warmth(s) {
	case WarmthWarm, WarmthCooling, WarmthCold:
		return true
	}
	return false
}

// ValidRecruiterSpecialization reports whether s is a known specialization.
func ValidRecruiterSpecialization(s string) bool {
	switch RecruiterSpecialization(s) {
	case SpecIndustryKnowledge, SpecInterviewPrep, SpecOfferNegotiation:
		return true
	}
	return false
}

// ValidInteractionType reports whether s is a known interaction type.
func ValidInteractionType(s string) bool {
	switch s {
	case InteractionEmail, InteractionCall, InteractionMeeting, InteractionMessage, InteractionEvent:
		return true
	}
	return false
}
