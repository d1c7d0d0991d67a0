// ABOUTME: Database schema definitions and migrations
// ABOUTME: Handles SQLite table creation and initialization
package db

import (
	"database/sql"
)

const schema = `
CREATE TABLE IF NOT EXISTS companies (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	priority INTEGER NOT NULL DEFAULT 0 CHECK(priority BETWEEN 0 AND 5),
	industry TEXT,
	target_role TEXT,
	notes TEXT,
	is_archived INTEGER NOT NULL DEFAULT 0,
	archived_at DATETIME,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_companies_name ON companies(name);
CREATE INDEX IF NOT EXISTS idx_companies_archived ON companies(is_archived);

CREATE TABLE IF NOT EXISTS contacts (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT,
	company TEXT,
	company_id TEXT,
	role TEXT,
	notes TEXT,
	linkedin_url TEXT,
	contact_type TEXT NOT NULL DEFAULT 'unspecified' CHECK(contact_type IN ('connector', 'trailblazer', 'reliable_recruiter', 'unspecified')),
	warmth_level TEXT NOT NULL DEFAULT 'cold' CHECK(warmth_level IN ('warm', 'cooling', 'cold')),
	last_contact_date DATE,
	connector_influence_company_ids TEXT,
	recruiter_specialization TEXT CHECK(recruiter_specialization IN ('industry_knowledge', 'interview_prep', 'offer_negotiation')),
	is_archived INTEGER NOT NULL DEFAULT 0,
	archived_at DATETIME,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	FOREIGN KEY (company_id) REFERENCES companies(id)
);

CREATE INDEX IF NOT EXISTS idx_contacts_company_id ON contacts(company_id);
CREATE INDEX IF NOT EXISTS idx_contacts_archived ON contacts(is_archived);

CREATE TABLE IF NOT EXISTS interactions (
	id TEXT PRIMARY KEY,
	contact_id TEXT NOT NULL,
	interaction_type TEXT NOT NULL CHECK(interaction_type IN ('email', 'call', 'meeting', 'message', 'event')),
	interaction_date DATE NOT NULL,
	notes TEXT,
	created_at DATETIME NOT NULL,
	FOREIGN KEY (contact_id) REFERENCES contacts(id)
);

CREATE INDEX IF NOT EXISTS idx_interactions_contact ON interactions(contact_id);
CREATE INDEX IF NOT EXISTS idx_interactions_date ON interactions(interaction_date DESC);

CREATE TABLE IF NOT EXISTS follow_ups (
	id TEXT PRIMARY KEY,
	contact_id TEXT NOT NULL,
	due_date DATE NOT NULL,
	note TEXT,
	completed INTEGER NOT NULL DEFAULT 0,
	completed_at DATETIME,
	created_at DATETIME NOT NULL,
	FOREIGN KEY (contact_id) REFERENCES contacts(id)
);

CREATE INDEX IF NOT EXISTS idx_follow_ups_due ON follow_ups(due_date);
CREATE INDEX IF NOT EXISTS idx_follow_ups_contact ON follow_ups(contact_id);

CREATE TABLE IF NOT EXISTS daily_tasks (
	id TEXT PRIMARY KEY,
	due_date DATE NOT NULL,
	task_type TEXT NOT NULL CHECK(task_type IN ('reach_out', 'follow_up', 'warm_up', 'research')),
	description TEXT NOT NULL,
	completed INTEGER NOT NULL DEFAULT 0,
	contact_id TEXT,
	company_id TEXT,
	created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_daily_tasks_due ON daily_tasks(due_date);

CREATE TABLE IF NOT EXISTS streaks (
	id INTEGER PRIMARY KEY CHECK(id = 1),
	current_streak INTEGER NOT NULL DEFAULT 0,
	longest_streak INTEGER NOT NULL DEFAULT 0,
	total_tasks_completed INTEGER NOT NULL DEFAULT 0,
	last_activity_date DATE
);

CREATE TABLE IF NOT EXISTS score_snapshots (
	snapshot_date DATE PRIMARY KEY,
	network_strength INTEGER NOT NULL,
	created_at DATETIME NOT NULL
);
`

func InitSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
