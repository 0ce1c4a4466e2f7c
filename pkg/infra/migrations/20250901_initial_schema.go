package migrations

import (
	"github.com/RHD-founder/thukpa/pkg/infra/database"
	"gorm.io/gorm"
)

func init() {
	database.RegisterMigration(database.Migration{
		ID:   "20250901_initial_schema",
		Name: "Create feedback, admin user, threat and audit tables",

		Up: func(db *gorm.DB) error {
			if err := db.Exec(`
				CREATE TABLE IF NOT EXISTS public.feedbacks (
					id           UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					name         TEXT NOT NULL,
					contact      TEXT,
					email        TEXT,
					phone        TEXT,
					rating       INTEGER,
					comments     TEXT,
					location     TEXT,
					category     TEXT,
					visit_date   TIMESTAMPTZ,
					is_anonymous BOOLEAN NOT NULL DEFAULT FALSE,
					tags         JSONB,
					sentiment    TEXT,
					status       TEXT NOT NULL DEFAULT 'new',
					ip_address   TEXT,
					user_agent   TEXT,
					created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
			`).Error; err != nil {
				return err
			}
			if err := db.Exec(`
				CREATE INDEX IF NOT EXISTS idx_feedbacks_created_at
				ON public.feedbacks (created_at);
			`).Error; err != nil {
				return err
			}
			if err := db.Exec(`
				CREATE INDEX IF NOT EXISTS idx_feedbacks_status
				ON public.feedbacks (status);
			`).Error; err != nil {
				return err
			}
			if err := db.Exec(`
				CREATE INDEX IF NOT EXISTS idx_feedbacks_category
				ON public.feedbacks (category);
			`).Error; err != nil {
				return err
			}

			if err := db.Exec(`
				CREATE TABLE IF NOT EXISTS public.admin_users (
					id            UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					email         TEXT NOT NULL UNIQUE,
					name          TEXT NOT NULL,
					password_hash TEXT NOT NULL,
					role          TEXT NOT NULL DEFAULT 'admin',
					active        BOOLEAN NOT NULL DEFAULT TRUE,
					last_login_at TIMESTAMPTZ,
					created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
			`).Error; err != nil {
				return err
			}

			if err := db.Exec(`
				CREATE TABLE IF NOT EXISTS public.threat_events (
					id                 UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					type               TEXT NOT NULL,
					severity           TEXT NOT NULL,
					user_id            TEXT,
					ip                 TEXT NOT NULL,
					user_agent         TEXT,
					device_fingerprint TEXT NOT NULL,
					timestamp          TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					path               TEXT,
					details            JSONB,
					blocked            BOOLEAN NOT NULL DEFAULT FALSE
				);
			`).Error; err != nil {
				return err
			}
			if err := db.Exec(`
				CREATE INDEX IF NOT EXISTS idx_threat_events_fingerprint
				ON public.threat_events (device_fingerprint);
			`).Error; err != nil {
				return err
			}
			if err := db.Exec(`
				CREATE INDEX IF NOT EXISTS idx_threat_events_timestamp
				ON public.threat_events (timestamp);
			`).Error; err != nil {
				return err
			}

			if err := db.Exec(`
				CREATE TABLE IF NOT EXISTS public.blocked_devices (
					fingerprint TEXT PRIMARY KEY,
					reason      TEXT NOT NULL,
					metadata    JSONB,
					blocked_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
			`).Error; err != nil {
				return err
			}

			if err := db.Exec(`
				CREATE TABLE IF NOT EXISTS public.audit_logs (
					id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					user_id     UUID,
					action      TEXT NOT NULL,
					resource    TEXT,
					resource_id TEXT,
					details     JSONB,
					ip_address  TEXT,
					user_agent  TEXT,
					created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
			`).Error; err != nil {
				return err
			}
			return db.Exec(`
				CREATE INDEX IF NOT EXISTS idx_audit_logs_created_at
				ON public.audit_logs (created_at);
			`).Error
		},

		Down: func(db *gorm.DB) error {
			for _, table := range []string{
				"public.audit_logs",
				"public.blocked_devices",
				"public.threat_events",
				"public.admin_users",
				"public.feedbacks",
			} {
				if err := db.Exec("DROP TABLE IF EXISTS " + table + ";").Error; err != nil {
					return err
				}
			}
			return nil
		},
	})
}
