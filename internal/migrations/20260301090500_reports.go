package migrations

import (
	"github.com/jmoiron/sqlx"
)

func init() {
	m.addMigration(&migration{
		version: "20260301090500",
		up:      mig_20260301090500_reports_up,
		down:    mig_20260301090500_reports_down,
	})
}

func mig_20260301090500_reports_up(tx *sqlx.Tx) error {
	_, err := tx.Exec(`
        CREATE TABLE IF NOT EXISTS reports (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            title VARCHAR(255) NOT NULL,
            client_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            ai_context TEXT NOT NULL DEFAULT '',
            status VARCHAR(50) NOT NULL DEFAULT 'completed',
            file_url TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
        );
    `)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
        CREATE INDEX IF NOT EXISTS idx_reports_client_id ON reports(client_id);
    `)

	return err
}

func mig_20260301090500_reports_down(tx *sqlx.Tx) error {
	_, err := tx.Exec(`DROP TABLE IF EXISTS reports;`)
	return err
}
