package database

import (
	"context"
	"fmt"
)

var migrations = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`,

	`CREATE TABLE IF NOT EXISTS matches (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		title VARCHAR(500) NOT NULL,
		sport VARCHAR(20) NOT NULL
			CHECK (sport IN ('football', 'basketball', 'tennis', 'baseball', 'volleyball', 'other')),
		location TEXT NOT NULL,
		date DATE NOT NULL,
		time VARCHAR(5) NOT NULL,
		max_players INTEGER NOT NULL DEFAULT 10 CHECK (max_players >= 2),
		creator_id VARCHAR(255) NOT NULL,
		creator_name VARCHAR(500) NOT NULL,
		captain_name VARCHAR(500) NOT NULL DEFAULT '',
		price_per_person INTEGER NOT NULL DEFAULT 0 CHECK (price_per_person >= 0),
		invite_code CHAR(8) NOT NULL UNIQUE,
		next_position INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS participants (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		match_id UUID NOT NULL REFERENCES matches(id) ON DELETE CASCADE,
		user_id VARCHAR(255) NOT NULL,
		user_name VARCHAR(500) NOT NULL DEFAULT '',
		position INTEGER NOT NULL,
		is_starter BOOLEAN NOT NULL DEFAULT TRUE,
		joined_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		UNIQUE(match_id, user_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_matches_date ON matches(date)`,
	`CREATE INDEX IF NOT EXISTS idx_participants_match_id ON participants(match_id)`,

	// Matches created before the position counter existed continue after their highest position.
	`ALTER TABLE matches ADD COLUMN IF NOT EXISTS next_position INTEGER NOT NULL DEFAULT 0`,
	`UPDATE matches m SET next_position = sub.next
	FROM (SELECT match_id, MAX(position) + 1 AS next FROM participants GROUP BY match_id) sub
	WHERE m.id = sub.match_id AND m.next_position < sub.next`,
}

func (db *DB) Migrate(ctx context.Context) error {
	for i, migration := range migrations {
		if _, err := db.Pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
