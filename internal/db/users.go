package db

import (
	"fmt"

	"galmaetgil/internal/domain"
)

func (d *DB) UpsertUser(u domain.User) error {
	_, err := d.conn.Exec(`
		INSERT INTO users (id, email, nickname, region, joined_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET email = $2, nickname = $3, region = $4, updated_at = now()
	`, int64(u.ID), u.Email, u.Nickname, u.Region, u.JoinDate)
	if err != nil {
		return fmt.Errorf("upserting user: %w", err)
	}
	return nil
}
