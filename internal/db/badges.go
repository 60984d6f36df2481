package db

import (
	"fmt"

	"galmaetgil/internal/domain"
)

// AwardBadge journals an award. Repeated awards are ignored.
func (d *DB) AwardBadge(userID domain.UserID, badgeID domain.BadgeID) error {
	_, err := d.conn.Exec(`
		INSERT INTO user_badges (user_id, badge_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, badge_id) DO NOTHING
	`, int64(userID), int(badgeID))
	if err != nil {
		return fmt.Errorf("awarding badge: %w", err)
	}
	return nil
}
