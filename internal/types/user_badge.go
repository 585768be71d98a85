package types

import (
  "time"
)

// UserBadge is awarded at most once per (user, badge); the composite unique
// index is what makes that hold under concurrent awards.
type UserBadge struct {
  ID          uint        `gorm:"primaryKey" json:"id"`
  UserID      uint        `gorm:"not null;uniqueIndex:idx_user_badge;column:user_id" json:"user_id"`
  BadgeID     uint        `gorm:"not null;uniqueIndex:idx_user_badge;column:badge_id" json:"badge_id"`
  EarnedAt    time.Time   `gorm:"not null;column:earned_at" json:"earned_at"`
}

func (UserBadge) TableName() string {
  return "user_badge"
}
