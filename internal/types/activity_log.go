package types

import (
  "time"
)

// ActivityLog is an append-only record of one user performing one habit.
// Points is a snapshot of the habit's value at log time; catalog edits must
// not rewrite history.
type ActivityLog struct {
  ID          uint        `gorm:"primaryKey" json:"id"`
  UserID      uint        `gorm:"not null;index;column:user_id" json:"user_id"`
  HabitID     uint        `gorm:"not null;index;column:habit_id" json:"habit_id"`
  Points      int         `gorm:"not null;default:0;column:points" json:"points"`
  LoggedAt    time.Time   `gorm:"not null;index;column:logged_at" json:"logged_at"`
  Notes       string      `gorm:"column:notes" json:"notes,omitempty"`
  CreatedAt   time.Time   `gorm:"not null" json:"created_at"`
}

func (ActivityLog) TableName() string {
  return "activity_log"
}
