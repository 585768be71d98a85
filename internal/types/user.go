package types

import (
  "time"
  "gorm.io/datatypes"
)

type User struct {
  ID              uint            `gorm:"primaryKey" json:"id"`
  Email           string          `gorm:"uniqueIndex;not null;column:email" json:"email"`
  Name            string          `gorm:"not null;column:name" json:"name"`
  PasswordHash    string          `gorm:"not null;column:password_hash" json:"-"`
  TotalPoints     int             `gorm:"not null;default:0;column:total_points" json:"total_points"`
  CurrentStreak   int             `gorm:"not null;default:0;column:current_streak" json:"current_streak"`
  LastLoggedDate  *datatypes.Date `gorm:"column:last_logged_date" json:"last_logged_date"`
  CreatedAt       time.Time       `gorm:"not null" json:"created_at"`
  UpdatedAt       time.Time       `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string {
  return "user"
}
