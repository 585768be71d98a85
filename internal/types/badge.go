package types

import (
  "time"
)

type Badge struct {
  ID                uint        `gorm:"primaryKey" json:"id"`
  Name              string      `gorm:"not null;column:name" json:"name"`
  Description       string      `gorm:"column:description" json:"description"`
  Icon              string      `gorm:"column:icon" json:"icon"`
  PointsThreshold   int         `gorm:"not null;default:0;column:points_threshold" json:"points_threshold"`
  CreatedAt         time.Time   `gorm:"not null" json:"created_at"`
  UpdatedAt         time.Time   `gorm:"not null" json:"updated_at"`
}

func (Badge) TableName() string {
  return "badge"
}
