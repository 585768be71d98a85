package types

import (
  "time"
)

type Habit struct {
  ID              uint        `gorm:"primaryKey" json:"id"`
  Name            string      `gorm:"not null;column:name" json:"name"`
  Description     string      `gorm:"column:description" json:"description"`
  PointsValue     int         `gorm:"not null;default:0;column:points_value" json:"points_value"`
  CarbonSavingKg  float64     `gorm:"not null;default:0;column:carbon_saving_kg" json:"carbon_saving_kg"`
  WasteSavingKg   float64     `gorm:"not null;default:0;column:waste_saving_kg" json:"waste_saving_kg"`
  CreatedAt       time.Time   `gorm:"not null" json:"created_at"`
  UpdatedAt       time.Time   `gorm:"not null" json:"updated_at"`
}

func (Habit) TableName() string {
  return "habit"
}
