package models

import (
	"time"
)

// PersonalRecord is a best result for an exercise, e.g. "1RM back squat 140 kg".
type PersonalRecord struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     uint64    `gorm:"not null;index" json:"userId"`
	ExerciseID uint64    `gorm:"not null;index" json:"exerciseId"`
	Value      float64   `gorm:"not null" json:"value"`
	Unit       string    `gorm:"size:32;not null" json:"unit"`
	Date       time.Time `gorm:"not null" json:"date"`
	Notes      string    `gorm:"type:text" json:"notes,omitempty"`
}

// PersonalRecordPatch is a partial update for PersonalRecord. Nil fields are retained.
type PersonalRecordPatch struct {
	ExerciseID *uint64    `json:"exerciseId,omitempty"`
	Value      *float64   `json:"value,omitempty"`
	Unit       *string    `json:"unit,omitempty"`
	Date       *time.Time `json:"date,omitempty"`
	Notes      *string    `json:"notes,omitempty"`
}

// Apply merges the patch into r, field by field.
func (p PersonalRecordPatch) Apply(r *PersonalRecord) {
	if p.ExerciseID != nil {
		r.ExerciseID = *p.ExerciseID
	}
	if p.Value != nil {
		r.Value = *p.Value
	}
	if p.Unit != nil {
		r.Unit = *p.Unit
	}
	if p.Date != nil {
		r.Date = *p.Date
	}
	if p.Notes != nil {
		r.Notes = *p.Notes
	}
}
