package models

import (
	"time"
)

// Workout types.
const (
	WorkoutAMRAP    = "amrap"
	WorkoutEMOM     = "emom"
	WorkoutForTime  = "fortime"
	WorkoutTabata   = "tabata"
	WorkoutStrength = "strength"
)

// ValidWorkoutType reports whether t is a known workout type.
func ValidWorkoutType(t string) bool {
	switch t {
	case WorkoutAMRAP, WorkoutEMOM, WorkoutForTime, WorkoutTabata, WorkoutStrength:
		return true
	}
	return false
}

// Workout is a logged training session belonging to a user.
// The store does not verify that UserID references an existing user;
// that check belongs to the route layer.
type Workout struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uint64    `gorm:"not null;index:idx_workouts_user" json:"userId"`
	Date        time.Time `gorm:"not null" json:"date"`
	Type        string    `gorm:"size:32;not null" json:"type"`
	Description string    `gorm:"type:text" json:"description"`
	Result      string    `gorm:"size:255" json:"result,omitempty"`
	Completed   bool      `gorm:"not null;default:false" json:"completed"`
}

// WorkoutPatch is a partial update for Workout. Nil fields are retained.
type WorkoutPatch struct {
	Date        *time.Time `json:"date,omitempty"`
	Type        *string    `json:"type,omitempty"`
	Description *string    `json:"description,omitempty"`
	Result      *string    `json:"result,omitempty"`
	Completed   *bool      `json:"completed,omitempty"`
}

// Apply merges the patch into w, field by field.
func (p WorkoutPatch) Apply(w *Workout) {
	if p.Date != nil {
		w.Date = *p.Date
	}
	if p.Type != nil {
		w.Type = *p.Type
	}
	if p.Description != nil {
		w.Description = *p.Description
	}
	if p.Result != nil {
		w.Result = *p.Result
	}
	if p.Completed != nil {
		w.Completed = *p.Completed
	}
}
