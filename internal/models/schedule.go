package models

import (
	"time"
)

// ScheduledWorkout assigns a workout to a group on a date.
type ScheduledWorkout struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	GroupID       uint64    `gorm:"not null;index" json:"groupId"`
	WorkoutID     uint64    `gorm:"not null" json:"workoutId"`
	ScheduledDate time.Time `gorm:"not null;index" json:"scheduledDate"`
	CreatedBy     uint64    `gorm:"not null" json:"createdBy"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ScheduledWorkoutPatch is a partial update for ScheduledWorkout. Nil fields are retained.
type ScheduledWorkoutPatch struct {
	WorkoutID     *uint64    `json:"workoutId,omitempty"`
	ScheduledDate *time.Time `json:"scheduledDate,omitempty"`
}

// Apply merges the patch into s, field by field.
func (p ScheduledWorkoutPatch) Apply(s *ScheduledWorkout) {
	if p.WorkoutID != nil {
		s.WorkoutID = *p.WorkoutID
	}
	if p.ScheduledDate != nil {
		s.ScheduledDate = *p.ScheduledDate
	}
}

// WorkoutResult is an athlete's submitted result for a scheduled workout.
type WorkoutResult struct {
	ID                 uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	ScheduledWorkoutID uint64    `gorm:"not null;index" json:"scheduledWorkoutId"`
	UserID             uint64    `gorm:"not null;index" json:"userId"`
	Result             string    `gorm:"size:255;not null" json:"result"`
	Notes              string    `gorm:"type:text" json:"notes,omitempty"`
	CompletedAt        time.Time `json:"completedAt"`
}

// WorkoutResultPatch is a partial update for WorkoutResult. Nil fields are retained.
type WorkoutResultPatch struct {
	Result *string `json:"result,omitempty"`
	Notes  *string `json:"notes,omitempty"`
}

// Apply merges the patch into r, field by field.
func (p WorkoutResultPatch) Apply(r *WorkoutResult) {
	if p.Result != nil {
		r.Result = *p.Result
	}
	if p.Notes != nil {
		r.Notes = *p.Notes
	}
}
