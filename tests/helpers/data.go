// data.go
//
// CrossFit workout and training group tracking service
// Copyright (c) 2026 CrossBox <dev@crossbox.fit> (https://crossbox.fit)
//
// This file is part of wodtracker.
// wodtracker is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// wodtracker is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with wodtracker.
// If not, see <https://www.gnu.org/licenses/>.

package helpers

import (
	"testing"
	"time"

	"github.com/crossbox/wodtracker/internal/models"
	"github.com/crossbox/wodtracker/internal/store"
)

// CreateTestWorkout creates a workout for the user
func CreateTestWorkout(t *testing.T, st store.Store, userID uint64, workoutType string, date time.Time) *models.Workout {
	t.Helper()
	w, err := st.CreateWorkout(&models.Workout{
		UserID:      userID,
		Date:        date,
		Type:        workoutType,
		Description: "21-15-9 thrusters and pull-ups",
	})
	if err != nil {
		t.Fatalf("Failed to create workout: %v", err)
	}
	return w
}

// CreateTestExercise creates a catalog exercise
func CreateTestExercise(t *testing.T, st store.Store, name, category string) *models.Exercise {
	t.Helper()
	e, err := st.CreateExercise(&models.Exercise{
		Name:     name,
		Category: category,
	})
	if err != nil {
		t.Fatalf("Failed to create exercise %s: %v", name, err)
	}
	return e
}

// CreateTestGroup creates a group owned by the coach
func CreateTestGroup(t *testing.T, st store.Store, name string, coachID uint64) *models.Group {
	t.Helper()
	g, err := st.CreateGroup(&models.Group{
		Name:    name,
		CoachID: coachID,
	})
	if err != nil {
		t.Fatalf("Failed to create group %s: %v", name, err)
	}
	return g
}

// JoinTestGroup adds the user to the group
func JoinTestGroup(t *testing.T, st store.Store, groupID, userID uint64) *models.GroupMember {
	t.Helper()
	m, err := st.AddGroupMember(groupID, userID)
	if err != nil {
		t.Fatalf("Failed to add member %d to group %d: %v", userID, groupID, err)
	}
	return m
}

// ScheduleTestWorkout schedules a workout for the group
func ScheduleTestWorkout(t *testing.T, st store.Store, groupID, workoutID, createdBy uint64, date time.Time) *models.ScheduledWorkout {
	t.Helper()
	sw, err := st.CreateScheduledWorkout(&models.ScheduledWorkout{
		GroupID:       groupID,
		WorkoutID:     workoutID,
		ScheduledDate: date,
		CreatedBy:     createdBy,
	})
	if err != nil {
		t.Fatalf("Failed to schedule workout: %v", err)
	}
	return sw
}
