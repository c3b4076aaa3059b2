package store

import (
	"time"

	"github.com/crossbox/wodtracker/internal/models"
)

// Store is the storage abstraction behind the route layer. Implementations
// share the same absence semantics: a Get*/Update* on a missing id returns
// (nil, nil), a Delete* on a missing id returns (false, nil). The error slot
// is reserved for backend failures (connection loss etc.) and is always nil
// for the in-memory implementation's expected paths.
//
// The store performs no authorization and no foreign-key validation; those
// checks belong to the caller. The only relational invariant it owns is the
// uniqueness of the (groupId, userId) membership pair, plus the delete
// cascades on Group and ScheduledWorkout.
type Store interface {
	// Users
	CreateUser(u *models.User) (*models.User, error)
	GetUser(id uint64) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetAllUsers() ([]models.User, error)
	UpdateUser(id uint64, patch models.UserPatch) (*models.User, error)
	DeleteUser(id uint64) (bool, error)

	// Workouts, sorted by date descending (newest first).
	CreateWorkout(w *models.Workout) (*models.Workout, error)
	GetWorkout(id uint64) (*models.Workout, error)
	GetWorkoutsByUser(userID uint64) ([]models.Workout, error)
	GetWorkoutsByUserAndType(userID uint64, workoutType string) ([]models.Workout, error)
	UpdateWorkout(id uint64, patch models.WorkoutPatch) (*models.Workout, error)
	DeleteWorkout(id uint64) (bool, error)

	// Exercises. Search is a case-insensitive substring match on name or
	// description, unranked.
	CreateExercise(e *models.Exercise) (*models.Exercise, error)
	GetExercise(id uint64) (*models.Exercise, error)
	GetAllExercises() ([]models.Exercise, error)
	GetExercisesByCategory(category string) ([]models.Exercise, error)
	SearchExercises(query string) ([]models.Exercise, error)
	UpdateExercise(id uint64, patch models.ExercisePatch) (*models.Exercise, error)
	DeleteExercise(id uint64) (bool, error)

	// Personal records. By-exercise is date ascending (oldest first, for
	// progression charts); by-user and recent are date descending.
	CreatePersonalRecord(r *models.PersonalRecord) (*models.PersonalRecord, error)
	GetPersonalRecord(id uint64) (*models.PersonalRecord, error)
	GetPersonalRecordsByUser(userID uint64) ([]models.PersonalRecord, error)
	GetPersonalRecordsByExercise(userID, exerciseID uint64) ([]models.PersonalRecord, error)
	GetRecentPersonalRecords(userID uint64, limit int) ([]models.PersonalRecord, error)
	UpdatePersonalRecord(id uint64, patch models.PersonalRecordPatch) (*models.PersonalRecord, error)
	DeletePersonalRecord(id uint64) (bool, error)

	// Groups. Deleting a group removes its members and its scheduled
	// workouts (including their results) before the group row.
	CreateGroup(g *models.Group) (*models.Group, error)
	GetGroup(id uint64) (*models.Group, error)
	GetGroupsByCoach(coachID uint64) ([]models.Group, error)
	GetGroupsByMember(userID uint64) ([]models.Group, error)
	UpdateGroup(id uint64, patch models.GroupPatch) (*models.Group, error)
	DeleteGroup(id uint64) (bool, error)

	// Group members, sorted by join time descending. AddGroupMember is
	// idempotent: adding an existing pair returns the existing row.
	AddGroupMember(groupID, userID uint64) (*models.GroupMember, error)
	GetGroupMembers(groupID uint64) ([]models.GroupMember, error)
	IsGroupMember(groupID, userID uint64) (bool, error)
	RemoveGroupMember(groupID, userID uint64) (bool, error)

	// Scheduled workouts, sorted by scheduled date ascending. Upcoming
	// resolves the user's groups via membership, then filters rows at or
	// after now. Deleting a scheduled workout removes its results first.
	CreateScheduledWorkout(s *models.ScheduledWorkout) (*models.ScheduledWorkout, error)
	GetScheduledWorkout(id uint64) (*models.ScheduledWorkout, error)
	GetScheduledWorkoutsByGroup(groupID uint64) ([]models.ScheduledWorkout, error)
	GetUpcomingScheduledWorkouts(userID uint64, now time.Time) ([]models.ScheduledWorkout, error)
	UpdateScheduledWorkout(id uint64, patch models.ScheduledWorkoutPatch) (*models.ScheduledWorkout, error)
	DeleteScheduledWorkout(id uint64) (bool, error)

	// Workout results, sorted by completion time descending.
	CreateWorkoutResult(r *models.WorkoutResult) (*models.WorkoutResult, error)
	GetWorkoutResult(id uint64) (*models.WorkoutResult, error)
	GetWorkoutResultsByScheduledWorkout(scheduledWorkoutID uint64) ([]models.WorkoutResult, error)
	GetWorkoutResultsByUser(userID uint64) ([]models.WorkoutResult, error)
	UpdateWorkoutResult(id uint64, patch models.WorkoutResultPatch) (*models.WorkoutResult, error)
	DeleteWorkoutResult(id uint64) (bool, error)
}
