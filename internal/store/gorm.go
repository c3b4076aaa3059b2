package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/crossbox/wodtracker/internal/models"
	"gorm.io/gorm"
	"gorm.io/hints"
)

// GormStore implements Store on a relational database through GORM. It
// reproduces the in-memory semantics: absent rows come back as (nil, nil),
// cascades run inside a transaction so a parent delete never leaves
// orphaned children.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps an open GORM connection. Run database.AutoMigrate
// before first use.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

var _ Store = (*GormStore)(nil)

// first runs a primary-key lookup, translating ErrRecordNotFound into the
// store's (nil, nil) absence convention.
func first[T any](db *gorm.DB, id uint64) (*T, error) {
	var row T
	err := db.Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Users

func (s *GormStore) CreateUser(u *models.User) (*models.User, error) {
	row := *u
	row.ID = 0
	row.CreatedAt = time.Now().UTC()
	if err := s.db.Create(&row).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &row, nil
}

func (s *GormStore) GetUser(id uint64) (*models.User, error) {
	return first[models.User](s.db, id)
}

func (s *GormStore) GetUserByUsername(username string) (*models.User, error) {
	var row models.User
	err := s.db.Where("username = ?", username).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *GormStore) GetAllUsers() ([]models.User, error) {
	var rows []models.User
	err := s.db.Order("id ASC").Find(&rows).Error
	return rows, err
}

func (s *GormStore) UpdateUser(id uint64, patch models.UserPatch) (*models.User, error) {
	return gormPatch(s.db, id, patch.Apply)
}

func (s *GormStore) DeleteUser(id uint64) (bool, error) {
	return gormDelete[models.User](s.db, id)
}

// Workouts

func (s *GormStore) CreateWorkout(w *models.Workout) (*models.Workout, error) {
	row := *w
	row.ID = 0
	if err := s.db.Create(&row).Error; err != nil {
		return nil, fmt.Errorf("create workout: %w", err)
	}
	return &row, nil
}

func (s *GormStore) GetWorkout(id uint64) (*models.Workout, error) {
	return first[models.Workout](s.db, id)
}

func (s *GormStore) GetWorkoutsByUser(userID uint64) ([]models.Workout, error) {
	var rows []models.Workout
	err := s.workoutsByUserQuery().
		Where("user_id = ?", userID).
		Order("date DESC, id ASC").
		Find(&rows).Error
	return rows, err
}

func (s *GormStore) GetWorkoutsByUserAndType(userID uint64, workoutType string) ([]models.Workout, error) {
	var rows []models.Workout
	err := s.workoutsByUserQuery().
		Where("user_id = ? AND type = ?", userID, workoutType).
		Order("date DESC, id ASC").
		Find(&rows).Error
	return rows, err
}

// workoutsByUserQuery pins the user index on MySQL; the hint syntax is not
// portable to the other drivers.
func (s *GormStore) workoutsByUserQuery() *gorm.DB {
	q := s.db.Model(&models.Workout{})
	if s.db.Dialector.Name() == "mysql" {
		q = q.Clauses(hints.UseIndex("idx_workouts_user"))
	}
	return q
}

func (s *GormStore) UpdateWorkout(id uint64, patch models.WorkoutPatch) (*models.Workout, error) {
	return gormPatch(s.db, id, patch.Apply)
}

func (s *GormStore) DeleteWorkout(id uint64) (bool, error) {
	return gormDelete[models.Workout](s.db, id)
}

// Exercises

func (s *GormStore) CreateExercise(e *models.Exercise) (*models.Exercise, error) {
	row := *e
	row.ID = 0
	if err := s.db.Create(&row).Error; err != nil {
		return nil, fmt.Errorf("create exercise: %w", err)
	}
	return &row, nil
}

func (s *GormStore) GetExercise(id uint64) (*models.Exercise, error) {
	return first[models.Exercise](s.db, id)
}

func (s *GormStore) GetAllExercises() ([]models.Exercise, error) {
	var rows []models.Exercise
	err := s.db.Order("id ASC").Find(&rows).Error
	return rows, err
}

func (s *GormStore) GetExercisesByCategory(category string) ([]models.Exercise, error) {
	var rows []models.Exercise
	err := s.db.Where("category = ?", category).Order("id ASC").Find(&rows).Error
	return rows, err
}

func (s *GormStore) SearchExercises(query string) ([]models.Exercise, error) {
	var rows []models.Exercise
	pattern := "%" + query + "%"
	err := s.db.
		Where("LOWER(name) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", pattern, pattern).
		Order("id ASC").
		Find(&rows).Error
	return rows, err
}

func (s *GormStore) UpdateExercise(id uint64, patch models.ExercisePatch) (*models.Exercise, error) {
	return gormPatch(s.db, id, patch.Apply)
}

func (s *GormStore) DeleteExercise(id uint64) (bool, error) {
	return gormDelete[models.Exercise](s.db, id)
}

// Personal records

func (s *GormStore) CreatePersonalRecord(r *models.PersonalRecord) (*models.PersonalRecord, error) {
	row := *r
	row.ID = 0
	if err := s.db.Create(&row).Error; err != nil {
		return nil, fmt.Errorf("create personal record: %w", err)
	}
	return &row, nil
}

func (s *GormStore) GetPersonalRecord(id uint64) (*models.PersonalRecord, error) {
	return first[models.PersonalRecord](s.db, id)
}

func (s *GormStore) GetPersonalRecordsByUser(userID uint64) ([]models.PersonalRecord, error) {
	var rows []models.PersonalRecord
	err := s.db.Where("user_id = ?", userID).Order("date DESC, id ASC").Find(&rows).Error
	return rows, err
}

func (s *GormStore) GetPersonalRecordsByExercise(userID, exerciseID uint64) ([]models.PersonalRecord, error) {
	var rows []models.PersonalRecord
	// Oldest first, for progression charts.
	err := s.db.
		Where("user_id = ? AND exercise_id = ?", userID, exerciseID).
		Order("date ASC, id ASC").
		Find(&rows).Error
	return rows, err
}

func (s *GormStore) GetRecentPersonalRecords(userID uint64, limit int) ([]models.PersonalRecord, error) {
	var rows []models.PersonalRecord
	q := s.db.Where("user_id = ?", userID).Order("date DESC, id ASC")
	if limit >= 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&rows).Error
	return rows, err
}

func (s *GormStore) UpdatePersonalRecord(id uint64, patch models.PersonalRecordPatch) (*models.PersonalRecord, error) {
	return gormPatch(s.db, id, patch.Apply)
}

func (s *GormStore) DeletePersonalRecord(id uint64) (bool, error) {
	return gormDelete[models.PersonalRecord](s.db, id)
}

// Groups

func (s *GormStore) CreateGroup(g *models.Group) (*models.Group, error) {
	row := *g
	row.ID = 0
	row.CreatedAt = time.Now().UTC()
	if err := s.db.Create(&row).Error; err != nil {
		return nil, fmt.Errorf("create group: %w", err)
	}
	return &row, nil
}

func (s *GormStore) GetGroup(id uint64) (*models.Group, error) {
	return first[models.Group](s.db, id)
}

func (s *GormStore) GetGroupsByCoach(coachID uint64) ([]models.Group, error) {
	var rows []models.Group
	err := s.db.Where("coach_id = ?", coachID).Order("id ASC").Find(&rows).Error
	return rows, err
}

func (s *GormStore) GetGroupsByMember(userID uint64) ([]models.Group, error) {
	var rows []models.Group
	err := s.db.
		Where("id IN (?)", s.db.Model(&models.GroupMember{}).
			Select("group_id").Where("user_id = ?", userID)).
		Order("id ASC").
		Find(&rows).Error
	return rows, err
}

func (s *GormStore) UpdateGroup(id uint64, patch models.GroupPatch) (*models.Group, error) {
	return gormPatch(s.db, id, patch.Apply)
}

// DeleteGroup runs the cascade in a transaction: memberships first, then
// the group's scheduled workouts with their results, then the group row.
func (s *GormStore) DeleteGroup(id uint64) (bool, error) {
	found := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var g models.Group
		if err := tx.Where("id = ?", id).First(&g).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		found = true

		if err := tx.Where("group_id = ?", id).Delete(&models.GroupMember{}).Error; err != nil {
			return err
		}
		scheduledIDs := tx.Model(&models.ScheduledWorkout{}).
			Select("id").Where("group_id = ?", id)
		if err := tx.Where("scheduled_workout_id IN (?)", scheduledIDs).
			Delete(&models.WorkoutResult{}).Error; err != nil {
			return err
		}
		if err := tx.Where("group_id = ?", id).Delete(&models.ScheduledWorkout{}).Error; err != nil {
			return err
		}
		return tx.Delete(&g).Error
	})
	if err != nil {
		return false, fmt.Errorf("delete group %d: %w", id, err)
	}
	return found, nil
}

// Group members

func (s *GormStore) AddGroupMember(groupID, userID uint64) (*models.GroupMember, error) {
	var row models.GroupMember
	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("group_id = ? AND user_id = ?", groupID, userID).First(&row).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		row = models.GroupMember{
			GroupID:  groupID,
			UserID:   userID,
			JoinedAt: time.Now().UTC(),
		}
		return tx.Create(&row).Error
	})
	if err != nil {
		return nil, fmt.Errorf("add group member: %w", err)
	}
	return &row, nil
}

func (s *GormStore) GetGroupMembers(groupID uint64) ([]models.GroupMember, error) {
	var rows []models.GroupMember
	err := s.db.Where("group_id = ?", groupID).
		Order("joined_at DESC, id ASC").
		Find(&rows).Error
	return rows, err
}

func (s *GormStore) IsGroupMember(groupID, userID uint64) (bool, error) {
	var count int64
	err := s.db.Model(&models.GroupMember{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Count(&count).Error
	return count > 0, err
}

func (s *GormStore) RemoveGroupMember(groupID, userID uint64) (bool, error) {
	res := s.db.Where("group_id = ? AND user_id = ?", groupID, userID).
		Delete(&models.GroupMember{})
	return res.RowsAffected > 0, res.Error
}

// Scheduled workouts

func (s *GormStore) CreateScheduledWorkout(sw *models.ScheduledWorkout) (*models.ScheduledWorkout, error) {
	row := *sw
	row.ID = 0
	row.CreatedAt = time.Now().UTC()
	if err := s.db.Create(&row).Error; err != nil {
		return nil, fmt.Errorf("create scheduled workout: %w", err)
	}
	return &row, nil
}

func (s *GormStore) GetScheduledWorkout(id uint64) (*models.ScheduledWorkout, error) {
	return first[models.ScheduledWorkout](s.db, id)
}

func (s *GormStore) GetScheduledWorkoutsByGroup(groupID uint64) ([]models.ScheduledWorkout, error) {
	var rows []models.ScheduledWorkout
	err := s.db.Where("group_id = ?", groupID).
		Order("scheduled_date ASC, id ASC").
		Find(&rows).Error
	return rows, err
}

func (s *GormStore) GetUpcomingScheduledWorkouts(userID uint64, now time.Time) ([]models.ScheduledWorkout, error) {
	var rows []models.ScheduledWorkout
	groupIDs := s.db.Model(&models.GroupMember{}).
		Select("group_id").Where("user_id = ?", userID)
	err := s.db.
		Where("group_id IN (?) AND scheduled_date >= ?", groupIDs, now).
		Order("scheduled_date ASC, id ASC").
		Find(&rows).Error
	return rows, err
}

func (s *GormStore) UpdateScheduledWorkout(id uint64, patch models.ScheduledWorkoutPatch) (*models.ScheduledWorkout, error) {
	return gormPatch(s.db, id, patch.Apply)
}

// DeleteScheduledWorkout drops the workout's results before the row itself.
func (s *GormStore) DeleteScheduledWorkout(id uint64) (bool, error) {
	found := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var sw models.ScheduledWorkout
		if err := tx.Where("id = ?", id).First(&sw).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		found = true

		if err := tx.Where("scheduled_workout_id = ?", id).
			Delete(&models.WorkoutResult{}).Error; err != nil {
			return err
		}
		return tx.Delete(&sw).Error
	})
	if err != nil {
		return false, fmt.Errorf("delete scheduled workout %d: %w", id, err)
	}
	return found, nil
}

// Workout results

func (s *GormStore) CreateWorkoutResult(r *models.WorkoutResult) (*models.WorkoutResult, error) {
	row := *r
	row.ID = 0
	row.CompletedAt = time.Now().UTC()
	if err := s.db.Create(&row).Error; err != nil {
		return nil, fmt.Errorf("create workout result: %w", err)
	}
	return &row, nil
}

func (s *GormStore) GetWorkoutResult(id uint64) (*models.WorkoutResult, error) {
	return first[models.WorkoutResult](s.db, id)
}

func (s *GormStore) GetWorkoutResultsByScheduledWorkout(scheduledWorkoutID uint64) ([]models.WorkoutResult, error) {
	var rows []models.WorkoutResult
	err := s.db.Where("scheduled_workout_id = ?", scheduledWorkoutID).
		Order("completed_at DESC, id ASC").
		Find(&rows).Error
	return rows, err
}

func (s *GormStore) GetWorkoutResultsByUser(userID uint64) ([]models.WorkoutResult, error) {
	var rows []models.WorkoutResult
	err := s.db.Where("user_id = ?", userID).
		Order("completed_at DESC, id ASC").
		Find(&rows).Error
	return rows, err
}

func (s *GormStore) UpdateWorkoutResult(id uint64, patch models.WorkoutResultPatch) (*models.WorkoutResult, error) {
	return gormPatch(s.db, id, patch.Apply)
}

func (s *GormStore) DeleteWorkoutResult(id uint64) (bool, error) {
	return gormDelete[models.WorkoutResult](s.db, id)
}

// gormPatch loads a row, applies the typed merge, and saves it back inside
// a transaction. Missing rows return (nil, nil), never an upsert.
func gormPatch[T any](db *gorm.DB, id uint64, apply func(*T)) (*T, error) {
	var row T
	found := false
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		found = true
		apply(&row)
		return tx.Save(&row).Error
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &row, nil
}

// gormDelete removes a row by id, reporting whether it existed.
func gormDelete[T any](db *gorm.DB, id uint64) (bool, error) {
	var row T
	res := db.Where("id = ?", id).Delete(&row)
	return res.RowsAffected > 0, res.Error
}
