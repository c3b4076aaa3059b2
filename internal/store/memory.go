package store

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/crossbox/wodtracker/internal/models"
)

// MemoryStore holds all entities in per-type maps keyed by id. Identifiers
// come from per-type counters starting at 1 and are never reused. A single
// RWMutex makes every logical operation, cascades included, atomic with
// respect to concurrent requests.
//
// Entities are stored and returned by value, so callers can never mutate a
// stored row without going through an Update.
type MemoryStore struct {
	mu sync.RWMutex

	users     map[uint64]models.User
	workouts  map[uint64]models.Workout
	exercises map[uint64]models.Exercise
	records   map[uint64]models.PersonalRecord
	groups    map[uint64]models.Group
	members   map[uint64]models.GroupMember
	scheduled map[uint64]models.ScheduledWorkout
	results   map[uint64]models.WorkoutResult

	nextUserID      uint64
	nextWorkoutID   uint64
	nextExerciseID  uint64
	nextRecordID    uint64
	nextGroupID     uint64
	nextMemberID    uint64
	nextScheduledID uint64
	nextResultID    uint64
}

// NewMemoryStore returns an empty store. Call SeedExercises to load the
// demo catalog.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:     make(map[uint64]models.User),
		workouts:  make(map[uint64]models.Workout),
		exercises: make(map[uint64]models.Exercise),
		records:   make(map[uint64]models.PersonalRecord),
		groups:    make(map[uint64]models.Group),
		members:   make(map[uint64]models.GroupMember),
		scheduled: make(map[uint64]models.ScheduledWorkout),
		results:   make(map[uint64]models.WorkoutResult),
	}
}

var _ Store = (*MemoryStore)(nil)

// Users

func (s *MemoryStore) CreateUser(u *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextUserID++
	row := *u
	row.ID = s.nextUserID
	row.CreatedAt = time.Now().UTC()
	s.users[row.ID] = row
	return &row, nil
}

func (s *MemoryStore) GetUser(id uint64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (s *MemoryStore) GetUserByUsername(username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, row := range s.users {
		if row.Username == username {
			row := row
			return &row, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) GetAllUsers() ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.User, 0, len(s.users))
	for _, row := range s.users {
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) UpdateUser(id uint64, patch models.UserPatch) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	patch.Apply(&row)
	s.users[id] = row
	return &row, nil
}

func (s *MemoryStore) DeleteUser(id uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return false, nil
	}
	delete(s.users, id)
	return true, nil
}

// Workouts

func (s *MemoryStore) CreateWorkout(w *models.Workout) (*models.Workout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextWorkoutID++
	row := *w
	row.ID = s.nextWorkoutID
	s.workouts[row.ID] = row
	return &row, nil
}

func (s *MemoryStore) GetWorkout(id uint64) (*models.Workout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.workouts[id]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (s *MemoryStore) GetWorkoutsByUser(userID uint64) ([]models.Workout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Workout
	for _, row := range s.workouts {
		if row.UserID == userID {
			out = append(out, row)
		}
	}
	sortWorkoutsNewestFirst(out)
	return out, nil
}

func (s *MemoryStore) GetWorkoutsByUserAndType(userID uint64, workoutType string) ([]models.Workout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Workout
	for _, row := range s.workouts {
		if row.UserID == userID && row.Type == workoutType {
			out = append(out, row)
		}
	}
	sortWorkoutsNewestFirst(out)
	return out, nil
}

func (s *MemoryStore) UpdateWorkout(id uint64, patch models.WorkoutPatch) (*models.Workout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.workouts[id]
	if !ok {
		return nil, nil
	}
	patch.Apply(&row)
	s.workouts[id] = row
	return &row, nil
}

func (s *MemoryStore) DeleteWorkout(id uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.workouts[id]; !ok {
		return false, nil
	}
	delete(s.workouts, id)
	return true, nil
}

// Exercises

func (s *MemoryStore) CreateExercise(e *models.Exercise) (*models.Exercise, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextExerciseID++
	row := *e
	row.ID = s.nextExerciseID
	s.exercises[row.ID] = row
	return &row, nil
}

func (s *MemoryStore) GetExercise(id uint64) (*models.Exercise, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.exercises[id]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (s *MemoryStore) GetAllExercises() ([]models.Exercise, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Exercise, 0, len(s.exercises))
	for _, row := range s.exercises {
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) GetExercisesByCategory(category string) ([]models.Exercise, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Exercise
	for _, row := range s.exercises {
		if row.Category == category {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) SearchExercises(query string) ([]models.Exercise, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(query)
	var out []models.Exercise
	for _, row := range s.exercises {
		if strings.Contains(strings.ToLower(row.Name), q) ||
			strings.Contains(strings.ToLower(row.Description), q) {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) UpdateExercise(id uint64, patch models.ExercisePatch) (*models.Exercise, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.exercises[id]
	if !ok {
		return nil, nil
	}
	patch.Apply(&row)
	s.exercises[id] = row
	return &row, nil
}

func (s *MemoryStore) DeleteExercise(id uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.exercises[id]; !ok {
		return false, nil
	}
	delete(s.exercises, id)
	return true, nil
}

// Personal records

func (s *MemoryStore) CreatePersonalRecord(r *models.PersonalRecord) (*models.PersonalRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextRecordID++
	row := *r
	row.ID = s.nextRecordID
	s.records[row.ID] = row
	return &row, nil
}

func (s *MemoryStore) GetPersonalRecord(id uint64) (*models.PersonalRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.records[id]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (s *MemoryStore) GetPersonalRecordsByUser(userID uint64) ([]models.PersonalRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.PersonalRecord
	for _, row := range s.records {
		if row.UserID == userID {
			out = append(out, row)
		}
	}
	sortRecordsNewestFirst(out)
	return out, nil
}

func (s *MemoryStore) GetPersonalRecordsByExercise(userID, exerciseID uint64) ([]models.PersonalRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.PersonalRecord
	for _, row := range s.records {
		if row.UserID == userID && row.ExerciseID == exerciseID {
			out = append(out, row)
		}
	}
	// Oldest first, for progression charts.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *MemoryStore) GetRecentPersonalRecords(userID uint64, limit int) ([]models.PersonalRecord, error) {
	out, err := s.GetPersonalRecordsByUser(userID)
	if err != nil {
		return nil, err
	}
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemoryStore) UpdatePersonalRecord(id uint64, patch models.PersonalRecordPatch) (*models.PersonalRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.records[id]
	if !ok {
		return nil, nil
	}
	patch.Apply(&row)
	s.records[id] = row
	return &row, nil
}

func (s *MemoryStore) DeletePersonalRecord(id uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return false, nil
	}
	delete(s.records, id)
	return true, nil
}

// Groups

func (s *MemoryStore) CreateGroup(g *models.Group) (*models.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextGroupID++
	row := *g
	row.ID = s.nextGroupID
	row.CreatedAt = time.Now().UTC()
	s.groups[row.ID] = row
	return &row, nil
}

func (s *MemoryStore) GetGroup(id uint64) (*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.groups[id]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (s *MemoryStore) GetGroupsByCoach(coachID uint64) ([]models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Group
	for _, row := range s.groups {
		if row.CoachID == coachID {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) GetGroupsByMember(userID uint64) ([]models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Group
	for _, m := range s.members {
		if m.UserID != userID {
			continue
		}
		if g, ok := s.groups[m.GroupID]; ok {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) UpdateGroup(id uint64, patch models.GroupPatch) (*models.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.groups[id]
	if !ok {
		return nil, nil
	}
	patch.Apply(&row)
	s.groups[id] = row
	return &row, nil
}

// DeleteGroup cascades before removing the group row, in order: the group's
// memberships, then each of its scheduled workouts (which in turn drop their
// results). No orphaned child rows survive a group delete.
func (s *MemoryStore) DeleteGroup(id uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.groups[id]; !ok {
		return false, nil
	}
	for mid, m := range s.members {
		if m.GroupID == id {
			delete(s.members, mid)
		}
	}
	for sid, sw := range s.scheduled {
		if sw.GroupID == id {
			s.deleteScheduledLocked(sid)
		}
	}
	delete(s.groups, id)
	return true, nil
}

// Group members

func (s *MemoryStore) AddGroupMember(groupID, userID uint64) (*models.GroupMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, row := range s.members {
		if row.GroupID == groupID && row.UserID == userID {
			row := row
			return &row, nil
		}
	}

	s.nextMemberID++
	row := models.GroupMember{
		ID:       s.nextMemberID,
		GroupID:  groupID,
		UserID:   userID,
		JoinedAt: time.Now().UTC(),
	}
	s.members[row.ID] = row
	return &row, nil
}

func (s *MemoryStore) GetGroupMembers(groupID uint64) ([]models.GroupMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.GroupMember
	for _, row := range s.members {
		if row.GroupID == groupID {
			out = append(out, row)
		}
	}
	// Most recent joiners first.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].JoinedAt.Equal(out[j].JoinedAt) {
			return out[i].JoinedAt.After(out[j].JoinedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *MemoryStore) IsGroupMember(groupID, userID uint64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, row := range s.members {
		if row.GroupID == groupID && row.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) RemoveGroupMember(groupID, userID uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, row := range s.members {
		if row.GroupID == groupID && row.UserID == userID {
			delete(s.members, id)
			return true, nil
		}
	}
	return false, nil
}

// Scheduled workouts

func (s *MemoryStore) CreateScheduledWorkout(sw *models.ScheduledWorkout) (*models.ScheduledWorkout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextScheduledID++
	row := *sw
	row.ID = s.nextScheduledID
	row.CreatedAt = time.Now().UTC()
	s.scheduled[row.ID] = row
	return &row, nil
}

func (s *MemoryStore) GetScheduledWorkout(id uint64) (*models.ScheduledWorkout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.scheduled[id]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (s *MemoryStore) GetScheduledWorkoutsByGroup(groupID uint64) ([]models.ScheduledWorkout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.ScheduledWorkout
	for _, row := range s.scheduled {
		if row.GroupID == groupID {
			out = append(out, row)
		}
	}
	sortScheduledSoonestFirst(out)
	return out, nil
}

func (s *MemoryStore) GetUpcomingScheduledWorkouts(userID uint64, now time.Time) ([]models.ScheduledWorkout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	groupIDs := make(map[uint64]struct{})
	for _, m := range s.members {
		if m.UserID == userID {
			groupIDs[m.GroupID] = struct{}{}
		}
	}

	var out []models.ScheduledWorkout
	for _, row := range s.scheduled {
		if _, ok := groupIDs[row.GroupID]; !ok {
			continue
		}
		if row.ScheduledDate.Before(now) {
			continue
		}
		out = append(out, row)
	}
	sortScheduledSoonestFirst(out)
	return out, nil
}

func (s *MemoryStore) UpdateScheduledWorkout(id uint64, patch models.ScheduledWorkoutPatch) (*models.ScheduledWorkout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.scheduled[id]
	if !ok {
		return nil, nil
	}
	patch.Apply(&row)
	s.scheduled[id] = row
	return &row, nil
}

// DeleteScheduledWorkout drops the workout's results before the row itself.
func (s *MemoryStore) DeleteScheduledWorkout(id uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.scheduled[id]; !ok {
		return false, nil
	}
	s.deleteScheduledLocked(id)
	return true, nil
}

// deleteScheduledLocked removes a scheduled workout and its results.
// Caller holds the write lock.
func (s *MemoryStore) deleteScheduledLocked(id uint64) {
	for rid, r := range s.results {
		if r.ScheduledWorkoutID == id {
			delete(s.results, rid)
		}
	}
	delete(s.scheduled, id)
}

// Workout results

func (s *MemoryStore) CreateWorkoutResult(r *models.WorkoutResult) (*models.WorkoutResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextResultID++
	row := *r
	row.ID = s.nextResultID
	row.CompletedAt = time.Now().UTC()
	s.results[row.ID] = row
	return &row, nil
}

func (s *MemoryStore) GetWorkoutResult(id uint64) (*models.WorkoutResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.results[id]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (s *MemoryStore) GetWorkoutResultsByScheduledWorkout(scheduledWorkoutID uint64) ([]models.WorkoutResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.WorkoutResult
	for _, row := range s.results {
		if row.ScheduledWorkoutID == scheduledWorkoutID {
			out = append(out, row)
		}
	}
	sortResultsNewestFirst(out)
	return out, nil
}

func (s *MemoryStore) GetWorkoutResultsByUser(userID uint64) ([]models.WorkoutResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.WorkoutResult
	for _, row := range s.results {
		if row.UserID == userID {
			out = append(out, row)
		}
	}
	sortResultsNewestFirst(out)
	return out, nil
}

func (s *MemoryStore) UpdateWorkoutResult(id uint64, patch models.WorkoutResultPatch) (*models.WorkoutResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.results[id]
	if !ok {
		return nil, nil
	}
	patch.Apply(&row)
	s.results[id] = row
	return &row, nil
}

func (s *MemoryStore) DeleteWorkoutResult(id uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.results[id]; !ok {
		return false, nil
	}
	delete(s.results, id)
	return true, nil
}

// Sort helpers. Ties on the sort key fall back to id ascending so repeated
// calls against an unmodified store yield identical order.

func sortWorkoutsNewestFirst(rows []models.Workout) {
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].Date.Equal(rows[j].Date) {
			return rows[i].Date.After(rows[j].Date)
		}
		return rows[i].ID < rows[j].ID
	})
}

func sortRecordsNewestFirst(rows []models.PersonalRecord) {
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].Date.Equal(rows[j].Date) {
			return rows[i].Date.After(rows[j].Date)
		}
		return rows[i].ID < rows[j].ID
	})
}

func sortScheduledSoonestFirst(rows []models.ScheduledWorkout) {
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].ScheduledDate.Equal(rows[j].ScheduledDate) {
			return rows[i].ScheduledDate.Before(rows[j].ScheduledDate)
		}
		return rows[i].ID < rows[j].ID
	})
}

func sortResultsNewestFirst(rows []models.WorkoutResult) {
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].CompletedAt.Equal(rows[j].CompletedAt) {
			return rows[i].CompletedAt.After(rows[j].CompletedAt)
		}
		return rows[i].ID < rows[j].ID
	})
}
