package store

import (
	"testing"
	"time"

	"github.com/crossbox/wodtracker/internal/models"
)

func newTestStore(t *testing.T) *MemoryStore {
	t.Helper()
	return NewMemoryStore()
}

func createTestUser(t *testing.T, st *MemoryStore, username, role string) *models.User {
	t.Helper()
	u, err := st.CreateUser(&models.User{
		Username:     username,
		PasswordHash: "x",
		Role:         role,
	})
	if err != nil {
		t.Fatalf("Failed to create user %s: %v", username, err)
	}
	return u
}

func TestCreateUserAssignsSequentialIDs(t *testing.T) {
	st := newTestStore(t)

	a := createTestUser(t, st, "alice", models.RoleAthlete)
	b := createTestUser(t, st, "bob", models.RoleAthlete)

	if a.ID != 1 {
		t.Errorf("Expected first id 1, got %d", a.ID)
	}
	if b.ID != 2 {
		t.Errorf("Expected second id 2, got %d", b.ID)
	}
	if a.CreatedAt.IsZero() {
		t.Error("Expected CreatedAt to be set on create")
	}
}

func TestIDsAreNotReusedAfterDelete(t *testing.T) {
	st := newTestStore(t)

	a := createTestUser(t, st, "alice", models.RoleAthlete)
	if _, err := st.DeleteUser(a.ID); err != nil {
		t.Fatalf("Failed to delete user: %v", err)
	}

	b := createTestUser(t, st, "bob", models.RoleAthlete)
	if b.ID != 2 {
		t.Errorf("Expected id 2 after deleting id 1, got %d", b.ID)
	}
}

func TestGetMissingUserReturnsNilNil(t *testing.T) {
	st := newTestStore(t)

	u, err := st.GetUser(999)
	if err != nil {
		t.Fatalf("Expected nil error for missing user, got %v", err)
	}
	if u != nil {
		t.Errorf("Expected nil user for missing id, got %+v", u)
	}
}

func TestUpdateMissingUserReturnsNilNil(t *testing.T) {
	st := newTestStore(t)

	name := "Nobody"
	u, err := st.UpdateUser(999, models.UserPatch{Name: &name})
	if err != nil {
		t.Fatalf("Expected nil error for missing user, got %v", err)
	}
	if u != nil {
		t.Errorf("Expected nil result updating missing id, got %+v", u)
	}
}

func TestEmptyPatchLeavesEntityUnchanged(t *testing.T) {
	st := newTestStore(t)

	u := createTestUser(t, st, "alice", models.RoleCoach)
	u.Name = ""

	got, err := st.UpdateUser(u.ID, models.UserPatch{})
	if err != nil {
		t.Fatalf("Failed to apply empty patch: %v", err)
	}
	if got.Username != "alice" || got.Role != models.RoleCoach {
		t.Errorf("Empty patch changed entity: %+v", got)
	}
	if !got.CreatedAt.Equal(u.CreatedAt) {
		t.Error("Empty patch changed CreatedAt")
	}
}

func TestPatchUpdatesOnlyProvidedFields(t *testing.T) {
	st := newTestStore(t)

	u := createTestUser(t, st, "alice", models.RoleAthlete)

	name := "Alice Fraser"
	got, err := st.UpdateUser(u.ID, models.UserPatch{Name: &name})
	if err != nil {
		t.Fatalf("Failed to apply patch: %v", err)
	}
	if got.Name != "Alice Fraser" {
		t.Errorf("Expected patched name, got %q", got.Name)
	}
	if got.Username != "alice" {
		t.Errorf("Patch changed unrelated field username: %q", got.Username)
	}
}

func TestDeleteReturnsFalseForMissingAndTrueOnce(t *testing.T) {
	st := newTestStore(t)

	ok, err := st.DeleteUser(42)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if ok {
		t.Error("Expected false deleting a missing user")
	}

	u := createTestUser(t, st, "alice", models.RoleAthlete)
	ok, err = st.DeleteUser(u.ID)
	if err != nil || !ok {
		t.Fatalf("Expected successful delete, got ok=%v err=%v", ok, err)
	}

	ok, _ = st.DeleteUser(u.ID)
	if ok {
		t.Error("Expected false deleting the same user twice")
	}
}

func TestStoredEntitiesAreCopies(t *testing.T) {
	st := newTestStore(t)

	u := createTestUser(t, st, "alice", models.RoleAthlete)
	u.Username = "mallory"

	got, err := st.GetUser(u.ID)
	if err != nil {
		t.Fatalf("Failed to get user: %v", err)
	}
	if got.Username != "alice" {
		t.Errorf("Mutating a returned entity leaked into the store: %q", got.Username)
	}
}

func TestGetWorkoutsByUserSortsNewestFirst(t *testing.T) {
	st := newTestStore(t)
	u := createTestUser(t, st, "alice", models.RoleAthlete)

	day := func(d int) time.Time {
		return time.Date(2026, 8, d, 9, 0, 0, 0, time.UTC)
	}
	for _, d := range []int{3, 1, 7} {
		_, err := st.CreateWorkout(&models.Workout{
			UserID: u.ID,
			Date:   day(d),
			Type:   models.WorkoutAMRAP,
		})
		if err != nil {
			t.Fatalf("Failed to create workout: %v", err)
		}
	}

	got, err := st.GetWorkoutsByUser(u.ID)
	if err != nil {
		t.Fatalf("Failed to list workouts: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Expected 3 workouts, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Date.After(got[i-1].Date) {
			t.Errorf("Workouts not sorted newest first: %v before %v", got[i-1].Date, got[i].Date)
		}
	}
}

func TestGetWorkoutsByUserAndTypeFilters(t *testing.T) {
	st := newTestStore(t)
	u := createTestUser(t, st, "alice", models.RoleAthlete)

	now := time.Now().UTC()
	for _, typ := range []string{models.WorkoutAMRAP, models.WorkoutEMOM, models.WorkoutAMRAP} {
		if _, err := st.CreateWorkout(&models.Workout{UserID: u.ID, Date: now, Type: typ}); err != nil {
			t.Fatalf("Failed to create workout: %v", err)
		}
	}

	got, err := st.GetWorkoutsByUserAndType(u.ID, models.WorkoutAMRAP)
	if err != nil {
		t.Fatalf("Failed to filter workouts: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("Expected 2 amrap workouts, got %d", len(got))
	}
	for _, w := range got {
		if w.Type != models.WorkoutAMRAP {
			t.Errorf("Filter returned wrong type %q", w.Type)
		}
	}
}

func TestEqualDatesBreakTiesByID(t *testing.T) {
	st := newTestStore(t)
	u := createTestUser(t, st, "alice", models.RoleAthlete)

	same := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	var ids []uint64
	for i := 0; i < 3; i++ {
		w, err := st.CreateWorkout(&models.Workout{UserID: u.ID, Date: same, Type: models.WorkoutEMOM})
		if err != nil {
			t.Fatalf("Failed to create workout: %v", err)
		}
		ids = append(ids, w.ID)
	}

	got, err := st.GetWorkoutsByUser(u.ID)
	if err != nil {
		t.Fatalf("Failed to list workouts: %v", err)
	}
	for i, w := range got {
		if w.ID != ids[i] {
			t.Errorf("Expected id %d at position %d, got %d", ids[i], i, w.ID)
		}
	}
}

func TestSearchExercisesMatchesNameAndDescription(t *testing.T) {
	st := newTestStore(t)
	if err := SeedExercises(st); err != nil {
		t.Fatalf("Failed to seed exercises: %v", err)
	}

	got, err := st.SearchExercises("squat")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(got) < 2 {
		t.Fatalf("Expected at least 2 matches for 'squat', got %d", len(got))
	}

	var byName, byDescription bool
	for _, e := range got {
		if e.Name == "Back Squat" {
			byName = true
		}
		if e.Name != "Back Squat" {
			byDescription = true
		}
	}
	if !byName {
		t.Error("Expected 'Back Squat' to match by name")
	}
	if !byDescription {
		t.Error("Expected at least one match by description only")
	}
}

func TestSearchExercisesIsCaseInsensitive(t *testing.T) {
	st := newTestStore(t)
	if err := SeedExercises(st); err != nil {
		t.Fatalf("Failed to seed exercises: %v", err)
	}

	lower, err := st.SearchExercises("squat")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	upper, err := st.SearchExercises("SQUAT")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(lower) != len(upper) {
		t.Errorf("Case changed result count: %d vs %d", len(lower), len(upper))
	}
}

func TestSeedExercisesCatalog(t *testing.T) {
	st := newTestStore(t)
	if err := SeedExercises(st); err != nil {
		t.Fatalf("Failed to seed exercises: %v", err)
	}

	all, err := st.GetAllExercises()
	if err != nil {
		t.Fatalf("Failed to list exercises: %v", err)
	}
	if len(all) != 12 {
		t.Errorf("Expected 12 seeded exercises, got %d", len(all))
	}

	categories := []string{
		models.CategoryWeightlifting,
		models.CategoryGymnastics,
		models.CategoryCardio,
		models.CategoryMetcons,
	}
	for _, cat := range categories {
		inCat, err := st.GetExercisesByCategory(cat)
		if err != nil {
			t.Fatalf("Failed to list category %s: %v", cat, err)
		}
		if len(inCat) != 3 {
			t.Errorf("Expected 3 exercises in %s, got %d", cat, len(inCat))
		}
	}
}

func TestPersonalRecordSortOrders(t *testing.T) {
	st := newTestStore(t)
	u := createTestUser(t, st, "alice", models.RoleAthlete)
	ex, err := st.CreateExercise(&models.Exercise{Name: "Deadlift", Category: "Weightlifting"})
	if err != nil {
		t.Fatalf("Failed to create exercise: %v", err)
	}

	day := func(d int) time.Time {
		return time.Date(2026, 7, d, 0, 0, 0, 0, time.UTC)
	}
	for _, d := range []int{10, 2, 20} {
		_, err := st.CreatePersonalRecord(&models.PersonalRecord{
			UserID:     u.ID,
			ExerciseID: ex.ID,
			Value:      float64(100 + d),
			Unit:       "kg",
			Date:       day(d),
		})
		if err != nil {
			t.Fatalf("Failed to create record: %v", err)
		}
	}

	// By-exercise is oldest first, for progression.
	byExercise, err := st.GetPersonalRecordsByExercise(u.ID, ex.ID)
	if err != nil {
		t.Fatalf("Failed to list by exercise: %v", err)
	}
	for i := 1; i < len(byExercise); i++ {
		if byExercise[i].Date.Before(byExercise[i-1].Date) {
			t.Error("By-exercise records not sorted oldest first")
		}
	}

	// By-user and recent are newest first.
	byUser, err := st.GetPersonalRecordsByUser(u.ID)
	if err != nil {
		t.Fatalf("Failed to list by user: %v", err)
	}
	for i := 1; i < len(byUser); i++ {
		if byUser[i].Date.After(byUser[i-1].Date) {
			t.Error("By-user records not sorted newest first")
		}
	}
}

func TestGetRecentPersonalRecordsHonorsLimit(t *testing.T) {
	st := newTestStore(t)
	u := createTestUser(t, st, "alice", models.RoleAthlete)

	for d := 1; d <= 8; d++ {
		_, err := st.CreatePersonalRecord(&models.PersonalRecord{
			UserID:     u.ID,
			ExerciseID: 1,
			Value:      100,
			Unit:       "kg",
			Date:       time.Date(2026, 7, d, 0, 0, 0, 0, time.UTC),
		})
		if err != nil {
			t.Fatalf("Failed to create record: %v", err)
		}
	}

	got, err := st.GetRecentPersonalRecords(u.ID, 5)
	if err != nil {
		t.Fatalf("Failed to list recent records: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("Expected 5 recent records, got %d", len(got))
	}
	if !got[0].Date.After(got[4].Date) {
		t.Error("Recent records not sorted newest first")
	}
}

func TestAddGroupMemberIsIdempotent(t *testing.T) {
	st := newTestStore(t)
	coach := createTestUser(t, st, "coach", models.RoleCoach)
	athlete := createTestUser(t, st, "alice", models.RoleAthlete)
	g, err := st.CreateGroup(&models.Group{Name: "Morning Crew", CoachID: coach.ID})
	if err != nil {
		t.Fatalf("Failed to create group: %v", err)
	}

	first, err := st.AddGroupMember(g.ID, athlete.ID)
	if err != nil {
		t.Fatalf("Failed to add member: %v", err)
	}
	second, err := st.AddGroupMember(g.ID, athlete.ID)
	if err != nil {
		t.Fatalf("Failed to re-add member: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("Duplicate add created a new row: %d vs %d", first.ID, second.ID)
	}

	members, err := st.GetGroupMembers(g.ID)
	if err != nil {
		t.Fatalf("Failed to list members: %v", err)
	}
	if len(members) != 1 {
		t.Errorf("Expected 1 member, got %d", len(members))
	}
}

func TestRemoveGroupMember(t *testing.T) {
	st := newTestStore(t)
	coach := createTestUser(t, st, "coach", models.RoleCoach)
	athlete := createTestUser(t, st, "alice", models.RoleAthlete)
	g, _ := st.CreateGroup(&models.Group{Name: "Crew", CoachID: coach.ID})

	if _, err := st.AddGroupMember(g.ID, athlete.ID); err != nil {
		t.Fatalf("Failed to add member: %v", err)
	}

	ok, err := st.RemoveGroupMember(g.ID, athlete.ID)
	if err != nil || !ok {
		t.Fatalf("Expected successful remove, got ok=%v err=%v", ok, err)
	}

	isMember, err := st.IsGroupMember(g.ID, athlete.ID)
	if err != nil {
		t.Fatalf("Membership check failed: %v", err)
	}
	if isMember {
		t.Error("User still a member after removal")
	}

	ok, _ = st.RemoveGroupMember(g.ID, athlete.ID)
	if ok {
		t.Error("Expected false removing a missing membership")
	}
}

func TestGetGroupsByMemberListsJoinedGroups(t *testing.T) {
	st := newTestStore(t)
	coach := createTestUser(t, st, "coach", models.RoleCoach)
	athlete := createTestUser(t, st, "alice", models.RoleAthlete)

	g1, _ := st.CreateGroup(&models.Group{Name: "First", CoachID: coach.ID})
	g2, _ := st.CreateGroup(&models.Group{Name: "Second", CoachID: coach.ID})
	g3, _ := st.CreateGroup(&models.Group{Name: "Third", CoachID: coach.ID})

	if _, err := st.AddGroupMember(g3.ID, athlete.ID); err != nil {
		t.Fatalf("Failed to add member: %v", err)
	}
	if _, err := st.AddGroupMember(g1.ID, athlete.ID); err != nil {
		t.Fatalf("Failed to add member: %v", err)
	}

	got, err := st.GetGroupsByMember(athlete.ID)
	if err != nil {
		t.Fatalf("Failed to list groups: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 groups, got %d", len(got))
	}
	if got[0].ID != g1.ID || got[1].ID != g3.ID {
		t.Errorf("Expected groups in id order, got %d, %d", got[0].ID, got[1].ID)
	}
	for _, g := range got {
		if g.ID == g2.ID {
			t.Error("Listed a group the user never joined")
		}
	}
}

func TestDeleteGroupCascades(t *testing.T) {
	st := newTestStore(t)
	coach := createTestUser(t, st, "coach", models.RoleCoach)
	athlete := createTestUser(t, st, "alice", models.RoleAthlete)
	g, _ := st.CreateGroup(&models.Group{Name: "Crew", CoachID: coach.ID})
	if _, err := st.AddGroupMember(g.ID, athlete.ID); err != nil {
		t.Fatalf("Failed to add member: %v", err)
	}

	w, _ := st.CreateWorkout(&models.Workout{UserID: coach.ID, Date: time.Now().UTC(), Type: models.WorkoutAMRAP})
	sw, err := st.CreateScheduledWorkout(&models.ScheduledWorkout{
		GroupID:       g.ID,
		WorkoutID:     w.ID,
		ScheduledDate: time.Now().UTC().Add(24 * time.Hour),
		CreatedBy:     coach.ID,
	})
	if err != nil {
		t.Fatalf("Failed to schedule workout: %v", err)
	}
	res, err := st.CreateWorkoutResult(&models.WorkoutResult{
		ScheduledWorkoutID: sw.ID,
		UserID:             athlete.ID,
		Result:             "12 rounds",
	})
	if err != nil {
		t.Fatalf("Failed to create result: %v", err)
	}

	ok, err := st.DeleteGroup(g.ID)
	if err != nil || !ok {
		t.Fatalf("Expected successful group delete, got ok=%v err=%v", ok, err)
	}

	if members, _ := st.GetGroupMembers(g.ID); len(members) != 0 {
		t.Errorf("Expected no members after cascade, got %d", len(members))
	}
	if got, _ := st.GetScheduledWorkout(sw.ID); got != nil {
		t.Error("Expected scheduled workout removed by cascade")
	}
	if got, _ := st.GetWorkoutResult(res.ID); got != nil {
		t.Error("Expected workout result removed by cascade")
	}
	if got, _ := st.GetWorkout(w.ID); got == nil {
		t.Error("Group cascade must not delete the underlying workout")
	}
}

func TestDeleteScheduledWorkoutRemovesResults(t *testing.T) {
	st := newTestStore(t)
	coach := createTestUser(t, st, "coach", models.RoleCoach)
	g, _ := st.CreateGroup(&models.Group{Name: "Crew", CoachID: coach.ID})
	sw, _ := st.CreateScheduledWorkout(&models.ScheduledWorkout{
		GroupID:       g.ID,
		WorkoutID:     1,
		ScheduledDate: time.Now().UTC(),
		CreatedBy:     coach.ID,
	})
	res, _ := st.CreateWorkoutResult(&models.WorkoutResult{
		ScheduledWorkoutID: sw.ID,
		UserID:             coach.ID,
		Result:             "3:12",
	})

	ok, err := st.DeleteScheduledWorkout(sw.ID)
	if err != nil || !ok {
		t.Fatalf("Expected successful delete, got ok=%v err=%v", ok, err)
	}
	if got, _ := st.GetWorkoutResult(res.ID); got != nil {
		t.Error("Expected result removed with its scheduled workout")
	}
}

func TestGetUpcomingScheduledWorkouts(t *testing.T) {
	st := newTestStore(t)
	coach := createTestUser(t, st, "coach", models.RoleCoach)
	athlete := createTestUser(t, st, "alice", models.RoleAthlete)

	g1, _ := st.CreateGroup(&models.Group{Name: "Mine", CoachID: coach.ID})
	g2, _ := st.CreateGroup(&models.Group{Name: "Other", CoachID: coach.ID})
	if _, err := st.AddGroupMember(g1.ID, athlete.ID); err != nil {
		t.Fatalf("Failed to add member: %v", err)
	}

	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	mk := func(groupID uint64, offset time.Duration) *models.ScheduledWorkout {
		sw, err := st.CreateScheduledWorkout(&models.ScheduledWorkout{
			GroupID:       groupID,
			WorkoutID:     1,
			ScheduledDate: now.Add(offset),
			CreatedBy:     coach.ID,
		})
		if err != nil {
			t.Fatalf("Failed to schedule workout: %v", err)
		}
		return sw
	}

	past := mk(g1.ID, -48*time.Hour)
	later := mk(g1.ID, 72*time.Hour)
	soon := mk(g1.ID, 24*time.Hour)
	mk(g2.ID, 24*time.Hour) // not a member

	got, err := st.GetUpcomingScheduledWorkouts(athlete.ID, now)
	if err != nil {
		t.Fatalf("Failed to list upcoming: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 upcoming workouts, got %d", len(got))
	}
	if got[0].ID != soon.ID || got[1].ID != later.ID {
		t.Errorf("Upcoming not sorted soonest first: got %d, %d", got[0].ID, got[1].ID)
	}
	for _, sw := range got {
		if sw.ID == past.ID {
			t.Error("Past workout included in upcoming")
		}
	}
}

func TestGetWorkoutResultsByScheduledWorkout(t *testing.T) {
	st := newTestStore(t)
	coach := createTestUser(t, st, "coach", models.RoleCoach)
	g, _ := st.CreateGroup(&models.Group{Name: "Crew", CoachID: coach.ID})
	sw, _ := st.CreateScheduledWorkout(&models.ScheduledWorkout{
		GroupID:       g.ID,
		WorkoutID:     1,
		ScheduledDate: time.Now().UTC(),
		CreatedBy:     coach.ID,
	})

	for i := 0; i < 3; i++ {
		u := createTestUser(t, st, "athlete"+string(rune('a'+i)), models.RoleAthlete)
		if _, err := st.CreateWorkoutResult(&models.WorkoutResult{
			ScheduledWorkoutID: sw.ID,
			UserID:             u.ID,
			Result:             "done",
		}); err != nil {
			t.Fatalf("Failed to create result: %v", err)
		}
	}

	got, err := st.GetWorkoutResultsByScheduledWorkout(sw.ID)
	if err != nil {
		t.Fatalf("Failed to list results: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("Expected 3 results, got %d", len(got))
	}
}

func TestConcurrentCreatesProduceUniqueIDs(t *testing.T) {
	st := newTestStore(t)

	const n = 50
	done := make(chan uint64, n)
	for i := 0; i < n; i++ {
		go func() {
			w, err := st.CreateWorkout(&models.Workout{UserID: 1, Date: time.Now().UTC(), Type: models.WorkoutAMRAP})
			if err != nil {
				done <- 0
				return
			}
			done <- w.ID
		}()
	}

	seen := make(map[uint64]bool, n)
	for i := 0; i < n; i++ {
		id := <-done
		if id == 0 {
			t.Fatal("Concurrent create failed")
		}
		if seen[id] {
			t.Fatalf("Duplicate id %d from concurrent creates", id)
		}
		seen[id] = true
	}
}
