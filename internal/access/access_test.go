package access

import (
	"testing"

	"github.com/crossbox/wodtracker/internal/models"
	"github.com/crossbox/wodtracker/internal/store"
)

func user(id uint64, role string) *models.User {
	return &models.User{ID: id, Role: role}
}

func TestCanModifyWorkout(t *testing.T) {
	owner := user(1, models.RoleAthlete)
	other := user(2, models.RoleAthlete)
	admin := user(3, models.RoleAdmin)
	w := &models.Workout{ID: 10, UserID: owner.ID}

	if !CanModifyWorkout(owner, w) {
		t.Error("Owner must be able to modify their workout")
	}
	if CanModifyWorkout(other, w) {
		t.Error("Non-owner must not modify another user's workout")
	}
	// Workout logs are personal; even admins stay out.
	if CanModifyWorkout(admin, w) {
		t.Error("Admin must not modify another user's workout")
	}
}

func TestCanModifyPersonalRecord(t *testing.T) {
	owner := user(1, models.RoleAthlete)
	other := user(2, models.RoleCoach)
	r := &models.PersonalRecord{ID: 5, UserID: owner.ID}

	if !CanModifyPersonalRecord(owner, r) {
		t.Error("Owner must be able to modify their record")
	}
	if CanModifyPersonalRecord(other, r) {
		t.Error("Coach must not modify another user's record")
	}
}

func TestCanManageGroup(t *testing.T) {
	coach := user(1, models.RoleCoach)
	otherCoach := user(2, models.RoleCoach)
	admin := user(3, models.RoleAdmin)
	athlete := user(4, models.RoleAthlete)
	g := &models.Group{ID: 7, CoachID: coach.ID}

	if !CanManageGroup(coach, g) {
		t.Error("Owning coach must manage their group")
	}
	if CanManageGroup(otherCoach, g) {
		t.Error("Unrelated coach must not manage the group")
	}
	if !CanManageGroup(admin, g) {
		t.Error("Admin must manage any group")
	}
	if CanManageGroup(athlete, g) {
		t.Error("Athlete must not manage a group")
	}
}

func TestCanViewGroupFlipsWithMembership(t *testing.T) {
	st := store.NewMemoryStore()

	coach, err := st.CreateUser(&models.User{Username: "coach", PasswordHash: "x", Role: models.RoleCoach})
	if err != nil {
		t.Fatalf("Failed to create coach: %v", err)
	}
	athlete, err := st.CreateUser(&models.User{Username: "alice", PasswordHash: "x", Role: models.RoleAthlete})
	if err != nil {
		t.Fatalf("Failed to create athlete: %v", err)
	}
	g, err := st.CreateGroup(&models.Group{Name: "Crew", CoachID: coach.ID})
	if err != nil {
		t.Fatalf("Failed to create group: %v", err)
	}

	ok, err := CanViewGroup(st, athlete, g)
	if err != nil {
		t.Fatalf("CanViewGroup failed: %v", err)
	}
	if ok {
		t.Error("Non-member must not view the group")
	}

	if _, err := st.AddGroupMember(g.ID, athlete.ID); err != nil {
		t.Fatalf("Failed to add member: %v", err)
	}

	ok, err = CanViewGroup(st, athlete, g)
	if err != nil {
		t.Fatalf("CanViewGroup failed: %v", err)
	}
	if !ok {
		t.Error("Member must view the group")
	}

	if _, err := st.RemoveGroupMember(g.ID, athlete.ID); err != nil {
		t.Fatalf("Failed to remove member: %v", err)
	}

	ok, err = CanViewGroup(st, athlete, g)
	if err != nil {
		t.Fatalf("CanViewGroup failed: %v", err)
	}
	if ok {
		t.Error("Removed member must no longer view the group")
	}
}

func TestCanManageScheduledWorkout(t *testing.T) {
	coach := user(1, models.RoleCoach)
	creator := user(2, models.RoleAthlete)
	other := user(3, models.RoleAthlete)
	admin := user(4, models.RoleAdmin)

	g := &models.Group{ID: 7, CoachID: coach.ID}
	sw := &models.ScheduledWorkout{ID: 9, GroupID: g.ID, CreatedBy: creator.ID}

	if !CanManageScheduledWorkout(coach, sw, g) {
		t.Error("Group coach must manage the scheduled workout")
	}
	if !CanManageScheduledWorkout(creator, sw, g) {
		t.Error("Creator must manage their scheduled workout")
	}
	if !CanManageScheduledWorkout(admin, sw, g) {
		t.Error("Admin must manage any scheduled workout")
	}
	if CanManageScheduledWorkout(other, sw, g) {
		t.Error("Unrelated user must not manage the scheduled workout")
	}
}

func TestCanSubmitResultRequiresMembership(t *testing.T) {
	st := store.NewMemoryStore()

	coach, _ := st.CreateUser(&models.User{Username: "coach", PasswordHash: "x", Role: models.RoleCoach})
	member, _ := st.CreateUser(&models.User{Username: "alice", PasswordHash: "x", Role: models.RoleAthlete})
	outsider, _ := st.CreateUser(&models.User{Username: "bob", PasswordHash: "x", Role: models.RoleAthlete})
	g, _ := st.CreateGroup(&models.Group{Name: "Crew", CoachID: coach.ID})
	if _, err := st.AddGroupMember(g.ID, member.ID); err != nil {
		t.Fatalf("Failed to add member: %v", err)
	}

	for _, tc := range []struct {
		name string
		u    *models.User
		want bool
	}{
		{"member", member, true},
		{"coach", coach, true},
		{"outsider", outsider, false},
	} {
		ok, err := CanSubmitResult(st, tc.u, g)
		if err != nil {
			t.Fatalf("CanSubmitResult(%s) failed: %v", tc.name, err)
		}
		if ok != tc.want {
			t.Errorf("CanSubmitResult(%s) = %v, want %v", tc.name, ok, tc.want)
		}
	}
}
