// Package access holds the ownership predicates the route layer evaluates
// before mutating or returning entities. The predicates are pure checks over
// data already fetched from the store; handlers resolve not-found before
// asking any of them, so a nil entity never reaches these functions.
package access

import (
	"github.com/crossbox/wodtracker/internal/models"
	"github.com/crossbox/wodtracker/internal/store"
)

// IsAdmin reports whether u has the admin role.
func IsAdmin(u *models.User) bool {
	return u.Role == models.RoleAdmin
}

// CanModifyWorkout allows only the owning user.
func CanModifyWorkout(u *models.User, w *models.Workout) bool {
	return w.UserID == u.ID
}

// CanModifyPersonalRecord allows only the owning user.
func CanModifyPersonalRecord(u *models.User, r *models.PersonalRecord) bool {
	return r.UserID == u.ID
}

// CanManageGroup allows the owning coach or any admin. Covers group
// mutation, deletion, and membership management.
func CanManageGroup(u *models.User, g *models.Group) bool {
	return g.CoachID == u.ID || IsAdmin(u)
}

// CanViewGroup allows the owning coach, any admin, or any member of the
// group. The same rule gates viewing the member list and the group's
// workout results, and submitting a result.
func CanViewGroup(st store.Store, u *models.User, g *models.Group) (bool, error) {
	if CanManageGroup(u, g) {
		return true, nil
	}
	return st.IsGroupMember(g.ID, u.ID)
}

// CanManageScheduledWorkout allows the group's coach, any admin, or the
// user who originally created the scheduled workout.
func CanManageScheduledWorkout(u *models.User, sw *models.ScheduledWorkout, g *models.Group) bool {
	return CanManageGroup(u, g) || sw.CreatedBy == u.ID
}

// CanSubmitResult gates submitting a WorkoutResult for a scheduled workout:
// group member, group coach, or admin.
func CanSubmitResult(st store.Store, u *models.User, g *models.Group) (bool, error) {
	return CanViewGroup(st, u, g)
}

// CanViewResults gates viewing results for a scheduled workout; same rule
// as viewing the group itself.
func CanViewResults(st store.Store, u *models.User, g *models.Group) (bool, error) {
	return CanViewGroup(st, u, g)
}
