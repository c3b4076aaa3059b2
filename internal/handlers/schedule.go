package handlers

import (
	"time"

	"github.com/crossbox/wodtracker/internal/access"
	"github.com/crossbox/wodtracker/internal/models"
	"github.com/crossbox/wodtracker/internal/store"
	"github.com/crossbox/wodtracker/internal/types"
	"github.com/crossbox/wodtracker/internal/utils"
	"github.com/gofiber/fiber/v2"
)

// ScheduleHandler handles scheduled group workouts and their results.
type ScheduleHandler struct {
	Store store.Store
}

// ScheduleWorkoutRequest is the POST /api/groups/:id/schedule body.
// WorkoutID accepts a number or a numeric string.
type ScheduleWorkoutRequest struct {
	WorkoutID     types.FlexUint64 `json:"workoutId"`
	ScheduledDate time.Time        `json:"scheduledDate"`
}

// SubmitResultRequest is the POST /api/schedule/:id/results body.
type SubmitResultRequest struct {
	Result string `json:"result"`
	Notes  string `json:"notes,omitempty"`
}

// ScheduleWorkout handles POST /api/groups/:id/schedule
// @Summary Schedule a workout for a group (coach or admin)
// @Tags Schedule
// @Accept json
// @Produce json
// @Param id path int true "Group ID"
// @Param body body ScheduleWorkoutRequest true "Workout and date"
// @Success 201 {object} models.ScheduledWorkout
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /groups/{id}/schedule [post]
func (h *ScheduleHandler) ScheduleWorkout(c *fiber.Ctx) error {
	groupID, err := paramID(c, "id")
	if err != nil {
		return utils.BadRequestResponse(c, "invalid group id")
	}
	group, err := h.Store.GetGroup(groupID)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "scheduleWorkout")
	}
	if group == nil {
		return utils.NotFoundResponse(c, "group not found")
	}

	me := currentUser(c)
	if !access.CanManageGroup(me, group) {
		return utils.ForbiddenResponse(c, "not your group")
	}

	var req ScheduleWorkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}
	if req.ScheduledDate.IsZero() {
		return utils.BadRequestResponse(c, "scheduledDate is required")
	}
	workout, err := h.Store.GetWorkout(req.WorkoutID.Uint64())
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "scheduleWorkout")
	}
	if workout == nil {
		return utils.BadRequestResponse(c, "workout does not exist")
	}

	scheduled, err := h.Store.CreateScheduledWorkout(&models.ScheduledWorkout{
		GroupID:       group.ID,
		WorkoutID:     workout.ID,
		ScheduledDate: req.ScheduledDate,
		CreatedBy:     me.ID,
	})
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "scheduleWorkout")
	}
	return c.Status(fiber.StatusCreated).JSON(scheduled)
}

// ListGroupSchedule handles GET /api/groups/:id/schedule
// @Summary List a group's scheduled workouts, soonest first (coach, member, or admin)
// @Tags Schedule
// @Produce json
// @Param id path int true "Group ID"
// @Success 200 {array} models.ScheduledWorkout
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /groups/{id}/schedule [get]
func (h *ScheduleHandler) ListGroupSchedule(c *fiber.Ctx) error {
	groupID, err := paramID(c, "id")
	if err != nil {
		return utils.BadRequestResponse(c, "invalid group id")
	}
	group, err := h.Store.GetGroup(groupID)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "listGroupSchedule")
	}
	if group == nil {
		return utils.NotFoundResponse(c, "group not found")
	}
	allowed, err := access.CanViewGroup(h.Store, currentUser(c), group)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "listGroupSchedule")
	}
	if !allowed {
		return utils.ForbiddenResponse(c, "not a member of this group")
	}

	scheduled, err := h.Store.GetScheduledWorkoutsByGroup(group.ID)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "listGroupSchedule")
	}
	if scheduled == nil {
		scheduled = []models.ScheduledWorkout{}
	}
	return c.Status(fiber.StatusOK).JSON(scheduled)
}

// UpcomingWorkouts handles GET /api/schedule/upcoming
// @Summary List upcoming scheduled workouts across the user's groups
// @Tags Schedule
// @Produce json
// @Success 200 {array} models.ScheduledWorkout
// @Security CookieAuth
// @Router /schedule/upcoming [get]
func (h *ScheduleHandler) UpcomingWorkouts(c *fiber.Ctx) error {
	scheduled, err := h.Store.GetUpcomingScheduledWorkouts(currentUser(c).ID, time.Now().UTC())
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "upcomingWorkouts")
	}
	if scheduled == nil {
		scheduled = []models.ScheduledWorkout{}
	}
	return c.Status(fiber.StatusOK).JSON(scheduled)
}

// UpdateScheduledWorkout handles PUT /api/schedule/:id
// @Summary Reschedule or swap the workout (coach, admin, or original creator)
// @Tags Schedule
// @Accept json
// @Produce json
// @Param id path int true "Scheduled workout ID"
// @Param body body models.ScheduledWorkoutPatch true "Fields to update"
// @Success 200 {object} models.ScheduledWorkout
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /schedule/{id} [put]
func (h *ScheduleHandler) UpdateScheduledWorkout(c *fiber.Ctx) error {
	scheduled, group, errResp := h.loadScheduled(c)
	if scheduled == nil {
		return errResp
	}
	if !access.CanManageScheduledWorkout(currentUser(c), scheduled, group) {
		return utils.ForbiddenResponse(c, "not allowed to manage this scheduled workout")
	}

	var patch models.ScheduledWorkoutPatch
	if err := c.BodyParser(&patch); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}
	if patch.WorkoutID != nil {
		workout, err := h.Store.GetWorkout(*patch.WorkoutID)
		if err != nil {
			return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "updateScheduledWorkout")
		}
		if workout == nil {
			return utils.BadRequestResponse(c, "workout does not exist")
		}
	}

	updated, err := h.Store.UpdateScheduledWorkout(scheduled.ID, patch)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "updateScheduledWorkout")
	}
	if updated == nil {
		return utils.NotFoundResponse(c, "scheduled workout not found")
	}
	return c.Status(fiber.StatusOK).JSON(updated)
}

// DeleteScheduledWorkout handles DELETE /api/schedule/:id
// @Summary Remove a scheduled workout and its results (coach, admin, or original creator)
// @Tags Schedule
// @Produce json
// @Param id path int true "Scheduled workout ID"
// @Success 200 {object} utils.DeletedResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /schedule/{id} [delete]
func (h *ScheduleHandler) DeleteScheduledWorkout(c *fiber.Ctx) error {
	scheduled, group, errResp := h.loadScheduled(c)
	if scheduled == nil {
		return errResp
	}
	if !access.CanManageScheduledWorkout(currentUser(c), scheduled, group) {
		return utils.ForbiddenResponse(c, "not allowed to manage this scheduled workout")
	}

	if _, err := h.Store.DeleteScheduledWorkout(scheduled.ID); err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "deleteScheduledWorkout")
	}
	return utils.DeletedResponse(c)
}

// SubmitResult handles POST /api/schedule/:id/results
// @Summary Submit a result for a scheduled workout (member, coach, or admin)
// @Tags Results
// @Accept json
// @Produce json
// @Param id path int true "Scheduled workout ID"
// @Param body body SubmitResultRequest true "Result"
// @Success 201 {object} models.WorkoutResult
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /schedule/{id}/results [post]
func (h *ScheduleHandler) SubmitResult(c *fiber.Ctx) error {
	scheduled, group, errResp := h.loadScheduled(c)
	if scheduled == nil {
		return errResp
	}

	me := currentUser(c)
	allowed, err := access.CanSubmitResult(h.Store, me, group)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "submitResult")
	}
	if !allowed {
		return utils.ForbiddenResponse(c, "not a member of this group")
	}

	var req SubmitResultRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}
	if req.Result == "" {
		return utils.BadRequestResponse(c, "result is required")
	}

	result, err := h.Store.CreateWorkoutResult(&models.WorkoutResult{
		ScheduledWorkoutID: scheduled.ID,
		UserID:             me.ID,
		Result:             req.Result,
		Notes:              req.Notes,
	})
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "submitResult")
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// ListResults handles GET /api/schedule/:id/results
// @Summary List results for a scheduled workout, newest first (member, coach, or admin)
// @Tags Results
// @Produce json
// @Param id path int true "Scheduled workout ID"
// @Success 200 {array} models.WorkoutResult
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /schedule/{id}/results [get]
func (h *ScheduleHandler) ListResults(c *fiber.Ctx) error {
	scheduled, group, errResp := h.loadScheduled(c)
	if scheduled == nil {
		return errResp
	}
	allowed, err := access.CanViewResults(h.Store, currentUser(c), group)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "listResults")
	}
	if !allowed {
		return utils.ForbiddenResponse(c, "not a member of this group")
	}

	results, err := h.Store.GetWorkoutResultsByScheduledWorkout(scheduled.ID)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "listResults")
	}
	if results == nil {
		results = []models.WorkoutResult{}
	}
	return c.Status(fiber.StatusOK).JSON(results)
}

// MyResults handles GET /api/results
// @Summary List the authenticated user's submitted results, newest first
// @Tags Results
// @Produce json
// @Success 200 {array} models.WorkoutResult
// @Security CookieAuth
// @Router /results [get]
func (h *ScheduleHandler) MyResults(c *fiber.Ctx) error {
	results, err := h.Store.GetWorkoutResultsByUser(currentUser(c).ID)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "myResults")
	}
	if results == nil {
		results = []models.WorkoutResult{}
	}
	return c.Status(fiber.StatusOK).JSON(results)
}

// UpdateResult handles PUT /api/results/:id
// @Summary Update a submitted result (owner only)
// @Tags Results
// @Accept json
// @Produce json
// @Param id path int true "Result ID"
// @Param body body models.WorkoutResultPatch true "Fields to update"
// @Success 200 {object} models.WorkoutResult
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /results/{id} [put]
func (h *ScheduleHandler) UpdateResult(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.BadRequestResponse(c, "invalid result id")
	}
	result, err := h.Store.GetWorkoutResult(id)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "updateResult")
	}
	if result == nil {
		return utils.NotFoundResponse(c, "result not found")
	}
	if result.UserID != currentUser(c).ID {
		return utils.ForbiddenResponse(c, "not your result")
	}

	var patch models.WorkoutResultPatch
	if err := c.BodyParser(&patch); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	updated, err := h.Store.UpdateWorkoutResult(id, patch)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "updateResult")
	}
	if updated == nil {
		return utils.NotFoundResponse(c, "result not found")
	}
	return c.Status(fiber.StatusOK).JSON(updated)
}

// DeleteResult handles DELETE /api/results/:id
// @Summary Delete a submitted result (owner only)
// @Tags Results
// @Produce json
// @Param id path int true "Result ID"
// @Success 200 {object} utils.DeletedResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /results/{id} [delete]
func (h *ScheduleHandler) DeleteResult(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.BadRequestResponse(c, "invalid result id")
	}
	result, err := h.Store.GetWorkoutResult(id)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "deleteResult")
	}
	if result == nil {
		return utils.NotFoundResponse(c, "result not found")
	}
	if result.UserID != currentUser(c).ID {
		return utils.ForbiddenResponse(c, "not your result")
	}

	if _, err := h.Store.DeleteWorkoutResult(id); err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "deleteResult")
	}
	return utils.DeletedResponse(c)
}

// loadScheduled resolves the :id path param to a scheduled workout and its
// group. A dangling group reference resolves to not found before any
// ownership check. On failure the response is already written.
func (h *ScheduleHandler) loadScheduled(c *fiber.Ctx) (*models.ScheduledWorkout, *models.Group, error) {
	id, err := paramID(c, "id")
	if err != nil {
		return nil, nil, utils.BadRequestResponse(c, "invalid scheduled workout id")
	}
	scheduled, err := h.Store.GetScheduledWorkout(id)
	if err != nil {
		return nil, nil, utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "getScheduledWorkout")
	}
	if scheduled == nil {
		return nil, nil, utils.NotFoundResponse(c, "scheduled workout not found")
	}
	group, err := h.Store.GetGroup(scheduled.GroupID)
	if err != nil {
		return nil, nil, utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "getScheduledWorkout")
	}
	if group == nil {
		return nil, nil, utils.NotFoundResponse(c, "group not found")
	}
	return scheduled, group, nil
}
