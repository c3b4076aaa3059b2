package handlers

import (
	"time"

	"github.com/crossbox/wodtracker/internal/access"
	"github.com/crossbox/wodtracker/internal/models"
	"github.com/crossbox/wodtracker/internal/store"
	"github.com/crossbox/wodtracker/internal/utils"
	"github.com/gofiber/fiber/v2"
)

// WorkoutHandler handles workout log routes.
type WorkoutHandler struct {
	Store store.Store
}

// CreateWorkoutRequest is the POST /api/workouts body.
type CreateWorkoutRequest struct {
	Date        time.Time `json:"date"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Result      string    `json:"result,omitempty"`
	Completed   bool      `json:"completed"`
}

// CreateWorkout handles POST /api/workouts
// @Summary Log a workout
// @Tags Workouts
// @Accept json
// @Produce json
// @Param body body CreateWorkoutRequest true "Workout"
// @Success 201 {object} models.Workout
// @Failure 400 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /workouts [post]
func (h *WorkoutHandler) CreateWorkout(c *fiber.Ctx) error {
	var req CreateWorkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}
	if !models.ValidWorkoutType(req.Type) {
		return utils.BadRequestResponse(c, "unknown workout type: "+req.Type)
	}
	if req.Date.IsZero() {
		req.Date = time.Now().UTC()
	}

	workout, err := h.Store.CreateWorkout(&models.Workout{
		UserID:      currentUser(c).ID,
		Date:        req.Date,
		Type:        req.Type,
		Description: req.Description,
		Result:      req.Result,
		Completed:   req.Completed,
	})
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "createWorkout")
	}
	return c.Status(fiber.StatusCreated).JSON(workout)
}

// ListWorkouts handles GET /api/workouts?type=
// @Summary List the authenticated user's workouts, newest first
// @Tags Workouts
// @Produce json
// @Param type query string false "Filter by workout type"
// @Success 200 {array} models.Workout
// @Security CookieAuth
// @Router /workouts [get]
func (h *WorkoutHandler) ListWorkouts(c *fiber.Ctx) error {
	me := currentUser(c)
	var (
		workouts []models.Workout
		err      error
	)
	if t := c.Query("type"); t != "" {
		if !models.ValidWorkoutType(t) {
			return utils.BadRequestResponse(c, "unknown workout type: "+t)
		}
		workouts, err = h.Store.GetWorkoutsByUserAndType(me.ID, t)
	} else {
		workouts, err = h.Store.GetWorkoutsByUser(me.ID)
	}
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "listWorkouts")
	}
	return c.Status(fiber.StatusOK).JSON(workouts)
}

// GetWorkout handles GET /api/workouts/:id
// @Summary Get a workout
// @Tags Workouts
// @Produce json
// @Param id path int true "Workout ID"
// @Success 200 {object} models.Workout
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /workouts/{id} [get]
func (h *WorkoutHandler) GetWorkout(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.BadRequestResponse(c, "invalid workout id")
	}
	workout, err := h.Store.GetWorkout(id)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "getWorkout")
	}
	if workout == nil {
		return utils.NotFoundResponse(c, "workout not found")
	}
	return c.Status(fiber.StatusOK).JSON(workout)
}

// UpdateWorkout handles PUT /api/workouts/:id
// @Summary Update a workout (owner only)
// @Tags Workouts
// @Accept json
// @Produce json
// @Param id path int true "Workout ID"
// @Param body body models.WorkoutPatch true "Fields to update"
// @Success 200 {object} models.Workout
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /workouts/{id} [put]
func (h *WorkoutHandler) UpdateWorkout(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.BadRequestResponse(c, "invalid workout id")
	}

	workout, err := h.Store.GetWorkout(id)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "updateWorkout")
	}
	if workout == nil {
		return utils.NotFoundResponse(c, "workout not found")
	}
	if !access.CanModifyWorkout(currentUser(c), workout) {
		return utils.ForbiddenResponse(c, "not your workout")
	}

	var patch models.WorkoutPatch
	if err := c.BodyParser(&patch); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}
	if patch.Type != nil && !models.ValidWorkoutType(*patch.Type) {
		return utils.BadRequestResponse(c, "unknown workout type: "+*patch.Type)
	}

	updated, err := h.Store.UpdateWorkout(id, patch)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "updateWorkout")
	}
	if updated == nil {
		return utils.NotFoundResponse(c, "workout not found")
	}
	return c.Status(fiber.StatusOK).JSON(updated)
}

// DeleteWorkout handles DELETE /api/workouts/:id
// @Summary Delete a workout (owner only)
// @Tags Workouts
// @Produce json
// @Param id path int true "Workout ID"
// @Success 200 {object} utils.DeletedResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /workouts/{id} [delete]
func (h *WorkoutHandler) DeleteWorkout(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.BadRequestResponse(c, "invalid workout id")
	}

	workout, err := h.Store.GetWorkout(id)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "deleteWorkout")
	}
	if workout == nil {
		return utils.NotFoundResponse(c, "workout not found")
	}
	if !access.CanModifyWorkout(currentUser(c), workout) {
		return utils.ForbiddenResponse(c, "not your workout")
	}

	if _, err := h.Store.DeleteWorkout(id); err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "deleteWorkout")
	}
	return utils.DeletedResponse(c)
}
