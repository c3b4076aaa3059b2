package handlers

import (
	"github.com/crossbox/wodtracker/internal/access"
	"github.com/crossbox/wodtracker/internal/models"
	"github.com/crossbox/wodtracker/internal/store"
	"github.com/crossbox/wodtracker/internal/utils"
	"github.com/gofiber/fiber/v2"
)

// ExerciseHandler handles the exercise reference catalog. Reads are open to
// any authenticated user; catalog management is admin-only.
type ExerciseHandler struct {
	Store store.Store
}

// ListExercises handles GET /api/exercises?category=
// @Summary List exercises, optionally filtered by category
// @Tags Exercises
// @Produce json
// @Param category query string false "Category filter"
// @Success 200 {array} models.Exercise
// @Security CookieAuth
// @Router /exercises [get]
func (h *ExerciseHandler) ListExercises(c *fiber.Ctx) error {
	var (
		exercises []models.Exercise
		err       error
	)
	if cat := c.Query("category"); cat != "" {
		if !models.ValidCategory(cat) {
			return utils.BadRequestResponse(c, "unknown category: "+cat)
		}
		exercises, err = h.Store.GetExercisesByCategory(cat)
	} else {
		exercises, err = h.Store.GetAllExercises()
	}
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "listExercises")
	}
	return c.Status(fiber.StatusOK).JSON(exercises)
}

// SearchExercises handles GET /api/exercises/search?q=
// @Summary Search exercises by name or description substring
// @Tags Exercises
// @Produce json
// @Param q query string true "Search query"
// @Success 200 {array} models.Exercise
// @Security CookieAuth
// @Router /exercises/search [get]
func (h *ExerciseHandler) SearchExercises(c *fiber.Ctx) error {
	q := c.Query("q")
	if q == "" {
		return utils.BadRequestResponse(c, "query parameter q is required")
	}
	exercises, err := h.Store.SearchExercises(q)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "searchExercises")
	}
	return c.Status(fiber.StatusOK).JSON(exercises)
}

// GetExercise handles GET /api/exercises/:id
// @Summary Get an exercise
// @Tags Exercises
// @Produce json
// @Param id path int true "Exercise ID"
// @Success 200 {object} models.Exercise
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /exercises/{id} [get]
func (h *ExerciseHandler) GetExercise(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.BadRequestResponse(c, "invalid exercise id")
	}
	exercise, err := h.Store.GetExercise(id)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "getExercise")
	}
	if exercise == nil {
		return utils.NotFoundResponse(c, "exercise not found")
	}
	return c.Status(fiber.StatusOK).JSON(exercise)
}

// CreateExercise handles POST /api/exercises (admin only)
// @Summary Add an exercise to the catalog
// @Tags Exercises
// @Accept json
// @Produce json
// @Param body body models.Exercise true "Exercise"
// @Success 201 {object} models.Exercise
// @Failure 403 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /exercises [post]
func (h *ExerciseHandler) CreateExercise(c *fiber.Ctx) error {
	if !access.IsAdmin(currentUser(c)) {
		return utils.ForbiddenResponse(c, "admin only")
	}

	var req models.Exercise
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}
	if req.Name == "" {
		return utils.BadRequestResponse(c, "name is required")
	}
	if !models.ValidCategory(req.Category) {
		return utils.BadRequestResponse(c, "unknown category: "+req.Category)
	}

	exercise, err := h.Store.CreateExercise(&models.Exercise{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		VideoURL:    req.VideoURL,
	})
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "createExercise")
	}
	return c.Status(fiber.StatusCreated).JSON(exercise)
}

// UpdateExercise handles PUT /api/exercises/:id (admin only)
// @Summary Update a catalog exercise
// @Tags Exercises
// @Accept json
// @Produce json
// @Param id path int true "Exercise ID"
// @Param body body models.ExercisePatch true "Fields to update"
// @Success 200 {object} models.Exercise
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /exercises/{id} [put]
func (h *ExerciseHandler) UpdateExercise(c *fiber.Ctx) error {
	if !access.IsAdmin(currentUser(c)) {
		return utils.ForbiddenResponse(c, "admin only")
	}
	id, err := paramID(c, "id")
	if err != nil {
		return utils.BadRequestResponse(c, "invalid exercise id")
	}

	var patch models.ExercisePatch
	if err := c.BodyParser(&patch); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}
	if patch.Category != nil && !models.ValidCategory(*patch.Category) {
		return utils.BadRequestResponse(c, "unknown category: "+*patch.Category)
	}

	updated, err := h.Store.UpdateExercise(id, patch)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "updateExercise")
	}
	if updated == nil {
		return utils.NotFoundResponse(c, "exercise not found")
	}
	return c.Status(fiber.StatusOK).JSON(updated)
}

// DeleteExercise handles DELETE /api/exercises/:id (admin only)
// @Summary Remove a catalog exercise
// @Tags Exercises
// @Produce json
// @Param id path int true "Exercise ID"
// @Success 200 {object} utils.DeletedResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /exercises/{id} [delete]
func (h *ExerciseHandler) DeleteExercise(c *fiber.Ctx) error {
	if !access.IsAdmin(currentUser(c)) {
		return utils.ForbiddenResponse(c, "admin only")
	}
	id, err := paramID(c, "id")
	if err != nil {
		return utils.BadRequestResponse(c, "invalid exercise id")
	}
	ok, err := h.Store.DeleteExercise(id)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "deleteExercise")
	}
	if !ok {
		return utils.NotFoundResponse(c, "exercise not found")
	}
	return utils.DeletedResponse(c)
}
