package handlers

import (
	"strconv"
	"time"

	"github.com/crossbox/wodtracker/internal/access"
	"github.com/crossbox/wodtracker/internal/models"
	"github.com/crossbox/wodtracker/internal/store"
	"github.com/crossbox/wodtracker/internal/types"
	"github.com/crossbox/wodtracker/internal/utils"
	"github.com/gofiber/fiber/v2"
)

// defaultRecentLimit caps GET /api/records/recent when no limit is given.
const defaultRecentLimit = 5

// RecordHandler handles personal record routes.
type RecordHandler struct {
	Store store.Store
}

// CreateRecordRequest is the POST /api/records body. ExerciseID accepts a
// number or a numeric string.
type CreateRecordRequest struct {
	ExerciseID types.FlexUint64 `json:"exerciseId"`
	Value      float64          `json:"value"`
	Unit       string           `json:"unit"`
	Date       time.Time        `json:"date"`
	Notes      string           `json:"notes,omitempty"`
}

// CreateRecord handles POST /api/records
// @Summary Log a personal record
// @Tags PersonalRecords
// @Accept json
// @Produce json
// @Param body body CreateRecordRequest true "Personal record"
// @Success 201 {object} models.PersonalRecord
// @Failure 400 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /records [post]
func (h *RecordHandler) CreateRecord(c *fiber.Ctx) error {
	var req CreateRecordRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}
	if req.Unit == "" {
		return utils.BadRequestResponse(c, "unit is required")
	}

	// Exercise existence is a route-layer check; the store accepts any id.
	exercise, err := h.Store.GetExercise(req.ExerciseID.Uint64())
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "createRecord")
	}
	if exercise == nil {
		return utils.BadRequestResponse(c, "exercise does not exist")
	}

	if req.Date.IsZero() {
		req.Date = time.Now().UTC()
	}

	record, err := h.Store.CreatePersonalRecord(&models.PersonalRecord{
		UserID:     currentUser(c).ID,
		ExerciseID: req.ExerciseID.Uint64(),
		Value:      req.Value,
		Unit:       req.Unit,
		Date:       req.Date,
		Notes:      req.Notes,
	})
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "createRecord")
	}
	return c.Status(fiber.StatusCreated).JSON(record)
}

// ListRecords handles GET /api/records
// @Summary List the authenticated user's personal records, newest first
// @Tags PersonalRecords
// @Produce json
// @Success 200 {array} models.PersonalRecord
// @Security CookieAuth
// @Router /records [get]
func (h *RecordHandler) ListRecords(c *fiber.Ctx) error {
	records, err := h.Store.GetPersonalRecordsByUser(currentUser(c).ID)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "listRecords")
	}
	return c.Status(fiber.StatusOK).JSON(records)
}

// RecentRecords handles GET /api/records/recent?limit=
// @Summary List the most recent personal records
// @Tags PersonalRecords
// @Produce json
// @Param limit query int false "Maximum number of records (default 5)"
// @Success 200 {array} models.PersonalRecord
// @Security CookieAuth
// @Router /records/recent [get]
func (h *RecordHandler) RecentRecords(c *fiber.Ctx) error {
	limit := defaultRecentLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return utils.BadRequestResponse(c, "invalid limit")
		}
		limit = n
	}
	records, err := h.Store.GetRecentPersonalRecords(currentUser(c).ID, limit)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "recentRecords")
	}
	return c.Status(fiber.StatusOK).JSON(records)
}

// RecordsByExercise handles GET /api/records/exercise/:exerciseId
// @Summary List personal records for one exercise, oldest first
// @Description Ascending order supports progression charts.
// @Tags PersonalRecords
// @Produce json
// @Param exerciseId path int true "Exercise ID"
// @Success 200 {array} models.PersonalRecord
// @Security CookieAuth
// @Router /records/exercise/{exerciseId} [get]
func (h *RecordHandler) RecordsByExercise(c *fiber.Ctx) error {
	exerciseID, err := paramID(c, "exerciseId")
	if err != nil {
		return utils.BadRequestResponse(c, "invalid exercise id")
	}
	records, err := h.Store.GetPersonalRecordsByExercise(currentUser(c).ID, exerciseID)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "recordsByExercise")
	}
	return c.Status(fiber.StatusOK).JSON(records)
}

// UpdateRecord handles PUT /api/records/:id
// @Summary Update a personal record (owner only)
// @Tags PersonalRecords
// @Accept json
// @Produce json
// @Param id path int true "Record ID"
// @Param body body models.PersonalRecordPatch true "Fields to update"
// @Success 200 {object} models.PersonalRecord
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /records/{id} [put]
func (h *RecordHandler) UpdateRecord(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.BadRequestResponse(c, "invalid record id")
	}

	record, err := h.Store.GetPersonalRecord(id)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "updateRecord")
	}
	if record == nil {
		return utils.NotFoundResponse(c, "record not found")
	}
	if !access.CanModifyPersonalRecord(currentUser(c), record) {
		return utils.ForbiddenResponse(c, "not your record")
	}

	var patch models.PersonalRecordPatch
	if err := c.BodyParser(&patch); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}
	if patch.ExerciseID != nil {
		exercise, err := h.Store.GetExercise(*patch.ExerciseID)
		if err != nil {
			return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "updateRecord")
		}
		if exercise == nil {
			return utils.BadRequestResponse(c, "exercise does not exist")
		}
	}

	updated, err := h.Store.UpdatePersonalRecord(id, patch)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "updateRecord")
	}
	if updated == nil {
		return utils.NotFoundResponse(c, "record not found")
	}
	return c.Status(fiber.StatusOK).JSON(updated)
}

// DeleteRecord handles DELETE /api/records/:id
// @Summary Delete a personal record (owner only)
// @Tags PersonalRecords
// @Produce json
// @Param id path int true "Record ID"
// @Success 200 {object} utils.DeletedResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /records/{id} [delete]
func (h *RecordHandler) DeleteRecord(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.BadRequestResponse(c, "invalid record id")
	}

	record, err := h.Store.GetPersonalRecord(id)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "deleteRecord")
	}
	if record == nil {
		return utils.NotFoundResponse(c, "record not found")
	}
	if !access.CanModifyPersonalRecord(currentUser(c), record) {
		return utils.ForbiddenResponse(c, "not your record")
	}

	if _, err := h.Store.DeletePersonalRecord(id); err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "deleteRecord")
	}
	return utils.DeletedResponse(c)
}
