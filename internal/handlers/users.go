package handlers

import (
	"github.com/crossbox/wodtracker/internal/access"
	"github.com/crossbox/wodtracker/internal/models"
	"github.com/crossbox/wodtracker/internal/store"
	"github.com/crossbox/wodtracker/internal/utils"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles user profile routes.
type UserHandler struct {
	Store store.Store
}

// GetUser handles GET /api/users/:id
// @Summary Get a user profile
// @Tags Users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.User
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.BadRequestResponse(c, "invalid user id")
	}
	user, err := h.Store.GetUser(id)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "getUser")
	}
	if user == nil {
		return utils.NotFoundResponse(c, "user not found")
	}
	return c.Status(fiber.StatusOK).JSON(user)
}

// ListUsers handles GET /api/users (admin only)
// @Summary List all users
// @Tags Users
// @Produce json
// @Success 200 {array} models.User
// @Failure 403 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /users [get]
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	if !access.IsAdmin(currentUser(c)) {
		return utils.ForbiddenResponse(c, "admin only")
	}
	users, err := h.Store.GetAllUsers()
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "listUsers")
	}
	return c.Status(fiber.StatusOK).JSON(users)
}

// UpdateUser handles PUT /api/users/:id
// @Summary Update a user profile
// @Tags Users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param body body models.UserPatch true "Fields to update"
// @Success 200 {object} models.User
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.BadRequestResponse(c, "invalid user id")
	}

	target, err := h.Store.GetUser(id)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "updateUser")
	}
	if target == nil {
		return utils.NotFoundResponse(c, "user not found")
	}

	me := currentUser(c)
	if me.ID != id && !access.IsAdmin(me) {
		return utils.ForbiddenResponse(c, "cannot modify another user")
	}

	var patch models.UserPatch
	if err := c.BodyParser(&patch); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}
	if patch.Role != nil {
		if !models.ValidRole(*patch.Role) {
			return utils.BadRequestResponse(c, "unknown role: "+*patch.Role)
		}
		if !access.IsAdmin(me) {
			return utils.ForbiddenResponse(c, "only admins can change roles")
		}
	}
	if patch.Username != nil && *patch.Username != target.Username {
		existing, err := h.Store.GetUserByUsername(*patch.Username)
		if err != nil {
			return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "updateUser")
		}
		if existing != nil {
			return utils.BadRequestResponse(c, "username already taken")
		}
	}

	updated, err := h.Store.UpdateUser(id, patch)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "updateUser")
	}
	if updated == nil {
		return utils.NotFoundResponse(c, "user not found")
	}
	return c.Status(fiber.StatusOK).JSON(updated)
}

// DeleteUser handles DELETE /api/users/:id
// @Summary Delete a user
// @Tags Users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} utils.DeletedResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.BadRequestResponse(c, "invalid user id")
	}

	target, err := h.Store.GetUser(id)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "deleteUser")
	}
	if target == nil {
		return utils.NotFoundResponse(c, "user not found")
	}

	me := currentUser(c)
	if me.ID != id && !access.IsAdmin(me) {
		return utils.ForbiddenResponse(c, "cannot delete another user")
	}

	ok, err := h.Store.DeleteUser(id)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "deleteUser")
	}
	if !ok {
		return utils.NotFoundResponse(c, "user not found")
	}
	return utils.DeletedResponse(c)
}
