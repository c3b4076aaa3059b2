package handlers

import (
	"github.com/crossbox/wodtracker/internal/access"
	"github.com/crossbox/wodtracker/internal/models"
	"github.com/crossbox/wodtracker/internal/store"
	"github.com/crossbox/wodtracker/internal/types"
	"github.com/crossbox/wodtracker/internal/utils"
	"github.com/gofiber/fiber/v2"
)

// GroupHandler handles training group and membership routes.
type GroupHandler struct {
	Store store.Store
}

// CreateGroupRequest is the POST /api/groups body.
type CreateGroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// AddMemberRequest is the POST /api/groups/:id/members body. UserID accepts
// a number or a numeric string.
type AddMemberRequest struct {
	UserID types.FlexUint64 `json:"userId"`
}

// CreateGroup handles POST /api/groups
// @Summary Create a training group (coach or admin)
// @Tags Groups
// @Accept json
// @Produce json
// @Param body body CreateGroupRequest true "Group"
// @Success 201 {object} models.Group
// @Failure 403 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /groups [post]
func (h *GroupHandler) CreateGroup(c *fiber.Ctx) error {
	me := currentUser(c)
	if me.Role != models.RoleCoach && !access.IsAdmin(me) {
		return utils.ForbiddenResponse(c, "only coaches can create groups")
	}

	var req CreateGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}
	if req.Name == "" {
		return utils.BadRequestResponse(c, "name is required")
	}

	group, err := h.Store.CreateGroup(&models.Group{
		Name:        req.Name,
		Description: req.Description,
		CoachID:     me.ID,
	})
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "createGroup")
	}
	return c.Status(fiber.StatusCreated).JSON(group)
}

// ListGroups handles GET /api/groups
// @Summary List groups the authenticated user coaches or belongs to
// @Tags Groups
// @Produce json
// @Success 200 {array} models.Group
// @Security CookieAuth
// @Router /groups [get]
func (h *GroupHandler) ListGroups(c *fiber.Ctx) error {
	me := currentUser(c)

	coached, err := h.Store.GetGroupsByCoach(me.ID)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "listGroups")
	}
	joined, err := h.Store.GetGroupsByMember(me.ID)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "listGroups")
	}

	seen := make(map[uint64]struct{}, len(coached))
	groups := coached
	for _, g := range coached {
		seen[g.ID] = struct{}{}
	}
	for _, g := range joined {
		if _, ok := seen[g.ID]; !ok {
			groups = append(groups, g)
		}
	}
	if groups == nil {
		groups = []models.Group{}
	}
	return c.Status(fiber.StatusOK).JSON(groups)
}

// GetGroup handles GET /api/groups/:id
// @Summary Get a group (coach, member, or admin)
// @Tags Groups
// @Produce json
// @Param id path int true "Group ID"
// @Success 200 {object} models.Group
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /groups/{id} [get]
func (h *GroupHandler) GetGroup(c *fiber.Ctx) error {
	group, errResp := h.loadGroup(c)
	if group == nil {
		return errResp
	}
	allowed, err := access.CanViewGroup(h.Store, currentUser(c), group)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "getGroup")
	}
	if !allowed {
		return utils.ForbiddenResponse(c, "not a member of this group")
	}
	return c.Status(fiber.StatusOK).JSON(group)
}

// UpdateGroup handles PUT /api/groups/:id
// @Summary Update a group (coach or admin)
// @Tags Groups
// @Accept json
// @Produce json
// @Param id path int true "Group ID"
// @Param body body models.GroupPatch true "Fields to update"
// @Success 200 {object} models.Group
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /groups/{id} [put]
func (h *GroupHandler) UpdateGroup(c *fiber.Ctx) error {
	group, errResp := h.loadGroup(c)
	if group == nil {
		return errResp
	}
	if !access.CanManageGroup(currentUser(c), group) {
		return utils.ForbiddenResponse(c, "not your group")
	}

	var patch models.GroupPatch
	if err := c.BodyParser(&patch); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}
	if patch.CoachID != nil {
		coach, err := h.Store.GetUser(*patch.CoachID)
		if err != nil {
			return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "updateGroup")
		}
		if coach == nil {
			return utils.BadRequestResponse(c, "coach does not exist")
		}
	}

	updated, err := h.Store.UpdateGroup(group.ID, patch)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "updateGroup")
	}
	if updated == nil {
		return utils.NotFoundResponse(c, "group not found")
	}
	return c.Status(fiber.StatusOK).JSON(updated)
}

// DeleteGroup handles DELETE /api/groups/:id
// @Summary Delete a group and cascade its members and schedule (coach or admin)
// @Tags Groups
// @Produce json
// @Param id path int true "Group ID"
// @Success 200 {object} utils.DeletedResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /groups/{id} [delete]
func (h *GroupHandler) DeleteGroup(c *fiber.Ctx) error {
	group, errResp := h.loadGroup(c)
	if group == nil {
		return errResp
	}
	if !access.CanManageGroup(currentUser(c), group) {
		return utils.ForbiddenResponse(c, "not your group")
	}

	if _, err := h.Store.DeleteGroup(group.ID); err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "deleteGroup")
	}
	return utils.DeletedResponse(c)
}

// GetMembers handles GET /api/groups/:id/members
// @Summary List group members, most recent joiners first (coach, member, or admin)
// @Tags Groups
// @Produce json
// @Param id path int true "Group ID"
// @Success 200 {array} models.GroupMember
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /groups/{id}/members [get]
func (h *GroupHandler) GetMembers(c *fiber.Ctx) error {
	group, errResp := h.loadGroup(c)
	if group == nil {
		return errResp
	}
	allowed, err := access.CanViewGroup(h.Store, currentUser(c), group)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "getMembers")
	}
	if !allowed {
		return utils.ForbiddenResponse(c, "not a member of this group")
	}

	members, err := h.Store.GetGroupMembers(group.ID)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "getMembers")
	}
	if members == nil {
		members = []models.GroupMember{}
	}
	return c.Status(fiber.StatusOK).JSON(members)
}

// AddMember handles POST /api/groups/:id/members
// @Summary Add a user to a group (coach or admin)
// @Tags Groups
// @Accept json
// @Produce json
// @Param id path int true "Group ID"
// @Param body body AddMemberRequest true "User to add"
// @Success 201 {object} models.GroupMember
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /groups/{id}/members [post]
func (h *GroupHandler) AddMember(c *fiber.Ctx) error {
	group, errResp := h.loadGroup(c)
	if group == nil {
		return errResp
	}
	if !access.CanManageGroup(currentUser(c), group) {
		return utils.ForbiddenResponse(c, "not your group")
	}

	var req AddMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}
	user, err := h.Store.GetUser(req.UserID.Uint64())
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "addMember")
	}
	if user == nil {
		return utils.BadRequestResponse(c, "user does not exist")
	}

	member, err := h.Store.AddGroupMember(group.ID, user.ID)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "addMember")
	}
	return c.Status(fiber.StatusCreated).JSON(member)
}

// RemoveMember handles DELETE /api/groups/:id/members/:userId
// @Summary Remove a user from a group (coach or admin)
// @Tags Groups
// @Produce json
// @Param id path int true "Group ID"
// @Param userId path int true "User ID"
// @Success 200 {object} utils.DeletedResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /groups/{id}/members/{userId} [delete]
func (h *GroupHandler) RemoveMember(c *fiber.Ctx) error {
	group, errResp := h.loadGroup(c)
	if group == nil {
		return errResp
	}
	if !access.CanManageGroup(currentUser(c), group) {
		return utils.ForbiddenResponse(c, "not your group")
	}

	userID, err := paramID(c, "userId")
	if err != nil {
		return utils.BadRequestResponse(c, "invalid user id")
	}
	removed, err := h.Store.RemoveGroupMember(group.ID, userID)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "removeMember")
	}
	if !removed {
		return utils.NotFoundResponse(c, "membership not found")
	}
	return utils.DeletedResponse(c)
}

// loadGroup resolves the :id path param to a group. On failure it returns
// (nil, response) with the 400/404/500 already written. Not-found resolves
// before any ownership check, so callers test access only on a live group.
func (h *GroupHandler) loadGroup(c *fiber.Ctx) (*models.Group, error) {
	id, err := paramID(c, "id")
	if err != nil {
		return nil, utils.BadRequestResponse(c, "invalid group id")
	}
	group, err := h.Store.GetGroup(id)
	if err != nil {
		return nil, utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "getGroup")
	}
	if group == nil {
		return nil, utils.NotFoundResponse(c, "group not found")
	}
	return group, nil
}
