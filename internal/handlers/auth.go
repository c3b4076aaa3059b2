package handlers

import (
	"log"
	"time"

	"github.com/crossbox/wodtracker/internal/models"
	"github.com/crossbox/wodtracker/internal/services"
	"github.com/crossbox/wodtracker/internal/store"
	"github.com/crossbox/wodtracker/internal/utils"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles registration, login, and session lifecycle.
type AuthHandler struct {
	Store    store.Store
	Sessions *services.SessionManager
}

// RegisterRequest is the POST /api/auth/register body.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role,omitempty"`
}

// LoginRequest is the POST /api/auth/login body.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register handles POST /api/auth/register
// @Summary Register a new account
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "Account details"
// @Success 201 {object} models.User
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}
	if req.Username == "" || req.Password == "" {
		return utils.BadRequestResponse(c, "username and password are required")
	}
	role := req.Role
	if role == "" {
		role = models.RoleAthlete
	}
	if !models.ValidRole(role) {
		return utils.BadRequestResponse(c, "unknown role: "+role)
	}
	// Only an existing admin can mint another admin.
	if role == models.RoleAdmin {
		return utils.BadRequestResponse(c, "cannot self-register as admin")
	}

	// Username uniqueness is checked here, not in the store.
	existing, err := h.Store.GetUserByUsername(req.Username)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "register")
	}
	if existing != nil {
		return utils.BadRequestResponse(c, "username already taken")
	}

	hash, err := services.HashPassword(req.Password)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "register")
	}

	user, err := h.Store.CreateUser(&models.User{
		Username:     req.Username,
		PasswordHash: hash,
		Name:         req.Name,
		Email:        req.Email,
		Role:         role,
	})
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "register")
	}

	log.Printf("Registered user %q (id=%d, role=%s)", user.Username, user.ID, user.Role)
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login handles POST /api/auth/login
// @Summary Log in and receive a session cookie
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Credentials"
// @Success 200 {object} models.User
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	user, err := h.Store.GetUserByUsername(req.Username)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "login")
	}
	if user == nil || !services.CheckPassword(user.PasswordHash, req.Password) {
		return utils.ErrorResponse(c, "Invalid username or password", fiber.StatusUnauthorized, "login")
	}

	token := h.Sessions.Create(user.ID)
	c.Cookie(&fiber.Cookie{
		Name:     services.SessionCookie,
		Value:    token,
		HTTPOnly: true,
		SameSite: "Lax",
		Expires:  time.Now().Add(30 * 24 * time.Hour),
	})

	return c.Status(fiber.StatusOK).JSON(user)
}

// Logout handles POST /api/auth/logout
// @Summary Invalidate the current session
// @Tags Auth
// @Produce json
// @Success 200 {object} utils.DeletedResponseStruct
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if token := c.Cookies(services.SessionCookie); token != "" {
		h.Sessions.Destroy(token)
	}
	c.ClearCookie(services.SessionCookie)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Logged out",
		"ok":      true,
	})
}

// Me handles GET /api/auth/me
// @Summary Get the authenticated account
// @Tags Auth
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(currentUser(c))
}
