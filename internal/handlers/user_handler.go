package handlers

import (
	"toyblox/internal/middleware"
	"toyblox/internal/models"
	"toyblox/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// UserHandler handles HTTP requests for accounts and customer profiles.
type UserHandler struct {
	service  *services.UserService
	validate *validator.Validate
	log      zerolog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService, log zerolog.Logger) *UserHandler {
	return &UserHandler{
		service:  service,
		validate: validator.New(),
		log:      log,
	}
}

// RegisterRoutes registers the account routes. auth must authenticate the caller.
func (h *UserHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	admin := middleware.RequireRoles(models.RoleAdmin)
	member := middleware.RequireRoles(models.RoleAdmin, models.RoleUser)

	users := router.Group("/users")
	users.Get("/", auth, admin, h.HandleListUsers)
	users.Get("/:id", auth, member, h.HandleGetUser)
	users.Put("/:id", auth, member, h.HandleUpdateUser)
	users.Put("/:id/profile", auth, member, h.HandleUpdateProfile)
	users.Put("/:id/role", auth, admin, h.HandleChangeRole)
	users.Delete("/:id", auth, admin, h.HandleDeleteUser)
	users.Put("/:id/reactivate", auth, admin, h.HandleReactivateUser)

	router.Get("/customers/me", auth, member, h.HandleMe)
}

func (h *UserHandler) HandleListUsers(c *fiber.Ctx) error {
	users, err := h.service.List(c.UserContext())
	if err != nil {
		return fail(c, h.log, err, "Could not retrieve users")
	}
	return c.JSON(users)
}

func (h *UserHandler) HandleGetUser(c *fiber.Ctx) error {
	id := c.Params("id")
	if !selfOrAdmin(c, id) {
		return forbidden(c)
	}
	user, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return fail(c, h.log, err, "Could not retrieve user")
	}
	return c.JSON(user)
}

func (h *UserHandler) HandleUpdateUser(c *fiber.Ctx) error {
	id := c.Params("id")
	if !selfOrAdmin(c, id) {
		return forbidden(c)
	}
	var req services.UpdateUserInput
	if ok, err := bind(c, h.validate, &req); !ok {
		return err
	}
	user, err := h.service.Update(c.UserContext(), id, req)
	if err != nil {
		return fail(c, h.log, err, "Could not update user")
	}
	return c.JSON(fiber.Map{
		"message": "User updated successfully",
		"user":    user,
	})
}

func (h *UserHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	id := c.Params("id")
	if !selfOrAdmin(c, id) {
		return forbidden(c)
	}
	var req services.ProfileInput
	if ok, err := bind(c, h.validate, &req); !ok {
		return err
	}
	profile, err := h.service.UpdateProfile(c.UserContext(), id, req)
	if err != nil {
		return fail(c, h.log, err, "Could not update profile")
	}
	return c.JSON(fiber.Map{
		"message": "Profile updated successfully",
		"profile": profile,
	})
}

// RoleRequest is the body of a role change.
type RoleRequest struct {
	Role models.Role `json:"role" validate:"required,oneof=admin user"`
}

func (h *UserHandler) HandleChangeRole(c *fiber.Ctx) error {
	var req RoleRequest
	if ok, err := bind(c, h.validate, &req); !ok {
		return err
	}
	user, err := h.service.ChangeRole(c.UserContext(), c.Params("id"), req.Role)
	if err != nil {
		return fail(c, h.log, err, "Could not change role")
	}
	return c.JSON(fiber.Map{
		"message": "User role updated successfully",
		"user":    user,
	})
}

func (h *UserHandler) HandleDeleteUser(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), middleware.CurrentUserID(c), c.Params("id")); err != nil {
		return fail(c, h.log, err, "Could not delete user")
	}
	return c.JSON(fiber.Map{
		"message": "User deleted successfully",
	})
}

func (h *UserHandler) HandleReactivateUser(c *fiber.Ctx) error {
	if err := h.service.Reactivate(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, h.log, err, "Could not reactivate user")
	}
	return c.JSON(fiber.Map{
		"message": "User reactivated successfully",
	})
}

// HandleMe returns the caller's profile joined with its customer row.
func (h *UserHandler) HandleMe(c *fiber.Ctx) error {
	profile, err := h.service.Profile(c.UserContext(), middleware.CurrentUserID(c))
	if err != nil {
		return fail(c, h.log, err, "Could not retrieve profile")
	}
	return c.JSON(profile)
}
