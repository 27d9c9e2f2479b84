// handlers/user.go
package handlers

import (
	"errors"

	"constellation-backend/middleware"
	"constellation-backend/models"
	"constellation-backend/services"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App, userService *services.UserService, awardService *services.AwardService) {
	// 🔐 Secured routes — require user context from the Gateway
	secured := app.Group("/", middleware.UserContextMiddleware())

	secured.Get("/users/me", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		user, err := userService.GetUser(userID)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load user", "cause": err.Error(),
			})
		}
		return c.JSON(user)
	})

	secured.Put("/users/me", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		var input services.ProfileUpdate
		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON", "cause": err.Error(),
			})
		}

		user, err := userService.UpdateProfile(c.Context(), userID, input)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to update profile", "cause": err.Error(),
			})
		}
		return c.JSON(user)
	})

	secured.Delete("/users/me", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		if err := userService.DeleteUser(c.Context(), userID); err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to delete user", "cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"message": "account deleted"})
	})

	secured.Get("/users/me/awards", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		user, err := userService.GetUser(userID)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load awards", "cause": err.Error(),
			})
		}
		return c.JSON(user.Awards)
	})

	secured.Get("/users/me/pins", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		user, err := userService.GetUser(userID)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load pins", "cause": err.Error(),
			})
		}
		return c.JSON(user.Pins)
	})

	secured.Get("/users/me/stats", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		stats, err := awardService.Stats.GatherUserStats(userID)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to gather stats", "cause": err.Error(),
			})
		}
		return c.JSON(stats)
	})

	// Admin endpoints
	admin := app.Group("/admin", middleware.UserContextMiddleware(), middleware.AdminOnlyMiddleware())

	admin.Post("/users", func(c *fiber.Ctx) error {
		var user models.User
		if err := c.BodyParser(&user); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON", "cause": err.Error(),
			})
		}
		if user.Username == "" || user.Email == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "username and email are required",
			})
		}

		if err := userService.CreateUser(c.Context(), &user); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to create user", "cause": err.Error(),
			})
		}
		return c.Status(fiber.StatusCreated).JSON(user)
	})

	// Manual grant path for the non-dynamic catalog entries
	admin.Post("/users/:id/awards/:awardId", func(c *fiber.Ctx) error {
		if err := awardService.GrantAward(c.Params("id"), c.Params("awardId")); err != nil {
			switch {
			case errors.Is(err, services.ErrUserNotFound):
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
			case errors.Is(err, services.ErrAwardNotFound):
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "award not found"})
			default:
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "failed to grant award", "cause": err.Error(),
				})
			}
		}
		return c.JSON(fiber.Map{"message": "award granted"})
	})
}
