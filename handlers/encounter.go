// handlers/encounter.go
package handlers

import (
	"errors"

	"constellation-backend/middleware"
	"constellation-backend/services"

	"github.com/gofiber/fiber/v2"
)

func SetupEncounterRoutes(app *fiber.App, encounterService *services.EncounterService) {
	secured := app.Group("/", middleware.UserContextMiddleware())

	// Short-lived QR token shown to the other user
	secured.Get("/qr-token", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		token, err := encounterService.GenerateToken(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to generate token", "cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"token": token})
	})

	secured.Post("/encounters/validate", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		var req struct {
			Token string `json:"token"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON", "cause": err.Error(),
			})
		}
		if req.Token == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "token is required"})
		}

		result, err := encounterService.ValidateToken(req.Token, userID)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrSelfEncounter):
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "you cannot meet yourself"})
			case errors.Is(err, services.ErrInvalidToken):
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid or expired token"})
			default:
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "failed to validate encounter", "cause": err.Error(),
				})
			}
		}

		return c.JSON(fiber.Map{
			"success":          true,
			"encounter":        result.Encounter,
			"other_user_id":    result.OtherUserID,
			"already_recorded": result.AlreadyRecorded,
		})
	})

	// Privacy rule: a user only ever sees their own encounters
	secured.Get("/encounters", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		encounters, err := encounterService.ListForUser(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to list encounters", "cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{
			"encounters": encounters,
			"count":      len(encounters),
		})
	})
}
