// handlers/pin.go
package handlers

import (
	"errors"
	"fmt"

	"constellation-backend/middleware"
	"constellation-backend/models"
	"constellation-backend/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

func SetupPinRoutes(app *fiber.App, db *gorm.DB, userService *services.UserService) {
	// 🔓 Public catalog
	app.Get("/pins", func(c *fiber.Ctx) error {
		var pins []models.Pin
		if err := db.Order("name ASC").Find(&pins).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to list pins", "cause": err.Error(),
			})
		}
		return c.JSON(pins)
	})

	secured := app.Group("/", middleware.UserContextMiddleware())

	secured.Post("/pins/:id/collect", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		pin, err := userService.CollectPin(userID, c.Params("id"))
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserNotFound):
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
			case errors.Is(err, services.ErrPinNotFound):
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "pin not found"})
			default:
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "failed to collect pin", "cause": err.Error(),
				})
			}
		}
		return c.JSON(pin)
	})

	secured.Delete("/pins/:id/collect", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		if err := userService.ReleasePin(userID, c.Params("id")); err != nil {
			switch {
			case errors.Is(err, services.ErrUserNotFound):
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "user not found"})
			case errors.Is(err, services.ErrPinNotFound):
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "pin not found"})
			default:
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "failed to release pin", "cause": err.Error(),
				})
			}
		}
		return c.JSON(fiber.Map{"message": "pin released"})
	})

	// Admin endpoints
	admin := app.Group("/admin", middleware.UserContextMiddleware(), middleware.AdminOnlyMiddleware())

	admin.Post("/pins", func(c *fiber.Ctx) error {
		var pin models.Pin
		if err := c.BodyParser(&pin); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON", "cause": err.Error(),
			})
		}
		if pin.Name == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
		}

		pin.ID = uuid.NewString()
		pin.Slug = slug.Make(pin.Name)
		pin.Rarity = 1 // nobody owns a brand-new pin

		if err := db.Create(&pin).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to create pin", "cause": err.Error(),
			})
		}
		return c.Status(fiber.StatusCreated).JSON(pin)
	})

	admin.Post("/pins/:id/image", func(c *fiber.Ctx) error {
		var pin models.Pin
		if err := db.First(&pin, "id = ?", c.Params("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "pin not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "database error", "cause": err.Error(),
			})
		}

		fileHeader, err := c.FormFile("image")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "image file is required"})
		}

		url, err := StoreUpload(fileHeader, fmt.Sprintf("pins/%s-%s", pin.Slug, fileHeader.Filename))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to store image", "cause": err.Error(),
			})
		}

		if err := db.Model(&pin).Update("image_url", url).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to save image URL", "cause": err.Error(),
			})
		}
		pin.ImageURL = url
		return c.JSON(pin)
	})
}
