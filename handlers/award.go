// handlers/award.go
package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"

	"constellation-backend/middleware"
	"constellation-backend/models"
	"constellation-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// StoreUpload pushes a file to R2 when configured, else to local uploads/
// served under /uploads.
func StoreUpload(fileHeader *multipart.FileHeader, key string) (string, error) {
	if utils.R2Enabled() {
		return utils.UploadFileToR2(fileHeader, key)
	}
	path := utils.GetUploadPath(key)
	if err := utils.SaveFile(fileHeader, path); err != nil {
		return "", err
	}
	return "/" + path, nil
}

func SetupAwardRoutes(app *fiber.App, db *gorm.DB) {
	// 🔓 Public catalog
	app.Get("/awards", func(c *fiber.Ctx) error {
		var awards []models.Award
		if err := db.Order("category ASC, name ASC").Find(&awards).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to list awards", "cause": err.Error(),
			})
		}
		return c.JSON(awards)
	})

	// Admin endpoints
	admin := app.Group("/admin", middleware.UserContextMiddleware(), middleware.AdminOnlyMiddleware())

	admin.Post("/awards/:id/icon", func(c *fiber.Ctx) error {
		var award models.Award
		if err := db.First(&award, "id = ?", c.Params("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "award not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "database error", "cause": err.Error(),
			})
		}

		fileHeader, err := c.FormFile("icon")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "icon file is required"})
		}

		url, err := StoreUpload(fileHeader, fmt.Sprintf("icons/%s-%s", slug.Make(award.Name), fileHeader.Filename))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to store icon", "cause": err.Error(),
			})
		}

		if err := db.Model(&award).Update("icon_url", url).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to save icon URL", "cause": err.Error(),
			})
		}
		award.IconURL = url
		return c.JSON(award)
	})
}
