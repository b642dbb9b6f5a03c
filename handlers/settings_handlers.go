package handlers

import (
	"context"
	"log"

	"roihub/database"
	"roihub/models"

	"github.com/gofiber/fiber/v2"
)

// allowedUnits guards the override table against junk keys.
var allowedUnits = map[models.FrequencyUnit]bool{
	models.FreqHour:    true,
	models.FreqDay:     true,
	models.FreqWeek:    true,
	models.FreqMonth:   true,
	models.FreqQuarter: true,
	models.FreqYear:    true,
}

// HandleGetFrequencySettings returns the organization's annual-multiplier
// overrides. An empty map means the engine defaults apply.
// GET /api/v1/settings/frequency
func HandleGetFrequencySettings(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()
	orgID := c.Locals("organizationID").(string)

	overrides := loadFrequencyOverrides(ctx, db, orgID)
	if overrides == nil {
		overrides = models.FrequencyOverrides{}
	}

	return c.JSON(fiber.Map{"status": "success", "data": models.OrgSettings{
		OrganizationID:     orgID,
		FrequencyOverrides: overrides,
	}})
}

// HandleUpdateFrequencySettings replaces the organization's override table.
// Every subsequent engine call picks the new multipliers up; cached project
// ROI values keep their last-saved numbers until something recalculates them.
// PUT /api/v1/settings/frequency
func HandleUpdateFrequencySettings(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()
	orgID := c.Locals("organizationID").(string)

	var overrides models.FrequencyOverrides
	if err := c.BodyParser(&overrides); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Cannot parse JSON"})
	}

	for unit, multiplier := range overrides {
		if !allowedUnits[unit] {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Unknown frequency unit: " + string(unit)})
		}
		if multiplier < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Multipliers must be non-negative"})
		}
	}

	_, err := db.Exec(ctx,
		`INSERT INTO org_settings (organization_id, frequency_overrides)
		 VALUES ($1, $2)
		 ON CONFLICT (organization_id) DO UPDATE SET frequency_overrides = EXCLUDED.frequency_overrides`,
		orgID, overrides,
	)
	if err != nil {
		log.Printf("Error saving frequency settings for org %s: %v", orgID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Could not save settings"})
	}

	return c.JSON(fiber.Map{"status": "success", "data": models.OrgSettings{
		OrganizationID:     orgID,
		FrequencyOverrides: overrides,
	}})
}
