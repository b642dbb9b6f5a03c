package handlers

import (
	"context"
	"log"
	"time"

	"roihub/database"
	"roihub/models"
	"roihub/roi"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v4/pgxpool"
)

func loadPortfolio(ctx context.Context, db *pgxpool.Pool, organizationID string) ([]models.Project, []models.Indicator, models.FrequencyOverrides, error) {
	projects, err := fetchOrgProjects(ctx, db, organizationID)
	if err != nil {
		return nil, nil, nil, err
	}
	indicators, err := fetchOrgIndicators(ctx, db, organizationID)
	if err != nil {
		return nil, nil, nil, err
	}
	overrides := loadFrequencyOverrides(ctx, db, organizationID)
	return projects, indicators, overrides, nil
}

// HandleGetDashboardKPIs returns the consolidated portfolio snapshot.
// GET /api/v1/dashboard/kpis
func HandleGetDashboardKPIs(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()
	orgID := c.Locals("organizationID").(string)

	projects, indicators, overrides, err := loadPortfolio(ctx, db, orgID)
	if err != nil {
		log.Printf("Error loading portfolio for org %s: %v", orgID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Database error"})
	}

	stats := roi.CalculateKPIStats(projects, indicators, overrides)
	return c.JSON(fiber.Map{"status": "success", "data": stats})
}

// HandleGetEconomyHistory returns the monthly economy series for the charts.
// GET /api/v1/dashboard/history
func HandleGetEconomyHistory(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()
	orgID := c.Locals("organizationID").(string)

	projects, indicators, overrides, err := loadPortfolio(ctx, db, orgID)
	if err != nil {
		log.Printf("Error loading portfolio for org %s: %v", orgID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Database error"})
	}

	history := roi.EconomyHistory(projects, indicators, overrides, time.Now())
	return c.JSON(fiber.Map{"status": "success", "data": history})
}

// HandleGetTypeDistribution returns annual economy grouped by improvement type.
// GET /api/v1/dashboard/distribution
func HandleGetTypeDistribution(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()
	orgID := c.Locals("organizationID").(string)

	indicators, err := fetchOrgIndicators(ctx, db, orgID)
	if err != nil {
		log.Printf("Error loading indicators for org %s: %v", orgID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Database error"})
	}
	overrides := loadFrequencyOverrides(ctx, db, orgID)

	distribution := roi.DistributionByType(indicators, overrides)
	return c.JSON(fiber.Map{"status": "success", "data": distribution})
}
