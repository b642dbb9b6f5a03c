package handlers

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"roihub/config"
	"roihub/database"
	"roihub/roi"

	"github.com/gofiber/fiber/v2"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// HandleGenerateInsight turns the current KPI snapshot into a short
// natural-language summary using the Gemini API. The engine only supplies
// plain numbers; the model does the prose.
// POST /api/v1/dashboard/insight
func HandleGenerateInsight(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()
	orgID := c.Locals("organizationID").(string)

	projects, indicators, overrides, err := loadPortfolio(ctx, db, orgID)
	if err != nil {
		log.Printf("Error loading portfolio for org %s: %v", orgID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Database error"})
	}

	stats := roi.CalculateKPIStats(projects, indicators, overrides)
	distribution := roi.DistributionByType(indicators, overrides)

	var sb strings.Builder
	sb.WriteString("You are a financial analyst. Write a concise executive summary (one paragraph) of this AI initiative portfolio:\n")
	fmt.Fprintf(&sb, "- Projects in production: %d, completed: %d\n", stats.ProjetosProducao, stats.ProjetosConcluidos)
	fmt.Fprintf(&sb, "- Average ROI of production projects: %.1f%%\n", stats.ROITotal)
	fmt.Fprintf(&sb, "- Total annual economy: %.2f\n", stats.EconomiaAnual)
	fmt.Fprintf(&sb, "- Hours saved per year: %.0f\n", stats.HorasEconomizadasAno)
	fmt.Fprintf(&sb, "- Average payback: %.1f months\n", stats.PaybackMedio)
	fmt.Fprintf(&sb, "- Net economy after AI costs: %.2f (annual AI cost %.2f)\n", stats.EconomiaLiquida, stats.CustoIAAnual)
	for _, item := range distribution {
		fmt.Fprintf(&sb, "- Economy from %s: %.2f\n", item.Label, item.Value)
	}
	fmt.Fprintf(&sb, "Generated at %s.", time.Now().Format("2006-01-02"))

	// Initialize the Gemini client
	client, err := genai.NewClient(ctx, option.WithAPIKey(config.AppConfig.GeminiAPIKey))
	if err != nil {
		log.Printf("Error creating Gemini client: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to initialize Gemini client"})
	}
	defer client.Close()

	model := client.GenerativeModel("gemini-1.5-pro-latest")
	resp, err := model.GenerateContent(ctx, genai.Text(sb.String()))
	if err != nil {
		log.Printf("Error generating insight: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to generate insight"})
	}

	var summary string
	if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			if text, ok := part.(genai.Text); ok {
				summary += string(text)
			}
		}
	}

	return c.JSON(fiber.Map{"status": "success", "data": fiber.Map{"summary": summary, "kpis": stats}})
}
