package handlers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"floor-manager-backend/internal/models"
	"floor-manager-backend/internal/reports"
)

// FinancialReportResponse bundles totals, the bucketed time series and
// the income category breakdown for the reporting dashboard.
type FinancialReportResponse struct {
	Start        time.Time               `json:"start"`
	End          time.Time               `json:"end"`
	TotalIncome  float64                 `json:"total_income"`
	TotalExpense float64                 `json:"total_expense"`
	Net          float64                 `json:"net"`
	Series       []reports.Bucket        `json:"series"`
	Categories   []reports.CategoryShare `json:"categories"`
}

// GetFinancialReport handles the date-ranged financial report. The
// range comes either from a preset (?range=today|week|month|year) or
// from explicit bounds (?range=custom&start_date=...&end_date=...).
func GetFinancialReport(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		preset := c.Query("range", "week")

		var customStart, customEnd time.Time
		var err error
		if s := c.Query("start_date"); s != "" {
			customStart, err = time.Parse("2006-01-02", s)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid start_date format. Use YYYY-MM-DD"})
			}
		}
		if s := c.Query("end_date"); s != "" {
			customEnd, err = time.Parse("2006-01-02", s)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid end_date format. Use YYYY-MM-DD"})
			}
		}

		r, err := reports.ResolveRange(preset, time.Now(), customStart, customEnd)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		var txs []models.Transaction
		if err := db.Where("date >= ? AND date <= ?", r.Start, r.End).Order("date").Find(&txs).Error; err != nil {
			log.Printf("Error fetching transactions for report: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build financial report"})
		}

		income, expenseTotal := reports.Totals(txs)
		resp := FinancialReportResponse{
			Start:        r.Start,
			End:          r.End,
			TotalIncome:  income,
			TotalExpense: expenseTotal,
			Net:          income - expenseTotal,
			Series:       reports.Series(txs, r),
			Categories:   reports.IncomeByCategory(txs),
		}

		return c.JSON(resp)
	}
}
