// Package sheets exports daily nutrition summaries to a Google Spreadsheet,
// one appended row per user per day.
package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mbodji/macrolog/internal/config"
	"github.com/mbodji/macrolog/internal/domain/models"
)

const summaryRange = "Summaries!A:G"

// Exporter is the destination for nightly summary rows.
type Exporter interface {
	AppendSummary(ctx context.Context, log models.DailyLog) error
}

// GoogleSheetExporter implements Exporter using the official Sheets API.
type GoogleSheetExporter struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetExporter builds a Sheets-backed exporter instance.
func NewGoogleSheetExporter(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (Exporter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetExporter{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// AppendSummary appends one row with the log's owner, day and totals.
func (e *GoogleSheetExporter) AppendSummary(ctx context.Context, log models.DailyLog) error {
	row := []interface{}{
		log.UserID.Hex(),
		log.Date.Format("2006-01-02"),
		log.Totals.Calories,
		log.Totals.Protein,
		log.Totals.Carbs,
		log.Totals.Fat,
		countItems(log.Meals),
	}

	payload := &sheetsapi.ValueRange{Values: [][]interface{}{row}}

	call := e.service.Spreadsheets.Values.Append(e.spreadsheetID, summaryRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append summary row: %w", err)
	}

	e.logger.Debug("summary row appended",
		zap.String("user_id", log.UserID.Hex()),
		zap.String("date", log.Date.Format("2006-01-02")))
	return nil
}

func countItems(meals models.Meals) int {
	total := 0
	for _, mealType := range models.MealOrder {
		total += len(meals.Bucket(mealType).Items)
	}
	return total
}
