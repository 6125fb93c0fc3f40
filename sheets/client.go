// Package sheets exports the weekly standings to a Google Sheets results
// spreadsheet.
package sheets

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/ellielalafontaine/trackmaniabottime/constants"
	"github.com/ellielalafontaine/trackmaniabottime/models"
	"github.com/ellielalafontaine/trackmaniabottime/timefmt"
	"github.com/ellielalafontaine/trackmaniabottime/utils"
)

// SheetsClient wraps the Google Sheets API for leaderboard exports.
type SheetsClient struct {
	service       *sheets.Service
	spreadsheetID string
	ctx           context.Context
}

// NewSheetsClient creates a new Google Sheets client for the given results
// spreadsheet. The Firebase credential JSON doubles as the Google Cloud
// credential.
func NewSheetsClient(spreadsheetID string) (*SheetsClient, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("no spreadsheet ID configured")
	}

	ctx := context.Background()

	credentialsJSON := os.Getenv(constants.EnvFirebaseCreds)
	if credentialsJSON == "" {
		return nil, fmt.Errorf("%s environment variable is not set", constants.EnvFirebaseCreds)
	}

	service, err := sheets.NewService(ctx, option.WithCredentialsJSON([]byte(credentialsJSON)))
	if err != nil {
		return nil, fmt.Errorf("failed to create Sheets service: %w", err)
	}

	utils.Info("Google Sheets client initialized successfully")
	return &SheetsClient{
		service:       service,
		spreadsheetID: spreadsheetID,
		ctx:           ctx,
	}, nil
}

// ExportOverall overwrites the spreadsheet with the overall standings for
// one week: one header row, then one row per player with per-map times.
func (c *SheetsClient) ExportOverall(week string, entries []models.OverallEntry) error {
	values := [][]interface{}{
		{"Week", week},
		buildHeaderRow(),
	}

	for i, entry := range entries {
		values = append(values, buildPlayerRow(i+1, entry))
	}

	valueRange := &sheets.ValueRange{Values: values}
	_, err := c.service.Spreadsheets.Values.Update(
		c.spreadsheetID,
		constants.ExportSheetRange,
		valueRange,
	).ValueInputOption(constants.ExportValueInputOption).Context(c.ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to update spreadsheet: %w", err)
	}

	utils.Info("Exported %d players for week %s to spreadsheet", len(entries), week)
	return nil
}

func buildHeaderRow() []interface{} {
	row := []interface{}{"Rank", "Player", "Maps", "Medals"}
	for mapNum := constants.MinMapNumber; mapNum <= constants.MaxMapNumber; mapNum++ {
		row = append(row, fmt.Sprintf("Map %d", mapNum))
	}
	return row
}

func buildPlayerRow(rank int, entry models.OverallEntry) []interface{} {
	row := []interface{}{rank, entry.DisplayName, entry.MapsDone, entry.AuthorMedals}
	for mapNum := constants.MinMapNumber; mapNum <= constants.MaxMapNumber; mapNum++ {
		if ms, ok := entry.Times[mapNum]; ok {
			row = append(row, timefmt.FormatTime(ms))
		} else {
			row = append(row, "")
		}
	}
	return row
}
