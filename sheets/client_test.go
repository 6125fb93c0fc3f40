package sheets

import (
	"testing"

	"github.com/ellielalafontaine/trackmaniabottime/models"
)

func TestBuildPlayerRow(t *testing.T) {
	entry := models.OverallEntry{
		DisplayName:  "Speedy",
		MapsDone:     2,
		AuthorMedals: 1,
		Times: map[int]int{
			1: 83456,
			4: 91000,
		},
	}

	row := buildPlayerRow(3, entry)

	// Rank, name, maps, medals, then one column per map
	if len(row) != 9 {
		t.Fatalf("row length = %d, want 9", len(row))
	}
	if row[0] != 3 || row[1] != "Speedy" || row[2] != 2 || row[3] != 1 {
		t.Errorf("unexpected row prefix: %v", row[:4])
	}
	if row[4] != "01:23.456" {
		t.Errorf("map 1 time = %v, want 01:23.456", row[4])
	}
	if row[5] != "" || row[6] != "" || row[8] != "" {
		t.Errorf("missing maps should render empty, got %v", row)
	}
	if row[7] != "01:31.000" {
		t.Errorf("map 4 time = %v, want 01:31.000", row[7])
	}
}

func TestBuildHeaderRow(t *testing.T) {
	row := buildHeaderRow()
	if len(row) != 9 {
		t.Fatalf("header length = %d, want 9", len(row))
	}
	if row[4] != "Map 1" || row[8] != "Map 5" {
		t.Errorf("unexpected map headers: %v", row[4:])
	}
}

func TestNewSheetsClientRequiresSpreadsheetID(t *testing.T) {
	if _, err := NewSheetsClient(""); err == nil {
		t.Error("NewSheetsClient should fail without a spreadsheet ID")
	}
}
