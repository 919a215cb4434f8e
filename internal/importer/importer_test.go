package importer_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/brokerdesk/lead-portal/internal/importer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *time.Time
	}{
		{
			name:  "ISO date string",
			input: "2026-02-01",
			want:  timePtr(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)),
		},
		{
			name:  "RFC3339 timestamp",
			input: "2026-02-01T10:30:00Z",
			want:  timePtr(time.Date(2026, 2, 1, 10, 30, 0, 0, time.UTC)),
		},
		{
			name:  "spreadsheet serial number",
			input: "45000",
			want:  timePtr(time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC)),
		},
		{
			name:  "empty cell",
			input: "",
			want:  nil,
		},
		{
			name:  "whitespace only",
			input: "   ",
			want:  nil,
		},
		{
			name:  "garbage is no date, not an error",
			input: "next tuesday",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := importer.ParseDate(tt.input)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, tt.want.Equal(*got), "want %v, got %v", tt.want, got)
		})
	}
}

var leadHeaders = []string{
	"Lead ID", "Broker Email", "Client Name", "Property Address", "Status",
	"Expected Offer Accept Date", "Actual Offer Accept Date",
	"Expected Close Date", "Actual Close Date",
}

func buildWorkbook(t *testing.T, sheet string, rows [][]interface{}) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		_, err := f.NewSheet(sheet)
		require.NoError(t, err)
		require.NoError(t, f.DeleteSheet("Sheet1"))
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func headerRow() []interface{} {
	row := make([]interface{}, len(leadHeaders))
	for i, h := range leadHeaders {
		row[i] = h
	}
	return row
}

func TestParse_ValidBatch(t *testing.T) {
	buf := buildWorkbook(t, "Sheet1", [][]interface{}{
		headerRow(),
		{"L-100", "broker@example.com", "Alice Buyer", "1 Main St", "Processing", "2026-01-10", "2026-01-12", "2026-03-01", ""},
		{"L-101", "other@example.com", "Bob Buyer", "2 Oak Ave", "", 45000, "", "", ""},
	})

	leads, err := importer.Parse(buf)
	require.NoError(t, err)
	require.Len(t, leads, 2)

	first := leads[0]
	assert.Equal(t, "L-100", first.LeadID)
	assert.Equal(t, "broker@example.com", first.BrokerEmail)
	assert.Equal(t, "Alice Buyer", first.ClientName)
	assert.Equal(t, "Processing", first.Status)
	require.NotNil(t, first.ExpectedOfferAcceptDate)
	assert.Equal(t, time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC), *first.ExpectedOfferAcceptDate)
	require.NotNil(t, first.ActualOfferAcceptDate)
	assert.Nil(t, first.ActualCloseDate)

	second := leads[1]
	assert.Equal(t, "New", second.Status, "blank status defaults to New")
	require.NotNil(t, second.ExpectedOfferAcceptDate)
	assert.Equal(t, time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC), *second.ExpectedOfferAcceptDate, "serial cell coerces via the 1899-12-30 epoch")
}

func TestParse_GeneratesLeadIDWhenAbsent(t *testing.T) {
	buf := buildWorkbook(t, "Sheet1", [][]interface{}{
		headerRow(),
		{"", "broker@example.com", "Alice Buyer", "", "", "", "", "", ""},
	})

	leads, err := importer.Parse(buf)
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.True(t, len(leads[0].LeadID) > 0)
	assert.Contains(t, leads[0].LeadID, "LEAD-")
}

func TestParse_RejectsWholeBatchOnMissingRequiredField(t *testing.T) {
	buf := buildWorkbook(t, "Sheet1", [][]interface{}{
		headerRow(),
		{"L-1", "broker@example.com", "Alice Buyer", "", "", "", "", "", ""},
		{"L-2", "broker@example.com", "", "", "", "", "", "", ""}, // no client name
		{"L-3", "", "Carol Buyer", "", "", "", "", "", ""},        // no broker email
	})

	leads, err := importer.Parse(buf)
	assert.Nil(t, leads, "a single bad row rejects every row")

	var invalid *importer.InvalidRowsError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, []string{"L-2", "L-3"}, invalid.LeadIDs)
}

func TestParse_EmptyWorkbook(t *testing.T) {
	t.Run("no data rows", func(t *testing.T) {
		buf := buildWorkbook(t, "Sheet1", [][]interface{}{headerRow()})
		_, err := importer.Parse(buf)
		assert.ErrorIs(t, err, importer.ErrEmptyWorkbook)
	})

	t.Run("no rows at all", func(t *testing.T) {
		buf := buildWorkbook(t, "Sheet1", nil)
		_, err := importer.Parse(buf)
		assert.ErrorIs(t, err, importer.ErrEmptyWorkbook)
	})
}

func TestParse_SkipsInstructionsSheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	// First sheet is the template's instructions tab; data lives on the second.
	require.NoError(t, f.SetSheetName("Sheet1", "Instructions"))
	require.NoError(t, f.SetSheetRow("Instructions", "A1", &[]interface{}{"How to fill in this template"}))

	_, err := f.NewSheet("Leads")
	require.NoError(t, err)
	header := headerRow()
	require.NoError(t, f.SetSheetRow("Leads", "A1", &header))
	row := []interface{}{"L-1", "broker@example.com", "Alice Buyer", "", "", "", "", "", ""}
	require.NoError(t, f.SetSheetRow("Leads", "A2", &row))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	leads, err := importer.Parse(buf)
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "Alice Buyer", leads[0].ClientName)
}
