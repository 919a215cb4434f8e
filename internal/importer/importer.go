// Package importer turns an uploaded Excel workbook into lead rows. Rows are
// validated as a whole batch: one bad row rejects the entire file so a
// partially-loaded spreadsheet never reaches storage.
package importer

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/brokerdesk/lead-portal/internal/database/models"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

var ErrEmptyWorkbook = errors.New("workbook has no data rows")

// InvalidRowsError reports the lead identifiers of rows missing a required
// field. The batch is rejected whole; nothing is inserted.
type InvalidRowsError struct {
	LeadIDs []string
}

func (e *InvalidRowsError) Error() string {
	return fmt.Sprintf("%d rows are missing required fields (Broker Email, Client Name)", len(e.LeadIDs))
}

// dateColumns maps spreadsheet headers to lead date fields, in template order.
var dateColumns = []struct {
	header string
	assign func(*models.Lead, *time.Time)
}{
	{"Expected Offer Accept Date", func(l *models.Lead, t *time.Time) { l.ExpectedOfferAcceptDate = t }},
	{"Expected Title Date", func(l *models.Lead, t *time.Time) { l.ExpectedTitleDate = t }},
	{"Expected Inspection Order Date", func(l *models.Lead, t *time.Time) { l.ExpectedInspectionOrderDate = t }},
	{"Expected Inspection Complete Date", func(l *models.Lead, t *time.Time) { l.ExpectedInspectionCompleteDate = t }},
	{"Expected Appraisal Order Date", func(l *models.Lead, t *time.Time) { l.ExpectedAppraisalOrderDate = t }},
	{"Expected Appraisal Complete Date", func(l *models.Lead, t *time.Time) { l.ExpectedAppraisalCompleteDate = t }},
	{"Expected Clear to Close Date", func(l *models.Lead, t *time.Time) { l.ExpectedClearToCloseDate = t }},
	{"Expected Closing Scheduled Date", func(l *models.Lead, t *time.Time) { l.ExpectedClosingScheduledDate = t }},
	{"Expected Close Date", func(l *models.Lead, t *time.Time) { l.ExpectedCloseDate = t }},
	{"Actual Offer Accept Date", func(l *models.Lead, t *time.Time) { l.ActualOfferAcceptDate = t }},
	{"Actual Title Date", func(l *models.Lead, t *time.Time) { l.ActualTitleDate = t }},
	{"Actual Inspection Order Date", func(l *models.Lead, t *time.Time) { l.ActualInspectionOrderDate = t }},
	{"Actual Inspection Complete Date", func(l *models.Lead, t *time.Time) { l.ActualInspectionCompleteDate = t }},
	{"Actual Appraisal Order Date", func(l *models.Lead, t *time.Time) { l.ActualAppraisalOrderDate = t }},
	{"Actual Appraisal Complete Date", func(l *models.Lead, t *time.Time) { l.ActualAppraisalCompleteDate = t }},
	{"Actual Clear to Close Date", func(l *models.Lead, t *time.Time) { l.ActualClearToCloseDate = t }},
	{"Actual Closing Scheduled Date", func(l *models.Lead, t *time.Time) { l.ActualClosingScheduledDate = t }},
	{"Actual Close Date", func(l *models.Lead, t *time.Time) { l.ActualCloseDate = t }},
}

// Parse reads a workbook and returns the lead batch ready for insert.
func Parse(r io.Reader) ([]models.Lead, error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer func() { _ = file.Close() }()

	sheet := pickSheet(file)
	if sheet == "" {
		return nil, ErrEmptyWorkbook
	}

	// Raw values so serial dates arrive as numbers, not display strings.
	rows, err := file.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, ErrEmptyWorkbook
	}

	columns := make(map[string]int)
	for i, header := range rows[0] {
		columns[strings.TrimSpace(header)] = i
	}

	cell := func(row []string, header string) string {
		idx, ok := columns[header]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var leads []models.Lead
	var invalid []string
	for _, row := range rows[1:] {
		lead := models.Lead{
			LeadID:          cell(row, "Lead ID"),
			BrokerEmail:     cell(row, "Broker Email"),
			ClientName:      cell(row, "Client Name"),
			PropertyAddress: cell(row, "Property Address"),
			Status:          cell(row, "Status"),
		}
		if lead.LeadID == "" {
			lead.LeadID = generateLeadID()
		}
		if lead.Status == "" {
			lead.Status = "New"
		}
		for _, col := range dateColumns {
			col.assign(&lead, ParseDate(cell(row, col.header)))
		}

		if lead.BrokerEmail == "" || lead.ClientName == "" {
			invalid = append(invalid, lead.LeadID)
		}
		leads = append(leads, lead)
	}

	if len(invalid) > 0 {
		return nil, &InvalidRowsError{LeadIDs: invalid}
	}
	return leads, nil
}

// pickSheet returns the first worksheet that is not the template's
// "Instructions" tab, falling back to the first sheet.
func pickSheet(file *excelize.File) string {
	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return ""
	}
	for _, name := range sheets {
		if !strings.EqualFold(name, "instructions") {
			return name
		}
	}
	return sheets[0]
}

// ParseDate coerces a spreadsheet cell into a timestamp. Accepted inputs, in
// priority order: an ISO/common date string, then a numeric serial date
// (epoch 1899-12-30). Empty or unparseable cells yield nil, not an error.
func ParseDate(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006-01-02 15:04:05",
		"01/02/2006",
		"1/2/2006",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t
		}
	}

	if serial, err := strconv.ParseFloat(value, 64); err == nil {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return &t
		}
	}

	return nil
}

func generateLeadID() string {
	return fmt.Sprintf("LEAD-%d-%s", time.Now().UnixMilli(), uuid.New().String()[:8])
}
