// Package timeline projects a lead's milestone date columns into the ordered
// checkpoint sequence the clients render.
package timeline

import (
	"time"

	"github.com/brokerdesk/lead-portal/internal/database/models"
)

type Milestone struct {
	Title        string     `json:"title"`
	ExpectedDate *time.Time `json:"expectedDate"`
	ActualDate   *time.Time `json:"actualDate"`
	IsCompleted  bool       `json:"isCompleted"`
}

// Project returns the nine milestones in fixed pipeline order. A milestone is
// completed iff its actual date is set; no date arithmetic is involved.
func Project(lead *models.Lead) []Milestone {
	pairs := []struct {
		title    string
		expected *time.Time
		actual   *time.Time
	}{
		{"Offer Accept", lead.ExpectedOfferAcceptDate, lead.ActualOfferAcceptDate},
		{"Title", lead.ExpectedTitleDate, lead.ActualTitleDate},
		{"Inspection Order", lead.ExpectedInspectionOrderDate, lead.ActualInspectionOrderDate},
		{"Inspection Complete", lead.ExpectedInspectionCompleteDate, lead.ActualInspectionCompleteDate},
		{"Appraisal Order", lead.ExpectedAppraisalOrderDate, lead.ActualAppraisalOrderDate},
		{"Appraisal Complete", lead.ExpectedAppraisalCompleteDate, lead.ActualAppraisalCompleteDate},
		{"Clear to Close", lead.ExpectedClearToCloseDate, lead.ActualClearToCloseDate},
		{"Closing Scheduled", lead.ExpectedClosingScheduledDate, lead.ActualClosingScheduledDate},
		{"Close Date", lead.ExpectedCloseDate, lead.ActualCloseDate},
	}

	milestones := make([]Milestone, len(pairs))
	for i, p := range pairs {
		milestones[i] = Milestone{
			Title:        p.title,
			ExpectedDate: p.expected,
			ActualDate:   p.actual,
			IsCompleted:  p.actual != nil,
		}
	}
	return milestones
}
