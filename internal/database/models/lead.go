package models

import "time"

// LeadStatuses is the canonical pipeline order. The column itself is free
// text in storage; writes through the API are checked against this set.
var LeadStatuses = []string{
	"New",
	"Processing",
	"Inspection",
	"Appraisal",
	"Clear to Close",
	"Closing",
	"Closed",
	"Cancelled",
}

func IsValidLeadStatus(status string) bool {
	for _, s := range LeadStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Lead is one tracked real-estate transaction. Ownership is by broker email,
// not a user-id foreign key; renaming a broker's email orphans their leads.
type Lead struct {
	Base
	LeadID          string `gorm:"index" json:"lead_id"`
	BrokerEmail     string `gorm:"index;not null" json:"broker_email"`
	ClientName      string `gorm:"not null" json:"client_name"`
	PropertyAddress string `json:"property_address"`
	Status          string `gorm:"default:'New'" json:"status"`

	// Nine milestone pairs, expected vs. actual, in pipeline order.
	ExpectedOfferAcceptDate        *time.Time `json:"expected_offer_accept_date"`
	ActualOfferAcceptDate          *time.Time `json:"actual_offer_accept_date"`
	ExpectedTitleDate              *time.Time `json:"expected_title_date"`
	ActualTitleDate                *time.Time `json:"actual_title_date"`
	ExpectedInspectionOrderDate    *time.Time `json:"expected_inspection_order_date"`
	ActualInspectionOrderDate      *time.Time `json:"actual_inspection_order_date"`
	ExpectedInspectionCompleteDate *time.Time `json:"expected_inspection_complete_date"`
	ActualInspectionCompleteDate   *time.Time `json:"actual_inspection_complete_date"`
	ExpectedAppraisalOrderDate     *time.Time `json:"expected_appraisal_order_date"`
	ActualAppraisalOrderDate       *time.Time `json:"actual_appraisal_order_date"`
	ExpectedAppraisalCompleteDate  *time.Time `json:"expected_appraisal_complete_date"`
	ActualAppraisalCompleteDate    *time.Time `json:"actual_appraisal_complete_date"`
	ExpectedClearToCloseDate       *time.Time `json:"expected_clear_to_close_date"`
	ActualClearToCloseDate         *time.Time `json:"actual_clear_to_close_date"`
	ExpectedClosingScheduledDate   *time.Time `json:"expected_closing_scheduled_date"`
	ActualClosingScheduledDate     *time.Time `json:"actual_closing_scheduled_date"`
	ExpectedCloseDate              *time.Time `json:"expected_close_date"`
	ActualCloseDate                *time.Time `json:"actual_close_date"`
}

func (Lead) TableName() string {
	return "leads"
}
