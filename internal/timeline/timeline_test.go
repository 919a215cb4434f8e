package timeline_test

import (
	"testing"
	"time"

	"github.com/brokerdesk/lead-portal/internal/database/models"
	"github.com/brokerdesk/lead-portal/internal/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var milestoneOrder = []string{
	"Offer Accept",
	"Title",
	"Inspection Order",
	"Inspection Complete",
	"Appraisal Order",
	"Appraisal Complete",
	"Clear to Close",
	"Closing Scheduled",
	"Close Date",
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestProject_OrderIsStable(t *testing.T) {
	leads := []*models.Lead{
		{}, // all dates nil
		{ActualCloseDate: datePtr(2026, 3, 1)},
		{
			ExpectedOfferAcceptDate: datePtr(2026, 1, 1),
			ActualTitleDate:         datePtr(2026, 1, 15),
			ActualCloseDate:         datePtr(2026, 3, 1),
		},
	}

	for _, lead := range leads {
		milestones := timeline.Project(lead)
		require.Len(t, milestones, 9)
		for i, m := range milestones {
			assert.Equal(t, milestoneOrder[i], m.Title)
		}
	}
}

func TestProject_CompletionTracksActualDate(t *testing.T) {
	lead := &models.Lead{
		ExpectedOfferAcceptDate: datePtr(2026, 1, 1),
		ActualOfferAcceptDate:   datePtr(2026, 1, 3),
		ExpectedTitleDate:       datePtr(2026, 1, 10),
		// no actual title date
		ActualClearToCloseDate: datePtr(2026, 2, 20),
	}

	milestones := timeline.Project(lead)

	assert.True(t, milestones[0].IsCompleted, "offer accept has an actual date")
	assert.False(t, milestones[1].IsCompleted, "title has only an expected date")
	assert.True(t, milestones[6].IsCompleted, "clear to close has an actual date")
	assert.False(t, milestones[8].IsCompleted, "close date is unset")

	assert.Equal(t, datePtr(2026, 1, 1), milestones[0].ExpectedDate)
	assert.Equal(t, datePtr(2026, 1, 3), milestones[0].ActualDate)
	assert.Nil(t, milestones[1].ActualDate)
}

func TestProject_EmptyLead(t *testing.T) {
	milestones := timeline.Project(&models.Lead{})
	require.Len(t, milestones, 9)
	for _, m := range milestones {
		assert.Nil(t, m.ExpectedDate)
		assert.Nil(t, m.ActualDate)
		assert.False(t, m.IsCompleted)
	}
}
