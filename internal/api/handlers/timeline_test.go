package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/brokerdesk/lead-portal/internal/api/dto"
	"github.com/brokerdesk/lead-portal/internal/api/handlers"
	"github.com/brokerdesk/lead-portal/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimelineHandler_Get(t *testing.T) {
	router, tc := setupTestRouter(t)

	mine := testutil.CreateTestLead(t, tc.DB, tc.Broker.Email, "Alice Buyer", "Inspection")
	offerDate := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	titleDate := time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)
	require.NoError(t, tc.DB.Model(mine).Updates(map[string]interface{}{
		"actual_offer_accept_date": offerDate,
		"expected_title_date":      titleDate,
	}).Error)

	theirs := testutil.CreateTestLead(t, tc.DB, "someone-else@example.com", "Carol Buyer", "New")

	t.Run("returns all nine milestones in closing order", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "GET", "/api/timeline/"+mine.ID.String(), nil, tc.BrokerToken)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)

		var resp handlers.TimelineResponse
		testutil.ParseJSONResponse(t, rr, &resp)
		assert.Equal(t, mine.ID, resp.LeadID)
		assert.Equal(t, "Alice Buyer", resp.ClientName)
		assert.Equal(t, "Inspection", resp.Status)
		require.Len(t, resp.Milestones, 9)

		titles := make([]string, len(resp.Milestones))
		for i, m := range resp.Milestones {
			titles[i] = m.Title
		}
		assert.Equal(t, []string{
			"Offer Accept",
			"Title",
			"Inspection Order",
			"Inspection Complete",
			"Appraisal Order",
			"Appraisal Complete",
			"Clear to Close",
			"Closing Scheduled",
			"Close Date",
		}, titles)

		offer := resp.Milestones[0]
		assert.True(t, offer.IsCompleted)
		require.NotNil(t, offer.ActualDate)

		title := resp.Milestones[1]
		assert.False(t, title.IsCompleted)
		require.NotNil(t, title.ExpectedDate)
		assert.Nil(t, title.ActualDate)

		closing := resp.Milestones[8]
		assert.False(t, closing.IsCompleted)
		assert.Nil(t, closing.ExpectedDate)
	})

	t.Run("admin can view any timeline", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "GET", "/api/timeline/"+theirs.ID.String(), nil, tc.AdminToken)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("broker cannot view another broker's timeline", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "GET", "/api/timeline/"+theirs.ID.String(), nil, tc.BrokerToken)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusForbidden, rr.Code)

		var resp dto.ErrorResponse
		testutil.ParseJSONResponse(t, rr, &resp)
		assert.Equal(t, "Access denied", resp.Error)
	})

	t.Run("unknown lead is 404", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "GET", "/api/timeline/00000000-0000-0000-0000-000000000001", nil, tc.AdminToken)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("malformed id is 400", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "GET", "/api/timeline/not-a-uuid", nil, tc.AdminToken)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
