package handlers_test

import (
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/brokerdesk/lead-portal/internal/api"
	"github.com/brokerdesk/lead-portal/internal/auth"
	"github.com/brokerdesk/lead-portal/internal/store"
	"github.com/brokerdesk/lead-portal/internal/testutil"
)

// setupTestRouter wires the full router, middleware included, against an
// in-memory database.
func setupTestRouter(t *testing.T) (http.Handler, *testutil.TestSetup) {
	t.Helper()

	tc := testutil.NewTestContext(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	userStore := store.NewGormUserStore(tc.DB)
	leadStore := store.NewGormLeadStore(tc.DB)
	authService := auth.NewService(userStore, tc.JWTService)

	router := api.NewRouter(api.RouterConfig{
		DB:             tc.DB,
		Logger:         logger,
		JWTService:     tc.JWTService,
		AuthService:    authService,
		UserStore:      userStore,
		LeadStore:      leadStore,
		UploadMaxBytes: 50 * 1024 * 1024,
		Development:    true,
	})

	return router, tc
}
