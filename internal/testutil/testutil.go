package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/brokerdesk/lead-portal/internal/auth"
	"github.com/brokerdesk/lead-portal/internal/database/models"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB creates an in-memory SQLite database for testing
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Lead{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return db
}

// CreateTestUser creates a user with the given role and a known password
// ("testpassword123").
func CreateTestUser(t *testing.T, db *gorm.DB, email, role string) *models.User {
	t.Helper()

	hash, err := auth.HashPassword("testpassword123")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Base:         models.Base{ID: uuid.New()},
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		FullName:     "Test User",
		Active:       true,
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	return user
}

// CreateTestLead creates a lead owned by the given broker email.
func CreateTestLead(t *testing.T, db *gorm.DB, brokerEmail, clientName, status string) *models.Lead {
	t.Helper()

	lead := &models.Lead{
		Base:            models.Base{ID: uuid.New()},
		LeadID:          "LEAD-" + uuid.New().String()[:8],
		BrokerEmail:     brokerEmail,
		ClientName:      clientName,
		PropertyAddress: "123 Test Street",
		Status:          status,
	}

	if err := db.Create(lead).Error; err != nil {
		t.Fatalf("failed to create test lead: %v", err)
	}

	return lead
}

// CreateTestJWTService creates a JWT service for testing
func CreateTestJWTService() *auth.JWTService {
	return auth.NewJWTService("test-secret-key-for-testing", 24*time.Hour)
}

// GenerateTestToken generates a valid JWT token for the given user
func GenerateTestToken(t *testing.T, jwtService *auth.JWTService, user *models.User) string {
	t.Helper()

	token, err := jwtService.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		t.Fatalf("failed to generate test token: %v", err)
	}

	return token
}

// AuthenticatedRequest creates an HTTP request with authentication
func AuthenticatedRequest(t *testing.T, method, path string, body interface{}, token string) *http.Request {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req
}

// ParseJSONResponse parses the response body into the given struct
func ParseJSONResponse(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()

	if err := json.Unmarshal(rr.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to parse response body: %v. Body: %s", err, rr.Body.String())
	}
}

// TestSetup holds the common handler-test dependencies: one admin, one
// broker, and tokens for both.
type TestSetup struct {
	DB          *gorm.DB
	JWTService  *auth.JWTService
	Admin       *models.User
	Broker      *models.User
	AdminToken  string
	BrokerToken string
}

// NewTestContext creates a complete test setup with DB, users and tokens.
func NewTestContext(t *testing.T) *TestSetup {
	t.Helper()

	db := SetupTestDB(t)
	jwtService := CreateTestJWTService()
	admin := CreateTestUser(t, db, "admin@example.com", models.RoleAdmin)
	broker := CreateTestUser(t, db, "broker@example.com", models.RoleBroker)

	return &TestSetup{
		DB:          db,
		JWTService:  jwtService,
		Admin:       admin,
		Broker:      broker,
		AdminToken:  GenerateTestToken(t, jwtService, admin),
		BrokerToken: GenerateTestToken(t, jwtService, broker),
	}
}
