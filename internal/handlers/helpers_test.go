package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/impostor-dev/impostor/db"
	"github.com/impostor-dev/impostor/internal/auth"
	"github.com/impostor-dev/impostor/internal/config"
	"github.com/impostor-dev/impostor/internal/models"
	"github.com/impostor-dev/impostor/internal/router"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// envelope mirrors the API response envelope with the data left raw.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func setupTest(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())

	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	db.DB = conn

	if err := db.MigrateDatabase(); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	cfg := config.Default()
	cfg.AvatarDir = t.TempDir()
	config.Active = cfg

	auth.SetJWTSecret("test-secret")

	return router.NewRouter()
}

func createUser(t *testing.T, name, email, role string) (*models.User, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Language:     "ca",
		IsActive:     true,
	}

	if err := db.DB.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	token, err := auth.IssueToken(db.DB, &user, "test-token")
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	return &user, token
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope

	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}

	return env
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()

	env := decodeEnvelope(t, w)

	if !env.Success {
		t.Fatalf("expected success envelope, got %q", w.Body.String())
	}

	if err := json.Unmarshal(env.Data, dest); err != nil {
		t.Fatalf("failed to decode data %q: %v", string(env.Data), err)
	}
}

func createCategory(t *testing.T, owner *models.User, name string, isDefault bool) *models.Category {
	t.Helper()

	category := models.Category{
		Name:      name,
		IsDefault: isDefault,
	}

	if owner != nil {
		category.UserID = &owner.ID
	}

	if err := db.DB.Create(&category).Error; err != nil {
		t.Fatalf("failed to create category: %v", err)
	}

	return &category
}

func createWord(t *testing.T, category *models.Category, text string) *models.Word {
	t.Helper()

	word := models.Word{Text: text, CategoryID: category.ID}

	if err := db.DB.Create(&word).Error; err != nil {
		t.Fatalf("failed to create word: %v", err)
	}

	return &word
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()

	if w.Code != want {
		t.Fatalf("expected status %d, got %d: %s", want, w.Code, w.Body.String())
	}
}
