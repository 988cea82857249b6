package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"dinepro-backend/config"
	"dinepro-backend/models"
	"dinepro-backend/routes"
	"dinepro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTest wires the router to a fresh in-memory database and a known admin
// principal. Each test gets its own sqlite database, named after the test so
// parallel packages cannot collide.
func setupTest(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ADMIN_USERNAME", "admin")
	t.Setenv("ADMIN_PASSWORD", "letmein123")
	config.LoadAdmin()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Feedback{}, &models.Visit{}, &models.Customer{}))
	config.DB = db

	return routes.SetupRouter()
}

func adminToken(t *testing.T) string {
	t.Helper()
	token, err := utils.GenerateToken("admin")
	require.NoError(t, err)
	return token
}

func doRequest(t *testing.T, r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
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

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), "body: %s", w.Body.String())
}

// sampleSubmission is the worked example from the feedback form.
func sampleSubmission() map[string]interface{} {
	return map[string]interface{}{
		"name":        "A",
		"phoneNumber": "9123456789",
		"location":    "Shree Rath",
		"dineType":    "dine_in",
		"ratings": map[string]int{
			"foodQuality":   5,
			"foodTaste":     4,
			"staffBehavior": 5,
			"hygiene":       5,
			"ambience":      4,
			"serviceSpeed":  5,
		},
	}
}

type visitResp struct {
	Location  string         `json:"location"`
	DineType  string         `json:"dineType"`
	Ratings   models.Ratings `json:"ratings"`
	Note      string         `json:"note"`
	CreatedAt time.Time      `json:"createdAt"`
	DateKey   string         `json:"dateKey"`
}

type feedbackResp struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	PhoneNumber string      `json:"phoneNumber"`
	Visits      []visitResp `json:"visits"`
	ContactedAt *time.Time  `json:"contactedAt"`
	ContactedBy string      `json:"contactedBy"`
}

type submitResp struct {
	Feedback     feedbackResp        `json:"feedback"`
	CustomerCard models.CustomerCard `json:"customerCard"`
}

type listResp struct {
	Data       []feedbackResp `json:"data"`
	Pagination struct {
		Total int `json:"total"`
		Page  int `json:"page"`
		Limit int `json:"limit"`
		Pages int `json:"pages"`
	} `json:"pagination"`
}

type fieldErrorResp struct {
	Message string `json:"message"`
	Field   string `json:"field"`
}

// seedFeedback writes a ledger straight to the store, bypassing the HTTP
// submission path, for list/analytics fixtures.
func seedFeedback(t *testing.T, name, phone string, visitTimes []time.Time, score int) models.Feedback {
	t.Helper()

	visits := make([]models.Visit, 0, len(visitTimes))
	for _, vt := range visitTimes {
		visits = append(visits, models.Visit{
			Location: "Shree Rath",
			DineType: models.DineTypeDineIn,
			Ratings: models.Ratings{
				FoodQuality:   score,
				FoodTaste:     score,
				StaffBehavior: score,
				Hygiene:       score,
				Ambience:      score,
				ServiceSpeed:  score,
			},
			CreatedAt: vt,
			DateKey:   utils.DateKey(vt),
		})
	}

	fb := models.Feedback{Name: name, PhoneNumber: phone, Visits: visits}
	require.NoError(t, config.DB.Create(&fb).Error)
	return fb
}

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, w.Code, "body: %s", w.Body.String())
}
