package controllers_test

import (
	"net/http"
	"testing"
	"time"

	"dinepro-backend/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAnalyticsLoneVisit(t *testing.T) {
	r := setupTest(t)
	token := adminToken(t)

	w := doRequest(t, r, "POST", "/api/feedback", sampleSubmission(), "")
	requireStatus(t, w, http.StatusCreated)
	var created submitResp
	decodeBody(t, w, &created)

	w = doRequest(t, r, "GET", "/api/analytics?period=week", nil, token)
	requireStatus(t, w, http.StatusOK)

	var data services.AnalyticsData
	decodeBody(t, w, &data)
	assert.Equal(t, 1, data.TotalFeedback)
	assert.Equal(t, 0, data.Contacted)
	assert.InDelta(t, 4.7, data.AverageRating, 1e-9)
	assert.Equal(t, 0, data.ResponseRate)
	assert.Equal(t, "food quality", data.TopCategory)
	require.Len(t, data.WeeklyTrends, 1)
	require.Len(t, data.CategoryPerformance, 6)

	// Marking the feedback contacted moves the document-level buckets.
	w = doRequest(t, r, "PATCH", "/api/feedback/"+created.Feedback.ID+"/contact",
		map[string]string{"contactedBy": "Ravi"}, token)
	requireStatus(t, w, http.StatusOK)

	w = doRequest(t, r, "GET", "/api/analytics?period=week", nil, token)
	requireStatus(t, w, http.StatusOK)
	decodeBody(t, w, &data)
	assert.Equal(t, 1, data.Contacted)
	assert.Equal(t, 100, data.ResponseRate)
	assert.Equal(t, []services.VolumeBucket{
		{Name: "Contacted", Value: 1},
		{Name: "Pending", Value: 0},
	}, data.FeedbackVolume)
}

func TestGetAnalyticsWindow(t *testing.T) {
	r := setupTest(t)
	token := adminToken(t)
	now := time.Now().UTC()

	// One visit inside the week window, one outside it but inside the month.
	seedFeedback(t, "Rahul", "9000000001", []time.Time{now.AddDate(0, 0, -2)}, 4)
	seedFeedback(t, "Meera", "9000000002", []time.Time{now.AddDate(0, 0, -14)}, 2)

	var data services.AnalyticsData

	w := doRequest(t, r, "GET", "/api/analytics?period=week", nil, token)
	requireStatus(t, w, http.StatusOK)
	decodeBody(t, w, &data)
	assert.Equal(t, 1, data.TotalFeedback)
	assert.InDelta(t, 4.0, data.AverageRating, 1e-9)

	w = doRequest(t, r, "GET", "/api/analytics?period=month", nil, token)
	requireStatus(t, w, http.StatusOK)
	decodeBody(t, w, &data)
	assert.Equal(t, 2, data.TotalFeedback)
	assert.InDelta(t, 3.0, data.AverageRating, 1e-9)

	w = doRequest(t, r, "GET", "/api/analytics?period=year", nil, token)
	requireStatus(t, w, http.StatusBadRequest)
}
