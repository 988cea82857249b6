package controllers

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"dinepro-backend/config"
	"dinepro-backend/models"
	"dinepro-backend/services"
	"dinepro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const duplicateSubmissionMessage = "You have already submitted feedback today. Thank you!"

// CreateFeedback handles a customer submission: validates the input, appends
// a Visit to the customer's Feedback ledger (creating it on first contact) and
// updates the Customer card. The two writes are independent; a crash between
// them can leave the card one visit behind until the next submission.
func CreateFeedback(c *gin.Context) {
	var input utils.SubmissionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if ferr := utils.ValidateSubmission(&input); ferr != nil {
		utils.RespondWithFieldError(c, http.StatusBadRequest, ferr)
		return
	}

	now := time.Now().UTC()
	visit := models.Visit{
		Location:     input.Location,
		DineType:     input.DineType,
		Ratings:      input.Ratings,
		Note:         input.Note,
		StaffName:    input.StaffName,
		StaffComment: input.StaffComment,
		CreatedAt:    now,
		DateKey:      utils.DateKey(now),
	}

	var feedback models.Feedback
	err := config.DB.Preload("Visits").
		Where("phone_number = ?", input.PhoneNumber).
		First(&feedback).Error

	switch {
	case err == nil:
		for _, existing := range feedback.Visits {
			if existing.DateKey == visit.DateKey {
				utils.RespondWithError(c, http.StatusConflict, duplicateSubmissionMessage)
				return
			}
		}

		visit.FeedbackID = feedback.ID
		if err := config.DB.Create(&visit).Error; err != nil {
			// Two same-day submissions can race past the scan above; the
			// unique index on (feedback_id, date_key) turns the loser into
			// a conflict instead of a silent double-write.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				utils.RespondWithError(c, http.StatusConflict, duplicateSubmissionMessage)
				return
			}
			utils.RespondWithServerError(c, "Failed to save feedback", err)
			return
		}

		// Display name is last-write-wins.
		if feedback.Name != input.Name {
			feedback.Name = input.Name
			if err := config.DB.Model(&feedback).Update("name", input.Name).Error; err != nil {
				utils.RespondWithServerError(c, "Failed to save feedback", err)
				return
			}
		}
		feedback.Visits = append(feedback.Visits, visit)

	case errors.Is(err, gorm.ErrRecordNotFound):
		feedback = models.Feedback{
			Name:        input.Name,
			PhoneNumber: input.PhoneNumber,
			Visits:      []models.Visit{visit},
		}
		if err := config.DB.Create(&feedback).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				utils.RespondWithError(c, http.StatusConflict, duplicateSubmissionMessage)
				return
			}
			utils.RespondWithServerError(c, "Failed to save feedback", err)
			return
		}

	default:
		utils.RespondWithServerError(c, "Database error", err)
		return
	}

	customer, err := upsertCustomer(&input, feedback.ID, now)
	if err != nil {
		utils.RespondWithServerError(c, "Failed to update customer record", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"feedback":     feedback,
		"customerCard": customer.Card(),
	})
}

func upsertCustomer(input *utils.SubmissionInput, feedbackID uuid.UUID, now time.Time) (*models.Customer, error) {
	var customer models.Customer
	err := config.DB.Where("phone_number = ?", input.PhoneNumber).First(&customer).Error

	switch {
	case err == nil:
		customer.Name = input.Name
		customer.TotalVisits++
		customer.LastVisitDate = now
		if customer.FeedbackID == uuid.Nil {
			customer.FeedbackID = feedbackID
		}
		if err := config.DB.Save(&customer).Error; err != nil {
			return nil, err
		}
		return &customer, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		customer = models.Customer{
			Name:           input.Name,
			PhoneNumber:    input.PhoneNumber,
			TotalVisits:    1,
			FirstVisitDate: now,
			LastVisitDate:  now,
			FeedbackID:     feedbackID,
		}
		if err := config.DB.Create(&customer).Error; err != nil {
			return nil, err
		}
		return &customer, nil

	default:
		return nil, err
	}
}

// GetFeedbacks lists feedback for the dashboard with search, date and rating
// filters plus pagination. Ordered by most recent visit first.
//
// Pagination totals differ by path on purpose: the unfiltered path counts
// matching documents in SQL before pagination, while the date/rating path
// counts the already-filtered list.
func GetFeedbacks(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 {
		limit = 10
	}

	search := strings.TrimSpace(c.Query("search"))
	dateFilter := c.Query("date")
	ratingFilter, _ := strconv.Atoi(c.Query("rating"))

	// Fresh chain per use; gorm statements are not reusable after a finisher.
	baseQuery := func() *gorm.DB {
		q := config.DB.Model(&models.Feedback{})
		if search != "" {
			like := "%" + strings.ToLower(search) + "%"
			q = q.Where("LOWER(name) LIKE ? OR LOWER(phone_number) LIKE ?", like, like)
		}
		return q
	}

	orderByLatestVisit := "(SELECT MAX(v.created_at) FROM visits v WHERE v.feedback_id = feedbacks.id) DESC"
	preloadVisitsDesc := func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at DESC")
	}

	if dateFilter == "" && ratingFilter == 0 {
		var total int64
		if err := baseQuery().Count(&total).Error; err != nil {
			utils.RespondWithServerError(c, "Failed to retrieve feedback", err)
			return
		}

		var feedbacks []models.Feedback
		err := baseQuery().Preload("Visits", preloadVisitsDesc).
			Order(orderByLatestVisit).
			Offset((page - 1) * limit).
			Limit(limit).
			Find(&feedbacks).Error
		if err != nil {
			utils.RespondWithServerError(c, "Failed to retrieve feedback", err)
			return
		}

		respondFeedbackPage(c, feedbacks, total, page, limit)
		return
	}

	var feedbacks []models.Feedback
	err := baseQuery().Preload("Visits", preloadVisitsDesc).
		Order(orderByLatestVisit).
		Find(&feedbacks).Error
	if err != nil {
		utils.RespondWithServerError(c, "Failed to retrieve feedback", err)
		return
	}

	filtered := make([]models.Feedback, 0, len(feedbacks))
	for _, fb := range feedbacks {
		if dateFilter != "" {
			// Only the visits for the requested date are returned; the
			// rest stay stored but hidden from this response.
			matching := make([]models.Visit, 0, 1)
			for _, visit := range fb.Visits {
				if visit.DateKey == dateFilter {
					matching = append(matching, visit)
				}
			}
			if len(matching) == 0 {
				continue
			}
			fb.Visits = matching
		}
		if ratingFilter != 0 && !matchesRating(fb, ratingFilter) {
			continue
		}
		filtered = append(filtered, fb)
	}

	total := int64(len(filtered))
	start := (page - 1) * limit
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + limit
	if end > len(filtered) {
		end = len(filtered)
	}

	respondFeedbackPage(c, filtered[start:end], total, page, limit)
}

// matchesRating keeps feedbacks whose most recent in-scope visit has a mean
// category score rounding to the requested value.
func matchesRating(fb models.Feedback, rating int) bool {
	if len(fb.Visits) == 0 {
		return false
	}
	sum := 0
	for _, v := range fb.Visits[0].Ratings.Values() {
		sum += v
	}
	mean := float64(sum) / 6.0
	return int(math.Round(mean)) == rating
}

func respondFeedbackPage(c *gin.Context, feedbacks []models.Feedback, total int64, page, limit int) {
	pages := int((total + int64(limit) - 1) / int64(limit))
	if feedbacks == nil {
		feedbacks = []models.Feedback{}
	}

	c.JSON(http.StatusOK, gin.H{
		"data": feedbacks,
		"pagination": gin.H{
			"total": total,
			"page":  page,
			"limit": limit,
			"pages": pages,
		},
	})
}

type markContactedInput struct {
	ContactedBy string `json:"contactedBy" binding:"required"`
}

// MarkContacted records that staff followed up on a feedback. Re-invoking
// overwrites the previous timestamp and staff name.
func MarkContacted(c *gin.Context) {
	feedbackID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid feedback ID format")
		return
	}

	var input markContactedInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var feedback models.Feedback
	if err := config.DB.Preload("Visits").First(&feedback, "id = ?", feedbackID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Feedback not found")
		} else {
			utils.RespondWithServerError(c, "Database error", err)
		}
		return
	}

	now := time.Now().UTC()
	updates := map[string]interface{}{
		"contacted_at": now,
		"contacted_by": input.ContactedBy,
	}
	if err := config.DB.Model(&feedback).Updates(updates).Error; err != nil {
		utils.RespondWithServerError(c, "Failed to update feedback", err)
		return
	}
	feedback.ContactedAt = &now
	feedback.ContactedBy = input.ContactedBy

	if notifier := services.NewNotifyService(); notifier.Enabled() {
		notifier.SendContactThanks(feedback.Name, feedback.PhoneNumber)
	}

	c.JSON(http.StatusOK, feedback)
}
