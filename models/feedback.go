package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Feedback is the lifetime ledger of one customer's submissions, keyed by
// phone number. One row per phone number; every submission appends a Visit.
type Feedback struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	PhoneNumber string    `gorm:"not null;uniqueIndex" json:"phoneNumber"`

	Visits []Visit `gorm:"foreignKey:FeedbackID" json:"visits"`

	ContactedAt *time.Time `json:"contactedAt,omitempty"`
	ContactedBy string     `json:"contactedBy,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (f *Feedback) BeforeCreate(tx *gorm.DB) (err error) {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return
}

// Ratings holds the six per-visit category scores, each 1-5.
type Ratings struct {
	FoodQuality   int `gorm:"not null" json:"foodQuality"`
	FoodTaste     int `gorm:"not null" json:"foodTaste"`
	StaffBehavior int `gorm:"not null" json:"staffBehavior"`
	Hygiene       int `gorm:"not null" json:"hygiene"`
	Ambience      int `gorm:"not null" json:"ambience"`
	ServiceSpeed  int `gorm:"not null" json:"serviceSpeed"`
}

// RatingCategories is the declared category order. Tie-breaking and reporting
// both follow this order.
var RatingCategories = []string{
	"foodQuality", "foodTaste", "staffBehavior", "hygiene", "ambience", "serviceSpeed",
}

// Values returns the scores in RatingCategories order.
func (r Ratings) Values() []int {
	return []int{r.FoodQuality, r.FoodTaste, r.StaffBehavior, r.Hygiene, r.Ambience, r.ServiceSpeed}
}

// Visit is one submission event. The unique index on (feedback_id, date_key)
// enforces at most one visit per customer per UTC calendar day even when two
// submissions race past the application-level check.
type Visit struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	FeedbackID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_feedback_date,priority:1" json:"-"`

	Location string `gorm:"not null" json:"location"`
	DineType string `gorm:"not null" json:"dineType"`

	Ratings Ratings `gorm:"embedded" json:"ratings"`

	Note         string `json:"note"`
	StaffName    string `json:"staffName"`
	StaffComment string `json:"staffComment"`

	CreatedAt time.Time `json:"createdAt"`
	DateKey   string    `gorm:"not null;uniqueIndex:idx_feedback_date,priority:2" json:"dateKey"`
}

func (v *Visit) BeforeCreate(tx *gorm.DB) (err error) {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return
}

const (
	DineTypeDineIn  = "dine_in"
	DineTypeTakeOut = "take_out"
)
