package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer is the aggregate profile for one phone number. It is created with
// the first submission and only ever updated afterwards: name is
// last-write-wins, TotalVisits is monotonically increasing, FirstVisitDate is
// immutable after creation.
type Customer struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	PhoneNumber string    `gorm:"not null;uniqueIndex" json:"phoneNumber"`

	TotalVisits    int       `gorm:"default:0" json:"totalVisits"`
	FirstVisitDate time.Time `json:"firstVisitDate"`
	LastVisitDate  time.Time `json:"lastVisitDate"`

	// Reference to the customer's feedback ledger.
	FeedbackID uuid.UUID `gorm:"type:uuid;index" json:"feedbackId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Customer) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}

// CustomerCard is the summary view returned alongside a new submission.
type CustomerCard struct {
	TotalVisits    int       `json:"totalVisits"`
	FirstVisitDate time.Time `json:"firstVisitDate"`
	LastVisitDate  time.Time `json:"lastVisitDate"`
}

func (c *Customer) Card() CustomerCard {
	return CustomerCard{
		TotalVisits:    c.TotalVisits,
		FirstVisitDate: c.FirstVisitDate,
		LastVisitDate:  c.LastVisitDate,
	}
}
