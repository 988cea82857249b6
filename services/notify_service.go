package services

import (
	"log"
	"os"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// NotifyService sends the customer a thank-you SMS after staff mark their
// feedback as contacted. Sends are best-effort: a failure is logged and never
// retried, and never affects the admin request that triggered it.
type NotifyService struct {
	client      *twilio.RestClient
	from        string
	countryCode string
	enabled     bool
}

func NewNotifyService() *NotifyService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	countryCode := os.Getenv("TWILIO_COUNTRY_CODE")
	if countryCode == "" {
		countryCode = "+91"
	}

	return &NotifyService{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
		from:        os.Getenv("TWILIO_PHONE_NUMBER"),
		countryCode: countryCode,
		enabled:     accountSid != "",
	}
}

func (s *NotifyService) Enabled() bool {
	return s.enabled
}

// SendContactThanks messages the customer that their feedback was followed up.
// Phone numbers are stored as bare 10-digit strings, so the configured
// country code is prefixed for E.164.
func (s *NotifyService) SendContactThanks(name, phoneNumber string) {
	if !s.enabled {
		return
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(s.countryCode + phoneNumber)
	params.SetFrom(s.from)
	params.SetBody("Hi " + name + ", thank you for your feedback! Our team has reached out regarding your recent visit.")

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		log.Printf("Failed to send contact SMS to %s: %v", phoneNumber, err)
		return
	}
	if resp.Sid != nil {
		log.Printf("Contact SMS sent to %s, SID: %s", phoneNumber, *resp.Sid)
	} else {
		log.Printf("Contact SMS sent to %s, but no SID returned", phoneNumber)
	}
}
