package sms

import (
	"fmt"

	twilio "github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Sender delivers outbound SMS through Twilio.
type Sender struct {
	client *twilio.RestClient
	from   string
}

func NewSender(accountSID, authToken, fromNumber string) *Sender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &Sender{client: client, from: fromNumber}
}

// Send delivers one SMS and returns the Twilio message SID.
func (s *Sender) Send(to, body string) (string, error) {
	params := &openapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		return "", fmt.Errorf("twilio send: %w", err)
	}
	if resp.Sid == nil {
		return "", fmt.Errorf("twilio send: missing message sid")
	}
	return *resp.Sid, nil
}
