package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "COMPLIANCE_OPT_OUT").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the shared implementation behind the constructors below.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

const (
	TypeComplianceOptOut      = "COMPLIANCE_OPT_OUT"
	TypeComplianceQuotaHit    = "COMPLIANCE_QUOTA_BLOCK"
	TypeComplianceTimeBlock   = "COMPLIANCE_TIME_BLOCK"
	TypeComplianceOptOutBlock = "COMPLIANCE_OPT_OUT_BLOCK"
	TypeMessageProcessed    = "MESSAGE_PROCESSED"
	TypeSessionTransferred  = "SESSION_TRANSFERRED"
	TypePaymentLinkCreated  = "PAYMENT_LINK_CREATED"
	TypePaymentSettled      = "PAYMENT_SETTLED"
	TypeCampaignReminder    = "CAMPAIGN_REMINDER_SENT"
)

func NewComplianceEvent(eventType, debtorID, channel, reason string) Event {
	return BaseEvent{
		Type: eventType,
		Data: map[string]interface{}{
			"debtor_id": debtorID,
			"channel":   channel,
			"reason":    reason,
		},
		OccurredAt: time.Now().UTC(),
	}
}

func NewMessageProcessed(sessionID, debtorID, channel, intent, backend string) Event {
	return BaseEvent{
		Type: TypeMessageProcessed,
		Data: map[string]interface{}{
			"session_id": sessionID,
			"debtor_id":  debtorID,
			"channel":    channel,
			"intent":     intent,
			"backend":    backend,
		},
		OccurredAt: time.Now().UTC(),
	}
}

func NewPaymentEvent(eventType, transactionID, debtAccountID string, amount float64) Event {
	return BaseEvent{
		Type: eventType,
		Data: map[string]interface{}{
			"transaction_id":  transactionID,
			"debt_account_id": debtAccountID,
			"amount":          amount,
		},
		OccurredAt: time.Now().UTC(),
	}
}
