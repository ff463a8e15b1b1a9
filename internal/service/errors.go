package service

import "errors"

var (
	ErrDebtorNotFound   = errors.New("debtor not found")
	ErrAccountNotFound  = errors.New("debt account not found")
	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionClosed    = errors.New("session is closed")
	ErrAgentNotFound    = errors.New("agent not found")
	ErrBadCredentials   = errors.New("invalid email or password")
	ErrEmailTaken       = errors.New("email already registered")
	ErrDuplicateAccount = errors.New("account number already registered")
)
