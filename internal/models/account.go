package models

import "time"

// Account is a registered user of the ledger.
type Account struct {
	ID           string
	Email        string
	PasswordHash string
	// ActiveToken is the only session token currently accepted for the account.
	// Empty means no session has been issued yet.
	ActiveToken string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
