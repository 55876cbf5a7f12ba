package models

import "time"

// Operator is a CMS user allowed to call the admin API.
type Operator struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

type RefreshToken struct {
	ID         string
	OperatorID string
	Token      string
	Expires    time.Time
	CreatedAt  time.Time
}
