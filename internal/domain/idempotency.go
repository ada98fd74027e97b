package domain

import "time"

// Idempotency is a recorded successful response for a previously processed
// create request, keyed by (scope, key). Scope is "<METHOD> <route>", so the
// same key may be reused across different endpoints. A live record lets the
// HTTP layer replay the original response without repeating the insert.
// RequestHash is the hex SHA-256 of the request body that produced it.
type Idempotency struct {
	ID          string    `gorm:"type:varchar(36);primaryKey"`
	Scope       string    `gorm:"type:varchar(255);not null;uniqueIndex:ux_scope_key,priority:1"`
	Key         string    `gorm:"type:varchar(255);not null;uniqueIndex:ux_scope_key,priority:2"`
	RequestHash string    `gorm:"type:varchar(64);not null;default:''"`
	Status      int       `gorm:"not null"`
	Body        []byte    `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime"`
	ExpiresAt   time.Time `gorm:"not null;index"`
}

// TableName implements the GORM tabler interface.
func (Idempotency) TableName() string { return "idempotency" }
