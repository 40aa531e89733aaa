package client

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a client does not exist.
var ErrNotFound = errors.New("client not found")

// Client is the buyer on an invoice: a person or company with a name and an
// RNC or cédula.
type Client struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	DocumentNumber string    `json:"documentNumber,omitempty"`
	Email          string    `json:"email,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
