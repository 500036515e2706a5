package models

import (
	"errors"
	"time"
)

// BaseEntity is embedded by every record persisted by the hospital API.
// The server assigns all three fields; clients never send them on create.
type BaseEntity struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Entity is satisfied by any record embedding BaseEntity.
type Entity interface {
	GetID() string
}

func (b BaseEntity) GetID() string {
	return b.ID
}

// Validate checks the invariants the server is expected to uphold.
func (b BaseEntity) Validate() error {
	if b.ID == "" {
		return errors.New("entity has no id")
	}
	if b.UpdatedAt.Before(b.CreatedAt) {
		return errors.New("entity updatedAt precedes createdAt")
	}
	return nil
}

// APIResponse is the envelope every console endpoint responds with.
type APIResponse[T any] struct {
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
	Success bool   `json:"success"`
}

// OK wraps data in a successful envelope.
func OK[T any](data T) APIResponse[T] {
	return APIResponse[T]{Data: data, Success: true}
}

// Fail builds an error envelope with no data.
func Fail(message string) APIResponse[any] {
	return APIResponse[any]{Message: message, Success: false}
}

// Mutation tells the caller which collections went stale after a write.
// Services never refresh anything themselves.
type Mutation struct {
	Resource    string   `json:"resource"`
	ID          string   `json:"id"`
	Invalidates []string `json:"invalidates"`
}
