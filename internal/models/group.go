package models

import "github.com/google/uuid"

// Group is a named class of students
type Group struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"-"`
	Name   string    `json:"name" validate:"required,max=120"`
}
