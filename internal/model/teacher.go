package model

import (
	"time"

	"github.com/google/uuid"
)

// Teacher преподаватель, уникален в паре университет + программа
type Teacher struct {
	ID          uuid.UUID `json:"_id"`
	Name        string    `json:"name"`
	University  string    `json:"university"`
	Program     string    `json:"program"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber"`
	CreatedAt   time.Time `json:"createdAt"`
}
