package model

import (
	"time"

	"github.com/google/uuid"
)

// HolidayDateLayout формат хранения даты праздника
const HolidayDateLayout = "2006-01-02"

type Holiday struct {
	ID        uuid.UUID `json:"_id"`
	Name      string    `json:"name"`
	Date      string    `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
