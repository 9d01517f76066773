package event

import (
	"strings"
	"time"

	"github.com/gabbai/backend/internal/domain/shared"
)

// Event represents one fundraising occasion (a Shabbat, a holiday, a
// dedication dinner). The Hebrew date string is derived from the
// Gregorian date at creation time and stored denormalized.
type Event struct {
	shared.BaseEntity
	Name          string    `gorm:"type:varchar(120);not null"`
	GregorianDate time.Time `gorm:"not null;index"`
	HebrewDate    string    `gorm:"type:varchar(100)"`
	Details       string    `gorm:"type:varchar(200)"` // Torah portion or holiday name
}

// TableName returns the table name for GORM
func (Event) TableName() string {
	return "events"
}

// NewEvent creates a new event
func NewEvent(name string, gregorianDate time.Time, hebrewDate, details string) (*Event, error) {
	if err := validateEventName(name); err != nil {
		return nil, err
	}

	return &Event{
		BaseEntity:    shared.NewBaseEntity(),
		Name:          strings.TrimSpace(name),
		GregorianDate: gregorianDate,
		HebrewDate:    hebrewDate,
		Details:       strings.TrimSpace(details),
	}, nil
}

// Update updates the event's fields
func (e *Event) Update(name string, gregorianDate time.Time, hebrewDate, details string) error {
	if err := validateEventName(name); err != nil {
		return err
	}

	e.Name = strings.TrimSpace(name)
	e.GregorianDate = gregorianDate
	e.HebrewDate = hebrewDate
	e.Details = strings.TrimSpace(details)
	e.UpdatedAt = time.Now()
	return nil
}

func validateEventName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Event name cannot be empty")
	}
	if len(name) > 120 {
		return shared.NewDomainError("INVALID_NAME", "Event name cannot exceed 120 characters")
	}
	return nil
}
