package model

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrTitleRequired    = errors.New("model: reminder title is required")
	ErrLocationRequired = errors.New("model: reminder location is required")
	ErrInvalidLatitude  = errors.New("model: invalid latitude")
	ErrInvalidLongitude = errors.New("model: invalid longitude")
)

// Reminder is the persisted record. Empty strings and nil coordinates mean the
// field was never set.
type Reminder struct {
	ID          string
	Title       string
	Description string
	Location    string
	Latitude    *float64
	Longitude   *float64
}

func NewID() string {
	return uuid.NewString()
}

// NewReminder fills in a fresh id when none is given.
func NewReminder(id, title, description, location string, lat, lng *float64) Reminder {
	if strings.TrimSpace(id) == "" {
		id = NewID()
	}
	return Reminder{
		ID:          id,
		Title:       title,
		Description: description,
		Location:    location,
		Latitude:    lat,
		Longitude:   lng,
	}
}

func (r Reminder) HasCoordinates() bool {
	return r.Latitude != nil && r.Longitude != nil
}

func (r Reminder) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return errors.New("model: reminder id is required")
	}
	if r.Title == "" {
		return ErrTitleRequired
	}
	if r.Location == "" {
		return ErrLocationRequired
	}
	if r.Latitude != nil {
		if err := ValidateLatitude(*r.Latitude); err != nil {
			return err
		}
	}
	if r.Longitude != nil {
		if err := ValidateLongitude(*r.Longitude); err != nil {
			return err
		}
	}
	return nil
}

func ValidateLatitude(v float64) error {
	if math.IsNaN(v) || v < -90 || v > 90 {
		return fmt.Errorf("%w: %v", ErrInvalidLatitude, v)
	}
	return nil
}

func ValidateLongitude(v float64) error {
	if math.IsNaN(v) || v < -180 || v > 180 {
		return fmt.Errorf("%w: %v", ErrInvalidLongitude, v)
	}
	return nil
}

// Float64 returns a pointer to v.
func Float64(v float64) *float64 {
	return &v
}

// PointOfInterest is a named map point a reminder can be anchored to.
type PointOfInterest struct {
	Name      string
	PlaceID   string
	Latitude  float64
	Longitude float64
}

func (p PointOfInterest) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("model: point of interest name is required")
	}
	if err := ValidateLatitude(p.Latitude); err != nil {
		return err
	}
	return ValidateLongitude(p.Longitude)
}
