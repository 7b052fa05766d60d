package geofence

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/sandeepkv93/locrem/internal/model"
)

const (
	DefaultRadiusMeters = 100.0
	earthRadiusMeters   = 6371000.0
)

var (
	ErrInvalidRegion = errors.New("geofence: invalid region")
	ErrNoCoordinates = errors.New("geofence: reminder has no coordinates")
	ErrStopped       = errors.New("geofence: monitor stopped")
)

type Transition string

const (
	TransitionEnter Transition = "enter"
	TransitionExit  Transition = "exit"
)

type Region struct {
	ID           string
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
}

func (r Region) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidRegion)
	}
	if err := model.ValidateLatitude(r.Latitude); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRegion, err)
	}
	if err := model.ValidateLongitude(r.Longitude); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRegion, err)
	}
	if math.IsNaN(r.RadiusMeters) || r.RadiusMeters < 0 {
		return fmt.Errorf("%w: radius %v", ErrInvalidRegion, r.RadiusMeters)
	}
	return nil
}

// RegionForReminder builds the region a saved reminder is watched with.
func RegionForReminder(r model.Reminder, radiusMeters float64) (Region, error) {
	if !r.HasCoordinates() {
		return Region{}, fmt.Errorf("%w: %s", ErrNoCoordinates, r.ID)
	}
	return Region{
		ID:           r.ID,
		Latitude:     *r.Latitude,
		Longitude:    *r.Longitude,
		RadiusMeters: radiusMeters,
	}, nil
}

// Fix is one reported device position.
type Fix struct {
	Latitude  float64
	Longitude float64
	At        time.Time
}

type Event struct {
	RegionID       string
	Transition     Transition
	Fix            Fix
	DistanceMeters float64
}

// DistanceMeters is the great-circle distance between two points.
func DistanceMeters(lat1, lng1, lat2, lng2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	return 2 * earthRadiusMeters * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
