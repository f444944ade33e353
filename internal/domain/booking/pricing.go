package booking

import (
	"math"
	"time"
)

// Fare schedule. The distance rate prices roughly RM 0.10 per 115 metres.
const (
	FlagRate                = 3.00
	DistanceRatePerKm       = 0.10 / 0.115
	AdvanceBookingSurcharge = 2.00
	NightLevyMultiplier     = 1.5

	nightLevyEndHour = 6
)

// FareParams holds the inputs for a fare calculation.
type FareParams struct {
	DistanceKm  float64
	ScheduledAt time.Time
	Now         time.Time
	TaxiType    TaxiType
}

// FareStrategy defines the interface for calculating trip fares.
type FareStrategy interface {
	// Calculate returns the fare in MYR, rounded to two decimal places.
	Calculate(params FareParams) float64
}

// MeteredFareStrategy implements the standard Teksi Laju fare schedule.
type MeteredFareStrategy struct{}

// NewMeteredFareStrategy creates a new MeteredFareStrategy.
func NewMeteredFareStrategy() *MeteredFareStrategy {
	return &MeteredFareStrategy{}
}

// Calculate computes the fare in MYR. The order of operations is pricing
// policy, not arithmetic convenience:
//
//  1. flag rate
//  2. plus the distance-proportional component
//  3. plus the advance-booking surcharge when the trip is scheduled on a
//     later calendar day
//  4. the accumulated total is then multiplied by the night levy when the
//     scheduled hour falls between midnight and 6am
//  5. plus the flat taxi-class surcharge, which escapes the levy
func (s *MeteredFareStrategy) Calculate(p FareParams) float64 {
	fare := FlagRate
	fare += p.DistanceKm * DistanceRatePerKm

	if IsAdvanceBooking(p.ScheduledAt, p.Now) {
		fare += AdvanceBookingSurcharge
	}

	if h := p.ScheduledAt.Hour(); h >= 0 && h < nightLevyEndHour {
		fare *= NightLevyMultiplier
	}

	fare += p.TaxiType.Surcharge()

	return Round2(fare)
}

// IsAdvanceBooking reports whether the scheduled time falls on a strictly
// later calendar day than now. The comparison walks year, month then
// day-of-month components, so a booking later the same day never counts.
func IsAdvanceBooking(scheduled, now time.Time) bool {
	if !scheduled.After(now) {
		return false
	}
	switch {
	case scheduled.Year() > now.Year():
		return true
	case scheduled.Month() > now.Month():
		return true
	case scheduled.Day() > now.Day():
		return true
	}
	return false
}

// Round2 rounds a monetary or distance value to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
