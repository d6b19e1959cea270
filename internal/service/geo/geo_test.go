package geo

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"

	serviceErrors "github.com/danilovkiri/dk_go_searoute/internal/service/errors"
)

// Tests

func TestBearing(t *testing.T) {
	tests := []struct {
		name     string
		p1       orb.Point
		p2       orb.Point
		expected float64
	}{
		{
			name:     "due north",
			p1:       orb.Point{0, 0},
			p2:       orb.Point{0, 10},
			expected: 0.0,
		},
		{
			name:     "due east",
			p1:       orb.Point{0, 0},
			p2:       orb.Point{10, 0},
			expected: 90.0,
		},
		{
			name:     "due south",
			p1:       orb.Point{0, 10},
			p2:       orb.Point{0, 0},
			expected: 180.0,
		},
		{
			name:     "due west",
			p1:       orb.Point{10, 0},
			p2:       orb.Point{0, 0},
			expected: 270.0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Bearing(tt.p1, tt.p2), 0.01)
		})
	}
}

func TestAngularDiff(t *testing.T) {
	tests := []struct {
		name     string
		a        float64
		b        float64
		expected float64
	}{
		{name: "identical", a: 45.0, b: 45.0, expected: 0.0},
		{name: "simple", a: 10.0, b: 50.0, expected: 40.0},
		{name: "wrap around zero", a: 350.0, b: 10.0, expected: 20.0},
		{name: "opposite", a: 0.0, b: 180.0, expected: 180.0},
		{name: "above 180", a: 0.0, b: 190.0, expected: 170.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, AngularDiff(tt.a, tt.b), 0.0001)
		})
	}
}

func TestDistance(t *testing.T) {
	// one degree of latitude along a meridian is about 111.2 km
	p1 := orb.Point{0, 0}
	p2 := orb.Point{0, 1}
	assert.InDelta(t, 111.2, DistanceKm(p1, p2), 1.0)
	assert.InDelta(t, 111.2*0.539957, Distance(p1, p2, UnitsNaut), 1.0)
	assert.InDelta(t, 111.2*0.621371, Distance(p1, p2, UnitsMi), 1.0)
}

func TestDurationHours(t *testing.T) {
	// a 240 naut leg at 24 knots takes 10 hours regardless of requested units
	assert.InDelta(t, 10.0, DurationHours(240.0, UnitsNaut, 24.0), 0.001)
	assert.InDelta(t, 10.0, DurationHours(240.0/0.539957, UnitsKm, 24.0), 0.001)
	assert.InDelta(t, 10.0, DurationHours(240.0/0.539957*0.621371, UnitsMi, 24.0), 0.01)
	assert.Equal(t, 0.0, DurationHours(100.0, UnitsNaut, 0))
}

func TestValidateUnits(t *testing.T) {
	assert.NoError(t, ValidateUnits(UnitsNaut))
	assert.NoError(t, ValidateUnits(UnitsKm))
	assert.NoError(t, ValidateUnits(UnitsMi))
	var unknownUnitsError *serviceErrors.ServiceUnknownUnits
	assert.ErrorAs(t, ValidateUnits("furlong"), &unknownUnitsError)
}

func TestValidatePoint(t *testing.T) {
	var coordError *serviceErrors.ServiceIncorrectCoordinates
	assert.NoError(t, ValidatePoint(orb.Point{0, 0}))
	assert.NoError(t, ValidatePoint(orb.Point{-180, -90}))
	assert.ErrorAs(t, ValidatePoint(orb.Point{0, 91}), &coordError)
	assert.ErrorAs(t, ValidatePoint(orb.Point{181, 0}), &coordError)
}

func TestLineLength(t *testing.T) {
	line := orb.LineString{{0, 0}, {0, 1}, {0, 2}}
	assert.InDelta(t, 2*111.2, LineLength(line, UnitsKm), 2.0)
}
