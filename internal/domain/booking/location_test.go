package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teksi-laju/service-booking/internal/domain"
)

func TestCoordinate_Validate(t *testing.T) {
	assert.NoError(t, Coordinate{Lat: 3.1390, Lng: 101.6869}.Validate())
	assert.NoError(t, Coordinate{Lat: 90, Lng: 180}.Validate())
	assert.NoError(t, Coordinate{Lat: -90, Lng: -180}.Validate())

	err := Coordinate{Lat: 90.1, Lng: 0}.Validate()
	assert.True(t, domain.IsCode(err, domain.CodeValidation))

	err = Coordinate{Lat: 0, Lng: -180.1}.Validate()
	assert.True(t, domain.IsCode(err, domain.CodeValidation))
}

func TestCoordinate_String(t *testing.T) {
	c := Coordinate{Lat: 3.1390, Lng: 101.6869}
	assert.Equal(t, "3.13900, 101.68690", c.String())
}

func TestNewLocation(t *testing.T) {
	loc, err := NewLocation("KL Sentral", "KL Sentral, Kuala Lumpur", Coordinate{Lat: 3.1390, Lng: 101.6869})
	require.NoError(t, err)
	assert.Equal(t, "KL Sentral", loc.Name)
	assert.Equal(t, "KL Sentral, Kuala Lumpur", loc.Address)

	_, err = NewLocation("bad", "bad", Coordinate{Lat: 200, Lng: 0})
	assert.True(t, domain.IsCode(err, domain.CodeValidation))
}

func TestNewCoordinateLocation(t *testing.T) {
	loc, err := NewCoordinateLocation(Coordinate{Lat: 3.1073, Lng: 101.5951})
	require.NoError(t, err)
	assert.Equal(t, "3.10730, 101.59510", loc.Name)
	assert.Equal(t, loc.Name, loc.Address)
}
