package providers_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vehicleseizure/seizure-core/providers"
)

func TestNoVariants(t *testing.T) {
	ctx := context.Background()

	_, err := providers.NoGeolocation{}.CurrentPosition(ctx)
	assert.ErrorIs(t, err, providers.ErrUnavailable)

	_, err = providers.NoCamera{}.CapturePhoto(ctx)
	assert.ErrorIs(t, err, providers.ErrUnavailable)

	_, err = providers.NoGeocoder{}.Address(ctx, 12.97, 77.59)
	assert.ErrorIs(t, err, providers.ErrUnavailable)
}

type fixedGeo struct{ pos providers.Position }

func (f fixedGeo) CurrentPosition(context.Context) (providers.Position, error) {
	return f.pos, nil
}

func TestNewSet_FillsNilSlots(t *testing.T) {
	geo := fixedGeo{pos: providers.Position{Lat: 12.97, Lng: 77.59, Accuracy: 5}}
	set := providers.NewSet(geo, nil, nil)

	pos, err := set.Geolocation.CurrentPosition(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12.97, pos.Lat)

	_, err = set.Camera.CapturePhoto(context.Background())
	assert.ErrorIs(t, err, providers.ErrUnavailable)
	_, err = set.Geocoder.Address(context.Background(), 0, 0)
	assert.ErrorIs(t, err, providers.ErrUnavailable)
}
