// Package providers declares the device capability interfaces the core
// consumes. Implementations are selected once at startup instead of
// probing for globals at call time; hosts without a capability get the
// No variants.
package providers

import (
	"context"
	"errors"
)

// ErrUnavailable reports a capability the host does not provide.
var ErrUnavailable = errors.New("providers: capability unavailable")

// Position is a device GPS fix, stored verbatim on report coordinates.
type Position struct {
	Lat      float64
	Lng      float64
	Accuracy float64
}

// GeolocationProvider yields the device position.
type GeolocationProvider interface {
	CurrentPosition(ctx context.Context) (Position, error)
}

// CameraProvider captures a photo as a base64 data URI.
type CameraProvider interface {
	CapturePhoto(ctx context.Context) (string, error)
}

// ReverseGeocoder resolves coordinates to a human-readable address.
// Callers fall back to manual entry when it fails.
type ReverseGeocoder interface {
	Address(ctx context.Context, lat, lng float64) (string, error)
}

// NoGeolocation is the fallback for hosts without GPS.
type NoGeolocation struct{}

// CurrentPosition always reports the capability as unavailable.
func (NoGeolocation) CurrentPosition(context.Context) (Position, error) {
	return Position{}, ErrUnavailable
}

// NoCamera is the fallback for hosts without a camera.
type NoCamera struct{}

// CapturePhoto always reports the capability as unavailable.
func (NoCamera) CapturePhoto(context.Context) (string, error) {
	return "", ErrUnavailable
}

// NoGeocoder is the fallback when no geocoding service is configured.
type NoGeocoder struct{}

// Address always reports the capability as unavailable.
func (NoGeocoder) Address(context.Context, float64, float64) (string, error) {
	return "", ErrUnavailable
}

// Set bundles the selected providers for handing to page initializers.
type Set struct {
	Geolocation GeolocationProvider
	Camera      CameraProvider
	Geocoder    ReverseGeocoder
}

// NewSet fills nil slots with the No variants so callers never branch on
// capability presence.
func NewSet(geo GeolocationProvider, cam CameraProvider, geocoder ReverseGeocoder) Set {
	if geo == nil {
		geo = NoGeolocation{}
	}
	if cam == nil {
		cam = NoCamera{}
	}
	if geocoder == nil {
		geocoder = NoGeocoder{}
	}
	return Set{Geolocation: geo, Camera: cam, Geocoder: geocoder}
}
