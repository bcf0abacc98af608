// Package geocoder resolves addresses into "POINT(lat lng)" coordinate strings.
package geocoder

import (
	"context"
	"errors"
)

var ErrNoResults = errors.New("geocoder: no results")

type Client interface {
	Geocode(ctx context.Context, address string) (string, error)
}
