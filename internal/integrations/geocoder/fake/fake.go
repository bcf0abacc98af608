package fake

import (
	"context"
	"hash/fnv"
	"strings"

	"github.com/BearBump/RouteBox/internal/geo"
)

// Client returns a deterministic point inside the São Paulo metro area for
// any address, so local runs get estimates without network access.
type Client struct{}

func New() *Client { return &Client{} }

func (Client) Geocode(_ context.Context, address string) (string, error) {
	h := fnv.New64a()
	_, _ = h.Write([]byte(strings.ToLower(strings.TrimSpace(address))))
	v := h.Sum64()

	lat := -23.80 + float64(v%10000)/10000*0.60
	lng := -46.90 + float64((v/10000)%10000)/10000*0.70
	return geo.Point{Lat: lat, Lng: lng}.String(), nil
}
