package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/BearBump/RouteBox/internal/geo"
	"github.com/BearBump/RouteBox/internal/integrations/geocoder"
	"github.com/pkg/errors"
)

// Client talks to a Nominatim-compatible /search endpoint.
type Client struct {
	baseURL     string
	userAgent   string
	countryCode string
	httpc       *http.Client
}

func New(baseURL, userAgent string) *Client {
	if baseURL == "" {
		baseURL = "https://nominatim.openstreetmap.org"
	}
	if userAgent == "" {
		userAgent = "routebox/1.0"
	}
	return &Client{
		baseURL:   baseURL,
		userAgent: userAgent,
		httpc: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// WithCountry restricts results to ISO 3166-1 alpha-2 codes, e.g. "br".
func (c *Client) WithCountry(code string) *Client {
	c.countryCode = code
	return c
}

type place struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func (c *Client) Geocode(ctx context.Context, address string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", errors.Wrap(err, "parse base url")
	}
	u.Path = "/search"
	q := u.Query()
	q.Set("q", address)
	q.Set("format", "jsonv2")
	q.Set("limit", "1")
	if c.countryCode != "" {
		q.Set("countrycodes", c.countryCode)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", errors.Wrap(err, "new request")
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "do request")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", fmt.Errorf("nominatim rate limit (429)")
	}
	if resp.StatusCode/100 != 2 {
		return "", fmt.Errorf("nominatim http %d", resp.StatusCode)
	}

	var places []place
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return "", errors.Wrap(err, "decode")
	}
	if len(places) == 0 {
		return "", errors.Wrapf(geocoder.ErrNoResults, "%q", address)
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return "", errors.Wrap(err, "parse lat")
	}
	lng, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return "", errors.Wrap(err, "parse lon")
	}
	return geo.Point{Lat: lat, Lng: lng}.String(), nil
}
