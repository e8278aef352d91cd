package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/makweb/addressapi/internal/domain"
)

var tracer = otel.Tracer("gateway")

// NominatimGeocoder resolves addresses through a Nominatim compatible
// /search endpoint.
type NominatimGeocoder struct {
	client    *http.Client
	baseURL   string
	userAgent string
}

func NewNominatimGeocoder(baseURL, userAgent string, timeout time.Duration) *NominatimGeocoder {
	httpClient := &http.Client{
		Timeout: timeout,
	}
	g := &NominatimGeocoder{
		client:    httpClient,
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
	}
	httpClient.Transport = g
	return g
}

func (g *NominatimGeocoder) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", g.userAgent)
	req.Header.Set("Accept", "application/json")
	return http.DefaultTransport.RoundTrip(req)
}

type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

func (g *NominatimGeocoder) Lookup(ctx context.Context, formattedAddress string) (domain.GeoCoordinate, error) {
	ctx, span := tracer.Start(ctx, "Geocoder.Gateway.Lookup")
	defer span.End()
	span.SetAttributes(attribute.String("address", formattedAddress))

	query := url.Values{}
	query.Set("q", formattedAddress)
	query.Set("format", "json")
	query.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/search?"+query.Encode(), nil)
	if err != nil {
		span.RecordError(err)
		return domain.GeoCoordinate{}, fmt.Errorf("%w: %w", domain.ErrLookupFailed, err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		span.RecordError(err)
		return domain.GeoCoordinate{}, fmt.Errorf("%w: %w", domain.ErrLookupFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := errors.Wrap(domain.ErrLookupFailed, fmt.Sprintf("unexpected status code: %d", resp.StatusCode))
		span.RecordError(err)
		return domain.GeoCoordinate{}, err
	}

	var places []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		span.RecordError(err)
		return domain.GeoCoordinate{}, fmt.Errorf("%w: decode response: %w", domain.ErrLookupFailed, err)
	}
	if len(places) == 0 {
		return domain.GeoCoordinate{}, errors.Wrap(domain.ErrGeocodeNotFound, formattedAddress)
	}

	coord, err := places[0].coordinate()
	if err != nil {
		span.RecordError(err)
		return domain.GeoCoordinate{}, err
	}
	return coord, nil
}

func (p nominatimPlace) coordinate() (domain.GeoCoordinate, error) {
	lat, err := strconv.ParseFloat(p.Lat, 64)
	if err != nil {
		return domain.GeoCoordinate{}, errors.Wrapf(domain.ErrLookupFailed, "invalid latitude %q", p.Lat)
	}
	lon, err := strconv.ParseFloat(p.Lon, 64)
	if err != nil {
		return domain.GeoCoordinate{}, errors.Wrapf(domain.ErrLookupFailed, "invalid longitude %q", p.Lon)
	}
	if math.IsNaN(lat) || math.IsNaN(lon) || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return domain.GeoCoordinate{}, errors.Wrapf(domain.ErrLookupFailed, "coordinate out of range (%v, %v)", lat, lon)
	}
	return domain.GeoCoordinate{Latitude: lat, Longitude: lon}, nil
}
