package stations

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/couchcryptid/metar-etl-service/internal/domain"
	"github.com/couchcryptid/metar-etl-service/internal/observability"
)

// Client implements domain.StationDirectory using the aviationweather.gov
// station info API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a station info client for the given endpoint.
func NewClient(baseURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		metrics:    metrics,
		logger:     logger,
	}
}

// LookupStation fetches metadata for one ICAO code. It returns
// domain.ErrStationNotFound when the API knows no such station.
func (c *Client) LookupStation(ctx context.Context, icao string) (domain.Station, error) {
	params := url.Values{
		"ids":    {strings.ToUpper(icao)},
		"format": {"json"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return domain.Station{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.StationAPIDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.StationRequests.WithLabelValues("error").Inc()
		return domain.Station{}, fmt.Errorf("station info request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNoContent, http.StatusNotFound:
		c.metrics.StationRequests.WithLabelValues("not_found").Inc()
		return domain.Station{}, domain.ErrStationNotFound
	default:
		c.metrics.StationRequests.WithLabelValues("error").Inc()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.Station{}, fmt.Errorf("station info API error: status %d: %s", resp.StatusCode, body)
	}

	var infos []stationInfo
	if err := json.NewDecoder(resp.Body).Decode(&infos); err != nil {
		c.metrics.StationRequests.WithLabelValues("error").Inc()
		return domain.Station{}, fmt.Errorf("decode response: %w", err)
	}

	for _, info := range infos {
		if strings.EqualFold(info.ICAO, icao) {
			c.metrics.StationRequests.WithLabelValues("success").Inc()
			return info.toStation(), nil
		}
	}
	c.metrics.StationRequests.WithLabelValues("not_found").Inc()
	return domain.Station{}, domain.ErrStationNotFound
}

// Station info API response type.

type stationInfo struct {
	ICAO    string  `json:"icaoId"`
	Site    string  `json:"site"`
	State   string  `json:"state"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Elev    float64 `json:"elev"` // metres
}

func (s stationInfo) toStation() domain.Station {
	return domain.Station{
		ICAO:       s.ICAO,
		Name:       s.Site,
		State:      s.State,
		Country:    s.Country,
		Lat:        s.Lat,
		Lon:        s.Lon,
		ElevationM: s.Elev,
	}
}
