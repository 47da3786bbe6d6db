// Package kolada is a client for the Kolada municipal statistics API with
// value validation and fallback across years.
//
// API documentation: https://github.com/Hypergene/kolada
package kolada

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/hazzler78/sd-motion-generator/internal/logger"
	"github.com/hazzler78/sd-motion-generator/internal/metrics"
)

// DefaultBaseURL is the public Kolada v2 endpoint.
const DefaultBaseURL = "https://api.kolada.se/v2"

// KPIDataPoint is one fetched indicator value. Never mutated after creation.
type KPIDataPoint struct {
	Value          float64 `json:"value"`
	Year           int     `json:"year"`
	MunicipalityID string  `json:"municipality_id"`
	KPIID          string  `json:"kpi_id"`
}

// KPIMetadata describes an indicator. Fetched once per id and cached for the
// process lifetime.
type KPIMetadata struct {
	ID                  string `json:"id"`
	Title               string `json:"title"`
	Description         string `json:"description"`
	HasMunicipalityData bool   `json:"has_municipality_data"`
	IsNumbered          bool   `json:"is_numbered"`
	OperatingArea       string `json:"operating_area"`
	Perspective         string `json:"perspective"`
}

// Config holds client configuration.
type Config struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	// RequestsPerSecond caps outbound requests. Zero means unlimited.
	RequestsPerSecond float64
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL:           DefaultBaseURL,
		UserAgent:         "sd-motion-generator/1.0",
		Timeout:           10 * time.Second,
		RequestsPerSecond: 10,
	}
}

// Client talks to the Kolada API. The metadata cache is owned by the client
// instance, not the package, so tests get isolation for free.
type Client struct {
	config     Config
	httpClient *http.Client
	limiter    *rate.Limiter

	metaMu   sync.RWMutex
	metadata map[string]KPIMetadata
}

// NewClient creates a client with the given configuration.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultConfig().UserAgent
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	return &Client{
		config:     cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    limiter,
		metadata:   make(map[string]KPIMetadata),
	}
}

// apiResponse is the envelope every Kolada endpoint shares.
type apiResponse struct {
	Count  int               `json:"count"`
	Values []json.RawMessage `json:"values"`
}

// flexYear decodes a year that arrives either as a JSON number or a string,
// under either the "year" or "period" key depending on API vintage.
type flexYear int

func (y *flexYear) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(b, `"`)
	n, err := strconv.Atoi(string(b))
	if err != nil {
		return fmt.Errorf("year field %q: %w", b, err)
	}
	*y = flexYear(n)
	return nil
}

// dataRecord is one row of the tabular response, decoded as a tagged
// variant: the newer schema nests values in a list, the older one carries a
// flat value. The first nested value wins when both are present.
type dataRecord struct {
	Year     int
	Value    float64
	HasValue bool
}

func (r *dataRecord) UnmarshalJSON(b []byte) error {
	var raw struct {
		Year   *flexYear `json:"year"`
		Period *flexYear `json:"period"`
		Value  *float64  `json:"value"`
		Values []struct {
			Value *float64 `json:"value"`
		} `json:"values"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	switch {
	case raw.Year != nil:
		r.Year = int(*raw.Year)
	case raw.Period != nil:
		r.Year = int(*raw.Period)
	}

	switch {
	case len(raw.Values) > 0:
		if raw.Values[0].Value != nil {
			r.Value = *raw.Values[0].Value
			r.HasValue = true
		}
	case raw.Value != nil:
		r.Value = *raw.Value
		r.HasValue = true
	}

	return nil
}

// get performs one API call and decodes the shared envelope.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values) (*apiResponse, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
		}
	}

	reqURL := c.config.BaseURL + "/" + endpoint
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.KoladaRequests.WithLabelValues(endpoint, "error").Inc()
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		metrics.KoladaRequests.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUpstream, resp.StatusCode)
	}

	var decoded apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		metrics.KoladaRequests.WithLabelValues(endpoint, "decode_error").Inc()
		return nil, fmt.Errorf("%w: decoding response: %v", ErrUpstream, err)
	}

	metrics.KoladaRequests.WithLabelValues(endpoint, "ok").Inc()
	return &decoded, nil
}

// Metadata fetches descriptive metadata for an indicator, serving repeated
// lookups from the in-process cache.
func (c *Client) Metadata(ctx context.Context, kpiID string) (KPIMetadata, error) {
	c.metaMu.RLock()
	meta, ok := c.metadata[kpiID]
	c.metaMu.RUnlock()
	if ok {
		return meta, nil
	}

	resp, err := c.get(ctx, "kpi/"+url.PathEscape(kpiID), nil)
	if err != nil {
		return KPIMetadata{}, err
	}
	if len(resp.Values) == 0 {
		return KPIMetadata{}, &InvalidKPIError{KPIID: kpiID}
	}

	if err := json.Unmarshal(resp.Values[0], &meta); err != nil {
		return KPIMetadata{}, fmt.Errorf("%w: decoding KPI metadata: %v", ErrUpstream, err)
	}

	c.metaMu.Lock()
	c.metadata[kpiID] = meta
	c.metaMu.Unlock()
	return meta, nil
}

// MunicipalityData fetches one indicator value for a municipality and year,
// validating both the indicator id and the plausibility of the value.
func (c *Client) MunicipalityData(ctx context.Context, kpiID, municipalityID string, year int) (KPIDataPoint, error) {
	if _, err := c.Metadata(ctx, kpiID); err != nil {
		return KPIDataPoint{}, err
	}

	params := url.Values{}
	params.Set("kpi", kpiID)
	params.Set("municipality", municipalityID)
	params.Set("year", strconv.Itoa(year))

	resp, err := c.get(ctx, "data/v1/kpi", params)
	if err != nil {
		return KPIDataPoint{}, err
	}
	if len(resp.Values) == 0 {
		return KPIDataPoint{}, &NoDataError{KPIID: kpiID, MunicipalityID: municipalityID, Year: year}
	}

	var record dataRecord
	if err := json.Unmarshal(resp.Values[0], &record); err != nil || !record.HasValue {
		logger.Debug("unusable data record", "kpi", kpiID, "year", year, "error", err)
		return KPIDataPoint{}, &NoDataError{KPIID: kpiID, MunicipalityID: municipalityID, Year: year}
	}

	if err := ValidateValue(kpiID, record.Value); err != nil {
		return KPIDataPoint{}, err
	}

	return KPIDataPoint{
		Value:          record.Value,
		Year:           year,
		MunicipalityID: municipalityID,
		KPIID:          kpiID,
	}, nil
}

// AvailableYears lists the years with published data for an indicator and
// municipality, most recent first.
func (c *Client) AvailableYears(ctx context.Context, kpiID, municipalityID string) ([]int, error) {
	params := url.Values{}
	params.Set("kpi", kpiID)
	params.Set("municipality", municipalityID)

	resp, err := c.get(ctx, "data/v1/kpi", params)
	if err != nil {
		return nil, err
	}

	seen := make(map[int]bool)
	var years []int
	for _, raw := range resp.Values {
		var record dataRecord
		if err := json.Unmarshal(raw, &record); err != nil || record.Year == 0 {
			continue
		}
		if !seen[record.Year] {
			seen[record.Year] = true
			years = append(years, record.Year)
		}
	}

	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years, nil
}
