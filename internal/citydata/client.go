package citydata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"restconnect-service/internal/observability"
)

// ErrUnavailable covers transport errors, non-2xx statuses, and undecodable
// bodies from the city data endpoints.
var ErrUnavailable = errors.New("city data unavailable")

// Toilet is one public toilet record. Field names follow the upstream
// payload verbatim.
type Toilet struct {
	ToiletID       int     `json:"Toilet_ID"`
	Location       string  `json:"Location"`
	Male           string  `json:"male"`
	Female         string  `json:"female"`
	Wheelchair     string  `json:"wheelchair"`
	BabyFacilities string  `json:"baby_facil"`
	Lat            float64 `json:"lat"`
	Lon            float64 `json:"lon"`
}

// OpenSpace is one park or reserve record.
type OpenSpace struct {
	ParkName  string  `json:"PARK_NAME"`
	LGA       string  `json:"LGA"`
	Category  string  `json:"OS_CATEGORY"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CrimeStat is the per-LGA offence breakdown and safety index.
type CrimeStat struct {
	LGA                            string  `json:"LGA"`
	CrimesAgainstThePerson         float64 `json:"Crimes_against_the_person"`
	PropertyAndDeceptionOffences   float64 `json:"Property_and_deception_offences"`
	DrugOffences                   float64 `json:"Drug_offences"`
	PublicOrderAndSecurityOffences float64 `json:"Public_order_and_security_offences"`
	JusticeProceduresOffences      float64 `json:"Justice_procedures_offences"`
	OtherOffences                  float64 `json:"Other_offences"`
	SafetyIndex                    float64 `json:"Safety_Index"`
}

// Source provides the three upstream datasets the map and statistics pages
// consume.
type Source interface {
	Toilets(ctx context.Context) ([]Toilet, error)
	OpenSpaces(ctx context.Context) ([]OpenSpace, error)
	CrimeStats(ctx context.Context) ([]CrimeStat, error)
}

// Client fetches city datasets from the upstream gateway. Each endpoint
// returns a gateway envelope whose body field is a JSON string holding the
// actual document.
type Client struct {
	baseURL    string
	httpClient *http.Client
	metrics    *observability.Metrics
	log        zerolog.Logger
}

func NewClient(baseURL string, timeout time.Duration, metrics *observability.Metrics, log zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics: metrics,
		log:     log,
	}
}

type envelope struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

func (c *Client) Toilets(ctx context.Context) ([]Toilet, error) {
	var doc struct {
		Toilets []Toilet `json:"toilets"`
	}
	if err := c.fetch(ctx, "/get_public_toilets", "toilets", &doc); err != nil {
		return nil, err
	}
	return doc.Toilets, nil
}

func (c *Client) OpenSpaces(ctx context.Context) ([]OpenSpace, error) {
	var doc struct {
		OpenSpaces []OpenSpace `json:"open_spaces"`
	}
	if err := c.fetch(ctx, "/get_open_spaces", "open_spaces", &doc); err != nil {
		return nil, err
	}
	return doc.OpenSpaces, nil
}

func (c *Client) CrimeStats(ctx context.Context) ([]CrimeStat, error) {
	var doc struct {
		SafetyInfo []CrimeStat `json:"safety_info"`
	}
	if err := c.fetch(ctx, "/get_crime_data", "crime", &doc); err != nil {
		return nil, err
	}
	return doc.SafetyInfo, nil
}

func (c *Client) fetch(ctx context.Context, path, dataset string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create city data request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.CityDataRequests.WithLabelValues(dataset, "error").Inc()
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.metrics.CityDataRequests.WithLabelValues(dataset, "error").Inc()
		c.log.Warn().
			Str("dataset", dataset).
			Int("status", resp.StatusCode).
			Bytes("body", body).
			Msg("city data endpoint returned non-OK status")
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		c.metrics.CityDataRequests.WithLabelValues(dataset, "error").Inc()
		return fmt.Errorf("%w: decode envelope: %v", ErrUnavailable, err)
	}
	if err := json.Unmarshal([]byte(env.Body), out); err != nil {
		c.metrics.CityDataRequests.WithLabelValues(dataset, "error").Inc()
		return fmt.Errorf("%w: decode %s body: %v", ErrUnavailable, dataset, err)
	}

	c.metrics.CityDataRequests.WithLabelValues(dataset, "success").Inc()
	return nil
}
