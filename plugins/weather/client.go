package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"github.com/va6996/mcpchat/log"
)

const (
	DefaultBaseURL = "https://api.openweathermap.org/data/2.5"
	DefaultTimeout = 10 * time.Second
)

// Client handles OpenWeatherMap current-weather requests
type Client struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a new OpenWeatherMap client. Empty values fall back to
// the public endpoint and a 10 second timeout.
func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		APIKey:     apiKey,
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// Report is the current weather for a resolved place
type Report struct {
	Place       string
	Country     string
	TempC       json.Number
	Description string
	Humidity    int64
	WindSpeed   json.Number
}

// Current fetches the current weather for city in metric units. Errors are
// always *Failure.
func (c *Client) Current(ctx context.Context, city string) (*Report, error) {
	if c.APIKey == "" {
		return nil, &Failure{Kind: KindMissingKey, Err: ErrMissingAPIKey}
	}

	params := url.Values{}
	params.Set("q", city)
	params.Set("appid", c.APIKey)
	params.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/weather?"+params.Encode(), nil)
	if err != nil {
		return nil, &Failure{Kind: KindTransport, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	log.Debugf(ctx, "[Weather] Requesting current weather for %q", city)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &Failure{Kind: KindTransport, Err: redactKey(err, c.APIKey)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Failure{Kind: KindTransport, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := fmt.Sprintf("API request failed with status %s", resp.Status)
		if upstream := gjson.GetBytes(body, "message").String(); upstream != "" {
			msg += ": " + upstream
		}
		return nil, &Failure{Kind: KindStatus, StatusCode: resp.StatusCode, Err: fmt.Errorf("%s", msg)}
	}

	return parseReport(body)
}

func parseReport(body []byte) (*Report, error) {
	if !gjson.ValidBytes(body) {
		return nil, &Failure{Kind: KindDecode, Err: fmt.Errorf("failed to decode response: invalid JSON")}
	}

	fields := gjson.GetManyBytes(body,
		"name", "sys.country", "main.temp", "weather.0.description", "main.humidity", "wind.speed")
	names := []string{"name", "sys.country", "main.temp", "weather[0].description", "main.humidity", "wind.speed"}
	for i, f := range fields {
		if !f.Exists() {
			return nil, &Failure{Kind: KindDecode, Err: fmt.Errorf("failed to decode response: missing field %s", names[i])}
		}
	}

	return &Report{
		Place:       fields[0].String(),
		Country:     fields[1].String(),
		TempC:       numberText(fields[2]),
		Description: fields[3].String(),
		Humidity:    fields[4].Int(),
		WindSpeed:   numberText(fields[5]),
	}, nil
}

// numberText renders a JSON number keeping its kind: a float written as
// 15.0 stays 15.0, an integer stays 15.
func numberText(r gjson.Result) json.Number {
	text := strconv.FormatFloat(r.Float(), 'f', -1, 64)
	if strings.ContainsAny(r.Raw, ".eE") && !strings.Contains(text, ".") {
		text += ".0"
	}
	return json.Number(text)
}

// redactKey keeps the API key out of error strings that quote the URL.
func redactKey(err error, key string) error {
	if key == "" {
		return err
	}
	return fmt.Errorf("%s", strings.ReplaceAll(err.Error(), url.QueryEscape(key), "REDACTED"))
}
