// pkg/weather/client.go
//
// Open-Meteo current-conditions client for a field's center point.
// Like geocoding, weather is decorative: failure means "unavailable".
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

var codeDescriptions = map[int]string{
	0:  "Clear sky",
	1:  "Mainly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Fog",
	48: "Depositing rime fog",
	51: "Light drizzle",
	53: "Moderate drizzle",
	55: "Dense drizzle",
	56: "Freezing drizzle (light)",
	57: "Freezing drizzle (dense)",
	61: "Rain (slight)",
	63: "Rain (moderate)",
	65: "Rain (heavy)",
	66: "Freezing rain (light)",
	67: "Freezing rain (heavy)",
	71: "Snow fall (slight)",
	73: "Snow fall (moderate)",
	75: "Snow fall (heavy)",
	77: "Snow grains",
	80: "Rain showers (slight)",
	81: "Rain showers (moderate)",
	82: "Rain showers (violent)",
	85: "Snow showers (slight)",
	86: "Snow showers (heavy)",
	95: "Thunderstorm (slight or moderate)",
	96: "Thunderstorm with slight hail",
	99: "Thunderstorm with heavy hail",
}

// Describe maps an Open-Meteo weather code to a readable label.
func Describe(code int) string {
	if d, ok := codeDescriptions[code]; ok {
		return d
	}
	return fmt.Sprintf("Weather code %d", code)
}

type Current struct {
	TemperatureC  float64 `json:"temperature_c"`
	HumidityPct   float64 `json:"humidity_percent"`
	WindKPH       float64 `json:"wind_kph"`
	WindDirection float64 `json:"wind_direction_deg"`
	RainMM        float64 `json:"precipitation_mm"`
	CloudCoverPct float64 `json:"cloud_cover_percent"`
	Code          int     `json:"weather_code"`
	Description   string  `json:"description"`
	Time          string  `json:"time"`
}

type Client struct {
	base  string
	httpc *http.Client
}

func New(base string) *Client {
	return &Client{
		base:  strings.TrimRight(base, "/"),
		httpc: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Current(ctx context.Context, lat, lon float64) (*Current, error) {
	u := fmt.Sprintf(
		"%s/v1/forecast?latitude=%f&longitude=%f&current=temperature_2m,relative_humidity_2m,precipitation,cloud_cover,wind_speed_10m,wind_direction_10m,weather_code",
		c.base, lat, lon,
	)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather: status %d", resp.StatusCode)
	}

	var out struct {
		Current struct {
			Time          string  `json:"time"`
			Temperature   float64 `json:"temperature_2m"`
			Humidity      float64 `json:"relative_humidity_2m"`
			Precipitation float64 `json:"precipitation"`
			CloudCover    float64 `json:"cloud_cover"`
			WindSpeed     float64 `json:"wind_speed_10m"`
			WindDirection float64 `json:"wind_direction_10m"`
			WeatherCode   int     `json:"weather_code"`
		} `json:"current"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	cur := out.Current
	return &Current{
		TemperatureC:  cur.Temperature,
		HumidityPct:   cur.Humidity,
		WindKPH:       cur.WindSpeed,
		WindDirection: cur.WindDirection,
		RainMM:        cur.Precipitation,
		CloudCoverPct: cur.CloudCover,
		Code:          cur.WeatherCode,
		Description:   Describe(cur.WeatherCode),
		Time:          cur.Time,
	}, nil
}
