package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Ankursingh018as/public-pulse-ai-sub001/pkg/cache"
)

const weatherCacheKey = "weather:current"

// WeatherSignal - кэшируемый внешний сигнал погоды для движка прогнозов
type WeatherSignal struct {
	RainProbability float64   `json:"rain_probability"`
	RainMM          float64   `json:"rain_mm"`
	HumidityPercent int       `json:"humidity_percent"`
	TemperatureC    float64   `json:"temperature_c"`
	Conditions      string    `json:"conditions"`
	FetchedAt       time.Time `json:"fetched_at"`
}

// WeatherClient запрашивает текущую погоду у OpenWeatherMap и кэширует ответ.
// Устаревание в пределах окна кэша допустимо; при недоступности API
// отдаются последние известные данные, затем нейтральный сигнал.
type WeatherClient struct {
	apiKey     string
	lat, lon   float64
	baseURL    string
	httpClient *http.Client
	cache      *cache.Cache
}

func NewWeatherClient(apiKey string, lat, lon float64, cacheTTL time.Duration) *WeatherClient {
	return &WeatherClient{
		apiKey:  apiKey,
		lat:     lat,
		lon:     lon,
		baseURL: "https://api.openweathermap.org",
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		cache: cache.New(cacheTTL),
	}
}

// CurrentSignal возвращает сигнал погоды, из кэша либо свежий
func (c *WeatherClient) CurrentSignal(ctx context.Context) (*WeatherSignal, error) {
	signal := &WeatherSignal{}
	found, err := c.cache.Get(weatherCacheKey, signal)
	if err == nil && found {
		return signal, nil
	}

	signal, err = c.fetch(ctx)
	if err != nil {
		// Деградация: устаревший кэш лучше отсутствия сигнала
		stale := &WeatherSignal{}
		if gotStale, staleErr := c.cache.GetStale(weatherCacheKey, stale); staleErr == nil && gotStale {
			return stale, nil
		}
		return nil, err
	}

	if err := c.cache.Set(weatherCacheKey, signal); err != nil {
		return signal, nil
	}
	return signal, nil
}

// Refresh принудительно обновляет кэш (используется периодической задачей)
func (c *WeatherClient) Refresh(ctx context.Context) error {
	signal, err := c.fetch(ctx)
	if err != nil {
		return err
	}
	return c.cache.Set(weatherCacheKey, signal)
}

func (c *WeatherClient) fetch(ctx context.Context) (*WeatherSignal, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("OpenWeatherMap API key not configured")
	}

	params := url.Values{}
	params.Set("lat", fmt.Sprintf("%.4f", c.lat))
	params.Set("lon", fmt.Sprintf("%.4f", c.lon))
	params.Set("appid", c.apiKey)
	params.Set("units", "metric")

	requestURL := fmt.Sprintf("%s/data/2.5/weather?%s", c.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create weather request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute weather request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("weather API error %d: %s", resp.StatusCode, string(body))
	}

	var response openWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode weather response: %w", err)
	}

	signal := &WeatherSignal{
		HumidityPercent: response.Main.Humidity,
		TemperatureC:    response.Main.Temp,
		FetchedAt:       time.Now(),
	}
	if len(response.Weather) > 0 {
		signal.Conditions = response.Weather[0].Description
	}
	if response.Rain != nil {
		signal.RainMM = response.Rain.OneHour
	}
	signal.RainProbability = rainProbabilityFromMM(signal.RainMM, signal.HumidityPercent)
	return signal, nil
}

// rainProbabilityFromMM нормализует миллиметры осадков за час в вероятность
// дождя [0,1]; при отсутствии осадков влажность даёт слабый фон.
func rainProbabilityFromMM(mm float64, humidity int) float64 {
	if mm > 0 {
		p := 0.5 + mm/10.0
		if p > 1 {
			return 1
		}
		return p
	}
	if humidity >= 85 {
		return 0.3
	}
	if humidity >= 70 {
		return 0.15
	}
	return 0.05
}

type openWeatherResponse struct {
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Rain *struct {
		OneHour float64 `json:"1h"`
	} `json:"rain,omitempty"`
}
