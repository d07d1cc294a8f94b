package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// Утилита наполнения узла демонстрационными инцидентами через публичный API.
// Токены идемпотентности фиксированы, поэтому повторный запуск в коротком
// окне не плодит дубликатов.

type seedIncident struct {
	EventType   string  `json:"event_type"`
	Description string  `json:"description"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Severity    float64 `json:"severity"`
	ClientToken string  `json:"client_token"`
}

func demoIncidents() []seedIncident {
	return []seedIncident{
		{EventType: "traffic", Description: "Heavy congestion near Alkapuri circle", Latitude: 22.3105, Longitude: 73.1805, Severity: 0.7, ClientToken: "seed-traffic-alkapuri"},
		{EventType: "traffic", Description: "Signal failure at Sayajigunj junction", Latitude: 22.3102, Longitude: 73.1901, Severity: 0.6, ClientToken: "seed-traffic-sayajigunj"},
		{EventType: "water", Description: "Waterlogging on Waghodia road underpass", Latitude: 22.2903, Longitude: 73.2298, Severity: 0.8, ClientToken: "seed-water-waghodia"},
		{EventType: "water", Description: "Burst pipeline flooding the street", Latitude: 22.3201, Longitude: 73.1402, Severity: 0.65, ClientToken: "seed-water-gotri"},
		{EventType: "garbage", Description: "Overflowing bins near Makarpura market", Latitude: 22.2502, Longitude: 73.1898, Severity: 0.5, ClientToken: "seed-garbage-makarpura"},
		{EventType: "light", Description: "Street lights out along Gorwa main road", Latitude: 22.3301, Longitude: 73.1603, Severity: 0.55, ClientToken: "seed-light-gorwa"},
		{EventType: "road", Description: "Deep pothole near Karelibaug flyover", Latitude: 22.3099, Longitude: 73.2103, Severity: 0.6, ClientToken: "seed-road-karelibaug"},
		{EventType: "animals", Description: "Stray cattle blocking Manjalpur lane", Latitude: 22.2701, Longitude: 73.1902, Severity: 0.4, ClientToken: "seed-animals-manjalpur"},
	}
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "base URL of the edge node")
	apiKey := flag.String("api-key", "", "API key for the node (optional when auth is disabled)")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	httpClient := &http.Client{Timeout: 10 * time.Second}
	seeded := 0
	for _, inc := range demoIncidents() {
		if err := submit(httpClient, *baseURL, *apiKey, inc); err != nil {
			log.WithError(err).WithField("token", inc.ClientToken).Error("Failed to seed incident")
			continue
		}
		log.WithFields(logrus.Fields{
			"event_type": inc.EventType,
			"token":      inc.ClientToken,
		}).Info("Seeded incident")
		seeded++
	}

	log.WithField("seeded", seeded).Info("Seeding finished")
	if seeded == 0 {
		os.Exit(1)
	}
}

func submit(httpClient *http.Client, baseURL, apiKey string, inc seedIncident) error {
	body, err := json.Marshal(inc)
	if err != nil {
		return fmt.Errorf("failed to marshal incident: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, baseURL+"/api/v1/incidents", bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusAccepted:
		return nil
	case http.StatusConflict:
		// Повторный запуск: инцидент уже принят
		return nil
	default:
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
}
