package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Ankursingh018as/public-pulse-ai-sub001/internal/models"
)

// ErrServerUnavailable - транзиентная ошибка сети/сервера (таймаут, 5xx,
// обрыв соединения). Запись остаётся в очереди и повторяется.
var ErrServerUnavailable = errors.New("central server unavailable")

// RejectedError - окончательный отказ сервера (4xx). Запись не повторяется,
// ошибка доводится до пользователя.
type RejectedError struct {
	StatusCode int
	Body       string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("server rejected request with status %d: %s", e.StatusCode, e.Body)
}

// IsRejected сообщает, является ли ошибка окончательным отказом сервера
func IsRejected(err error) bool {
	var re *RejectedError
	return errors.As(err, &re)
}

// VoteResult - обновлённые счётчики инцидента после голоса
type VoteResult struct {
	IncidentID    string  `json:"incident_id"`
	Severity      float64 `json:"severity"`
	VerifiedCount int     `json:"verified_count"`
}

// PulseClient - HTTP-клиент API центрального сервера Public Pulse.
// Каждый вызов ограничен таймаутом: зависший запрос считается транзиентной
// ошибкой и никогда не блокирует планировщик.
type PulseClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewPulseClient(baseURL, apiKey string, timeout time.Duration) *PulseClient {
	return &PulseClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ListIncidents запрашивает актуальный снимок инцидентов с сервера
func (c *PulseClient) ListIncidents(ctx context.Context) ([]*models.Incident, error) {
	var incidents []*models.Incident
	if err := c.do(ctx, http.MethodGet, "/api/v1/incidents", nil, &incidents); err != nil {
		return nil, err
	}
	return incidents, nil
}

// CreateIncident отправляет создание инцидента и возвращает каноническую
// запись с присвоенным сервером идентификатором
func (c *PulseClient) CreateIncident(ctx context.Context, payload *models.CreateIncidentPayload) (*models.Incident, error) {
	incident := &models.Incident{}
	if err := c.do(ctx, http.MethodPost, "/api/v1/incidents", payload, incident); err != nil {
		return nil, err
	}
	return incident, nil
}

// CastVote отправляет голос за инцидент и возвращает обновлённые счётчики
func (c *PulseClient) CastVote(ctx context.Context, incidentID string, payload *models.CastVotePayload) (*VoteResult, error) {
	result := &VoteResult{}
	path := fmt.Sprintf("/api/v1/incidents/%s/vote", incidentID)
	if err := c.do(ctx, http.MethodPost, path, payload, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *PulseClient) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Таймауты и сетевые ошибки - транзиентные
		return fmt.Errorf("%w: %v", ErrServerUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
		return nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &RejectedError{StatusCode: resp.StatusCode, Body: string(raw)}
	default:
		return fmt.Errorf("%w: status %d", ErrServerUnavailable, resp.StatusCode)
	}
}
