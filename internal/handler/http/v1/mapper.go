package v1

import (
	"github.com/Ankursingh018as/public-pulse-ai-sub001/internal/models"
	"github.com/Ankursingh018as/public-pulse-ai-sub001/internal/service"
)

// DTOToIncidentDraft преобразует DTO подачи в черновик для сервиса
func DTOToIncidentDraft(dto SubmitIncidentRequest) *service.IncidentDraft {
	return &service.IncidentDraft{
		EventType:    models.EventType(dto.EventType),
		Description:  dto.Description,
		Latitude:     dto.Latitude,
		Longitude:    dto.Longitude,
		Severity:     dto.Severity,
		RadiusMeters: dto.RadiusMeters,
		Source:       models.IncidentSource(dto.Source),
		Token:        dto.ClientToken,
	}
}

// ModelToIncidentResponse преобразует доменную модель в DTO для ответа
func ModelToIncidentResponse(model *models.Incident) *IncidentResponse {
	return &IncidentResponse{
		ID:            model.ID,
		EventType:     string(model.EventType),
		Description:   model.Description,
		Latitude:      model.Latitude,
		Longitude:     model.Longitude,
		Severity:      model.Severity,
		RadiusMeters:  model.RadiusMeters,
		VerifiedCount: model.VerifiedCount,
		TrustScore:    model.TrustScore(),
		Status:        string(model.Status),
		Source:        string(model.Source),
		Resolved:      model.Resolved,
		PendingSync:   models.IsLocalID(model.ID),
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}

// ModelsToIncidentResponses преобразует слайс моделей в слайс DTO
func ModelsToIncidentResponses(models []*models.Incident) []*IncidentResponse {
	responses := make([]*IncidentResponse, len(models))
	for i, model := range models {
		responses[i] = ModelToIncidentResponse(model)
	}
	return responses
}

// ModelToPredictionResponse преобразует прогноз в DTO для ответа
func ModelToPredictionResponse(model *models.Prediction) *PredictionResponse {
	return &PredictionResponse{
		EventType:    string(model.EventType),
		AreaName:     model.AreaName,
		Latitude:     model.Latitude,
		Longitude:    model.Longitude,
		Probability:  model.Probability,
		Timeframe:    model.Timeframe,
		SeverityBand: string(model.SeverityBand),
		Trend:        string(model.Trend),
		Confidence:   model.Confidence,
		CreatedAt:    model.CreatedAt,
		ExpiresAt:    model.ExpiresAt,
	}
}

// ModelsToPredictionResponses преобразует слайс прогнозов в слайс DTO
func ModelsToPredictionResponses(models []*models.Prediction) []*PredictionResponse {
	responses := make([]*PredictionResponse, len(models))
	for i, model := range models {
		responses[i] = ModelToPredictionResponse(model)
	}
	return responses
}

// ModelToAlertResponse преобразует оповещение в DTO для ответа
func ModelToAlertResponse(model *models.Alert) *AlertResponse {
	return &AlertResponse{
		ID:              model.ID,
		Title:           model.Title,
		Message:         model.Message,
		Severity:        string(model.Severity),
		EventType:       string(model.EventType),
		AffectedArea:    model.AffectedArea,
		Recommendations: model.Recommendations,
		Confidence:      model.Confidence,
		Timestamp:       model.Timestamp,
	}
}

// ModelsToAlertResponses преобразует слайс оповещений в слайс DTO
func ModelsToAlertResponses(models []*models.Alert) []*AlertResponse {
	responses := make([]*AlertResponse, len(models))
	for i, model := range models {
		responses[i] = ModelToAlertResponse(model)
	}
	return responses
}

// StatusToResponse преобразует состояние синхронизации в DTO для ответа
func StatusToResponse(status service.SyncStatus) *SyncStatusResponse {
	resp := &SyncStatusResponse{
		Running:      status.Running,
		LastSyncAt:   status.LastSyncAt,
		LastError:    status.LastError,
		PendingCount: status.PendingCount,
	}
	for _, fw := range status.FailedWrites {
		resp.FailedWrites = append(resp.FailedWrites, FailedWriteResponse{
			WriteID:  fw.WriteID,
			Kind:     string(fw.Kind),
			TargetID: fw.TargetID,
			Reason:   fw.Reason,
			At:       fw.At,
		})
	}
	return resp
}

// StatsToResponse преобразует счётчики по типам в DTO для ответа
func StatsToResponse(counts map[models.EventType]int, windowMinutes int) *StatsResponse {
	resp := &StatsResponse{
		WindowMinutes: windowMinutes,
		Counts:        make(map[string]int, len(counts)),
	}
	for eventType, count := range counts {
		resp.Counts[string(eventType)] = count
	}
	return resp
}
