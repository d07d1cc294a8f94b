package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ankursingh018as/public-pulse-ai-sub001/internal/models"
	"github.com/Ankursingh018as/public-pulse-ai-sub001/internal/service"
)

// IncidentArchive - локальный архив сверенных инцидентов в PostgreSQL.
// Источник истины для актуальной ленты - объединённое представление в памяти,
// архив нужен для истории и статистики, переживающих перезапуск узла.
type IncidentArchive struct {
	db *pgxpool.Pool
}

func NewIncidentArchive(db *pgxpool.Pool) *IncidentArchive {
	return &IncidentArchive{db: db}
}

var _ service.Archive = (*IncidentArchive)(nil)

// UpsertIncidents записывает снимок объединённого представления в архив
func (r *IncidentArchive) UpsertIncidents(ctx context.Context, incidents []*models.Incident) error {
	batch := &pgx.Batch{}
	query := `
		INSERT INTO incident_archive
			(id, event_type, description, location, severity, radius_meters,
			 verified_count, status, source, resolved, created_at, updated_at)
		VALUES ($1, $2, $3, ST_SetSRID(ST_MakePoint($4, $5), 4326), $6, $7, $8, $9, $10, $11, $12, NOW())
		ON CONFLICT (id) DO UPDATE SET
			severity = EXCLUDED.severity,
			verified_count = EXCLUDED.verified_count,
			status = EXCLUDED.status,
			resolved = EXCLUDED.resolved,
			updated_at = NOW();
	`
	for _, inc := range incidents {
		batch.Queue(query,
			inc.ID,
			inc.EventType,
			inc.Description,
			inc.Longitude,
			inc.Latitude,
			inc.Severity,
			inc.RadiusMeters,
			inc.VerifiedCount,
			inc.Status,
			inc.Source,
			inc.Resolved,
			inc.CreatedAt,
		)
	}

	br := r.db.SendBatch(ctx, batch)
	defer br.Close()
	for range incidents {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to archive incident: %w", err)
		}
	}
	return nil
}

// DeleteIncident убирает из архива инцидент, заменённый каноническим серверным
// (локальный ID после подтверждения создания)
func (r *IncidentArchive) DeleteIncident(ctx context.Context, id string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM incident_archive WHERE id = $1;`, id); err != nil {
		return fmt.Errorf("failed to delete archived incident: %w", err)
	}
	return nil
}

// GetStats возвращает количество инцидентов по типам за окно в минутах
func (r *IncidentArchive) GetStats(ctx context.Context, minutes int) (map[models.EventType]int, error) {
	query := `
		SELECT event_type, COUNT(*)
		FROM incident_archive
		WHERE updated_at >= NOW() - ($1 * INTERVAL '1 minute')
		GROUP BY event_type;
	`
	rows, err := r.db.Query(ctx, query, minutes)
	if err != nil {
		return nil, fmt.Errorf("failed to get incident stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[models.EventType]int)
	for rows.Next() {
		var eventType models.EventType
		var count int
		if err := rows.Scan(&eventType, &count); err != nil {
			return nil, fmt.Errorf("failed to scan stats row: %w", err)
		}
		stats[eventType] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error stats iteration: %w", err)
	}
	return stats, nil
}
