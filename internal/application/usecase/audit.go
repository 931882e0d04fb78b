package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/nexus-inventory/internal/application/dto"
	"github.com/jhoicas/nexus-inventory/internal/domain"
	"github.com/jhoicas/nexus-inventory/internal/domain/entity"
	"github.com/jhoicas/nexus-inventory/internal/domain/repository"
)

// maxAuditDetails longitud máxima de details en la bitácora.
const maxAuditDetails = 1000

// AuditLogUseCase lectura de la bitácora. Las escrituras ocurren dentro de las transacciones de mutación.
type AuditLogUseCase struct {
	repo repository.AuditLogRepository
}

// NewAuditLogUseCase construye el caso de uso.
func NewAuditLogUseCase(repo repository.AuditLogRepository) *AuditLogUseCase {
	return &AuditLogUseCase{repo: repo}
}

// Recent devuelve las entradas más recientes primero; limit se acota a [1, 200].
func (uc *AuditLogUseCase) Recent(ctx context.Context, limit int) ([]*entity.AuditLogEntry, error) {
	list, err := uc.repo.ListRecent(ctx, dto.ClampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("audit: listar: %w", err)
	}
	return list, nil
}

func requireActor(actor *entity.AppUser) error {
	if actor == nil || actor.ID == "" {
		return domain.Detail(domain.ErrUnauthorized, "Authentication required")
	}
	return nil
}

func newAuditEntry(actor *entity.AppUser, action, entityType, entityID, description string, details *string, now time.Time) *entity.AuditLogEntry {
	id := entityID
	return &entity.AuditLogEntry{
		ID:              newID(),
		UserID:          actor.ID,
		UserEmail:       actor.Email,
		UserDisplayName: actor.DisplayName,
		ActionType:      action,
		EntityType:      entityType,
		EntityID:        &id,
		Description:     description,
		Details:         truncateDetails(details),
		CreatedAt:       now,
	}
}

func truncateDetails(s *string) *string {
	if s == nil {
		return nil
	}
	r := []rune(*s)
	if len(r) <= maxAuditDetails {
		return s
	}
	t := string(r[:maxAuditDetails])
	return &t
}
