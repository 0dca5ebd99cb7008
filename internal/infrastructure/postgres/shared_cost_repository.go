package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Check-karim/apartement-management-system-sub000/internal/domain/entity"
	"github.com/Check-karim/apartement-management-system-sub000/internal/domain/repository"
)

var _ repository.SharedCostRepository = (*SharedCostRepo)(nil)

// SharedCostRepo implementación de SharedCostRepository (usable con pool o tx).
type SharedCostRepo struct {
	q Querier
}

// NewSharedCostRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSharedCostRepository(q Querier) *SharedCostRepo {
	return &SharedCostRepo{q: q}
}

// CreateAndActivate desactiva la configuración activa del edificio (si existe)
// e inserta la nueva como activa. Dos statements; correr dentro de una tx
// cuando se necesite atomicidad estricta entre ambos.
func (r *SharedCostRepo) CreateAndActivate(setting *entity.SharedCostSetting) error {
	ctx := context.Background()
	_, err := r.q.Exec(ctx,
		`UPDATE shared_cost_settings SET is_active = false, updated_at = $2 WHERE building_id = $1 AND is_active = true`,
		setting.BuildingID, setting.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("deactivate shared cost: %w", err)
	}
	query := `
		INSERT INTO shared_cost_settings (id, building_id, total_shared_cost_per_period, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err = r.q.Exec(ctx, query,
		setting.ID, setting.BuildingID, setting.TotalSharedCostPerPeriod, setting.IsActive,
		setting.CreatedAt, setting.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert shared cost: %w", err)
	}
	return nil
}

// GetActiveByBuilding obtiene la configuración activa del edificio, nil si no hay.
func (r *SharedCostRepo) GetActiveByBuilding(buildingID string) (*entity.SharedCostSetting, error) {
	query := `
		SELECT id, building_id, total_shared_cost_per_period, is_active, created_at, updated_at
		FROM shared_cost_settings WHERE building_id = $1 AND is_active = true`
	var s entity.SharedCostSetting
	err := r.q.QueryRow(context.Background(), query, buildingID).Scan(
		&s.ID, &s.BuildingID, &s.TotalSharedCostPerPeriod, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get active shared cost: %w", err)
	}
	return &s, nil
}
