package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Check-karim/apartement-management-system-sub000/internal/domain/entity"
	"github.com/Check-karim/apartement-management-system-sub000/internal/domain/repository"
)

var _ repository.BuildingRepository = (*BuildingRepo)(nil)

// BuildingRepo implementación de BuildingRepository (usable con pool o tx).
type BuildingRepo struct {
	q Querier
}

// NewBuildingRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBuildingRepository(q Querier) *BuildingRepo {
	return &BuildingRepo{q: q}
}

// Create persiste un nuevo edificio.
func (r *BuildingRepo) Create(building *entity.Building) error {
	query := `
		INSERT INTO buildings (id, name, address, manager_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		building.ID, building.Name, building.Address, building.ManagerID,
		building.CreatedAt, building.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert building: %w", err)
	}
	return nil
}

// GetByID obtiene un edificio por ID.
func (r *BuildingRepo) GetByID(id string) (*entity.Building, error) {
	query := `
		SELECT id, name, address, manager_id, created_at, updated_at
		FROM buildings WHERE id = $1`
	var b entity.Building
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&b.ID, &b.Name, &b.Address, &b.ManagerID, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get building: %w", err)
	}
	return &b, nil
}

// List lista todos los edificios.
func (r *BuildingRepo) List() ([]*entity.Building, error) {
	query := `
		SELECT id, name, address, manager_id, created_at, updated_at
		FROM buildings ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list buildings: %w", err)
	}
	defer rows.Close()
	return scanBuildings(rows)
}

// ListByManager lista los edificios administrados por un manager.
func (r *BuildingRepo) ListByManager(managerID string) ([]*entity.Building, error) {
	query := `
		SELECT id, name, address, manager_id, created_at, updated_at
		FROM buildings WHERE manager_id = $1 ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, managerID)
	if err != nil {
		return nil, fmt.Errorf("list buildings by manager: %w", err)
	}
	defer rows.Close()
	return scanBuildings(rows)
}

func scanBuildings(rows pgx.Rows) ([]*entity.Building, error) {
	var list []*entity.Building
	for rows.Next() {
		var b entity.Building
		if err := rows.Scan(&b.ID, &b.Name, &b.Address, &b.ManagerID, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan building: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}
