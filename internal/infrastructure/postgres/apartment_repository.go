package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/Check-karim/apartement-management-system-sub000/internal/domain"
	"github.com/Check-karim/apartement-management-system-sub000/internal/domain/entity"
	"github.com/Check-karim/apartement-management-system-sub000/internal/domain/repository"
)

var _ repository.ApartmentRepository = (*ApartmentRepo)(nil)

// ApartmentRepo implementación de ApartmentRepository (usable con pool o tx).
type ApartmentRepo struct {
	q Querier
}

// NewApartmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewApartmentRepository(q Querier) *ApartmentRepo {
	return &ApartmentRepo{q: q}
}

const apartmentColumns = `id, building_id, number, tenant_name, tenant_phone, previous_reading, created_at, updated_at`

// Create persiste un nuevo apartamento.
func (r *ApartmentRepo) Create(apartment *entity.Apartment) error {
	query := `
		INSERT INTO apartments (id, building_id, number, tenant_name, tenant_phone, previous_reading, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		apartment.ID, apartment.BuildingID, apartment.Number,
		apartment.TenantName, apartment.TenantPhone, apartment.PreviousReading,
		apartment.CreatedAt, apartment.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert apartment: %w", err)
	}
	return nil
}

// Update actualiza los datos del apartamento (no toca previous_reading:
// la lectura base solo avanza con UpdatePreviousReading dentro del lote).
func (r *ApartmentRepo) Update(apartment *entity.Apartment) error {
	query := `
		UPDATE apartments SET number = $2, tenant_name = $3, tenant_phone = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		apartment.ID, apartment.Number, apartment.TenantName, apartment.TenantPhone, apartment.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("update apartment: %w", err)
	}
	return nil
}

// GetByID obtiene un apartamento por ID.
func (r *ApartmentRepo) GetByID(id string) (*entity.Apartment, error) {
	query := `SELECT ` + apartmentColumns + ` FROM apartments WHERE id = $1`
	return r.getOne(query, id)
}

// GetByIDForUpdate obtiene el apartamento bloqueando su fila hasta el fin de
// la transacción. Serializa lotes concurrentes sobre la misma unidad.
func (r *ApartmentRepo) GetByIDForUpdate(id string) (*entity.Apartment, error) {
	query := `SELECT ` + apartmentColumns + ` FROM apartments WHERE id = $1 FOR UPDATE`
	return r.getOne(query, id)
}

func (r *ApartmentRepo) getOne(query, id string) (*entity.Apartment, error) {
	var a entity.Apartment
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&a.ID, &a.BuildingID, &a.Number, &a.TenantName, &a.TenantPhone,
		&a.PreviousReading, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get apartment: %w", err)
	}
	return &a, nil
}

// ListByBuilding lista los apartamentos de un edificio.
func (r *ApartmentRepo) ListByBuilding(buildingID string) ([]*entity.Apartment, error) {
	query := `SELECT ` + apartmentColumns + ` FROM apartments WHERE building_id = $1 ORDER BY number`
	rows, err := r.q.Query(context.Background(), query, buildingID)
	if err != nil {
		return nil, fmt.Errorf("list apartments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Apartment
	for rows.Next() {
		var a entity.Apartment
		if err := rows.Scan(
			&a.ID, &a.BuildingID, &a.Number, &a.TenantName, &a.TenantPhone,
			&a.PreviousReading, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan apartment: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// UpdatePreviousReading avanza la línea base del medidor. Debe correr en la
// misma transacción que el INSERT de la factura.
func (r *ApartmentRepo) UpdatePreviousReading(id string, reading decimal.Decimal) error {
	query := `UPDATE apartments SET previous_reading = $2, updated_at = $3 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, reading, time.Now())
	if err != nil {
		return fmt.Errorf("update previous_reading: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
