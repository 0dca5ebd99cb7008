package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Check-karim/apartement-management-system-sub000/internal/domain"
	"github.com/Check-karim/apartement-management-system-sub000/internal/domain/entity"
	"github.com/Check-karim/apartement-management-system-sub000/internal/domain/repository"
)

var _ repository.UtilityInvoiceRepository = (*UtilityInvoiceRepo)(nil)

// UtilityInvoiceRepo implementación de UtilityInvoiceRepository (usable con pool o tx).
type UtilityInvoiceRepo struct {
	q Querier
}

// NewUtilityInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUtilityInvoiceRepository(q Querier) *UtilityInvoiceRepo {
	return &UtilityInvoiceRepo{q: q}
}

// Create persiste una nueva factura de acueducto.
func (r *UtilityInvoiceRepo) Create(invoice *entity.UtilityInvoice) error {
	query := `
		INSERT INTO utility_invoices (id, building_id, total_consumption, total_cost, period_start, period_end, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.BuildingID, invoice.TotalConsumption, invoice.TotalCost,
		invoice.PeriodStart, invoice.PeriodEnd, invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert utility invoice: %w", err)
	}
	return nil
}

// GetByID obtiene una factura de acueducto por ID.
func (r *UtilityInvoiceRepo) GetByID(id string) (*entity.UtilityInvoice, error) {
	query := `
		SELECT id, building_id, total_consumption, total_cost, period_start, period_end, created_at, updated_at
		FROM utility_invoices WHERE id = $1`
	var inv entity.UtilityInvoice
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&inv.ID, &inv.BuildingID, &inv.TotalConsumption, &inv.TotalCost,
		&inv.PeriodStart, &inv.PeriodEnd, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get utility invoice: %w", err)
	}
	return &inv, nil
}

// ListByBuilding lista las facturas de acueducto de un edificio, la más reciente primero.
func (r *UtilityInvoiceRepo) ListByBuilding(buildingID string) ([]*entity.UtilityInvoice, error) {
	query := `
		SELECT id, building_id, total_consumption, total_cost, period_start, period_end, created_at, updated_at
		FROM utility_invoices WHERE building_id = $1 ORDER BY period_start DESC`
	rows, err := r.q.Query(context.Background(), query, buildingID)
	if err != nil {
		return nil, fmt.Errorf("list utility invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.UtilityInvoice
	for rows.Next() {
		var inv entity.UtilityInvoice
		if err := rows.Scan(
			&inv.ID, &inv.BuildingID, &inv.TotalConsumption, &inv.TotalCost,
			&inv.PeriodStart, &inv.PeriodEnd, &inv.CreatedAt, &inv.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan utility invoice: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}

// Delete elimina una factura de acueducto. El caso de uso verifica antes que
// no tenga facturas por apartamento que la referencien.
func (r *UtilityInvoiceRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM utility_invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete utility invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
