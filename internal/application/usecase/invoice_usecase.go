package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Check-karim/apartement-management-system-sub000/internal/application/dto"
	"github.com/Check-karim/apartement-management-system-sub000/internal/domain"
	"github.com/Check-karim/apartement-management-system-sub000/internal/domain/entity"
	"github.com/Check-karim/apartement-management-system-sub000/internal/domain/repository"
)

// UtilityInvoiceUseCase casos de uso para facturas de acueducto.
type UtilityInvoiceUseCase struct {
	repo         repository.UtilityInvoiceRepository
	billRepo     repository.BillRepository
	buildingRepo repository.BuildingRepository
}

// NewUtilityInvoiceUseCase construye el caso de uso.
func NewUtilityInvoiceUseCase(
	repo repository.UtilityInvoiceRepository,
	billRepo repository.BillRepository,
	buildingRepo repository.BuildingRepository,
) *UtilityInvoiceUseCase {
	return &UtilityInvoiceUseCase{repo: repo, billRepo: billRepo, buildingRepo: buildingRepo}
}

func (uc *UtilityInvoiceUseCase) checkBuildingScope(callerID, role, buildingID string) error {
	building, err := uc.buildingRepo.GetByID(buildingID)
	if err != nil {
		return err
	}
	if building == nil {
		return domain.ErrNotFound
	}
	if role != entity.RoleAdmin && building.ManagerID != callerID {
		return domain.ErrForbidden
	}
	return nil
}

// Create registra la factura de acueducto del periodo. Consumo y costo deben
// ser positivos (el consumo es el divisor de las tarifas) y el periodo válido.
func (uc *UtilityInvoiceUseCase) Create(callerID, role, buildingID string, in dto.CreateUtilityInvoiceRequest) (*dto.UtilityInvoiceResponse, error) {
	if !in.TotalConsumption.GreaterThan(decimal.Zero) || !in.TotalCost.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if !in.PeriodEnd.After(in.PeriodStart) {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkBuildingScope(callerID, role, buildingID); err != nil {
		return nil, err
	}
	now := time.Now()
	invoice := &entity.UtilityInvoice{
		ID:               uuid.New().String(),
		BuildingID:       buildingID,
		TotalConsumption: in.TotalConsumption,
		TotalCost:        in.TotalCost,
		PeriodStart:      in.PeriodStart,
		PeriodEnd:        in.PeriodEnd,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.repo.Create(invoice); err != nil {
		return nil, err
	}
	return toInvoiceResponse(invoice), nil
}

// GetByID obtiene una factura de acueducto.
func (uc *UtilityInvoiceUseCase) GetByID(callerID, role, id string) (*dto.UtilityInvoiceResponse, error) {
	invoice, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.checkBuildingScope(callerID, role, invoice.BuildingID); err != nil {
		return nil, err
	}
	return toInvoiceResponse(invoice), nil
}

// ListByBuilding lista las facturas de acueducto de un edificio.
func (uc *UtilityInvoiceUseCase) ListByBuilding(callerID, role, buildingID string) ([]dto.UtilityInvoiceResponse, error) {
	if err := uc.checkBuildingScope(callerID, role, buildingID); err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByBuilding(buildingID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UtilityInvoiceResponse, 0, len(list))
	for _, inv := range list {
		items = append(items, *toInvoiceResponse(inv))
	}
	return items, nil
}

// Delete elimina una factura de acueducto. Bloqueado con ErrConflict mientras
// existan facturas por apartamento que la referencien.
func (uc *UtilityInvoiceUseCase) Delete(callerID, role, id string) error {
	invoice, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if invoice == nil {
		return domain.ErrNotFound
	}
	if err := uc.checkBuildingScope(callerID, role, invoice.BuildingID); err != nil {
		return err
	}
	count, err := uc.billRepo.CountByInvoice(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrConflict
	}
	return uc.repo.Delete(id)
}

func toInvoiceResponse(inv *entity.UtilityInvoice) *dto.UtilityInvoiceResponse {
	return &dto.UtilityInvoiceResponse{
		ID:               inv.ID,
		BuildingID:       inv.BuildingID,
		TotalConsumption: inv.TotalConsumption,
		TotalCost:        inv.TotalCost,
		PeriodStart:      inv.PeriodStart,
		PeriodEnd:        inv.PeriodEnd,
		CreatedAt:        inv.CreatedAt,
	}
}
