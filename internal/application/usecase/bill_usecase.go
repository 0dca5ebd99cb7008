package usecase

import (
	"github.com/Check-karim/apartement-management-system-sub000/internal/application/dto"
	"github.com/Check-karim/apartement-management-system-sub000/internal/domain"
	"github.com/Check-karim/apartement-management-system-sub000/internal/domain/entity"
	"github.com/Check-karim/apartement-management-system-sub000/internal/domain/repository"
)

// BillUseCase consultas y mutaciones simples sobre facturas por apartamento.
// El pago es una mutación posterior a la creación que no toca el motor.
type BillUseCase struct {
	repo          repository.BillRepository
	invoiceRepo   repository.UtilityInvoiceRepository
	apartmentRepo repository.ApartmentRepository
	buildingRepo  repository.BuildingRepository
}

// NewBillUseCase construye el caso de uso.
func NewBillUseCase(
	repo repository.BillRepository,
	invoiceRepo repository.UtilityInvoiceRepository,
	apartmentRepo repository.ApartmentRepository,
	buildingRepo repository.BuildingRepository,
) *BillUseCase {
	return &BillUseCase{repo: repo, invoiceRepo: invoiceRepo, apartmentRepo: apartmentRepo, buildingRepo: buildingRepo}
}

func (uc *BillUseCase) checkBuildingScope(callerID, role, buildingID string) error {
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

// getScoped resuelve la factura y valida el alcance sobre su edificio.
func (uc *BillUseCase) getScoped(callerID, role, id string) (*entity.Bill, error) {
	bill, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, domain.ErrNotFound
	}
	apartment, err := uc.apartmentRepo.GetByID(bill.ApartmentID)
	if err != nil {
		return nil, err
	}
	if apartment == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.checkBuildingScope(callerID, role, apartment.BuildingID); err != nil {
		return nil, err
	}
	return bill, nil
}

// GetByID obtiene una factura por apartamento.
func (uc *BillUseCase) GetByID(callerID, role, id string) (*dto.BillResponse, error) {
	bill, err := uc.getScoped(callerID, role, id)
	if err != nil {
		return nil, err
	}
	return toBillResponse(bill), nil
}

// ListByInvoice lista las facturas generadas contra una factura de acueducto
// (la pantalla de selección para el despacho de notificaciones).
func (uc *BillUseCase) ListByInvoice(callerID, role, invoiceID string) ([]dto.BillResponse, error) {
	invoice, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.checkBuildingScope(callerID, role, invoice.BuildingID); err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByInvoice(invoiceID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BillResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *toBillResponse(b))
	}
	return items, nil
}

// MarkPaid marca una factura como pagada.
func (uc *BillUseCase) MarkPaid(callerID, role, id string) error {
	if _, err := uc.getScoped(callerID, role, id); err != nil {
		return err
	}
	return uc.repo.MarkPaid(id)
}

func toBillResponse(b *entity.Bill) *dto.BillResponse {
	return &dto.BillResponse{
		ID:                 b.ID,
		ApartmentID:        b.ApartmentID,
		InvoiceID:          b.InvoiceID,
		PreviousReading:    b.PreviousReading,
		CurrentReading:     b.CurrentReading,
		Consumed:           b.Consumed,
		WaterRate:          b.WaterRate,
		PumpRate:           b.PumpRate,
		WaterAmount:        b.WaterAmount,
		PumpAmount:         b.PumpAmount,
		TotalAmount:        b.TotalAmount,
		IsPaid:             b.IsPaid,
		NotificationStatus: b.NotificationStatus,
		NotificationError:  b.NotificationError,
		NotifiedAt:         b.NotifiedAt,
		CreatedAt:          b.CreatedAt,
	}
}
