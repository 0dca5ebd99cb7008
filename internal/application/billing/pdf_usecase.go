package billing

import (
	"context"
	"fmt"

	"github.com/Check-karim/apartement-management-system-sub000/internal/domain"
	"github.com/Check-karim/apartement-management-system-sub000/internal/domain/entity"
	"github.com/Check-karim/apartement-management-system-sub000/internal/domain/repository"
)

// BillPDFGenerator puerto de salida para renderizar el estado de cuenta.
// La implementación concreta (Maroto) vive en infrastructure/pdf.
type BillPDFGenerator interface {
	GenerateBillPDF(
		ctx context.Context,
		bill *entity.Bill,
		apartment *entity.Apartment,
		building *entity.Building,
		invoice *entity.UtilityInvoice,
	) ([]byte, error)
}

// PDFUseCase genera el estado de cuenta imprimible (PDF) de una factura de agua.
type PDFUseCase struct {
	billRepo      repository.BillRepository
	apartmentRepo repository.ApartmentRepository
	buildingRepo  repository.BuildingRepository
	invoiceRepo   repository.UtilityInvoiceRepository
	generator     BillPDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(
	billRepo repository.BillRepository,
	apartmentRepo repository.ApartmentRepository,
	buildingRepo repository.BuildingRepository,
	invoiceRepo repository.UtilityInvoiceRepository,
	generator BillPDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		billRepo:      billRepo,
		apartmentRepo: apartmentRepo,
		buildingRepo:  buildingRepo,
		invoiceRepo:   invoiceRepo,
		generator:     generator,
	}
}

// DownloadBillPDF recupera la factura y su contexto (apartamento, edificio,
// factura de acueducto) y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil) si todo sale bien.
//   - domain.ErrNotFound        si la factura no existe.
//   - domain.ErrForbidden       si el edificio no está al alcance del caller.
func (uc *PDFUseCase) DownloadBillPDF(ctx context.Context, callerID, role, billID string) (pdfBytes []byte, filename string, err error) {
	bill, err := uc.billRepo.GetByID(billID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener factura: %w", err)
	}
	if bill == nil {
		return nil, "", domain.ErrNotFound
	}

	apartment, err := uc.apartmentRepo.GetByID(bill.ApartmentID)
	if err != nil || apartment == nil {
		return nil, "", fmt.Errorf("pdf: obtener apartamento: %w", err)
	}

	building, err := uc.buildingRepo.GetByID(apartment.BuildingID)
	if err != nil || building == nil {
		return nil, "", fmt.Errorf("pdf: obtener edificio: %w", err)
	}
	if role != entity.RoleAdmin && building.ManagerID != callerID {
		return nil, "", domain.ErrForbidden
	}

	invoice, err := uc.invoiceRepo.GetByID(bill.InvoiceID)
	if err != nil || invoice == nil {
		return nil, "", fmt.Errorf("pdf: obtener factura de acueducto: %w", err)
	}

	pdfBytes, err = uc.generator.GenerateBillPDF(ctx, bill, apartment, building, invoice)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generar: %w", err)
	}

	filename = fmt.Sprintf("factura-agua-%s-%s.pdf", apartment.Number, invoice.PeriodEnd.Format("2006-01"))
	return pdfBytes, filename, nil
}
