package billing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Check-karim/apartement-management-system-sub000/internal/application/dto"
	"github.com/Check-karim/apartement-management-system-sub000/internal/domain"
	domainbilling "github.com/Check-karim/apartement-management-system-sub000/internal/domain/billing"
	"github.com/Check-karim/apartement-management-system-sub000/internal/domain/entity"
	"github.com/Check-karim/apartement-management-system-sub000/internal/domain/repository"
	"github.com/Check-karim/apartement-management-system-sub000/pkg/logger"
)

// Razones de error por ítem del lote.
const (
	ReasonUnitNotFound    = "UnitNotFound"
	ReasonDuplicateBill   = "DuplicateBill"
	ReasonMeterRegression = "MeterRegression"
	ReasonInvalidReading  = "InvalidReading"
)

// GenerateBillsUseCase genera facturas de agua por apartamento a partir de una
// factura de acueducto y un lote de lecturas de medidor.
//
// Semántica del lote: las tarifas se resuelven una sola vez; cada ítem se
// procesa de forma aislada en su propia transacción, en estricto orden de
// envío. Un ítem inválido no afecta al resto y jamás muta estado. La llamada
// solo falla completa por factura inexistente/ inválida o autorización.
type GenerateBillsUseCase struct {
	txRunner       BillingTxRunner
	invoiceRepo    repository.UtilityInvoiceRepository
	buildingRepo   repository.BuildingRepository
	sharedCostRepo repository.SharedCostRepository
	log            *logger.Logger
}

// NewGenerateBillsUseCase construye el caso de uso.
func NewGenerateBillsUseCase(
	txRunner BillingTxRunner,
	invoiceRepo repository.UtilityInvoiceRepository,
	buildingRepo repository.BuildingRepository,
	sharedCostRepo repository.SharedCostRepository,
	log *logger.Logger,
) *GenerateBillsUseCase {
	return &GenerateBillsUseCase{
		txRunner:       txRunner,
		invoiceRepo:    invoiceRepo,
		buildingRepo:   buildingRepo,
		sharedCostRepo: sharedCostRepo,
		log:            log,
	}
}

// GenerateBills procesa el lote completo. Errores de nivel superior (fatales,
// sin ningún cambio de estado): ErrNotFound si la factura no existe,
// ErrInvalidInvoice si su consumo total no es positivo, ErrForbidden si el
// caller es manager y el edificio de la factura no está bajo su administración.
func (uc *GenerateBillsUseCase) GenerateBills(ctx context.Context, callerID, role string, in dto.GenerateBillsRequest) (*dto.GenerateBillsResponse, error) {
	if in.InvoiceID == "" || len(in.Readings) == 0 {
		return nil, domain.ErrInvalidInput
	}

	invoice, err := uc.invoiceRepo.GetByID(in.InvoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrNotFound
	}

	// Autorización: fatal para todo el lote. El lote apunta a un único edificio,
	// así que una verificación por ítem daría siempre el mismo veredicto.
	if role != entity.RoleAdmin {
		building, err := uc.buildingRepo.GetByID(invoice.BuildingID)
		if err != nil {
			return nil, err
		}
		if building == nil || building.ManagerID != callerID {
			return nil, domain.ErrForbidden
		}
	}

	// Tarifas del lote: una sola resolución, reutilizada para cada unidad.
	setting, err := uc.sharedCostRepo.GetActiveByBuilding(invoice.BuildingID)
	if err != nil {
		return nil, err
	}
	rates, err := domainbilling.ResolveRates(invoice, setting)
	if err != nil {
		return nil, err
	}

	out := &dto.GenerateBillsResponse{
		Created:            []dto.BillSummary{},
		Errors:             []dto.BillItemError{},
		BilledConsumption:  decimal.Zero,
		InvoiceConsumption: invoice.TotalConsumption,
	}

	// Estricto orden de envío: un apartamento duplicado dentro del lote cae en
	// la verificación de unicidad en su segunda aparición, igual que una
	// segunda llamada completa.
	for _, reading := range in.Readings {
		summary, itemErr := uc.processItem(ctx, invoice, rates, reading)
		if itemErr != nil {
			out.Errors = append(out.Errors, *itemErr)
			continue
		}
		out.Created = append(out.Created, *summary)
		out.BilledConsumption = out.BilledConsumption.Add(summary.Consumed)
	}

	uc.log.Info().
		Str("invoice_id", invoice.ID).
		Str("building_id", invoice.BuildingID).
		Int("created", len(out.Created)).
		Int("errors", len(out.Errors)).
		Str("billed_consumption", out.BilledConsumption.String()).
		Str("invoice_consumption", invoice.TotalConsumption.String()).
		Msg("lote de facturación completado")

	return out, nil
}

// processItem procesa una lectura dentro de su propia transacción. Retorna el
// resumen de la factura creada o el error del ítem; nunca ambos. Cualquier
// rechazo deja la unidad intacta (rollback implícito).
func (uc *GenerateBillsUseCase) processItem(
	ctx context.Context,
	invoice *entity.UtilityInvoice,
	rates domainbilling.Rates,
	reading dto.MeterReadingInput,
) (*dto.BillSummary, *dto.BillItemError) {
	itemErr := func(reason string) *dto.BillItemError {
		return &dto.BillItemError{ApartmentID: reading.ApartmentID, Reason: reason}
	}

	var summary *dto.BillSummary
	err := uc.txRunner.RunBilling(ctx, func(
		apartmentRepo repository.ApartmentRepository,
		billRepo repository.BillRepository,
	) error {
		// Lock de fila del apartamento: serializa lotes concurrentes sobre la
		// misma unidad sin tocar al resto (la lectura base no puede quedar
		// obsoleta entre la verificación y el update).
		apartment, err := apartmentRepo.GetByIDForUpdate(reading.ApartmentID)
		if err != nil {
			return err
		}
		if apartment == nil || apartment.BuildingID != invoice.BuildingID {
			return domain.ErrNotFound
		}

		exists, err := billRepo.ExistsByApartmentAndInvoice(apartment.ID, invoice.ID)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrDuplicateBill
		}

		current, consumed, err := domainbilling.ValidateReading(apartment.PreviousReading, reading.CurrentReading)
		if err != nil {
			return err
		}

		amounts := domainbilling.Calculate(consumed, rates)
		now := time.Now()
		bill := &entity.Bill{
			ID:                 uuid.New().String(),
			ApartmentID:        apartment.ID,
			InvoiceID:          invoice.ID,
			PreviousReading:    apartment.PreviousReading,
			CurrentReading:     current,
			Consumed:           consumed,
			WaterRate:          rates.Water,
			PumpRate:           rates.Pump,
			WaterAmount:        amounts.Water,
			PumpAmount:         amounts.Pump,
			TotalAmount:        amounts.Total,
			NotificationStatus: entity.NotificationNotSent,
			CreatedAt:          now,
			UpdatedAt:          now,
		}

		// Factura y avance del medidor en la misma transacción: un crash entre
		// ambas escrituras no puede dejar consumo duplicado ni perdido en el
		// siguiente periodo.
		if err := billRepo.Create(bill); err != nil {
			return err
		}
		if err := apartmentRepo.UpdatePreviousReading(apartment.ID, current); err != nil {
			return err
		}

		summary = &dto.BillSummary{
			BillID:          bill.ID,
			ApartmentID:     apartment.ID,
			ApartmentNumber: apartment.Number,
			Consumed:        consumed,
			TotalAmount:     amounts.Total,
		}
		return nil
	})

	switch {
	case err == nil:
		return summary, nil
	case errors.Is(err, domain.ErrNotFound):
		return nil, itemErr(ReasonUnitNotFound)
	case errors.Is(err, domain.ErrDuplicateBill):
		// Incluye la violación del unique (apartment_id, invoice_id) en DB,
		// por si dos lotes contra la misma unidad corren casi a la vez.
		return nil, itemErr(ReasonDuplicateBill)
	case errors.Is(err, domain.ErrMeterRegression):
		return nil, itemErr(ReasonMeterRegression)
	case errors.Is(err, domain.ErrInvalidReading):
		return nil, itemErr(ReasonInvalidReading)
	default:
		// Error de infraestructura: se reporta sobre el ítem para no tumbar el
		// lote; el detalle queda en el log.
		uc.log.Error().Err(err).Str("apartment_id", reading.ApartmentID).Msg("ítem del lote falló por error de persistencia")
		return nil, itemErr("InternalError")
	}
}
