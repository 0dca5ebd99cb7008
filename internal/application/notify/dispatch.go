package notify

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Check-karim/apartement-management-system-sub000/internal/application/dto"
	"github.com/Check-karim/apartement-management-system-sub000/internal/domain"
	"github.com/Check-karim/apartement-management-system-sub000/internal/domain/entity"
	"github.com/Check-karim/apartement-management-system-sub000/internal/domain/repository"
	"github.com/Check-karim/apartement-management-system-sub000/pkg/config"
	"github.com/Check-karim/apartement-management-system-sub000/pkg/logger"
)

// DispatchUseCase envía la notificación de un conjunto de facturas de agua.
//
// La configuración llega inyectada en la construcción (nunca leída de estado
// ambiente): con un NotifyConfig de prueba el comportamiento es determinista.
//
// Clasificación por factura, aislada y en tres vías:
//   - sin teléfono          -> no_contact, cero llamadas al gateway
//   - gateway acepta        -> sent, con hora de envío
//   - gateway falla/timeout -> failed, error preservado literal
//
// Cada intento agrega un NotificationRecord (append-only) y fija el estado de
// la factura en la misma transacción. Reintentar fallidos es válido y genera
// registros nuevos.
type DispatchUseCase struct {
	cfg           config.NotifyConfig
	formatter     CurrencyFormatter
	gateway       MessageGateway
	txRunner      NotifyTxRunner
	billRepo      repository.BillRepository
	apartmentRepo repository.ApartmentRepository
	buildingRepo  repository.BuildingRepository
	invoiceRepo   repository.UtilityInvoiceRepository
	log           *logger.Logger
}

// NewDispatchUseCase construye el caso de uso.
func NewDispatchUseCase(
	cfg config.NotifyConfig,
	formatter CurrencyFormatter,
	gateway MessageGateway,
	txRunner NotifyTxRunner,
	billRepo repository.BillRepository,
	apartmentRepo repository.ApartmentRepository,
	buildingRepo repository.BuildingRepository,
	invoiceRepo repository.UtilityInvoiceRepository,
	log *logger.Logger,
) *DispatchUseCase {
	return &DispatchUseCase{
		cfg:           cfg,
		formatter:     formatter,
		gateway:       gateway,
		txRunner:      txRunner,
		billRepo:      billRepo,
		apartmentRepo: apartmentRepo,
		buildingRepo:  buildingRepo,
		invoiceRepo:   invoiceRepo,
		log:           log,
	}
}

// dispatchItem todo lo necesario para notificar una factura, resuelto antes
// de arrancar los workers.
type dispatchItem struct {
	bill      *entity.Bill
	apartment *entity.Apartment
	building  *entity.Building
	invoice   *entity.UtilityInvoice
}

// Dispatch procesa el lote. Errores fatales (antes de cualquier trabajo por
// factura): ErrFeatureDisabled, ErrGatewayNotConfigured, ErrInvalidInput,
// ErrForbidden si el caller es manager y alguna factura del lote queda fuera
// de su alcance. Después de las precondiciones, cada bill_id enviado termina
// en exactamente una de las tres listas del resultado.
func (uc *DispatchUseCase) Dispatch(ctx context.Context, callerID, role string, in dto.DispatchRequest) (*dto.DispatchResponse, error) {
	// Precondiciones de configuración: abortan la llamada completa.
	if !uc.cfg.Enabled {
		return nil, domain.ErrFeatureDisabled
	}
	if uc.cfg.GatewayURL == "" || uc.cfg.APIToken == "" || uc.cfg.Sender == "" {
		return nil, domain.ErrGatewayNotConfigured
	}
	if len(in.BillIDs) == 0 {
		return nil, domain.ErrInvalidInput
	}

	out := &dto.DispatchResponse{
		Sent:      []dto.DispatchItem{},
		Failed:    []dto.DispatchFailure{},
		NoContact: []dto.DispatchItem{},
	}

	// Resolución y autorización antes de tocar el gateway. Una factura fuera
	// del alcance del manager es fatal para el lote completo: un despacho
	// mezclado entre edificios ajenos es un bug del cliente, no un éxito parcial.
	items := make([]dispatchItem, 0, len(in.BillIDs))
	for _, billID := range in.BillIDs {
		bill, err := uc.billRepo.GetByID(billID)
		if err != nil {
			return nil, err
		}
		if bill == nil {
			out.Failed = append(out.Failed, dto.DispatchFailure{
				DispatchItem: dto.DispatchItem{BillID: billID},
				Error:        "factura no encontrada",
			})
			continue
		}
		apartment, err := uc.apartmentRepo.GetByID(bill.ApartmentID)
		if err != nil {
			return nil, err
		}
		if apartment == nil {
			out.Failed = append(out.Failed, dto.DispatchFailure{
				DispatchItem: dto.DispatchItem{BillID: billID},
				Error:        "apartamento de la factura no encontrado",
			})
			continue
		}
		building, err := uc.buildingRepo.GetByID(apartment.BuildingID)
		if err != nil {
			return nil, err
		}
		if building == nil {
			out.Failed = append(out.Failed, dto.DispatchFailure{
				DispatchItem: dto.DispatchItem{BillID: billID, ApartmentNumber: apartment.Number, TenantName: apartment.TenantName},
				Error:        "edificio del apartamento no encontrado",
			})
			continue
		}
		if role != entity.RoleAdmin && building.ManagerID != callerID {
			return nil, domain.ErrForbidden
		}
		invoice, err := uc.invoiceRepo.GetByID(bill.InvoiceID)
		if err != nil {
			return nil, err
		}
		if invoice == nil {
			out.Failed = append(out.Failed, dto.DispatchFailure{
				DispatchItem: dto.DispatchItem{BillID: billID, ApartmentNumber: apartment.Number, TenantName: apartment.TenantName},
				Error:        "factura de acueducto de la factura no encontrada",
			})
			continue
		}
		items = append(items, dispatchItem{bill: bill, apartment: apartment, building: building, invoice: invoice})
	}

	// Pool acotado: los envíos son independientes y sin garantía de orden;
	// el límite respeta el rate limit del gateway externo.
	workers := uc.cfg.MaxConcurrent
	if workers <= 0 {
		workers = 4
	}
	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		sem = make(chan struct{}, workers)
	)
	for i := range items {
		item := items[i]
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			sent, failure, noContact := uc.dispatchOne(ctx, item)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case sent != nil:
				out.Sent = append(out.Sent, *sent)
			case failure != nil:
				out.Failed = append(out.Failed, *failure)
			case noContact != nil:
				out.NoContact = append(out.NoContact, *noContact)
			}
		}()
	}
	wg.Wait()

	uc.log.Info().
		Int("sent", len(out.Sent)).
		Int("failed", len(out.Failed)).
		Int("no_contact", len(out.NoContact)).
		Msg("despacho de notificaciones completado")

	return out, nil
}

// dispatchOne notifica una factura y persiste el resultado. Exactamente uno de
// los tres retornos es no-nil.
func (uc *DispatchUseCase) dispatchOne(ctx context.Context, item dispatchItem) (*dto.DispatchItem, *dto.DispatchFailure, *dto.DispatchItem) {
	ident := dto.DispatchItem{
		BillID:          item.bill.ID,
		ApartmentNumber: item.apartment.Number,
		TenantName:      item.apartment.TenantName,
	}

	if item.apartment.TenantPhone == "" {
		if err := uc.persistOutcome(ctx, item, "", "", entity.OutcomeNoContact, "", nil); err != nil {
			return nil, &dto.DispatchFailure{DispatchItem: ident, Error: err.Error()}, nil
		}
		return nil, nil, &ident
	}

	msg := RenderMessage(uc.formatter, item.bill, item.apartment, item.building, item.invoice)

	// Timeout por llamada; un timeout se clasifica igual que un fallo del gateway.
	timeout := time.Duration(uc.cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	result, err := uc.gateway.Send(callCtx, SendRequest{
		Sender:     uc.cfg.Sender,
		Recipients: []string{item.apartment.TenantPhone},
		Message:    msg,
	})

	var gatewayErr string
	switch {
	case err != nil:
		gatewayErr = err.Error()
	case !result.Accepted:
		gatewayErr = result.Error
	}

	if gatewayErr != "" {
		if perr := uc.persistOutcome(ctx, item, item.apartment.TenantPhone, msg, entity.OutcomeFailed, gatewayErr, nil); perr != nil {
			uc.log.Error().Err(perr).Str("bill_id", item.bill.ID).Msg("no se pudo registrar el envío fallido")
		}
		return nil, &dto.DispatchFailure{DispatchItem: ident, Error: gatewayErr}, nil
	}

	now := time.Now()
	if perr := uc.persistOutcome(ctx, item, item.apartment.TenantPhone, msg, entity.OutcomeSent, "", &now); perr != nil {
		// El mensaje salió pero el registro falló: se reporta como fallo para
		// que el operador lo revise, sin ocultar el error.
		return nil, &dto.DispatchFailure{DispatchItem: ident, Error: perr.Error()}, nil
	}
	return &ident, nil, nil
}

// persistOutcome agrega el NotificationRecord y fija el estado de la factura
// en una sola transacción.
func (uc *DispatchUseCase) persistOutcome(
	ctx context.Context,
	item dispatchItem,
	recipient, msg, outcome, errText string,
	notifiedAt *time.Time,
) error {
	return uc.txRunner.RunNotify(ctx, func(
		billRepo repository.BillRepository,
		notificationRepo repository.NotificationRepository,
	) error {
		record := &entity.NotificationRecord{
			ID:        uuid.New().String(),
			BillID:    item.bill.ID,
			Recipient: recipient,
			Message:   msg,
			Outcome:   outcome,
			Error:     errText,
			CreatedAt: time.Now(),
		}
		if err := notificationRepo.Create(record); err != nil {
			return err
		}
		return billRepo.UpdateNotification(item.bill.ID, outcome, errText, notifiedAt)
	})
}
