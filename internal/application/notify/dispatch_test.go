package notify_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Check-karim/apartement-management-system-sub000/internal/application/dto"
	"github.com/Check-karim/apartement-management-system-sub000/internal/application/notify"
	"github.com/Check-karim/apartement-management-system-sub000/internal/domain"
	"github.com/Check-karim/apartement-management-system-sub000/internal/domain/entity"
	"github.com/Check-karim/apartement-management-system-sub000/internal/domain/repository"
	"github.com/Check-karim/apartement-management-system-sub000/pkg/config"
	"github.com/Check-karim/apartement-management-system-sub000/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes. El gateway registra cada invocación y puede forzar fallos por
// destinatario; los repos viven en memoria con mutex porque el dispatcher
// ejecuta los envíos en paralelo.
// ──────────────────────────────────────────────────────────────────────────────

type notifyStore struct {
	mu         sync.Mutex
	buildings  map[string]*entity.Building
	apartments map[string]*entity.Apartment
	invoices   map[string]*entity.UtilityInvoice
	bills      map[string]*entity.Bill
	records    []*entity.NotificationRecord
}

func newNotifyStore() *notifyStore {
	return &notifyStore{
		buildings:  map[string]*entity.Building{},
		apartments: map[string]*entity.Apartment{},
		invoices:   map[string]*entity.UtilityInvoice{},
		bills:      map[string]*entity.Bill{},
	}
}

type nBillRepo struct{ s *notifyStore }

func (r *nBillRepo) Create(b *entity.Bill) error { r.s.bills[b.ID] = b; return nil }
func (r *nBillRepo) GetByID(id string) (*entity.Bill, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.bills[id], nil
}
func (r *nBillRepo) ExistsByApartmentAndInvoice(string, string) (bool, error) { return false, nil }
func (r *nBillRepo) CountByInvoice(string) (int, error)                       { return 0, nil }
func (r *nBillRepo) ListByInvoice(string) ([]*entity.Bill, error)             { return nil, nil }
func (r *nBillRepo) UpdateNotification(id, status, errText string, notifiedAt *time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b := r.s.bills[id]
	b.NotificationStatus = status
	b.NotificationError = errText
	b.NotifiedAt = notifiedAt
	return nil
}
func (r *nBillRepo) MarkPaid(string) error { return nil }

type nApartmentRepo struct{ s *notifyStore }

func (r *nApartmentRepo) Create(*entity.Apartment) error { return nil }
func (r *nApartmentRepo) Update(*entity.Apartment) error { return nil }
func (r *nApartmentRepo) GetByID(id string) (*entity.Apartment, error) {
	return r.s.apartments[id], nil
}
func (r *nApartmentRepo) GetByIDForUpdate(id string) (*entity.Apartment, error) {
	return r.s.apartments[id], nil
}
func (r *nApartmentRepo) ListByBuilding(string) ([]*entity.Apartment, error)  { return nil, nil }
func (r *nApartmentRepo) UpdatePreviousReading(string, decimal.Decimal) error { return nil }

type nBuildingRepo struct{ s *notifyStore }

func (r *nBuildingRepo) Create(*entity.Building) error { return nil }
func (r *nBuildingRepo) GetByID(id string) (*entity.Building, error) {
	return r.s.buildings[id], nil
}
func (r *nBuildingRepo) List() ([]*entity.Building, error)                { return nil, nil }
func (r *nBuildingRepo) ListByManager(string) ([]*entity.Building, error) { return nil, nil }

type nInvoiceRepo struct{ s *notifyStore }

func (r *nInvoiceRepo) Create(*entity.UtilityInvoice) error { return nil }
func (r *nInvoiceRepo) GetByID(id string) (*entity.UtilityInvoice, error) {
	return r.s.invoices[id], nil
}
func (r *nInvoiceRepo) ListByBuilding(string) ([]*entity.UtilityInvoice, error) { return nil, nil }
func (r *nInvoiceRepo) Delete(string) error                                     { return nil }

type nNotificationRepo struct{ s *notifyStore }

func (r *nNotificationRepo) Create(rec *entity.NotificationRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.records = append(r.s.records, rec)
	return nil
}
func (r *nNotificationRepo) ListByBill(string) ([]*entity.NotificationRecord, error) {
	return nil, nil
}

type nTxRunner struct{ s *notifyStore }

func (r *nTxRunner) RunNotify(ctx context.Context, fn func(
	billRepo repository.BillRepository,
	notificationRepo repository.NotificationRepository,
) error) error {
	return fn(&nBillRepo{s: r.s}, &nNotificationRepo{s: r.s})
}

// fakeGateway gateway en memoria; failWith fuerza error por destinatario.
type fakeGateway struct {
	mu       sync.Mutex
	calls    []notify.SendRequest
	failWith map[string]string // teléfono -> error que retorna el gateway
	err      error             // error de red para todas las llamadas
}

func (g *fakeGateway) Send(_ context.Context, req notify.SendRequest) (*notify.SendResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, req)
	if g.err != nil {
		return nil, g.err
	}
	if msg, ok := g.failWith[req.Recipients[0]]; ok {
		return &notify.SendResult{Accepted: false, Error: msg}, nil
	}
	return &notify.SendResult{Accepted: true}, nil
}

func (g *fakeGateway) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

// ──────────────────────────────────────────────────────────────────────────────

func enabledConfig() config.NotifyConfig {
	return config.NotifyConfig{
		Enabled:        true,
		GatewayURL:     "https://sms.example.com/send",
		APIToken:       "token-test",
		Sender:         "TorreNorte",
		TimeoutSeconds: 5,
		MaxConcurrent:  2,
	}
}

func seedNotifyStore() *notifyStore {
	s := newNotifyStore()
	s.buildings["bld-1"] = &entity.Building{ID: "bld-1", Name: "Torre Norte", ManagerID: "mgr-1"}
	s.invoices["inv-1"] = &entity.UtilityInvoice{
		ID: "inv-1", BuildingID: "bld-1",
		TotalConsumption: decimal.NewFromInt(1000),
		TotalCost:        decimal.NewFromInt(500000),
		PeriodStart:      time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:        time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC),
	}
	s.apartments["apt-a"] = &entity.Apartment{
		ID: "apt-a", BuildingID: "bld-1", Number: "101",
		TenantName: "Ana", TenantPhone: "3001112233",
	}
	s.apartments["apt-b"] = &entity.Apartment{
		ID: "apt-b", BuildingID: "bld-1", Number: "102",
		TenantName: "Luis", // sin teléfono
	}
	s.bills["bill-a"] = &entity.Bill{
		ID: "bill-a", ApartmentID: "apt-a", InvoiceID: "inv-1",
		Consumed:    decimal.NewFromInt(20),
		WaterAmount: decimal.NewFromInt(10000),
		PumpAmount:  decimal.NewFromInt(1000),
		TotalAmount: decimal.NewFromInt(11000),
		NotificationStatus: entity.NotificationNotSent,
	}
	s.bills["bill-b"] = &entity.Bill{
		ID: "bill-b", ApartmentID: "apt-b", InvoiceID: "inv-1",
		TotalAmount:        decimal.NewFromInt(5000),
		NotificationStatus: entity.NotificationNotSent,
	}
	return s
}

func newDispatcher(s *notifyStore, cfg config.NotifyConfig, gw *fakeGateway) *notify.DispatchUseCase {
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	return notify.NewDispatchUseCase(
		cfg,
		notify.NewCurrencyFormatter("COP", "es-CO"),
		gw,
		&nTxRunner{s: s},
		&nBillRepo{s: s},
		&nApartmentRepo{s: s},
		&nBuildingRepo{s: s},
		&nInvoiceRepo{s: s},
		log,
	)
}

func TestDispatch_PrecondicionesDeConfiguracion(t *testing.T) {
	s := seedNotifyStore()
	gw := &fakeGateway{}

	cfg := enabledConfig()
	cfg.Enabled = false
	_, err := newDispatcher(s, cfg, gw).Dispatch(context.Background(), "admin-1", entity.RoleAdmin, dto.DispatchRequest{BillIDs: []string{"bill-a"}})
	assert.ErrorIs(t, err, domain.ErrFeatureDisabled)

	cfg = enabledConfig()
	cfg.APIToken = ""
	_, err = newDispatcher(s, cfg, gw).Dispatch(context.Background(), "admin-1", entity.RoleAdmin, dto.DispatchRequest{BillIDs: []string{"bill-a"}})
	assert.ErrorIs(t, err, domain.ErrGatewayNotConfigured)

	// Nada llegó al gateway ni al log de envíos.
	assert.Zero(t, gw.callCount())
	assert.Empty(t, s.records)
}

func TestDispatch_TresClasificaciones(t *testing.T) {
	s := seedNotifyStore()
	gw := &fakeGateway{}
	uc := newDispatcher(s, enabledConfig(), gw)

	out, err := uc.Dispatch(context.Background(), "admin-1", entity.RoleAdmin, dto.DispatchRequest{
		BillIDs: []string{"bill-a", "bill-b"},
	})
	require.NoError(t, err)

	require.Len(t, out.Sent, 1)
	require.Len(t, out.NoContact, 1)
	assert.Empty(t, out.Failed)
	assert.Equal(t, "bill-a", out.Sent[0].BillID)
	assert.Equal(t, "Ana", out.Sent[0].TenantName)
	assert.Equal(t, "bill-b", out.NoContact[0].BillID)

	// Sin contacto: cero invocaciones al gateway para esa factura.
	assert.Equal(t, 1, gw.callCount())

	// Estados y log de envíos persistidos.
	assert.Equal(t, entity.NotificationSent, s.bills["bill-a"].NotificationStatus)
	assert.NotNil(t, s.bills["bill-a"].NotifiedAt)
	assert.Equal(t, entity.NotificationNoContact, s.bills["bill-b"].NotificationStatus)
	require.Len(t, s.records, 2)

	// El mensaje renderizado incluye arrendatario, edificio y consumo.
	assert.Contains(t, gw.calls[0].Message, "Ana")
	assert.Contains(t, gw.calls[0].Message, "Torre Norte")
	assert.Contains(t, gw.calls[0].Message, "20 m3")
	assert.Equal(t, "TorreNorte", gw.calls[0].Sender)
	assert.Equal(t, []string{"3001112233"}, gw.calls[0].Recipients)
}

func TestDispatch_FalloDelGatewayPreservaElError(t *testing.T) {
	s := seedNotifyStore()
	gw := &fakeGateway{failWith: map[string]string{"3001112233": "insufficient balance"}}
	uc := newDispatcher(s, enabledConfig(), gw)

	out, err := uc.Dispatch(context.Background(), "admin-1", entity.RoleAdmin, dto.DispatchRequest{
		BillIDs: []string{"bill-a", "bill-b"},
	})
	require.NoError(t, err, "el fallo de un envío no tumba el lote")

	require.Len(t, out.Failed, 1)
	assert.Equal(t, "bill-a", out.Failed[0].BillID)
	assert.Equal(t, "insufficient balance", out.Failed[0].Error, "error del gateway literal")
	require.Len(t, out.NoContact, 1)

	assert.Equal(t, entity.NotificationFailed, s.bills["bill-a"].NotificationStatus)
	assert.Equal(t, "insufficient balance", s.bills["bill-a"].NotificationError)
}

func TestDispatch_ErrorDeRed(t *testing.T) {
	s := seedNotifyStore()
	gw := &fakeGateway{err: errors.New("dial tcp: connection refused")}
	uc := newDispatcher(s, enabledConfig(), gw)

	out, err := uc.Dispatch(context.Background(), "admin-1", entity.RoleAdmin, dto.DispatchRequest{
		BillIDs: []string{"bill-a"},
	})
	require.NoError(t, err)
	require.Len(t, out.Failed, 1)
	assert.Equal(t, "dial tcp: connection refused", out.Failed[0].Error)
}

func TestDispatch_FacturaInexistente(t *testing.T) {
	s := seedNotifyStore()
	gw := &fakeGateway{}
	uc := newDispatcher(s, enabledConfig(), gw)

	out, err := uc.Dispatch(context.Background(), "admin-1", entity.RoleAdmin, dto.DispatchRequest{
		BillIDs: []string{"no-existe", "bill-a"},
	})
	require.NoError(t, err)

	// Cada bill_id termina en exactamente una lista.
	assert.Len(t, out.Sent, 1)
	require.Len(t, out.Failed, 1)
	assert.Equal(t, "no-existe", out.Failed[0].BillID)
	assert.Equal(t, "factura no encontrada", out.Failed[0].Error)
}

func TestDispatch_ReintentoAgregaRegistro(t *testing.T) {
	s := seedNotifyStore()
	gw := &fakeGateway{failWith: map[string]string{"3001112233": "timeout"}}
	uc := newDispatcher(s, enabledConfig(), gw)

	_, err := uc.Dispatch(context.Background(), "admin-1", entity.RoleAdmin, dto.DispatchRequest{BillIDs: []string{"bill-a"}})
	require.NoError(t, err)

	// Reintento con el gateway ya sano: nuevo registro, estado sent.
	gw.failWith = nil
	out, err := uc.Dispatch(context.Background(), "admin-1", entity.RoleAdmin, dto.DispatchRequest{BillIDs: []string{"bill-a"}})
	require.NoError(t, err)
	assert.Len(t, out.Sent, 1)
	assert.Len(t, s.records, 2, "el log de envíos es append-only")
	assert.Equal(t, entity.NotificationSent, s.bills["bill-a"].NotificationStatus)
}

func TestDispatch_AlcanceDelManagerEsFatal(t *testing.T) {
	s := seedNotifyStore()
	gw := &fakeGateway{}
	uc := newDispatcher(s, enabledConfig(), gw)

	_, err := uc.Dispatch(context.Background(), "mgr-otro", entity.RoleManager, dto.DispatchRequest{
		BillIDs: []string{"bill-a", "bill-b"},
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Zero(t, gw.callCount(), "nada sale al gateway si el lote se rechaza")
	assert.Empty(t, s.records)

	// El manager del edificio sí puede despachar.
	out, err := uc.Dispatch(context.Background(), "mgr-1", entity.RoleManager, dto.DispatchRequest{
		BillIDs: []string{"bill-a"},
	})
	require.NoError(t, err)
	assert.Len(t, out.Sent, 1)
}
