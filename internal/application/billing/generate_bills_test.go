package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbilling "github.com/Check-karim/apartement-management-system-sub000/internal/application/billing"
	"github.com/Check-karim/apartement-management-system-sub000/internal/application/dto"
	"github.com/Check-karim/apartement-management-system-sub000/internal/domain"
	"github.com/Check-karim/apartement-management-system-sub000/internal/domain/entity"
	"github.com/Check-karim/apartement-management-system-sub000/internal/domain/repository"
	"github.com/Check-karim/apartement-management-system-sub000/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria. El txRunner fake entrega los mismos repos en cada llamada;
// la atomicidad real la cubren los adaptadores postgres, aquí se prueba la
// semántica del lote: aislamiento por ítem, unicidad, monotonía del medidor.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	buildings  map[string]*entity.Building
	apartments map[string]*entity.Apartment
	invoices   map[string]*entity.UtilityInvoice
	settings   map[string]*entity.SharedCostSetting // por buildingID, solo activa
	bills      map[string]*entity.Bill
}

func newMemStore() *memStore {
	return &memStore{
		buildings:  map[string]*entity.Building{},
		apartments: map[string]*entity.Apartment{},
		invoices:   map[string]*entity.UtilityInvoice{},
		settings:   map[string]*entity.SharedCostSetting{},
		bills:      map[string]*entity.Bill{},
	}
}

type memApartmentRepo struct{ s *memStore }

func (r *memApartmentRepo) Create(a *entity.Apartment) error { r.s.apartments[a.ID] = a; return nil }
func (r *memApartmentRepo) Update(a *entity.Apartment) error { r.s.apartments[a.ID] = a; return nil }
func (r *memApartmentRepo) GetByID(id string) (*entity.Apartment, error) {
	return r.s.apartments[id], nil
}
func (r *memApartmentRepo) GetByIDForUpdate(id string) (*entity.Apartment, error) {
	return r.s.apartments[id], nil
}
func (r *memApartmentRepo) ListByBuilding(buildingID string) ([]*entity.Apartment, error) {
	var out []*entity.Apartment
	for _, a := range r.s.apartments {
		if a.BuildingID == buildingID {
			out = append(out, a)
		}
	}
	return out, nil
}
func (r *memApartmentRepo) UpdatePreviousReading(id string, reading decimal.Decimal) error {
	r.s.apartments[id].PreviousReading = reading
	return nil
}

type memBillRepo struct{ s *memStore }

func (r *memBillRepo) Create(b *entity.Bill) error {
	for _, existing := range r.s.bills {
		if existing.ApartmentID == b.ApartmentID && existing.InvoiceID == b.InvoiceID {
			return domain.ErrDuplicateBill
		}
	}
	r.s.bills[b.ID] = b
	return nil
}
func (r *memBillRepo) GetByID(id string) (*entity.Bill, error) { return r.s.bills[id], nil }
func (r *memBillRepo) ExistsByApartmentAndInvoice(apartmentID, invoiceID string) (bool, error) {
	for _, b := range r.s.bills {
		if b.ApartmentID == apartmentID && b.InvoiceID == invoiceID {
			return true, nil
		}
	}
	return false, nil
}
func (r *memBillRepo) CountByInvoice(invoiceID string) (int, error) {
	n := 0
	for _, b := range r.s.bills {
		if b.InvoiceID == invoiceID {
			n++
		}
	}
	return n, nil
}
func (r *memBillRepo) ListByInvoice(invoiceID string) ([]*entity.Bill, error) {
	var out []*entity.Bill
	for _, b := range r.s.bills {
		if b.InvoiceID == invoiceID {
			out = append(out, b)
		}
	}
	return out, nil
}
func (r *memBillRepo) UpdateNotification(id, status, errText string, notifiedAt *time.Time) error {
	b := r.s.bills[id]
	b.NotificationStatus = status
	b.NotificationError = errText
	b.NotifiedAt = notifiedAt
	return nil
}
func (r *memBillRepo) MarkPaid(id string) error { r.s.bills[id].IsPaid = true; return nil }

type memInvoiceRepo struct{ s *memStore }

func (r *memInvoiceRepo) Create(inv *entity.UtilityInvoice) error { r.s.invoices[inv.ID] = inv; return nil }
func (r *memInvoiceRepo) GetByID(id string) (*entity.UtilityInvoice, error) {
	return r.s.invoices[id], nil
}
func (r *memInvoiceRepo) ListByBuilding(buildingID string) ([]*entity.UtilityInvoice, error) {
	return nil, nil
}
func (r *memInvoiceRepo) Delete(id string) error { delete(r.s.invoices, id); return nil }

type memBuildingRepo struct{ s *memStore }

func (r *memBuildingRepo) Create(b *entity.Building) error { r.s.buildings[b.ID] = b; return nil }
func (r *memBuildingRepo) GetByID(id string) (*entity.Building, error) {
	return r.s.buildings[id], nil
}
func (r *memBuildingRepo) List() ([]*entity.Building, error)                { return nil, nil }
func (r *memBuildingRepo) ListByManager(string) ([]*entity.Building, error) { return nil, nil }

type memSharedCostRepo struct{ s *memStore }

func (r *memSharedCostRepo) CreateAndActivate(setting *entity.SharedCostSetting) error {
	r.s.settings[setting.BuildingID] = setting
	return nil
}
func (r *memSharedCostRepo) GetActiveByBuilding(buildingID string) (*entity.SharedCostSetting, error) {
	return r.s.settings[buildingID], nil
}

type memTxRunner struct{ s *memStore }

func (r *memTxRunner) RunBilling(ctx context.Context, fn func(
	apartmentRepo repository.ApartmentRepository,
	billRepo repository.BillRepository,
) error) error {
	return fn(&memApartmentRepo{s: r.s}, &memBillRepo{s: r.s})
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario base: factura 1000 m³ / 500000, motobomba 50000 por periodo.
//   Apto A: 100 -> 120  => consumo 20, total 11000
//   Apto B: 200 -> 190  => MeterRegression
// ──────────────────────────────────────────────────────────────────────────────

func seedStore() *memStore {
	s := newMemStore()
	s.buildings["bld-1"] = &entity.Building{ID: "bld-1", Name: "Torre Norte", ManagerID: "mgr-1"}
	s.apartments["apt-a"] = &entity.Apartment{
		ID: "apt-a", BuildingID: "bld-1", Number: "101",
		TenantName: "Ana", TenantPhone: "3001112233",
		PreviousReading: decimal.NewFromInt(100),
	}
	s.apartments["apt-b"] = &entity.Apartment{
		ID: "apt-b", BuildingID: "bld-1", Number: "102",
		TenantName: "Luis",
		PreviousReading: decimal.NewFromInt(200),
	}
	s.invoices["inv-1"] = &entity.UtilityInvoice{
		ID: "inv-1", BuildingID: "bld-1",
		TotalConsumption: decimal.NewFromInt(1000),
		TotalCost:        decimal.NewFromInt(500000),
		PeriodStart:      time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:        time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC),
	}
	s.settings["bld-1"] = &entity.SharedCostSetting{
		ID: "shc-1", BuildingID: "bld-1",
		TotalSharedCostPerPeriod: decimal.NewFromInt(50000),
		IsActive:                 true,
	}
	return s
}

func newUseCase(s *memStore) *appbilling.GenerateBillsUseCase {
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	return appbilling.NewGenerateBillsUseCase(
		&memTxRunner{s: s},
		&memInvoiceRepo{s: s},
		&memBuildingRepo{s: s},
		&memSharedCostRepo{s: s},
		log,
	)
}

func TestGenerateBills_LoteMixto(t *testing.T) {
	s := seedStore()
	uc := newUseCase(s)

	out, err := uc.GenerateBills(context.Background(), "admin-1", entity.RoleAdmin, dto.GenerateBillsRequest{
		InvoiceID: "inv-1",
		Readings: []dto.MeterReadingInput{
			{ApartmentID: "apt-a", CurrentReading: "120"},
			{ApartmentID: "apt-b", CurrentReading: "190"},
		},
	})
	require.NoError(t, err)

	require.Len(t, out.Created, 1)
	require.Len(t, out.Errors, 1)
	assert.Equal(t, "apt-a", out.Created[0].ApartmentID)
	assert.True(t, out.Created[0].Consumed.Equal(decimal.NewFromInt(20)))
	assert.True(t, out.Created[0].TotalAmount.Equal(decimal.NewFromInt(11000)), "total = 11000, got %s", out.Created[0].TotalAmount)
	assert.Equal(t, dto.BillItemError{ApartmentID: "apt-b", Reason: appbilling.ReasonMeterRegression}, out.Errors[0])

	// Estado del medidor: A avanza, B intacto.
	assert.True(t, s.apartments["apt-a"].PreviousReading.Equal(decimal.NewFromInt(120)))
	assert.True(t, s.apartments["apt-b"].PreviousReading.Equal(decimal.NewFromInt(200)))

	// La factura creada guarda tarifas y desglose.
	bill := s.bills[out.Created[0].BillID]
	require.NotNil(t, bill)
	assert.True(t, bill.WaterRate.Equal(decimal.NewFromInt(500)))
	assert.True(t, bill.PumpRate.Equal(decimal.NewFromInt(50)))
	assert.True(t, bill.WaterAmount.Equal(decimal.NewFromInt(10000)))
	assert.True(t, bill.PumpAmount.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, entity.NotificationNotSent, bill.NotificationStatus)

	assert.True(t, out.BilledConsumption.Equal(decimal.NewFromInt(20)))
	assert.True(t, out.InvoiceConsumption.Equal(decimal.NewFromInt(1000)))
}

func TestGenerateBills_Idempotencia(t *testing.T) {
	s := seedStore()
	uc := newUseCase(s)
	req := dto.GenerateBillsRequest{
		InvoiceID: "inv-1",
		Readings:  []dto.MeterReadingInput{{ApartmentID: "apt-a", CurrentReading: "120"}},
	}

	first, err := uc.GenerateBills(context.Background(), "admin-1", entity.RoleAdmin, req)
	require.NoError(t, err)
	require.Len(t, first.Created, 1)

	// Misma llamada otra vez: una sola factura persistida, DuplicateBill para
	// la unidad y el medidor queda como lo dejó la primera llamada.
	second, err := uc.GenerateBills(context.Background(), "admin-1", entity.RoleAdmin, req)
	require.NoError(t, err)
	assert.Empty(t, second.Created)
	require.Len(t, second.Errors, 1)
	assert.Equal(t, appbilling.ReasonDuplicateBill, second.Errors[0].Reason)
	assert.Len(t, s.bills, 1)
	assert.True(t, s.apartments["apt-a"].PreviousReading.Equal(decimal.NewFromInt(120)))
}

func TestGenerateBills_DuplicadoDentroDelLote(t *testing.T) {
	s := seedStore()
	uc := newUseCase(s)

	out, err := uc.GenerateBills(context.Background(), "admin-1", entity.RoleAdmin, dto.GenerateBillsRequest{
		InvoiceID: "inv-1",
		Readings: []dto.MeterReadingInput{
			{ApartmentID: "apt-a", CurrentReading: "120"},
			{ApartmentID: "apt-a", CurrentReading: "125"},
		},
	})
	require.NoError(t, err)
	require.Len(t, out.Created, 1)
	require.Len(t, out.Errors, 1)
	assert.Equal(t, appbilling.ReasonDuplicateBill, out.Errors[0].Reason)
	// La segunda aparición no movió el medidor.
	assert.True(t, s.apartments["apt-a"].PreviousReading.Equal(decimal.NewFromInt(120)))
}

func TestGenerateBills_UnidadInexistenteYDeOtroEdificio(t *testing.T) {
	s := seedStore()
	s.buildings["bld-2"] = &entity.Building{ID: "bld-2", Name: "Torre Sur"}
	s.apartments["apt-z"] = &entity.Apartment{ID: "apt-z", BuildingID: "bld-2", Number: "901"}
	uc := newUseCase(s)

	out, err := uc.GenerateBills(context.Background(), "admin-1", entity.RoleAdmin, dto.GenerateBillsRequest{
		InvoiceID: "inv-1",
		Readings: []dto.MeterReadingInput{
			{ApartmentID: "no-existe", CurrentReading: "10"},
			{ApartmentID: "apt-z", CurrentReading: "10"}, // edificio distinto al de la factura
		},
	})
	require.NoError(t, err)
	assert.Empty(t, out.Created)
	require.Len(t, out.Errors, 2)
	assert.Equal(t, appbilling.ReasonUnitNotFound, out.Errors[0].Reason)
	assert.Equal(t, appbilling.ReasonUnitNotFound, out.Errors[1].Reason)
}

func TestGenerateBills_LecturaInvalida(t *testing.T) {
	s := seedStore()
	uc := newUseCase(s)

	out, err := uc.GenerateBills(context.Background(), "admin-1", entity.RoleAdmin, dto.GenerateBillsRequest{
		InvoiceID: "inv-1",
		Readings:  []dto.MeterReadingInput{{ApartmentID: "apt-a", CurrentReading: "doce"}},
	})
	require.NoError(t, err)
	require.Len(t, out.Errors, 1)
	assert.Equal(t, appbilling.ReasonInvalidReading, out.Errors[0].Reason)
	assert.Empty(t, s.bills)
}

func TestGenerateBills_ConsumoCeroEsFacturaValida(t *testing.T) {
	s := seedStore()
	uc := newUseCase(s)

	out, err := uc.GenerateBills(context.Background(), "admin-1", entity.RoleAdmin, dto.GenerateBillsRequest{
		InvoiceID: "inv-1",
		Readings:  []dto.MeterReadingInput{{ApartmentID: "apt-a", CurrentReading: "100"}},
	})
	require.NoError(t, err)
	require.Len(t, out.Created, 1)
	assert.True(t, out.Created[0].Consumed.IsZero())
	assert.True(t, out.Created[0].TotalAmount.IsZero())
}

func TestGenerateBills_SinCostoCompartido(t *testing.T) {
	s := seedStore()
	delete(s.settings, "bld-1")
	uc := newUseCase(s)

	out, err := uc.GenerateBills(context.Background(), "admin-1", entity.RoleAdmin, dto.GenerateBillsRequest{
		InvoiceID: "inv-1",
		Readings:  []dto.MeterReadingInput{{ApartmentID: "apt-a", CurrentReading: "120"}},
	})
	require.NoError(t, err)
	require.Len(t, out.Created, 1)
	// Solo agua: 20 * 500.
	assert.True(t, out.Created[0].TotalAmount.Equal(decimal.NewFromInt(10000)))
}

func TestGenerateBills_ErroresFatales(t *testing.T) {
	s := seedStore()
	uc := newUseCase(s)
	readings := []dto.MeterReadingInput{{ApartmentID: "apt-a", CurrentReading: "120"}}

	_, err := uc.GenerateBills(context.Background(), "admin-1", entity.RoleAdmin, dto.GenerateBillsRequest{
		InvoiceID: "no-existe", Readings: readings,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	s.invoices["inv-1"].TotalConsumption = decimal.Zero
	_, err = uc.GenerateBills(context.Background(), "admin-1", entity.RoleAdmin, dto.GenerateBillsRequest{
		InvoiceID: "inv-1", Readings: readings,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInvoice)
	assert.Empty(t, s.bills, "un error fatal no persiste nada")
}

func TestGenerateBills_AlcanceDelManager(t *testing.T) {
	s := seedStore()
	uc := newUseCase(s)
	readings := []dto.MeterReadingInput{{ApartmentID: "apt-a", CurrentReading: "120"}}

	// Manager ajeno: rechazo fatal del lote completo.
	_, err := uc.GenerateBills(context.Background(), "mgr-otro", entity.RoleManager, dto.GenerateBillsRequest{
		InvoiceID: "inv-1", Readings: readings,
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Empty(t, s.bills)

	// Manager del edificio: procede.
	out, err := uc.GenerateBills(context.Background(), "mgr-1", entity.RoleManager, dto.GenerateBillsRequest{
		InvoiceID: "inv-1", Readings: readings,
	})
	require.NoError(t, err)
	assert.Len(t, out.Created, 1)
}
