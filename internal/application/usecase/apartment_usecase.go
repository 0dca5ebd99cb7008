package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/Check-karim/apartement-management-system-sub000/internal/application/dto"
	"github.com/Check-karim/apartement-management-system-sub000/internal/domain"
	"github.com/Check-karim/apartement-management-system-sub000/internal/domain/entity"
	"github.com/Check-karim/apartement-management-system-sub000/internal/domain/repository"
)

// ApartmentUseCase casos de uso CRUD para apartamentos.
type ApartmentUseCase struct {
	repo         repository.ApartmentRepository
	buildingRepo repository.BuildingRepository
}

// NewApartmentUseCase construye el caso de uso.
func NewApartmentUseCase(repo repository.ApartmentRepository, buildingRepo repository.BuildingRepository) *ApartmentUseCase {
	return &ApartmentUseCase{repo: repo, buildingRepo: buildingRepo}
}

// checkBuildingScope valida que el edificio exista y esté al alcance del caller.
func (uc *ApartmentUseCase) checkBuildingScope(callerID, role, buildingID string) error {
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

// Create crea un apartamento en un edificio. La lectura inicial no puede ser
// negativa: es la línea base del primer periodo facturado.
func (uc *ApartmentUseCase) Create(callerID, role, buildingID string, in dto.CreateApartmentRequest) (*dto.ApartmentResponse, error) {
	if in.Number == "" || in.InitialReading.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkBuildingScope(callerID, role, buildingID); err != nil {
		return nil, err
	}
	now := time.Now()
	apartment := &entity.Apartment{
		ID:              uuid.New().String(),
		BuildingID:      buildingID,
		Number:          in.Number,
		TenantName:      in.TenantName,
		TenantPhone:     in.TenantPhone,
		PreviousReading: in.InitialReading,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(apartment); err != nil {
		return nil, err
	}
	return toApartmentResponse(apartment), nil
}

// Update actualiza los datos del arrendatario. La lectura del medidor no se
// toca aquí: solo avanza al crear una factura.
func (uc *ApartmentUseCase) Update(callerID, role, id string, in dto.UpdateApartmentRequest) (*dto.ApartmentResponse, error) {
	apartment, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if apartment == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.checkBuildingScope(callerID, role, apartment.BuildingID); err != nil {
		return nil, err
	}
	if in.Number != "" {
		apartment.Number = in.Number
	}
	apartment.TenantName = in.TenantName
	apartment.TenantPhone = in.TenantPhone
	apartment.UpdatedAt = time.Now()
	if err := uc.repo.Update(apartment); err != nil {
		return nil, err
	}
	return toApartmentResponse(apartment), nil
}

// GetByID obtiene un apartamento.
func (uc *ApartmentUseCase) GetByID(callerID, role, id string) (*dto.ApartmentResponse, error) {
	apartment, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if apartment == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.checkBuildingScope(callerID, role, apartment.BuildingID); err != nil {
		return nil, err
	}
	return toApartmentResponse(apartment), nil
}

// ListByBuilding lista los apartamentos de un edificio.
func (uc *ApartmentUseCase) ListByBuilding(callerID, role, buildingID string) ([]dto.ApartmentResponse, error) {
	if err := uc.checkBuildingScope(callerID, role, buildingID); err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByBuilding(buildingID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ApartmentResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toApartmentResponse(a))
	}
	return items, nil
}

func toApartmentResponse(a *entity.Apartment) *dto.ApartmentResponse {
	return &dto.ApartmentResponse{
		ID:              a.ID,
		BuildingID:      a.BuildingID,
		Number:          a.Number,
		TenantName:      a.TenantName,
		TenantPhone:     a.TenantPhone,
		PreviousReading: a.PreviousReading,
		CreatedAt:       a.CreatedAt,
	}
}
