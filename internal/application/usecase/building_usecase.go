package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/Check-karim/apartement-management-system-sub000/internal/application/dto"
	"github.com/Check-karim/apartement-management-system-sub000/internal/domain"
	"github.com/Check-karim/apartement-management-system-sub000/internal/domain/entity"
	"github.com/Check-karim/apartement-management-system-sub000/internal/domain/repository"
)

// BuildingUseCase casos de uso CRUD para edificios.
type BuildingUseCase struct {
	repo repository.BuildingRepository
}

// NewBuildingUseCase construye el caso de uso.
func NewBuildingUseCase(repo repository.BuildingRepository) *BuildingUseCase {
	return &BuildingUseCase{repo: repo}
}

// Create crea un edificio (solo admin; lo aplica el router).
func (uc *BuildingUseCase) Create(in dto.CreateBuildingRequest) (*dto.BuildingResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	building := &entity.Building{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Address:   in.Address,
		ManagerID: in.ManagerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(building); err != nil {
		return nil, err
	}
	return toBuildingResponse(building), nil
}

// GetByID obtiene un edificio; un manager solo ve los suyos.
func (uc *BuildingUseCase) GetByID(callerID, role, id string) (*dto.BuildingResponse, error) {
	building, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if building == nil {
		return nil, domain.ErrNotFound
	}
	if role != entity.RoleAdmin && building.ManagerID != callerID {
		return nil, domain.ErrForbidden
	}
	return toBuildingResponse(building), nil
}

// List lista edificios: todos para admin, solo los administrados para manager.
func (uc *BuildingUseCase) List(callerID, role string) ([]dto.BuildingResponse, error) {
	var (
		list []*entity.Building
		err  error
	)
	if role == entity.RoleAdmin {
		list, err = uc.repo.List()
	} else {
		list, err = uc.repo.ListByManager(callerID)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.BuildingResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *toBuildingResponse(b))
	}
	return items, nil
}

func toBuildingResponse(b *entity.Building) *dto.BuildingResponse {
	return &dto.BuildingResponse{
		ID:        b.ID,
		Name:      b.Name,
		Address:   b.Address,
		ManagerID: b.ManagerID,
		CreatedAt: b.CreatedAt,
	}
}
