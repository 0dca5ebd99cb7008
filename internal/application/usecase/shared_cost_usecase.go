package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/Check-karim/apartement-management-system-sub000/internal/application/dto"
	"github.com/Check-karim/apartement-management-system-sub000/internal/domain"
	"github.com/Check-karim/apartement-management-system-sub000/internal/domain/entity"
	"github.com/Check-karim/apartement-management-system-sub000/internal/domain/repository"
)

// SharedCostUseCase gestiona la configuración de costo compartido por edificio.
type SharedCostUseCase struct {
	repo         repository.SharedCostRepository
	buildingRepo repository.BuildingRepository
}

// NewSharedCostUseCase construye el caso de uso.
func NewSharedCostUseCase(repo repository.SharedCostRepository, buildingRepo repository.BuildingRepository) *SharedCostUseCase {
	return &SharedCostUseCase{repo: repo, buildingRepo: buildingRepo}
}

func (uc *SharedCostUseCase) checkBuildingScope(callerID, role, buildingID string) error {
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

// Set fija el costo compartido del edificio: desactiva la configuración activa
// anterior y crea la nueva como activa. Un valor negativo es inválido; cero
// equivale a no cobrar bombeo.
func (uc *SharedCostUseCase) Set(callerID, role, buildingID string, in dto.SetSharedCostRequest) (*dto.SharedCostResponse, error) {
	if in.TotalSharedCostPerPeriod.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkBuildingScope(callerID, role, buildingID); err != nil {
		return nil, err
	}
	now := time.Now()
	setting := &entity.SharedCostSetting{
		ID:                       uuid.New().String(),
		BuildingID:               buildingID,
		TotalSharedCostPerPeriod: in.TotalSharedCostPerPeriod,
		IsActive:                 true,
		CreatedAt:                now,
		UpdatedAt:                now,
	}
	if err := uc.repo.CreateAndActivate(setting); err != nil {
		return nil, err
	}
	return toSharedCostResponse(setting), nil
}

// GetActive devuelve la configuración activa del edificio, o ErrNotFound.
func (uc *SharedCostUseCase) GetActive(callerID, role, buildingID string) (*dto.SharedCostResponse, error) {
	if err := uc.checkBuildingScope(callerID, role, buildingID); err != nil {
		return nil, err
	}
	setting, err := uc.repo.GetActiveByBuilding(buildingID)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return nil, domain.ErrNotFound
	}
	return toSharedCostResponse(setting), nil
}

func toSharedCostResponse(s *entity.SharedCostSetting) *dto.SharedCostResponse {
	return &dto.SharedCostResponse{
		ID:                       s.ID,
		BuildingID:               s.BuildingID,
		TotalSharedCostPerPeriod: s.TotalSharedCostPerPeriod,
		IsActive:                 s.IsActive,
	}
}
