package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Reposicion-api/internal/application/dto"
	"github.com/jhoicas/Reposicion-api/internal/domain"
	"github.com/jhoicas/Reposicion-api/internal/domain/entity"
	"github.com/jhoicas/Reposicion-api/internal/domain/repository"
)

// ItemUseCase casos de uso CRUD del catálogo. QuantityOnHand solo cambia
// vía entregas conciliadas o conteo físico.
type ItemUseCase struct {
	repo repository.ItemRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(repo repository.ItemRepository) *ItemUseCase {
	return &ItemUseCase{repo: repo}
}

// Create da de alta un artículo con su stock inicial.
func (uc *ItemUseCase) Create(ctx context.Context, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	name, vendor := strings.TrimSpace(in.Name), strings.TrimSpace(in.Vendor)
	switch {
	case name == "":
		return nil, fmt.Errorf("%w: name requerido", domain.ErrValidation)
	case vendor == "":
		return nil, fmt.Errorf("%w: vendor requerido", domain.ErrValidation)
	case in.QuantityOnHand < 0:
		return nil, fmt.Errorf("%w: quantity_on_hand negativo", domain.ErrValidation)
	case in.Par < 0:
		return nil, fmt.Errorf("%w: par negativo", domain.ErrValidation)
	case in.UnitValue.IsNegative():
		return nil, fmt.Errorf("%w: unit_value negativo", domain.ErrValidation)
	case !entity.FitsMoneyScale(in.UnitValue):
		return nil, fmt.Errorf("%w: unit_value con más de %d decimales", domain.ErrValidation, entity.MoneyScale)
	}
	now := time.Now()
	item := &entity.Item{
		ID:             uuid.New().String(),
		Name:           name,
		Vendor:         vendor,
		Type:           strings.TrimSpace(in.Type),
		QuantityOnHand: in.QuantityOnHand,
		Par:            in.Par,
		UnitValue:      in.UnitValue,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	resp := dto.NewItemResponse(item)
	return &resp, nil
}

// GetByID obtiene un artículo; domain.ErrNotFound si no existe.
func (uc *ItemUseCase) GetByID(ctx context.Context, id string) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewItemResponse(item)
	return &resp, nil
}

// Update actualiza datos descriptivos, par y valor unitario.
func (uc *ItemUseCase) Update(ctx context.Context, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, fmt.Errorf("%w: name vacío", domain.ErrValidation)
		}
		item.Name = strings.TrimSpace(*in.Name)
	}
	if in.Vendor != nil {
		if strings.TrimSpace(*in.Vendor) == "" {
			return nil, fmt.Errorf("%w: vendor vacío", domain.ErrValidation)
		}
		item.Vendor = strings.TrimSpace(*in.Vendor)
	}
	if in.Type != nil {
		item.Type = strings.TrimSpace(*in.Type)
	}
	if in.Par != nil {
		if *in.Par < 0 {
			return nil, fmt.Errorf("%w: par negativo", domain.ErrValidation)
		}
		item.Par = *in.Par
	}
	if in.UnitValue != nil {
		if in.UnitValue.IsNegative() {
			return nil, fmt.Errorf("%w: unit_value negativo", domain.ErrValidation)
		}
		if !entity.FitsMoneyScale(*in.UnitValue) {
			return nil, fmt.Errorf("%w: unit_value con más de %d decimales", domain.ErrValidation, entity.MoneyScale)
		}
		item.UnitValue = *in.UnitValue
	}
	if err := uc.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	resp := dto.NewItemResponse(item)
	return &resp, nil
}

// List lista el catálogo filtrado por proveedor o tipo (proveedor gana).
func (uc *ItemUseCase) List(ctx context.Context, vendor, itemType string) (*dto.ItemListResponse, error) {
	filter := repository.ItemFilter{Vendor: strings.TrimSpace(vendor)}
	if filter.Vendor == "" {
		filter.Type = strings.TrimSpace(itemType)
	}
	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ItemResponse, 0, len(list))
	for i := range list {
		items = append(items, dto.NewItemResponse(&list[i]))
	}
	return &dto.ItemListResponse{Items: items, Total: len(items)}, nil
}

// Delete elimina un artículo. Las órdenes abiertas que lo referencian
// fallarán al conciliar con domain.ErrNotFound.
func (uc *ItemUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}
