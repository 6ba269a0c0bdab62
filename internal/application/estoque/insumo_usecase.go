package estoque

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	domestoque "github.com/jhoicas/estoque-api/internal/domain/estoque"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

// NoteOpeningBalance nota del movimiento IN generado al crear un insumo con saldo inicial.
const NoteOpeningBalance = "saldo inicial"

// InsumoUseCase registro de insumos. Quantity y costo se manejan vía movimientos.
type InsumoUseCase struct {
	txRunner TxRunner
	recorder *MovementRecorder
	repo     repository.InsumoRepository
	unitRepo repository.UnidadeMedidaRepository
	now      func() time.Time
}

// NewInsumoUseCase construye el caso de uso.
func NewInsumoUseCase(
	txRunner TxRunner,
	recorder *MovementRecorder,
	repo repository.InsumoRepository,
	unitRepo repository.UnidadeMedidaRepository,
) *InsumoUseCase {
	return &InsumoUseCase{
		txRunner: txRunner,
		recorder: recorder,
		repo:     repo,
		unitRepo: unitRepo,
		now:      time.Now,
	}
}

// Create crea un insumo. Si OpeningQuantity > 0 registra un IN de saldo inicial en la
// misma transacción, de modo que el libro siga siendo la fuente de verdad.
func (uc *InsumoUseCase) Create(ctx context.Context, tenantID int64, userID *int64, in dto.CreateInsumoRequest) (*dto.InsumoResponse, error) {
	code := domestoque.NormalizeCode(in.Code)
	if code == "" || in.Name == "" {
		return nil, domain.Invalid("código y nombre son requeridos")
	}
	if in.UnitCost.LessThan(decimal.Zero) || in.MinimumQuantity.LessThan(decimal.Zero) || in.OpeningQuantity.LessThan(decimal.Zero) {
		return nil, domain.Invalid("costo, mínimo y saldo inicial no pueden ser negativos")
	}
	if err := domestoque.CheckMoney("el costo", in.UnitCost); err != nil {
		return nil, err
	}
	if err := domestoque.CheckQuantity("el mínimo", in.MinimumQuantity); err != nil {
		return nil, err
	}
	if err := domestoque.CheckQuantity("el saldo inicial", in.OpeningQuantity); err != nil {
		return nil, err
	}
	if err := uc.checkUnit(ctx, in.UnitID); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByCode(ctx, tenantID, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Duplicate("ya existe un insumo con este código")
	}

	now := uc.now()
	insumo := &entity.Insumo{
		TenantID:        tenantID,
		Code:            code,
		Name:            in.Name,
		UnitID:          in.UnitID,
		Quantity:        decimal.Zero,
		UnitCost:        in.UnitCost,
		MinimumQuantity: in.MinimumQuantity,
		Active:          true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	err = uc.txRunner.Run(ctx, func(repos TxRepos) error {
		if err := repos.Insumos.Create(ctx, insumo); err != nil {
			return err
		}
		if !in.OpeningQuantity.GreaterThan(decimal.Zero) {
			return nil
		}
		sourceID := insumo.ID
		_, err := uc.recorder.RecordInTx(ctx, repos, MovementInput{
			TenantID:   tenantID,
			UserID:     userID,
			InsumoID:   insumo.ID,
			Type:       entity.MovementTypeIN,
			Quantity:   in.OpeningQuantity,
			Note:       NoteOpeningBalance,
			SourceID:   &sourceID,
			SourceType: entity.SourceAbertura,
		})
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.Duplicate("ya existe un insumo con este código")
		}
		return nil, err
	}
	return uc.GetByID(ctx, tenantID, insumo.ID)
}

// GetByID obtiene un insumo del tenant.
func (uc *InsumoUseCase) GetByID(ctx context.Context, tenantID, id int64) (*dto.InsumoResponse, error) {
	insumo, err := uc.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if insumo == nil {
		return nil, domain.NotFound("insumo no encontrado")
	}
	return toInsumoResponse(insumo), nil
}

// Update actualiza datos administrativos. No modifica la cantidad.
func (uc *InsumoUseCase) Update(ctx context.Context, tenantID, id int64, in dto.UpdateInsumoRequest) (*dto.InsumoResponse, error) {
	insumo, err := uc.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if insumo == nil {
		return nil, domain.NotFound("insumo no encontrado")
	}
	if in.Code != nil {
		code := domestoque.NormalizeCode(*in.Code)
		if code == "" {
			return nil, domain.Invalid("el código no puede estar vacío")
		}
		other, err := uc.repo.GetByCode(ctx, tenantID, code)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != insumo.ID {
			return nil, domain.Duplicate("ya existe un insumo con este código")
		}
		insumo.Code = code
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.Invalid("el nombre no puede estar vacío")
		}
		insumo.Name = *in.Name
	}
	if in.UnitID != nil {
		if err := uc.checkUnit(ctx, *in.UnitID); err != nil {
			return nil, err
		}
		insumo.UnitID = *in.UnitID
	}
	if in.UnitCost != nil {
		if in.UnitCost.LessThan(decimal.Zero) {
			return nil, domain.Invalid("el costo no puede ser negativo")
		}
		if err := domestoque.CheckMoney("el costo", *in.UnitCost); err != nil {
			return nil, err
		}
		insumo.UnitCost = *in.UnitCost
	}
	if in.MinimumQuantity != nil {
		if in.MinimumQuantity.LessThan(decimal.Zero) {
			return nil, domain.Invalid("el mínimo no puede ser negativo")
		}
		if err := domestoque.CheckQuantity("el mínimo", *in.MinimumQuantity); err != nil {
			return nil, err
		}
		insumo.MinimumQuantity = *in.MinimumQuantity
	}
	if in.Active != nil {
		insumo.Active = *in.Active
	}
	insumo.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, insumo); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.Duplicate("ya existe un insumo con este código")
		}
		return nil, err
	}
	return uc.GetByID(ctx, tenantID, id)
}

// Delete elimina un insumo sin movimientos, lotes ni fichas técnicas que lo referencien.
func (uc *InsumoUseCase) Delete(ctx context.Context, tenantID, id int64) error {
	insumo, err := uc.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if insumo == nil {
		return domain.NotFound("insumo no encontrado")
	}
	deps, err := uc.repo.CountDependents(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if deps.Any() {
		return domain.Conflict("el insumo tiene movimientos, lotes o fichas técnicas asociadas")
	}
	return uc.repo.Delete(ctx, tenantID, id)
}

// List lista insumos del tenant; belowMinimum filtra los que están bajo el mínimo.
func (uc *InsumoUseCase) List(ctx context.Context, tenantID int64, belowMinimum bool, page dto.PageRequest) (*dto.InsumoListResponse, error) {
	page.DefaultPage()
	list, total, err := uc.repo.List(ctx, tenantID, belowMinimum, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InsumoResponse, 0, len(list))
	for _, i := range list {
		items = append(items, *toInsumoResponse(i))
	}
	return &dto.InsumoListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

func (uc *InsumoUseCase) checkUnit(ctx context.Context, unitID int64) error {
	if unitID == 0 {
		return domain.Invalid("la unidad de medida es requerida")
	}
	unit, err := uc.unitRepo.GetByID(ctx, unitID)
	if err != nil {
		return err
	}
	if unit == nil {
		return domain.Invalid("unidad de medida no encontrada")
	}
	return nil
}
