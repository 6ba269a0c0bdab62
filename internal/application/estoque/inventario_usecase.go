package estoque

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	domestoque "github.com/jhoicas/estoque-api/internal/domain/estoque"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

// InventarioUseCase conteo físico y conciliación del saldo del sistema.
type InventarioUseCase struct {
	txRunner TxRunner
	recorder *MovementRecorder
	repo     repository.InventarioRepository
	now      func() time.Time
}

// NewInventarioUseCase construye el caso de uso.
func NewInventarioUseCase(txRunner TxRunner, recorder *MovementRecorder, repo repository.InventarioRepository) *InventarioUseCase {
	return &InventarioUseCase{txRunner: txRunner, recorder: recorder, repo: repo, now: time.Now}
}

// Create abre una sesión PENDENTE.
func (uc *InventarioUseCase) Create(ctx context.Context, tenantID int64, userID *int64, in dto.CreateInventarioRequest) (*dto.InventarioResponse, error) {
	code := domestoque.NormalizeCode(in.Code)
	if code == "" {
		return nil, domain.Invalid("el código del inventario es requerido")
	}
	if in.StartDate.IsZero() {
		return nil, domain.Invalid("la fecha de inicio es requerida")
	}
	existing, err := uc.repo.GetByCode(ctx, tenantID, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Duplicate("ya existe un inventario con este código")
	}
	inv := &entity.Inventario{
		TenantID:      tenantID,
		Code:          code,
		StartDate:     in.StartDate,
		Status:        entity.InventarioStatusPendente,
		ResponsibleID: userID,
		Notes:         in.Notes,
		CreatedAt:     uc.now(),
	}
	if err := uc.repo.Create(ctx, inv); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.Duplicate("ya existe un inventario con este código")
		}
		return nil, err
	}
	return uc.GetByID(ctx, tenantID, inv.ID)
}

// AddLine agrega una línea tomando la foto del saldo actual (del lote si se indica).
func (uc *InventarioUseCase) AddLine(ctx context.Context, tenantID, id int64, in dto.AddInventarioItemRequest) (*dto.InventarioResponse, error) {
	if in.PhysicalQuantity != nil {
		if err := checkPhysical(*in.PhysicalQuantity); err != nil {
			return nil, err
		}
	}
	err := uc.txRunner.Run(ctx, func(repos TxRepos) error {
		inv, err := lockOpenInventario(ctx, repos, tenantID, id)
		if err != nil {
			return err
		}
		insumo, err := repos.Insumos.GetByID(ctx, tenantID, in.InsumoID)
		if err != nil {
			return err
		}
		if insumo == nil {
			return domain.NotFound("insumo no encontrado")
		}
		system := insumo.Quantity
		if in.LoteID != nil {
			lote, err := repos.Lotes.GetByID(ctx, tenantID, *in.LoteID)
			if err != nil {
				return err
			}
			if lote == nil || lote.InsumoID != insumo.ID {
				return domain.NotFound("lote no encontrado para este insumo")
			}
			system = lote.Quantity
		}
		items, err := repos.Inventarios.ListItems(ctx, inv.ID)
		if err != nil {
			return err
		}
		// Un insumo se cuenta completo o por lotes, nunca de las dos formas en la misma sesión.
		for _, it := range items {
			if it.InsumoID != in.InsumoID {
				continue
			}
			if it.SameSlot(in.InsumoID, in.LoteID) {
				return domain.Duplicate("el insumo (y lote) ya está en este inventario")
			}
			if it.LoteID == nil {
				return domain.Conflict("el insumo ya se cuenta sin lote en este inventario")
			}
			if in.LoteID == nil {
				return domain.Conflict("el insumo ya se cuenta por lote en este inventario")
			}
		}
		item := &entity.ItemInventario{
			InventarioID:   inv.ID,
			InsumoID:       insumo.ID,
			LoteID:         in.LoteID,
			SystemQuantity: system,
			Justification:  in.Justification,
		}
		if in.PhysicalQuantity != nil {
			item.SetPhysical(*in.PhysicalQuantity)
		}
		return repos.Inventarios.CreateItem(ctx, item)
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, tenantID, id)
}

// UpdateLines registra los conteos de líneas existentes y recalcula las diferencias.
func (uc *InventarioUseCase) UpdateLines(ctx context.Context, tenantID, id int64, in dto.UpdateInventarioItemsRequest) (*dto.InventarioResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.Invalid("debe enviar al menos una línea")
	}
	err := uc.txRunner.Run(ctx, func(repos TxRepos) error {
		inv, err := lockOpenInventario(ctx, repos, tenantID, id)
		if err != nil {
			return err
		}
		items, err := repos.Inventarios.ListItems(ctx, inv.ID)
		if err != nil {
			return err
		}
		byID := make(map[int64]*entity.ItemInventario, len(items))
		for _, it := range items {
			byID[it.ID] = it
		}
		for _, u := range in.Items {
			item, ok := byID[u.ItemID]
			if !ok {
				return domain.Invalid(fmt.Sprintf("la línea %d no pertenece a este inventario", u.ItemID))
			}
			if err := checkPhysical(u.PhysicalQuantity); err != nil {
				return err
			}
			item.SetPhysical(u.PhysicalQuantity)
			item.Justification = u.Justification
			if err := repos.Inventarios.UpdateItem(ctx, item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, tenantID, id)
}

// Finalize concilia cada línea contra el saldo actual generando un ADJUSTMENT por línea con
// diferencia y concluye la sesión. Falla completa si alguna línea no se puede ajustar.
func (uc *InventarioUseCase) Finalize(ctx context.Context, tenantID int64, userID *int64, id int64) (*dto.FinalizeInventarioResponse, error) {
	var adjustments []*entity.Movimentacao
	err := uc.txRunner.Run(ctx, func(repos TxRepos) error {
		inv, err := lockOpenInventario(ctx, repos, tenantID, id)
		if err != nil {
			return err
		}
		items, err := repos.Inventarios.ListItems(ctx, inv.ID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return domain.Invalid("el inventario no tiene líneas")
		}
		for _, it := range items {
			if it.PhysicalQuantity == nil {
				return domain.Invalid(fmt.Sprintf("la línea %d no fue contada", it.ID))
			}
		}

		sortForLocking(items)
		txID := uuid.New().String()
		sourceID := inv.ID
		for _, it := range items {
			target, changed, err := reconcileTarget(ctx, repos, tenantID, it)
			if err != nil {
				return err
			}
			if !changed {
				continue
			}
			mov, err := uc.recorder.RecordInTx(ctx, repos, MovementInput{
				TenantID:       tenantID,
				UserID:         userID,
				InsumoID:       it.InsumoID,
				LoteID:         it.LoteID,
				Type:           entity.MovementTypeADJUSTMENT,
				TargetQuantity: &target,
				Note:           "inventario " + inv.Code,
				SourceID:       &sourceID,
				SourceType:     entity.SourceInventario,
				TransactionID:  txID,
			})
			if err != nil {
				return err
			}
			adjustments = append(adjustments, mov)
		}

		end := uc.now()
		inv.Status = entity.InventarioStatusConcluido
		inv.EndDate = &end
		return repos.Inventarios.UpdateStatus(ctx, inv)
	})
	if err != nil {
		return nil, err
	}
	inv, err := uc.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return &dto.FinalizeInventarioResponse{Inventario: *inv, Adjustments: toMovementResponses(adjustments)}, nil
}

// Cancel cancela una sesión PENDENTE sin tocar el stock.
func (uc *InventarioUseCase) Cancel(ctx context.Context, tenantID, id int64) (*dto.InventarioResponse, error) {
	err := uc.txRunner.Run(ctx, func(repos TxRepos) error {
		inv, err := lockOpenInventario(ctx, repos, tenantID, id)
		if err != nil {
			return err
		}
		end := uc.now()
		inv.Status = entity.InventarioStatusCancelado
		inv.EndDate = &end
		return repos.Inventarios.UpdateStatus(ctx, inv)
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, tenantID, id)
}

// GetByID obtiene la sesión con sus líneas.
func (uc *InventarioUseCase) GetByID(ctx context.Context, tenantID, id int64) (*dto.InventarioResponse, error) {
	inv, err := uc.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.NotFound("inventario no encontrado")
	}
	items, err := uc.repo.ListItems(ctx, inv.ID)
	if err != nil {
		return nil, err
	}
	inv.Items = items
	return toInventarioResponse(inv), nil
}

func lockOpenInventario(ctx context.Context, repos TxRepos, tenantID, id int64) (*entity.Inventario, error) {
	inv, err := repos.Inventarios.GetForUpdate(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.NotFound("inventario no encontrado")
	}
	if inv.IsTerminal() {
		return nil, domain.Conflict(fmt.Sprintf("el inventario está %s", inv.Status))
	}
	return inv, nil
}

// reconcileTarget calcula la cantidad final del insumo para que la línea quede igual a lo
// contado. La diferencia se mide contra el saldo actual, no contra la foto de la línea.
// En líneas de lote la diferencia del lote se traslada al saldo del insumo.
func reconcileTarget(ctx context.Context, repos TxRepos, tenantID int64, it *entity.ItemInventario) (decimal.Decimal, bool, error) {
	physical := *it.PhysicalQuantity
	insumo, err := repos.Insumos.GetForUpdate(ctx, tenantID, it.InsumoID)
	if err != nil {
		return decimal.Zero, false, err
	}
	if insumo == nil {
		return decimal.Zero, false, domain.NotFound("insumo no encontrado")
	}
	if it.LoteID == nil {
		return physical, !physical.Equal(insumo.Quantity), nil
	}
	lote, err := repos.Lotes.GetForUpdate(ctx, tenantID, *it.LoteID)
	if err != nil {
		return decimal.Zero, false, err
	}
	if lote == nil || lote.InsumoID != insumo.ID {
		return decimal.Zero, false, domain.NotFound("lote no encontrado para este insumo")
	}
	delta := physical.Sub(lote.Quantity)
	return insumo.Quantity.Add(delta), !delta.IsZero(), nil
}

func checkPhysical(q decimal.Decimal) error {
	if q.IsNegative() {
		return domain.Invalid("la cantidad física no puede ser negativa")
	}
	return domestoque.CheckQuantity("la cantidad física", q)
}

// sortForLocking ordena las líneas por insumo y luego por lote, el orden en que se
// bloquean las filas de insumo y lote.
func sortForLocking(items []*entity.ItemInventario) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.InsumoID != b.InsumoID {
			return a.InsumoID < b.InsumoID
		}
		switch {
		case a.LoteID == nil:
			return b.LoteID != nil
		case b.LoteID == nil:
			return false
		}
		return *a.LoteID < *b.LoteID
	})
}
