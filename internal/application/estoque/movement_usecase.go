package estoque

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

// MovementUseCase movimientos manuales y consulta del libro.
type MovementUseCase struct {
	recorder   *MovementRecorder
	movRepo    repository.MovimentacaoRepository
	insumoRepo repository.InsumoRepository
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(
	recorder *MovementRecorder,
	movRepo repository.MovimentacaoRepository,
	insumoRepo repository.InsumoRepository,
) *MovementUseCase {
	return &MovementUseCase{recorder: recorder, movRepo: movRepo, insumoRepo: insumoRepo}
}

// Register registra un movimiento manual (IN, OUT, PRODUCTION, DISCARD o ADJUSTMENT).
func (uc *MovementUseCase) Register(ctx context.Context, tenantID int64, userID *int64, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	if in.InsumoID == 0 || !entity.ValidMovementType(in.Type) {
		return nil, domain.Invalid("insumo y tipo de movimiento válidos son requeridos")
	}
	if in.Type == entity.MovementTypeADJUSTMENT && in.TargetQuantity == nil {
		return nil, domain.Invalid("el ajuste requiere target_quantity")
	}
	mov, err := uc.recorder.Record(ctx, MovementInput{
		TenantID:       tenantID,
		UserID:         userID,
		InsumoID:       in.InsumoID,
		LoteID:         in.LoteID,
		Type:           in.Type,
		Quantity:       in.Quantity,
		TargetQuantity: in.TargetQuantity,
		Note:           in.Note,
		SourceType:     entity.SourceManual,
	})
	if err != nil {
		return nil, err
	}
	out := toMovementResponse(mov)
	return &out, nil
}

// GetByID obtiene una entrada del libro.
func (uc *MovementUseCase) GetByID(ctx context.Context, tenantID, id int64) (*dto.MovementResponse, error) {
	mov, err := uc.movRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, domain.NotFound("movimiento no encontrado")
	}
	out := toMovementResponse(mov)
	return &out, nil
}

// List lista el libro con filtros, paginación y totales de entradas/salidas/ajustes.
func (uc *MovementUseCase) List(ctx context.Context, tenantID int64, q dto.ListMovementsQuery) (*dto.MovementListResponse, error) {
	if q.Type != "" && !entity.ValidMovementType(q.Type) {
		return nil, domain.Invalid("tipo de movimiento inválido")
	}
	if q.From != nil && q.To != nil && q.From.After(*q.To) {
		return nil, domain.Invalid("el rango de fechas es inválido")
	}
	q.DefaultPage()
	list, totals, err := uc.movRepo.List(ctx, tenantID, entity.MovementFilter{
		InsumoID: q.InsumoID,
		Type:     q.Type,
		From:     q.From,
		To:       q.To,
	}, q.Limit, q.Offset)
	if err != nil {
		return nil, err
	}
	return &dto.MovementListResponse{
		Items: toMovementResponses(list),
		Totals: dto.MovementTotalsResponse{
			Incoming:    totals.Incoming,
			Outgoing:    totals.Outgoing,
			Adjustments: totals.Adjustments,
		},
		Page: dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: totals.Total},
	}, nil
}

// LedgerBalance reconstruye el saldo del insumo sumando sus entradas con signo y lo
// compara con la cantidad guardada.
func (uc *MovementUseCase) LedgerBalance(ctx context.Context, tenantID, insumoID int64) (*dto.LedgerBalanceResponse, error) {
	insumo, err := uc.insumoRepo.GetByID(ctx, tenantID, insumoID)
	if err != nil {
		return nil, err
	}
	if insumo == nil {
		return nil, domain.NotFound("insumo no encontrado")
	}
	entries, err := uc.movRepo.ListByInsumo(ctx, tenantID, insumoID)
	if err != nil {
		return nil, err
	}
	sum := decimal.Zero
	for _, m := range entries {
		sum = sum.Add(m.SignedQuantity())
	}
	return &dto.LedgerBalanceResponse{
		InsumoID:       insumoID,
		Quantity:       insumo.Quantity,
		LedgerQuantity: sum,
		Entries:        len(entries),
		Consistent:     sum.Equal(insumo.Quantity),
	}, nil
}
