package estoque

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	domestoque "github.com/jhoicas/estoque-api/internal/domain/estoque"
)

// MovementInput entrada del registrador genérico de movimientos.
// Quantity es la magnitud (positiva). En ADJUSTMENT se usa TargetQuantity, la cantidad
// final absoluta, y Quantity se ignora. UnitCost solo aplica a IN y recalcula el costo promedio.
type MovementInput struct {
	TenantID       int64
	UserID         *int64
	InsumoID       int64
	LoteID         *int64
	Type           string
	Quantity       decimal.Decimal
	TargetQuantity *decimal.Decimal
	UnitCost       *decimal.Decimal
	Note           string
	SourceID       *int64
	SourceType     string
	TransactionID  string // vacío = se genera uno nuevo
}

// MovementRecorder es la única primitiva que modifica saldo y costo de un insumo.
// Bloquea la fila (SELECT FOR UPDATE), aplica el movimiento y agrega la entrada del libro;
// ambas escrituras se confirman juntas o ninguna. Con LoteID el saldo del lote varía igual.
type MovementRecorder struct {
	txRunner TxRunner
	now      func() time.Time
}

// NewMovementRecorder construye el registrador.
func NewMovementRecorder(txRunner TxRunner) *MovementRecorder {
	return &MovementRecorder{txRunner: txRunner, now: time.Now}
}

// Record abre su propia transacción y registra el movimiento.
func (r *MovementRecorder) Record(ctx context.Context, in MovementInput) (*entity.Movimentacao, error) {
	var mov *entity.Movimentacao
	err := r.txRunner.Run(ctx, func(repos TxRepos) error {
		var err error
		mov, err = r.RecordInTx(ctx, repos, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// RecordInTx registra el movimiento usando los repositorios del caller (misma transacción).
// Si retorna error el caller debe hacer rollback.
func (r *MovementRecorder) RecordInTx(ctx context.Context, repos TxRepos, in MovementInput) (*entity.Movimentacao, error) {
	if !entity.ValidMovementType(in.Type) {
		return nil, domain.Invalid("tipo de movimiento inválido")
	}
	// Bloquea la fila del insumo para serializar lecturas-modificaciones concurrentes
	insumo, err := repos.Insumos.GetForUpdate(ctx, in.TenantID, in.InsumoID)
	if err != nil {
		return nil, err
	}
	if insumo == nil {
		return nil, domain.NotFound("insumo no encontrado")
	}

	res, err := domestoque.ApplyMovement(in.Type, insumo.Quantity, in.Quantity, in.TargetQuantity)
	if err != nil {
		return nil, err
	}

	newCost := insumo.UnitCost
	movCost := insumo.UnitCost
	if in.Type == entity.MovementTypeIN && in.UnitCost != nil {
		if in.UnitCost.LessThan(decimal.Zero) {
			return nil, domain.Invalid("el costo unitario no puede ser negativo")
		}
		newCost = domestoque.CostCalculator(insumo.Quantity, insumo.UnitCost, res.Magnitude, *in.UnitCost)
		movCost = *in.UnitCost
	}

	if in.LoteID != nil {
		if err := r.applyToLot(ctx, repos, in, res.NewQuantity.Sub(insumo.Quantity)); err != nil {
			return nil, err
		}
	}

	if err := repos.Insumos.UpdateBalance(ctx, in.TenantID, insumo.ID, res.NewQuantity, newCost); err != nil {
		return nil, err
	}

	txID := in.TransactionID
	if txID == "" {
		txID = uuid.New().String()
	}
	mov := &entity.Movimentacao{
		TenantID:      in.TenantID,
		InsumoID:      insumo.ID,
		LoteID:        in.LoteID,
		Type:          in.Type,
		Quantity:      res.Magnitude,
		BalanceBefore: insumo.Quantity,
		BalanceAfter:  res.NewQuantity,
		UnitCost:      movCost,
		TransactionID: txID,
		SourceID:      in.SourceID,
		Note:          in.Note,
		ResponsibleID: in.UserID,
		CreatedAt:     r.now(),
	}
	if in.SourceType != "" {
		st := in.SourceType
		mov.SourceType = &st
	}
	if err := repos.Movimentacoes.Append(ctx, mov); err != nil {
		return nil, err
	}
	return mov, nil
}

// applyToLot bloquea el lote y le aplica la misma variación que al insumo.
func (r *MovementRecorder) applyToLot(ctx context.Context, repos TxRepos, in MovementInput, delta decimal.Decimal) error {
	lote, err := repos.Lotes.GetForUpdate(ctx, in.TenantID, *in.LoteID)
	if err != nil {
		return err
	}
	if lote == nil || lote.InsumoID != in.InsumoID {
		return domain.NotFound("lote no encontrado para este insumo")
	}
	next := lote.Quantity.Add(delta)
	if next.IsNegative() {
		return domain.InsufficientStock("stock insuficiente en el lote")
	}
	return repos.Lotes.UpdateQuantity(ctx, in.TenantID, lote.ID, next)
}
