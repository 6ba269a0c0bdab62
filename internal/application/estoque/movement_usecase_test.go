package estoque_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/estoque"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

func createInsumo(t *testing.T, f *fixture, code string, opening, cost string) int64 {
	t.Helper()
	out, err := f.insumos.Create(context.Background(), tenantID, testUser, dto.CreateInsumoRequest{
		Code:            code,
		Name:            "Insumo " + code,
		UnitID:          1,
		UnitCost:        d(cost),
		OpeningQuantity: d(opening),
	})
	require.NoError(t, err)
	return out.ID
}

func assertLedgerConsistent(t *testing.T, f *fixture, insumoID int64) {
	t.Helper()
	bal, err := f.movements.LedgerBalance(context.Background(), tenantID, insumoID)
	require.NoError(t, err)
	assert.True(t, bal.Consistent, "saldo %s, libro %s", bal.Quantity, bal.LedgerQuantity)
}

func TestRecorder_EntradaConCosto_PromedioPonderado(t *testing.T) {
	f := newFixture()
	id := createInsumo(t, f, "farinha", "10", "3.00")

	mov, err := f.recorder.Record(context.Background(), estoque.MovementInput{
		TenantID: tenantID,
		InsumoID: id,
		Type:     entity.MovementTypeIN,
		Quantity: d("10"),
		UnitCost: dp("5.00"),
	})
	require.NoError(t, err)

	got := f.store.insumo(t, id)
	assert.True(t, d("20").Equal(got.Quantity))
	assert.True(t, d("4.00").Equal(got.UnitCost))
	assert.True(t, d("5.00").Equal(mov.UnitCost))
	assert.True(t, d("10").Equal(mov.BalanceBefore))
	assert.True(t, d("20").Equal(mov.BalanceAfter))
	assert.NotEmpty(t, mov.TransactionID)
	assertLedgerConsistent(t, f, id)
}

func TestRecorder_SalidaInsuficiente_NoModificaNada(t *testing.T) {
	f := newFixture()
	id := createInsumo(t, f, "oleo", "10", "2.00")
	before := len(f.store.movements())

	_, err := f.movements.Register(context.Background(), tenantID, testUser, dto.RegisterMovementRequest{
		InsumoID: id,
		Type:     entity.MovementTypeOUT,
		Quantity: d("50"),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.True(t, d("10").Equal(f.store.insumo(t, id).Quantity))
	assert.Len(t, f.store.movements(), before)
}

func TestRecorder_FalloAlAgregarEntrada_RevierteSaldo(t *testing.T) {
	f := newFixture()
	id := createInsumo(t, f, "sal", "10", "1.00")
	f.store.failOnAppend = func(*entity.Movimentacao) error { return errors.New("disk full") }

	_, err := f.movements.Register(context.Background(), tenantID, nil, dto.RegisterMovementRequest{
		InsumoID: id,
		Type:     entity.MovementTypeIN,
		Quantity: d("5"),
	})
	require.Error(t, err)
	f.store.failOnAppend = nil

	assert.True(t, d("10").Equal(f.store.insumo(t, id).Quantity))
	assert.Len(t, f.store.movements(), 1)
	assertLedgerConsistent(t, f, id)
}

func TestRegister_AjusteUsaCantidadObjetivo(t *testing.T) {
	f := newFixture()
	id := createInsumo(t, f, "acucar", "25", "1.00")

	out, err := f.movements.Register(context.Background(), tenantID, testUser, dto.RegisterMovementRequest{
		InsumoID:       id,
		Type:           entity.MovementTypeADJUSTMENT,
		TargetQuantity: dp("20"),
		Note:           "conteo rápido",
	})
	require.NoError(t, err)
	assert.True(t, d("5").Equal(out.Quantity))
	assert.True(t, d("20").Equal(out.BalanceAfter))
	require.NotNil(t, out.SourceType)
	assert.Equal(t, entity.SourceManual, *out.SourceType)
	assert.Equal(t, testUser, out.ResponsibleID)
	assertLedgerConsistent(t, f, id)
}

func TestRegister_AjusteSinObjetivo_Invalido(t *testing.T) {
	f := newFixture()
	id := createInsumo(t, f, "cacau", "1", "1.00")
	_, err := f.movements.Register(context.Background(), tenantID, nil, dto.RegisterMovementRequest{
		InsumoID: id,
		Type:     entity.MovementTypeADJUSTMENT,
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestRegister_InsumoDeOtroTenant_NotFound(t *testing.T) {
	f := newFixture()
	id := createInsumo(t, f, "leite", "1", "1.00")
	_, err := f.movements.Register(context.Background(), 99, nil, dto.RegisterMovementRequest{
		InsumoID: id,
		Type:     entity.MovementTypeIN,
		Quantity: d("1"),
	})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestRegister_SalidasConcurrentes_NuncaSaldoNegativo(t *testing.T) {
	f := newFixture()
	id := createInsumo(t, f, "ovo", "10", "0.50")

	var wg sync.WaitGroup
	var mu sync.Mutex
	ok, insufficient := 0, 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.movements.Register(context.Background(), tenantID, nil, dto.RegisterMovementRequest{
				InsumoID: id,
				Type:     entity.MovementTypePRODUCTION,
				Quantity: d("1"),
			})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				ok++
			} else if errors.Is(err, domain.ErrInsufficientStock) {
				insufficient++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, ok)
	assert.Equal(t, 10, insufficient)
	assert.True(t, f.store.insumo(t, id).Quantity.IsZero())
	assertLedgerConsistent(t, f, id)
}

func TestRecorder_LoteVariaIgualQueInsumo(t *testing.T) {
	f := newFixture()
	id := createInsumo(t, f, "queijo", "30", "10.00")
	loteID := f.store.addLote(id, "L1", d("12"))

	_, err := f.movements.Register(context.Background(), tenantID, nil, dto.RegisterMovementRequest{
		InsumoID: id,
		LoteID:   &loteID,
		Type:     entity.MovementTypeDISCARD,
		Quantity: d("2"),
	})
	require.NoError(t, err)
	assert.True(t, d("28").Equal(f.store.insumo(t, id).Quantity))
	assert.True(t, d("10").Equal(f.store.lote(loteID).Quantity))

	_, err = f.movements.Register(context.Background(), tenantID, nil, dto.RegisterMovementRequest{
		InsumoID: id,
		LoteID:   &loteID,
		Type:     entity.MovementTypeOUT,
		Quantity: d("11"),
	})
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.True(t, d("28").Equal(f.store.insumo(t, id).Quantity))
	assert.True(t, d("10").Equal(f.store.lote(loteID).Quantity))
}

func TestList_TotalesPorTipo(t *testing.T) {
	f := newFixture()
	id := createInsumo(t, f, "manteiga", "10", "1.00")
	ctx := context.Background()
	for _, req := range []dto.RegisterMovementRequest{
		{InsumoID: id, Type: entity.MovementTypeIN, Quantity: d("5")},
		{InsumoID: id, Type: entity.MovementTypeOUT, Quantity: d("1")},
		{InsumoID: id, Type: entity.MovementTypePRODUCTION, Quantity: d("1")},
		{InsumoID: id, Type: entity.MovementTypeDISCARD, Quantity: d("1")},
		{InsumoID: id, Type: entity.MovementTypeADJUSTMENT, TargetQuantity: dp("3")},
	} {
		_, err := f.movements.Register(ctx, tenantID, nil, req)
		require.NoError(t, err)
	}

	out, err := f.movements.List(ctx, tenantID, dto.ListMovementsQuery{InsumoID: &id, PageRequest: dto.PageRequest{Limit: 2}})
	require.NoError(t, err)
	assert.Len(t, out.Items, 2)
	assert.Equal(t, int64(6), out.Page.Total)
	assert.Equal(t, int64(2), out.Totals.Incoming)
	assert.Equal(t, int64(3), out.Totals.Outgoing)
	assert.Equal(t, int64(1), out.Totals.Adjustments)
	assertLedgerConsistent(t, f, id)

	_, err = f.movements.List(ctx, tenantID, dto.ListMovementsQuery{Type: "TRANSFER"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestGetByID_Movimiento(t *testing.T) {
	f := newFixture()
	id := createInsumo(t, f, "fermento", "4", "1.00")
	movs := f.store.movements()
	require.Len(t, movs, 1)

	out, err := f.movements.GetByID(context.Background(), tenantID, movs[0].ID)
	require.NoError(t, err)
	assert.Equal(t, id, out.InsumoID)

	_, err = f.movements.GetByID(context.Background(), tenantID, 9999)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestRegister_CantidadConMasDeTresDecimales_NoModificaNada(t *testing.T) {
	f := newFixture()
	id := createInsumo(t, f, "fermento", "2", "1.00")

	_, err := f.movements.Register(context.Background(), tenantID, nil, dto.RegisterMovementRequest{
		InsumoID: id,
		Type:     entity.MovementTypeOUT,
		Quantity: d("0.0004"),
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "%v", err)
	assert.True(t, d("2").Equal(f.store.insumo(t, id).Quantity))
	assert.Len(t, f.store.movements(), 1)
}
