package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestMovimentacao_SignedQuantity(t *testing.T) {
	cases := []struct {
		name string
		mov  entity.Movimentacao
		want string
	}{
		{"entrada", entity.Movimentacao{Type: entity.MovementTypeIN, Quantity: d("5")}, "5"},
		{"salida", entity.Movimentacao{Type: entity.MovementTypeOUT, Quantity: d("5")}, "-5"},
		{"producción", entity.Movimentacao{Type: entity.MovementTypePRODUCTION, Quantity: d("2.5")}, "-2.5"},
		{"descarte", entity.Movimentacao{Type: entity.MovementTypeDISCARD, Quantity: d("1")}, "-1"},
		{"ajuste a la baja", entity.Movimentacao{Type: entity.MovementTypeADJUSTMENT, Quantity: d("5"), BalanceBefore: d("25"), BalanceAfter: d("20")}, "-5"},
		{"ajuste al alza", entity.Movimentacao{Type: entity.MovementTypeADJUSTMENT, Quantity: d("3"), BalanceBefore: d("7"), BalanceAfter: d("10")}, "3"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, d(tc.want).Equal(tc.mov.SignedQuantity()), "got %s", tc.mov.SignedQuantity())
		})
	}
}

func TestItemCompra_Recalculate_PendienteNoNegativo(t *testing.T) {
	it := &entity.ItemCompra{Quantity: d("10"), UnitPrice: d("2.50"), ReceivedQuantity: d("12")}
	it.Recalculate()
	assert.True(t, d("25").Equal(it.TotalPrice))
	assert.True(t, it.PendingQuantity.IsZero())
	assert.True(t, it.IsComplete())
}

func TestItemInventario_SameSlot(t *testing.T) {
	lot := int64(7)
	other := int64(8)
	line := &entity.ItemInventario{InsumoID: 1, LoteID: &lot}
	assert.True(t, line.SameSlot(1, &lot))
	assert.False(t, line.SameSlot(1, &other))
	assert.False(t, line.SameSlot(1, nil))
	assert.True(t, (&entity.ItemInventario{InsumoID: 1}).SameSlot(1, nil))
}

func TestItemInventario_SetPhysical(t *testing.T) {
	line := &entity.ItemInventario{SystemQuantity: d("25")}
	line.SetPhysical(d("20"))
	assert.True(t, d("-5").Equal(*line.Difference))
}
