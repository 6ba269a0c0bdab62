package estoque_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/estoque"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──────────────────────────────────────────────────────────────────────────────
// CostCalculator
// ──────────────────────────────────────────────────────────────────────────────

func TestCostCalculator_PromedioPonderado(t *testing.T) {
	// (10×3 + 10×5) / 20 = 4.00
	got := estoque.CostCalculator(d("10"), d("3.00"), d("10"), d("5.00"))
	assert.True(t, d("4.00").Equal(got), "got %s", got)
}

func TestCostCalculator_DesdeCero(t *testing.T) {
	got := estoque.CostCalculator(decimal.Zero, decimal.Zero, d("40"), d("2.00"))
	assert.True(t, d("2.00").Equal(got))
}

func TestCostCalculator_IncrementoCero_NoCambiaCosto(t *testing.T) {
	got := estoque.CostCalculator(d("40"), d("2.37"), decimal.Zero, d("9.99"))
	assert.True(t, d("2.37").Equal(got))
}

func TestCostCalculator_RedondeaACentavos(t *testing.T) {
	// (3×1 + 1×2) / 4 = 1.25 ; (1×1 + 2×2) / 3 = 1.6666… → 1.67
	assert.True(t, d("1.25").Equal(estoque.CostCalculator(d("3"), d("1"), d("1"), d("2"))))
	assert.True(t, d("1.67").Equal(estoque.CostCalculator(d("1"), d("1"), d("2"), d("2"))))
}

func TestCostCalculator_SaldoResultanteNoPositivo_MantieneCosto(t *testing.T) {
	got := estoque.CostCalculator(d("-10"), d("3"), d("5"), d("8"))
	assert.True(t, d("3").Equal(got))
}

// ──────────────────────────────────────────────────────────────────────────────
// ApplyMovement
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyMovement_Entrada(t *testing.T) {
	res, err := estoque.ApplyMovement(entity.MovementTypeIN, d("10"), d("5"), nil)
	require.NoError(t, err)
	assert.True(t, d("15").Equal(res.NewQuantity))
	assert.True(t, d("5").Equal(res.Magnitude))
}

func TestApplyMovement_SalidaInsuficiente(t *testing.T) {
	for _, kind := range []string{entity.MovementTypeOUT, entity.MovementTypePRODUCTION, entity.MovementTypeDISCARD} {
		_, err := estoque.ApplyMovement(kind, d("10"), d("50"), nil)
		assert.ErrorIs(t, err, domain.ErrInsufficientStock, kind)
	}
}

func TestApplyMovement_SalidaExacta(t *testing.T) {
	res, err := estoque.ApplyMovement(entity.MovementTypeOUT, d("10"), d("10"), nil)
	require.NoError(t, err)
	assert.True(t, res.NewQuantity.IsZero())
}

func TestApplyMovement_AjusteFijaCantidadAbsoluta(t *testing.T) {
	target := d("20")
	res, err := estoque.ApplyMovement(entity.MovementTypeADJUSTMENT, d("25"), decimal.Zero, &target)
	require.NoError(t, err)
	assert.True(t, d("20").Equal(res.NewQuantity))
	assert.True(t, d("5").Equal(res.Magnitude))
}

func TestApplyMovement_AjusteSinCambio(t *testing.T) {
	target := d("25")
	_, err := estoque.ApplyMovement(entity.MovementTypeADJUSTMENT, d("25"), decimal.Zero, &target)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApplyMovement_EntradasInvalidas(t *testing.T) {
	_, err := estoque.ApplyMovement(entity.MovementTypeIN, d("1"), decimal.Zero, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = estoque.ApplyMovement("TRANSFER", d("1"), d("1"), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	neg := d("-1")
	_, err = estoque.ApplyMovement(entity.MovementTypeADJUSTMENT, d("1"), decimal.Zero, &neg)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// PlanReceipt
// ──────────────────────────────────────────────────────────────────────────────

func items() []*entity.ItemCompra {
	return []*entity.ItemCompra{
		{CompraID: 1, InsumoID: 10, Quantity: d("100"), UnitPrice: d("2.00"), ReceivedQuantity: decimal.Zero},
		{CompraID: 1, InsumoID: 20, Quantity: d("5"), UnitPrice: d("8.00"), ReceivedQuantity: d("5")},
	}
}

func TestPlanReceipt_Parcial(t *testing.T) {
	plan, err := estoque.PlanReceipt(items(), []estoque.ReceiptLine{{InsumoID: 10, CumulativeReceived: d("40"), InvoiceNumber: "NF-1"}})
	require.NoError(t, err)
	require.Len(t, plan.Lines, 1)
	assert.Equal(t, entity.CompraStatusParcial, plan.Status)
	assert.True(t, d("40").Equal(plan.Lines[0].Increment))
	assert.False(t, plan.Lines[0].Complete)
	assert.Equal(t, "NF-1", plan.InvoiceNumber)
}

func TestPlanReceipt_FinalizaConsiderandoLineasNoEnviadas(t *testing.T) {
	its := items()
	its[0].ReceivedQuantity = d("40")
	plan, err := estoque.PlanReceipt(its, []estoque.ReceiptLine{{InsumoID: 10, CumulativeReceived: d("100")}})
	require.NoError(t, err)
	assert.Equal(t, entity.CompraStatusFinalizada, plan.Status)
	assert.True(t, d("60").Equal(plan.Lines[0].Increment))
}

func TestPlanReceipt_LineaNoEnviadaIncompleta_QuedaParcial(t *testing.T) {
	its := items()
	its[1].ReceivedQuantity = d("1")
	plan, err := estoque.PlanReceipt(its, []estoque.ReceiptLine{{InsumoID: 10, CumulativeReceived: d("100")}})
	require.NoError(t, err)
	assert.Equal(t, entity.CompraStatusParcial, plan.Status)
}

func TestPlanReceipt_Reenvio_IncrementoCero(t *testing.T) {
	its := items()
	its[0].ReceivedQuantity = d("40")
	plan, err := estoque.PlanReceipt(its, []estoque.ReceiptLine{{InsumoID: 10, CumulativeReceived: d("40")}})
	require.NoError(t, err)
	assert.True(t, plan.Lines[0].Increment.IsZero())
}

func TestPlanReceipt_Rechazos(t *testing.T) {
	its := items()
	its[0].ReceivedQuantity = d("40")
	cases := map[string][]estoque.ReceiptLine{
		"sin ítems":             nil,
		"insumo ajeno":          {{InsumoID: 99, CumulativeReceived: d("1")}},
		"insumo repetido":       {{InsumoID: 10, CumulativeReceived: d("50")}, {InsumoID: 10, CumulativeReceived: d("60")}},
		"acumulado negativo":    {{InsumoID: 20, CumulativeReceived: d("-1")}},
		"acumulado decreciente": {{InsumoID: 10, CumulativeReceived: d("30")}},
	}
	for name, lines := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := estoque.PlanReceipt(its, lines)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "FARINHA-01", estoque.NormalizeCode("  farinha-01 "))
	assert.Equal(t, "AÇÚCAR", estoque.NormalizeCode("açúcar"))
}

func TestPlanReceipt_AcumuladoCeroSinRecepciones_QuedaAberta(t *testing.T) {
	its := []*entity.ItemCompra{
		{CompraID: 1, InsumoID: 10, Quantity: d("100"), UnitPrice: d("2.00"), ReceivedQuantity: decimal.Zero},
		{CompraID: 1, InsumoID: 20, Quantity: d("5"), UnitPrice: d("8.00"), ReceivedQuantity: decimal.Zero},
	}
	plan, err := estoque.PlanReceipt(its, []estoque.ReceiptLine{{InsumoID: 10, CumulativeReceived: decimal.Zero}})
	require.NoError(t, err)
	assert.Equal(t, entity.CompraStatusAberta, plan.Status)
	assert.True(t, plan.Lines[0].Increment.IsZero())
}

func TestPlanReceipt_LineasOrdenadasPorInsumo(t *testing.T) {
	its := items()
	its[1].ReceivedQuantity = decimal.Zero
	plan, err := estoque.PlanReceipt(its, []estoque.ReceiptLine{
		{InsumoID: 20, CumulativeReceived: d("5"), InvoiceNumber: "NF-20"},
		{InsumoID: 10, CumulativeReceived: d("1"), InvoiceNumber: "NF-10"},
	})
	require.NoError(t, err)
	require.Len(t, plan.Lines, 2)
	assert.Equal(t, int64(10), plan.Lines[0].Item.InsumoID)
	assert.Equal(t, int64(20), plan.Lines[1].Item.InsumoID)
	assert.Equal(t, "NF-10", plan.InvoiceNumber, "la última factura informada manda")
}

func TestPlanReceipt_AcumuladoConMasDeTresDecimales(t *testing.T) {
	_, err := estoque.PlanReceipt(items(), []estoque.ReceiptLine{{InsumoID: 10, CumulativeReceived: d("0.0004")}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOrderStatus(t *testing.T) {
	line := func(qty, received string) *entity.ItemCompra {
		return &entity.ItemCompra{Quantity: d(qty), ReceivedQuantity: d(received)}
	}
	cases := map[string]struct {
		items []*entity.ItemCompra
		want  string
	}{
		"nada recibido":          {[]*entity.ItemCompra{line("10", "0"), line("5", "0")}, entity.CompraStatusAberta},
		"una línea parcial":      {[]*entity.ItemCompra{line("10", "4"), line("5", "0")}, entity.CompraStatusParcial},
		"una completa y otra no": {[]*entity.ItemCompra{line("10", "10"), line("5", "0")}, entity.CompraStatusParcial},
		"todas completas":        {[]*entity.ItemCompra{line("10", "10"), line("5", "6")}, entity.CompraStatusFinalizada},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, estoque.OrderStatus(tc.items))
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Escala decimal
// ──────────────────────────────────────────────────────────────────────────────

func TestCheckPlaces(t *testing.T) {
	assert.NoError(t, estoque.CheckQuantity("cantidad", d("1.234")))
	assert.NoError(t, estoque.CheckQuantity("cantidad", d("1.2340")), "los ceros a la derecha no cuentan")
	assert.ErrorIs(t, estoque.CheckQuantity("cantidad", d("0.0004")), domain.ErrInvalidInput)
	assert.NoError(t, estoque.CheckMoney("precio", d("2.50")))
	assert.ErrorIs(t, estoque.CheckMoney("precio", d("2.005")), domain.ErrInvalidInput)
}

func TestApplyMovement_EscalaInvalida(t *testing.T) {
	_, err := estoque.ApplyMovement(entity.MovementTypeIN, d("1"), d("0.0004"), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	target := d("1.2345")
	_, err = estoque.ApplyMovement(entity.MovementTypeADJUSTMENT, d("1"), decimal.Zero, &target)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
