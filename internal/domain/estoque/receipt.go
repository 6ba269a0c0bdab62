package estoque

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// ReceiptLine cantidad recibida acumulada informada para un insumo de la compra.
type ReceiptLine struct {
	InsumoID           int64
	CumulativeReceived decimal.Decimal
	InvoiceNumber      string
}

// LineReceipt resultado por línea: acumulado nuevo e incremento a ingresar al stock.
type LineReceipt struct {
	Item          *entity.ItemCompra
	NewCumulative decimal.Decimal
	Increment     decimal.Decimal
	Complete      bool
}

// ReceiptPlan plan completo de una recepción, calculado antes de persistir.
type ReceiptPlan struct {
	Lines         []LineReceipt
	Status        string // derivado con OrderStatus sobre los acumulados resultantes
	InvoiceNumber string // último número de factura informado por línea
}

// PlanReceipt valida la recepción contra las líneas persistidas de la compra.
// La cantidad enviada es el total acumulado recibido, no un incremento; un acumulado
// menor al ya registrado se rechaza. Las líneas no enviadas cuentan con su recibido actual
// para decidir el estado. Lines queda ordenado por insumo, que es el orden en que se
// bloquean las filas al aplicar la recepción.
func PlanReceipt(items []*entity.ItemCompra, lines []ReceiptLine) (*ReceiptPlan, error) {
	if len(lines) == 0 {
		return nil, domain.Invalid("la recepción debe incluir al menos un ítem")
	}
	byInsumo := make(map[int64]*entity.ItemCompra, len(items))
	for _, it := range items {
		byInsumo[it.InsumoID] = it
	}

	plan := &ReceiptPlan{Lines: make([]LineReceipt, 0, len(lines))}
	submitted := make(map[int64]bool, len(lines))
	for _, l := range lines {
		item, ok := byInsumo[l.InsumoID]
		if !ok {
			return nil, domain.Invalid(fmt.Sprintf("el insumo %d no pertenece a esta compra", l.InsumoID))
		}
		if submitted[l.InsumoID] {
			return nil, domain.Invalid(fmt.Sprintf("el insumo %d está repetido en la recepción", l.InsumoID))
		}
		submitted[l.InsumoID] = true
		if l.CumulativeReceived.LessThan(decimal.Zero) {
			return nil, domain.Invalid("la cantidad recibida no puede ser negativa")
		}
		if err := CheckQuantity("la cantidad recibida", l.CumulativeReceived); err != nil {
			return nil, err
		}
		if l.CumulativeReceived.LessThan(item.ReceivedQuantity) {
			return nil, domain.Invalid(fmt.Sprintf(
				"la cantidad recibida acumulada del insumo %d (%s) es menor a la ya registrada (%s)",
				l.InsumoID, l.CumulativeReceived, item.ReceivedQuantity))
		}
		plan.Lines = append(plan.Lines, LineReceipt{
			Item:          item,
			NewCumulative: l.CumulativeReceived,
			Increment:     l.CumulativeReceived.Sub(item.ReceivedQuantity),
			Complete:      l.CumulativeReceived.GreaterThanOrEqual(item.Quantity),
		})
		if l.InvoiceNumber != "" {
			plan.InvoiceNumber = l.InvoiceNumber
		}
	}

	sort.Slice(plan.Lines, func(i, j int) bool {
		return plan.Lines[i].Item.InsumoID < plan.Lines[j].Item.InsumoID
	})

	received := make(map[int64]decimal.Decimal, len(plan.Lines))
	for _, lr := range plan.Lines {
		received[lr.Item.InsumoID] = lr.NewCumulative
	}
	plan.Status = deriveStatus(items, received)
	return plan, nil
}

// OrderStatus deriva el estado de una compra no terminal a partir de lo recibido por línea:
// FINALIZADA si todas las líneas están completas, ABERTA si ninguna recibió nada y
// PARCIAL en otro caso.
func OrderStatus(items []*entity.ItemCompra) string {
	return deriveStatus(items, nil)
}

// deriveStatus usa received para las líneas presentes en el mapa y el recibido persistido
// para el resto.
func deriveStatus(items []*entity.ItemCompra, received map[int64]decimal.Decimal) string {
	allComplete, anyReceived := true, false
	for _, it := range items {
		got := it.ReceivedQuantity
		if v, ok := received[it.InsumoID]; ok {
			got = v
		}
		if got.LessThan(it.Quantity) {
			allComplete = false
		}
		if got.GreaterThan(decimal.Zero) {
			anyReceived = true
		}
	}
	switch {
	case allComplete:
		return entity.CompraStatusFinalizada
	case !anyReceived:
		return entity.CompraStatusAberta
	}
	return entity.CompraStatusParcial
}
