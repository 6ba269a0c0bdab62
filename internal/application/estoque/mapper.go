package estoque

import (
	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

func toInsumoResponse(i *entity.Insumo) *dto.InsumoResponse {
	if i == nil {
		return nil
	}
	return &dto.InsumoResponse{
		ID:              i.ID,
		TenantID:        i.TenantID,
		Code:            i.Code,
		Name:            i.Name,
		UnitID:          i.UnitID,
		UnitSymbol:      i.UnitSymbol,
		Quantity:        i.Quantity,
		UnitCost:        i.UnitCost,
		MinimumQuantity: i.MinimumQuantity,
		BelowMinimum:    i.BelowMinimum(),
		Active:          i.Active,
		CreatedAt:       i.CreatedAt,
		UpdatedAt:       i.UpdatedAt,
	}
}

func toMovementResponse(m *entity.Movimentacao) dto.MovementResponse {
	return dto.MovementResponse{
		ID:            m.ID,
		InsumoID:      m.InsumoID,
		LoteID:        m.LoteID,
		Type:          m.Type,
		Quantity:      m.Quantity,
		BalanceBefore: m.BalanceBefore,
		BalanceAfter:  m.BalanceAfter,
		UnitCost:      m.UnitCost,
		TransactionID: m.TransactionID,
		SourceID:      m.SourceID,
		SourceType:    m.SourceType,
		Note:          m.Note,
		ResponsibleID: m.ResponsibleID,
		CreatedAt:     m.CreatedAt,
	}
}

func toMovementResponses(list []*entity.Movimentacao) []dto.MovementResponse {
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toMovementResponse(m))
	}
	return out
}

func toCompraResponse(c *entity.Compra) *dto.CompraResponse {
	if c == nil {
		return nil
	}
	out := &dto.CompraResponse{
		ID:                   c.ID,
		SupplierID:           c.SupplierID,
		SupplierName:         c.SupplierName,
		OrderDate:            c.OrderDate,
		ExpectedDeliveryDate: c.ExpectedDeliveryDate,
		DeliveryDate:         c.DeliveryDate,
		InvoiceNumber:        c.InvoiceNumber,
		TotalValue:           c.TotalValue,
		Status:               c.Status,
		Notes:                c.Notes,
		CreatedAt:            c.CreatedAt,
		UpdatedAt:            c.UpdatedAt,
	}
	for _, it := range c.Items {
		out.Items = append(out.Items, dto.ItemCompraResponse{
			InsumoID:         it.InsumoID,
			Quantity:         it.Quantity,
			UnitPrice:        it.UnitPrice,
			TotalPrice:       it.TotalPrice,
			ReceivedQuantity: it.ReceivedQuantity,
			PendingQuantity:  it.PendingQuantity,
			Complete:         it.IsComplete(),
			Notes:            it.Notes,
		})
	}
	return out
}

func toInventarioResponse(inv *entity.Inventario) *dto.InventarioResponse {
	if inv == nil {
		return nil
	}
	out := &dto.InventarioResponse{
		ID:            inv.ID,
		Code:          inv.Code,
		StartDate:     inv.StartDate,
		EndDate:       inv.EndDate,
		Status:        inv.Status,
		ResponsibleID: inv.ResponsibleID,
		Notes:         inv.Notes,
		Items:         make([]dto.ItemInventarioResponse, 0, len(inv.Items)),
		CreatedAt:     inv.CreatedAt,
	}
	for _, it := range inv.Items {
		out.Items = append(out.Items, dto.ItemInventarioResponse{
			ID:               it.ID,
			InsumoID:         it.InsumoID,
			LoteID:           it.LoteID,
			SystemQuantity:   it.SystemQuantity,
			PhysicalQuantity: it.PhysicalQuantity,
			Difference:       it.Difference,
			Justification:    it.Justification,
		})
	}
	return out
}
