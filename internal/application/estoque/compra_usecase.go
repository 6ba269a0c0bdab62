package estoque

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	domestoque "github.com/jhoicas/estoque-api/internal/domain/estoque"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

// CompraUseCase órdenes de compra y su recepción (entrada de stock con costo promedio).
type CompraUseCase struct {
	txRunner     TxRunner
	recorder     *MovementRecorder
	repo         repository.CompraRepository
	insumoRepo   repository.InsumoRepository
	supplierRepo repository.FornecedorRepository
	now          func() time.Time
}

// NewCompraUseCase construye el caso de uso.
func NewCompraUseCase(
	txRunner TxRunner,
	recorder *MovementRecorder,
	repo repository.CompraRepository,
	insumoRepo repository.InsumoRepository,
	supplierRepo repository.FornecedorRepository,
) *CompraUseCase {
	return &CompraUseCase{
		txRunner:     txRunner,
		recorder:     recorder,
		repo:         repo,
		insumoRepo:   insumoRepo,
		supplierRepo: supplierRepo,
		now:          time.Now,
	}
}

// Create registra una compra ABERTA con sus líneas.
func (uc *CompraUseCase) Create(ctx context.Context, tenantID int64, in dto.SaveCompraRequest) (*dto.CompraResponse, error) {
	if err := uc.validatePayload(ctx, tenantID, in); err != nil {
		return nil, err
	}
	now := uc.now()
	compra := &entity.Compra{
		TenantID:             tenantID,
		SupplierID:           in.SupplierID,
		OrderDate:            in.OrderDate,
		ExpectedDeliveryDate: in.ExpectedDeliveryDate,
		InvoiceNumber:        in.InvoiceNumber,
		Status:               entity.CompraStatusAberta,
		Notes:                in.Notes,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	items := make([]*entity.ItemCompra, 0, len(in.Items))
	total := decimal.Zero
	for _, l := range in.Items {
		item := &entity.ItemCompra{
			InsumoID:         l.InsumoID,
			Quantity:         l.Quantity,
			UnitPrice:        l.UnitPrice,
			ReceivedQuantity: decimal.Zero,
			Notes:            l.Notes,
		}
		item.Recalculate()
		total = total.Add(item.TotalPrice)
		items = append(items, item)
	}
	compra.TotalValue = total

	err := uc.txRunner.Run(ctx, func(repos TxRepos) error {
		if err := repos.Compras.Create(ctx, compra); err != nil {
			return err
		}
		for _, item := range items {
			item.CompraID = compra.ID
			if err := repos.Compras.UpsertItem(ctx, item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, tenantID, compra.ID)
}

// Update edita una compra ABERTA o PARCIAL. Las líneas ausentes se eliminan salvo que ya
// hayan recibido stock; las presentes conservan lo recibido. El estado se vuelve a derivar
// de las líneas resultantes, así que bajar lo pedido hasta lo recibido finaliza la compra.
func (uc *CompraUseCase) Update(ctx context.Context, tenantID, id int64, in dto.SaveCompraRequest) (*dto.CompraResponse, error) {
	if err := uc.validatePayload(ctx, tenantID, in); err != nil {
		return nil, err
	}
	err := uc.txRunner.Run(ctx, func(repos TxRepos) error {
		compra, err := repos.Compras.GetForUpdate(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if compra == nil {
			return domain.NotFound("compra no encontrada")
		}
		if compra.IsTerminal() {
			return domain.Conflict(fmt.Sprintf("la compra está %s y no admite cambios", compra.Status))
		}
		current, err := repos.Compras.ListItems(ctx, compra.ID)
		if err != nil {
			return err
		}
		byInsumo := make(map[int64]*entity.ItemCompra, len(current))
		for _, it := range current {
			byInsumo[it.InsumoID] = it
		}
		keep := make(map[int64]bool, len(in.Items))
		for _, l := range in.Items {
			keep[l.InsumoID] = true
		}
		for _, it := range current {
			if keep[it.InsumoID] {
				continue
			}
			if it.ReceivedQuantity.GreaterThan(decimal.Zero) {
				return domain.Conflict(fmt.Sprintf("el insumo %d ya fue recibido y no puede quitarse de la compra", it.InsumoID))
			}
			if err := repos.Compras.DeleteItem(ctx, compra.ID, it.InsumoID); err != nil {
				return err
			}
		}

		total := decimal.Zero
		updated := make([]*entity.ItemCompra, 0, len(in.Items))
		for _, l := range in.Items {
			item := &entity.ItemCompra{
				CompraID:         compra.ID,
				InsumoID:         l.InsumoID,
				Quantity:         l.Quantity,
				UnitPrice:        l.UnitPrice,
				ReceivedQuantity: decimal.Zero,
				Notes:            l.Notes,
			}
			if prev, ok := byInsumo[l.InsumoID]; ok {
				item.ReceivedQuantity = prev.ReceivedQuantity
			}
			item.Recalculate()
			total = total.Add(item.TotalPrice)
			if err := repos.Compras.UpsertItem(ctx, item); err != nil {
				return err
			}
			updated = append(updated, item)
		}

		compra.Status = domestoque.OrderStatus(updated)
		compra.SupplierID = in.SupplierID
		compra.OrderDate = in.OrderDate
		compra.ExpectedDeliveryDate = in.ExpectedDeliveryDate
		compra.InvoiceNumber = in.InvoiceNumber
		compra.Notes = in.Notes
		compra.TotalValue = total
		compra.UpdatedAt = uc.now()
		return repos.Compras.Update(ctx, compra)
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, tenantID, id)
}

// Receive registra la recepción acumulada de una compra. Bloquea la cabecera, genera un IN
// por cada incremento positivo (costo = precio de la línea) y deriva el nuevo estado.
// Todas las entradas comparten el mismo transaction_id.
func (uc *CompraUseCase) Receive(ctx context.Context, tenantID int64, userID *int64, id int64, in dto.ReceiveCompraRequest) (*dto.ReceiveCompraResponse, error) {
	lines := make([]domestoque.ReceiptLine, 0, len(in.Items))
	for _, l := range in.Items {
		lines = append(lines, domestoque.ReceiptLine{
			InsumoID:           l.InsumoID,
			CumulativeReceived: l.ReceivedQuantity,
			InvoiceNumber:      l.InvoiceNumber,
		})
	}

	var movements []*entity.Movimentacao
	err := uc.txRunner.Run(ctx, func(repos TxRepos) error {
		compra, err := repos.Compras.GetForUpdate(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if compra == nil {
			return domain.NotFound("compra no encontrada")
		}
		if compra.IsTerminal() {
			return domain.Conflict(fmt.Sprintf("la compra está %s y no admite recepciones", compra.Status))
		}
		items, err := repos.Compras.ListItems(ctx, compra.ID)
		if err != nil {
			return err
		}
		plan, err := domestoque.PlanReceipt(items, lines)
		if err != nil {
			return err
		}

		txID := uuid.New().String()
		sourceID := compra.ID
		for _, lr := range plan.Lines {
			if lr.Increment.GreaterThan(decimal.Zero) {
				price := lr.Item.UnitPrice
				mov, err := uc.recorder.RecordInTx(ctx, repos, MovementInput{
					TenantID:      tenantID,
					UserID:        userID,
					InsumoID:      lr.Item.InsumoID,
					Type:          entity.MovementTypeIN,
					Quantity:      lr.Increment,
					UnitCost:      &price,
					Note:          fmt.Sprintf("recepción compra %d", compra.ID),
					SourceID:      &sourceID,
					SourceType:    entity.SourceCompra,
					TransactionID: txID,
				})
				if err != nil {
					return err
				}
				movements = append(movements, mov)
			}
			lr.Item.ReceivedQuantity = lr.NewCumulative
			lr.Item.Recalculate()
			if err := repos.Compras.UpsertItem(ctx, lr.Item); err != nil {
				return err
			}
		}

		now := uc.now()
		delivery := now
		if in.DeliveryDate != nil && !in.DeliveryDate.IsZero() {
			delivery = *in.DeliveryDate
		}
		compra.DeliveryDate = &delivery
		switch {
		case in.InvoiceNumber != "":
			compra.InvoiceNumber = in.InvoiceNumber
		case plan.InvoiceNumber != "":
			compra.InvoiceNumber = plan.InvoiceNumber
		}
		compra.Status = plan.Status
		compra.UpdatedAt = now
		return repos.Compras.Update(ctx, compra)
	})
	if err != nil {
		return nil, err
	}
	compra, err := uc.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return &dto.ReceiveCompraResponse{Compra: *compra, Movements: toMovementResponses(movements)}, nil
}

// Cancel cancela una compra que todavía no recibió nada.
func (uc *CompraUseCase) Cancel(ctx context.Context, tenantID, id int64) (*dto.CompraResponse, error) {
	err := uc.txRunner.Run(ctx, func(repos TxRepos) error {
		compra, err := repos.Compras.GetForUpdate(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if compra == nil {
			return domain.NotFound("compra no encontrada")
		}
		if compra.IsTerminal() {
			return domain.Conflict(fmt.Sprintf("la compra está %s y no puede cancelarse", compra.Status))
		}
		items, err := repos.Compras.ListItems(ctx, compra.ID)
		if err != nil {
			return err
		}
		for _, it := range items {
			if it.ReceivedQuantity.GreaterThan(decimal.Zero) {
				return domain.Conflict("la compra ya tiene recepciones registradas")
			}
		}
		compra.Status = entity.CompraStatusCancelada
		compra.UpdatedAt = uc.now()
		return repos.Compras.Update(ctx, compra)
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, tenantID, id)
}

// Delete elimina una compra no FINALIZADA junto con sus líneas.
func (uc *CompraUseCase) Delete(ctx context.Context, tenantID, id int64) error {
	return uc.txRunner.Run(ctx, func(repos TxRepos) error {
		compra, err := repos.Compras.GetForUpdate(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if compra == nil {
			return domain.NotFound("compra no encontrada")
		}
		if compra.Status == entity.CompraStatusFinalizada {
			return domain.Conflict("una compra FINALIZADA no puede eliminarse")
		}
		if err := repos.Compras.DeleteItems(ctx, compra.ID); err != nil {
			return err
		}
		return repos.Compras.Delete(ctx, tenantID, compra.ID)
	})
}

// GetByID obtiene una compra con sus líneas y el nombre del proveedor.
func (uc *CompraUseCase) GetByID(ctx context.Context, tenantID, id int64) (*dto.CompraResponse, error) {
	compra, err := uc.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if compra == nil {
		return nil, domain.NotFound("compra no encontrada")
	}
	items, err := uc.repo.ListItems(ctx, compra.ID)
	if err != nil {
		return nil, err
	}
	compra.Items = items
	return toCompraResponse(compra), nil
}

// List lista compras del tenant, opcionalmente filtradas por estado.
func (uc *CompraUseCase) List(ctx context.Context, tenantID int64, status string, page dto.PageRequest) (*dto.CompraListResponse, error) {
	switch status {
	case "", entity.CompraStatusAberta, entity.CompraStatusParcial, entity.CompraStatusFinalizada, entity.CompraStatusCancelada:
	default:
		return nil, domain.Invalid("estado de compra inválido")
	}
	page.DefaultPage()
	list, total, err := uc.repo.List(ctx, tenantID, status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompraResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCompraResponse(c))
	}
	return &dto.CompraListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

func (uc *CompraUseCase) validatePayload(ctx context.Context, tenantID int64, in dto.SaveCompraRequest) error {
	if in.OrderDate.IsZero() {
		return domain.Invalid("la fecha de la orden es requerida")
	}
	if len(in.Items) == 0 {
		return domain.Invalid("la compra debe tener al menos un ítem")
	}
	supplier, err := uc.supplierRepo.GetByID(ctx, tenantID, in.SupplierID)
	if err != nil {
		return err
	}
	if supplier == nil {
		return domain.Invalid("proveedor no encontrado")
	}
	seen := make(map[int64]bool, len(in.Items))
	for _, l := range in.Items {
		if seen[l.InsumoID] {
			return domain.Invalid(fmt.Sprintf("el insumo %d está repetido en la compra", l.InsumoID))
		}
		seen[l.InsumoID] = true
		if !l.Quantity.GreaterThan(decimal.Zero) {
			return domain.Invalid("la cantidad de cada ítem debe ser mayor a cero")
		}
		if l.UnitPrice.LessThan(decimal.Zero) {
			return domain.Invalid("el precio unitario no puede ser negativo")
		}
		if err := domestoque.CheckQuantity("la cantidad del ítem", l.Quantity); err != nil {
			return err
		}
		if err := domestoque.CheckMoney("el precio unitario", l.UnitPrice); err != nil {
			return err
		}
		insumo, err := uc.insumoRepo.GetByID(ctx, tenantID, l.InsumoID)
		if err != nil {
			return err
		}
		if insumo == nil {
			return domain.Invalid(fmt.Sprintf("el insumo %d no existe", l.InsumoID))
		}
	}
	return nil
}
