package repository

import (
	"context"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// MovimentacaoRepository libro de movimientos: solo inserción y consulta.
// No existen Update ni Delete; las correcciones son nuevas entradas.
type MovimentacaoRepository interface {
	Append(ctx context.Context, mov *entity.Movimentacao) error
	GetByID(ctx context.Context, tenantID, id int64) (*entity.Movimentacao, error)
	List(ctx context.Context, tenantID int64, f entity.MovementFilter, limit, offset int) ([]*entity.Movimentacao, entity.MovementTotals, error)
	ListByInsumo(ctx context.Context, tenantID, insumoID int64) ([]*entity.Movimentacao, error)
}
