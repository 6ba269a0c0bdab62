package estoque

import (
	"context"

	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción de BD.
type TxRepos struct {
	Insumos       repository.InsumoRepository
	Movimentacoes repository.MovimentacaoRepository
	Compras       repository.CompraRepository
	Inventarios   repository.InventarioRepository
	Lotes         repository.LoteRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback; si no, Commit. Garantiza atomicidad del libro de stock.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}
