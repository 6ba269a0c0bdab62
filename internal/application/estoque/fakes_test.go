package estoque_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/estoque-api/internal/application/estoque"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

const tenantID int64 = 1

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

// ──────────────────────────────────────────────────────────────────────────────
// memStore: base de datos en memoria. Run toma el lock completo (equivale a los
// FOR UPDATE de postgres) y restaura la foto si fn falla.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu          sync.Mutex
	seq         int64
	insumos     map[int64]entity.Insumo
	movs        []entity.Movimentacao
	compras     map[int64]entity.Compra
	compraItems map[int64][]entity.ItemCompra
	inventarios map[int64]entity.Inventario
	invItems    map[int64][]entity.ItemInventario
	lotes       map[int64]entity.Lote
	units       map[int64]entity.UnidadeMedida
	suppliers   map[int64]entity.Fornecedor
	recipeRefs  map[int64]int64

	failOnAppend func(m *entity.Movimentacao) error
}

type snapshot struct {
	seq         int64
	insumos     map[int64]entity.Insumo
	movs        []entity.Movimentacao
	compras     map[int64]entity.Compra
	compraItems map[int64][]entity.ItemCompra
	inventarios map[int64]entity.Inventario
	invItems    map[int64][]entity.ItemInventario
	lotes       map[int64]entity.Lote
}

func newMemStore() *memStore {
	return &memStore{
		insumos:     map[int64]entity.Insumo{},
		compras:     map[int64]entity.Compra{},
		compraItems: map[int64][]entity.ItemCompra{},
		inventarios: map[int64]entity.Inventario{},
		invItems:    map[int64][]entity.ItemInventario{},
		lotes:       map[int64]entity.Lote{},
		units:       map[int64]entity.UnidadeMedida{1: {ID: 1, Symbol: "kg"}},
		suppliers:   map[int64]entity.Fornecedor{1: {ID: 1, TenantID: tenantID, Name: "Distribuidora Central"}},
		recipeRefs:  map[int64]int64{},
	}
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copySlices[K comparable, V any](m map[K][]V) map[K][]V {
	out := make(map[K][]V, len(m))
	for k, v := range m {
		out[k] = append([]V(nil), v...)
	}
	return out
}

func (s *memStore) snapshot() snapshot {
	return snapshot{
		seq:         s.seq,
		insumos:     copyMap(s.insumos),
		movs:        append([]entity.Movimentacao(nil), s.movs...),
		compras:     copyMap(s.compras),
		compraItems: copySlices(s.compraItems),
		inventarios: copyMap(s.inventarios),
		invItems:    copySlices(s.invItems),
		lotes:       copyMap(s.lotes),
	}
}

func (s *memStore) restore(snap snapshot) {
	s.seq = snap.seq
	s.insumos = snap.insumos
	s.movs = snap.movs
	s.compras = snap.compras
	s.compraItems = snap.compraItems
	s.inventarios = snap.inventarios
	s.invItems = snap.invItems
	s.lotes = snap.lotes
}

func (s *memStore) nextID() int64 {
	s.seq++
	return s.seq
}

func (s *memStore) repos(lock bool) estoque.TxRepos {
	b := base{s: s, lock: lock}
	return estoque.TxRepos{
		Insumos:       insumoRepo{b},
		Movimentacoes: movRepo{b},
		Compras:       compraRepo{b},
		Inventarios:   inventarioRepo{b},
		Lotes:         loteRepo{b},
	}
}

// insumo lee el insumo guardado (uso directo en asserts).
func (s *memStore) insumo(t *testing.T, id int64) entity.Insumo {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.insumos[id]
	if !ok {
		t.Fatalf("insumo %d no existe", id)
	}
	return i
}

func (s *memStore) movements() []entity.Movimentacao {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.Movimentacao(nil), s.movs...)
}

func (s *memStore) lote(id int64) entity.Lote {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lotes[id]
}

func (s *memStore) addLote(insumoID int64, code string, qty decimal.Decimal) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID()
	s.lotes[id] = entity.Lote{ID: id, TenantID: tenantID, InsumoID: insumoID, Code: code, Quantity: qty}
	return id
}

func (s *memStore) removeInsumo(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.insumos, id)
}

type memTxRunner struct{ s *memStore }

func (r memTxRunner) Run(_ context.Context, fn func(repos estoque.TxRepos) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	snap := r.s.snapshot()
	if err := fn(r.s.repos(false)); err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}

type base struct {
	s    *memStore
	lock bool
}

func (b base) guard() func() {
	if !b.lock {
		return func() {}
	}
	b.s.mu.Lock()
	return b.s.mu.Unlock
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	end := offset + limit
	if end > len(list) {
		end = len(list)
	}
	return list[offset:end]
}

// ── insumos ──

type insumoRepo struct{ base }

func (r insumoRepo) Create(_ context.Context, i *entity.Insumo) error {
	defer r.guard()()
	for _, o := range r.s.insumos {
		if o.TenantID == i.TenantID && o.Code == i.Code {
			return fmt.Errorf("insert insumo: %w", domain.ErrDuplicate)
		}
	}
	i.ID = r.s.nextID()
	r.s.insumos[i.ID] = *i
	return nil
}

func (r insumoRepo) get(tenant, id int64) *entity.Insumo {
	i, ok := r.s.insumos[id]
	if !ok || i.TenantID != tenant {
		return nil
	}
	i.UnitSymbol = r.s.units[i.UnitID].Symbol
	return &i
}

func (r insumoRepo) GetByID(_ context.Context, tenant, id int64) (*entity.Insumo, error) {
	defer r.guard()()
	return r.get(tenant, id), nil
}

func (r insumoRepo) GetForUpdate(ctx context.Context, tenant, id int64) (*entity.Insumo, error) {
	return r.GetByID(ctx, tenant, id)
}

func (r insumoRepo) GetByCode(_ context.Context, tenant int64, code string) (*entity.Insumo, error) {
	defer r.guard()()
	for id, o := range r.s.insumos {
		if o.TenantID == tenant && o.Code == code {
			return r.get(tenant, id), nil
		}
	}
	return nil, nil
}

func (r insumoRepo) Update(_ context.Context, i *entity.Insumo) error {
	defer r.guard()()
	cur, ok := r.s.insumos[i.ID]
	if !ok || cur.TenantID != i.TenantID {
		return domain.ErrNotFound
	}
	for _, o := range r.s.insumos {
		if o.ID != i.ID && o.TenantID == i.TenantID && o.Code == i.Code {
			return fmt.Errorf("update insumo: %w", domain.ErrDuplicate)
		}
	}
	next := *i
	next.Quantity = cur.Quantity
	next.UnitSymbol = ""
	r.s.insumos[i.ID] = next
	return nil
}

func (r insumoRepo) UpdateBalance(_ context.Context, tenant, id int64, qty, cost decimal.Decimal) error {
	defer r.guard()()
	cur, ok := r.s.insumos[id]
	if !ok || cur.TenantID != tenant {
		return domain.ErrNotFound
	}
	cur.Quantity = qty
	cur.UnitCost = cost
	r.s.insumos[id] = cur
	return nil
}

func (r insumoRepo) List(_ context.Context, tenant int64, belowMinimum bool, limit, offset int) ([]*entity.Insumo, int64, error) {
	defer r.guard()()
	var all []*entity.Insumo
	for id, o := range r.s.insumos {
		if o.TenantID != tenant {
			continue
		}
		if belowMinimum && !o.BelowMinimum() {
			continue
		}
		all = append(all, r.get(tenant, id))
	}
	sort.Slice(all, func(a, b int) bool { return all[a].ID < all[b].ID })
	return page(all, limit, offset), int64(len(all)), nil
}

func (r insumoRepo) CountDependents(_ context.Context, tenant, id int64) (entity.InsumoDependents, error) {
	defer r.guard()()
	var deps entity.InsumoDependents
	for _, m := range r.s.movs {
		if m.TenantID == tenant && m.InsumoID == id {
			deps.Movements++
		}
	}
	for _, l := range r.s.lotes {
		if l.TenantID == tenant && l.InsumoID == id {
			deps.Lots++
		}
	}
	deps.Recipes = r.s.recipeRefs[id]
	return deps, nil
}

func (r insumoRepo) Delete(_ context.Context, tenant, id int64) error {
	defer r.guard()()
	delete(r.s.insumos, id)
	return nil
}

// ── movimentacoes ──

type movRepo struct{ base }

func (r movRepo) Append(_ context.Context, m *entity.Movimentacao) error {
	defer r.guard()()
	if r.s.failOnAppend != nil {
		if err := r.s.failOnAppend(m); err != nil {
			return err
		}
	}
	m.ID = r.s.nextID()
	r.s.movs = append(r.s.movs, *m)
	return nil
}

func (r movRepo) GetByID(_ context.Context, tenant, id int64) (*entity.Movimentacao, error) {
	defer r.guard()()
	for _, m := range r.s.movs {
		if m.ID == id && m.TenantID == tenant {
			out := m
			return &out, nil
		}
	}
	return nil, nil
}

func (r movRepo) List(_ context.Context, tenant int64, f entity.MovementFilter, limit, offset int) ([]*entity.Movimentacao, entity.MovementTotals, error) {
	defer r.guard()()
	var all []*entity.Movimentacao
	var totals entity.MovementTotals
	for _, m := range r.s.movs {
		if m.TenantID != tenant ||
			(f.InsumoID != nil && m.InsumoID != *f.InsumoID) ||
			(f.Type != "" && m.Type != f.Type) ||
			(f.From != nil && m.CreatedAt.Before(*f.From)) ||
			(f.To != nil && m.CreatedAt.After(*f.To)) {
			continue
		}
		out := m
		all = append(all, &out)
		totals.Total++
		switch {
		case m.Type == entity.MovementTypeIN:
			totals.Incoming++
		case m.Type == entity.MovementTypeADJUSTMENT:
			totals.Adjustments++
		case entity.IsOutgoing(m.Type):
			totals.Outgoing++
		}
	}
	return page(all, limit, offset), totals, nil
}

func (r movRepo) ListByInsumo(_ context.Context, tenant, insumoID int64) ([]*entity.Movimentacao, error) {
	defer r.guard()()
	var out []*entity.Movimentacao
	for _, m := range r.s.movs {
		if m.TenantID == tenant && m.InsumoID == insumoID {
			c := m
			out = append(out, &c)
		}
	}
	return out, nil
}

// ── compras ──

type compraRepo struct{ base }

func (r compraRepo) Create(_ context.Context, c *entity.Compra) error {
	defer r.guard()()
	c.ID = r.s.nextID()
	stored := *c
	stored.Items = nil
	r.s.compras[c.ID] = stored
	return nil
}

func (r compraRepo) get(tenant, id int64) *entity.Compra {
	c, ok := r.s.compras[id]
	if !ok || c.TenantID != tenant {
		return nil
	}
	c.SupplierName = r.s.suppliers[c.SupplierID].Name
	return &c
}

func (r compraRepo) GetByID(_ context.Context, tenant, id int64) (*entity.Compra, error) {
	defer r.guard()()
	return r.get(tenant, id), nil
}

func (r compraRepo) GetForUpdate(ctx context.Context, tenant, id int64) (*entity.Compra, error) {
	return r.GetByID(ctx, tenant, id)
}

func (r compraRepo) Update(_ context.Context, c *entity.Compra) error {
	defer r.guard()()
	stored := *c
	stored.Items = nil
	stored.SupplierName = ""
	r.s.compras[c.ID] = stored
	return nil
}

func (r compraRepo) List(_ context.Context, tenant int64, status string, limit, offset int) ([]*entity.Compra, int64, error) {
	defer r.guard()()
	var all []*entity.Compra
	for id, c := range r.s.compras {
		if c.TenantID == tenant && (status == "" || c.Status == status) {
			all = append(all, r.get(tenant, id))
		}
	}
	sort.Slice(all, func(a, b int) bool { return all[a].ID < all[b].ID })
	return page(all, limit, offset), int64(len(all)), nil
}

func (r compraRepo) Delete(_ context.Context, tenant, id int64) error {
	defer r.guard()()
	delete(r.s.compras, id)
	return nil
}

func (r compraRepo) ListItems(_ context.Context, compraID int64) ([]*entity.ItemCompra, error) {
	defer r.guard()()
	var out []*entity.ItemCompra
	for _, it := range r.s.compraItems[compraID] {
		c := it
		out = append(out, &c)
	}
	return out, nil
}

func (r compraRepo) UpsertItem(_ context.Context, item *entity.ItemCompra) error {
	defer r.guard()()
	items := r.s.compraItems[item.CompraID]
	for i := range items {
		if items[i].InsumoID == item.InsumoID {
			items[i] = *item
			return nil
		}
	}
	r.s.compraItems[item.CompraID] = append(items, *item)
	return nil
}

func (r compraRepo) DeleteItem(_ context.Context, compraID, insumoID int64) error {
	defer r.guard()()
	items := r.s.compraItems[compraID]
	out := items[:0]
	for _, it := range items {
		if it.InsumoID != insumoID {
			out = append(out, it)
		}
	}
	r.s.compraItems[compraID] = out
	return nil
}

func (r compraRepo) DeleteItems(_ context.Context, compraID int64) error {
	defer r.guard()()
	delete(r.s.compraItems, compraID)
	return nil
}

// ── inventarios ──

type inventarioRepo struct{ base }

func (r inventarioRepo) Create(_ context.Context, inv *entity.Inventario) error {
	defer r.guard()()
	for _, o := range r.s.inventarios {
		if o.TenantID == inv.TenantID && o.Code == inv.Code {
			return fmt.Errorf("insert inventario: %w", domain.ErrDuplicate)
		}
	}
	inv.ID = r.s.nextID()
	stored := *inv
	stored.Items = nil
	r.s.inventarios[inv.ID] = stored
	return nil
}

func (r inventarioRepo) GetByID(_ context.Context, tenant, id int64) (*entity.Inventario, error) {
	defer r.guard()()
	inv, ok := r.s.inventarios[id]
	if !ok || inv.TenantID != tenant {
		return nil, nil
	}
	return &inv, nil
}

func (r inventarioRepo) GetForUpdate(ctx context.Context, tenant, id int64) (*entity.Inventario, error) {
	return r.GetByID(ctx, tenant, id)
}

func (r inventarioRepo) GetByCode(_ context.Context, tenant int64, code string) (*entity.Inventario, error) {
	defer r.guard()()
	for _, inv := range r.s.inventarios {
		if inv.TenantID == tenant && inv.Code == code {
			out := inv
			return &out, nil
		}
	}
	return nil, nil
}

func (r inventarioRepo) UpdateStatus(_ context.Context, inv *entity.Inventario) error {
	defer r.guard()()
	cur := r.s.inventarios[inv.ID]
	cur.Status = inv.Status
	cur.EndDate = inv.EndDate
	r.s.inventarios[inv.ID] = cur
	return nil
}

func (r inventarioRepo) ListItems(_ context.Context, inventarioID int64) ([]*entity.ItemInventario, error) {
	defer r.guard()()
	var out []*entity.ItemInventario
	for _, it := range r.s.invItems[inventarioID] {
		c := it
		out = append(out, &c)
	}
	return out, nil
}

func (r inventarioRepo) CreateItem(_ context.Context, item *entity.ItemInventario) error {
	defer r.guard()()
	item.ID = r.s.nextID()
	r.s.invItems[item.InventarioID] = append(r.s.invItems[item.InventarioID], *item)
	return nil
}

func (r inventarioRepo) UpdateItem(_ context.Context, item *entity.ItemInventario) error {
	defer r.guard()()
	items := r.s.invItems[item.InventarioID]
	for i := range items {
		if items[i].ID == item.ID {
			items[i] = *item
			return nil
		}
	}
	return domain.ErrNotFound
}

// ── lotes y catálogo ──

type loteRepo struct{ base }

func (r loteRepo) GetByID(_ context.Context, tenant, id int64) (*entity.Lote, error) {
	defer r.guard()()
	l, ok := r.s.lotes[id]
	if !ok || l.TenantID != tenant {
		return nil, nil
	}
	return &l, nil
}

func (r loteRepo) GetForUpdate(ctx context.Context, tenant, id int64) (*entity.Lote, error) {
	return r.GetByID(ctx, tenant, id)
}

func (r loteRepo) UpdateQuantity(_ context.Context, tenant, id int64, qty decimal.Decimal) error {
	defer r.guard()()
	l := r.s.lotes[id]
	l.Quantity = qty
	r.s.lotes[id] = l
	return nil
}

type unitRepo struct{ s *memStore }

func (r unitRepo) GetByID(_ context.Context, id int64) (*entity.UnidadeMedida, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.units[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

type supplierRepo struct{ s *memStore }

func (r supplierRepo) GetByID(_ context.Context, tenant, id int64) (*entity.Fornecedor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	f, ok := r.s.suppliers[id]
	if !ok || f.TenantID != tenant {
		return nil, nil
	}
	return &f, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// fixture
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	store       *memStore
	recorder    *estoque.MovementRecorder
	insumos     *estoque.InsumoUseCase
	movements   *estoque.MovementUseCase
	compras     *estoque.CompraUseCase
	inventarios *estoque.InventarioUseCase
}

func newFixture() *fixture {
	s := newMemStore()
	tx := memTxRunner{s: s}
	plain := s.repos(true)
	rec := estoque.NewMovementRecorder(tx)
	return &fixture{
		store:       s,
		recorder:    rec,
		insumos:     estoque.NewInsumoUseCase(tx, rec, plain.Insumos, unitRepo{s}),
		movements:   estoque.NewMovementUseCase(rec, plain.Movimentacoes, plain.Insumos),
		compras:     estoque.NewCompraUseCase(tx, rec, plain.Compras, plain.Insumos, supplierRepo{s}),
		inventarios: estoque.NewInventarioUseCase(tx, rec, plain.Inventarios),
	}
}

var testUser = func() *int64 { id := int64(7); return &id }()

var orderDate = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
