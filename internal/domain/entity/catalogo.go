package entity

// UnidadeMedida unidad de medida (id → símbolo), mantenida por el catálogo.
type UnidadeMedida struct {
	ID     int64  `db:"id"`
	Symbol string `db:"symbol"`
}

// Fornecedor proveedor (id → nombre), mantenido por el catálogo.
type Fornecedor struct {
	ID       int64  `db:"id"`
	TenantID int64  `db:"tenant_id"`
	Name     string `db:"name"`
}
