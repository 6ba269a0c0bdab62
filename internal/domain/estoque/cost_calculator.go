package estoque

import "github.com/shopspring/decimal"

// CostPrecision decimales con los que se persiste el costo promedio.
const CostPrecision = 2

// CostCalculator implementa la lógica de costo promedio ponderado (servicio de dominio).
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
// Con entrada cero o saldo resultante no positivo devuelve el costo actual sin cambios.
func CostCalculator(stockActual, costoActual, cantEntrada, costoEntrada decimal.Decimal) decimal.Decimal {
	if !cantEntrada.GreaterThan(decimal.Zero) {
		return costoActual
	}
	sum := stockActual.Add(cantEntrada)
	if sum.LessThanOrEqual(decimal.Zero) {
		return costoActual
	}
	num := stockActual.Mul(costoActual).Add(cantEntrada.Mul(costoEntrada))
	return num.DivRound(sum, CostPrecision+4).Round(CostPrecision)
}
