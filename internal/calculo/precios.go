// Package calculo holds the pure business rules of the store: price
// derivation, partner commissions, report reducers and stock transforms.
// Nothing here touches the database, the clock or the network; callers pass
// collections in and receive new values back.
package calculo

import (
	"dxy/internal/model"

	"github.com/shopspring/decimal"
)

// Estado de reposición de un producto.
type Estado string

const (
	EstadoOK      Estado = "OK"
	EstadoPedir   Estado = "PEDIR"
	EstadoAgotado Estado = "AGOTADO"
)

var (
	cien = decimal.NewFromInt(100)
	uno  = decimal.NewFromInt(1)

	// FactorMayorista is the flat wholesale markup over real cost, independent
	// of the product's retail markup.
	FactorMayorista = decimal.RequireFromString("1.05")
)

// Metricas are the derived prices of a product. Nothing is rounded here.
type Metricas struct {
	CostoReal       decimal.Decimal `json:"realCost"`
	PrecioEfectivo  decimal.Decimal `json:"cashPrice"`
	PrecioLista     decimal.Decimal `json:"listPriceTN"`
	GananciaNeta    decimal.Decimal `json:"netProfit"`
	ValorInventario decimal.Decimal `json:"inventoryValue"`
	PrecioMayorista decimal.Decimal `json:"wholesalePrice"`
	Estado          Estado          `json:"status"`
}

// CalcularMetricas derives prices and stock status from the product's cost
// inputs. Zero-valued fields count as 0.
func CalcularMetricas(p model.Producto) Metricas {
	costoReal := p.CostoProveedor.Add(p.CostoFlete)
	efectivo := costoReal.Mul(uno.Add(p.MarkupPct.Div(cien)))
	lista := efectivo.Mul(uno.Add(p.RecargoTarjetaPct.Div(cien)))

	return Metricas{
		CostoReal:       costoReal,
		PrecioEfectivo:  efectivo,
		PrecioLista:     lista,
		GananciaNeta:    efectivo.Sub(costoReal),
		ValorInventario: costoReal.Mul(decimal.NewFromInt(int64(p.StockActual))),
		PrecioMayorista: costoReal.Mul(FactorMayorista),
		Estado:          EstadoStock(p.StockActual, p.StockMinimo),
	}
}

// EstadoStock gives AGOTADO priority over the minimum check, so a product
// with stock 0 and minimum 0 is still out of stock.
func EstadoStock(actual, minimo int) Estado {
	switch {
	case actual <= 0:
		return EstadoAgotado
	case actual <= minimo:
		return EstadoPedir
	default:
		return EstadoOK
	}
}
