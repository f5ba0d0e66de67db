package calculo

import (
	"slices"
	"strings"

	"dxy/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Every transform in this file returns a new slice and leaves its input
// untouched. Stock never goes below zero.

// LineaPedido is a wholesale cart line, matched to the catalog by id.
type LineaPedido struct {
	ProductoID uuid.UUID `json:"producto_id"`
	Cantidad   int       `json:"cantidad"`
}

// LineaCompra is a purchase invoice line. CostoProveedor is only applied when
// the caller opts into updating costs.
type LineaCompra struct {
	ProductoID     uuid.UUID        `json:"producto_id"`
	Cantidad       int              `json:"cantidad"`
	CostoProveedor *decimal.Decimal `json:"costo_proveedor,omitempty"`
}

type ResultadoPedido struct {
	// Agotados holds the names of products left at exactly zero.
	Agotados []string
	Omitidas []uuid.UUID
}

type ResultadoVentas struct {
	Descontadas     int
	SinCoincidencia []string
}

type ResultadoCompra struct {
	Aplicadas          int
	CostosActualizados int
	Omitidas           []uuid.UUID
}

// AplicarAjuste applies a manual +/- delta. The boolean is false when no
// product has that id.
func AplicarAjuste(productos []model.Producto, id uuid.UUID, delta int) ([]model.Producto, bool) {
	out := slices.Clone(productos)
	for i := range out {
		if out[i].ID == id {
			out[i].StockActual = piso(out[i].StockActual + delta)
			return out, true
		}
	}
	return out, false
}

// AplicarPedido decrements stock for each line of a finalized wholesale order.
func AplicarPedido(productos []model.Producto, lineas []LineaPedido) ([]model.Producto, ResultadoPedido) {
	out := slices.Clone(productos)
	idx := indicePorID(out)

	var res ResultadoPedido
	for _, l := range lineas {
		i, ok := idx[l.ProductoID]
		if !ok {
			res.Omitidas = append(res.Omitidas, l.ProductoID)
			continue
		}
		out[i].StockActual = piso(out[i].StockActual - l.Cantidad)
		if out[i].StockActual == 0 {
			res.Agotados = append(res.Agotados, out[i].Nombre)
		}
	}
	return out, res
}

// AplicarVentas deducts one unit per sale record. Sales carry only a product
// name, so they match the first catalog product with the same name ignoring
// case and surrounding spaces.
func AplicarVentas(productos []model.Producto, ventas []model.VentaDiaria) ([]model.Producto, ResultadoVentas) {
	out := slices.Clone(productos)
	porNombre := make(map[string]int, len(out))
	for i := range out {
		k := claveNombre(out[i].Nombre)
		if _, ok := porNombre[k]; !ok {
			porNombre[k] = i
		}
	}

	var res ResultadoVentas
	for _, v := range ventas {
		i, ok := porNombre[claveNombre(v.NombreProducto)]
		if !ok {
			res.SinCoincidencia = append(res.SinCoincidencia, v.NombreProducto)
			continue
		}
		out[i].StockActual = piso(out[i].StockActual - 1)
		res.Descontadas++
	}
	return out, res
}

// AplicarCompra adds the purchased quantities. Purchases have no ceiling.
func AplicarCompra(productos []model.Producto, lineas []LineaCompra, actualizarCostos bool) ([]model.Producto, ResultadoCompra) {
	out := slices.Clone(productos)
	idx := indicePorID(out)

	var res ResultadoCompra
	for _, l := range lineas {
		i, ok := idx[l.ProductoID]
		if !ok || l.Cantidad < 0 {
			res.Omitidas = append(res.Omitidas, l.ProductoID)
			continue
		}
		out[i].StockActual += l.Cantidad
		res.Aplicadas++
		if actualizarCostos && l.CostoProveedor != nil && l.CostoProveedor.IsPositive() {
			out[i].CostoProveedor = *l.CostoProveedor
			res.CostosActualizados++
		}
	}
	return out, res
}

func indicePorID(productos []model.Producto) map[uuid.UUID]int {
	idx := make(map[uuid.UUID]int, len(productos))
	for i := range productos {
		idx[productos[i].ID] = i
	}
	return idx
}

func claveNombre(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func piso(stock int) int {
	if stock < 0 {
		return 0
	}
	return stock
}
