package calculo_test

import (
	"testing"
	"time"

	"dxy/internal/calculo"
	"dxy/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2026-03-18 is a Wednesday.
var hoy = time.Date(2026, 3, 18, 15, 30, 0, 0, time.UTC)

func venta(fecha, nombre, metodo, pagado string) model.VentaDiaria {
	return model.VentaDiaria{Fecha: fecha, NombreProducto: nombre, MetodoPago: metodo, MontoTotal: dec(pagado), MontoPagado: dec(pagado)}
}

func TestResumenKPI(t *testing.T) {
	productos := []model.Producto{
		{Nombre: "Whey", CostoProveedor: dec("1000"), MarkupPct: dec("50"), StockActual: 10, StockMinimo: 2},
		{Nombre: "Creatina", CostoProveedor: dec("500"), CostoFlete: dec("100"), MarkupPct: dec("100"), StockActual: 2, StockMinimo: 3},
		{Nombre: "Barra", CostoProveedor: dec("200"), StockActual: 0, StockMinimo: 0},
	}
	ventas := []model.VentaDiaria{
		venta("2026-03-18", "Whey", model.PagoEfectivo, "1500"),
		venta("2026-03-18", "Barra", model.PagoDebito, "300"),
		venta("2026-03-02", "Whey", model.PagoEfectivo, "1500"),
		venta("2026-02-28", "Whey", model.PagoEfectivo, "1500"),
		{Fecha: "", NombreProducto: "sin fecha", MontoPagado: dec("999")},
	}
	ventas[1].MontoPagado = dec("100") // seña

	k := calculo.ResumenKPI(productos, ventas, hoy)

	assert.Equal(t, 2, k.VentasHoy)
	assertDec(t, "1600", k.IngresosHoy, "ingresos hoy")
	assert.Equal(t, 3, k.VentasMes)
	assertDec(t, "3100", k.IngresosMes, "ingresos mes")
	assert.Equal(t, 1, k.StockBajo)
	assert.Equal(t, 1, k.Agotados)
	// 10×1000 + 2×600
	assertDec(t, "11200", k.ValorInventario, "valor inventario")
	// 10×500 + 2×600
	assertDec(t, "6200", k.GananciaPotencial, "ganancia potencial")
}

func TestUltimosSieteDias(t *testing.T) {
	ventas := []model.VentaDiaria{
		venta("2026-03-18", "A", model.PagoEfectivo, "100"),
		venta("2026-03-18", "B", model.PagoEfectivo, "50"),
		venta("2026-03-12", "C", model.PagoEfectivo, "70"),
		venta("2026-03-11", "D", model.PagoEfectivo, "999"),
	}

	dias := calculo.UltimosSieteDias(ventas, hoy)

	require.Len(t, dias, 7)
	assert.Equal(t, "03-12", dias[0].Fecha)
	assert.Equal(t, "Jue", dias[0].Etiqueta)
	assert.Equal(t, 1, dias[0].Ventas)
	assert.Equal(t, "03-18", dias[6].Fecha)
	assert.Equal(t, "Mié", dias[6].Etiqueta)
	assert.Equal(t, 2, dias[6].Ventas)
	assertDec(t, "150", dias[6].Ingresos, "ingresos hoy")
	for _, d := range dias[1:6] {
		assert.Equal(t, 0, d.Ventas)
		assert.True(t, d.Ingresos.IsZero())
	}
}

func TestUltimosSieteDias_SinVentas(t *testing.T) {
	dias := calculo.UltimosSieteDias(nil, hoy)
	assert.Len(t, dias, 7)
}

func TestTopProductosMes_OrdenEstable(t *testing.T) {
	ventas := []model.VentaDiaria{
		venta("2026-03-01", "Creatina", model.PagoEfectivo, "10"),
		venta("2026-03-01", "Whey", model.PagoEfectivo, "10"),
		venta("2026-03-02", "Whey", model.PagoEfectivo, "10"),
		venta("2026-03-02", "Barra", model.PagoEfectivo, "10"),
		venta("2026-03-03", "Creatina", model.PagoEfectivo, "10"),
		venta("2026-03-03", "", model.PagoEfectivo, "10"),
		venta("2026-03-04", "Shaker", model.PagoEfectivo, "10"),
		venta("2026-03-04", "Guantes", model.PagoEfectivo, "10"),
		venta("2026-03-05", "Omega", model.PagoEfectivo, "10"),
		venta("2026-02-05", "Omega", model.PagoEfectivo, "10"),
		venta("2026-02-05", "Omega", model.PagoEfectivo, "10"),
	}

	top := calculo.TopProductosMes(ventas, "2026-03")

	require.Len(t, top, 5)
	assert.Equal(t, "Creatina", top[0].Nombre)
	assert.Equal(t, 2, top[0].Cantidad)
	assert.Equal(t, "Whey", top[1].Nombre)
	assert.Equal(t, "Barra", top[2].Nombre)
	assert.Equal(t, "Desconocido", top[3].Nombre)
	assert.Equal(t, "Shaker", top[4].Nombre)
	assertDec(t, "20", top[0].Ingresos, "ingresos")
}

func TestReporteComprasMensual(t *testing.T) {
	facturas := []model.FacturaCompra{
		{Fecha: "2026-02", Proveedor: "Disfit", MontoMercaderia: dec("1000"), CostoEnvio: dec("100")},
		{Fecha: "2026-03", Proveedor: "Bunker", MontoMercaderia: dec("500"), CostoEnvio: dec("50")},
		{Fecha: "2026-03", Proveedor: "Disfit", MontoMercaderia: dec("2000")},
		{Fecha: "2026-03", Proveedor: "Bunker", MontoMercaderia: dec("300"), CostoEnvio: dec("30")},
		{Fecha: "", Proveedor: "Otro", MontoMercaderia: dec("99999")},
	}

	rep := calculo.ReporteComprasMensual(facturas)

	require.Len(t, rep, 2)
	marzo := rep[0]
	assert.Equal(t, "2026-03", marzo.Mes)
	assertDec(t, "2800", marzo.Mercaderia, "mercaderia mes")
	assertDec(t, "80", marzo.Envio, "envio mes")
	assertDec(t, "2880", marzo.Total, "total mes")
	require.Len(t, marzo.Proveedores, 2)
	assert.Equal(t, "Bunker", marzo.Proveedores[0].Proveedor)
	assert.Equal(t, 2, marzo.Proveedores[0].Facturas)
	assertDec(t, "880", marzo.Proveedores[0].Total, "total bunker")
	assertDec(t, "1100", rep[1].Total, "total febrero")
}

func TestDistribucionPagos(t *testing.T) {
	ventas := []model.VentaDiaria{
		venta("2026-03-01", "A", model.PagoEfectivo, "500"),
		venta("2026-03-01", "B", model.PagoTransferencia, "250"),
		venta("2026-03-02", "C", model.PagoEfectivo, "250"),
		venta("2026-03-02", "D", "", "0"),
	}

	dist := calculo.DistribucionPagos(ventas)

	require.Len(t, dist, 3)
	assert.Equal(t, model.PagoEfectivo, dist[0].Metodo)
	assertDec(t, "75", dist[0].Porcentaje, "efectivo")
	assert.Equal(t, "#F9D85A", dist[0].Color)
	assertDec(t, "25", dist[1].Porcentaje, "transferencia")
	assert.Equal(t, "#575756", dist[1].Color)
	assertDec(t, "75", dist[1].Desde, "desde")
	assertDec(t, "100", dist[1].Hasta, "hasta")
	assert.Equal(t, "Otro", dist[2].Metodo)
	assertDec(t, "0", dist[2].Porcentaje, "otro")
}

func TestDistribucionPagos_TotalCero(t *testing.T) {
	dist := calculo.DistribucionPagos([]model.VentaDiaria{venta("2026-03-01", "A", model.PagoCanje, "0")})
	require.Len(t, dist, 1)
	assert.True(t, dist[0].Porcentaje.IsZero())
}

func TestDistribucionPagos_PaletaCiclica(t *testing.T) {
	var ventas []model.VentaDiaria
	for _, m := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		ventas = append(ventas, venta("2026-03-01", "x", m, "10"))
	}
	dist := calculo.DistribucionPagos(ventas)
	require.Len(t, dist, 8)
	assert.Equal(t, dist[0].Color, dist[7].Color)
}

func TestStockCritico(t *testing.T) {
	var productos []model.Producto
	for i := 10; i > 0; i-- {
		productos = append(productos, model.Producto{Nombre: "p", StockActual: i, StockMinimo: 10})
	}
	productos = append(productos, model.Producto{Nombre: "sobra", StockActual: 50, StockMinimo: 5})

	crit := calculo.StockCritico(productos)

	require.Len(t, crit, 8)
	assert.Equal(t, 1, crit[0].StockActual)
	assert.Equal(t, 8, crit[7].StockActual)
}

func TestVentasDelMes(t *testing.T) {
	ventas := []model.VentaDiaria{venta("2026-03-01", "A", "", "1"), venta("2026-04-01", "B", "", "1")}
	assert.Len(t, calculo.VentasDelMes(ventas, "2026-03"), 1)
	assert.Empty(t, calculo.VentasDelMes(nil, "2026-03"))
}
