package service_test

import (
	"context"
	"testing"

	"dxy/internal/dto"
	"dxy/internal/model"
	"dxy/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDec(t *testing.T, want string, got decimal.Decimal, msg string) {
	t.Helper()
	assert.True(t, got.Equal(dec(want)), "%s: want %s, got %s", msg, want, got)
}

func newProductoSvc(prods ...model.Producto) (service.ProductoService, *stubProductoRepo, *stubMovimientoRepo, *stubHistorialRepo) {
	repo := newStubProductoRepo(prods...)
	movs := &stubMovimientoRepo{}
	hist := &stubHistorialRepo{}
	return service.NewProductoService(repo, movs, hist), repo, movs, hist
}

func TestCrearProducto_LimpiaSaboresYCalculaMetricas(t *testing.T) {
	svc, repo, _, _ := newProductoSvc()

	resp, err := svc.Crear(context.Background(), dto.CrearProductoRequest{
		Nombre:         "  Whey Protein ",
		Marca:          "Star",
		CostoProveedor: dec("10000"),
		CostoFlete:     dec("500"),
		MarkupPct:      dec("40"),
		StockActual:    3,
		StockMinimo:    2,
		Sabores:        []string{"Vainilla", "  ", "Chocolate "},
	})

	require.NoError(t, err)
	assert.Equal(t, "Whey Protein", resp.Nombre)
	assert.Equal(t, []string{"Vainilla", "Chocolate"}, resp.Sabores)
	assertDec(t, "14700", resp.Metricas.PrecioEfectivo, "efectivo")
	assertDec(t, "11025", resp.Metricas.PrecioMayorista, "mayorista")
	assert.Len(t, repo.productos, 1)
}

func TestListarProductos_FiltraPorEstado(t *testing.T) {
	svc, _, _, _ := newProductoSvc(
		model.Producto{Nombre: "A", StockActual: 0},
		model.Producto{Nombre: "B", StockActual: 1, StockMinimo: 2},
		model.Producto{Nombre: "C", StockActual: 9, StockMinimo: 2},
	)

	agotados, err := svc.Listar(context.Background(), dto.ProductoFilter{Estado: "agotado"})
	require.NoError(t, err)
	require.Equal(t, 1, agotados.Total)
	assert.Equal(t, "A", agotados.Data[0].Nombre)

	todos, err := svc.Listar(context.Background(), dto.ProductoFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, todos.Total)
}

func TestAjustarStock_PisoEnCeroYMovimiento(t *testing.T) {
	p := model.Producto{ID: uuid.New(), Nombre: "Creatina", StockActual: 1}
	svc, repo, movs, _ := newProductoSvc(p)

	resp, err := svc.AjustarStock(context.Background(), p.ID, dto.AjustarStockRequest{Delta: -3})

	require.NoError(t, err)
	assert.Equal(t, 0, resp.StockActual)
	assert.Equal(t, 0, repo.get(p.ID).StockActual)
	require.Len(t, movs.movimientos, 1)
	m := movs.movimientos[0]
	assert.Equal(t, model.MovimientoAjusteManual, m.Tipo)
	assert.Equal(t, -1, m.Cantidad)
	assert.Equal(t, 1, m.StockAnterior)
	assert.Equal(t, 0, m.StockNuevo)
	assert.Equal(t, "ajuste manual", m.Motivo)
}

func TestAjustarStock_SinCambioNoRegistraMovimiento(t *testing.T) {
	p := model.Producto{ID: uuid.New(), Nombre: "Barra", StockActual: 0}
	svc, _, movs, _ := newProductoSvc(p)

	_, err := svc.AjustarStock(context.Background(), p.ID, dto.AjustarStockRequest{Delta: -1})

	require.NoError(t, err)
	assert.Empty(t, movs.movimientos)
}

func TestAjustarStock_ProductoInexistente(t *testing.T) {
	svc, _, _, _ := newProductoSvc()
	_, err := svc.AjustarStock(context.Background(), uuid.New(), dto.AjustarStockRequest{Delta: 1})
	assert.ErrorIs(t, err, service.ErrNoEncontrado)
}

func TestActualizarProducto_HistorialSoloSiCambiaCosto(t *testing.T) {
	p := model.Producto{ID: uuid.New(), Nombre: "Whey", CostoProveedor: dec("1000")}
	svc, repo, _, hist := newProductoSvc(p)

	nombre := "Whey Gold"
	_, err := svc.Actualizar(context.Background(), p.ID, dto.ActualizarProductoRequest{Nombre: &nombre})
	require.NoError(t, err)
	assert.Empty(t, hist.filas)
	assert.Equal(t, "Whey Gold", repo.get(p.ID).Nombre)

	costo := dec("1250")
	resp, err := svc.Actualizar(context.Background(), p.ID, dto.ActualizarProductoRequest{CostoProveedor: &costo})
	require.NoError(t, err)
	assertDec(t, "1250", resp.CostoProveedor, "costo")
	require.Len(t, hist.filas, 1)
	assertDec(t, "1000", hist.filas[0].CostoAntes, "antes")
	assertDec(t, "1250", hist.filas[0].CostoDespues, "despues")
	assert.Equal(t, "manual", hist.filas[0].Motivo)

	historial, err := svc.HistorialCostos(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Len(t, historial, 1)
}

func TestEliminarProducto_Inexistente(t *testing.T) {
	svc, _, _, _ := newProductoSvc()
	assert.ErrorIs(t, svc.Eliminar(context.Background(), uuid.New()), service.ErrNoEncontrado)
}
