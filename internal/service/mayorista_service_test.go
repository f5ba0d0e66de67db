package service_test

import (
	"context"
	"testing"

	"dxy/internal/dto"
	"dxy/internal/model"
	"dxy/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMayoristaSvc(prods ...model.Producto) (service.MayoristaService, *stubPedidoRepo, *stubProductoRepo, *stubMovimientoRepo) {
	pedidos := &stubPedidoRepo{}
	repo := newStubProductoRepo(prods...)
	movs := &stubMovimientoRepo{}
	return service.NewMayoristaService(pedidos, repo, movs), pedidos, repo, movs
}

func TestFinalizarPedido_DescuentaStockYGuardaSnapshot(t *testing.T) {
	whey := model.Producto{ID: uuid.New(), Nombre: "Whey", Marca: "Star", CostoProveedor: dec("1000"), StockActual: 3}
	barra := model.Producto{ID: uuid.New(), Nombre: "Barra", CostoProveedor: dec("200"), StockActual: 10}
	svc, pedidos, repo, movs := newMayoristaSvc(whey, barra)

	resp, err := svc.Finalizar(context.Background(), dto.FinalizarPedidoRequest{
		Items: []dto.LineaPedidoRequest{
			{ProductoID: whey.ID.String(), Cantidad: 3},
			{ProductoID: barra.ID.String(), Cantidad: 2},
		},
		Cliente: dto.ClienteMayoristaRequest{Nombre: " Gym Norte ", Localidad: "Córdoba"},
	})

	require.NoError(t, err)
	assertDec(t, "3570", resp.Total, "total")
	assert.Equal(t, []string{"Whey"}, resp.Agotados)
	assert.Equal(t, "Gym Norte", resp.Cliente.Nombre)
	assert.Equal(t, 0, repo.get(whey.ID).StockActual)
	assert.Equal(t, 8, repo.get(barra.ID).StockActual)

	require.Len(t, pedidos.pedidos, 1)
	snap := pedidos.pedidos[0]
	require.Len(t, snap.Items, 2)
	assert.Equal(t, "Star - Whey", snap.Items[0].Nombre)
	assertDec(t, "3150", snap.Items[0].Subtotal, "subtotal")

	require.Len(t, movs.movimientos, 2)
	for _, m := range movs.movimientos {
		assert.Equal(t, model.MovimientoPedidoMayorista, m.Tipo)
		require.NotNil(t, m.ReferenciaID)
		assert.Equal(t, snap.ID, *m.ReferenciaID)
	}
}

func TestFinalizarPedido_ProductoDesconocidoSeOmite(t *testing.T) {
	whey := model.Producto{ID: uuid.New(), Nombre: "Whey", CostoProveedor: dec("1000"), StockActual: 3}
	svc, pedidos, repo, _ := newMayoristaSvc(whey)
	desconocido := uuid.New()

	resp, err := svc.Finalizar(context.Background(), dto.FinalizarPedidoRequest{
		Items: []dto.LineaPedidoRequest{
			{ProductoID: whey.ID.String(), Cantidad: 1},
			{ProductoID: desconocido.String(), Cantidad: 1},
		},
		Cliente: dto.ClienteMayoristaRequest{Nombre: "Gym Sur", Localidad: "Rosario"},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{desconocido.String()}, resp.Omitidas)
	require.Len(t, resp.Items, 1)
	assertDec(t, "1050", resp.Total, "total")
	require.Len(t, pedidos.pedidos, 1)
	assert.Len(t, pedidos.pedidos[0].Items, 1)
	assert.Equal(t, 2, repo.get(whey.ID).StockActual)
}

func TestFinalizarPedido_NingunProductoCoincide(t *testing.T) {
	whey := model.Producto{ID: uuid.New(), Nombre: "Whey", StockActual: 3}
	svc, pedidos, repo, movs := newMayoristaSvc(whey)

	_, err := svc.Finalizar(context.Background(), dto.FinalizarPedidoRequest{
		Items:   []dto.LineaPedidoRequest{{ProductoID: uuid.NewString(), Cantidad: 2}},
		Cliente: dto.ClienteMayoristaRequest{Nombre: "Gym Sur", Localidad: "Rosario"},
	})

	assert.ErrorIs(t, err, service.ErrSinCoincidencias)
	assert.Empty(t, pedidos.pedidos)
	assert.Empty(t, movs.movimientos)
	assert.Equal(t, 3, repo.get(whey.ID).StockActual)
}

func TestInterpretarPedido_Texto(t *testing.T) {
	whey := model.Producto{ID: uuid.New(), Nombre: "Whey Protein", CostoProveedor: dec("1000"), StockActual: 3}
	svc, _, _, _ := newMayoristaSvc(whey)

	resp, err := svc.Interpretar(context.Background(), dto.InterpretarPedidoRequest{Texto: "2 x whey"})

	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 2, resp.Items[0].Cantidad)
	assertDec(t, "2100", resp.Total, "total")
}

func TestInterpretarPedido_ComandoAgregar(t *testing.T) {
	whey := model.Producto{ID: uuid.New(), Nombre: "Whey", Marca: "Star", Sabores: []string{"Frutilla"}, CostoProveedor: dec("1000"), StockActual: 3}
	svc, _, _, _ := newMayoristaSvc(whey)

	resp, err := svc.Interpretar(context.Background(), dto.InterpretarPedidoRequest{Texto: "AGREGAR: 4, whey, star, frut"})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 4, resp.Items[0].Cantidad)

	_, err = svc.Interpretar(context.Background(), dto.InterpretarPedidoRequest{Texto: "AGREGAR: 1, whey, star, menta"})
	assert.ErrorIs(t, err, service.ErrSinCoincidencias)
}

func TestInterpretarPedido_SinCoincidencias(t *testing.T) {
	agotado := model.Producto{ID: uuid.New(), Nombre: "Whey", StockActual: 0}
	svc, _, _, _ := newMayoristaSvc(agotado)

	_, err := svc.Interpretar(context.Background(), dto.InterpretarPedidoRequest{Texto: "2 x whey"})
	assert.ErrorIs(t, err, service.ErrSinCoincidencias)
}

func TestCatalogo_AgrupaPorMarca(t *testing.T) {
	svc, _, _, _ := newMayoristaSvc(
		model.Producto{Nombre: "Whey", Marca: "Star", StockActual: 1},
		model.Producto{Nombre: "Creatina", Marca: "Star", StockActual: 4},
		model.Producto{Nombre: "Shaker", StockActual: 2},
		model.Producto{Nombre: "Barra", Marca: "ENA", StockActual: 5},
		model.Producto{Nombre: "Agotado", Marca: "ENA", StockActual: 0},
	)

	cat, err := svc.Catalogo(context.Background())

	require.NoError(t, err)
	require.Len(t, cat, 3)
	assert.Equal(t, "ENA", cat[0].Marca)
	assert.Len(t, cat[0].Productos, 1)
	assert.Equal(t, "Sin Marca", cat[1].Marca)
	assert.Equal(t, "Star", cat[2].Marca)
	assert.Equal(t, "Creatina", cat[2].Productos[0].Nombre)
	assert.Equal(t, []string{}, cat[1].Productos[0].Sabores)
}
