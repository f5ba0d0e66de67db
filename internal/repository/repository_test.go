package repository_test

import (
	"context"
	"testing"
	"time"

	"dxy/internal/dto"
	"dxy/internal/model"
	"dxy/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Producto{},
		&model.MovimientoStock{},
		&model.HistorialCosto{},
		&model.VentaDiaria{},
		&model.FacturaCompra{},
		&model.Partner{},
		&model.VentaPartner{},
		&model.Gasto{},
		&model.PedidoMayorista{},
	))
	return db
}

func TestProductoRepo_ListFiltraPorNombreMarcaYSabor(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewProductoRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.Producto{Nombre: "Whey Protein", Marca: "Star", Sabores: []string{"Frutilla"}}))
	require.NoError(t, repo.Create(ctx, &model.Producto{Nombre: "Creatina", Marca: "ENA"}))

	todos, err := repo.List(ctx, dto.ProductoFilter{})
	require.NoError(t, err)
	assert.Len(t, todos, 2)

	porMarca, err := repo.List(ctx, dto.ProductoFilter{Q: "ena"})
	require.NoError(t, err)
	require.Len(t, porMarca, 1)
	assert.Equal(t, "Creatina", porMarca[0].Nombre)

	porSabor, err := repo.List(ctx, dto.ProductoFilter{Q: "FRUT"})
	require.NoError(t, err)
	require.Len(t, porSabor, 1)
	assert.Equal(t, []string{"Frutilla"}, porSabor[0].Sabores)
}

func TestProductoRepo_DeleteInexistente(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewProductoRepository(db)

	p := &model.Producto{Nombre: "Barra"}
	require.NoError(t, repo.Create(context.Background(), p))
	require.NoError(t, repo.Delete(context.Background(), p.ID))
	assert.ErrorIs(t, repo.Delete(context.Background(), p.ID), gorm.ErrRecordNotFound)
}

func TestProductoRepo_ActualizarStockNoPisaOtrasColumnas(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewProductoRepository(db)
	ctx := context.Background()
	p := &model.Producto{Nombre: "Whey", Marca: "Star", CostoProveedor: decimal.NewFromInt(1000), StockActual: 5}
	require.NoError(t, repo.Create(ctx, p))

	// copy read before a concurrent catalog edit
	viejo := *p
	editado := *p
	editado.Nombre = "Whey Gold"
	editado.MarkupPct = decimal.NewFromInt(60)
	require.NoError(t, repo.Update(ctx, &editado))

	viejo.StockActual = 3
	viejo.CostoProveedor = decimal.NewFromInt(1100)
	err := db.Transaction(func(tx *gorm.DB) error {
		actual, err := repo.FindByIDTx(tx, p.ID)
		if err != nil {
			return err
		}
		assert.Equal(t, "Whey Gold", actual.Nombre)
		return repo.ActualizarStockTx(tx, &viejo)
	})
	require.NoError(t, err)

	got, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.StockActual)
	assert.True(t, got.CostoProveedor.Equal(decimal.NewFromInt(1100)))
	assert.Equal(t, "Whey Gold", got.Nombre)
	assert.True(t, got.MarkupPct.Equal(decimal.NewFromInt(60)))
}

func TestProductoRepo_ActualizarStockInexistente(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewProductoRepository(db)

	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := repo.ListTx(tx); err != nil {
			return err
		}
		return repo.ActualizarStockTx(tx, &model.Producto{ID: uuid.New(), StockActual: 1})
	})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	err = db.Transaction(func(tx *gorm.DB) error {
		_, err := repo.FindByIDTx(tx, uuid.New())
		return err
	})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestProductoRepo_ReplaceAll(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewProductoRepository(db)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &model.Producto{Nombre: "Viejo"}))

	err := db.Transaction(func(tx *gorm.DB) error {
		return repo.ReplaceAllTx(tx, []model.Producto{{Nombre: "Nuevo A"}, {Nombre: "Nuevo B"}})
	})
	require.NoError(t, err)

	prods, err := repo.List(ctx, dto.ProductoFilter{})
	require.NoError(t, err)
	require.Len(t, prods, 2)
	for _, p := range prods {
		assert.NotEqual(t, "Viejo", p.Nombre)
	}
}

func TestVentaDiariaRepo_ListByMes(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewVentaDiariaRepository(db)
	ctx := context.Background()

	err := repo.CreateBatchTx(db, []model.VentaDiaria{
		{Fecha: "2026-03-01", NombreProducto: "A", MontoTotal: decimal.NewFromInt(100), MontoPagado: decimal.NewFromInt(100)},
		{Fecha: "2026-03-20", NombreProducto: "B", MontoTotal: decimal.NewFromInt(50), MontoPagado: decimal.NewFromInt(20)},
		{Fecha: "2026-04-02", NombreProducto: "C", MontoTotal: decimal.NewFromInt(10), MontoPagado: decimal.NewFromInt(10)},
	})
	require.NoError(t, err)

	marzo, err := repo.ListByMes(ctx, "2026-03")
	require.NoError(t, err)
	require.Len(t, marzo, 2)
	assert.Equal(t, "B", marzo[0].NombreProducto, "newest date first")
	assert.True(t, marzo[0].MontoPagado.Equal(decimal.NewFromInt(20)))

	todas, err := repo.ListByMes(ctx, "")
	require.NoError(t, err)
	assert.Len(t, todas, 3)
}

func TestPartnerRepo_CuponesYVentas(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewPartnerRepository(db)
	ctx := context.Background()

	p := &model.Partner{Nombre: "Juan", CuponPartner: "DXY-JUAN", CuponCliente: "CLIENTE-JUAN", Activo: true}
	require.NoError(t, repo.Create(ctx, p))

	existe, err := repo.ExisteCupon(ctx, "CLIENTE-JUAN")
	require.NoError(t, err)
	assert.True(t, existe)
	existe, err = repo.ExisteCupon(ctx, "DXY-ANA")
	require.NoError(t, err)
	assert.False(t, existe)

	// a duplicated coupon violates the unique index
	assert.Error(t, repo.Create(ctx, &model.Partner{Nombre: "Otro", CuponPartner: "DXY-JUAN", CuponCliente: "CLIENTE-OTRO"}))

	require.NoError(t, repo.CreateVenta(ctx, &model.VentaPartner{PartnerID: p.ID, NombreCliente: "Ana", Fecha: "2026-03-05", CuponUsado: model.CuponCliente}))
	require.NoError(t, repo.CreateVenta(ctx, &model.VentaPartner{PartnerID: p.ID, NombreCliente: "Ana", Fecha: "2026-02-05", CuponUsado: model.CuponCliente}))

	ventas, err := repo.ListVentas(ctx, "2026-03")
	require.NoError(t, err)
	assert.Len(t, ventas, 1)

	p.Activo = false
	require.NoError(t, repo.Update(ctx, p))
	got, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, got.Activo)
}

func TestGastoRepo_CRUD(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewGastoRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.CreateBatch(ctx, []model.Gasto{
		{Categoria: "Alquiler", Monto: decimal.NewFromInt(200000), Fecha: "2026-03"},
		{Categoria: "Luz", Monto: decimal.NewFromInt(30000), Fecha: "2026-03"},
	}))

	gastos, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, gastos, 2)

	g := gastos[1]
	g.Monto = decimal.NewFromInt(35000)
	require.NoError(t, repo.Update(ctx, &g))
	got, err := repo.FindByID(ctx, g.ID)
	require.NoError(t, err)
	assert.True(t, got.Monto.Equal(decimal.NewFromInt(35000)))

	require.NoError(t, repo.Delete(ctx, g.ID))
	assert.ErrorIs(t, repo.Delete(ctx, g.ID), gorm.ErrRecordNotFound)
}

func TestPedidoMayoristaRepo_GuardaLineas(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewPedidoMayoristaRepository(db)

	p := &model.PedidoMayorista{
		ClienteNombre:    "Gym Norte",
		ClienteLocalidad: "Córdoba",
		Items:            []model.LineaPedidoMayorista{{Nombre: "Whey", Cantidad: 2, Precio: decimal.NewFromInt(1050), Subtotal: decimal.NewFromInt(2100)}},
		Total:            decimal.NewFromInt(2100),
	}
	require.NoError(t, repo.CreateTx(db, p))

	pedidos, err := repo.ListRecientes(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, pedidos, 1)
	require.Len(t, pedidos[0].Items, 1)
	assert.Equal(t, 2, pedidos[0].Items[0].Cantidad)
}

func TestMovimientoStockRepo_Filtros(t *testing.T) {
	db := newTestDB(t)
	prods := repository.NewProductoRepository(db)
	repo := repository.NewMovimientoStockRepository(db)
	ctx := context.Background()

	p := &model.Producto{Nombre: "Whey"}
	require.NoError(t, prods.Create(ctx, p))
	pedido := uuid.New()
	for _, m := range []model.MovimientoStock{
		{ProductoID: p.ID, Tipo: model.MovimientoAjusteManual, Cantidad: 1, StockNuevo: 1},
		{ProductoID: p.ID, Tipo: model.MovimientoPedidoMayorista, Cantidad: -1, StockAnterior: 1, ReferenciaID: &pedido},
		{ProductoID: p.ID, Tipo: model.MovimientoCompra, Cantidad: 5, StockNuevo: 5},
	} {
		m := m
		require.NoError(t, repo.CreateTx(db, &m))
	}

	movs, total, err := repo.List(ctx, repository.MovimientoStockFilter{ReferenciaID: &pedido})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, movs, 1)
	assert.Equal(t, model.MovimientoPedidoMayorista, movs[0].Tipo)

	movs, total, err = repo.List(ctx, repository.MovimientoStockFilter{ProductoID: &p.ID, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, movs, 2)

	manana := time.Now().Add(24 * time.Hour)
	_, total, err = repo.List(ctx, repository.MovimientoStockFilter{Desde: &manana})
	require.NoError(t, err)
	assert.Zero(t, total)
}
