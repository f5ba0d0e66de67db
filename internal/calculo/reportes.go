package calculo

import (
	"sort"
	"time"

	"dxy/internal/model"

	"github.com/shopspring/decimal"
)

const (
	topProductosLimite = 5
	stockCriticoLimite = 8

	productoDesconocido = "Desconocido"
	metodoPagoOtro      = "Otro"
)

// PaletaPagos colors the payment distribution, cycled by group index.
var PaletaPagos = []string{"#F9D85A", "#575756", "#333333", "#f4f4f4", "#a3a3a3", "#d4d4d4", "#e5e5e5"}

var diasCortos = [...]string{"Dom", "Lun", "Mar", "Mié", "Jue", "Vie", "Sáb"}

// ── Dashboard ────────────────────────────────────────────────────────────────

type KPIs struct {
	VentasHoy         int             `json:"ventas_hoy"`
	IngresosHoy       decimal.Decimal `json:"ingresos_hoy"`
	VentasMes         int             `json:"ventas_mes"`
	IngresosMes       decimal.Decimal `json:"ingresos_mes"`
	StockBajo         int             `json:"stock_bajo"`
	Agotados          int             `json:"agotados"`
	ValorInventario   decimal.Decimal `json:"valor_inventario"`
	GananciaPotencial decimal.Decimal `json:"ganancia_potencial"`
}

// ResumenKPI builds the dashboard counters. Revenue is what was actually
// collected (MontoPagado), not the ticket total.
func ResumenKPI(productos []model.Producto, ventas []model.VentaDiaria, hoy time.Time) KPIs {
	dia := hoy.Format("2006-01-02")
	mes := hoy.Format("2006-01")

	var k KPIs
	for _, v := range ventas {
		if v.Fecha == dia {
			k.VentasHoy++
			k.IngresosHoy = k.IngresosHoy.Add(v.MontoPagado)
		}
		if EnMes(v.Fecha, mes) {
			k.VentasMes++
			k.IngresosMes = k.IngresosMes.Add(v.MontoPagado)
		}
	}

	for _, p := range productos {
		m := CalcularMetricas(p)
		switch m.Estado {
		case EstadoPedir:
			k.StockBajo++
		case EstadoAgotado:
			k.Agotados++
		}
		stock := decimal.NewFromInt(int64(p.StockActual))
		k.ValorInventario = k.ValorInventario.Add(m.CostoReal.Mul(stock))
		k.GananciaPotencial = k.GananciaPotencial.Add(m.GananciaNeta.Mul(stock))
	}
	return k
}

type DiaVentas struct {
	Etiqueta string          `json:"etiqueta"`
	Fecha    string          `json:"fecha"` // MM-DD
	Ventas   int             `json:"ventas"`
	Ingresos decimal.Decimal `json:"ingresos"`
}

// UltimosSieteDias returns today and the six previous days, oldest first.
// Days without sales are reported with zero values.
func UltimosSieteDias(ventas []model.VentaDiaria, hoy time.Time) []DiaVentas {
	dias := make([]DiaVentas, 7)
	indice := make(map[string]int, 7)
	for i := 0; i < 7; i++ {
		d := hoy.AddDate(0, 0, i-6)
		dias[i] = DiaVentas{Etiqueta: diasCortos[d.Weekday()], Fecha: d.Format("01-02")}
		indice[d.Format("2006-01-02")] = i
	}
	for _, v := range ventas {
		i, ok := indice[v.Fecha]
		if !ok {
			continue
		}
		dias[i].Ventas++
		dias[i].Ingresos = dias[i].Ingresos.Add(v.MontoPagado)
	}
	return dias
}

type ProductoVendido struct {
	Nombre   string          `json:"nombre"`
	Cantidad int             `json:"cantidad"`
	Ingresos decimal.Decimal `json:"ingresos"`
}

// TopProductosMes groups the month's sales by free-text product name and
// returns the five most sold. Ties keep the order in which names first appeared.
func TopProductosMes(ventas []model.VentaDiaria, mes string) []ProductoVendido {
	var grupos []ProductoVendido
	indice := make(map[string]int)
	for _, v := range ventas {
		if !EnMes(v.Fecha, mes) {
			continue
		}
		nombre := v.NombreProducto
		if nombre == "" {
			nombre = productoDesconocido
		}
		i, ok := indice[nombre]
		if !ok {
			i = len(grupos)
			indice[nombre] = i
			grupos = append(grupos, ProductoVendido{Nombre: nombre})
		}
		grupos[i].Cantidad++
		grupos[i].Ingresos = grupos[i].Ingresos.Add(v.MontoPagado)
	}

	sort.SliceStable(grupos, func(a, b int) bool { return grupos[a].Cantidad > grupos[b].Cantidad })
	if len(grupos) > topProductosLimite {
		grupos = grupos[:topProductosLimite]
	}
	return grupos
}

// StockCritico lists products at or below their minimum, lowest stock first.
func StockCritico(productos []model.Producto) []model.Producto {
	var out []model.Producto
	for _, p := range productos {
		if p.StockActual <= p.StockMinimo {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].StockActual < out[b].StockActual })
	if len(out) > stockCriticoLimite {
		out = out[:stockCriticoLimite]
	}
	return out
}

// ── Compras ──────────────────────────────────────────────────────────────────

type ComprasProveedor struct {
	Proveedor  string          `json:"proveedor"`
	Facturas   int             `json:"facturas"`
	Mercaderia decimal.Decimal `json:"mercaderia"`
	Envio      decimal.Decimal `json:"envio"`
	Total      decimal.Decimal `json:"total"`
}

type ComprasMes struct {
	Mes         string             `json:"mes"`
	Mercaderia  decimal.Decimal    `json:"mercaderia"`
	Envio       decimal.Decimal    `json:"envio"`
	Total       decimal.Decimal    `json:"total"`
	Proveedores []ComprasProveedor `json:"proveedores"`
}

// ReporteComprasMensual groups invoices by month and vendor. Months come
// newest first and vendors alphabetically. Invoices without a date are left out.
func ReporteComprasMensual(facturas []model.FacturaCompra) []ComprasMes {
	porMes := make(map[string]map[string]*ComprasProveedor)
	for _, f := range facturas {
		if len(f.Fecha) < 7 {
			continue
		}
		mes := f.Fecha[:7]
		if porMes[mes] == nil {
			porMes[mes] = make(map[string]*ComprasProveedor)
		}
		cp := porMes[mes][f.Proveedor]
		if cp == nil {
			cp = &ComprasProveedor{Proveedor: f.Proveedor}
			porMes[mes][f.Proveedor] = cp
		}
		cp.Facturas++
		cp.Mercaderia = cp.Mercaderia.Add(f.MontoMercaderia)
		cp.Envio = cp.Envio.Add(f.CostoEnvio)
		cp.Total = cp.Mercaderia.Add(cp.Envio)
	}

	out := make([]ComprasMes, 0, len(porMes))
	for mes, provs := range porMes {
		cm := ComprasMes{Mes: mes}
		for _, cp := range provs {
			cm.Proveedores = append(cm.Proveedores, *cp)
			cm.Mercaderia = cm.Mercaderia.Add(cp.Mercaderia)
			cm.Envio = cm.Envio.Add(cp.Envio)
		}
		cm.Total = cm.Mercaderia.Add(cm.Envio)
		sort.Slice(cm.Proveedores, func(a, b int) bool { return cm.Proveedores[a].Proveedor < cm.Proveedores[b].Proveedor })
		out = append(out, cm)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Mes > out[b].Mes })
	return out
}

// ── Pagos ────────────────────────────────────────────────────────────────────

// PorcentajePago is one slice of the payment-method distribution. Desde and
// Hasta are the cumulative percentages bounding the slice on a pie chart.
type PorcentajePago struct {
	Metodo     string          `json:"metodo"`
	Monto      decimal.Decimal `json:"monto"`
	Porcentaje decimal.Decimal `json:"porcentaje"`
	Color      string          `json:"color"`
	Desde      decimal.Decimal `json:"desde"`
	Hasta      decimal.Decimal `json:"hasta"`
}

// DistribucionPagos groups sales by payment method in order of first
// appearance and expresses each amount as a share of the collected total.
func DistribucionPagos(ventas []model.VentaDiaria) []PorcentajePago {
	var grupos []PorcentajePago
	indice := make(map[string]int)
	total := decimal.Zero
	for _, v := range ventas {
		metodo := v.MetodoPago
		if metodo == "" {
			metodo = metodoPagoOtro
		}
		i, ok := indice[metodo]
		if !ok {
			i = len(grupos)
			indice[metodo] = i
			grupos = append(grupos, PorcentajePago{Metodo: metodo, Color: PaletaPagos[i%len(PaletaPagos)]})
		}
		grupos[i].Monto = grupos[i].Monto.Add(v.MontoPagado)
		total = total.Add(v.MontoPagado)
	}

	acumulado := decimal.Zero
	for i := range grupos {
		if total.IsPositive() {
			grupos[i].Porcentaje = grupos[i].Monto.Div(total).Mul(cien)
		}
		grupos[i].Desde = acumulado
		acumulado = acumulado.Add(grupos[i].Porcentaje)
		grupos[i].Hasta = acumulado
	}
	return grupos
}

// VentasDelMes filters sales by month prefix.
func VentasDelMes(ventas []model.VentaDiaria, mes string) []model.VentaDiaria {
	var out []model.VentaDiaria
	for _, v := range ventas {
		if EnMes(v.Fecha, mes) {
			out = append(out, v)
		}
	}
	return out
}
