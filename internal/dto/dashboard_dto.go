package dto

import "dxy/internal/calculo"

type DashboardResponse struct {
	Fecha            string                    `json:"fecha"`
	KPIs             calculo.KPIs              `json:"kpis"`
	UltimosSieteDias []calculo.DiaVentas       `json:"ultimos_siete_dias"`
	TopProductos     []calculo.ProductoVendido `json:"top_productos"`
	StockCritico     []ProductoResponse        `json:"stock_critico"`
}
