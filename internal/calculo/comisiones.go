package calculo

import (
	"strings"
	"unicode"

	"dxy/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Niveles de descuento de partners (porcentaje).
const (
	NivelBase     = 20
	NivelMedio    = 25
	NivelSuperior = 35

	umbralMedio    = 11
	umbralSuperior = 21
)

// Liquidacion is a partner's monthly settlement. It is a projection over the
// partner's sales and is never persisted.
type Liquidacion struct {
	PartnerID      uuid.UUID       `json:"partner_id"`
	Nombre         string          `json:"nombre"`
	ClientesUnicos int             `json:"clientes_unicos"`
	TotalVentas    int             `json:"total_ventas"`
	MontoTotal     decimal.Decimal `json:"monto_total"`
	MontoPropio    decimal.Decimal `json:"monto_propio"`
	NivelDescuento int             `json:"nivel_descuento"`
	Reintegro      decimal.Decimal `json:"reintegro"`
}

// TotalesLiquidacion sums the settlements of every partner for a month.
type TotalesLiquidacion struct {
	Clientes  int             `json:"clientes"`
	Ventas    int             `json:"ventas"`
	Monto     decimal.Decimal `json:"monto"`
	Reintegro decimal.Decimal `json:"reintegro"`
}

// NivelDescuento maps the number of referred clients to a discount tier.
// The tiers are steps at 11 and 21 clients.
func NivelDescuento(clientesUnicos int) int {
	switch {
	case clientesUnicos >= umbralSuperior:
		return NivelSuperior
	case clientesUnicos >= umbralMedio:
		return NivelMedio
	default:
		return NivelBase
	}
}

// Reintegro pays back the discount above the base tier on the partner's own
// purchases.
func Reintegro(montoPropio decimal.Decimal, nivel int) decimal.Decimal {
	if nivel <= NivelBase {
		return decimal.Zero
	}
	return montoPropio.Mul(decimal.NewFromInt(int64(nivel - NivelBase))).Div(cien)
}

// EnMes reports whether a YYYY-MM-DD (or YYYY-MM) date falls in mes (YYYY-MM).
// Empty dates never match.
func EnMes(fecha, mes string) bool {
	return fecha != "" && mes != "" && strings.HasPrefix(fecha, mes)
}

// LiquidarPartner computes the settlement of one partner for mes.
func LiquidarPartner(p model.Partner, ventas []model.VentaPartner, mes string) Liquidacion {
	liq := Liquidacion{PartnerID: p.ID, Nombre: p.Nombre}
	clientes := make(map[string]struct{})

	for _, v := range ventas {
		if v.PartnerID != p.ID || !EnMes(v.Fecha, mes) {
			continue
		}
		liq.TotalVentas++
		liq.MontoTotal = liq.MontoTotal.Add(v.Monto)

		switch v.CuponUsado {
		case model.CuponCliente:
			clientes[clienteKey(v.NombreCliente)] = struct{}{}
		case model.CuponTrainer:
			liq.MontoPropio = liq.MontoPropio.Add(v.Monto)
		}
	}

	liq.ClientesUnicos = len(clientes)
	liq.NivelDescuento = NivelDescuento(liq.ClientesUnicos)
	liq.Reintegro = Reintegro(liq.MontoPropio, liq.NivelDescuento)
	return liq
}

// LiquidarMes settles every partner in order and returns the grand totals.
func LiquidarMes(partners []model.Partner, ventas []model.VentaPartner, mes string) ([]Liquidacion, TotalesLiquidacion) {
	out := make([]Liquidacion, 0, len(partners))
	var tot TotalesLiquidacion
	for _, p := range partners {
		liq := LiquidarPartner(p, ventas, mes)
		out = append(out, liq)
		tot.Clientes += liq.ClientesUnicos
		tot.Ventas += liq.TotalVentas
		tot.Monto = tot.Monto.Add(liq.MontoTotal)
		tot.Reintegro = tot.Reintegro.Add(liq.Reintegro)
	}
	return out, tot
}

// CuponesPartner derives the partner's own coupon and the one handed to
// their clients from the partner's name.
func CuponesPartner(nombre string) (cuponPartner, cuponCliente string) {
	base := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, strings.ToUpper(strings.TrimSpace(nombre)))
	return "DXY-" + base, "CLIENTE-" + base
}

func clienteKey(nombre string) string {
	return strings.ToLower(strings.TrimSpace(nombre))
}
