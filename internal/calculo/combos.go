package calculo

import (
	"errors"

	"dxy/internal/model"

	"github.com/shopspring/decimal"
)

var ErrComboInsuficiente = errors.New("un combo necesita al menos 2 productos")

// descuentosCombo are the three price options offered for every combo.
var descuentosCombo = []int64{15, 20, 25}

type ItemCombo struct {
	Producto model.Producto
	Cantidad int
}

// OpcionCombo is a discounted price for a combo. Precio is rounded to the
// nearest 100; Margen is a percent of the discounted price rounded to units.
type OpcionCombo struct {
	Descuento int64           `json:"descuento"`
	Precio    decimal.Decimal `json:"precio"`
	Ganancia  decimal.Decimal `json:"ganancia"`
	Margen    decimal.Decimal `json:"margen"`
}

type Combo struct {
	Unidades          int             `json:"unidades"`
	Costo             decimal.Decimal `json:"costo"`
	PrecioEfectivo    decimal.Decimal `json:"precio_efectivo"`
	PrecioMayorista   decimal.Decimal `json:"precio_mayorista"`
	GananciaPotencial decimal.Decimal `json:"ganancia_potencial"`
	Opciones          []OpcionCombo   `json:"opciones"`
}

// CotizarCombo totals a bundle of products and proposes discounted prices.
// This is the only place where prices are rounded.
func CotizarCombo(items []ItemCombo) (Combo, error) {
	if len(items) < 2 {
		return Combo{}, ErrComboInsuficiente
	}

	var c Combo
	for _, it := range items {
		cant := it.Cantidad
		if cant < 1 {
			cant = 1
		}
		q := decimal.NewFromInt(int64(cant))
		m := CalcularMetricas(it.Producto)
		c.Unidades += cant
		c.Costo = c.Costo.Add(m.CostoReal.Mul(q))
		c.PrecioEfectivo = c.PrecioEfectivo.Add(m.PrecioEfectivo.Mul(q))
		c.PrecioMayorista = c.PrecioMayorista.Add(m.PrecioMayorista.Mul(q))
	}
	c.GananciaPotencial = c.PrecioEfectivo.Sub(c.Costo)

	for _, d := range descuentosCombo {
		factor := cien.Sub(decimal.NewFromInt(d)).Div(cien)
		bruto := c.PrecioEfectivo.Mul(factor)
		redondo := bruto.Round(0)

		op := OpcionCombo{
			Descuento: d,
			Precio:    bruto.Div(cien).Round(0).Mul(cien),
			Ganancia:  redondo.Sub(c.Costo),
		}
		if !redondo.IsZero() {
			op.Margen = op.Ganancia.Div(redondo).Mul(cien)
		}
		c.Opciones = append(c.Opciones, op)
	}
	return c, nil
}

// ── Beneficios ───────────────────────────────────────────────────────────────

type PerfilBeneficio struct {
	ID        string          `json:"id"`
	Nombre    string          `json:"nombre"`
	Descuento decimal.Decimal `json:"descuento"` // fraction, 0.25 = 25%
}

// PerfilesBeneficio are the discounts granted to each kind of customer.
var PerfilesBeneficio = []PerfilBeneficio{
	{ID: "padel_prof", Nombre: "Profesor Pádel (25%)", Descuento: decimal.RequireFromString("0.25")},
	{ID: "padel_alum_sub", Nombre: "Alumno Pádel y Subcampeón (15%)", Descuento: decimal.RequireFromString("0.15")},
	{ID: "gym_partners", Nombre: "Socios Gym y Afiliados (10%)", Descuento: decimal.RequireFromString("0.10")},
	{ID: "coach_1_10", Nombre: "Entrenador (1-10 cl.) (20%)", Descuento: decimal.RequireFromString("0.20")},
	{ID: "coach_11_20", Nombre: "Entrenador (11-20 cl.) (25%)", Descuento: decimal.RequireFromString("0.25")},
	{ID: "coach_21", Nombre: "Entrenador (+21 cl.) (35%)", Descuento: decimal.RequireFromString("0.35")},
	{ID: "tourn_champ", Nombre: "Campeón Torneo (20%)", Descuento: decimal.RequireFromString("0.20")},
	{ID: "community", Nombre: "Comunidad IG (5%)", Descuento: decimal.RequireFromString("0.05")},
}

// PrecioConBeneficio applies a profile discount to a base price. Unknown
// profiles get no discount.
func PrecioConBeneficio(base decimal.Decimal, perfilID string) (final, ahorro decimal.Decimal) {
	desc := decimal.Zero
	for _, p := range PerfilesBeneficio {
		if p.ID == perfilID {
			desc = p.Descuento
			break
		}
	}
	final = base.Mul(uno.Sub(desc))
	return final, base.Sub(final)
}
