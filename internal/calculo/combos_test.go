package calculo_test

import (
	"testing"

	"dxy/internal/calculo"
	"dxy/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCotizarCombo(t *testing.T) {
	whey := model.Producto{ID: uuid.New(), CostoProveedor: dec("10000"), MarkupPct: dec("50")}
	creatina := model.Producto{ID: uuid.New(), CostoProveedor: dec("5000"), CostoFlete: dec("1000"), MarkupPct: dec("50")}

	c, err := calculo.CotizarCombo([]calculo.ItemCombo{{Producto: whey, Cantidad: 1}, {Producto: creatina, Cantidad: 2}})
	require.NoError(t, err)

	assert.Equal(t, 3, c.Unidades)
	assertDec(t, "22000", c.Costo, "costo")
	assertDec(t, "33000", c.PrecioEfectivo, "efectivo")
	assertDec(t, "23100", c.PrecioMayorista, "mayorista")
	assertDec(t, "11000", c.GananciaPotencial, "ganancia")

	require.Len(t, c.Opciones, 3)
	// 33000 × 0.85 = 28050 → 28100 rounded to hundreds
	assert.EqualValues(t, 15, c.Opciones[0].Descuento)
	assertDec(t, "28100", c.Opciones[0].Precio, "precio 15")
	assertDec(t, "6050", c.Opciones[0].Ganancia, "ganancia 15")
	// 33000 × 0.75 = 24750 → 24800
	assertDec(t, "24800", c.Opciones[2].Precio, "precio 25")
	assertDec(t, "2750", c.Opciones[2].Ganancia, "ganancia 25")
	assert.True(t, c.Opciones[2].Margen.GreaterThan(dec("11.11")) && c.Opciones[2].Margen.LessThan(dec("11.12")))
}

func TestCotizarCombo_NecesitaDosProductos(t *testing.T) {
	_, err := calculo.CotizarCombo([]calculo.ItemCombo{{Producto: model.Producto{}, Cantidad: 3}})
	assert.ErrorIs(t, err, calculo.ErrComboInsuficiente)
}

func TestPrecioConBeneficio(t *testing.T) {
	final, ahorro := calculo.PrecioConBeneficio(dec("10000"), "coach_21")
	assertDec(t, "6500", final, "final")
	assertDec(t, "3500", ahorro, "ahorro")

	final, ahorro = calculo.PrecioConBeneficio(dec("10000"), "inexistente")
	assertDec(t, "10000", final, "sin perfil")
	assert.True(t, ahorro.IsZero())
}

func TestPerfilesBeneficio(t *testing.T) {
	assert.Len(t, calculo.PerfilesBeneficio, 8)
	ids := make(map[string]bool)
	for _, p := range calculo.PerfilesBeneficio {
		assert.False(t, ids[p.ID], "perfil duplicado %s", p.ID)
		ids[p.ID] = true
	}
}
