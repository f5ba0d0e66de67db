package calculo

import (
	"strings"

	"dxy/internal/model"

	"github.com/shopspring/decimal"
)

// margenEquilibrio is the average gross margin used to turn fixed expenses
// into the sales needed to cover them.
var margenEquilibrio = decimal.RequireFromString("0.35")

// CategoriasGastoDefault are the fixed monthly expenses every store has.
var CategoriasGastoDefault = []string{
	"Alquiler", "Luz", "Monotributo", "Publicidad Meta", "Imprenta", "Limpieza", "Empleada", "Otros",
}

const fechaGastoDefault = "2024-03"

type ResumenGastos struct {
	Total           decimal.Decimal            `json:"total"`
	PuntoEquilibrio decimal.Decimal            `json:"punto_equilibrio"`
	PorCategoria    map[string]decimal.Decimal `json:"por_categoria"`
}

// ResumirGastos sums expenses and derives the break-even sales figure.
func ResumirGastos(gastos []model.Gasto) ResumenGastos {
	r := ResumenGastos{PorCategoria: make(map[string]decimal.Decimal)}
	for _, g := range gastos {
		r.Total = r.Total.Add(g.Monto)
		r.PorCategoria[g.Categoria] = r.PorCategoria[g.Categoria].Add(g.Monto)
	}
	r.PuntoEquilibrio = r.Total.Div(margenEquilibrio)
	return r
}

// GastosFaltantes returns zero-amount expenses for the default categories
// not yet present (compared case-insensitively).
func GastosFaltantes(existentes []model.Gasto) []model.Gasto {
	hay := make(map[string]bool, len(existentes))
	for _, g := range existentes {
		hay[strings.ToLower(strings.TrimSpace(g.Categoria))] = true
	}
	var out []model.Gasto
	for _, c := range CategoriasGastoDefault {
		if !hay[strings.ToLower(c)] {
			out = append(out, model.Gasto{Categoria: c, Fecha: fechaGastoDefault})
		}
	}
	return out
}
