package model_test

import (
	"sync"
	"testing"

	"dxy/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

// Money and percentage columns keep four decimals so imported values
// survive a save and export unchanged.
func TestColumnasDecimalesConCuatroDecimales(t *testing.T) {
	casos := []struct {
		modelo any
		campos []string
	}{
		{&model.Producto{}, []string{"CostoProveedor", "CostoFlete", "MarkupPct", "RecargoTarjetaPct"}},
		{&model.HistorialCosto{}, []string{"CostoAntes", "CostoDespues"}},
		{&model.VentaDiaria{}, []string{"MontoTotal", "MontoPagado"}},
		{&model.FacturaCompra{}, []string{"MontoMercaderia", "CostoEnvio"}},
		{&model.Gasto{}, []string{"Monto"}},
		{&model.VentaPartner{}, []string{"Monto"}},
		{&model.PedidoMayorista{}, []string{"Total"}},
	}

	for _, c := range casos {
		s, err := schema.Parse(c.modelo, &sync.Map{}, schema.NamingStrategy{})
		require.NoError(t, err)
		for _, nombre := range c.campos {
			f := s.LookUpField(nombre)
			require.NotNil(t, f, "%s.%s", s.Name, nombre)
			assert.Equal(t, schema.DataType("numeric(14,4)"), f.DataType, "%s.%s", s.Name, nombre)
		}
	}
}
