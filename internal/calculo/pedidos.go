package calculo

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"dxy/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrFormatoComando       = errors.New("error de formato, usar: AGREGAR: Cantidad, Producto, Marca, Sabor")
	ErrCantidadInvalida     = errors.New("la cantidad debe ser un número válido")
	ErrProductoNoEncontrado = errors.New("producto no encontrado")
)

// "2 x whey", "2 whey", "whey x 2", "whey × 2"
var lineaPedidoRe = regexp.MustCompile(`(?i)(\d+)\s*[x×]?\s*(.+)|(.+?)\s*[x×]\s*(\d+)`)

// LineaCarrito is an in-progress wholesale order line priced at the
// wholesale price.
type LineaCarrito struct {
	ProductoID uuid.UUID       `json:"producto_id"`
	Nombre     string          `json:"nombre"`
	Cantidad   int             `json:"cantidad"`
	Precio     decimal.Decimal `json:"precio"`
	Stock      int             `json:"stock"`
}

// AgregarAlCarrito adds qty of p to the cart, merging with an existing line.
func AgregarAlCarrito(carrito []LineaCarrito, p model.Producto, cantidad int) []LineaCarrito {
	out := make([]LineaCarrito, len(carrito), len(carrito)+1)
	copy(out, carrito)
	for i := range out {
		if out[i].ProductoID == p.ID {
			out[i].Cantidad += cantidad
			return out
		}
	}
	return append(out, LineaCarrito{
		ProductoID: p.ID,
		Nombre:     p.NombreCompleto(),
		Cantidad:   cantidad,
		Precio:     CalcularMetricas(p).PrecioMayorista,
		Stock:      p.StockActual,
	})
}

// TotalCarrito is Σ precio × cantidad.
func TotalCarrito(carrito []LineaCarrito) decimal.Decimal {
	total := decimal.Zero
	for _, l := range carrito {
		total = total.Add(l.Precio.Mul(decimal.NewFromInt(int64(l.Cantidad))))
	}
	return total
}

// InterpretarPedido reads a pasted order, one product per line, and returns
// cart lines for the in-stock products it recognises. Lines that match
// nothing are dropped.
func InterpretarPedido(texto string, productos []model.Producto) []LineaPedido {
	var out []LineaPedido
	idx := make(map[uuid.UUID]int)

	for _, linea := range strings.Split(texto, "\n") {
		linea = strings.TrimSpace(linea)
		if linea == "" {
			continue
		}
		m := lineaPedidoRe.FindStringSubmatch(linea)
		if m == nil {
			continue
		}
		cantidad, _ := strconv.Atoi(primero(m[1], m[4]))
		if cantidad <= 0 {
			cantidad = 1
		}
		termino := strings.ToLower(strings.TrimSpace(primero(m[2], m[3])))
		if termino == "" {
			continue
		}

		p, ok := buscarEnStock(productos, termino)
		if !ok {
			continue
		}
		if i, ok := idx[p.ID]; ok {
			out[i].Cantidad += cantidad
			continue
		}
		idx[p.ID] = len(out)
		out = append(out, LineaPedido{ProductoID: p.ID, Cantidad: cantidad})
	}
	return out
}

// InterpretarComandoAgregar parses "AGREGAR: cantidad, producto, marca, sabor".
// Name, brand and flavor are matched as case-insensitive substrings; an empty
// flavor matches any product.
func InterpretarComandoAgregar(comando string, productos []model.Producto) (LineaPedido, error) {
	cuerpo := strings.TrimSpace(comando)
	if len(cuerpo) < len("agregar:") || !strings.EqualFold(cuerpo[:len("agregar:")], "agregar:") {
		return LineaPedido{}, ErrFormatoComando
	}
	partes := strings.Split(cuerpo[len("agregar:"):], ",")
	if len(partes) < 4 {
		return LineaPedido{}, ErrFormatoComando
	}
	for i := range partes {
		partes[i] = strings.ToLower(strings.TrimSpace(partes[i]))
	}

	cantidad, err := strconv.Atoi(partes[0])
	if err != nil || cantidad <= 0 {
		return LineaPedido{}, ErrCantidadInvalida
	}
	nombre, marca, sabor := partes[1], partes[2], partes[3]

	for _, p := range productos {
		if !strings.Contains(strings.ToLower(p.Nombre), nombre) ||
			!strings.Contains(strings.ToLower(p.Marca), marca) {
			continue
		}
		if sabor != "" && !tieneSabor(p, sabor) {
			continue
		}
		return LineaPedido{ProductoID: p.ID, Cantidad: cantidad}, nil
	}
	return LineaPedido{}, ErrProductoNoEncontrado
}

func buscarEnStock(productos []model.Producto, termino string) (model.Producto, bool) {
	for _, p := range productos {
		if p.StockActual <= 0 {
			continue
		}
		nombre := strings.ToLower(p.Nombre)
		marca := strings.ToLower(p.Marca)
		if strings.Contains(nombre, termino) ||
			(marca != "" && strings.Contains(marca, termino)) ||
			strings.Contains(strings.TrimSpace(marca+" "+nombre), termino) {
			return p, true
		}
	}
	return model.Producto{}, false
}

func tieneSabor(p model.Producto, sabor string) bool {
	for _, s := range p.Sabores {
		if strings.Contains(strings.ToLower(s), sabor) {
			return true
		}
	}
	return false
}

func primero(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
