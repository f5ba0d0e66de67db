package handler

import (
	"io"
	"net/http"

	"dxy/internal/apierror"
	"dxy/internal/service"

	"github.com/gin-gonic/gin"
)

// maxRespaldo bounds a whole-collection import.
const maxRespaldo = 50 << 20

type RespaldoHandler struct{ svc service.RespaldoService }

func NewRespaldoHandler(svc service.RespaldoService) *RespaldoHandler {
	return &RespaldoHandler{svc: svc}
}

// Exportar godoc
// @Summary      Exportar una colección
// @Tags         respaldo
// @Produce      json
// @Security     BearerAuth
// @Param        coleccion path string true "productos | ventas | compras | partners | ventas-partners | gastos"
// @Success      200
// @Failure      404  {object} apierror.APIError
// @Router       /v1/respaldo/{coleccion} [get]
func (h *RespaldoHandler) Exportar(c *gin.Context) {
	data, err := h.svc.Exportar(c.Request.Context(), c.Param("coleccion"))
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

// Importar godoc
// @Summary      Reemplazar una colección
// @Description  El cuerpo es el arreglo completo. Un cuerpo que no es arreglo vacía la colección; los elementos inválidos se descartan.
// @Tags         respaldo
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        coleccion path string true "Colección"
// @Success      200
// @Router       /v1/respaldo/{coleccion} [put]
func (h *RespaldoHandler) Importar(c *gin.Context) {
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxRespaldo))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("No se pudo leer el cuerpo"))
		return
	}
	n, err := h.svc.Importar(c.Request.Context(), c.Param("coleccion"), raw)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"coleccion": c.Param("coleccion"), "importados": n})
}
