package handler

import (
	"net/http"

	"dxy/internal/dto"
	"dxy/internal/service"

	"github.com/gin-gonic/gin"
)

type ComprasHandler struct{ svc service.CompraService }

func NewComprasHandler(svc service.CompraService) *ComprasHandler { return &ComprasHandler{svc: svc} }

// Registrar godoc
// @Summary      Registrar factura de compra
// @Description  Suma stock por línea y, con actualizar_costos, reemplaza el costo de proveedor.
// @Tags         compras
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.RegistrarCompraRequest true "Factura"
// @Success      201  {object} dto.RegistrarCompraResponse
// @Router       /v1/compras [post]
func (h *ComprasHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarCompraRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Registrar(c.Request.Context(), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ComprasHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		errorInterno(c, err, "Error al listar compras")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (h *ComprasHandler) ReporteMensual(c *gin.Context) {
	resp, err := h.svc.ReporteMensual(c.Request.Context())
	if err != nil {
		errorInterno(c, err, "Error al generar el reporte de compras")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ComprasHandler) Interpretar(c *gin.Context) {
	var req dto.InterpretarFacturaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Interpretar(c.Request.Context(), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
