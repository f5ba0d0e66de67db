package handler

import (
	"net/http"

	"dxy/internal/dto"
	"dxy/internal/service"

	"github.com/gin-gonic/gin"
)

type PartnersHandler struct{ svc service.PartnerService }

func NewPartnersHandler(svc service.PartnerService) *PartnersHandler {
	return &PartnersHandler{svc: svc}
}

func (h *PartnersHandler) Crear(c *gin.Context) {
	var req dto.CrearPartnerRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PartnersHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		errorInterno(c, err, "Error al listar partners")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (h *PartnersHandler) CambiarEstado(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.CambiarEstadoPartnerRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CambiarEstado(c.Request.Context(), id, req.Activo)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PartnersHandler) RegistrarVenta(c *gin.Context) {
	var req dto.VentaPartnerRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarVenta(c.Request.Context(), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PartnersHandler) ListarVentas(c *gin.Context) {
	var filter dto.MesFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.ListarVentas(c.Request.Context(), filter)
	if err != nil {
		errorInterno(c, err, "Error al listar ventas de partners")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// Liquidacion godoc
// @Summary      Liquidación mensual de partners
// @Description  Clientes únicos, nivel de descuento (20/25/35) y reintegro sobre compras propias.
// @Tags         partners
// @Produce      json
// @Security     BearerAuth
// @Param        mes query string false "YYYY-MM, por defecto el mes actual"
// @Success      200  {object} dto.LiquidacionResponse
// @Router       /v1/partners/liquidacion [get]
func (h *PartnersHandler) Liquidacion(c *gin.Context) {
	var filter dto.MesFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.Liquidacion(c.Request.Context(), filter)
	if err != nil {
		errorInterno(c, err, "Error al calcular la liquidación")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PartnersHandler) NotificarLiquidacion(c *gin.Context) {
	var filter dto.MesFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.NotificarLiquidacion(c.Request.Context(), filter)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, resp)
}
