package handler

import (
	"net/http"

	"dxy/internal/dto"
	"dxy/internal/service"

	"github.com/gin-gonic/gin"
)

type CalculadoraHandler struct{ svc service.CalculadoraService }

func NewCalculadoraHandler(svc service.CalculadoraService) *CalculadoraHandler {
	return &CalculadoraHandler{svc: svc}
}

// Combo godoc
// @Summary      Cotizar combo
// @Description  Suma costos y precios de dos o más productos y propone precios al 15/20/25% de descuento.
// @Tags         calculadora
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.ComboRequest true "Items"
// @Success      200  {object} calculo.Combo
// @Failure      404  {object} apierror.APIError
// @Router       /v1/calculadora/combo [post]
func (h *CalculadoraHandler) Combo(c *gin.Context) {
	var req dto.ComboRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Combo(c.Request.Context(), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CalculadoraHandler) Beneficio(c *gin.Context) {
	var req dto.BeneficioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Beneficio(req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CalculadoraHandler) Perfiles(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.svc.Perfiles()})
}
