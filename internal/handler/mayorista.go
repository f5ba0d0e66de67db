package handler

import (
	"net/http"

	"dxy/internal/dto"
	"dxy/internal/service"

	"github.com/gin-gonic/gin"
)

type MayoristaHandler struct{ svc service.MayoristaService }

func NewMayoristaHandler(svc service.MayoristaService) *MayoristaHandler {
	return &MayoristaHandler{svc: svc}
}

// Finalizar godoc
// @Summary      Finalizar pedido mayorista
// @Description  Cotiza al precio mayorista, descuenta stock y guarda el pedido.
// @Tags         mayorista
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.FinalizarPedidoRequest true "Carrito y cliente"
// @Success      201  {object} dto.PedidoMayoristaResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/mayorista/pedidos [post]
func (h *MayoristaHandler) Finalizar(c *gin.Context) {
	var req dto.FinalizarPedidoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Finalizar(c.Request.Context(), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *MayoristaHandler) Interpretar(c *gin.Context) {
	var req dto.InterpretarPedidoRequest
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

func (h *MayoristaHandler) Catalogo(c *gin.Context) {
	resp, err := h.svc.Catalogo(c.Request.Context())
	if err != nil {
		errorInterno(c, err, "Error al armar el catálogo")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (h *MayoristaHandler) ListarPedidos(c *gin.Context) {
	resp, err := h.svc.ListarPedidos(c.Request.Context())
	if err != nil {
		errorInterno(c, err, "Error al listar pedidos")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}
