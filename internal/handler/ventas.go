package handler

import (
	"net/http"
	"strconv"

	"dxy/internal/dto"
	"dxy/internal/service"

	"github.com/gin-gonic/gin"
)

type VentasHandler struct{ svc service.VentaService }

func NewVentasHandler(svc service.VentaService) *VentasHandler { return &VentasHandler{svc: svc} }

// Registrar godoc
// @Summary      Registrar ventas del día
// @Description  Alta en lote. Con descontar_stock=true descuenta una unidad por venta del producto con el mismo nombre.
// @Tags         ventas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.RegistrarVentasRequest true "Ventas"
// @Success      201  {object} dto.RegistrarVentasResponse
// @Failure      422  {object} apierror.ValidationError
// @Router       /v1/ventas [post]
func (h *VentasHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarVentasRequest
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

// ImportarImagen godoc
// @Summary      Importar ventas desde una foto de la planilla
// @Tags         ventas
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        imagen          formData file true  "Foto JPEG o PNG"
// @Param        descontar_stock formData bool false "Descontar stock"
// @Success      201  {object} dto.RegistrarVentasResponse
// @Failure      409  {object} apierror.APIError
// @Failure      502  {object} apierror.APIError
// @Router       /v1/ventas/importar-imagen [post]
func (h *VentasHandler) ImportarImagen(c *gin.Context) {
	imagen, _, ok := leerArchivo(c, "imagen")
	if !ok {
		return
	}
	descontar, _ := strconv.ParseBool(c.PostForm("descontar_stock"))

	resp, err := h.svc.ImportarImagen(c.Request.Context(), imagen, descontar)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *VentasHandler) Listar(c *gin.Context) {
	var filter dto.VentaFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		errorInterno(c, err, "Error al listar ventas")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VentasHandler) Actualizar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.VentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VentasHandler) Eliminar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		responderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *VentasHandler) DistribucionPagos(c *gin.Context) {
	var filter dto.VentaFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.DistribucionPagos(c.Request.Context(), filter)
	if err != nil {
		errorInterno(c, err, "Error al calcular la distribución de pagos")
		return
	}
	c.JSON(http.StatusOK, resp)
}
