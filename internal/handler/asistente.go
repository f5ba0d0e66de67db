package handler

import (
	"net/http"

	"dxy/internal/dto"
	"dxy/internal/service"

	"github.com/gin-gonic/gin"
)

type AsistenteHandler struct{ svc service.AsistenteService }

func NewAsistenteHandler(svc service.AsistenteService) *AsistenteHandler {
	return &AsistenteHandler{svc: svc}
}

// SolicitarConsejo godoc
// @Summary      Pedir consejo al asistente
// @Description  Encola la consulta; el resultado se consulta en GET /v1/asistente/consejos/{id}.
// @Tags         asistente
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.ConsejoRequest true "Consulta"
// @Success      202  {object} dto.ConsejoResponse
// @Failure      502  {object} apierror.APIError
// @Router       /v1/asistente/consejos [post]
func (h *AsistenteHandler) SolicitarConsejo(c *gin.Context) {
	var req dto.ConsejoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.SolicitarConsejo(c.Request.Context(), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, resp)
}

func (h *AsistenteHandler) ObtenerConsejo(c *gin.Context) {
	resp, err := h.svc.ObtenerConsejo(c.Request.Context(), c.Param("id"))
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AsistenteHandler) Transcribir(c *gin.Context) {
	audio, fh, ok := leerArchivo(c, "audio")
	if !ok {
		return
	}
	mime := fh.Header.Get("Content-Type")
	if mime == "" {
		mime = "audio/webm"
	}
	resp, err := h.svc.Transcribir(c.Request.Context(), audio, mime)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
