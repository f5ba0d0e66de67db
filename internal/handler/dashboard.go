package handler

import (
	"net/http"

	"dxy/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct{ svc service.DashboardService }

func NewDashboardHandler(svc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Obtener godoc
// @Summary      Dashboard
// @Description  KPIs del día y del mes, últimos siete días, top 5 del mes y stock crítico.
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object} dto.DashboardResponse
// @Router       /v1/dashboard [get]
func (h *DashboardHandler) Obtener(c *gin.Context) {
	resp, err := h.svc.Obtener(c.Request.Context())
	if err != nil {
		errorInterno(c, err, "Error al armar el dashboard")
		return
	}
	c.JSON(http.StatusOK, resp)
}
