package model

import "time"

// 缺勤来源
const (
	AbsenceSourceManual = "manual"
	AbsenceSourceICS    = "ics"
)

// Absence 缺勤表 — 对应 absences
// 手工录入或从员工的 ICS 缺勤日历导入；影响在岗人数计算
type Absence struct {
	AbsenceID  string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"absence_id"`
	OrgID      string    `gorm:"type:uuid;not null"                             json:"org_id"`
	EmployeeID string    `gorm:"type:uuid;not null"                             json:"employee_id"`
	StartsOn   time.Time `gorm:"type:date;not null"                             json:"starts_on"`
	EndsOn     time.Time `gorm:"type:date;not null"                             json:"ends_on"`
	Reason     string    `gorm:"type:varchar(200)"                              json:"reason,omitempty"`
	Source     string    `gorm:"type:varchar(20);not null;default:'manual'"     json:"source"`
	CreatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (Absence) TableName() string { return "absences" }
