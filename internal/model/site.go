package model

// Site 站点表 — 对应 sites
type Site struct {
	SiteID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"site_id"`
	OrgID  string `gorm:"type:uuid;not null;index"                       json:"org_id"`
	Name   string `gorm:"type:varchar(100);not null"                     json:"name"`
	BaseModel
}

// TableName 指定表名
func (Site) TableName() string { return "sites" }
