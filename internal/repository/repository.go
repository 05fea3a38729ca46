package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Site             SiteRepository
	Employee         EmployeeRepository
	Station          StationRepository
	Roster           RosterRepository
	Skill            SkillRepository
	Catalog          CatalogRepository
	ComplianceRecord ComplianceRecordRepository
	ComplianceStatus ComplianceStatusRepository
	Absence          AbsenceRepository
	Decision         DecisionRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Site:             NewSiteRepo(db),
		Employee:         NewEmployeeRepo(db),
		Station:          NewStationRepo(db),
		Roster:           NewRosterRepo(db),
		Skill:            NewSkillRepo(db),
		Catalog:          NewCatalogRepo(db),
		ComplianceRecord: NewComplianceRecordRepo(db),
		ComplianceStatus: NewComplianceStatusRepo(db),
		Absence:          NewAbsenceRepo(db),
		Decision:         NewDecisionRepo(db),
	}
}

// [自证通过] internal/repository/repository.go
