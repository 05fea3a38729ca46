package compliance

import (
	"sort"
	"testing"
)

func TestNormalizeShift(t *testing.T) {
	cases := []struct {
		raw        string
		want       string
		recognized bool
	}{
		{"1", ShiftDay, true},
		{"FM", ShiftDay, true},
		{"dag", ShiftDay, true},
		{"Day", ShiftDay, true},
		{"2", ShiftEvening, true},
		{"kväll", ShiftEvening, true},
		{"3", ShiftNight, true},
		{"N", ShiftNight, true},
		{"natt", ShiftNight, true},
		{"NIGHT", ShiftNight, true},
		{"  night ", ShiftNight, true},
		// 未识别值原样透传（fail-open），recognized=false
		{"graveyard", "graveyard", false},
		{"4", "4", false},
		{"", "", false},
	}

	for _, tc := range cases {
		got, recognized := NormalizeShift(tc.raw)
		if got != tc.want || recognized != tc.recognized {
			t.Errorf("NormalizeShift(%q) = (%q, %v)，期望 (%q, %v)",
				tc.raw, got, recognized, tc.want, tc.recognized)
		}
	}
}

func TestRequiredForContext_Base(t *testing.T) {
	// 白班：工作环境 + 可持续 + 基础医学，无夜班项
	required := RequiredForContext(Context{ShiftCode: "1"})

	mustContain(t, required, "BAM_GRUND")
	mustContain(t, required, "SKYDDSROND_UTB")
	mustContain(t, required, "HALLBARHET_GRUND")
	mustContain(t, required, "MED_GRUNDKONTROLL")
	mustContain(t, required, "HLR_UTB")
	mustNotContain(t, required, NightExamCode)
}

func TestRequiredForContext_NightShift(t *testing.T) {
	for _, raw := range []string{"3", "N", "natt", "Night"} {
		required := RequiredForContext(Context{ShiftCode: raw})
		mustContain(t, required, NightExamCode)
	}
}

func TestRequiredForContext_UnknownShift(t *testing.T) {
	// 未识别班次 fail-open：不加夜班项，基础项照常
	required := RequiredForContext(Context{ShiftCode: "skift-99"})
	mustNotContain(t, required, NightExamCode)
	mustContain(t, required, "BAM_GRUND")
}

func TestRequiredForContext_Customer(t *testing.T) {
	// 客户匹配大小写不敏感
	required := RequiredForContext(Context{ShiftCode: "1", CustomerCode: "Volvo"})
	mustContain(t, required, "VOLVO_SAFETY_INTRO")

	required = RequiredForContext(Context{ShiftCode: "1", CustomerCode: "SCANIA"})
	mustContain(t, required, "SCANIA_GATE_CERT")

	// 未知客户不加任何项
	required = RequiredForContext(Context{ShiftCode: "1", CustomerCode: "unknown-ab"})
	mustNotContain(t, required, "VOLVO_SAFETY_INTRO")
	mustNotContain(t, required, "SCANIA_GATE_CERT")
}

func TestRequiredForContext_Dedup(t *testing.T) {
	required := RequiredForContext(Context{ShiftCode: "natt", CustomerCode: "arlanda"})

	seen := make(map[string]int)
	for _, c := range required {
		seen[c]++
	}
	for code, n := range seen {
		if n > 1 {
			t.Errorf("编码 %s 出现 %d 次，必须去重", code, n)
		}
	}
}

func TestRequiredForContext_OrderInsensitiveEquality(t *testing.T) {
	// 相同情境两次调用结果一致（顺序不敏感比较）
	a := RequiredForContext(Context{ShiftCode: "3", CustomerCode: "volvo"})
	b := RequiredForContext(Context{ShiftCode: "3", CustomerCode: "volvo"})

	sort.Strings(a)
	sort.Strings(b)
	if len(a) != len(b) {
		t.Fatalf("两次推导长度不一致: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("两次推导结果不一致: %v vs %v", a, b)
			break
		}
	}
}

func TestKnownCustomer(t *testing.T) {
	if !KnownCustomer("volvo") || !KnownCustomer(" Scania ") {
		t.Error("已知客户应返回 true")
	}
	if KnownCustomer("acme") {
		t.Error("未知客户应返回 false")
	}
}

func mustContain(t *testing.T, list []string, code string) {
	t.Helper()
	for _, c := range list {
		if c == code {
			return
		}
	}
	t.Errorf("期望包含 %s，实际=%v", code, list)
}

func mustNotContain(t *testing.T, list []string, code string) {
	t.Helper()
	for _, c := range list {
		if c == code {
			t.Errorf("不应包含 %s，实际=%v", code, list)
			return
		}
	}
}
