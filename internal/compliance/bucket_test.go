package compliance

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func TestClassifyRecord_Waived(t *testing.T) {
	asOf := date(2024, time.June, 1)

	// 豁免永不过期：即使 valid_to 早已过去也是 valid
	bucket, days := ClassifyRecord(datePtr(2020, time.January, 1), true, asOf)
	if bucket != BucketValid {
		t.Errorf("豁免记录期望 valid，实际=%s", bucket)
	}
	if days != nil {
		t.Errorf("豁免记录 days_left 应为 nil，实际=%d", *days)
	}

	// 豁免 + 无日期同样 valid
	bucket, _ = ClassifyRecord(nil, true, asOf)
	if bucket != BucketValid {
		t.Errorf("豁免无日期期望 valid，实际=%s", bucket)
	}
}

func TestClassifyRecord_Missing(t *testing.T) {
	bucket, days := ClassifyRecord(nil, false, date(2024, time.June, 1))
	if bucket != BucketMissing {
		t.Errorf("无留档期望 missing，实际=%s", bucket)
	}
	if days != nil {
		t.Error("missing 的 days_left 应为 nil")
	}
}

func TestClassifyRecord_Expired(t *testing.T) {
	asOf := date(2024, time.June, 1)

	bucket, days := ClassifyRecord(datePtr(2024, time.May, 31), false, asOf)
	if bucket != BucketExpired {
		t.Errorf("昨天到期期望 expired，实际=%s", bucket)
	}
	if days == nil || *days != -1 {
		t.Errorf("期望 days_left=-1，实际=%v", days)
	}
}

func TestClassifyRecord_ExpiresToday(t *testing.T) {
	// 当天到期尚未过期：时间部分被截断
	asOf := time.Date(2024, time.June, 1, 23, 59, 0, 0, time.UTC)
	validTo := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	bucket, days := ClassifyRecord(&validTo, false, asOf)
	if bucket != BucketExpiring7 {
		t.Errorf("当天到期期望 expiring_7，实际=%s", bucket)
	}
	if days == nil || *days != 0 {
		t.Errorf("期望 days_left=0，实际=%v", days)
	}
}

func TestClassifyRecord_Boundaries(t *testing.T) {
	asOf := date(2024, time.January, 1)

	cases := []struct {
		name    string
		validTo time.Time
		want    Bucket
		days    int
	}{
		// 边界归属：第 7 / 30 天含在更紧急的桶
		{"第7天归 expiring_7", date(2024, time.January, 8), BucketExpiring7, 7},
		{"第8天归 expiring_30", date(2024, time.January, 9), BucketExpiring30, 8},
		{"第30天归 expiring_30", date(2024, time.January, 31), BucketExpiring30, 30},
		{"第31天归 valid", date(2024, time.February, 1), BucketValid, 31},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bucket, days := ClassifyRecord(&tc.validTo, false, asOf)
			if bucket != tc.want {
				t.Errorf("期望 %s，实际=%s", tc.want, bucket)
			}
			if days == nil || *days != tc.days {
				t.Errorf("期望 days_left=%d，实际=%v", tc.days, days)
			}
		})
	}
}

func TestRiskPoints_Monotonic(t *testing.T) {
	// 风险分随严重度单调：missing > expired > expiring_7 > expiring_30 > valid
	order := []Bucket{BucketMissing, BucketExpired, BucketExpiring7, BucketExpiring30, BucketValid}
	for i := 1; i < len(order); i++ {
		if RiskPoints(order[i-1]) <= RiskPoints(order[i]) {
			t.Errorf("风险分必须严格递减: %s(%d) vs %s(%d)",
				order[i-1], RiskPoints(order[i-1]), order[i], RiskPoints(order[i]))
		}
	}
	if RiskPoints(BucketMissing) != 20 || RiskPoints(BucketExpired) != 12 ||
		RiskPoints(BucketExpiring7) != 6 || RiskPoints(BucketExpiring30) != 3 ||
		RiskPoints(BucketValid) != 0 {
		t.Error("风险分值与约定不符: 20/12/6/3/0")
	}
}

func TestKnownBucket(t *testing.T) {
	for _, s := range []string{"valid", "expiring_30", "expiring_7", "expired", "missing"} {
		if !KnownBucket(s) {
			t.Errorf("%s 应为合法分桶", s)
		}
	}
	if KnownBucket("EXPIRED") || KnownBucket("ok") || KnownBucket("") {
		t.Error("未知状态不应通过校验")
	}
}
