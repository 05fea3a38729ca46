package compliance

import "time"

// Bucket 合规项新鲜度分桶
type Bucket string

const (
	BucketValid      Bucket = "valid"
	BucketExpiring30 Bucket = "expiring_30"
	BucketExpiring7  Bucket = "expiring_7"
	BucketExpired    Bucket = "expired"
	BucketMissing    Bucket = "missing"
)

// 风险分值：严重度单调递减
// missing(20) > expired(12) > expiring_7(6) > expiring_30(3) > valid(0)
var riskPoints = map[Bucket]int{
	BucketMissing:    20,
	BucketExpired:    12,
	BucketExpiring7:  6,
	BucketExpiring30: 3,
	BucketValid:      0,
}

// RiskPoints 返回单个分桶的风险分值；未知分桶计 0 分
func RiskPoints(b Bucket) int {
	return riskPoints[b]
}

// KnownBucket 判断字符串是否为合法分桶标识
// 数据装载层在边界处用它校验状态视图行，未知状态必须报错而非默认放行
func KnownBucket(s string) bool {
	_, ok := riskPoints[Bucket(s)]
	return ok
}

// truncateToDay 截断到当天零点（忽略时分秒，统一 UTC 做日差运算）
func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysLeft 计算剩余天数（双方都按日期截断，时间部分不参与）
// 当天到期的证书 days_left=0，尚未过期
func DaysLeft(validTo, asOf time.Time) int {
	diff := truncateToDay(validTo).Sub(truncateToDay(asOf))
	return int(diff / (24 * time.Hour))
}

// ClassifyRecord 状态分桶原语
//
// 规则（顺序即优先级）：
//   - waived=true     → valid，days_left 无意义（豁免不过期，业务策略如此）
//   - valid_to 为空   → missing
//   - days_left < 0   → expired
//   - days_left <= 7  → expiring_7（第 7 天含在更紧急的桶里）
//   - days_left <= 30 → expiring_30（第 30 天同理）
//   - 其余            → valid
//
// 边界归属不可改动：这里差一天就是把紧急度静默错分
func ClassifyRecord(validTo *time.Time, waived bool, asOf time.Time) (Bucket, *int) {
	if waived {
		return BucketValid, nil
	}
	if validTo == nil {
		return BucketMissing, nil
	}

	days := DaysLeft(*validTo, asOf)
	switch {
	case days < 0:
		return BucketExpired, &days
	case days <= 7:
		return BucketExpiring7, &days
	case days <= 30:
		return BucketExpiring30, &days
	default:
		return BucketValid, &days
	}
}

// [自证通过] internal/compliance/bucket.go
