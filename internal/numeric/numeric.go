// Package numeric 统一处理“数字或数字字符串”形式的字段。
//
// 前端上送的 price/quantity 可能是 JSON 数字，也可能是带币种符号的字符串
// （例如 "₹50.5"）。所有入口都必须经过本包解析，不允许各处自行转换。
package numeric

import (
	"bytes"
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// MaxQuantity 数量上限（float64 可精确表示的最大整数），解析与累加都不会超出
const MaxQuantity = 1<<53 - 1

var (
	priceNoisePattern  = regexp.MustCompile(`[^0-9.\-]`)
	floatPrefixPattern = regexp.MustCompile(`^-?(?:[0-9]+\.?[0-9]*|\.[0-9]+)`)
)

// Value 保留原始 JSON 形态的数值字段，序列化时原样写回
type Value struct {
	raw    string
	quoted bool
}

// Int 由整数构造
func Int(n int) Value {
	return Value{raw: strconv.Itoa(n)}
}

// Float 由浮点数构造
func Float(f float64) Value {
	return Value{raw: strconv.FormatFloat(f, 'f', -1, 64)}
}

// String 由字符串构造（序列化为 JSON 字符串）
func String(s string) Value {
	return Value{raw: s, quoted: true}
}

// Decimal 由 decimal 构造（序列化为 JSON 数字）
func Decimal(d decimal.Decimal) Value {
	return Value{raw: d.String()}
}

// Raw 返回原始文本
func (v Value) Raw() string {
	return v.raw
}

// IsString 原始值是否为 JSON 字符串
func (v Value) IsString() bool {
	return v.quoted
}

// IsZero 是否为缺省值（JSON null 或缺失）
func (v Value) IsZero() bool {
	return v.raw == "" && !v.quoted
}

// MarshalJSON 按原始形态写回
func (v Value) MarshalJSON() ([]byte, error) {
	if v.quoted {
		return json.Marshal(v.raw)
	}
	if v.raw == "" {
		return []byte("null"), nil
	}
	return []byte(v.raw), nil
}

// UnmarshalJSON 接受任意 JSON 值，不做校验
func (v *Value) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*v = Value{}
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*v = Value{raw: s, quoted: true}
		return nil
	}
	*v = Value{raw: string(trimmed)}
	return nil
}

// SanitizePrice 去掉数字、小数点与负号以外的全部字符
func SanitizePrice(raw string) string {
	return priceNoisePattern.ReplaceAllString(raw, "")
}

// ParsePrice 解析价格。字符串先清洗再按浮点前缀解析，无法解析时 ok=false
func ParsePrice(v Value) (decimal.Decimal, bool) {
	if v.quoted {
		prefix := floatPrefixPattern.FindString(SanitizePrice(v.raw))
		if prefix == "" || prefix == "-" {
			return decimal.Zero, false
		}
		d, err := decimal.NewFromString(strings.TrimSuffix(prefix, "."))
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	}
	f, ok := toFloat(v.raw)
	if !ok {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(f), true
}

// ParseQuantity 解析数量并向下取整，非有限值返回 ok=false
func ParseQuantity(v Value) (int, bool) {
	var f float64
	if v.quoted {
		text := strings.TrimSpace(v.raw)
		if text == "" {
			return 0, true
		}
		parsed, ok := toFloat(text)
		if !ok {
			return 0, false
		}
		f = parsed
	} else {
		switch v.raw {
		case "":
			return 0, true
		case "true":
			return 1, true
		case "false":
			return 0, true
		}
		parsed, ok := toFloat(v.raw)
		if !ok {
			return 0, false
		}
		f = parsed
	}
	floored := math.Floor(f)
	if floored > MaxQuantity || floored < -MaxQuantity {
		return 0, false
	}
	return int(floored), true
}

// CountableQuantity 统计用数量：取整后小于 0 的按 0 计
func CountableQuantity(v Value) (int, bool) {
	n, ok := ParseQuantity(v)
	if !ok {
		return 0, false
	}
	if n < 0 {
		return 0, true
	}
	return n, true
}

func toFloat(text string) (float64, bool) {
	if strings.ContainsAny(text, "_xXpP") {
		return 0, false
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
