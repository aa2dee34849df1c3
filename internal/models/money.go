package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/buildmart-next/internal/numeric"

	"github.com/shopspring/decimal"
)

// Money 订单金额（保留 2 位小数，序列化为字符串）
type Money struct {
	decimal.Decimal
}

// NewMoneyFromDecimal 从 decimal 创建金额
func NewMoneyFromDecimal(amount decimal.Decimal) Money {
	return Money{Decimal: amount.Round(2)}
}

// MoneyFromValue 由前端数值字段换算金额，无法解析时 ok=false
func MoneyFromValue(v numeric.Value) (Money, bool) {
	amount, ok := numeric.ParsePrice(v)
	if !ok {
		return Money{}, false
	}
	return NewMoneyFromDecimal(amount), true
}

// MarshalJSON 输出 2 位小数字符串
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON 接受数字或带币种符号的字符串，null 与空串视为 0
func (m *Money) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte(`""`)) {
		m.Decimal = decimal.Zero
		return nil
	}
	var v numeric.Value
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return err
	}
	parsed, ok := MoneyFromValue(v)
	if !ok {
		return fmt.Errorf("invalid money amount: %s", trimmed)
	}
	*m = parsed
	return nil
}

// Value 数据库写入
func (m Money) Value() (driver.Value, error) {
	return m.Decimal.Round(2).Value()
}

// Scan 数据库读取
func (m *Money) Scan(value interface{}) error {
	if err := m.Decimal.Scan(value); err != nil {
		return err
	}
	m.Decimal = m.Decimal.Round(2)
	return nil
}

func (m Money) String() string {
	return m.Decimal.Round(2).StringFixed(2)
}
