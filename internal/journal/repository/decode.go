package repository

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// Row values arrive typed by whichever driver produced them, or as JSON
// scalars when served from cache. These helpers coerce them.

func rawValue(r Row, col string) (interface{}, bool) {
	if col == "" {
		return nil, false
	}
	v, ok := r[col]
	if !ok || v == nil {
		return nil, false
	}
	if valuer, ok := v.(driver.Valuer); ok {
		dv, err := valuer.Value()
		if err != nil || dv == nil {
			return nil, false
		}
		v = dv
	}
	switch t := v.(type) {
	case []byte:
		v = string(t)
	case json.Number:
		v = t.String()
	}
	return v, true
}

func rowString(r Row, col string) string {
	v, ok := rawValue(r, col)
	if !ok {
		return ""
	}
	return cast.ToString(v)
}

func rowInt64(r Row, col string) int64 {
	v, ok := rawValue(r, col)
	if !ok {
		return 0
	}
	return cast.ToInt64(v)
}

func rowInt64Ptr(r Row, col string) *int64 {
	v, ok := rawValue(r, col)
	if !ok {
		return nil
	}
	n, err := cast.ToInt64E(v)
	if err != nil {
		return nil
	}
	return &n
}

func rowDecimal(r Row, col string) (decimal.Decimal, bool) {
	v, ok := rawValue(r, col)
	if !ok {
		return decimal.Zero, false
	}
	switch t := v.(type) {
	case decimal.Decimal:
		return t, true
	case float64:
		return decimal.NewFromFloat(t), true
	case float32:
		return decimal.NewFromFloat32(t), true
	case string:
		if strings.TrimSpace(t) == "" {
			return decimal.Zero, false
		}
		d, err := decimal.NewFromString(strings.TrimSpace(t))
		return d, err == nil
	}
	n, err := cast.ToFloat64E(v)
	if err != nil {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(n), true
}

func rowDecimalOrZero(r Row, col string) decimal.Decimal {
	d, _ := rowDecimal(r, col)
	return d
}

func rowDecimalPtr(r Row, col string) *decimal.Decimal {
	d, ok := rowDecimal(r, col)
	if !ok {
		return nil
	}
	return &d
}

func rowTime(r Row, col string) (time.Time, bool) {
	v, ok := rawValue(r, col)
	if !ok {
		return time.Time{}, false
	}
	t, err := cast.ToTimeE(v)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func rowTimePtr(r Row, col string) *time.Time {
	t, ok := rowTime(r, col)
	if !ok {
		return nil
	}
	return &t
}

// rowJSON decodes a JSON column into dest. Drivers hand jsonb back either as
// text or already decoded.
func rowJSON(r Row, col string, dest interface{}) error {
	v, ok := rawValue(r, col)
	if !ok {
		return nil
	}
	var raw []byte
	switch t := v.(type) {
	case string:
		raw = []byte(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return err
		}
		raw = b
	}
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dest)
}

func rowStrings(r Row, col string) []string {
	v, ok := rawValue(r, col)
	if !ok {
		return nil
	}
	switch t := v.(type) {
	case []string:
		return t
	case []interface{}:
		out := make([]string, 0, len(t))
		for _, s := range t {
			out = append(out, cast.ToString(s))
		}
		return out
	case string:
		var arr pq.StringArray
		if err := arr.Scan(t); err != nil {
			return nil
		}
		return []string(arr)
	}
	return cast.ToStringSlice(v)
}

// set writes v under col unless the column does not exist in this workspace.
func set(row Row, col string, v interface{}) {
	if col == "" {
		return
	}
	row[col] = v
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func filter(col string, v interface{}) []Filter {
	if col == "" {
		return nil
	}
	return []Filter{{Column: col, Value: v}}
}

func mustColumn(table, col, field string) error {
	if table == "" || col == "" {
		return fmt.Errorf("%s is not configured", field)
	}
	return nil
}
