package forms

import (
	"strings"
	"time"
)

// DateLayout - формат календарной даты в формах и командах.
const DateLayout = "2006-01-02"

// Today возвращает дату now в формате YYYY-MM-DD.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}

// DateOnly отрезает время от ISO 8601 строки: "2025-12-31T00:00:00Z" -> "2025-12-31".
// Строка без 'T' возвращается как есть.
func DateOnly(s string) string {
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		return s[:i]
	}
	return s
}

// Nullable превращает пустую строку в nil.
// В командах отсутствующее значение уходит в JSON как null, а не как "".
func Nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Value разыменовывает указатель, nil даёт пустую строку.
func Value(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// NullableDate - Nullable над DateOnly.
func NullableDate(p *string) *string {
	if p == nil {
		return nil
	}
	return Nullable(DateOnly(*p))
}
