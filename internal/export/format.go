package export

import (
	"strconv"
	"time"
)

// Layouts used for date and timestamp columns.
const (
	DateLayout      = "2006-01-02"
	TimestampLayout = "2006-01-02 15:04:05"
)

// Float formats a value with the shortest representation that round-trips.
func Float(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Int formats an integer.
func Int(v int64) string {
	return strconv.FormatInt(v, 10)
}

// OptionalInt formats a nullable integer; nil becomes an empty field.
func OptionalInt(v *int64) string {
	if v == nil {
		return ""
	}
	return Int(*v)
}

// OptionalString formats a nullable string; nil becomes an empty field.
func OptionalString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

// Bool formats a boolean as True/False.
func Bool(v bool) string {
	if v {
		return "True"
	}
	return "False"
}

// Date formats a calendar date.
func Date(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// Timestamp formats an instant with second precision.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
