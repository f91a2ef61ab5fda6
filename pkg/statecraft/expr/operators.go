package expr

import "strings"

// BinaryOp compares two operand values.
type BinaryOp func(left, right any) bool

var builtinOps = map[string]BinaryOp{
	"==":       equals,
	"!=":       func(l, r any) bool { return !equals(l, r) },
	"<":        func(l, r any) bool { return ToFloat64(l) < ToFloat64(r) },
	">":        func(l, r any) bool { return ToFloat64(l) > ToFloat64(r) },
	"<=":       func(l, r any) bool { return ToFloat64(l) <= ToFloat64(r) },
	">=":       func(l, r any) bool { return ToFloat64(l) >= ToFloat64(r) },
	"contains": contains,
}

func equals(l, r any) bool {
	if isNumeric(l) && isNumeric(r) {
		return ToFloat64(l) == ToFloat64(r)
	}
	return format(l) == format(r)
}

func contains(l, r any) bool {
	switch coll := l.(type) {
	case []any:
		for _, item := range coll {
			if equals(item, r) {
				return true
			}
		}
		return false
	case []string:
		for _, item := range coll {
			if equals(item, r) {
				return true
			}
		}
		return false
	case string:
		return strings.Contains(coll, format(r))
	case nil:
		return false
	default:
		return strings.Contains(format(l), format(r))
	}
}
