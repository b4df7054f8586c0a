package table

import (
	"cmp"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/JonMunkholm/ipoadmin/internal/format"
)

var timeType = reflect.TypeOf(time.Time{})

// deref follows pointers and interfaces. ok is false for nil.
func deref(v reflect.Value) (reflect.Value, bool) {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}
	return v, v.IsValid()
}

// stringify returns the searchable text of a value. ok is false for nil
// values and for nested structs, which never match a filter.
func stringify(x any) (string, bool) {
	v, ok := deref(reflect.ValueOf(x))
	if !ok {
		return "", false
	}

	switch v.Kind() {
	case reflect.String:
		return v.String(), true
	case reflect.Bool:
		return strconv.FormatBool(v.Bool()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(v.Uint(), 10), true
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64), true
	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.IsNil() {
			return "", false
		}
		parts := make([]string, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			if s, ok := stringify(v.Index(i).Interface()); ok {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ","), true
	case reflect.Struct:
		if v.Type() == timeType {
			t := v.Interface().(time.Time)
			if t.IsZero() {
				return "", false
			}
			return t.Format(time.RFC3339), true
		}
		if s, ok := v.Interface().(fmt.Stringer); ok {
			return s.String(), true
		}
		return "", false
	case reflect.Map, reflect.Func, reflect.Chan:
		return "", false
	default:
		return fmt.Sprint(v.Interface()), true
	}
}

// jsonName returns the JSON key of a struct field, or "" when untagged.
func jsonName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" || tag == "-" {
		return ""
	}
	name, _, _ := strings.Cut(tag, ",")
	return name
}

// fieldValue looks key up on rec: struct fields by JSON name or Go name,
// map entries by string key.
func fieldValue(rec any, key string) (any, bool) {
	v, ok := deref(reflect.ValueOf(rec))
	if !ok {
		return nil, false
	}

	switch v.Kind() {
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			if jsonName(f) == key || f.Name == key {
				return v.Field(i).Interface(), true
			}
		}
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		mv := v.MapIndex(reflect.ValueOf(key).Convert(v.Type().Key()))
		if mv.IsValid() {
			return mv.Interface(), true
		}
	}
	return nil, false
}

// fieldValues enumerates every exported field (or map value) of rec.
func fieldValues(rec any) []any {
	v, ok := deref(reflect.ValueOf(rec))
	if !ok {
		return nil
	}

	switch v.Kind() {
	case reflect.Struct:
		t := v.Type()
		out := make([]any, 0, t.NumField())
		for i := 0; i < t.NumField(); i++ {
			if !t.Field(i).IsExported() || t.Field(i).Tag.Get("json") == "-" {
				continue
			}
			out = append(out, v.Field(i).Interface())
		}
		return out
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return nil
		}
		keys := v.MapKeys()
		sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
		out := make([]any, 0, len(keys))
		for _, k := range keys {
			out = append(out, v.MapIndex(k).Interface())
		}
		return out
	case reflect.Slice, reflect.Array, reflect.Func, reflect.Chan:
		return nil
	}
	return []any{v.Interface()}
}

type valueClass int

const (
	classNil valueClass = iota
	classBool
	classNumber
	classTime
	classString
	classOther
)

func classify(x any) (valueClass, reflect.Value) {
	v, ok := deref(reflect.ValueOf(x))
	if !ok {
		return classNil, v
	}
	switch v.Kind() {
	case reflect.Bool:
		return classBool, v
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return classNumber, v
	case reflect.String:
		return classString, v
	case reflect.Struct:
		if v.Type() == timeType {
			return classTime, v
		}
	}
	return classOther, v
}

func toFloat(v reflect.Value) float64 {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint())
	default:
		return v.Float()
	}
}

// compareValues is the default column ordering: nil lowest, numbers
// numerically, booleans false before true, date-like strings
// chronologically when both sides parse, other strings case-insensitively.
func compareValues(a, b any) int {
	ca, va := classify(a)
	cb, vb := classify(b)

	switch {
	case ca == classNil && cb == classNil:
		return 0
	case ca == classNil:
		return -1
	case cb == classNil:
		return 1
	}

	if ca == cb {
		switch ca {
		case classNumber:
			return cmp.Compare(toFloat(va), toFloat(vb))
		case classBool:
			return cmp.Compare(boolRank(va.Bool()), boolRank(vb.Bool()))
		case classTime:
			return va.Interface().(time.Time).Compare(vb.Interface().(time.Time))
		case classString:
			return compareStrings(va.String(), vb.String())
		}
	}

	sa, _ := stringify(a)
	sb, _ := stringify(b)
	return compareStrings(sa, sb)
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

func compareStrings(a, b string) int {
	if ta, ok := format.ParseDate(a); ok {
		if tb, ok := format.ParseDate(b); ok {
			if c := ta.Compare(tb); c != 0 {
				return c
			}
		}
	}
	if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}
