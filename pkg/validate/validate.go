// Package validate checks struct fields against rules declared in a
// `validate` tag. Rules are separated by "|" (Laravel style), which lets
// parameter lists keep their commas.
//
//	required            field must not be zero/empty
//	nullable            if empty, skip the remaining rules
//	email               valid email address
//	alpha_dash          letters, digits, hyphens, underscores
//	numeric             any number
//	integer             whole number
//	min=N / max=N       string: char length | number: value
//	between=lo,hi       string length or number within [lo,hi]
//	gt=N / gte=N        number bounds
//	in=a,b,c            value must be one of the listed items
//	same=field          value must equal the named sibling field
//
// Example:
//
//	type Register struct {
//	    Username  string `form:"username"  validate:"required|alpha_dash|between=3,150"`
//	    Password2 string `form:"password2" validate:"required|same=password1"`
//	}
//
// Error keys use the field's form tag, falling back to its json tag.
package validate

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Errors maps a field name to its first failing message.
type Errors map[string]string

// rule checks one field. parent is the enclosing struct for cross-field rules.
type rule func(field, param string, v, parent reflect.Value) string

var rules = map[string]rule{
	"required":   required,
	"email":      email,
	"alpha_dash": alphaDash,
	"numeric":    numeric,
	"integer":    integer,
	"min":        minRule,
	"max":        maxRule,
	"max_bytes":  maxBytes,
	"between":    between,
	"gt":         gt,
	"gte":        gte,
	"in":         in,
	"same":       same,
}

// Struct validates every exported field of v carrying a `validate` tag. An
// empty result means v is valid. Unknown rule names panic, since they can
// only come from a typo in a struct tag.
func Struct(v interface{}) Errors {
	errs := Errors{}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return errs
	}
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		tag := f.Tag.Get("validate")
		if tag == "" || !f.IsExported() {
			continue
		}
		value := rv.Field(i)
		name := FieldName(f)
		list := strings.Split(tag, "|")

		if hasRule(list, "nullable") && isEmpty(value) {
			continue
		}
		for _, r := range list {
			key, param, _ := strings.Cut(strings.TrimSpace(r), "=")
			if key == "nullable" || key == "" {
				continue
			}
			fn, ok := rules[key]
			if !ok {
				panic(fmt.Sprintf("validate: unknown rule %q on %s", key, f.Name))
			}
			if msg := fn(name, param, value, rv); msg != "" {
				errs[name] = msg
				break
			}
		}
	}
	return errs
}

// HasErrors reports whether errs is non-empty.
func HasErrors(errs Errors) bool { return len(errs) > 0 }

// FieldName returns the external name of f: its form tag, else its json
// tag, else the lower-cased Go name.
func FieldName(f reflect.StructField) string {
	for _, key := range []string{"form", "json"} {
		name, _, _ := strings.Cut(f.Tag.Get(key), ",")
		if name != "" && name != "-" {
			return name
		}
	}
	return strings.ToLower(f.Name)
}

// ─── Rules ───────────────────────────────────────────────────────────────────

func required(field, _ string, v, _ reflect.Value) string {
	if isEmpty(v) {
		return fmt.Sprintf("The %s field is required.", field)
	}
	return ""
}

var emailRE = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func email(field, _ string, v, _ reflect.Value) string {
	if !emailRE.MatchString(str(v)) {
		return fmt.Sprintf("The %s must be a valid email address.", field)
	}
	return ""
}

func alphaDash(field, _ string, v, _ reflect.Value) string {
	for _, c := range str(v) {
		if !unicode.IsLetter(c) && !unicode.IsDigit(c) && c != '-' && c != '_' {
			return fmt.Sprintf("The %s field may only contain letters, numbers, dashes, and underscores.", field)
		}
	}
	return ""
}

func numeric(field, _ string, v, _ reflect.Value) string {
	if isNumericKind(v) {
		return ""
	}
	if _, err := strconv.ParseFloat(str(v), 64); err != nil {
		return fmt.Sprintf("The %s field must be a number.", field)
	}
	return ""
}

func integer(field, _ string, v, _ reflect.Value) string {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return ""
	}
	if _, err := strconv.ParseInt(str(v), 10, 64); err != nil {
		return fmt.Sprintf("The %s field must be an integer.", field)
	}
	return ""
}

func minRule(field, param string, v, _ reflect.Value) string {
	n := parseFloat(param)
	if isNumericKind(v) {
		if toFloat(v) < n {
			return fmt.Sprintf("The %s must be at least %s.", field, param)
		}
	} else if float64(runeLen(v)) < n {
		return fmt.Sprintf("The %s must be at least %s characters.", field, param)
	}
	return ""
}

func maxRule(field, param string, v, _ reflect.Value) string {
	n := parseFloat(param)
	if isNumericKind(v) {
		if toFloat(v) > n {
			return fmt.Sprintf("The %s must not be greater than %s.", field, param)
		}
	} else if float64(runeLen(v)) > n {
		return fmt.Sprintf("The %s must not exceed %s characters.", field, param)
	}
	return ""
}

// maxBytes limits the encoded length of a string, for inputs bounded in
// bytes rather than characters (bcrypt reads at most 72).
func maxBytes(field, param string, v, _ reflect.Value) string {
	if float64(len(str(v))) > parseFloat(param) {
		return fmt.Sprintf("The %s must not exceed %s bytes.", field, param)
	}
	return ""
}

func between(field, param string, v, _ reflect.Value) string {
	loS, hiS, ok := strings.Cut(param, ",")
	if !ok {
		return ""
	}
	lo, hi := parseFloat(loS), parseFloat(hiS)
	if isNumericKind(v) {
		if f := toFloat(v); f < lo || f > hi {
			return fmt.Sprintf("The %s must be between %s and %s.", field, loS, hiS)
		}
	} else if l := float64(runeLen(v)); l < lo || l > hi {
		return fmt.Sprintf("The %s must be between %s and %s characters.", field, loS, hiS)
	}
	return ""
}

func gt(field, param string, v, _ reflect.Value) string {
	if toFloat(v) <= parseFloat(param) {
		return fmt.Sprintf("The %s must be greater than %s.", field, param)
	}
	return ""
}

func gte(field, param string, v, _ reflect.Value) string {
	if toFloat(v) < parseFloat(param) {
		return fmt.Sprintf("The %s must be greater than or equal to %s.", field, param)
	}
	return ""
}

func in(field, param string, v, _ reflect.Value) string {
	raw := str(v)
	for _, a := range strings.Split(param, ",") {
		if raw == strings.TrimSpace(a) {
			return ""
		}
	}
	return fmt.Sprintf("The selected %s is invalid.", field)
}

func same(field, param string, v, parent reflect.Value) string {
	rt := parent.Type()
	for i := 0; i < rt.NumField(); i++ {
		if FieldName(rt.Field(i)) == param {
			if str(parent.Field(i)) == str(v) {
				return ""
			}
			break
		}
	}
	return fmt.Sprintf("The %s and %s must match.", field, param)
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

func str(v reflect.Value) string {
	if v.Kind() == reflect.String {
		return v.String()
	}
	return fmt.Sprintf("%v", v.Interface())
}

func runeLen(v reflect.Value) int { return len([]rune(str(v))) }

func isEmpty(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Slice, reflect.Map, reflect.Array:
		return v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	case reflect.Bool:
		return false
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	}
	return false
}

func isNumericKind(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func toFloat(v reflect.Value) float64 {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint())
	case reflect.Float32, reflect.Float64:
		return v.Float()
	}
	return parseFloat(str(v))
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}

func hasRule(list []string, target string) bool {
	for _, r := range list {
		if strings.TrimSpace(r) == target {
			return true
		}
	}
	return false
}
