// Package bind decodes and validates an HTTP request body into a struct.
//
// JSON bodies are decoded with encoding/json. URL-encoded and multipart
// bodies are mapped onto fields by their `form` tag. Either way the result
// is then checked with pkg/validate.
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/shashiranjanraj/orderdesk/config"
	"github.com/shashiranjanraj/orderdesk/pkg/validate"
)

var (
	// ErrTooLarge is returned when the body exceeds MAX_BODY_BYTES.
	ErrTooLarge = errors.New("request body too large")
	// ErrMalformed wraps any decode failure.
	ErrMalformed = errors.New("malformed request body")
)

// IsJSON reports whether r carries a JSON body.
func IsJSON(r *http.Request) bool {
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return mt == "application/json"
}

// JSON decodes r.Body as JSON into dest and runs validation.
// Returns (errs, nil) when there are validation failures and (nil, err) when
// the body is malformed or too large.
func JSON(r *http.Request, dest interface{}) (validate.Errors, error) {
	if err := DecodeJSON(r, dest); err != nil {
		return nil, err
	}
	return check(dest)
}

// DecodeJSON decodes without validating. The body is capped at
// MAX_BODY_BYTES.
func DecodeJSON(r *http.Request, dest interface{}) error {
	r.Body = http.MaxBytesReader(nil, r.Body, config.MaxBodyBytes())
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return decodeErr(err)
	}
	return nil
}

// Form parses a URL-encoded or multipart body, copies values into dest's
// `form`-tagged fields and runs validation.
func Form(r *http.Request, dest interface{}) (validate.Errors, error) {
	vals, err := Values(r)
	if err != nil {
		return nil, err
	}
	if err := Decode(vals, dest); err != nil {
		return nil, err
	}
	return check(dest)
}

// Request picks JSON or Form from the Content-Type.
func Request(r *http.Request, dest interface{}) (validate.Errors, error) {
	if IsJSON(r) {
		return JSON(r, dest)
	}
	return Form(r, dest)
}

// Values parses the request body (URL-encoded or multipart) and returns the
// merged form values. Parsing is idempotent.
func Values(r *http.Request) (url.Values, error) {
	limit := config.MaxBodyBytes()
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mt == "multipart/form-data" {
		if r.MultipartForm == nil {
			r.Body = http.MaxBytesReader(nil, r.Body, limit)
			if err := r.ParseMultipartForm(limit); err != nil {
				return nil, decodeErr(err)
			}
		}
		return r.Form, nil
	}
	if r.Form == nil {
		r.Body = http.MaxBytesReader(nil, r.Body, limit)
		if err := r.ParseForm(); err != nil {
			return nil, decodeErr(err)
		}
	}
	return r.Form, nil
}

// File returns the uploaded file for field, or http.ErrMissingFile.
func File(r *http.Request, field string) (multipart.File, *multipart.FileHeader, error) {
	if _, err := Values(r); err != nil {
		return nil, nil, err
	}
	if r.MultipartForm == nil {
		return nil, nil, http.ErrMissingFile
	}
	return r.FormFile(field)
}

// Decode copies vals into the `form`-tagged fields of dest, which must be a
// pointer to a struct. Supported kinds: string, bool, ints, uints, floats
// and pointers to those (nil when the value is absent or blank).
func Decode(vals url.Values, dest interface{}) error {
	rv := reflect.ValueOf(dest)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("bind: dest must be a pointer to a struct, got %T", dest)
	}
	rv = rv.Elem()
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
		if name == "" || name == "-" || !f.IsExported() {
			continue
		}
		raw, ok := vals[name]
		if !ok || len(raw) == 0 {
			continue
		}
		if err := setField(rv.Field(i), strings.TrimSpace(raw[0])); err != nil {
			return fmt.Errorf("%w: field %s: %v", ErrMalformed, name, err)
		}
	}
	return nil
}

func setField(v reflect.Value, s string) error {
	if v.Kind() == reflect.Ptr {
		if s == "" {
			v.Set(reflect.Zero(v.Type()))
			return nil
		}
		p := reflect.New(v.Type().Elem())
		if err := setField(p.Elem(), s); err != nil {
			return err
		}
		v.Set(p)
		return nil
	}

	switch v.Kind() {
	case reflect.String:
		v.SetString(s)
	case reflect.Bool:
		if s == "" {
			v.SetBool(false)
			return nil
		}
		b, err := strconv.ParseBool(s)
		if err != nil {
			b = s == "on"
		}
		v.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if s == "" {
			return nil
		}
		n, err := strconv.ParseInt(s, 10, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if s == "" {
			return nil
		}
		n, err := strconv.ParseUint(s, 10, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetUint(n)
	case reflect.Float32, reflect.Float64:
		if s == "" {
			return nil
		}
		n, err := strconv.ParseFloat(s, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetFloat(n)
	default:
		return fmt.Errorf("unsupported kind %s", v.Kind())
	}
	return nil
}

func check(dest interface{}) (validate.Errors, error) {
	if errs := validate.Struct(dest); validate.HasErrors(errs) {
		return errs, nil
	}
	return nil, nil
}

func decodeErr(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return fmt.Errorf("%w (max %d bytes)", ErrTooLarge, maxErr.Limit)
	}
	if errors.Is(err, multipart.ErrMessageTooLarge) {
		return ErrTooLarge
	}
	return fmt.Errorf("%w: %v", ErrMalformed, err)
}
