// Package env populates configuration structs from environment variables.
package env

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"time"
)

// Validator is implemented by config structs that need validation.
type Validator interface {
	Validate() error
}

// ErrInvalidValue is returned when an environment variable value cannot be parsed.
type ErrInvalidValue struct {
	Field  string
	EnvVar string
	Value  string
	Err    error
}

func (e ErrInvalidValue) Error() string {
	return fmt.Sprintf("invalid value for %s=%q (field: %s): %v", e.EnvVar, e.Value, e.Field, e.Err)
}

func (e ErrInvalidValue) Unwrap() error {
	return e.Err
}

// ErrNotStructPointer is returned when Load is called with a non-pointer or non-struct argument.
type ErrNotStructPointer struct {
	Type string
}

func (e ErrNotStructPointer) Error() string {
	return fmt.Sprintf("env.Load: argument must be a pointer to struct, got %s", e.Type)
}

// ErrUnsupportedType is returned when a tagged field has an unsupported type.
type ErrUnsupportedType struct {
	Kind string
}

func (e ErrUnsupportedType) Error() string {
	return fmt.Sprintf("unsupported type: %s", e.Kind)
}

var (
	durationType = reflect.TypeOf(time.Duration(0))
	timeType     = reflect.TypeOf(time.Time{})
)

// Load overlays environment variables onto the struct v points to, then
// validates every nested struct implementing Validator, innermost first,
// and finally v itself.
//
// Only variables that are set are applied: fields keep whatever value they
// had before the call, so callers can seed defaults or file values first.
//
// Supported field kinds for `env:"VAR_NAME"` tags: string, bool, signed
// integers and time.Duration (Go duration syntax, e.g. "300ms").
func Load(v any) error {
	ptr := reflect.ValueOf(v)
	if ptr.Kind() != reflect.Pointer || ptr.Elem().Kind() != reflect.Struct {
		return ErrNotStructPointer{Type: fmt.Sprintf("%T", v)}
	}

	if err := loadStruct(ptr.Elem()); err != nil {
		return err
	}

	if validator, ok := v.(Validator); ok {
		return validator.Validate()
	}
	return nil
}

func loadStruct(val reflect.Value) error {
	typ := val.Type()

	for i := range val.NumField() {
		field := val.Field(i)
		if !field.CanSet() {
			continue
		}

		if field.Kind() == reflect.Struct && field.Type() != timeType {
			if err := loadStruct(field); err != nil {
				return err
			}
			if err := validateNested(field); err != nil {
				return err
			}
			continue
		}

		name := typ.Field(i).Name
		key := typ.Field(i).Tag.Get("env")
		if key == "" {
			continue
		}

		raw, ok := os.LookupEnv(key)
		if !ok {
			continue
		}

		if err := assign(field, raw); err != nil {
			return ErrInvalidValue{Field: name, EnvVar: key, Value: raw, Err: err}
		}
	}

	return nil
}

func validateNested(field reflect.Value) error {
	if !field.CanAddr() {
		return nil
	}
	if validator, ok := field.Addr().Interface().(Validator); ok {
		return validator.Validate()
	}
	return nil
}

func assign(field reflect.Value, raw string) error {
	if field.Type() == durationType {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return err
		}
		field.SetInt(int64(d))
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		field.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetInt(n)
	default:
		return ErrUnsupportedType{Kind: field.Kind().String()}
	}
	return nil
}
