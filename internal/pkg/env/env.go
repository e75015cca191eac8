// Package env reads configuration values from the process environment.
package env

import (
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"strconv"
)

// Env returns the value of the environment variable named by the key.
// If the variable is not present in the environment, it returns the provided fallback value.
func Env(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

// Must returns the value of the environment variable named by the key or an error if it is not set.
func Must(key string) (string, error) {
	val, ok := os.LookupEnv(key)
	if !ok {
		return "", fmt.Errorf("environment variable is not set: %s", key)
	}
	return val, nil
}

// OverrideStruct sets the fields of the struct pointed to by v from the
// environment variables named in their `env` tags. Nested structs and
// pointers to structs are walked recursively; nil pointers are allocated.
func OverrideStruct(v any) error {
	val := reflect.ValueOf(v)
	if val.Kind() != reflect.Pointer || val.IsNil() {
		return fmt.Errorf("override struct: expected a non-nil pointer to a struct, got %T", v)
	}

	val = val.Elem()
	if val.Kind() != reflect.Struct {
		return fmt.Errorf("override struct: expected a pointer to a struct, got %T", v)
	}

	return overrideFields(val)
}

func overrideFields(val reflect.Value) error {
	typ := val.Type()

	for i := range typ.NumField() {
		field := typ.Field(i)
		fieldValue := val.Field(i)

		if !field.IsExported() {
			continue
		}

		switch {
		case fieldValue.Kind() == reflect.Struct:
			if err := overrideFields(fieldValue); err != nil {
				return fmt.Errorf("%s: %w", field.Name, err)
			}
			continue
		case fieldValue.Kind() == reflect.Pointer && fieldValue.Type().Elem().Kind() == reflect.Struct:
			if fieldValue.IsNil() {
				fieldValue.Set(reflect.New(fieldValue.Type().Elem()))
			}
			if err := overrideFields(fieldValue.Elem()); err != nil {
				return fmt.Errorf("%s: %w", field.Name, err)
			}
			continue
		}

		key := field.Tag.Get("env")
		if key == "" {
			continue
		}

		raw, ok := os.LookupEnv(key)
		if !ok || raw == "" {
			slog.Debug("Environment variable not set, keeping config value.", "env", key, "field", field.Name)
			continue
		}

		if err := setField(fieldValue, raw); err != nil {
			return fmt.Errorf("set field %s from env %s: %w", field.Name, key, err)
		}
	}

	return nil
}

func setField(fieldValue reflect.Value, raw string) error {
	//nolint:exhaustive //Only the kinds used by the config are supported.
	switch fieldValue.Kind() {
	case reflect.String:
		fieldValue.SetString(raw)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, fieldValue.Type().Bits())
		if err != nil {
			return fmt.Errorf("parse int: %w", err)
		}
		fieldValue.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, fieldValue.Type().Bits())
		if err != nil {
			return fmt.Errorf("parse uint: %w", err)
		}
		fieldValue.SetUint(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("parse bool: %w", err)
		}
		fieldValue.SetBool(b)
	default:
		return fmt.Errorf("unsupported kind %s", fieldValue.Kind())
	}
	return nil
}
