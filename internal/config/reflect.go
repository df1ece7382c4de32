package config

import (
	"fmt"
	"reflect"
	"slices"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/ledgerline/mfin/internal/util"
)

// Field represents metadata about a config field extracted from struct tags
type Field struct {
	Key      string   // e.g., "table.page_size"
	Default  string   // default value as string
	Desc     string   // description for help text
	Min      int      // minimum value for int fields (0 = no limit)
	Max      int      // maximum value for int fields (0 = no limit)
	OneOf    []string // allowed values for string fields (empty = any)
	Type     string   // "string" or "int"
	Category string   // e.g., "table", "source", "log"
}

var (
	fieldsOnce  sync.Once
	fieldsCache []Field
)

// Fields returns every config field, sorted by key
func Fields() []Field {
	fieldsOnce.Do(func() {
		var fields []Field
		extractFields(reflect.TypeOf(Config{}), &fields)
		sort.Slice(fields, func(i, j int) bool {
			return fields[i].Key < fields[j].Key
		})
		fieldsCache = fields
	})
	return fieldsCache
}

// extractFields recursively extracts config fields from a struct
func extractFields(t reflect.Type, fields *[]Field) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		key := field.Tag.Get("config")
		if key == "" {
			if field.Type.Kind() == reflect.Struct {
				extractFields(field.Type, fields)
			}
			continue
		}

		f := Field{
			Key:      key,
			Default:  field.Tag.Get("default"),
			Desc:     field.Tag.Get("desc"),
			Category: strings.Split(key, ".")[0],
		}
		if v := field.Tag.Get("min"); v != "" {
			f.Min, _ = strconv.Atoi(v)
		}
		if v := field.Tag.Get("max"); v != "" {
			f.Max, _ = strconv.Atoi(v)
		}
		if v := field.Tag.Get("oneof"); v != "" {
			f.OneOf = strings.Split(v, ",")
		}

		switch field.Type.Kind() {
		case reflect.Int:
			f.Type = "int"
		case reflect.String:
			f.Type = "string"
		}

		*fields = append(*fields, f)
	}
}

// findField finds a config field by key
func findField(key string) *Field {
	key = normalizeKey(key)
	for _, f := range Fields() {
		if f.Key == key {
			return &f
		}
	}
	return nil
}

// normalizeKey handles key aliases
func normalizeKey(key string) string {
	aliases := map[string]string{
		"table.pagesize":  "table.page_size",
		"table.exportdir": "table.export_dir",
		"source.type":     "source.kind",
		"database.url":    "source.url",
	}
	key = strings.ToLower(strings.TrimSpace(key))
	if normalized, ok := aliases[key]; ok {
		return normalized
	}
	return key
}

// lookupValue finds the struct field addressed by a "category.name" key.
func lookupValue(cfg *Config, key string) (reflect.Value, bool) {
	parts := strings.Split(key, ".")
	if len(parts) != 2 {
		return reflect.Value{}, false
	}

	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	// Find the nested struct by toml tag
	var nested reflect.Value
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).Tag.Get("toml") == parts[0] {
			nested = v.Field(i)
			break
		}
	}
	if !nested.IsValid() || nested.Kind() != reflect.Struct {
		return reflect.Value{}, false
	}

	nt := nested.Type()
	for i := 0; i < nt.NumField(); i++ {
		if nt.Field(i).Tag.Get("config") == key {
			return nested.Field(i), true
		}
	}
	return reflect.Value{}, false
}

// getFieldValue gets a field value from the config using reflection
func getFieldValue(cfg *Config, key string) (string, bool) {
	fv, ok := lookupValue(cfg, normalizeKey(key))
	if !ok {
		return "", false
	}
	switch fv.Kind() {
	case reflect.String:
		return fv.String(), true
	case reflect.Int:
		return strconv.FormatInt(fv.Int(), 10), true
	}
	return "", false
}

// setFieldValue sets a field value on the config using reflection
func setFieldValue(cfg *Config, key, value string) error {
	key = normalizeKey(key)

	field := findField(key)
	if field == nil {
		return util.NewError(fmt.Sprintf("Unknown config key: %s", key)).
			WithSuggestion("mfin config --list      # Show available keys").
			Wrap(util.ErrInvalidConfigKey)
	}

	fv, ok := lookupValue(cfg, key)
	if !ok {
		return fmt.Errorf("field not found: %s", key)
	}

	switch fv.Kind() {
	case reflect.String:
		if len(field.OneOf) > 0 && !slices.Contains(field.OneOf, value) {
			return fmt.Errorf("invalid value %q for %s (one of: %s)", value, key, strings.Join(field.OneOf, ", "))
		}
		fv.SetString(value)
		return nil

	case reflect.Int:
		intVal, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value: %s", value)
		}
		if field.Min != 0 && intVal < field.Min {
			return fmt.Errorf("value %d is below minimum %d", intVal, field.Min)
		}
		if field.Max != 0 && intVal > field.Max {
			return fmt.Errorf("value %d exceeds maximum %d", intVal, field.Max)
		}
		fv.SetInt(int64(intVal))
		return nil
	}

	return fmt.Errorf("unsupported field type for %s", key)
}

// applyDefaults fills zero-valued fields from their default tags
func applyDefaults(cfg *Config) {
	for _, f := range Fields() {
		if f.Default == "" {
			continue
		}
		fv, ok := lookupValue(cfg, f.Key)
		if !ok || !fv.IsZero() {
			continue
		}
		switch fv.Kind() {
		case reflect.String:
			fv.SetString(f.Default)
		case reflect.Int:
			if n, err := strconv.Atoi(f.Default); err == nil {
				fv.SetInt(int64(n))
			}
		}
	}
}

// ListKeys returns all available config keys
func ListKeys() []string {
	fields := Fields()
	keys := make([]string, len(fields))
	for i, f := range fields {
		keys[i] = f.Key
	}
	return keys
}

// GenerateHelpText generates help text for config options
func GenerateHelpText() string {
	var sb strings.Builder

	byCategory := make(map[string][]Field)
	for _, f := range Fields() {
		byCategory[f.Category] = append(byCategory[f.Category], f)
	}

	categories := []struct {
		key   string
		title string
	}{
		{"table", "Table"},
		{"source", "Record source"},
		{"log", "Logging"},
	}

	for _, cat := range categories {
		fields := byCategory[cat.key]
		if len(fields) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("  %s:\n", cat.title))
		for _, f := range fields {
			defaultStr := ""
			if f.Default != "" {
				defaultStr = fmt.Sprintf(" (default: %s)", f.Default)
			}
			sb.WriteString(fmt.Sprintf("    %-22s %s%s\n", f.Key, f.Desc, defaultStr))
		}
		sb.WriteString("\n")
	}

	return strings.TrimSuffix(sb.String(), "\n")
}
