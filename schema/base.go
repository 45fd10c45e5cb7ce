package schema

import (
	"fmt"
	"reflect"

	"github.com/hupe1980/chunkio/reader"
)

// Base is embedded in declarative schema models to receive the pattern
// derived from the model's position in the schema tree.
type Base struct {
	pattern string
}

// Pattern returns the bound file-search pattern prefix.
func (b *Base) Pattern() string {
	return b.pattern
}

func (b *Base) bindPattern(p string) {
	b.pattern = p
}

type patternBinder interface {
	bindPattern(string)
}

// Bind walks a declarative schema model and assigns each element the
// pattern derived from its path: the concatenation of every ancestor
// segment with the declaring field's name, joined by underscores.
// Map-valued fields contribute the map key instead of the field name;
// their values must be pointers to be bindable. model must be a pointer
// to a struct.
func Bind(model any) error {
	v := reflect.ValueOf(model)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("schema: Bind requires a pointer to a struct, got %T", model)
	}
	bind(v, "")
	return nil
}

func bind(v reflect.Value, pattern string) {
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return
	}
	if v.CanAddr() {
		if binder, ok := v.Addr().Interface().(patternBinder); ok && pattern != "" {
			binder.bindPattern(pattern)
		}
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() || f.Anonymous {
			continue
		}
		fv := v.Field(i)
		switch fv.Kind() {
		case reflect.Map:
			for _, key := range fv.MapKeys() {
				if key.Kind() != reflect.String {
					continue
				}
				bind(fv.MapIndex(key), join(pattern, key.String()))
			}
		default:
			bind(fv, join(pattern, f.Name))
		}
	}
}

func join(pattern, segment string) string {
	if pattern == "" {
		return segment
	}
	return pattern + "_" + segment
}

// Factory lazily builds a reader from a bound pattern and memoizes it.
// Schema models are constructed once and read from a single goroutine, so
// plain lazy initialization is sufficient.
type Factory[R reader.Reader] struct {
	Build func(pattern string) R

	value R
	done  bool
}

// Reader returns the memoized reader, building it on first use.
func (f *Factory[R]) Reader(pattern string) R {
	if !f.done {
		f.value = f.Build(pattern)
		f.done = true
	}
	return f.value
}
