package debugui

import (
	"reflect"
	"sync"
)

// fieldInfo is one exported field of a component struct.
type fieldInfo struct {
	name    string
	index   int
	pointer bool
}

// componentFields caches exported fields per component type. Component types
// are few and fixed, so entries are never evicted.
var componentFields sync.Map // reflect.Type -> []fieldInfo

// fieldsOf returns the exported fields of t in declaration order, or nil when
// t is not a struct.
func fieldsOf(t reflect.Type) []fieldInfo {
	if cached, ok := componentFields.Load(t); ok {
		return cached.([]fieldInfo)
	}

	var fields []fieldInfo
	if t.Kind() == reflect.Struct {
		for i := range t.NumField() {
			if field := t.Field(i); field.IsExported() {
				fields = append(fields, fieldInfo{
					name:    field.Name,
					index:   i,
					pointer: field.Type.Kind() == reflect.Pointer,
				})
			}
		}
	}

	actual, _ := componentFields.LoadOrStore(t, fields)
	return actual.([]fieldInfo)
}
