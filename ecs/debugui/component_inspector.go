package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/boxpush/ecs"
)

// ComponentInspector shows the field values of one entity's components.
// It is read-only: edits would bypass the game's systems.
type ComponentInspector struct{}

func (ci *ComponentInspector) Render(storage *ecs.Storage, selectedEntityId ecs.EntityId) {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	switch {
	case !selectedEntityId.Valid():
		imgui.Text("No entity selected")
	case !storage.Alive(selectedEntityId):
		imgui.Text(fmt.Sprintf("Entity %d no longer exists", selectedEntityId))
	default:
		imgui.Text(fmt.Sprintf("Entity ID: %d", selectedEntityId))
		imgui.Separator()

		for _, compType := range storage.ComponentTypes(selectedEntityId) {
			component := storage.GetComponent(selectedEntityId, compType)
			if component == nil {
				continue
			}

			if imgui.TreeNodeStr(compType.String()) {
				for _, line := range DescribeComponent(component) {
					imgui.Text(line)
				}
				imgui.TreePop()
			}
		}
	}

	imgui.End()
}

// DescribeComponent renders a component as "Field: value" lines. Components
// that are not structs produce a single value line; empty tag structs produce none.
func DescribeComponent(component any) []string {
	val := reflect.ValueOf(component)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	if val.Kind() != reflect.Struct {
		return []string{fmt.Sprintf("%v", val.Interface())}
	}

	var lines []string
	for _, field := range fieldsOf(val.Type()) {
		fieldVal := val.Field(field.index)
		if field.pointer {
			if fieldVal.IsNil() {
				lines = append(lines, field.name+": nil")
				continue
			}
			fieldVal = fieldVal.Elem()
		}

		switch fieldVal.Kind() {
		case reflect.Slice:
			lines = append(lines, fmt.Sprintf("%s: [%d items] %v", field.name, fieldVal.Len(), fieldVal.Interface()))
		case reflect.Float32, reflect.Float64:
			lines = append(lines, fmt.Sprintf("%s: %.3f", field.name, fieldVal.Float()))
		default:
			lines = append(lines, fmt.Sprintf("%s: %v", field.name, fieldVal.Interface()))
		}
	}
	return lines
}
