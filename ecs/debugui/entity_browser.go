package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/boxpush/ecs"
)

// EntityInfo is one row of the entity browser.
type EntityInfo struct {
	ID             ecs.EntityId
	ComponentTypes []string
}

// EntityBrowser lists live entities with their component types and tracks
// the selected row.
type EntityBrowser struct {
	filterText         string
	selectedEntityId   ecs.EntityId
	maxEntitiesPerPage int
	currentPage        int
}

func NewEntityBrowser(maxEntitiesPerPage int) *EntityBrowser {
	return &EntityBrowser{maxEntitiesPerPage: maxEntitiesPerPage}
}

// Selected returns the selected entity, or 0.
func (eb *EntityBrowser) Selected() ecs.EntityId {
	return eb.selectedEntityId
}

func (eb *EntityBrowser) Render(storage *ecs.Storage) {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.InputTextWithHint("##search", "Filter by component...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
		eb.currentPage = 0
	}

	entities := Entities(storage, eb.filterText)

	startIdx := eb.currentPage * eb.maxEntitiesPerPage
	if startIdx >= len(entities) {
		eb.currentPage = 0
		startIdx = 0
	}
	endIdx := min(startIdx+eb.maxEntitiesPerPage, len(entities))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Entity ID")
		imgui.TableSetupColumn("Components")
		imgui.TableHeadersRow()

		for _, entity := range entities[startIdx:endIdx] {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := eb.selectedEntityId == entity.ID
			if imgui.SelectableBoolV(fmt.Sprintf("%d", entity.ID), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selectedEntityId = entity.ID
			}

			imgui.TableNextColumn()
			imgui.Text(strings.Join(entity.ComponentTypes, ", "))
		}

		imgui.EndTable()
	}

	if len(entities) > eb.maxEntitiesPerPage {
		totalPages := (len(entities) + eb.maxEntitiesPerPage - 1) / eb.maxEntitiesPerPage
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, totalPages, len(entities)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.currentPage > 0 {
			eb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.currentPage < totalPages-1 {
			eb.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d entities", len(entities)))
	}

	imgui.End()
}

// Entities lists live entities in creation order whose component type names
// contain filter (case-insensitive). An empty filter matches everything.
func Entities(storage *ecs.Storage, filter string) []EntityInfo {
	filterLower := strings.ToLower(filter)

	var entities []EntityInfo
	for id := range storage.Entities() {
		types := storage.ComponentTypes(id)
		names := make([]string, len(types))
		for i, t := range types {
			names[i] = t.String()
		}

		if filterLower != "" && !strings.Contains(strings.ToLower(strings.Join(names, " ")), filterLower) {
			continue
		}
		entities = append(entities, EntityInfo{ID: id, ComponentTypes: names})
	}
	return entities
}
