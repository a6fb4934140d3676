package debugui

import "github.com/plus3/boxpush/ecs"

// RegisterComponents registers the debug UI component types.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
}

// Target returns the storage and scheduler the overlay inspects. It is called
// every frame so the target may be swapped, e.g. when a level restarts.
type Target func() (*ecs.Storage, *ecs.Scheduler)

// Overlay is the set of debug windows drawn over a running game.
type Overlay struct {
	Browser     *EntityBrowser
	Inspector   *ComponentInspector
	Performance *PerformanceStats
}

// Spawn adds one ImguiItem entity to storage that draws the entity browser,
// the inspector for the selected entity and the performance window for target.
// storage also receives the ImguiInputState singleton.
func Spawn(storage *ecs.Storage, target Target) *Overlay {
	overlay := &Overlay{
		Browser:     NewEntityBrowser(100),
		Inspector:   &ComponentInspector{},
		Performance: NewPerformanceStats(120),
	}

	ecs.NewSingleton[ImguiInputState](storage)
	storage.Spawn(ImguiItem{
		Render: func() {
			inspected, scheduler := target()
			overlay.Browser.Render(inspected)
			overlay.Inspector.Render(inspected, overlay.Browser.Selected())
			overlay.Performance.Render(inspected, scheduler)
		},
	})
	return overlay
}
