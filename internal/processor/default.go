package processor

import (
	"github.com/enermodel/h2khpxml/internal/processor/baseloads"
	"github.com/enermodel/h2khpxml/internal/processor/enclosure"
	"github.com/enermodel/h2khpxml/internal/processor/program"
	"github.com/enermodel/h2khpxml/internal/processor/systems"
)

// Default returns the registry with every component processor wired in its
// canonical order. The result always passes Validate; the call exists so
// tests can still build partial registries through NewRegistry.
func Default() *Registry {
	r := NewRegistry()
	r.Register(Stage{Name: "enclosure.walls", Fn: enclosure.Walls})
	r.Register(Stage{Name: "enclosure.windows", Fn: enclosure.Windows})
	r.Register(Stage{Name: "enclosure.doors", Fn: enclosure.Doors})
	r.Register(Stage{Name: "enclosure.ceilings", Fn: enclosure.Ceilings})
	r.Register(Stage{Name: "enclosure.foundations", Fn: enclosure.Foundations})
	r.Register(Stage{Name: "systems.heating", Fn: systems.Heating})
	r.Register(Stage{Name: "systems.cooling", Fn: systems.Cooling})
	r.Register(Stage{Name: "systems.ventilation", Fn: systems.Ventilation})
	r.Register(Stage{Name: "systems.dhw", Fn: systems.HotWater})
	r.Register(Stage{Name: "baseloads", Fn: baseloads.Process})
	r.Register(Stage{Name: "program.overrides", Fn: program.Overrides, Overrides: true})
	return r
}
