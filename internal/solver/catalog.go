package solver

// Info describes one available engine and its declared capabilities.
// The catalog is static, process-wide, read-only data: capability claims
// are declared, not probed at runtime, so it is safe to share across all
// concurrent requests without synchronization.
type Info struct {
	// Name is the engine's display name, matching Solver.Name.
	Name string

	// Version is the engine version range this build targets.
	Version string

	// SupportsLP reports linear programming support.
	SupportsLP bool

	// SupportsMIP reports mixed-integer programming support.
	SupportsMIP bool

	// Capabilities are free-text capability labels.
	Capabilities []string
}

var catalog = []Info{
	{
		Name:        "HiGHS",
		Version:     "1.7+",
		SupportsLP:  true,
		SupportsMIP: true,
		Capabilities: []string{
			"Mixed-Integer Programming",
			"Linear Programming",
			"Primal/Dual Simplex",
			"Interior Point Method",
			"Presolve",
		},
	},
	{
		Name:        "Gonum Simplex",
		Version:     "0.15+",
		SupportsLP:  true,
		SupportsMIP: false,
		Capabilities: []string{
			"Linear Programming",
			"Two-Phase Dense Simplex",
			"Pure Go",
		},
	},
}

// Catalog returns the static list of available engines.
// The returned slice is a copy; callers may not mutate the catalog.
func Catalog() []Info {
	out := make([]Info, len(catalog))
	copy(out, catalog)
	return out
}
