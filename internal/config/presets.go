package config

var Presets = map[string]map[string]*Config{
	"cantilever": {
		"soft": {
			Scenario: "cantilever", Integrator: "verlet", Dt: 1e-4, Duration: 2.0, Gravity: -9.81,
			Rod: RodConfig{Nodes: 21, Length: 1.0, Mass: 1.0, Stiffness: 5e2, Damping: 0.5},
		},
		"stiff": {
			Scenario: "cantilever", Integrator: "verlet", Dt: 5e-5, Duration: 2.0, Gravity: -9.81,
			Rod: RodConfig{Nodes: 21, Length: 1.0, Mass: 1.0, Stiffness: 5e3, Damping: 0.5},
		},
		"fine": {
			Scenario: "cantilever", Integrator: "verlet", Dt: 2e-5, Duration: 1.0, Gravity: -9.81,
			Rod: RodConfig{Nodes: 51, Length: 1.0, Mass: 1.0, Stiffness: 1e3, Damping: 0.5},
		},
	},
	"two_rods": {
		"pull": {
			Scenario: "two_rods", Integrator: "verlet", Dt: 1e-4, Duration: 2.0, Gravity: 0,
			Rod:  RodConfig{Nodes: 21, Length: 1.0, Mass: 1.0, Stiffness: 1e3, Damping: 0.5},
			Load: LoadConfig{ForceY: -2.0, RampTime: 0.2},
		},
	},
	"rod_sphere": {
		"drop": {
			Scenario: "rod_sphere", Integrator: "verlet", Dt: 1e-4, Duration: 1.0, Gravity: -9.81,
			Rod: RodConfig{Nodes: 21, Length: 1.0, Mass: 1.0, Stiffness: 1e3, Damping: 0.5},
		},
	},
}

func GetPreset(scenario, name string) *Config {
	group, ok := Presets[scenario]
	if !ok {
		return nil
	}
	cfg, ok := group[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(scenario string) []string {
	group, ok := Presets[scenario]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(group))
	for name := range group {
		names = append(names, name)
	}
	return names
}
