package config

var Presets = map[string]*Config{
	"classic": {
		Count: 25, MollyIndex: -1, Step: 0.001, Placement: "random", DelayMs: 50,
	},
	"parade": {
		Count: 25, MollyIndex: -1, Step: 0.001, Placement: "regular", DelayMs: 50,
	},
	"duel": {
		Count: 2, MollyIndex: -1, Step: 0.0005, Placement: "regular", DelayMs: 30,
	},
	"crowd": {
		Count: 120, MollyIndex: -1, Step: 0.0005, Placement: "random", DelayMs: 30,
	},
	"edge": {
		Count: 25, MollyIndex: 0, Step: 0.001, Placement: "random", DelayMs: 50,
	},
	"slow": {
		Count: 15, MollyIndex: -1, Step: 0.0002, Placement: "regular", DelayMs: 20,
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
