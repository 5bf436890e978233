package config

const (
	defaultBaseTablesDir     = "static_2da"
	defaultOverrideTablesDir = "input_2da"
	defaultLabelsDir         = "input_json"
	defaultOutputDir         = "output"
	defaultTLKName           = "output.tlk"
	defaultHAKName           = "output.hak"
	defaultSpellOffset       = 5000
	defaultNwnErfBinary      = "nwn_erf"
	defaultNwnTlkBinary      = "nwn_tlk"
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			BaseTablesDir:     defaultBaseTablesDir,
			OverrideTablesDir: defaultOverrideTablesDir,
			LabelsDir:         defaultLabelsDir,
			OutputDirs:        []string{defaultOutputDir},
		},
		Output: Output{
			TLKName: defaultTLKName,
			HAKName: defaultHAKName,
		},
		TLK: TLK{
			Language:    0,
			SpellOffset: defaultSpellOffset,
		},
		Tools: Tools{
			NwnErf: defaultNwnErfBinary,
			NwnTlk: defaultNwnTlkBinary,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
