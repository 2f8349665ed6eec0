package util

import "encoding/json"

// SettingsSchemaVersion tags persisted settings payloads.
const SettingsSchemaVersion = 1

// Config holds runtime settings and flags. The JSON-tagged fields are the
// persisted settings schema; DSN is wiring, never persisted.
type Config struct {
	DSN string `json:"-"`

	SchemaVersion int    `json:"schema_version"`
	Rows          int    `json:"rows"`
	Cols          int    `json:"cols"`
	Rule          string `json:"rule"`
	Theme         string `json:"theme"`
	TickMillis    int    `json:"tick_millis"`
	MaxHistory    int    `json:"max_history"`
	MaxFrames     int    `json:"max_frames"`
	StableAfter   int    `json:"stable_after"`
	Density       int    `json:"density"`
	SeedText      string `json:"seed_text"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		SchemaVersion: SettingsSchemaVersion,
		Rows:          30,
		Cols:          60,
		Rule:          "B3/S23",
		Theme:         "catppuccin",
		TickMillis:    120,
		MaxHistory:    50,
		MaxFrames:     2000,
		StableAfter:   1,
		Density:       35,
	}
}

// Normalize validates each field independently, falling back to the
// default for any value that is missing or out of range. A partially
// corrupt settings record never causes a wholesale reset.
func (c *Config) Normalize() {
	def := Default()
	c.SchemaVersion = SettingsSchemaVersion
	if c.Rows <= 0 || c.Rows > 500 {
		c.Rows = def.Rows
	}
	if c.Cols <= 0 || c.Cols > 500 {
		c.Cols = def.Cols
	}
	if c.Rule == "" {
		c.Rule = def.Rule
	}
	if c.Theme == "" {
		c.Theme = def.Theme
	}
	if c.TickMillis < 10 || c.TickMillis > 5000 {
		c.TickMillis = def.TickMillis
	}
	if c.MaxHistory <= 0 {
		c.MaxHistory = def.MaxHistory
	}
	if c.MaxFrames <= 0 {
		c.MaxFrames = def.MaxFrames
	}
	if c.StableAfter < 1 {
		c.StableAfter = def.StableAfter
	}
	if c.Density < 0 || c.Density > 100 {
		c.Density = def.Density
	}
}

// DecodeSettings reads a persisted settings payload over the defaults.
// Unknown or corrupt payloads degrade field-by-field, never all-or-nothing.
func DecodeSettings(data []byte) Config {
	cfg := Default()
	if len(data) > 0 {
		// Unmarshal over the defaults: absent fields keep their default,
		// present fields are validated below.
		_ = json.Unmarshal(data, &cfg)
	}
	cfg.Normalize()
	return cfg
}

// EncodeSettings serializes the persisted settings schema.
func EncodeSettings(c Config) ([]byte, error) {
	c.SchemaVersion = SettingsSchemaVersion
	return json.Marshal(c)
}
