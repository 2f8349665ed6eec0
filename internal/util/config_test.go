package util

import "testing"

func TestDecodeSettingsDefaultsOnEmpty(t *testing.T) {
	cfg := DecodeSettings(nil)
	if cfg != Default() {
		t.Fatalf("empty payload should yield defaults, got %+v", cfg)
	}
}

func TestDecodeSettingsFieldByField(t *testing.T) {
	// rows valid, tick corrupt, rule present, everything else absent
	cfg := DecodeSettings([]byte(`{"schema_version":1,"rows":80,"tick_millis":-5,"rule":"B36/S23"}`))
	if cfg.Rows != 80 {
		t.Fatalf("valid field discarded: rows=%d", cfg.Rows)
	}
	if cfg.TickMillis != Default().TickMillis {
		t.Fatalf("corrupt tick not defaulted: %d", cfg.TickMillis)
	}
	if cfg.Rule != "B36/S23" {
		t.Fatalf("rule not kept: %s", cfg.Rule)
	}
	if cfg.Cols != Default().Cols || cfg.MaxHistory != Default().MaxHistory {
		t.Fatalf("absent fields not defaulted: %+v", cfg)
	}
}

func TestDecodeSettingsGarbage(t *testing.T) {
	cfg := DecodeSettings([]byte("{{{not json"))
	if cfg != Default() {
		t.Fatalf("garbage payload should yield defaults, got %+v", cfg)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	in := Default()
	in.Rows = 44
	in.Theme = "gruvbox"
	in.StableAfter = 3
	data, err := EncodeSettings(in)
	if err != nil {
		t.Fatalf("EncodeSettings: %v", err)
	}
	out := DecodeSettings(data)
	if out.Rows != 44 || out.Theme != "gruvbox" || out.StableAfter != 3 {
		t.Fatalf("round trip lost fields: %+v", out)
	}
}

func TestNormalizeClampsOutOfRange(t *testing.T) {
	cfg := Config{Rows: 100000, Cols: -3, Density: 400, StableAfter: 0}
	cfg.Normalize()
	def := Default()
	if cfg.Rows != def.Rows || cfg.Cols != def.Cols || cfg.Density != def.Density || cfg.StableAfter != 1 {
		t.Fatalf("normalize did not clamp: %+v", cfg)
	}
}
