package config

// Presets are named render profiles. "overview" compresses the whole
// run into a short clip, "rupture" dwells on the active phase at the
// slow step from the start, "archive" renders a high-rate master copy.
var Presets = map[string]*Config{
	"overview": {
		StartTime: 0, SwitchTime: 1.0, EndTime: 1.1,
		FastStep: 0.02, SlowStep: 0.002, EventWindow: 0.05,
		Fade:  FadeConfig{Duration: 0.01, MinSize: 1.5, MaxSize: 100},
		Video: VideoConfig{Width: 960, Height: 540, FPS: 30, Output: "overview.avi"},
	},
	"rupture": {
		StartTime: 0, SwitchTime: 0.01, EndTime: 1.1,
		FastStep: 0.005, SlowStep: 0.001, EventWindow: 0.02,
		Fade:  FadeConfig{Duration: 0.005, MinSize: 1.5, MaxSize: 100},
		Video: VideoConfig{Width: 960, Height: 540, FPS: 30, Output: "rupture.avi"},
	},
	"archive": {
		StartTime: 0, SwitchTime: 1.0, EndTime: 1.1,
		FastStep: 0.01, SlowStep: 0.0005, EventWindow: 0.05,
		Fade:  FadeConfig{Duration: 0.01, MinSize: 1.5, MaxSize: 100},
		Video: VideoConfig{Width: 1920, Height: 1080, FPS: 60, Output: "archive.avi"},
	},
}

// GetPreset returns a copy of the named preset, so callers can apply
// overrides without mutating the shared table.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
