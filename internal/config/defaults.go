package config

const (
	defaultConfigPath       = "~/.config/lessonreel/config.toml"
	projectConfigName       = "lessonreel.toml"
	defaultFramesDirName    = "frames"
	defaultAutoAdvance      = true
	defaultAdvanceHoldMs    = 1500
	defaultSpeed            = 1.0
	defaultTickIntervalMs   = 33
	defaultSlideOffsetPx    = -50.0
	defaultLabelThreshold   = 0.2
	defaultDiagramThreshold = 0.3
	defaultCanvasWidth      = 1280
	defaultCanvasHeight     = 720
	defaultFontSize         = 22.0
	defaultFPS              = 30
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	maxSpeed                = 16.0
	maxCanvasSide           = 8192
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir(),
		},
		Playback: Playback{
			AutoAdvance:    defaultAutoAdvance,
			AdvanceHoldMs:  defaultAdvanceHoldMs,
			Speed:          defaultSpeed,
			TickIntervalMs: defaultTickIntervalMs,
		},
		Render: Render{
			SlideOffsetPx:    defaultSlideOffsetPx,
			LabelThreshold:   defaultLabelThreshold,
			DiagramThreshold: defaultDiagramThreshold,
			Width:            defaultCanvasWidth,
			Height:           defaultCanvasHeight,
			FontSize:         defaultFontSize,
			FPS:              defaultFPS,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
