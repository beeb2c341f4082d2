package config

var DefaultConfig Config

func init() {
	DefaultConfig = Config{
		Board: BoardConfig{
			Shape: "hex",
			Size:  6,
		},
		Black:    "hard",
		White:    "medium",
		Workers:  1,
		LogLevel: "info",
	}
}
