package curriculum

// WeeksPerYear is the length of a Swedish school year in teaching weeks.
const WeeksPerYear = 34

// Config holds pipeline generation settings.
type Config struct {
	// Weeks is the number of entries a generated year plan targets.
	Weeks int

	// CalibrationLimit bounds how many characters of extracted document
	// text are embedded in the calibration prompt.
	CalibrationLimit int

	// SourceLimit bounds the concatenated source excerpts embedded in a
	// lesson prompt.
	SourceLimit int

	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults for curriculum generation.
func DefaultConfig() Config {
	return Config{
		Weeks:            WeeksPerYear,
		CalibrationLimit: 10_000,
		SourceLimit:      20_000,
		MaxTokens:        8192,
		Temperature:      0.7,
	}
}
