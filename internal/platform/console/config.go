package console

type Config struct {
	// ShowTimestamps prefixes each event with its wall-clock time.
	ShowTimestamps bool
	// ShowAnalysis renders the password analysis block for matches.
	ShowAnalysis bool
	TimeFormat   string
}

func NewDefaultConfig() *Config {
	return &Config{
		ShowTimestamps: true,
		ShowAnalysis:   true,
		TimeFormat:     "15:04:05.000",
	}
}
