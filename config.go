package braket

type Config struct {
	// Epsilon is the magnitude below which a scalar counts as zero: the
	// evaluator refuses division by anything at most this small, display
	// drops imaginary parts within it, and it is the recommended
	// tolerance for FilterNZ and Equal.
	Epsilon float64

	// MaxDisplayTerms caps how many entries String renders before eliding
	// the rest.
	MaxDisplayTerms int
}

func NewConfig() *Config {
	return &Config{
		Epsilon:         1e-9,
		MaxDisplayTerms: 16,
	}
}

// defaultConfig backs the package-level String methods, which have no
// context to read a configuration from.
var defaultConfig = NewConfig()
