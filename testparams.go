package seqcast

// TestParam pairs a model path with a construction config for exercising the
// forecaster in validation suites.
type TestParam struct {
	ModelPath string
	Config    *Config
}

// TestParams returns declarative parameter presets: a bare-minimum
// configuration carrying only a model path, and one exercising a custom
// sample count with a fixed seed.
func TestParams() []TestParam {
	numSamples := 20
	seed := int64(42)
	return []TestParam{
		{
			ModelPath: "amazon/chronos-t5-tiny",
		},
		{
			ModelPath: "amazon/chronos-t5-tiny",
			Config: &Config{
				NumSamples: &numSamples,
				Seed:       &seed,
			},
		},
	}
}
