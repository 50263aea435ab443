package forecast

// Report bundles one forecast run for display or export.
type Report struct {
	Input    Input           `json:"input" yaml:"input"`
	Records  []MonthlyRecord `json:"records" yaml:"records"`
	Summary  Summary         `json:"summary" yaml:"summary"`
	Warnings []Warning       `json:"warnings" yaml:"warnings"`
}

// Run checks the input, forecasts it and summarizes the result. It is the
// single entry point the interactive shells call per user action.
func Run(in Input) (Report, error) {
	warnings, err := Check(in)
	if err != nil {
		return Report{}, err
	}

	records, err := Forecast(in)
	if err != nil {
		return Report{}, err
	}

	if warnings == nil {
		warnings = []Warning{}
	}

	return Report{
		Input:    in,
		Records:  records,
		Summary:  Summarize(in, records),
		Warnings: warnings,
	}, nil
}
