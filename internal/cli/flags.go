package cli

import "ptw/internal/config"

// Flags holds command-line flags
type Flags struct {
	TestPath       string
	CoverageSource string
	Python         string
	NameFilter     string
	TestCases      bool
	OpenFailures   bool
	Rerun          bool
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		TestPath:       f.TestPath,
		CoverageSource: f.CoverageSource,
		Python:         f.Python,
		NameFilter:     f.NameFilter,
		TestCases:      f.TestCases,
		OpenFailures:   f.OpenFailures,
		Rerun:          f.Rerun,
	}
}
