package api

import "github.com/sanverite/number-classifier/internal/core"

// FromAnalysis converts core.Analysis to the public NumberResponse.
// Properties is copied and never nil, so it always encodes as a JSON array.
func FromAnalysis(a core.Analysis) NumberResponse {
	props := make([]string, len(a.Properties))
	copy(props, a.Properties)
	return NumberResponse{
		Number:     a.Number,
		IsPrime:    a.IsPrime,
		IsPerfect:  a.IsPerfect,
		Properties: props,
		DigitSum:   a.DigitSum,
		FunFact:    a.FunFact,
	}
}
