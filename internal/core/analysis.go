package core

// Analysis is the classification of a single number. It is built fresh per
// request and treated as immutable once returned.
type Analysis struct {
	Number     int64
	IsPrime    bool
	IsPerfect  bool
	Properties []string // ordered; see Properties
	DigitSum   int
	FunFact    string // filled in by the caller from the trivia provider
}

// Classify computes every numeric field of an Analysis. FunFact is left empty.
func Classify(n int64) Analysis {
	return Analysis{
		Number:     n,
		IsPrime:    IsPrime(n),
		IsPerfect:  IsPerfect(n),
		Properties: Properties(n),
		DigitSum:   DigitSum(n),
	}
}

// WithFunFact returns a copy of a carrying the given fact.
func (a Analysis) WithFunFact(fact string) Analysis {
	a.Properties = append([]string(nil), a.Properties...)
	a.FunFact = fact
	return a
}
