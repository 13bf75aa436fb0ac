package core

import "testing"

var errorMessageTests = []struct {
	err     error
	wantMsg string
}{
	{NameNotFound{"y"}, "not found: y"},
	{
		TypeMismatch{Expected: IntType{}, Actual: UnitType{}},
		"type mismatch: expected Int, got Trivial",
	},
	{
		TypeMismatch{Expected: UniverseLit{1}, Actual: UniverseLit{2}},
		"type mismatch: expected U(1), got U(2)",
	},
	{
		UniverseOverflow{255},
		"universe overflow: U(255) has no type, levels must be below 255",
	},
	{
		SynthesisFailure{unknownTerm{}},
		"cannot synthesize a type for ?, add an annotation",
	},
}

func TestErrorMessages(t *testing.T) {
	for _, test := range errorMessageTests {
		if gotMsg := test.err.Error(); gotMsg != test.wantMsg {
			t.Errorf("got message %v, want %v", gotMsg, test.wantMsg)
		}
	}
}
