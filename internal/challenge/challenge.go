package challenge

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
)

// Variant selects which arithmetic form a capture surface shows.
type Variant string

const (
	Additive       Variant = "additive"
	Multiplicative Variant = "multiplicative"
)

// State holds one issued human-verification challenge. The answer never
// leaves the server; a state is single-use and must be regenerated after any
// verification attempt.
type State struct {
	Variant  Variant
	OperandA int
	OperandB int
	Answer   int
}

// Generate produces a fresh challenge for the given variant. Unknown variants
// fall back to additive.
func Generate(v Variant) State {
	switch v {
	case Multiplicative:
		a := 5 + rand.Intn(5) // 5..9
		b := 1 + rand.Intn(5) // 1..5
		return State{Variant: Multiplicative, OperandA: a, OperandB: b, Answer: a * b}
	default:
		a := 1 + rand.Intn(10) // 1..10
		b := 1 + rand.Intn(10)
		return State{Variant: Additive, OperandA: a, OperandB: b, Answer: a + b}
	}
}

// Prompt renders the question shown to the visitor.
func (s State) Prompt() string {
	op := "+"
	if s.Variant == Multiplicative {
		op = "x"
	}
	return fmt.Sprintf("%d %s %d = ?", s.OperandA, op, s.OperandB)
}

// Verify parses the visitor's answer as a trimmed integer and compares it.
// Non-numeric input verifies false.
func Verify(s State, answer string) bool {
	n, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil {
		return false
	}
	return n == s.Answer
}
