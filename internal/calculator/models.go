package calculator

import (
	"time"

	"github.com/dualserve/dualserve/internal/outcome"
)

// CalculationRequest carries a named operation over two operands. The
// operation name is matched case-insensitively.
type CalculationRequest struct {
	FirstNumber  float64 `json:"FirstNumber" xml:"FirstNumber"`
	SecondNumber float64 `json:"SecondNumber" xml:"SecondNumber"`
	Operation    string  `json:"Operation" xml:"Operation"`
}

// SimpleCalculationRequest is the compact body shape accepted by the
// REST /api/calculator/simple route.
type SimpleCalculationRequest struct {
	A         float64 `json:"A" xml:"A"`
	B         float64 `json:"B" xml:"B"`
	Operation string  `json:"Operation" xml:"Operation"`
}

// EvaluateRequest carries a free-form arithmetic expression.
type EvaluateRequest struct {
	Expression string `json:"expression" xml:"expression"`
}

// CalculationResult is the protocol-neutral outcome of a calculation.
// When Success is false, Result is not meaningful and ErrorMessage is set.
type CalculationResult struct {
	Result       float64   `json:"result" xml:"Result"`
	Operation    string    `json:"operation" xml:"Operation"`
	Success      bool      `json:"success" xml:"Success"`
	ErrorMessage string    `json:"errorMessage,omitempty" xml:"ErrorMessage,omitempty"`
	CalculatedAt time.Time `json:"calculatedAt" xml:"CalculatedAt"`

	// Kind tags the failure for adapters; never serialized.
	Kind outcome.Kind `json:"-" xml:"-"`
}
