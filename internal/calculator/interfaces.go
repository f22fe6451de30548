package calculator

// CalculatorService defines the arithmetic operations exposed over both
// protocol surfaces.
type CalculatorService interface {
	Add(a, b float64) float64
	Subtract(a, b float64) float64
	Multiply(a, b float64) float64
	Divide(a, b float64) (float64, error)
	Calculate(req *CalculationRequest) *CalculationResult
	Evaluate(expression string) *CalculationResult
	Info() string
}
