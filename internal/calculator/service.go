package calculator

import (
	"fmt"
	"strings"
	"time"

	"github.com/Knetic/govaluate"

	"github.com/dualserve/dualserve/internal/outcome"
)

const (
	divideByZeroMessage     = "Cannot divide by zero"
	invalidOperationMessage = "Invalid operation. Supported operations: add, subtract, multiply, divide"
)

// ServiceImpl implements the CalculatorService interface. It holds no state
// and is safe for concurrent use.
type ServiceImpl struct{}

// NewService creates a new calculator service instance
func NewService() *ServiceImpl {
	return &ServiceImpl{}
}

func (s *ServiceImpl) Add(a, b float64) float64 {
	return a + b
}

func (s *ServiceImpl) Subtract(a, b float64) float64 {
	return a - b
}

func (s *ServiceImpl) Multiply(a, b float64) float64 {
	return a * b
}

// Divide fails when the divisor is zero; IEEE-754 division otherwise.
func (s *ServiceImpl) Divide(a, b float64) (float64, error) {
	if b == 0 {
		return 0, outcome.NewDivisionByZeroError(divideByZeroMessage)
	}
	return a / b, nil
}

// Calculate dispatches on the request's operation name, matched
// case-insensitively. Unknown names and zero divisors yield a failed result,
// never an error.
func (s *ServiceImpl) Calculate(req *CalculationRequest) *CalculationResult {
	result := &CalculationResult{
		Operation:    req.Operation,
		CalculatedAt: time.Now(),
		Success:      true,
	}

	switch strings.ToLower(req.Operation) {
	case "add":
		result.Result = s.Add(req.FirstNumber, req.SecondNumber)
	case "subtract":
		result.Result = s.Subtract(req.FirstNumber, req.SecondNumber)
	case "multiply":
		result.Result = s.Multiply(req.FirstNumber, req.SecondNumber)
	case "divide":
		value, err := s.Divide(req.FirstNumber, req.SecondNumber)
		if err != nil {
			result.Success = false
			result.ErrorMessage = outcome.MessageOf(err)
			result.Kind = outcome.KindOf(err)
			break
		}
		result.Result = value
	default:
		result.Success = false
		result.ErrorMessage = invalidOperationMessage
		result.Kind = outcome.KindInvalidOperation
	}

	return result
}

// Evaluate parses and evaluates a free-form arithmetic expression.
func (s *ServiceImpl) Evaluate(expression string) *CalculationResult {
	result := &CalculationResult{
		Operation:    "evaluate",
		CalculatedAt: time.Now(),
	}

	if strings.TrimSpace(expression) == "" {
		result.ErrorMessage = "Expression is required."
		result.Kind = outcome.KindValidation
		return result
	}

	expr, err := govaluate.NewEvaluableExpression(expression)
	if err != nil {
		result.ErrorMessage = fmt.Sprintf("Invalid expression: %v", err)
		result.Kind = outcome.KindValidation
		return result
	}

	value, err := expr.Evaluate(nil)
	if err != nil {
		result.ErrorMessage = fmt.Sprintf("Evaluation failed: %v", err)
		result.Kind = outcome.KindValidation
		return result
	}

	number, ok := value.(float64)
	if !ok {
		result.ErrorMessage = fmt.Sprintf("Expression did not produce a number (got %T)", value)
		result.Kind = outcome.KindValidation
		return result
	}

	result.Result = number
	result.Success = true
	return result
}

// Info returns a human-readable capability string including the current time.
func (s *ServiceImpl) Info() string {
	return fmt.Sprintf("Calculator Service v1.0 - Available operations: Add, Subtract, Multiply, Divide. Current time: %s",
		time.Now().Format("2006-01-02 15:04:05"))
}
