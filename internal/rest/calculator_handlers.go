package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dualserve/dualserve/internal/calculator"
	"github.com/dualserve/dualserve/internal/registry"
)

// CalculatorInfo handles GET /api/calculator/info
func (h *Handler) CalculatorInfo(c *gin.Context) {
	result, ok := h.invoke(c, "GetCalculatorInfo", &registry.EmptyArgs{})
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Calculator info retrieved successfully",
		"info":    result,
	})
}

// scalarOperation handles the GET ?a=&b= calculator routes. Both operands
// are required numeric query parameters.
func (h *Handler) scalarOperation(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		a, errA := strconv.ParseFloat(c.Query("a"), 64)
		b, errB := strconv.ParseFloat(c.Query("b"), 64)
		if errA != nil || errB != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Query parameters a and b must be numbers",
			})
			return
		}

		result, ok := h.invoke(c, name, &registry.BinaryArgs{A: a, B: b})
		if !ok {
			return
		}
		calc := result.(*calculator.CalculationResult)

		if !calc.Success {
			c.JSON(statusForKind(calc.Kind), gin.H{
				"success":      false,
				"operation":    calc.Operation,
				"firstNumber":  a,
				"secondNumber": b,
				"message":      calc.ErrorMessage,
				"calculatedAt": calc.CalculatedAt,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":      true,
			"operation":    calc.Operation,
			"firstNumber":  a,
			"secondNumber": b,
			"result":       calc.Result,
			"calculatedAt": calc.CalculatedAt,
		})
	}
}

// Calculate handles POST /api/calculator/calculate
func (h *Handler) Calculate(c *gin.Context) {
	var req calculator.CalculationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success":      false,
			"errorMessage": "Request body is required",
		})
		return
	}

	result, ok := h.invoke(c, "Calculate", &registry.CalculateArgs{Request: req})
	if !ok {
		return
	}
	calc := result.(*calculator.CalculationResult)

	if !calc.Success {
		c.JSON(statusForKind(calc.Kind), calc)
		return
	}
	c.JSON(http.StatusOK, calc)
}

// SimpleCalculate handles POST /api/calculator/simple
func (h *Handler) SimpleCalculate(c *gin.Context) {
	var req calculator.SimpleCalculationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Request body is required",
		})
		return
	}

	result, ok := h.invoke(c, "Calculate", &registry.CalculateArgs{
		Request: calculator.CalculationRequest{
			FirstNumber:  req.A,
			SecondNumber: req.B,
			Operation:    req.Operation,
		},
	})
	if !ok {
		return
	}
	calc := result.(*calculator.CalculationResult)

	if !calc.Success {
		c.JSON(statusForKind(calc.Kind), gin.H{
			"success":      false,
			"operation":    calc.Operation,
			"firstNumber":  req.A,
			"secondNumber": req.B,
			"errorMessage": calc.ErrorMessage,
			"calculatedAt": calc.CalculatedAt,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"operation":    calc.Operation,
		"firstNumber":  req.A,
		"secondNumber": req.B,
		"result":       calc.Result,
		"calculatedAt": calc.CalculatedAt,
	})
}

// Evaluate handles POST /api/calculator/evaluate
func (h *Handler) Evaluate(c *gin.Context) {
	var req calculator.EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Request body is required",
		})
		return
	}

	result, ok := h.invoke(c, "Evaluate", &registry.EvaluateArgs{Expression: req.Expression})
	if !ok {
		return
	}
	calc := result.(*calculator.CalculationResult)

	if !calc.Success {
		c.JSON(statusForKind(calc.Kind), calc)
		return
	}
	c.JSON(http.StatusOK, calc)
}
