// Package rest implements the resource protocol adapter: HTTP verb+path
// routing onto the operation registry and JSON rendering with status codes
// chosen from the outcome's failure kind.
package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dualserve/dualserve/internal/outcome"
	"github.com/dualserve/dualserve/internal/registry"
)

// Handler serves the JSON/HTTP routes for both services.
type Handler struct {
	registry *registry.Registry
	logger   *zap.Logger
}

// NewHandler creates new resource protocol handlers
func NewHandler(reg *registry.Registry, logger *zap.Logger) *Handler {
	return &Handler{registry: reg, logger: logger}
}

// RegisterRoutes registers all JSON routes on the router.
func (h *Handler) RegisterRoutes(router gin.IRouter) {
	api := router.Group("/api")

	calc := api.Group("/calculator")
	{
		calc.GET("/info", h.CalculatorInfo)
		calc.GET("/add", h.scalarOperation("Add"))
		calc.GET("/subtract", h.scalarOperation("Subtract"))
		calc.GET("/multiply", h.scalarOperation("Multiply"))
		calc.GET("/divide", h.scalarOperation("Divide"))
		calc.POST("/calculate", h.Calculate)
		calc.POST("/simple", h.SimpleCalculate)
		calc.POST("/evaluate", h.Evaluate)
	}

	usersGroup := api.Group("/users")
	{
		usersGroup.GET("", h.GetAllUsers)
		usersGroup.GET("/:id", h.GetUserByID)
		usersGroup.GET("/by-email/:email", h.GetUserByEmail)
		usersGroup.POST("", h.CreateUser)
		usersGroup.PUT("/:id", h.UpdateUser)
		usersGroup.DELETE("/:id", h.DeleteUser)
	}

	api.GET("/docs", h.Docs)
}

// statusForKind maps a domain failure kind onto an HTTP status code.
func statusForKind(kind outcome.Kind) int {
	switch kind {
	case outcome.KindValidation, outcome.KindConflict,
		outcome.KindInvalidOperation, outcome.KindDivisionByZero:
		return http.StatusBadRequest
	case outcome.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// invoke runs a registered operation, rendering a generic 500 on any
// transport-level failure. The returned bool reports whether the caller
// should continue with the result.
func (h *Handler) invoke(c *gin.Context, name string, args any) (any, bool) {
	result, err := h.registry.Call(c.Request.Context(), name, args)
	if err != nil {
		h.logger.Error("operation invocation failed",
			zap.String("operation", name),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Internal server error",
		})
		return nil, false
	}
	return result, true
}

// Docs exposes the registered operations as route metadata.
func (h *Handler) Docs(c *gin.Context) {
	ops := h.registry.Operations()
	entries := make([]gin.H, 0, len(ops))
	for _, op := range ops {
		entries = append(entries, gin.H{
			"name":    op.Name,
			"service": op.Service,
			"action":  op.Action,
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"operations": entries,
	})
}
