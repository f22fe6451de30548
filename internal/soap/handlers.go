package soap

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dualserve/dualserve/internal/registry"
)

const contentType = "text/xml; charset=utf-8"

// Handler serves the envelope protocol endpoints, one per service resource.
type Handler struct {
	registry *registry.Registry
	logger   *zap.Logger
}

// NewHandler creates new envelope protocol handlers
func NewHandler(reg *registry.Registry, logger *zap.Logger) *Handler {
	return &Handler{registry: reg, logger: logger}
}

// RegisterRoutes registers the envelope endpoints on the router.
func (h *Handler) RegisterRoutes(router gin.IRouter) {
	router.POST("/CalculatorService.asmx", h.endpoint(registry.ServiceCalculator))
	router.POST("/UserService.asmx", h.endpoint(registry.ServiceUsers))
}

// endpoint dispatches an envelope request for one service. The operation is
// selected by the out-of-band SOAPAction header, never by inspecting the
// body element. Domain-level failures still produce a 200 reply; only
// protocol-level problems produce a fault.
func (h *Handler) endpoint(service string) gin.HandlerFunc {
	return func(c *gin.Context) {
		action := NormalizeAction(c.GetHeader("SOAPAction"))
		if action == "" {
			h.fault(c, FaultClient, "SOAPAction header is required")
			return
		}

		op, ok := h.registry.LookupAction(action)
		if !ok || op.Service != service {
			h.fault(c, FaultClient, "unknown action: "+action)
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			h.fault(c, FaultServer, "failed to read request body")
			return
		}

		payload, err := ParseRequest(body)
		if err != nil {
			h.fault(c, FaultClient, err.Error())
			return
		}

		args := op.NewArgs()
		if err := DecodeArgs(payload, args); err != nil {
			h.fault(c, FaultClient, err.Error())
			return
		}
		if missing := MissingFields(payload, op.Required); len(missing) > 0 {
			h.fault(c, FaultClient, "missing required field: "+strings.Join(missing, ", "))
			return
		}

		result, err := op.Invoke(c.Request.Context(), args)
		if err != nil {
			h.logger.Error("operation invocation failed",
				zap.String("operation", op.Name),
				zap.Error(err))
			h.fault(c, FaultServer, "internal error")
			return
		}

		reply, err := EncodeResponse(registry.Namespace, op.Name, result)
		if err != nil {
			h.logger.Error("failed to encode reply",
				zap.String("operation", op.Name),
				zap.Error(err))
			h.fault(c, FaultServer, "internal error")
			return
		}

		c.Data(http.StatusOK, contentType, reply)
	}
}

func (h *Handler) fault(c *gin.Context, code, message string) {
	h.logger.Warn("envelope fault",
		zap.String("code", code),
		zap.String("message", message),
		zap.String("path", c.Request.URL.Path))
	c.Data(http.StatusInternalServerError, contentType, EncodeFault(code, message))
}
