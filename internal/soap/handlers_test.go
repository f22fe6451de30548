package soap

import (
	"encoding/json"
	"encoding/xml"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dualserve/dualserve/internal/calculator"
	"github.com/dualserve/dualserve/internal/registry"
	"github.com/dualserve/dualserve/internal/rest"
	"github.com/dualserve/dualserve/internal/users"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	reg := registry.New()
	err := registry.RegisterAll(reg, calculator.NewService(), users.NewService(users.NewMemoryStore()))
	require.NoError(t, err)

	router := gin.New()
	NewHandler(reg, zap.NewNop()).RegisterRoutes(router)
	rest.NewHandler(reg, zap.NewNop()).RegisterRoutes(router)
	return router
}

func postEnvelope(t *testing.T, router *gin.Engine, path, action, bodyElement string) *httptest.ResponseRecorder {
	t.Helper()
	body := `<?xml version="1.0"?>` +
		`<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">` +
		`<soap:Body>` + bodyElement + `</soap:Body></soap:Envelope>`

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	if action != "" {
		req.Header.Set("SOAPAction", `"`+action+`"`)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

type calcReply struct {
	Result       float64 `xml:"Body>AddResponse>AddResult>Result"`
	Success      bool    `xml:"Body>AddResponse>AddResult>Success"`
	ErrorMessage string  `xml:"Body>AddResponse>AddResult>ErrorMessage"`
}

func TestEnvelopeAdd(t *testing.T) {
	router := newTestRouter(t)

	w := postEnvelope(t, router, "/CalculatorService.asmx",
		"http://tempuri.org/CalculatorService/Add",
		`<Add xmlns="http://tempuri.org/"><a>5</a><b>3</b></Add>`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/xml; charset=utf-8", w.Header().Get("Content-Type"))

	var reply calcReply
	require.NoError(t, xml.Unmarshal(w.Body.Bytes(), &reply))
	assert.True(t, reply.Success)
	assert.Equal(t, float64(8), reply.Result)
}

func TestEnvelopeDivideByZeroIsSuccessfulReply(t *testing.T) {
	router := newTestRouter(t)

	w := postEnvelope(t, router, "/CalculatorService.asmx",
		"http://tempuri.org/CalculatorService/Divide",
		`<Divide xmlns="http://tempuri.org/"><a>1</a><b>0</b></Divide>`)

	// domain failure rides a successful transport reply
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<Success>false</Success>")
	assert.Contains(t, w.Body.String(), "Cannot divide by zero")
}

func TestEnvelopeCalculateRequestObject(t *testing.T) {
	router := newTestRouter(t)

	w := postEnvelope(t, router, "/CalculatorService.asmx",
		"http://tempuri.org/CalculatorService/Calculate",
		`<Calculate xmlns="http://tempuri.org/"><request>`+
			`<FirstNumber>10</FirstNumber><SecondNumber>4</SecondNumber><Operation>multiply</Operation>`+
			`</request></Calculate>`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<Result>40</Result>")
	assert.Contains(t, w.Body.String(), "<CalculateResponse")
}

func TestEnvelopeMissingAction(t *testing.T) {
	router := newTestRouter(t)

	w := postEnvelope(t, router, "/CalculatorService.asmx", "",
		`<Add xmlns="http://tempuri.org/"><a>5</a><b>3</b></Add>`)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "<faultcode>soap:Client</faultcode>")
	assert.Contains(t, w.Body.String(), "SOAPAction header is required")
}

func TestEnvelopeUnknownAction(t *testing.T) {
	router := newTestRouter(t)

	w := postEnvelope(t, router, "/CalculatorService.asmx",
		"http://tempuri.org/CalculatorService/Modulo",
		`<Modulo xmlns="http://tempuri.org/"><a>5</a><b>3</b></Modulo>`)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "soap:Client")
	assert.Contains(t, w.Body.String(), "unknown action")
}

func TestEnvelopeActionForWrongService(t *testing.T) {
	router := newTestRouter(t)

	w := postEnvelope(t, router, "/UserService.asmx",
		"http://tempuri.org/CalculatorService/Add",
		`<Add xmlns="http://tempuri.org/"><a>5</a><b>3</b></Add>`)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "unknown action")
}

func TestEnvelopeMalformedBodyIsFault(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/CalculatorService.asmx",
		strings.NewReader(`<soap:Envelope><soap:Body><Add>`))
	req.Header.Set("SOAPAction", `"http://tempuri.org/CalculatorService/Add"`)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "<soap:Fault>")
	assert.Contains(t, w.Body.String(), "soap:Client")
}

func TestEnvelopeWrongFieldTypeIsFault(t *testing.T) {
	router := newTestRouter(t)

	w := postEnvelope(t, router, "/CalculatorService.asmx",
		"http://tempuri.org/CalculatorService/Add",
		`<Add xmlns="http://tempuri.org/"><a>five</a><b>3</b></Add>`)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "malformed request body")
}

// An operation element whose required children are absent must fault
// instead of running the operation with zero-valued arguments.
func TestEnvelopeMissingRequiredFieldIsFault(t *testing.T) {
	router := newTestRouter(t)

	t.Run("empty Add element", func(t *testing.T) {
		w := postEnvelope(t, router, "/CalculatorService.asmx",
			"http://tempuri.org/CalculatorService/Add",
			`<Add xmlns="http://tempuri.org/"/>`)

		require.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "<faultcode>soap:Client</faultcode>")
		assert.Contains(t, w.Body.String(), "missing required field: a, b")
	})

	t.Run("one operand absent", func(t *testing.T) {
		w := postEnvelope(t, router, "/CalculatorService.asmx",
			"http://tempuri.org/CalculatorService/Add",
			`<Add xmlns="http://tempuri.org/"><a>5</a></Add>`)

		require.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "missing required field: b")
	})

	t.Run("GetUserById without userId", func(t *testing.T) {
		w := postEnvelope(t, router, "/UserService.asmx",
			"http://tempuri.org/UserService/GetUserById",
			`<GetUserById xmlns="http://tempuri.org/"/>`)

		require.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "missing required field: userId")
		assert.NotContains(t, w.Body.String(), "User not found.")
	})

	t.Run("parameterless operation still succeeds", func(t *testing.T) {
		w := postEnvelope(t, router, "/CalculatorService.asmx",
			"http://tempuri.org/CalculatorService/GetCalculatorInfo",
			`<GetCalculatorInfo xmlns="http://tempuri.org/"/>`)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Calculator Service v1.0")
	})
}

func TestEnvelopeUserLifecycle(t *testing.T) {
	router := newTestRouter(t)

	w := postEnvelope(t, router, "/UserService.asmx",
		"http://tempuri.org/UserService/CreateUser",
		`<CreateUser xmlns="http://tempuri.org/"><request>`+
			`<FirstName>Alice</FirstName><LastName>Adams</LastName><Email>alice@example.com</Email>`+
			`</request></CreateUser>`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<Success>true</Success>")
	assert.Contains(t, w.Body.String(), "<Email>alice@example.com</Email>")
	assert.Contains(t, w.Body.String(), "<Id>4</Id>")

	w = postEnvelope(t, router, "/UserService.asmx",
		"http://tempuri.org/UserService/GetUserById",
		`<GetUserById xmlns="http://tempuri.org/"><userId>4</userId></GetUserById>`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<FirstName>Alice</FirstName>")

	w = postEnvelope(t, router, "/UserService.asmx",
		"http://tempuri.org/UserService/GetAllUsers",
		`<GetAllUsers xmlns="http://tempuri.org/"/>`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Retrieved 4 users successfully.")

	w = postEnvelope(t, router, "/UserService.asmx",
		"http://tempuri.org/UserService/DeleteUser",
		`<DeleteUser xmlns="http://tempuri.org/"><userId>4</userId></DeleteUser>`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "User deleted successfully.")
}

func TestEnvelopeUserNotFoundIsSuccessfulReply(t *testing.T) {
	router := newTestRouter(t)

	w := postEnvelope(t, router, "/UserService.asmx",
		"http://tempuri.org/UserService/GetUserById",
		`<GetUserById xmlns="http://tempuri.org/"><userId>999</userId></GetUserById>`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<Success>false</Success>")
	assert.Contains(t, w.Body.String(), "User not found.")
}

// Both adapters must produce the same numeric result for the same logical
// request, even though the wire formats differ.
func TestCrossProtocolEquivalence(t *testing.T) {
	router := newTestRouter(t)

	w := postEnvelope(t, router, "/CalculatorService.asmx",
		"http://tempuri.org/CalculatorService/Add",
		`<Add xmlns="http://tempuri.org/"><a>5</a><b>3</b></Add>`)
	require.Equal(t, http.StatusOK, w.Code)

	var envelopeReply calcReply
	require.NoError(t, xml.Unmarshal(w.Body.Bytes(), &envelopeReply))

	req := httptest.NewRequest(http.MethodGet, "/api/calculator/add?a=5&b=3", nil)
	jsonW := httptest.NewRecorder()
	router.ServeHTTP(jsonW, req)
	require.Equal(t, http.StatusOK, jsonW.Code)

	var jsonReply map[string]any
	require.NoError(t, json.Unmarshal(jsonW.Body.Bytes(), &jsonReply))

	assert.Equal(t, float64(8), envelopeReply.Result)
	assert.Equal(t, float64(8), jsonReply["result"])
}
