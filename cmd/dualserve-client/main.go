// Command dualserve-client is a demo client exercising both protocol
// surfaces of a running dualserve server.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
)

var (
	heading = color.New(color.FgCyan, color.Bold)
	okLine  = color.New(color.FgGreen)
	errLine = color.New(color.FgRed)
)

func main() {
	base := flag.String("base", "http://localhost:8080", "server base URL")
	flag.Parse()

	client := &http.Client{Timeout: 10 * time.Second}

	heading.Println("== JSON protocol ==")
	restDemo(client, *base)

	fmt.Println()
	heading.Println("== Envelope protocol ==")
	envelopeDemo(client, *base)
}

func restDemo(client *http.Client, base string) {
	get(client, base+"/api/calculator/info")
	get(client, base+"/api/calculator/add?a=5&b=3")
	get(client, base+"/api/calculator/divide?a=10&b=0") // expected 400
	post(client, base+"/api/calculator/calculate",
		`{"FirstNumber":10,"SecondNumber":4,"Operation":"multiply"}`)
	post(client, base+"/api/calculator/evaluate",
		`{"expression":"(2 + 3) * 4"}`)

	get(client, base+"/api/users")
	post(client, base+"/api/users",
		fmt.Sprintf(`{"firstName":"Demo","lastName":"Client","email":"demo.%d@example.com"}`, time.Now().UnixNano()))
	get(client, base+"/api/users/1")
	get(client, base+"/api/users/by-email/john.doe@example.com")
}

func envelopeDemo(client *http.Client, base string) {
	callEnvelope(client, base+"/CalculatorService.asmx",
		"http://tempuri.org/CalculatorService/GetCalculatorInfo",
		`<GetCalculatorInfo xmlns="http://tempuri.org/"/>`)

	callEnvelope(client, base+"/CalculatorService.asmx",
		"http://tempuri.org/CalculatorService/Add",
		`<Add xmlns="http://tempuri.org/"><a>5</a><b>3</b></Add>`)

	// domain failure rides a successful transport reply on this surface
	callEnvelope(client, base+"/CalculatorService.asmx",
		"http://tempuri.org/CalculatorService/Divide",
		`<Divide xmlns="http://tempuri.org/"><a>10</a><b>0</b></Divide>`)

	callEnvelope(client, base+"/UserService.asmx",
		"http://tempuri.org/UserService/GetAllUsers",
		`<GetAllUsers xmlns="http://tempuri.org/"/>`)

	callEnvelope(client, base+"/UserService.asmx",
		"http://tempuri.org/UserService/GetUserById",
		`<GetUserById xmlns="http://tempuri.org/"><userId>1</userId></GetUserById>`)
}

func get(client *http.Client, url string) {
	resp, err := client.Get(url)
	report("GET "+url, resp, err)
}

func post(client *http.Client, url, body string) {
	resp, err := client.Post(url, "application/json", strings.NewReader(body))
	report("POST "+url, resp, err)
}

func callEnvelope(client *http.Client, url, action, bodyElement string) {
	envelope := `<?xml version="1.0"?>` +
		`<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">` +
		`<soap:Body>` + bodyElement + `</soap:Body></soap:Envelope>`

	req, err := http.NewRequest(http.MethodPost, url, strings.NewReader(envelope))
	if err != nil {
		errLine.Printf("  %s: %v\n", action, err)
		return
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("SOAPAction", `"`+action+`"`)

	resp, err := client.Do(req)
	report(action, resp, err)
}

func report(label string, resp *http.Response, err error) {
	if err != nil {
		errLine.Printf("  %s: %v\n", label, err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	line := okLine
	if resp.StatusCode >= 400 {
		line = errLine
	}
	line.Printf("  %s -> %d\n", label, resp.StatusCode)
	fmt.Printf("    %s\n", compact(body))
}

// compact flattens a response body onto one line for display.
func compact(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if json.Valid(trimmed) {
		var buf bytes.Buffer
		if err := json.Compact(&buf, trimmed); err == nil {
			return buf.String()
		}
	}
	return strings.Join(strings.Fields(string(trimmed)), " ")
}
