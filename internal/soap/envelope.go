// Package soap implements the envelope protocol adapter: SOAP-1.1-style
// request parsing, dispatch through the operation registry, and
// deterministic reply and fault framing.
package soap

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
)

// EnvelopeNS is the SOAP 1.1 envelope namespace.
const EnvelopeNS = "http://schemas.xmlsoap.org/soap/envelope/"

// Fault codes per SOAP 1.1: Client for malformed requests, Server for
// faults on our side.
const (
	FaultClient = "soap:Client"
	FaultServer = "soap:Server"
)

type requestEnvelope struct {
	XMLName xml.Name    `xml:"Envelope"`
	Body    requestBody `xml:"Body"`
}

type requestBody struct {
	Payload []byte `xml:",innerxml"`
}

// ParseRequest extracts the raw body payload (the operation element and its
// children) from a request envelope.
func ParseRequest(data []byte) ([]byte, error) {
	var env requestEnvelope
	if err := xml.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("malformed envelope: %w", err)
	}
	return bytes.TrimSpace(env.Body.Payload), nil
}

// DecodeArgs decodes the body payload into the operation's argument struct.
// An empty payload leaves the arguments at their zero values, which is valid
// only for operations without required fields.
func DecodeArgs(payload []byte, args any) error {
	if len(payload) == 0 {
		return nil
	}
	if err := xml.Unmarshal(payload, args); err != nil {
		return fmt.Errorf("malformed request body: %w", err)
	}
	return nil
}

// MissingFields reports which of the required argument elements are absent
// from the body payload. Decoding leaves absent elements at their zero
// values, so presence has to be checked on the payload itself: the direct
// children of the operation element are collected and compared against the
// required names.
func MissingFields(payload []byte, required []string) []string {
	if len(required) == 0 {
		return nil
	}

	present := make(map[string]bool)
	dec := xml.NewDecoder(bytes.NewReader(payload))
	depth := 0
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if depth == 1 {
				present[t.Name.Local] = true
			}
			depth++
		case xml.EndElement:
			depth--
		}
	}

	var missing []string
	for _, name := range required {
		if !present[name] {
			missing = append(missing, name)
		}
	}
	return missing
}

// EncodeResponse frames an operation result as a reply envelope:
//
//	<soap:Envelope><soap:Body>
//	  <{Op}Response xmlns="..."><{Op}Result>...</{Op}Result></{Op}Response>
//	</soap:Body></soap:Envelope>
//
// Field order follows the result struct declaration, so the framing is
// byte-for-byte reproducible from the operation name and result fields.
func EncodeResponse(namespace, opName string, result any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	fmt.Fprintf(&buf, `<soap:Envelope xmlns:soap=%q><soap:Body>`, EnvelopeNS)
	fmt.Fprintf(&buf, `<%sResponse xmlns=%q>`, opName, namespace)

	enc := xml.NewEncoder(&buf)
	start := xml.StartElement{Name: xml.Name{Local: opName + "Result"}}
	if err := enc.EncodeElement(result, start); err != nil {
		return nil, fmt.Errorf("failed to encode %s result: %w", opName, err)
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}

	fmt.Fprintf(&buf, `</%sResponse>`, opName)
	buf.WriteString(`</soap:Body></soap:Envelope>`)
	return buf.Bytes(), nil
}

// EncodeFault frames a protocol-level fault envelope.
func EncodeFault(code, message string) []byte {
	var escaped bytes.Buffer
	_ = xml.EscapeText(&escaped, []byte(message))

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	fmt.Fprintf(&buf, `<soap:Envelope xmlns:soap=%q><soap:Body>`, EnvelopeNS)
	fmt.Fprintf(&buf, `<soap:Fault><faultcode>%s</faultcode><faultstring>%s</faultstring></soap:Fault>`,
		code, escaped.String())
	buf.WriteString(`</soap:Body></soap:Envelope>`)
	return buf.Bytes()
}

// NormalizeAction strips the quotes some clients wrap around the SOAPAction
// header value.
func NormalizeAction(action string) string {
	return strings.Trim(strings.TrimSpace(action), `"`)
}
