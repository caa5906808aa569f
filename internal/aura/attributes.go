package aura

import (
	"encoding/xml"
	"strings"
)

// Attribute is one attrList entry of a getDeviceAttributesWithValues response.
// Value is nil when the element carries no value child.
type Attribute struct {
	ID    string  `xml:"id"`
	Name  string  `xml:"name"`
	Value *string `xml:"value"`
}

type attributeResponse struct {
	Items []Attribute `xml:"attrList"`
}

// Values in attrList are escaped a second time by the gateway.
var valueUnescaper = strings.NewReplacer("&lt;", "<", "&gt;", ">", "&amp;", "&")

// UnescapeValue undoes the gateway's second level of entity escaping.
func UnescapeValue(s string) string {
	return valueUnescaper.Replace(s)
}

// ParseAttributes parses the attrList entries of a telemetry response.
// Entries without a value are dropped and values are unescaped.
func ParseAttributes(body string) ([]Attribute, error) {
	var resp attributeResponse
	if err := xml.Unmarshal([]byte(body), &resp); err != nil {
		return nil, NewParseError("failed to parse attribute list", err)
	}

	attrs := make([]Attribute, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Value == nil {
			continue
		}
		v := UnescapeValue(*item.Value)
		attrs = append(attrs, Attribute{ID: item.ID, Name: item.Name, Value: &v})
	}
	return attrs, nil
}

// value returns the attribute value, or "" if it has none.
func (a Attribute) value() string {
	if a.Value == nil {
		return ""
	}
	return *a.Value
}

// findByID returns the first attribute with the given vendor id.
func findByID(attrs []Attribute, id string) (Attribute, bool) {
	for _, a := range attrs {
		if a.ID == id {
			return a, true
		}
	}
	return Attribute{}, false
}
