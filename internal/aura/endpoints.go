package aura

import (
	"strconv"
	"strings"
	"time"
)

// DefaultHost is the vendor's EMEA API endpoint.
const DefaultHost = "https://emea-salprod02-api.arrayent.com:8081/zdk/services/zamapi"

// Gateway endpoints
const (
	EndpointLogin         = "userLogin"
	EndpointDeviceList    = "getDeviceList"
	EndpointSetAttributes = "setMultiDeviceAttributes2"
	EndpointGetAttributes = "getDeviceAttributesWithValues"
)

// Attribute names written through setMultiDeviceAttributes2.
const (
	AttrSelectPage  = "B01" // priming: select the attribute page
	AttrMode        = "B05" // preset and hot water commands
	AttrTemperature = "B06" // target temperature commands
)

// selectPageValue is the attribute page holding thermostat and hot water data.
const selectPageValue = "5"

// param is a single query parameter; order is kept as written.
type param struct {
	key   string
	value string
}

// buildURL joins host, endpoint and parameters in the given order. Every
// value is escaped with EscapeValue.
func buildURL(host, endpoint string, params ...param) string {
	var b strings.Builder
	b.WriteString(strings.TrimSuffix(host, "/"))
	b.WriteByte('/')
	b.WriteString(endpoint)
	for i, p := range params {
		if i == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		b.WriteString(p.key)
		b.WriteByte('=')
		b.WriteString(EscapeValue(p.value))
	}
	return b.String()
}

// EscapeValue percent-escapes every byte outside A-Z a-z 0-9 and "_.-~/".
// Space becomes %20; the gateway does not decode '+'.
func EscapeValue(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '_', c == '.', c == '-', c == '~', c == '/':
		return true
	}
	return false
}

// Timestamp formats t as epoch milliseconds.
func Timestamp(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}

// LoginURL builds the userLogin request.
func LoginURL(host, email, passwordMD5 string, now time.Time) string {
	return buildURL(host, EndpointLogin,
		param{"appId", AppID},
		param{"name", email},
		param{"password", passwordMD5},
		param{"timestamp", Timestamp(now)},
	)
}

// DeviceListURL builds the getDeviceList request.
func DeviceListURL(host, token, userID string, now time.Time) string {
	return buildURL(host, EndpointDeviceList,
		param{"secToken", token},
		param{"userId", userID},
		param{"timestamp", Timestamp(now)},
	)
}

// SetAttributeURL builds a setMultiDeviceAttributes2 request writing one attribute.
// value must be the raw payload; it is escaped here.
func SetAttributeURL(host, token, devID, name, value string, now time.Time) string {
	return buildURL(host, EndpointSetAttributes,
		param{"secToken", token},
		param{"devId", devID},
		param{"name1", name},
		param{"value1", value},
		param{"timestamp", Timestamp(now)},
	)
}

// PrimeURL builds the request that selects the attribute page before a read.
func PrimeURL(host, token, devID string, now time.Time) string {
	return SetAttributeURL(host, token, devID, AttrSelectPage, selectPageValue, now)
}

// AttributesURL builds the getDeviceAttributesWithValues request.
func AttributesURL(host, token, devID string, now time.Time) string {
	return buildURL(host, EndpointGetAttributes,
		param{"secToken", token},
		param{"devId", devID},
		param{"deviceTypeId", "1"},
		param{"timestamp", Timestamp(now)},
	)
}
