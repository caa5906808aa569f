package aura

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const testHost = "https://api.example.com/zdk/services/zamapi"

func TestEscapeValue(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"abcXYZ019", "abcXYZ019"},
		{"_.-~/", "_.-~/"},
		{"a b", "a%20b"},
		{"me+x@example.com", "me%2Bx%40example.com"},
		{"!AB12# ", "%21AB12%23%20"},
		{"!AB01'01", "%21AB01%2701"},
		{"a&b=c?", "a%26b%3Dc%3F"},
		{"é", "%C3%A9"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, EscapeValue(tt.in), "input %q", tt.in)
	}
}

func TestTimestamp(t *testing.T) {
	assert.Equal(t, "1700000000000", Timestamp(testNow))
}

func TestHashPassword(t *testing.T) {
	assert.Equal(t, "5f4dcc3b5aa765d61d8327deb882cf99", HashPassword("password"))
}

func TestLoginURL(t *testing.T) {
	got := LoginURL(testHost, "me+x@example.com", HashPassword("password"), testNow)
	want := testHost + "/userLogin?appId=1097&name=me%2Bx%40example.com" +
		"&password=5f4dcc3b5aa765d61d8327deb882cf99&timestamp=1700000000000"
	assert.Equal(t, want, got)
}

func TestLoginURL_TrailingSlash(t *testing.T) {
	got := LoginURL(testHost+"/", "a@b.c", "x", testNow)
	assert.Equal(t, testHost+"/userLogin?appId=1097&name=a%40b.c&password=x&timestamp=1700000000000", got)
}

func TestDeviceListURL(t *testing.T) {
	got := DeviceListURL(testHost, "tok", "42", testNow)
	assert.Equal(t, testHost+"/getDeviceList?secToken=tok&userId=42&timestamp=1700000000000", got)
}

func TestSetAttributeURL(t *testing.T) {
	got := SetAttributeURL(testHost, "tok", "9001", AttrMode, "!AB12# ", testNow)
	want := testHost + "/setMultiDeviceAttributes2?secToken=tok&devId=9001&name1=B05" +
		"&value1=%21AB12%23%20&timestamp=1700000000000"
	assert.Equal(t, want, got)
}

func TestPrimeURL(t *testing.T) {
	got := PrimeURL(testHost, "tok", "9001", testNow)
	want := testHost + "/setMultiDeviceAttributes2?secToken=tok&devId=9001&name1=B01" +
		"&value1=5&timestamp=1700000000000"
	assert.Equal(t, want, got)
}

func TestAttributesURL(t *testing.T) {
	got := AttributesURL(testHost, "tok", "9001", testNow)
	want := testHost + "/getDeviceAttributesWithValues?secToken=tok&devId=9001" +
		"&deviceTypeId=1&timestamp=1700000000000"
	assert.Equal(t, want, got)
}

func TestEndpointName(t *testing.T) {
	assert.Equal(t, "userLogin", endpointName(testHost+"/userLogin?appId=1097"))
	assert.Equal(t, "", endpointName("://bad"))
}
