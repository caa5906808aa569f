// Package aura provides a client for the JG Aura heating gateway's cloud API.
//
// The gateway is reached through the vendor's HTTP service. Every request is a
// GET with a query string; every response is XML. Thermostat state comes back
// packed into fixed-width character records, and commands are sent as short
// payloads built from ASCII offsets.
//
// # Usage Example
//
//	client := aura.NewClient(aura.DefaultHost, "me@example.com", password)
//
//	gw, err := client.Thermostats(ctx)
//	if err != nil {
//	    log.Fatal(aura.GetShortErrorMessage(err))
//	}
//	for _, t := range gw.Thermostats {
//	    fmt.Println(t)
//	}
//
//	// Switch a thermostat to Low and wait for the gateway to report it
//	cmd, _ := aura.EncodePreset("AB01", "Low")
//	result := client.ApplyAndVerify(ctx, cmd, nil)
//	if !result.Success {
//	    log.Fatal(result.Error)
//	}
//
// # Wire Format
//
// A packed record is 8 characters: a 4-character device id, a status
// character, then mode, current temperature and target temperature, each
// stored as value+32. Temperatures are in half degrees.
//
//	"AB01 &HK" -> id AB01, mode 6 (Low), current 20.0, target 21.5
//
// Commands start with '!' followed by the device id and one or more encoded
// characters. See EncodePreset, EncodeTemperature and EncodeHotWater.
//
// # Sessions and Retries
//
// The client logs in lazily. Transport retries each HTTP request up to three
// times with a fixed one-second wait. If a request still fails, the client
// drops its session, logs in again and repeats the whole operation once.
// Parse and command errors are never retried.
//
// # Thread Safety
//
// Client instances are safe for concurrent use. Operations are serialised by
// an internal lock, because login replaces the token every request depends on.
//
// # Error Handling
//
// All errors are *Error values carrying an ErrorType. Use IsAuthError,
// IsTransportError, IsParseError, IsCommandError and IsCommunicationError to
// classify them; these helpers look through wrapped client errors.
package aura
