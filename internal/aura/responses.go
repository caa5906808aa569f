package aura

import (
	"encoding/xml"
	"strings"
)

// LoginResult holds the fields of a userLogin response the client relies on.
type LoginResult struct {
	SecurityToken string
	UserID        string
}

type loginResponse struct {
	SecurityToken *string `xml:"securityToken"`
	UserID        *string `xml:"userId"`
}

type deviceListResponse struct {
	Devices []struct {
		DevID *string `xml:"devId"`
	} `xml:"devList"`
}

type operationResponse struct {
	RetCode *string `xml:"retCode"`
}

// ParseLogin extracts the security token and user id from a userLogin response.
func ParseLogin(body string) (LoginResult, error) {
	var resp loginResponse
	if err := xml.Unmarshal([]byte(body), &resp); err != nil {
		return LoginResult{}, NewAuthError("malformed login response", err)
	}
	if resp.UserID == nil || strings.TrimSpace(*resp.UserID) == "" {
		return LoginResult{}, NewAuthError("could not extract user id from login response", nil)
	}
	if resp.SecurityToken == nil || strings.TrimSpace(*resp.SecurityToken) == "" {
		return LoginResult{}, NewAuthError("could not extract security token from login response", nil)
	}
	return LoginResult{
		SecurityToken: strings.TrimSpace(*resp.SecurityToken),
		UserID:        strings.TrimSpace(*resp.UserID),
	}, nil
}

// ParseGatewayDeviceID extracts the first devList/devId from a getDeviceList response.
func ParseGatewayDeviceID(body string) (string, error) {
	var resp deviceListResponse
	if err := xml.Unmarshal([]byte(body), &resp); err != nil {
		return "", NewAuthError("malformed device list response", err)
	}
	for _, d := range resp.Devices {
		if d.DevID != nil && strings.TrimSpace(*d.DevID) != "" {
			return strings.TrimSpace(*d.DevID), nil
		}
	}
	return "", NewAuthError("could not extract device id from device list response", nil)
}

// ValidateOperationResponse checks the retCode of a write response.
// Anything but the literal "0" is a rejected command.
func ValidateOperationResponse(body string) error {
	var resp operationResponse
	if err := xml.Unmarshal([]byte(body), &resp); err != nil {
		return NewParseError("malformed operation response", err)
	}
	if resp.RetCode == nil {
		return NewCommandError("operation failed; response has no return code")
	}
	if *resp.RetCode != "0" {
		return NewCommandError("operation failed; unexpected response code " + *resp.RetCode)
	}
	return nil
}
