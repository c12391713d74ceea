package domain

import "strconv"

// SettingAttribute is the attribute column of an SSID setting row.
type SettingAttribute string

const (
	SettingHasWPS           SettingAttribute = "has_wps"
	SettingSecurityProtocol SettingAttribute = "security_protocol"
	SettingSecuritySuite    SettingAttribute = "security_suite"
)

// SSIDSetting is one (attribute, value) pair of an advertised network. A nil
// Value is stored as NULL; for security_protocol it means no protocol (NONE).
type SSIDSetting struct {
	Attribute SettingAttribute
	Value     *string
}

// WPSSetting records whether a WPS element was advertised.
func WPSSetting(hasWPS bool) SSIDSetting {
	v := strconv.FormatBool(hasWPS)
	return SSIDSetting{Attribute: SettingHasWPS, Value: &v}
}

// SecurityProtocolSetting records one advertised protocol, e.g. WPA2.
func SecurityProtocolSetting(protocol string) SSIDSetting {
	return SSIDSetting{Attribute: SettingSecurityProtocol, Value: &protocol}
}

// NoSecurityProtocolSetting records an open network.
func NoSecurityProtocolSetting() SSIDSetting {
	return SSIDSetting{Attribute: SettingSecurityProtocol}
}

// SecuritySuiteSetting records a JSON encoded SuiteSetting.
func SecuritySuiteSetting(encoded string) SSIDSetting {
	return SSIDSetting{Attribute: SettingSecuritySuite, Value: &encoded}
}
