package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSSIDSettings(t *testing.T) {
	wps := WPSSetting(false)
	assert.Equal(t, SettingHasWPS, wps.Attribute)
	require.NotNil(t, wps.Value)
	assert.Equal(t, "false", *wps.Value)

	proto := SecurityProtocolSetting("WPA2")
	require.NotNil(t, proto.Value)
	assert.Equal(t, "WPA2", *proto.Value)

	open := NoSecurityProtocolSetting()
	assert.Equal(t, SettingSecurityProtocol, open.Attribute)
	assert.Nil(t, open.Value)
}

func TestDiscoType_String(t *testing.T) {
	assert.Equal(t, "DEAUTHENTICATION", DiscoDeauthentication.String())
	assert.Equal(t, "DISASSOCIATION", DiscoDisassociation.String())
	assert.Equal(t, "UNKNOWN", DiscoType(9).String())
	assert.Equal(t, 1, int(DiscoDeauthentication))
}
