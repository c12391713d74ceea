package domain

import (
	"fmt"
	"strings"
	"unicode"
)

// Report is one 802.11 table report submitted by a tap for a single interval.
// It arrives already decoded; the wire format belongs to the transport.
type Report struct {
	BSSIDs  map[string]BSSIDObservation  `json:"bssids"`
	Clients map[string]ClientObservation `json:"clients"`
	Disco   DiscoReport                  `json:"disco"`
	Alerts  []TapAlert                   `json:"alerts"`
}

// SignalStrength is an (average, min, max) triple in dBm.
type SignalStrength struct {
	Average float32 `json:"average"`
	Min     float32 `json:"min"`
	Max     float32 `json:"max"`
}

// BSSIDObservation describes what a tap saw of one base station.
type BSSIDObservation struct {
	SignalStrength     SignalStrength               `json:"signal_strength"`
	HiddenSSIDFrames   int64                        `json:"hidden_ssid_frames"`
	Fingerprints       []string                     `json:"fingerprints"`
	Clients            map[string]ClientStatistics  `json:"clients"`
	AdvertisedNetworks map[string]AdvertisedNetwork `json:"advertised_networks"`
}

// ClientStatistics are the counters of a station associated to a BSSID.
type ClientStatistics struct {
	TxFrames       int64          `json:"tx_frames"`
	TxBytes        int64          `json:"tx_bytes"`
	RxFrames       int64          `json:"rx_frames"`
	RxBytes        int64          `json:"rx_bytes"`
	SignalStrength SignalStrength `json:"signal_strength"`
}

// ChannelStatistics counts traffic of one frame type on one frequency.
type ChannelStatistics struct {
	Bytes  int64 `json:"bytes"`
	Frames int64 `json:"frames"`
}

// AdvertisedNetwork is an SSID as advertised by a single BSSID.
type AdvertisedNetwork struct {
	SignalStrength              SignalStrength                         `json:"signal_strength"`
	BeaconAdvertisements        int64                                  `json:"beacon_advertisements"`
	ProbeResponseAdvertisements int64                                  `json:"proberesp_advertisements"`
	WPS                         []bool                                 `json:"wps"`
	Security                    []SecurityInformation                  `json:"security"`
	Fingerprints                []string                               `json:"fingerprints"`
	Rates                       []float32                              `json:"rates"`
	ChannelStatistics           map[int64]map[string]ChannelStatistics `json:"channel_statistics"`
	SignalHistogram             map[int64]map[int64]int64              `json:"signal_histogram"`
	InfrastructureTypes         []string                               `json:"infrastructure_types"`
}

// ClientObservation describes a station seen outside of any BSSID.
type ClientObservation struct {
	WildcardProbeRequests int64            `json:"wildcard_probe_requests"`
	SignalStrength        SignalStrength   `json:"signal_strength"`
	ProbeRequestSSIDs     map[string]int64 `json:"probe_request_ssids"`
}

// DiscoReport holds deauthentication and disassociation activity keyed by
// transmitter.
type DiscoReport struct {
	Deauthentication map[string]DiscoTransmitter `json:"deauthentication"`
	Disassociation   map[string]DiscoTransmitter `json:"disassociation"`
}

// DiscoTransmitter is one station sending disconnection frames.
type DiscoTransmitter struct {
	BSSID      string           `json:"bssid"`
	SentFrames int64            `json:"sent_frames"`
	Receivers  map[string]int64 `json:"receivers"`
}

// Validate rejects reports whose station keys are not MAC addresses.
func (r Report) Validate() error {
	for bssid, b := range r.BSSIDs {
		if !IsValidMAC(bssid) {
			return fmt.Errorf("invalid BSSID %q", bssid)
		}
		for client := range b.Clients {
			if !IsValidMAC(client) {
				return fmt.Errorf("invalid client %q of BSSID %q", client, bssid)
			}
		}
	}
	for client := range r.Clients {
		if !IsValidMAC(client) {
			return fmt.Errorf("invalid client %q", client)
		}
	}
	return nil
}

// SanitizeSSID removes every non-printable rune. An empty result means the
// SSID was hidden (some access points pad hidden SSIDs with NUL bytes).
func SanitizeSSID(ssid string) string {
	return strings.Map(func(r rune) rune {
		if !unicode.IsPrint(r) {
			return -1
		}
		return r
	}, ssid)
}
