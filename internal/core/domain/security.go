package domain

import (
	"slices"
	"strings"
)

// SecurityInformation is one security configuration advertised by a network.
type SecurityInformation struct {
	Protocols []string     `json:"protocols"`
	Suites    CipherSuites `json:"suites"`
	PMF       string       `json:"pmf"`
}

// CipherSuites of a security configuration.
type CipherSuites struct {
	GroupCipher        string   `json:"group_cipher"`
	PairwiseCiphers    []string `json:"pairwise_ciphers"`
	KeyManagementModes []string `json:"key_management_modes"`
}

// SuiteSetting is the persisted form of a security suite, stored as JSON in
// the security_suite setting.
type SuiteSetting struct {
	GroupCipher        string `json:"group_cipher"`
	PairwiseCiphers    string `json:"pairwise_ciphers"`
	KeyManagementModes string `json:"key_management_modes"`
	PMFMode            string `json:"pmf_mode"`
}

// Setting flattens the suites the way they are stored.
func (s SecurityInformation) Setting() SuiteSetting {
	return SuiteSetting{
		GroupCipher:        s.Suites.GroupCipher,
		PairwiseCiphers:    strings.Join(s.Suites.PairwiseCiphers, ","),
		KeyManagementModes: strings.Join(s.Suites.KeyManagementModes, ","),
		PMFMode:            s.PMF,
	}
}

// SecuritySuitesToIdentifier builds the canonical identifier of a security
// configuration. Monitored networks store their expected suites in this form.
//
// Format: <protocols>-<group cipher>-<pairwise ciphers>-<key management>-<pmf>
// where lists are sorted and comma separated, protocols are joined with "+"
// and an empty protocol list is written as NONE.
func SecuritySuitesToIdentifier(s SecurityInformation) string {
	protocols := "NONE"
	if len(s.Protocols) > 0 {
		protocols = strings.Join(sortedCopy(s.Protocols), "+")
	}

	return strings.Join([]string{
		protocols,
		s.Suites.GroupCipher,
		strings.Join(sortedCopy(s.Suites.PairwiseCiphers), ","),
		strings.Join(sortedCopy(s.Suites.KeyManagementModes), ","),
		s.PMF,
	}, "-")
}

func sortedCopy(in []string) []string {
	out := slices.Clone(in)
	slices.Sort(out)
	return out
}
