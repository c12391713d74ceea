package domain

// DiscoType distinguishes disconnection frames. The numbers are persisted.
type DiscoType int

const (
	DiscoDeauthentication DiscoType = 1
	DiscoDisassociation   DiscoType = 2
)

func (d DiscoType) String() string {
	switch d {
	case DiscoDeauthentication:
		return "DEAUTHENTICATION"
	case DiscoDisassociation:
		return "DISASSOCIATION"
	}
	return "UNKNOWN"
}
