package domain

import "strings"

type Mode string

const (
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
	ModeHybrid  Mode = "hybrid"
)

func (m Mode) Valid() bool {
	return m == ModeOnline || m == ModeOffline || m == ModeHybrid
}

func NormalizeMode(input string) Mode {
	return Mode(strings.ToLower(strings.TrimSpace(input)))
}
