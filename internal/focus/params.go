package focus

import (
	"fmt"
	"strings"
)

// GainMode is the kind of focus being requested.
type GainMode int

const (
	Gain GainMode = iota
	GainTransient
	GainTransientMayDuck
	GainTransientExclusive
)

func (g GainMode) String() string {
	switch g {
	case Gain:
		return "gain"
	case GainTransient:
		return "gain_transient"
	case GainTransientMayDuck:
		return "gain_transient_may_duck"
	case GainTransientExclusive:
		return "gain_transient_exclusive"
	default:
		return "unknown"
	}
}

// ParseGainMode parses the config spelling of a gain mode.
func ParseGainMode(s string) (GainMode, error) {
	for _, g := range []GainMode{Gain, GainTransient, GainTransientMayDuck, GainTransientExclusive} {
		if strings.EqualFold(s, g.String()) {
			return g, nil
		}
	}
	return Gain, fmt.Errorf("unknown focus gain mode %q", s)
}

// ContentType declares what kind of audio is being played.
type ContentType int

const (
	ContentUnknown ContentType = iota
	ContentMovie
	ContentMusic
	ContentSonification
	ContentSpeech
)

var contentTypeNames = map[ContentType]string{
	ContentUnknown:      "unknown",
	ContentMovie:        "movie",
	ContentMusic:        "music",
	ContentSonification: "sonification",
	ContentSpeech:       "speech",
}

func (c ContentType) String() string {
	if name, ok := contentTypeNames[c]; ok {
		return name
	}
	return "unknown"
}

// ParseContentType parses the config spelling of a content type.
func ParseContentType(s string) (ContentType, error) {
	for c, name := range contentTypeNames {
		if strings.EqualFold(s, name) {
			return c, nil
		}
	}
	return ContentUnknown, fmt.Errorf("unknown content type %q", s)
}

// Usage is the usage category of the audio stream.
type Usage int

const (
	UsageUnknown Usage = iota
	UsageMedia
	UsageVoiceCommunication
	UsageAlarm
	UsageNotification
	UsageAssistant
	UsageNavigationGuidance
	UsageGame
)

var usageNames = map[Usage]string{
	UsageUnknown:            "unknown",
	UsageMedia:              "media",
	UsageVoiceCommunication: "voice_communication",
	UsageAlarm:              "alarm",
	UsageNotification:       "notification",
	UsageAssistant:          "assistant",
	UsageNavigationGuidance: "navigation_guidance",
	UsageGame:               "game",
}

func (u Usage) String() string {
	if name, ok := usageNames[u]; ok {
		return name
	}
	return "unknown"
}

// ParseUsage parses the config spelling of a usage category.
func ParseUsage(s string) (Usage, error) {
	for u, name := range usageNames {
		if strings.EqualFold(s, name) {
			return u, nil
		}
	}
	return UsageUnknown, fmt.Errorf("unknown usage %q", s)
}

// Params describes a focus request.
type Params struct {
	Gain        GainMode
	Usage       Usage
	ContentType ContentType

	// PauseWhenDucked turns a duck notification into a transient loss.
	PauseWhenDucked bool
	// AcceptDelayed lets the system grant focus later instead of refusing.
	AcceptDelayed bool
}

// DefaultParams is a permanent media request that ducks and accepts a
// delayed grant.
func DefaultParams() Params {
	return Params{
		Gain:          Gain,
		Usage:         UsageMedia,
		ContentType:   ContentMusic,
		AcceptDelayed: true,
	}
}
