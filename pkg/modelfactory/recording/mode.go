package recording

import (
	"fmt"
	"slices"
)

// Mode controls when interactions are recorded to a cassette.
type Mode string

// Record modes.
const (
	// ModeNone replays existing interactions and rejects new requests.
	ModeNone Mode = "none"
	// ModeOnce records when the cassette file does not exist yet.
	ModeOnce Mode = "once"
	// ModeNewEpisodes replays known interactions and records new ones.
	ModeNewEpisodes Mode = "new_episodes"
	// ModeAll re-records every interaction.
	ModeAll Mode = "all"
)

var modes = []Mode{ModeNone, ModeOnce, ModeNewEpisodes, ModeAll}

func modeNames() []string {
	names := make([]string, len(modes))
	for i, m := range modes {
		names[i] = string(m)
	}
	return names
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return slices.Contains(modes, m)
}

// Test tags that select a record mode.
const (
	TagRecord    = "vcr_record"
	TagRecordNew = "vcr_record_new"
	TagFocus     = "focus"
)

// Cassette holds per-test recording options.
type Cassette struct {
	// Record is the test's mode. Empty means the configured default.
	Record Mode
}

// ModeOr returns the cassette's mode, or def when none is set.
func (c *Cassette) ModeOr(def Mode) Mode {
	if c == nil || c.Record == "" {
		return def
	}
	return c.Record
}

// Derive computes a test's cassette options from its recording metadata
// and tags.
//
// vcr is the test's own setting: nil (unset), true (record with defaults),
// false (recording disabled) or a *Cassette. Any other value is an error.
// A nil result means the test does not use a cassette.
//
// The vcr_record and vcr_record_new tags force once and new_episodes. The
// focus tag turns recording on with mode once, keeping an explicit mode and
// leaving disabled tests alone. Other tags are ignored.
func Derive(vcr any, tags ...string) (*Cassette, error) {
	var (
		cassette *Cassette
		disabled bool
	)
	switch v := vcr.(type) {
	case nil:
	case bool:
		if v {
			cassette = &Cassette{}
		} else {
			disabled = true
		}
	case *Cassette:
		if v != nil {
			c := *v
			cassette = &c
		}
	default:
		return nil, fmt.Errorf("unknown recording metadata value: %#v", vcr)
	}

	for _, forced := range []struct {
		tag  string
		mode Mode
	}{
		{TagRecord, ModeOnce},
		{TagRecordNew, ModeNewEpisodes},
	} {
		if !slices.Contains(tags, forced.tag) {
			continue
		}
		if disabled {
			return nil, fmt.Errorf("unknown recording metadata value: %#v", vcr)
		}
		if cassette == nil {
			cassette = &Cassette{}
		}
		cassette.Record = forced.mode
	}

	if slices.Contains(tags, TagFocus) && !disabled {
		if cassette == nil {
			cassette = &Cassette{}
		}
		if cassette.Record == "" {
			cassette.Record = ModeOnce
		}
	}

	return cassette, nil
}
