package modelfactory

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Sequence returns a Generated attribute yielding start, start+1, ... on
// successive builds.
func Sequence(start int) Attr {
	var n atomic.Int64
	n.Store(int64(start) - 1)
	return Generated(func() any {
		return int(n.Add(1))
	})
}

// SequenceFormat returns a Generated attribute yielding fmt.Sprintf(format, n)
// for n = start, start+1, ...
//
//	"email": modelfactory.SequenceFormat("user%d@example.com", 1)
func SequenceFormat(format string, start int) Attr {
	var n atomic.Int64
	n.Store(int64(start) - 1)
	return Generated(func() any {
		return fmt.Sprintf(format, n.Add(1))
	})
}

// UUID returns a Generated attribute yielding a new random UUID string.
func UUID() Attr {
	return Generated(func() any {
		return uuid.New().String()
	})
}

// Now returns a Generated attribute yielding clock() in UTC.
// A nil clock uses time.Now.
func Now(clock func() time.Time) Attr {
	if clock == nil {
		clock = time.Now
	}
	return Generated(func() any {
		return clock().UTC()
	})
}
