package transport

import (
	"encoding/json"
	"fmt"
	"math/big"
	"time"
)

// Timestamp is the wire representation of an instant: whole seconds since
// the Unix epoch plus a sub-second remainder in nanoseconds. Nanos is always
// in [0, 1e9) for encoded values.
type Timestamp struct {
	Seconds int64 `json:"seconds"`
	Nanos   int32 `json:"nanos"`
}

// NewTimestamp encodes an instant as a wire timestamp. Seconds is truncated
// toward zero and Nanos carries the remainder.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{
		Seconds: t.Unix(),
		Nanos:   int32(t.Nanosecond()),
	}
}

// Time decodes the wire timestamp back to a wall-clock instant at
// millisecond precision: seconds*1000 + floor(nanos/1e6) milliseconds.
// Sub-millisecond remainders do not round-trip.
func (ts Timestamp) Time() time.Time {
	ms := ts.Seconds*1000 + int64(ts.Nanos)/1_000_000
	return time.UnixMilli(ms).UTC()
}

// IsZero reports whether the timestamp is the zero wire value.
func (ts Timestamp) IsZero() bool {
	return ts.Seconds == 0 && ts.Nanos == 0
}

// UnmarshalJSON accepts seconds encoded as either a fixed-width integer or
// an arbitrary-precision integer. Values outside the int64 range are
// rejected rather than silently truncated.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	var raw struct {
		Seconds json.Number `json:"seconds"`
		Nanos   json.Number `json:"nanos"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decoding timestamp: %w", err)
	}

	secs, err := raw.Seconds.Int64()
	if err != nil {
		// Wide integers come through json.Number verbatim; re-check via
		// big.Int so a value that merely exceeds float precision still
		// parses, and only true overflow fails.
		wide, ok := new(big.Int).SetString(raw.Seconds.String(), 10)
		if !ok || !wide.IsInt64() {
			return fmt.Errorf("timestamp seconds %q out of range", raw.Seconds)
		}
		secs = wide.Int64()
	}

	var nanos int64
	if raw.Nanos != "" {
		nanos, err = raw.Nanos.Int64()
		if err != nil {
			return fmt.Errorf("decoding timestamp nanos: %w", err)
		}
	}
	if nanos < 0 || nanos >= 1_000_000_000 {
		return fmt.Errorf("timestamp nanos %d out of range", nanos)
	}

	ts.Seconds = secs
	ts.Nanos = int32(nanos)
	return nil
}
