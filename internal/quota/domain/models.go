// Package domain defines the daily write-quota gate contract.
//
// The gate is the one component in the service that must count exactly: many
// request handlers with no shared memory have to agree on whether today's
// write budget is exhausted. All contention is pushed into a single named
// gate instance that serializes every operation against its durable record.
package domain

import (
	"context"
	"errors"
	"strings"
)

// State is the gate's admission state for the current accounting day.
type State string

const (
	// StateOpen admits further writes until the limit is reached.
	StateOpen State = "open"
	// StatePaused rejects every write until the window rolls over or a
	// force-reset lands.
	StatePaused State = "paused"
)

// QuotaRecord is the single persisted entity of the gate. Exactly one record
// exists per gate instance; a new day's record overwrites the previous one.
type QuotaRecord struct {
	DayKey   string `json:"dayKey"`
	Count    int    `json:"count"`
	Limit    int    `json:"limit"`
	State    State  `json:"state"`
	ResumeAt string `json:"resumeAt"`
}

// ConsumeInput carries the caller-computed window parameters. The gate never
// computes time itself; dayKey and resumeAt are opaque inputs.
type ConsumeInput struct {
	DayKey   string `json:"dayKey"`
	Limit    int    `json:"limit"`
	ResumeAt string `json:"resumeAt"`
}

// Validate rejects inputs the gate must not act on.
func (in ConsumeInput) Validate() error {
	if strings.TrimSpace(in.DayKey) == "" || strings.TrimSpace(in.ResumeAt) == "" || in.Limit <= 0 {
		return ErrInvalidInput
	}
	return nil
}

var (
	// ErrInvalidInput marks a malformed consume/force-reset payload. It is
	// surfaced synchronously and never retried.
	ErrInvalidInput = errors.New("invalid_quota_input")
)

// Store persists the gate's record. Implementations must survive process
// restarts; they do not need to serialize calls, the gate does that.
type Store interface {
	// Load returns the stored record, or nil when none was ever written.
	Load(ctx context.Context) (*QuotaRecord, error)
	Save(ctx context.Context, record QuotaRecord) error
}

// Gate is the serialized quota actor. Implementations guarantee that no two
// operations against the same instance interleave between their storage read
// and write.
type Gate interface {
	// Consume admits one write if budget remains, applying lazy day-rollover
	// and refreshing limit/resumeAt on every call. The returned record's
	// State tells the caller whether the write may proceed.
	Consume(ctx context.Context, in ConsumeInput) (QuotaRecord, error)
	// ForceReset unconditionally replaces the record with a fresh open
	// window. Idempotent.
	ForceReset(ctx context.Context, in ConsumeInput) (QuotaRecord, error)
	// Status returns the current record without mutating it. ok is false
	// when no record has ever been written.
	Status(ctx context.Context) (QuotaRecord, bool, error)
}
