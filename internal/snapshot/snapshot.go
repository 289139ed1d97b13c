// Package snapshot maintains an atomically swapped in-memory view of the
// active rule set with an ETag derived from its content. API clients use the
// ETag for conditional fetches and the notify hub for change streaming.
package snapshot

import (
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/stayware/priceflow/internal/rules"
)

// Snapshot is an immutable view of the stored rule set at one point in time.
type Snapshot struct {
	ETag      string             `json:"etag"`
	Rules     []rules.Definition `json:"rules"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

var current atomic.Pointer[Snapshot]

// Load returns the current snapshot. Before the first Update it returns an
// empty snapshot rather than nil so callers never branch on nil.
func Load() *Snapshot {
	if s := current.Load(); s != nil {
		return s
	}
	return &Snapshot{ETag: "", Rules: []rules.Definition{}, UpdatedAt: time.Now().UTC()}
}

// Build constructs a snapshot from a rule list. The ETag is a weak validator
// over the serialized rules: identical rule sets always produce the same
// tag, so clients can cache across restarts.
func Build(defs []rules.Definition) *Snapshot {
	if defs == nil {
		defs = []rules.Definition{}
	}
	blob, _ := json.Marshal(defs)
	etag := fmt.Sprintf(`W/"%016x"`, xxhash.Sum64(blob))
	return &Snapshot{ETag: etag, Rules: defs, UpdatedAt: time.Now().UTC()}
}

// Update swaps in a new snapshot and notifies subscribers.
func Update(s *Snapshot) {
	current.Store(s)
	publishUpdate(s.ETag)
}
