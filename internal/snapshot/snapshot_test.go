package snapshot

import (
	"testing"
	"time"

	"github.com/stayware/priceflow/internal/rules"
)

func sampleRules() []rules.Definition {
	return []rules.Definition{
		{
			ID:       "r1",
			Name:     "weekend uplift",
			Category: rules.CategoryPricing,
			Priority: 1,
			Scope:    rules.Scope{OrganizationID: "org-1"},
			Actions:  []rules.Action{{Type: rules.ActionMultiplyPrice, Value: 1.25}},
			Active:   true,
		},
	}
}

func TestBuild_ETagStableForSameRules(t *testing.T) {
	a := Build(sampleRules())
	b := Build(sampleRules())
	if a.ETag != b.ETag {
		t.Errorf("same rule set produced different ETags: %s vs %s", a.ETag, b.ETag)
	}
	if a.ETag == "" {
		t.Error("ETag must not be empty")
	}
}

func TestBuild_ETagChangesWithRules(t *testing.T) {
	a := Build(sampleRules())

	changed := sampleRules()
	changed[0].Priority = 2
	b := Build(changed)

	if a.ETag == b.ETag {
		t.Error("different rule sets must produce different ETags")
	}
}

func TestBuild_NilRules(t *testing.T) {
	s := Build(nil)
	if s.Rules == nil {
		t.Error("Build(nil) must yield an empty slice, not nil")
	}
	if s.ETag == "" {
		t.Error("empty snapshot still carries an ETag")
	}
}

func TestLoad_BeforeFirstUpdate(t *testing.T) {
	// Load never returns nil even before Update has run.
	s := Load()
	if s == nil {
		t.Fatal("Load returned nil")
	}
	if s.Rules == nil {
		t.Error("Rules must be non-nil")
	}
}

func TestUpdate_SwapsAndNotifies(t *testing.T) {
	ch, unsub := Subscribe()
	defer unsub()

	s := Build(sampleRules())
	Update(s)

	if got := Load(); got.ETag != s.ETag {
		t.Errorf("Load ETag = %s, want %s", got.ETag, s.ETag)
	}

	select {
	case etag := <-ch:
		if etag != s.ETag {
			t.Errorf("notified ETag = %s, want %s", etag, s.ETag)
		}
	case <-time.After(time.Second):
		t.Fatal("subscriber was not notified")
	}
}

func TestPublish_SkipsSlowSubscriber(t *testing.T) {
	ch, unsub := Subscribe()
	defer unsub()

	// Fill the buffered channel, then publish again: must not block.
	Update(Build(sampleRules()))

	done := make(chan struct{})
	go func() {
		changed := sampleRules()
		changed[0].Name = "renamed"
		Update(Build(changed))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
	_ = ch
}
