package session

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestIssueAndLookup(t *testing.T) {
	svc := New(time.Hour, nil)
	sess, err := svc.Issue(context.Background(), "c1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	id, err := svc.Lookup(context.Background(), "c1", sess.Token)
	if err != nil || id != sess.ID {
		t.Fatalf("lookup: %v %q", err, id)
	}
	if _, err := svc.Lookup(context.Background(), "c2", sess.Token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected company scoping, got %v", err)
	}
	if _, err := svc.Lookup(context.Background(), "c1", "nope"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestLookupSlidesExpiry(t *testing.T) {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	svc := New(time.Hour, nil)
	svc.now = func() time.Time { return now }

	sess, err := svc.Issue(context.Background(), "c1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	now = now.Add(50 * time.Minute)
	if _, err := svc.Lookup(context.Background(), "c1", sess.Token); err != nil {
		t.Fatalf("lookup within ttl: %v", err)
	}
	now = now.Add(50 * time.Minute)
	if _, err := svc.Lookup(context.Background(), "c1", sess.Token); err != nil {
		t.Fatalf("lookup after slide: %v", err)
	}
	now = now.Add(2 * time.Hour)
	if _, err := svc.Lookup(context.Background(), "c1", sess.Token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected expiry, got %v", err)
	}
}

func TestSweepReturnsExpiredIDs(t *testing.T) {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	svc := New(time.Hour, nil)
	svc.now = func() time.Time { return now }

	old, _ := svc.Issue(context.Background(), "c1")
	now = now.Add(30 * time.Minute)
	fresh, _ := svc.Issue(context.Background(), "c1")
	now = now.Add(45 * time.Minute)

	expired := svc.Sweep()
	if len(expired) != 1 || expired[0] != old.ID {
		t.Fatalf("expected only %s expired, got %v", old.ID, expired)
	}
	if _, err := svc.Lookup(context.Background(), "c1", fresh.Token); err != nil {
		t.Fatalf("fresh session must survive: %v", err)
	}
}
