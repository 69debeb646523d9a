package service

import (
	"errors"
	"testing"
)

func TestSubscribeNormalizesAndDeduplicates(t *testing.T) {
	store, cleanup := setupServiceTestStore(t)
	defer cleanup()

	svc := NewNewsletterService(store)
	sub, err := svc.Subscribe("  Reader@Example.COM ")
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if sub.Email != "reader@example.com" {
		t.Fatalf("expected normalized email, got %q", sub.Email)
	}
	if sub.UnsubscribeToken == "" {
		t.Fatal("expected an unsubscribe token")
	}

	if _, err := svc.Subscribe("reader@example.com"); !errors.Is(err, ErrAlreadySubscribed) {
		t.Fatalf("expected ErrAlreadySubscribed, got %v", err)
	}
}

func TestSubscribeRejectsInvalidEmail(t *testing.T) {
	store, cleanup := setupServiceTestStore(t)
	defer cleanup()

	svc := NewNewsletterService(store)
	for _, email := range []string{"", "not-an-email", "a@", "@b.com"} {
		if _, err := svc.Subscribe(email); !errors.Is(err, ErrInvalidEmail) {
			t.Fatalf("Subscribe(%q): expected ErrInvalidEmail, got %v", email, err)
		}
	}
}

func TestUnsubscribeByToken(t *testing.T) {
	store, cleanup := setupServiceTestStore(t)
	defer cleanup()

	svc := NewNewsletterService(store)
	sub, err := svc.Subscribe("reader@example.com")
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	if err := svc.Unsubscribe(sub.UnsubscribeToken); err != nil {
		t.Fatalf("unsubscribe: %v", err)
	}
	if err := svc.Unsubscribe(sub.UnsubscribeToken); !errors.Is(err, ErrSubscriberNotFound) {
		t.Fatalf("expected ErrSubscriberNotFound on reuse, got %v", err)
	}

	subscribers, err := svc.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(subscribers) != 0 {
		t.Fatalf("expected empty subscriber list, got %d", len(subscribers))
	}
}
