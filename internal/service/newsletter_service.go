package service

import (
	"errors"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/pressroom/internal/db"
	"github.com/pressroom/internal/storage"
)

var (
	ErrAlreadySubscribed  = errors.New("email already subscribed")
	ErrSubscriberNotFound = errors.New("subscriber not found")
	ErrInvalidEmail       = errors.New("invalid email address")
)

// NewsletterService manages newsletter signups. Every subscriber gets an
// opaque unsubscribe token so the unsubscribe link needs no session.
type NewsletterService struct {
	store storage.Storage
}

// NewNewsletterService creates a NewsletterService instance.
func NewNewsletterService(store storage.Storage) *NewsletterService {
	return &NewsletterService{store: store}
}

// Subscribe registers an email address once.
func (s *NewsletterService) Subscribe(email string) (*db.NewsletterSubscriber, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil || email == "" {
		return nil, ErrInvalidEmail
	}

	sub := db.NewsletterSubscriber{
		Email:            email,
		UnsubscribeToken: uuid.New().String(),
	}
	if err := s.store.CreateSubscriber(&sub); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return nil, ErrAlreadySubscribed
		}
		return nil, err
	}
	return &sub, nil
}

// Unsubscribe removes the subscriber owning the token.
func (s *NewsletterService) Unsubscribe(token string) error {
	sub, err := s.store.SubscriberByToken(strings.TrimSpace(token))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrSubscriberNotFound
		}
		return err
	}
	if err := s.store.DeleteSubscriber(sub.ID); err != nil &&
		!errors.Is(err, storage.ErrNotFound) {
		return err
	}
	return nil
}

// List returns every subscriber, newest first.
func (s *NewsletterService) List() ([]db.NewsletterSubscriber, error) {
	return s.store.Subscribers()
}
