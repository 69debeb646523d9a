package service

import (
	"errors"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/pressroom/internal/db"
	"github.com/pressroom/internal/storage"
)

var ErrAdvertisementNotFound = errors.New("advertisement not found")

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// AdvertisementService decides which ads are eligible for a placement and
// records engagement counters.
type AdvertisementService struct {
	store storage.Storage
}

// NewAdvertisementService creates an AdvertisementService instance.
func NewAdvertisementService(store storage.Storage) *AdvertisementService {
	return &AdvertisementService{store: store}
}

// AdvertisementInput is the create payload. Dates arrive as strings and are
// parsed as RFC3339 or plain YYYY-MM-DD.
type AdvertisementInput struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	ImageURL        string `json:"imageUrl"`
	LinkURL         string `json:"linkUrl"`
	BackgroundColor string `json:"backgroundColor"`
	TextColor       string `json:"textColor"`
	Position        string `json:"position"`
	IsActive        *bool  `json:"isActive"`
	Priority        *int   `json:"priority"`
	StartDate       string `json:"startDate"`
	EndDate         string `json:"endDate"`
}

// AdvertisementUpdate is the partial-update payload; nil fields are left
// untouched.
type AdvertisementUpdate struct {
	Title           *string `json:"title"`
	Description     *string `json:"description"`
	ImageURL        *string `json:"imageUrl"`
	LinkURL         *string `json:"linkUrl"`
	BackgroundColor *string `json:"backgroundColor"`
	TextColor       *string `json:"textColor"`
	Position        *string `json:"position"`
	IsActive        *bool   `json:"isActive"`
	Priority        *int    `json:"priority"`
	StartDate       *string `json:"startDate"`
	EndDate         *string `json:"endDate"`
}

// ListEligible returns ads displayable at the given placement right now:
// matching position, active, and inside their date window, highest priority
// first. Unknown positions yield an empty set, not an error.
func (s *AdvertisementService) ListEligible(position string, now time.Time) ([]db.Advertisement, error) {
	if !db.ValidPosition(position) {
		return []db.Advertisement{}, nil
	}
	return s.store.EligibleAdvertisements(position, now)
}

// ListAll returns every advertisement for the admin view.
func (s *AdvertisementService) ListAll() ([]db.Advertisement, error) {
	return s.store.Advertisements()
}

// Get returns one advertisement by id.
func (s *AdvertisementService) Get(id uint) (*db.Advertisement, error) {
	ad, err := s.store.AdvertisementByID(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrAdvertisementNotFound
		}
		return nil, err
	}
	return ad, nil
}

// TrackImpression bumps the impression counter. A missing ad is a quiet
// no-op; telemetry must never fail the caller's request.
func (s *AdvertisementService) TrackImpression(id uint) error {
	if err := s.store.AddImpression(id); err != nil && !errors.Is(err, storage.ErrNotFound) {
		return err
	}
	return nil
}

// TrackClick bumps the click counter with the same contract as impressions.
func (s *AdvertisementService) TrackClick(id uint) error {
	if err := s.store.AddClick(id); err != nil && !errors.Is(err, storage.ErrNotFound) {
		return err
	}
	return nil
}

// Create validates and stores a new advertisement, applying the defaults
// isActive=true and priority=1.
func (s *AdvertisementService) Create(input AdvertisementInput) (*db.Advertisement, error) {
	var fields fieldErrors

	title := strings.TrimSpace(input.Title)
	if title == "" {
		fields.add("title", "title is required")
	}
	validateAdURL(&fields, "imageUrl", input.ImageURL, true)
	validateAdURL(&fields, "linkUrl", input.LinkURL, true)
	validateHexColor(&fields, "backgroundColor", input.BackgroundColor)
	validateHexColor(&fields, "textColor", input.TextColor)

	if !db.ValidPosition(input.Position) {
		fields.add("position", "position must be one of: "+strings.Join(db.Positions, ", "))
	}

	priority := 1
	if input.Priority != nil {
		priority = *input.Priority
	}
	if priority < 1 || priority > 10 {
		fields.add("priority", "priority must be between 1 and 10")
	}

	startDate, err := parseAdDate(input.StartDate)
	if err != nil {
		fields.add("startDate", "invalid date")
	}
	endDate, err := parseAdDate(input.EndDate)
	if err != nil {
		fields.add("endDate", "invalid date")
	}
	if !startDate.IsZero() && !endDate.IsZero() && endDate.Before(startDate) {
		fields.add("endDate", "endDate must not be before startDate")
	}

	if err := fields.err(); err != nil {
		return nil, err
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	ad := db.Advertisement{
		Title:           title,
		Description:     strings.TrimSpace(input.Description),
		ImageURL:        input.ImageURL,
		LinkURL:         input.LinkURL,
		BackgroundColor: input.BackgroundColor,
		TextColor:       input.TextColor,
		Position:        input.Position,
		IsActive:        isActive,
		Priority:        priority,
		StartDate:       startDate,
		EndDate:         endDate,
	}
	if err := s.store.CreateAdvertisement(&ad); err != nil {
		return nil, err
	}
	return &ad, nil
}

// Update merges the provided fields into an existing advertisement and
// revalidates the result.
func (s *AdvertisementService) Update(id uint, update AdvertisementUpdate) (*db.Advertisement, error) {
	ad, err := s.store.AdvertisementByID(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrAdvertisementNotFound
		}
		return nil, err
	}

	var fields fieldErrors

	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if title == "" {
			fields.add("title", "title is required")
		}
		ad.Title = title
	}
	if update.Description != nil {
		ad.Description = strings.TrimSpace(*update.Description)
	}
	if update.ImageURL != nil {
		validateAdURL(&fields, "imageUrl", *update.ImageURL, true)
		ad.ImageURL = *update.ImageURL
	}
	if update.LinkURL != nil {
		validateAdURL(&fields, "linkUrl", *update.LinkURL, true)
		ad.LinkURL = *update.LinkURL
	}
	if update.BackgroundColor != nil {
		validateHexColor(&fields, "backgroundColor", *update.BackgroundColor)
		ad.BackgroundColor = *update.BackgroundColor
	}
	if update.TextColor != nil {
		validateHexColor(&fields, "textColor", *update.TextColor)
		ad.TextColor = *update.TextColor
	}
	if update.Position != nil {
		if !db.ValidPosition(*update.Position) {
			fields.add("position", "position must be one of: "+strings.Join(db.Positions, ", "))
		}
		ad.Position = *update.Position
	}
	if update.IsActive != nil {
		ad.IsActive = *update.IsActive
	}
	if update.Priority != nil {
		if *update.Priority < 1 || *update.Priority > 10 {
			fields.add("priority", "priority must be between 1 and 10")
		}
		ad.Priority = *update.Priority
	}
	if update.StartDate != nil {
		parsed, err := parseAdDate(*update.StartDate)
		if err != nil {
			fields.add("startDate", "invalid date")
		} else {
			ad.StartDate = parsed
		}
	}
	if update.EndDate != nil {
		parsed, err := parseAdDate(*update.EndDate)
		if err != nil {
			fields.add("endDate", "invalid date")
		} else {
			ad.EndDate = parsed
		}
	}
	if ad.EndDate.Before(ad.StartDate) {
		fields.add("endDate", "endDate must not be before startDate")
	}

	if err := fields.err(); err != nil {
		return nil, err
	}

	if err := s.store.SaveAdvertisement(ad); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrAdvertisementNotFound
		}
		return nil, err
	}
	return ad, nil
}

// Delete removes an advertisement. Deleting an unknown id surfaces not-found
// but is otherwise harmless to repeat.
func (s *AdvertisementService) Delete(id uint) error {
	if err := s.store.DeleteAdvertisement(id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrAdvertisementNotFound
		}
		return err
	}
	return nil
}

func validateHexColor(fields *fieldErrors, name, value string) {
	if value == "" {
		return
	}
	if !hexColorPattern.MatchString(value) {
		fields.add(name, "must be a hex color like #1a2b3c")
	}
}

// validateAdURL accepts absolute http(s) URLs and root-relative upload paths.
func validateAdURL(fields *fieldErrors, name, value string, required bool) {
	if value == "" {
		if required {
			fields.add(name, name+" is required")
		}
		return
	}
	if strings.HasPrefix(value, "/") {
		return
	}
	parsed, err := url.Parse(value)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		fields.add(name, "must be a valid URL")
	}
}

func parseAdDate(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, errors.New("empty date")
	}
	if parsed, err := time.Parse(time.RFC3339, trimmed); err == nil {
		return parsed, nil
	}
	return time.Parse("2006-01-02", trimmed)
}
