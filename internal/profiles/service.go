package profiles

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/kamp-aid/backend/internal/models"
)

// Service applies the verification lifecycle rules on top of a Store.
// Guards run before any write; the store keeps profile and account status in
// step atomically.
type Service struct {
	store Store
	// clearReasonOnReactivate makes reactivation wipe the stored ban/suspend
	// reason instead of keeping it as history.
	clearReasonOnReactivate bool
}

// NewService creates a profile lifecycle service.
func NewService(store Store, clearReasonOnReactivate bool) *Service {
	return &Service{store: store, clearReasonOnReactivate: clearReasonOnReactivate}
}

// Store exposes the underlying store for read paths.
func (s *Service) Store() Store { return s.store }

// SetStatus moves a profile to a directly-settable verification status and
// mirrors it onto the owning account. Restriction states are rejected here;
// they go through ApplyRestriction and its guard.
func (s *Service) SetStatus(ctx context.Context, id uuid.UUID, rawStatus string) (*models.ProfileWithUser, error) {
	status, err := ParseStatus(rawStatus)
	if err != nil {
		return nil, err
	}
	if !status.DirectlySettable() {
		return nil, ErrUnknownStatus
	}
	var reason *string
	if status == StatusVerified && s.clearReasonOnReactivate {
		empty := ""
		reason = &empty
	}
	return s.store.SetStatus(ctx, id, status, reason)
}

// ApplyRestriction bans or suspends a profile. Only verified profiles can be
// restricted; any other current status fails without a write.
func (s *Service) ApplyRestriction(ctx context.Context, id uuid.UUID, rawAction, reason string) (*models.ProfileWithUser, error) {
	action, err := ParseAction(rawAction)
	if err != nil {
		return nil, err
	}
	current, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if Status(current.SetupStatus) != StatusVerified {
		return nil, ErrNotVerified
	}
	return s.store.SetStatus(ctx, id, action.Status(), &reason)
}

// Delete removes a profile together with its owning account.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.store.Delete(ctx, id)
}

// UpdateDetails applies setup form fields for the user's profile. When
// finalize is set the profile moves to under_review, provided the required
// details are present.
func (s *Service) UpdateDetails(ctx context.Context, userID uuid.UUID, kind models.ProfileKind, upd DetailsUpdate, finalize bool) (*models.Profile, error) {
	p, err := s.store.UpdateDetails(ctx, userID, kind, upd)
	if err != nil {
		return nil, err
	}
	if !finalize {
		return p, nil
	}
	if strings.TrimSpace(p.Phone) == "" {
		return nil, ErrIncomplete
	}
	if kind == models.KindOrganization && strings.TrimSpace(p.Category) == "" {
		return nil, ErrIncomplete
	}
	pw, err := s.store.SetStatus(ctx, p.ID, StatusUnderReview, nil)
	if err != nil {
		return nil, err
	}
	return &pw.Profile, nil
}

// CreateForRegistration creates the role profile for a newly registered
// account. Organizations default to category Other, supporters to interest
// Donating; both start in details_pending.
func (s *Service) CreateForRegistration(ctx context.Context, userID uuid.UUID, userType models.UserType, category, description, phone, interest string) (*models.Profile, error) {
	p := &models.Profile{
		UserID:      userID,
		Phone:       phone,
		SetupStatus: string(StatusDetailsPending),
	}
	switch userType {
	case models.TypeOrganization:
		p.Kind = models.KindOrganization
		p.Category = category
		if p.Category == "" {
			p.Category = "Other"
		}
		p.Description = description
	case models.TypeIndividual:
		p.Kind = models.KindIndividual
		p.Interest = interest
		if p.Interest == "" {
			p.Interest = "Donating"
		}
	}
	if err := s.store.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
