package profiles

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/kamp-aid/backend/internal/models"
)

type ServiceSuite struct {
	suite.Suite
	store   *MemoryStore
	service *Service
	ctx     context.Context
}

func (s *ServiceSuite) SetupTest() {
	s.store = NewMemoryStore()
	s.service = NewService(s.store, false)
	s.ctx = context.Background()
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

// seedProfile creates a user and its profile in the given status.
func (s *ServiceSuite) seedProfile(kind models.ProfileKind, status Status) *models.Profile {
	u := &models.User{
		Name:          "Water4Life Uganda",
		Email:         uuid.NewString() + "@example.com",
		Type:          models.TypeOrganization,
		SetupStatus:   string(status),
		AccountStatus: string(status),
	}
	if kind == models.KindIndividual {
		u.Type = models.TypeIndividual
	}
	s.store.SeedUser(u)
	p := &models.Profile{
		UserID:      u.ID,
		Kind:        kind,
		Phone:       "+256700000000",
		Category:    "Water & Sanitation",
		SetupStatus: string(status),
	}
	s.Require().NoError(s.store.Create(s.ctx, p))
	return p
}

func (s *ServiceSuite) TestSetStatusMovesThroughReviewPipeline() {
	p := s.seedProfile(models.KindOrganization, StatusDetailsPending)

	for _, status := range []string{"under_review", "verified", "rejected", "details_pending"} {
		got, err := s.service.SetStatus(s.ctx, p.ID, status)
		s.Require().NoError(err)
		s.Equal(status, got.SetupStatus)
	}
}

func (s *ServiceSuite) TestSetStatusMirrorsOntoAccount() {
	p := s.seedProfile(models.KindOrganization, StatusDetailsPending)

	got, err := s.service.SetStatus(s.ctx, p.ID, "verified")
	s.Require().NoError(err)

	s.Equal("verified", got.SetupStatus)
	u := s.store.GetUser(p.UserID)
	s.Require().NotNil(u)
	s.Equal("verified", u.SetupStatus)
	s.Equal("verified", u.AccountStatus)
}

func (s *ServiceSuite) TestSetStatusRejectsUnknownAndRestrictionStates() {
	p := s.seedProfile(models.KindOrganization, StatusVerified)

	for _, status := range []string{"bogus", "", "banned", "suspended"} {
		_, err := s.service.SetStatus(s.ctx, p.ID, status)
		s.Require().ErrorIs(err, ErrUnknownStatus, status)
	}

	// no write happened
	got, err := s.store.GetByID(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal("verified", got.SetupStatus)
}

func (s *ServiceSuite) TestRestrictionRequiresVerified() {
	for _, status := range []Status{StatusDetailsPending, StatusUnderReview, StatusRejected} {
		p := s.seedProfile(models.KindOrganization, status)

		_, err := s.service.ApplyRestriction(s.ctx, p.ID, "ban", "fraudulent listings")
		s.Require().ErrorIs(err, ErrNotVerified, string(status))

		got, getErr := s.store.GetByID(s.ctx, p.ID)
		s.Require().NoError(getErr)
		s.Equal(string(status), got.SetupStatus)
		s.Empty(got.ActionReason)
	}
}

func (s *ServiceSuite) TestRestrictionBansVerifiedProfile() {
	p := s.seedProfile(models.KindIndividual, StatusVerified)

	got, err := s.service.ApplyRestriction(s.ctx, p.ID, "suspend", "policy violation")
	s.Require().NoError(err)

	s.Equal("suspended", got.SetupStatus)
	s.Equal("policy violation", got.ActionReason)

	u := s.store.GetUser(p.UserID)
	s.Require().NotNil(u)
	s.Equal("suspended", u.SetupStatus)
	s.Equal("suspended", u.AccountStatus)
}

func (s *ServiceSuite) TestRestrictionRejectsUnknownAction() {
	p := s.seedProfile(models.KindOrganization, StatusVerified)

	_, err := s.service.ApplyRestriction(s.ctx, p.ID, "delete", "")
	s.Require().ErrorIs(err, ErrUnknownAction)
}

func (s *ServiceSuite) TestRestrictionOfBannedProfileFails() {
	p := s.seedProfile(models.KindOrganization, StatusVerified)

	_, err := s.service.ApplyRestriction(s.ctx, p.ID, "ban", "first strike")
	s.Require().NoError(err)

	// already banned, no longer verified
	_, err = s.service.ApplyRestriction(s.ctx, p.ID, "suspend", "second strike")
	s.Require().ErrorIs(err, ErrNotVerified)

	got, err := s.store.GetByID(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal("banned", got.SetupStatus)
	s.Equal("first strike", got.ActionReason)
}

func (s *ServiceSuite) TestReactivationKeepsReasonByDefault() {
	p := s.seedProfile(models.KindOrganization, StatusVerified)

	_, err := s.service.ApplyRestriction(s.ctx, p.ID, "ban", "fraudulent listings")
	s.Require().NoError(err)

	got, err := s.service.SetStatus(s.ctx, p.ID, "verified")
	s.Require().NoError(err)
	s.Equal("verified", got.SetupStatus)
	s.Equal("fraudulent listings", got.ActionReason)
}

func (s *ServiceSuite) TestReactivationClearsReasonWhenConfigured() {
	service := NewService(s.store, true)
	p := s.seedProfile(models.KindOrganization, StatusVerified)

	_, err := service.ApplyRestriction(s.ctx, p.ID, "ban", "fraudulent listings")
	s.Require().NoError(err)

	got, err := service.SetStatus(s.ctx, p.ID, "verified")
	s.Require().NoError(err)
	s.Equal("verified", got.SetupStatus)
	s.Empty(got.ActionReason)
}

func (s *ServiceSuite) TestSetStatusUnknownProfile() {
	_, err := s.service.SetStatus(s.ctx, uuid.New(), "verified")
	s.Require().ErrorIs(err, ErrNotFound)
}

func (s *ServiceSuite) TestDeleteRemovesProfileAndAccount() {
	p := s.seedProfile(models.KindOrganization, StatusVerified)

	s.Require().NoError(s.service.Delete(s.ctx, p.ID))

	_, err := s.store.GetByID(s.ctx, p.ID)
	s.Require().ErrorIs(err, ErrNotFound)
	s.Nil(s.store.GetUser(p.UserID))
}

func (s *ServiceSuite) TestDeleteUnknownProfile() {
	s.Require().ErrorIs(s.service.Delete(s.ctx, uuid.New()), ErrNotFound)
}

func (s *ServiceSuite) TestFinalizeRequiresPhone() {
	p := s.seedProfile(models.KindIndividual, StatusDetailsPending)
	empty := ""
	_, err := s.store.UpdateDetails(s.ctx, p.UserID, models.KindIndividual, DetailsUpdate{Phone: &empty})
	s.Require().NoError(err)

	_, err = s.service.UpdateDetails(s.ctx, p.UserID, models.KindIndividual, DetailsUpdate{}, true)
	s.Require().ErrorIs(err, ErrIncomplete)
}

func (s *ServiceSuite) TestFinalizeRequiresCategoryForOrganizations() {
	p := s.seedProfile(models.KindOrganization, StatusDetailsPending)
	empty := ""
	_, err := s.store.UpdateDetails(s.ctx, p.UserID, models.KindOrganization, DetailsUpdate{Category: &empty})
	s.Require().NoError(err)

	_, err = s.service.UpdateDetails(s.ctx, p.UserID, models.KindOrganization, DetailsUpdate{}, true)
	s.Require().ErrorIs(err, ErrIncomplete)
}

func (s *ServiceSuite) TestFinalizeMovesToUnderReview() {
	p := s.seedProfile(models.KindOrganization, StatusDetailsPending)
	desc := "Clean water access for pastoralist communities"

	got, err := s.service.UpdateDetails(s.ctx, p.UserID, models.KindOrganization, DetailsUpdate{Description: &desc}, true)
	s.Require().NoError(err)

	s.Equal("under_review", got.SetupStatus)
	u := s.store.GetUser(p.UserID)
	s.Require().NotNil(u)
	s.Equal("under_review", u.SetupStatus)
}

func (s *ServiceSuite) TestUpdateWithoutFinalizeKeepsStatus() {
	p := s.seedProfile(models.KindOrganization, StatusDetailsPending)
	site := "https://water4life.ug"

	got, err := s.service.UpdateDetails(s.ctx, p.UserID, models.KindOrganization, DetailsUpdate{Website: &site}, false)
	s.Require().NoError(err)

	s.Equal(site, got.Website)
	s.Equal("details_pending", got.SetupStatus)
}

func (s *ServiceSuite) TestRegistrationProfileDefaults() {
	orgUser := &models.User{Name: "Green Uganda", Email: "green@example.com", Type: models.TypeOrganization}
	s.store.SeedUser(orgUser)
	org, err := s.service.CreateForRegistration(s.ctx, orgUser.ID, models.TypeOrganization, "", "", "+256700000001", "")
	s.Require().NoError(err)
	s.Equal(models.KindOrganization, org.Kind)
	s.Equal("Other", org.Category)
	s.Equal("details_pending", org.SetupStatus)

	indUser := &models.User{Name: "Okello James", Email: "okello@example.com", Type: models.TypeIndividual}
	s.store.SeedUser(indUser)
	ind, err := s.service.CreateForRegistration(s.ctx, indUser.ID, models.TypeIndividual, "", "", "", "")
	s.Require().NoError(err)
	s.Equal(models.KindIndividual, ind.Kind)
	s.Equal("Donating", ind.Interest)
	s.Equal("details_pending", ind.SetupStatus)
}
