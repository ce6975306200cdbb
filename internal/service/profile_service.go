package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/api/request"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/model"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/repository"
)

// ProfileService handles profile-related business logic operations.
type ProfileService struct {
	profileRepo *repository.ProfileRepository
}

// NewProfileService creates a new ProfileService with the provided repository dependencies.
func NewProfileService(profileRepo *repository.ProfileRepository) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
	}
}

// CreateProfile creates a new profile for an external identity. The user id
// and email carry unique constraints; a collision surfaces as a duplicate
// profile error.
func (s *ProfileService) CreateProfile(ctx context.Context, req request.CreateProfileRequest) (*model.Profile, error) {
	profile := &model.Profile{
		ID:        uuid.New().String(),
		UserID:    req.UserID,
		Email:     req.Email,
		Role:      req.Role,
		Name:      req.Name,
		ImageURL:  req.ImageURL,
		Firm:      req.Firm,
		Bio:       req.Bio,
		CreatedAt: time.Now(),
	}

	if err := s.profileRepo.InsertProfile(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

// GetProfile retrieves a profile by its ID.
func (s *ProfileService) GetProfile(profileID string) (model.Profile, error) {
	return s.profileRepo.GetProfileOnID(profileID)
}

// GetProfileByUserID retrieves a profile by the external identity string.
func (s *ProfileService) GetProfileByUserID(userID string) (model.Profile, error) {
	return s.profileRepo.GetProfileOnUserID(userID)
}

// UpdateProfile applies the provided fields to an existing profile.
func (s *ProfileService) UpdateProfile(ctx context.Context, profileID string, req request.UpdateProfileRequest) (*model.Profile, error) {
	profile, err := s.profileRepo.GetProfileOnID(profileID)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		profile.Email = *req.Email
	}
	if req.Name != nil {
		profile.Name = *req.Name
	}
	if req.ImageURL != nil {
		profile.ImageURL = *req.ImageURL
	}
	if req.Firm != nil {
		profile.Firm = *req.Firm
	}
	if req.Bio != nil {
		profile.Bio = *req.Bio
	}

	if err := s.profileRepo.UpdateProfile(ctx, &profile); err != nil {
		return nil, err
	}

	return &profile, nil
}
