package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/api/request"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/apperrors"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/model"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/testutil"
)

// TestProfileService_CreateProfile tests profile creation and the unique
// identity constraints.
func TestProfileService_CreateProfile(t *testing.T) {
	t.Run("creates a profile for an external identity", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestProfileService(t, db)

		profile, err := svc.CreateProfile(context.Background(), request.CreateProfileRequest{
			UserID: "auth0|abc123",
			Email:  "ada@example.com",
			Role:   model.RoleInvestor,
			Name:   "Ada Investor",
		})
		if err != nil {
			t.Fatalf("CreateProfile() returned unexpected error: %v", err)
		}

		if profile.ID == "" {
			t.Error("Expected generated profile ID")
		}
		if profile.Role != model.RoleInvestor {
			t.Errorf("Expected role investor, got %s", profile.Role)
		}
	})

	t.Run("rejects duplicate user id", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestProfileService(t, db)

		existing := testutil.NewProfile().WithUserID("auth0|taken").Build(t, db)

		_, err := svc.CreateProfile(context.Background(), request.CreateProfileRequest{
			UserID: existing.UserID,
			Email:  "fresh@example.com",
			Role:   model.RoleInvestor,
			Name:   "Second Account",
		})
		if !errors.Is(err, apperrors.ErrDuplicateProfile) {
			t.Fatalf("Expected ErrDuplicateProfile, got %v", err)
		}
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestProfileService(t, db)

		existing := testutil.NewProfile().WithEmail("taken@example.com").Build(t, db)

		_, err := svc.CreateProfile(context.Background(), request.CreateProfileRequest{
			UserID: "auth0|different",
			Email:  existing.Email,
			Role:   model.RolePitcher,
			Name:   "Second Account",
		})
		if !errors.Is(err, apperrors.ErrDuplicateProfile) {
			t.Fatalf("Expected ErrDuplicateProfile, got %v", err)
		}
	})
}

// TestProfileService_GetProfileByUserID tests lookup by external identity.
func TestProfileService_GetProfileByUserID(t *testing.T) {
	t.Run("resolves the external identity", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestProfileService(t, db)

		created := testutil.NewProfile().WithUserID("auth0|lookup").Build(t, db)

		profile, err := svc.GetProfileByUserID("auth0|lookup")
		if err != nil {
			t.Fatalf("GetProfileByUserID() returned unexpected error: %v", err)
		}
		if profile.ID != created.ID {
			t.Errorf("Expected profile %s, got %s", created.ID, profile.ID)
		}
	})

	t.Run("returns not found for unknown identity", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestProfileService(t, db)

		if _, err := svc.GetProfileByUserID("auth0|nobody"); !errors.Is(err, apperrors.ErrProfileNotFound) {
			t.Fatalf("Expected ErrProfileNotFound, got %v", err)
		}
	})
}

// TestProfileService_UpdateProfile tests partial updates.
func TestProfileService_UpdateProfile(t *testing.T) {
	t.Run("applies only the provided fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestProfileService(t, db)

		created := testutil.NewProfile().WithName("Before Update").Build(t, db)

		newName := "After Update"
		newBio := "Angel investor"
		updated, err := svc.UpdateProfile(context.Background(), created.ID, request.UpdateProfileRequest{
			Name: &newName,
			Bio:  &newBio,
		})
		if err != nil {
			t.Fatalf("UpdateProfile() returned unexpected error: %v", err)
		}

		if updated.Name != newName {
			t.Errorf("Expected name %q, got %q", newName, updated.Name)
		}
		if updated.Bio != newBio {
			t.Errorf("Expected bio %q, got %q", newBio, updated.Bio)
		}
		if updated.Email != created.Email {
			t.Errorf("Expected email untouched, got %q", updated.Email)
		}
	})
}
