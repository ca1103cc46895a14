package db

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/carhub/internal/models"
)

func strPtr(s string) *string { return &s }

func TestUserUpdates_OnlyPresentFields(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	updates := userUpdates(models.UserProfileUpdate{Name: strPtr("Alex")}, now)

	assert.Equal(t, []firestore.Update{
		{Path: "name", Value: "Alex"},
		{Path: "updatedAt", Value: now},
	}, updates)
}

func TestUserUpdates_AllFields(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	update := models.UserProfileUpdate{
		Name:        strPtr("Alex"),
		City:        strPtr("Berlin"),
		Attributes:  map[string]interface{}{"budget": "high"},
		Audiences:   []string{},
		ABTestGroup: strPtr("B"),
	}

	updates := userUpdates(update, now)

	paths := make([]string, 0, len(updates))
	for _, u := range updates {
		paths = append(paths, u.Path)
	}
	assert.Equal(t, []string{"name", "city", "attributes", "audiences", "abTestGroup", "updatedAt"}, paths)
	assert.Equal(t, "B", updates[4].Value)
}

func TestUserDocument_ToModelFillsEmptyCollections(t *testing.T) {
	created := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	doc := userDocument{Email: "a@example.com", CreatedAt: created, UpdatedAt: created}

	profile := doc.toModel("u1")

	assert.Equal(t, "u1", profile.UID)
	assert.Equal(t, "a@example.com", profile.Email)
	assert.NotNil(t, profile.Attributes)
	assert.NotNil(t, profile.Audiences)
	assert.Nil(t, profile.ABTestGroup)
	assert.True(t, created.Equal(profile.CreatedAt.Time))
}

func TestNewUserDocument_DefaultProfile(t *testing.T) {
	now := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	doc := newUserDocument("a@example.com", models.DefaultUserProfileFields(), now)

	assert.Equal(t, "", doc.Name)
	assert.Equal(t, "", doc.City)
	assert.Empty(t, doc.Attributes)
	assert.NotNil(t, doc.Attributes)
	assert.Empty(t, doc.Audiences)
	assert.Nil(t, doc.ABTestGroup)
	assert.Equal(t, now, doc.CreatedAt)
	assert.Equal(t, now, doc.UpdatedAt)
}

func TestNewTestDriveDocument(t *testing.T) {
	now := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	preferred := models.NewLocalDateTime(time.Date(2024, 6, 1, 14, 30, 0, 0, time.Local))
	req := models.TestDriveRequest{CarID: "c1", CarOwner: "o1", DealerID: "d1", PreferredDate: &preferred}

	doc := newTestDriveDocument("u1", req, now)

	assert.Equal(t, models.TestDriveStatusRequested, doc.Status)
	assert.Equal(t, time.UTC, doc.PreferredDate.Location())
	assert.True(t, preferred.Equal(doc.PreferredDate))

	model := doc.toModel("td1")
	assert.Equal(t, "td1", model.ID)
	assert.Equal(t, "u1", model.UserID)
	assert.Equal(t, preferred.String(), model.PreferredDate.String())
}

func TestInterestDocument_ToModel(t *testing.T) {
	now := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	doc := newInterestDocument("u1", models.InterestRequest{CarID: "c1", CarOwner: "o1"}, now)

	model := doc.toModel("i1")

	assert.Equal(t, models.Interest{
		ID:        "i1",
		UserID:    "u1",
		CarID:     "c1",
		CarOwner:  "o1",
		CreatedAt: models.NewLocalDateTime(now),
	}, model)
}

func TestErrorKinds(t *testing.T) {
	notFound := fmt.Errorf("lookup: %w", &NotFoundError{Resource: "User", ID: "u1"})
	assert.True(t, errors.Is(notFound, ErrNotFound))
	assert.False(t, errors.Is(notFound, ErrPersistence))
	assert.Equal(t, "lookup: User not found: u1", notFound.Error())

	persistence := persistenceErr("failed to get user", context.DeadlineExceeded)
	assert.True(t, errors.Is(persistence, ErrPersistence))
	assert.True(t, errors.Is(persistence, context.DeadlineExceeded))
	assert.False(t, errors.Is(persistence, ErrNotFound))

	var pe *PersistenceError
	require.True(t, errors.As(persistence, &pe))
	assert.Equal(t, "failed to get user", pe.Op)
}

func TestStampTruncatesToMicroseconds(t *testing.T) {
	clock := func() time.Time { return time.Date(2024, 5, 1, 8, 0, 0, 123456789, time.UTC) }
	assert.Equal(t, 123456000, stamp(clock).Nanosecond())
}
