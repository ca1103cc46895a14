// Package dbtest provides in-memory implementations of the db repositories
// for tests.
package dbtest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/example/carhub/internal/db"
	"github.com/example/carhub/internal/models"
)

// Clock returns a deterministic clock advancing one second per call.
func Clock(start time.Time) db.Clock {
	var mu sync.Mutex
	current := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t := current
		current = current.Add(time.Second)
		return t
	}
}

// UserRepository stores profiles in a map. A non-nil Err is returned from
// every call.
type UserRepository struct {
	mu       sync.Mutex
	Now      db.Clock
	Err      error
	Profiles map[string]models.UserProfile
	Saves    int
}

var _ db.UserRepository = (*UserRepository)(nil)

func NewUserRepository(now db.Clock) *UserRepository {
	return &UserRepository{Now: now, Profiles: map[string]models.UserProfile{}}
}

func (r *UserRepository) Save(_ context.Context, uid, email string, fields models.UserProfileFields) (*models.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	now := models.NewLocalDateTime(r.Now())
	profile := models.UserProfile{
		UID:         uid,
		Email:       email,
		Name:        fields.Name,
		City:        fields.City,
		Attributes:  fields.Attributes,
		Audiences:   fields.Audiences,
		ABTestGroup: fields.ABTestGroup,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.Profiles[uid] = profile
	r.Saves++
	return &profile, nil
}

func (r *UserRepository) Get(_ context.Context, uid string) (*models.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	profile, ok := r.Profiles[uid]
	if !ok {
		return nil, &db.NotFoundError{Resource: "User", ID: uid}
	}
	return &profile, nil
}

func (r *UserRepository) Update(_ context.Context, uid string, update models.UserProfileUpdate) (*models.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	profile, ok := r.Profiles[uid]
	if !ok {
		return nil, &db.NotFoundError{Resource: "User", ID: uid}
	}
	if update.Name != nil {
		profile.Name = *update.Name
	}
	if update.City != nil {
		profile.City = *update.City
	}
	if update.Attributes != nil {
		profile.Attributes = update.Attributes
	}
	if update.Audiences != nil {
		profile.Audiences = update.Audiences
	}
	if update.ABTestGroup != nil {
		group := *update.ABTestGroup
		profile.ABTestGroup = &group
	}
	profile.UpdatedAt = models.NewLocalDateTime(r.Now())
	r.Profiles[uid] = profile
	return &profile, nil
}

// InterestRepository stores interests in insertion order.
type InterestRepository struct {
	mu        sync.Mutex
	Now       db.Clock
	Err       error
	Interests []models.Interest
}

var _ db.InterestRepository = (*InterestRepository)(nil)

func NewInterestRepository(now db.Clock) *InterestRepository {
	return &InterestRepository{Now: now}
}

func (r *InterestRepository) Save(_ context.Context, userID string, req models.InterestRequest) (*models.Interest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	interest := models.Interest{
		ID:        fmt.Sprintf("interest-%d", len(r.Interests)+1),
		UserID:    userID,
		CarID:     req.CarID,
		CarOwner:  req.CarOwner,
		CreatedAt: models.NewLocalDateTime(r.Now()),
	}
	r.Interests = append(r.Interests, interest)
	return &interest, nil
}

func (r *InterestRepository) ListByUserID(_ context.Context, userID string) ([]models.Interest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := []models.Interest{}
	for _, interest := range r.Interests {
		if interest.UserID == userID {
			out = append(out, interest)
		}
	}
	return out, nil
}

// TestDriveRepository stores test drives in insertion order.
type TestDriveRepository struct {
	mu         sync.Mutex
	Now        db.Clock
	Err        error
	TestDrives []models.TestDrive
}

var _ db.TestDriveRepository = (*TestDriveRepository)(nil)

func NewTestDriveRepository(now db.Clock) *TestDriveRepository {
	return &TestDriveRepository{Now: now}
}

func (r *TestDriveRepository) Save(_ context.Context, userID string, req models.TestDriveRequest) (*models.TestDrive, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	testDrive := models.TestDrive{
		ID:        fmt.Sprintf("test-drive-%d", len(r.TestDrives)+1),
		UserID:    userID,
		CarID:     req.CarID,
		CarOwner:  req.CarOwner,
		DealerID:  req.DealerID,
		Status:    models.TestDriveStatusRequested,
		CreatedAt: models.NewLocalDateTime(r.Now()),
	}
	if req.PreferredDate != nil {
		testDrive.PreferredDate = *req.PreferredDate
	}
	r.TestDrives = append(r.TestDrives, testDrive)
	return &testDrive, nil
}

func (r *TestDriveRepository) ListByUserID(_ context.Context, userID string) ([]models.TestDrive, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := []models.TestDrive{}
	for _, testDrive := range r.TestDrives {
		if testDrive.UserID == userID {
			out = append(out, testDrive)
		}
	}
	return out, nil
}
