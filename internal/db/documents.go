package db

import (
	"time"

	"cloud.google.com/go/firestore"

	"github.com/example/carhub/internal/models"
)

// Collection names.
const (
	usersCollection      = "users"
	interestsCollection  = "interests"
	testDrivesCollection = "test_drives"
)

// Firestore field names used in queries and partial updates.
const (
	fieldUserID      = "userId"
	fieldName        = "name"
	fieldCity        = "city"
	fieldAttributes  = "attributes"
	fieldAudiences   = "audiences"
	fieldABTestGroup = "abTestGroup"
	fieldUpdatedAt   = "updatedAt"
)

type userDocument struct {
	Email       string                 `firestore:"email"`
	Name        string                 `firestore:"name"`
	City        string                 `firestore:"city"`
	Attributes  map[string]interface{} `firestore:"attributes"`
	Audiences   []string               `firestore:"audiences"`
	ABTestGroup *string                `firestore:"abTestGroup"`
	CreatedAt   time.Time              `firestore:"createdAt"`
	UpdatedAt   time.Time              `firestore:"updatedAt"`
}

type interestDocument struct {
	UserID    string    `firestore:"userId"`
	CarID     string    `firestore:"carId"`
	CarOwner  string    `firestore:"carOwner"`
	CreatedAt time.Time `firestore:"createdAt"`
}

type testDriveDocument struct {
	UserID        string    `firestore:"userId"`
	CarID         string    `firestore:"carId"`
	CarOwner      string    `firestore:"carOwner"`
	DealerID      string    `firestore:"dealerId"`
	PreferredDate time.Time `firestore:"preferredDate"`
	Status        string    `firestore:"status"`
	CreatedAt     time.Time `firestore:"createdAt"`
}

func newUserDocument(email string, fields models.UserProfileFields, now time.Time) userDocument {
	return userDocument{
		Email:       email,
		Name:        fields.Name,
		City:        fields.City,
		Attributes:  fields.Attributes,
		Audiences:   fields.Audiences,
		ABTestGroup: fields.ABTestGroup,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (d userDocument) toModel(uid string) *models.UserProfile {
	attributes := d.Attributes
	if attributes == nil {
		attributes = map[string]interface{}{}
	}
	audiences := d.Audiences
	if audiences == nil {
		audiences = []string{}
	}
	return &models.UserProfile{
		UID:         uid,
		Email:       d.Email,
		Name:        d.Name,
		City:        d.City,
		Attributes:  attributes,
		Audiences:   audiences,
		ABTestGroup: d.ABTestGroup,
		CreatedAt:   models.NewLocalDateTime(d.CreatedAt),
		UpdatedAt:   models.NewLocalDateTime(d.UpdatedAt),
	}
}

// userUpdates translates a partial profile update into Firestore field
// updates. updatedAt is always written.
func userUpdates(update models.UserProfileUpdate, now time.Time) []firestore.Update {
	var updates []firestore.Update
	if update.Name != nil {
		updates = append(updates, firestore.Update{Path: fieldName, Value: *update.Name})
	}
	if update.City != nil {
		updates = append(updates, firestore.Update{Path: fieldCity, Value: *update.City})
	}
	if update.Attributes != nil {
		updates = append(updates, firestore.Update{Path: fieldAttributes, Value: update.Attributes})
	}
	if update.Audiences != nil {
		updates = append(updates, firestore.Update{Path: fieldAudiences, Value: update.Audiences})
	}
	if update.ABTestGroup != nil {
		updates = append(updates, firestore.Update{Path: fieldABTestGroup, Value: *update.ABTestGroup})
	}
	return append(updates, firestore.Update{Path: fieldUpdatedAt, Value: now})
}

func newInterestDocument(userID string, req models.InterestRequest, now time.Time) interestDocument {
	return interestDocument{
		UserID:    userID,
		CarID:     req.CarID,
		CarOwner:  req.CarOwner,
		CreatedAt: now,
	}
}

func (d interestDocument) toModel(id string) models.Interest {
	return models.Interest{
		ID:        id,
		UserID:    d.UserID,
		CarID:     d.CarID,
		CarOwner:  d.CarOwner,
		CreatedAt: models.NewLocalDateTime(d.CreatedAt),
	}
}

func newTestDriveDocument(userID string, req models.TestDriveRequest, now time.Time) testDriveDocument {
	doc := testDriveDocument{
		UserID:    userID,
		CarID:     req.CarID,
		CarOwner:  req.CarOwner,
		DealerID:  req.DealerID,
		Status:    models.TestDriveStatusRequested,
		CreatedAt: now,
	}
	if req.PreferredDate != nil {
		doc.PreferredDate = req.PreferredDate.UTC()
	}
	return doc
}

func (d testDriveDocument) toModel(id string) models.TestDrive {
	return models.TestDrive{
		ID:            id,
		UserID:        d.UserID,
		CarID:         d.CarID,
		CarOwner:      d.CarOwner,
		DealerID:      d.DealerID,
		PreferredDate: models.NewLocalDateTime(d.PreferredDate),
		Status:        d.Status,
		CreatedAt:     models.NewLocalDateTime(d.CreatedAt),
	}
}
