package db

import (
	"context"
	"errors"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/example/carhub/internal/models"
)

type firestoreTestDriveRepository struct {
	client *firestore.Client
	now    Clock
}

// NewFirestoreTestDriveRepository creates a new instance of firestoreTestDriveRepository.
func NewFirestoreTestDriveRepository(client *firestore.Client, now Clock) TestDriveRepository {
	if client == nil {
		panic("Firestore client is not initialized for TestDriveRepository")
	}
	if now == nil {
		now = SystemClock
	}
	return &firestoreTestDriveRepository{client: client, now: now}
}

// Save adds a test drive document with an auto-generated ID and status "requested".
func (r *firestoreTestDriveRepository) Save(ctx context.Context, userID string, req models.TestDriveRequest) (*models.TestDrive, error) {
	if userID == "" {
		return nil, errors.New("userID cannot be empty for Save operation")
	}
	docRef := r.client.Collection(testDrivesCollection).NewDoc()
	doc := newTestDriveDocument(userID, req, stamp(r.now))
	if _, err := docRef.Create(ctx, doc); err != nil {
		return nil, persistenceErr("failed to save test drive", err)
	}
	testDrive := doc.toModel(docRef.ID)
	return &testDrive, nil
}

// ListByUserID returns every test drive requested by userID in no particular order.
func (r *firestoreTestDriveRepository) ListByUserID(ctx context.Context, userID string) ([]models.TestDrive, error) {
	iter := r.client.Collection(testDrivesCollection).Where(fieldUserID, "==", userID).Documents(ctx)
	defer iter.Stop()

	testDrives := []models.TestDrive{}
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, persistenceErr("failed to list test drives", err)
		}
		var doc testDriveDocument
		if err := snap.DataTo(&doc); err != nil {
			return nil, persistenceErr("failed to decode test drive", err)
		}
		testDrives = append(testDrives, doc.toModel(snap.Ref.ID))
	}
	return testDrives, nil
}
