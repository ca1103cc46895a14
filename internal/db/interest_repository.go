package db

import (
	"context"
	"errors"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/example/carhub/internal/models"
)

type firestoreInterestRepository struct {
	client *firestore.Client
	now    Clock
}

// NewFirestoreInterestRepository creates a new instance of firestoreInterestRepository.
func NewFirestoreInterestRepository(client *firestore.Client, now Clock) InterestRepository {
	if client == nil {
		panic("Firestore client is not initialized for InterestRepository")
	}
	if now == nil {
		now = SystemClock
	}
	return &firestoreInterestRepository{client: client, now: now}
}

// Save adds an interest document with an auto-generated ID.
func (r *firestoreInterestRepository) Save(ctx context.Context, userID string, req models.InterestRequest) (*models.Interest, error) {
	if userID == "" {
		return nil, errors.New("userID cannot be empty for Save operation")
	}
	docRef := r.client.Collection(interestsCollection).NewDoc()
	doc := newInterestDocument(userID, req, stamp(r.now))
	if _, err := docRef.Create(ctx, doc); err != nil {
		return nil, persistenceErr("failed to save interest", err)
	}
	interest := doc.toModel(docRef.ID)
	return &interest, nil
}

// ListByUserID returns every interest owned by userID in no particular order.
func (r *firestoreInterestRepository) ListByUserID(ctx context.Context, userID string) ([]models.Interest, error) {
	iter := r.client.Collection(interestsCollection).Where(fieldUserID, "==", userID).Documents(ctx)
	defer iter.Stop()

	interests := []models.Interest{}
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, persistenceErr("failed to list interests", err)
		}
		var doc interestDocument
		if err := snap.DataTo(&doc); err != nil {
			return nil, persistenceErr("failed to decode interest", err)
		}
		interests = append(interests, doc.toModel(snap.Ref.ID))
	}
	return interests, nil
}
