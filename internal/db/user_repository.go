package db

import (
	"context"
	"errors"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/example/carhub/internal/models"
)

// firestoreUserRepository implements the UserRepository interface using Firestore.
type firestoreUserRepository struct {
	client *firestore.Client
	now    Clock
}

// NewFirestoreUserRepository creates a new instance of firestoreUserRepository.
// A nil clock falls back to SystemClock.
func NewFirestoreUserRepository(client *firestore.Client, now Clock) UserRepository {
	if client == nil {
		panic("Firestore client is not initialized for UserRepository")
	}
	if now == nil {
		now = SystemClock
	}
	return &firestoreUserRepository{client: client, now: now}
}

// Save writes the full profile document, replacing any previous content.
// createdAt and updatedAt are both set to the current time.
func (r *firestoreUserRepository) Save(ctx context.Context, uid, email string, fields models.UserProfileFields) (*models.UserProfile, error) {
	if uid == "" {
		return nil, errors.New("uid cannot be empty for Save operation")
	}
	doc := newUserDocument(email, fields, stamp(r.now))
	if _, err := r.client.Collection(usersCollection).Doc(uid).Set(ctx, doc); err != nil {
		return nil, persistenceErr("failed to save user", err)
	}
	return doc.toModel(uid), nil
}

// Get retrieves the profile stored under uid.
func (r *firestoreUserRepository) Get(ctx context.Context, uid string) (*models.UserProfile, error) {
	snap, err := r.getSnapshot(ctx, uid, "failed to get user")
	if err != nil {
		return nil, err
	}
	var doc userDocument
	if err := snap.DataTo(&doc); err != nil {
		return nil, persistenceErr("failed to decode user", err)
	}
	return doc.toModel(snap.Ref.ID), nil
}

// Update checks that the profile exists, writes the present fields plus
// updatedAt, and reads the document back.
func (r *firestoreUserRepository) Update(ctx context.Context, uid string, update models.UserProfileUpdate) (*models.UserProfile, error) {
	if _, err := r.getSnapshot(ctx, uid, "failed to update user"); err != nil {
		return nil, err
	}
	ref := r.client.Collection(usersCollection).Doc(uid)
	if _, err := ref.Update(ctx, userUpdates(update, stamp(r.now))); err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, &NotFoundError{Resource: "User", ID: uid}
		}
		return nil, persistenceErr("failed to update user", err)
	}
	return r.Get(ctx, uid)
}

func (r *firestoreUserRepository) getSnapshot(ctx context.Context, uid, op string) (*firestore.DocumentSnapshot, error) {
	if uid == "" {
		return nil, &NotFoundError{Resource: "User", ID: uid}
	}
	snap, err := r.client.Collection(usersCollection).Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, &NotFoundError{Resource: "User", ID: uid}
		}
		return nil, persistenceErr(op, err)
	}
	if !snap.Exists() {
		return nil, &NotFoundError{Resource: "User", ID: uid}
	}
	return snap, nil
}
