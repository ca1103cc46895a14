package firebase

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/example/carhub/internal/config"
)

// Clients bundles the Firebase service clients used by the application.
// They are created once at startup and passed explicitly to their consumers.
type Clients struct {
	Firestore *firestore.Client
	Auth      *auth.Client
}

// Close releases the Firestore connection.
func (c *Clients) Close() error {
	if c == nil || c.Firestore == nil {
		return nil
	}
	return c.Firestore.Close()
}

// credentialsOption picks the credentials source from the config.
// A nil option means Application Default Credentials.
func credentialsOption(appConfig *config.Config, logger *zap.Logger) (option.ClientOption, error) {
	switch {
	case appConfig.GoogleApplicationCredentials != "":
		path := appConfig.GoogleApplicationCredentials
		if _, err := os.Stat(path); os.IsNotExist(err) {
			logger.Warn("Credentials file does not exist", zap.String("path", path))
		}
		logger.Info("Initializing Firebase with credentials file", zap.String("path", path))
		return option.WithCredentialsFile(path), nil
	case appConfig.FirebaseServiceAccountJSONBase64 != "":
		jsonKey, err := base64.StdEncoding.DecodeString(appConfig.FirebaseServiceAccountJSONBase64)
		if err != nil {
			return nil, fmt.Errorf("FIREBASE_SERVICE_ACCOUNT_JSON_BASE64 is not valid base64: %w", err)
		}
		logger.Info("Initializing Firebase with base64 encoded service account JSON")
		return option.WithCredentialsJSON(jsonKey), nil
	default:
		logger.Info("Initializing Firebase using Application Default Credentials")
		return nil, nil
	}
}

// InitFirebase initializes the Firebase Admin SDK and returns the Firestore and
// Auth clients.
func InitFirebase(ctx context.Context, appConfig *config.Config, logger *zap.Logger) (*Clients, error) {
	if appConfig == nil {
		return nil, fmt.Errorf("InitFirebase: appConfig cannot be nil")
	}

	credsOption, err := credentialsOption(appConfig, logger)
	if err != nil {
		return nil, err
	}

	conf := &firebase.Config{ProjectID: appConfig.FirebaseProjectID}
	var opts []option.ClientOption
	if credsOption != nil {
		opts = append(opts, credsOption)
	}

	app, err := firebase.NewApp(ctx, conf, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase.NewApp: %w", err)
	}

	fsClient, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("app.Firestore: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		fsClient.Close()
		return nil, fmt.Errorf("app.Auth: %w", err)
	}

	logger.Info("Firebase Admin SDK initialized", zap.String("projectID", appConfig.FirebaseProjectID))
	return &Clients{Firestore: fsClient, Auth: authClient}, nil
}
