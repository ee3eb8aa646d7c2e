package firebase

import (
	"context"
	"encoding/base64"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// DecodeServiceKey turns the base64 service-account blob from the
// environment into the JSON credentials it encodes.
func DecodeServiceKey(encoded string) ([]byte, error) {
	if encoded == "" {
		return nil, fmt.Errorf("firebase service key is empty")
	}
	jsonKey, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("firebase service key is not valid base64: %w", err)
	}
	return jsonKey, nil
}

// NewAuthClient initializes the Firebase Admin SDK from a base64 encoded
// service-account key and returns its Auth client. projectID may be empty,
// in which case the project from the key is used.
func NewAuthClient(ctx context.Context, serviceKey, projectID string) (*auth.Client, error) {
	jsonKey, err := DecodeServiceKey(serviceKey)
	if err != nil {
		return nil, err
	}

	var conf *firebase.Config
	if projectID != "" {
		conf = &firebase.Config{ProjectID: projectID}
	}

	app, err := firebase.NewApp(ctx, conf, option.WithCredentialsJSON(jsonKey))
	if err != nil {
		return nil, fmt.Errorf("initializing Firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting Firebase Auth client: %w", err)
	}
	return client, nil
}
