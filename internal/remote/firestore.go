package remote

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/triplogapp/triplog-server/internal/config"
	apperrors "github.com/triplogapp/triplog-server/internal/errors"
)

// FirestoreClient implements Client against Cloud Firestore.
type FirestoreClient struct {
	client    *firestore.Client
	projectID string
}

// NewFirestoreClient initializes the Firebase app and opens a Firestore
// client for the configured project.
func NewFirestoreClient(ctx context.Context, cfg config.FirebaseConfig) (*FirestoreClient, error) {
	var opts []option.ClientOption
	switch {
	case cfg.CredentialsJSON != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	case cfg.CredentialsFile != "":
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("initialize firebase app: %w", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("open firestore client: %w", err)
	}

	return &FirestoreClient{client: client, projectID: cfg.ProjectID}, nil
}

// ProjectID returns the Firebase project this client talks to.
func (c *FirestoreClient) ProjectID() string {
	return c.projectID
}

// Set writes the document at path, overwriting any existing document.
func (c *FirestoreClient) Set(ctx context.Context, path string, data map[string]any) error {
	_, err := c.client.Doc(path).Set(ctx, data)
	return c.wrap("write", path, err)
}

// Delete removes the document at path. Firestore treats deleting a missing
// document as success, which matches the Client contract.
func (c *FirestoreClient) Delete(ctx context.Context, path string) error {
	_, err := c.client.Doc(path).Delete(ctx)
	return c.wrap("delete", path, err)
}

// List returns every document directly inside the collection at path.
func (c *FirestoreClient) List(ctx context.Context, path string) ([]Document, error) {
	iter := c.client.Collection(path).Documents(ctx)
	defer iter.Stop()

	var docs []Document
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, c.wrap("list", path, err)
		}
		docs = append(docs, Document{ID: snap.Ref.ID, Data: snap.Data()})
	}
	return docs, nil
}

// Close releases the underlying Firestore client.
func (c *FirestoreClient) Close() error {
	return c.client.Close()
}

// wrap classifies a Firestore error into a domain error, preserving the
// native message as the cause.
func (c *FirestoreClient) wrap(verb, path string, err error) error {
	if err == nil {
		return nil
	}
	if status.Code(err) == codes.PermissionDenied {
		return apperrors.PermissionDeniedf("%s %s", verb, path).WithCause(err)
	}
	return apperrors.Unavailablef("%s %s", verb, path).WithCause(err)
}
