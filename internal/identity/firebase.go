package identity

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/triplogapp/triplog-server/internal/config"
	apperrors "github.com/triplogapp/triplog-server/internal/errors"
)

// FirebaseResolver resolves the remote user id by verifying a Firebase ID
// token. The token is the one the client app obtained at sign-in; its UID
// claim is the namespace key for all of the user's remote documents.
type FirebaseResolver struct {
	auth  *auth.Client
	token string
}

// NewFirebaseResolver initializes the Firebase Auth client for the
// configured project.
func NewFirebaseResolver(ctx context.Context, cfg config.FirebaseConfig, idToken string) (*FirebaseResolver, error) {
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

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("open auth client: %w", err)
	}

	return &FirebaseResolver{auth: authClient, token: idToken}, nil
}

// RemoteUserID implements Resolver.
func (r *FirebaseResolver) RemoteUserID(ctx context.Context) (string, error) {
	if r.token == "" {
		return "", apperrors.Unauthenticated("no signed-in user; sign in before syncing")
	}

	verified, err := r.auth.VerifyIDToken(ctx, r.token)
	if err != nil {
		return "", apperrors.Unauthenticated("id token rejected").WithCause(err)
	}
	return verified.UID, nil
}
