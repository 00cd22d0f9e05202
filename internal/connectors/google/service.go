package google

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// Credentials select how Drive requests are authorised. AccessToken takes
// precedence over APIKey.
type Credentials struct {
	// APIKey reaches publicly shared folders.
	APIKey string

	// AccessToken is an OAuth2 bearer token with drive.readonly scope.
	AccessToken string

	// Endpoint overrides the API base URL. Used by tests.
	Endpoint string
}

// ErrNoCredentials indicates neither an API key nor a token was supplied.
var ErrNoCredentials = errors.New("google: no API key or access token configured")

// NewDriveService creates a Google Drive API service.
func NewDriveService(ctx context.Context, creds Credentials) (*drive.Service, error) {
	var opts []option.ClientOption
	switch {
	case creds.AccessToken != "":
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: creds.AccessToken, TokenType: "Bearer"})
		opts = append(opts, option.WithTokenSource(ts))
	case creds.APIKey != "":
		opts = append(opts, option.WithAPIKey(creds.APIKey))
	case creds.Endpoint != "":
		opts = append(opts, option.WithoutAuthentication())
	default:
		return nil, ErrNoCredentials
	}
	if creds.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(creds.Endpoint))
	}

	svc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}
	return svc, nil
}
