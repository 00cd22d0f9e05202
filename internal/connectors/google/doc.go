// Package google provides shared infrastructure for the Google Drive sample
// source.
//
// It contains:
//   - A Drive service factory accepting an API key or an OAuth access token
//   - Error helpers for common Google API failures (401, 403, 404, 429)
//   - Rate limiting to respect Drive API quotas
//
// # Usage
//
//	svc, err := google.NewDriveService(ctx, google.Credentials{APIKey: key})
//	src := drive.NewSampleSource(svc, drive.Config{FolderID: id})
//	n, err := src.Pull(ctx, samplesDir)
//
// # OAuth2 Scopes
//
// An access token needs https://www.googleapis.com/auth/drive.readonly.
// An API key only reaches folders shared as "anyone with the link".
package google
