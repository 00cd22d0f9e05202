package drive

import (
	"strconv"
	"strings"

	"github.com/custodia-labs/lexdraft/internal/connectors/google"
	"github.com/custodia-labs/lexdraft/internal/core/domain"
)

// DefaultExtensions are the sample file types pulled from Drive.
// Google Docs are always exported as plain text regardless of this list.
var DefaultExtensions = []string{".pdf", ".docx", ".txt", ".md", ".html"}

// DefaultPageSize is the page size for list requests.
const DefaultPageSize int64 = 100

// Config holds Google Drive sample source configuration.
type Config struct {
	// FolderID is the root folder. Each direct subfolder is one category.
	FolderID string
	// Extensions limits which regular files are downloaded.
	Extensions []string
	// PageSize is the page size for API requests.
	PageSize int64
	// RateLimit bounds the request rate.
	RateLimit google.RateLimitConfig
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Extensions: DefaultExtensions,
		PageSize:   DefaultPageSize,
		RateLimit:  google.DefaultDriveRateLimit,
	}
}

// ParseConfig builds a Config from string settings, as stored under the
// drive.* configuration keys.
func ParseConfig(values map[string]string) (*Config, error) {
	cfg := DefaultConfig()

	cfg.FolderID = strings.TrimSpace(values["folder_id"])
	if cfg.FolderID == "" {
		return nil, domain.ErrInvalidInput
	}

	if val := values["extensions"]; val != "" {
		cfg.Extensions = nil
		for _, ext := range strings.Split(val, ",") {
			ext = strings.ToLower(strings.TrimSpace(ext))
			if ext == "" {
				continue
			}
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			cfg.Extensions = append(cfg.Extensions, ext)
		}
	}

	if val := values["page_size"]; val != "" {
		if n, err := strconv.ParseInt(val, 10, 64); err == nil && n > 0 {
			cfg.PageSize = n
		}
	}

	if val := values["requests_per_second"]; val != "" {
		if rps, err := strconv.ParseFloat(val, 64); err == nil && rps > 0 {
			cfg.RateLimit.RequestsPerSecond = rps
		}
	}

	return cfg, nil
}

// HasExtension reports whether ext is enabled.
func (c *Config) HasExtension(ext string) bool {
	ext = strings.ToLower(ext)
	for _, e := range c.Extensions {
		if e == ext {
			return true
		}
	}
	return false
}
