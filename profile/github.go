// Package profile, as part of the profile module.
// This file implements the GitHub repo lookup: a public endpoint proxying the
// GitHub API with the server-held client credentials, fixed page size and sort
// order. The upstream JSON body passes through verbatim; any non-200 upstream
// answer is reported to the caller as a plain not-found.
package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/user/devconnector-go/apperror"
	"github.com/user/devconnector-go/config"
)

const githubAPIBaseURL = "https://api.github.com"

// GithubClient fetches a user's repositories from the GitHub API.
type GithubClient struct {
	cfg        config.GithubConfig
	baseURL    string
	httpClient *http.Client
}

// NewGithubClient creates a GithubClient against the public GitHub API.
func NewGithubClient(cfg config.GithubConfig) *GithubClient {
	return &GithubClient{
		cfg:        cfg,
		baseURL:    githubAPIBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// GetUserRepos returns the five most recent repositories of the given GitHub
// user as the raw upstream JSON. A non-200 upstream response maps to 404
// "No Github profile found".
func (c *GithubClient) GetUserRepos(ctx context.Context, username string) (json.RawMessage, error) {
	query := url.Values{}
	query.Set("per_page", "5")
	query.Set("sort", "created:asc")
	if c.cfg.ClientID != "" {
		query.Set("client_id", c.cfg.ClientID)
		query.Set("client_secret", c.cfg.ClientSecret)
	}

	endpoint := fmt.Sprintf("%s/users/%s/repos?%s", c.baseURL, url.PathEscape(username), query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperror.NewInternalError("failed to build GitHub request", err)
	}
	// GitHub rejects requests without a user agent.
	req.Header.Set("User-Agent", "devconnector-go")
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperror.NewInternalError("failed to reach GitHub", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperror.NewNotFoundError("No Github profile found", nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperror.NewInternalError("failed to read GitHub response", err)
	}
	return json.RawMessage(body), nil
}
