// Package hosting talks to the remote repository host (GitHub).
package hosting

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"
)

// ErrNameTaken reports that a repository with the requested name already
// exists on the account. Callers surface this as a user-actionable condition
// distinct from generic API failures.
var ErrNameTaken = errors.New("repository name already exists")

// GitHubClient creates repositories on behalf of an authenticated user.
type GitHubClient struct {
	client *github.Client
	logger *log.Logger
}

// NewGitHubClient builds a client from a personal access token. The token is
// passed in explicitly; no ambient environment state is consulted.
func NewGitHubClient(ctx context.Context, token string, logger *log.Logger) *GitHubClient {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return &GitHubClient{
		client: github.NewClient(oauth2.NewClient(ctx, ts)),
		logger: logger,
	}
}

// Authenticate verifies the token and returns the authenticated login.
func (c *GitHubClient) Authenticate(ctx context.Context) (string, error) {
	user, _, err := c.client.Users.Get(ctx, "")
	if err != nil {
		return "", fmt.Errorf("authenticating with GitHub: %w", err)
	}
	return user.GetLogin(), nil
}

// CreateRepository creates a repository on the authenticated account and
// returns its clone URL. A name conflict surfaces as ErrNameTaken.
func (c *GitHubClient) CreateRepository(ctx context.Context, name, description string, private bool) (string, error) {
	repo := &github.Repository{
		Name:        github.String(name),
		Description: github.String(description),
		Private:     github.Bool(private),
	}

	created, resp, err := c.client.Repositories.Create(ctx, "", repo)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusUnprocessableEntity &&
			strings.Contains(err.Error(), "name already exists") {
			return "", fmt.Errorf("%w: %s", ErrNameTaken, name)
		}
		return "", fmt.Errorf("creating repository: %w", err)
	}

	c.logger.Printf("Created repository %s", created.GetFullName())
	return created.GetCloneURL(), nil
}
