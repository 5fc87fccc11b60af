// Package deploy triggers deployments through the Vercel REST API.
package deploy

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultBaseURL = "https://api.vercel.com"

// VercelClient triggers deployments for a project.
type VercelClient struct {
	http   *resty.Client
	logger *log.Logger
}

// NewVercelClient builds a client from an access token.
func NewVercelClient(token string, logger *log.Logger) *VercelClient {
	client := resty.New().
		SetBaseURL(defaultBaseURL).
		SetAuthToken(token).
		SetTimeout(30 * time.Second)

	return &VercelClient{http: client, logger: logger}
}

// SetBaseURL overrides the API endpoint. Used in tests.
func (c *VercelClient) SetBaseURL(url string) {
	c.http.SetBaseURL(url)
}

type deploymentResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Deploy creates a deployment for the named project from its linked
// repository and returns the deployment URL.
func (c *VercelClient) Deploy(ctx context.Context, project string) (string, error) {
	var result deploymentResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]any{"name": project, "target": "production"}).
		SetResult(&result).
		Post("/v13/deployments")
	if err != nil {
		return "", fmt.Errorf("requesting deployment: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("vercel API returned %s: %s", resp.Status(), resp.String())
	}

	c.logger.Printf("Deployment %s created", result.ID)
	return "https://" + result.URL, nil
}
