package travis

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// NoToken is the access token value meaning "proceed unauthenticated".
const NoToken = ""

type githubAuthRequest struct {
	GitHubToken string `json:"github_token"`
}

type githubAuthResponse struct {
	AccessToken string `json:"access_token"`
}

// ExchangeToken trades a GitHub token for a Travis access token.
// An empty githubToken returns NoToken without touching the network.
func (c *Client) ExchangeToken(ctx context.Context, githubToken string) (string, error) {
	if githubToken == "" {
		c.logger.Info("GITHUB_TOKEN is not set, not using travis token")
		return NoToken, nil
	}

	body, err := c.doRequest(ctx, http.MethodPost, "auth/github", githubAuthRequest{GitHubToken: githubToken})
	if err != nil {
		return NoToken, fmt.Errorf("exchange github token: %w", err)
	}

	var resp githubAuthResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return NoToken, fmt.Errorf("unmarshal auth response: %w", err)
	}
	if resp.AccessToken == "" {
		c.logger.Warn("Auth response carried no access_token, continuing unauthenticated")
	}

	return resp.AccessToken, nil
}
