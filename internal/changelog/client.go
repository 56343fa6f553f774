package changelog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Commit is one changelog entry shown in the client's dev-updates view
type Commit struct {
	Hash    string    `json:"hash"`
	Message string    `json:"message"`
	Date    time.Time `json:"date"`
	Author  string    `json:"author"`
}

// Client fetches the commit history of the configured repository from the
// GitHub API
type Client struct {
	baseURL    string
	repo       string
	token      string
	httpClient *http.Client
}

// NewClient creates a GitHub commits client. The token is optional and
// raises the API rate limit when set.
func NewClient(repo, token string) *Client {
	return &Client{
		baseURL: "https://api.github.com",
		repo:    repo,
		token:   token,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type githubCommit struct {
	SHA    string `json:"sha"`
	Commit struct {
		Message string `json:"message"`
		Author  struct {
			Name string    `json:"name"`
			Date time.Time `json:"date"`
		} `json:"author"`
	} `json:"commit"`
}

// Fetch retrieves up to 100 commits and maps them to changelog entries
func (c *Client) Fetch(ctx context.Context) ([]Commit, error) {
	url := fmt.Sprintf("%s/repos/%s/commits?per_page=100", c.baseURL, c.repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if c.token != "" {
		req.Header.Set("Authorization", "token "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github api responded with %d", resp.StatusCode)
	}

	var raw []githubCommit
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, err
	}

	commits := make([]Commit, 0, len(raw))
	for _, gc := range raw {
		hash := gc.SHA
		if len(hash) > 7 {
			hash = hash[:7]
		}
		message := gc.Commit.Message
		if i := strings.IndexByte(message, '\n'); i >= 0 {
			message = message[:i]
		}
		commits = append(commits, Commit{
			Hash:    hash,
			Message: message,
			Date:    gc.Commit.Author.Date,
			Author:  gc.Commit.Author.Name,
		})
	}
	return commits, nil
}
