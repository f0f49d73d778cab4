package tools

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/agusespa/testsmith/pkg/config"
)

const DefaultGithubAPI = "https://api.github.com"

type GithubSaver struct {
	token   string
	apiBase string
	client  *http.Client
}

type GithubSaveResult struct {
	ContentSHA string `json:"content_sha,omitempty"`
	CommitSHA  string `json:"commit_sha,omitempty"`
	HTMLURL    string `json:"html_url,omitempty"`
}

// GithubError is a non-2xx answer from the contents API.
type GithubError struct {
	StatusCode int
	Body       string
}

func (e *GithubError) Error() string {
	return fmt.Sprintf("github request failed with status %d: %s", e.StatusCode, strings.TrimSpace(e.Body))
}

func NewGithubSaver(token string, client *http.Client) (*GithubSaver, error) {
	if strings.TrimSpace(token) == "" {
		return nil, &config.ConfigError{Field: "GITHUB_TOKEN", Reason: "is not configured"}
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &GithubSaver{token: token, apiBase: DefaultGithubAPI, client: client}, nil
}

// WithAPIBase points the saver at another API root, such as GitHub Enterprise.
func (g *GithubSaver) WithAPIBase(base string) *GithubSaver {
	g.apiBase = strings.TrimRight(base, "/")
	return g
}

func (g *GithubSaver) contentsURL(owner, repo, filePath string) string {
	return fmt.Sprintf("%s/repos/%s/%s/contents/%s", g.apiBase, url.PathEscape(owner), url.PathEscape(repo), escapePath(filePath))
}

func escapePath(p string) string {
	parts := strings.Split(strings.Trim(p, "/"), "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}

func (g *GithubSaver) do(ctx context.Context, method, target string, body any) ([]byte, int, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.token)
	req.Header.Set("Accept", "application/vnd.github+json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("github request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}
	return data, resp.StatusCode, nil
}

// FileSHA returns the blob sha of an existing file, or "" when it does not exist.
func (g *GithubSaver) FileSHA(ctx context.Context, owner, repo, filePath, branch string) (string, error) {
	target := g.contentsURL(owner, repo, filePath) + "?ref=" + url.QueryEscape(branch)
	data, status, err := g.do(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", err
	}
	if status == http.StatusNotFound {
		return "", nil
	}
	if status < 200 || status >= 300 {
		return "", &GithubError{StatusCode: status, Body: string(data)}
	}

	var file struct {
		SHA string `json:"sha"`
	}
	if err := json.Unmarshal(data, &file); err != nil {
		return "", fmt.Errorf("failed to decode file metadata: %w", err)
	}
	return file.SHA, nil
}

// CreateOrUpdateFile writes content to path on branch, updating the file when
// it already exists.
func (g *GithubSaver) CreateOrUpdateFile(ctx context.Context, owner, repo, filePath, content, message, branch string) (GithubSaveResult, error) {
	if message == "" {
		message = "chore: add/update autogenerated test"
	}
	if branch == "" {
		branch = DefaultBranch
	}

	sha, err := g.FileSHA(ctx, owner, repo, filePath, branch)
	if err != nil {
		return GithubSaveResult{}, err
	}

	body := map[string]string{
		"message": message,
		"content": base64.StdEncoding.EncodeToString([]byte(content)),
		"branch":  branch,
	}
	if sha != "" {
		body["sha"] = sha
	}

	data, status, err := g.do(ctx, http.MethodPut, g.contentsURL(owner, repo, filePath), body)
	if err != nil {
		return GithubSaveResult{}, err
	}
	if status < 200 || status >= 300 {
		return GithubSaveResult{}, &GithubError{StatusCode: status, Body: string(data)}
	}

	var resp struct {
		Content struct {
			SHA     string `json:"sha"`
			HTMLURL string `json:"html_url"`
		} `json:"content"`
		Commit struct {
			SHA string `json:"sha"`
		} `json:"commit"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return GithubSaveResult{}, fmt.Errorf("failed to decode github response: %w", err)
	}

	return GithubSaveResult{ContentSHA: resp.Content.SHA, CommitSHA: resp.Commit.SHA, HTMLURL: resp.Content.HTMLURL}, nil
}
