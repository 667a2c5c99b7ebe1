package models

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tmc/langchaingo/llms/openai"
)

const (
	// GitHubModelsBaseURL is the base URL for the GitHub Models API.
	// The OpenAI-compatible chat completions endpoint is at
	// {baseURL}/chat/completions.
	GitHubModelsBaseURL = "https://models.github.ai/inference"

	// DefaultGitHubModel is the model used when none is given.
	DefaultGitHubModel = "openai/gpt-4.1-mini"
)

// ErrMissingToken is returned when a provider that needs a token gets none.
var ErrMissingToken = errors.New("api token is required")

// githubHeaderTransport wraps an http.RoundTripper and injects
// GitHub-specific headers into every request.
type githubHeaderTransport struct {
	base http.RoundTripper
}

func (t *githubHeaderTransport) Do(
	req *http.Request,
) (*http.Response, error) {
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	return t.base.RoundTrip(req)
}

// NewGitHubModel creates a model backed by the GitHub Models API.
//
// The token must be a GitHub Personal Access Token (fine-grained) with the
// models:read permission. Model names use the publisher/model format, for
// example "openai/gpt-4.1". An empty model selects [DefaultGitHubModel].
func NewGitHubModel(
	model string,
	token string,
	opts ...openai.Option,
) (*LCGWrapper, error) {
	if token == "" {
		return nil, fmt.Errorf("github: %w: create a fine-grained PAT with models:read", ErrMissingToken)
	}
	if model == "" {
		model = DefaultGitHubModel
	}

	baseOpts := []openai.Option{
		openai.WithBaseURL(GitHubModelsBaseURL),
		openai.WithToken(token),
		openai.WithModel(model),
		openai.WithHTTPClient(&githubHeaderTransport{
			base: http.DefaultTransport,
		}),
	}

	// Caller options come after so they can override defaults.
	llm, err := openai.New(append(baseOpts, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub Models client: %w", err)
	}

	return NewLCGWrapper(llm).WithModelName(model), nil
}

// NewOpenAIModel creates a model backed by an OpenAI-compatible chat completions
// API. An empty baseURL uses the OpenAI default.
func NewOpenAIModel(
	model string,
	token string,
	baseURL string,
	opts ...openai.Option,
) (*LCGWrapper, error) {
	if token == "" {
		return nil, fmt.Errorf("openai: %w", ErrMissingToken)
	}

	baseOpts := []openai.Option{openai.WithToken(token)}
	if model != "" {
		baseOpts = append(baseOpts, openai.WithModel(model))
	}
	if baseURL != "" {
		baseOpts = append(baseOpts, openai.WithBaseURL(baseURL))
	}

	llm, err := openai.New(append(baseOpts, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
	}

	return NewLCGWrapper(llm).WithModelName(model), nil
}
