package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"smashduel/internal/domain"
)

const defaultTimeout = 15 * time.Second

// Client talks to the game backend's REST API. It implements
// engine.PoolFetcher for the candidate question pool.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	logger  zerolog.Logger
}

// New creates a REST client for the given base URL. The token, when set,
// is attached as a bearer Authorization header to every request.
func New(baseURL, token string, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: defaultTimeout},
		logger:  logger.With().Str("component", "rest").Logger(),
	}
}

// apiResponse is the backend's standard response envelope
type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *apiError       `json:"error,omitempty"`
}

// apiError contains error details from the backend
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *apiError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MatchInfo is the subset of match metadata the client cares about
type MatchInfo struct {
	ID               string `json:"id"`
	Code             string `json:"code"`
	Status           string `json:"status"`
	ScoreTeamA       int    `json:"scoreTeamA"`
	ScoreTeamB       int    `json:"scoreTeamB"`
	CurrentRoundType string `json:"currentRoundType,omitempty"`
}

// RandomQuestions fetches up to count candidate questions filtered by
// round variant. An empty list is a valid result.
func (c *Client) RandomQuestions(ctx context.Context, variant domain.RoundVariant, count int) ([]domain.CandidateQuestion, error) {
	query := url.Values{}
	query.Set("count", strconv.Itoa(count))
	if variant != "" {
		query.Set("roundType", variant.String())
	}

	var pool []domain.CandidateQuestion
	if err := c.get(ctx, "/api/questions/smash/random?"+query.Encode(), &pool); err != nil {
		return nil, fmt.Errorf("fetch question pool: %w", err)
	}
	return pool, nil
}

// Match fetches metadata for one match
func (c *Client) Match(ctx context.Context, id string) (MatchInfo, error) {
	var info MatchInfo
	if err := c.get(ctx, "/api/matches/"+url.PathEscape(id), &info); err != nil {
		return MatchInfo{}, fmt.Errorf("fetch match %s: %w", id, err)
	}
	return info, nil
}

// get performs a GET request and unwraps the response envelope into out
func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var envelope apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)
	}

	if !envelope.Success || resp.StatusCode/100 != 2 {
		if envelope.Error != nil {
			return envelope.Error
		}
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	if out == nil || len(envelope.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("decode response data: %w", err)
	}
	return nil
}

// IsAPIError reports whether err carries a backend error code, and
// returns the code when it does
func IsAPIError(err error) (string, bool) {
	var apiErr *apiError
	if errors.As(err, &apiErr) {
		return apiErr.Code, true
	}
	return "", false
}
