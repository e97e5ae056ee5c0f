package opentdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"triviabot/internal/domain/entities"
)

// ErrUnavailable is returned when the trivia API cannot serve a question.
var ErrUnavailable = errors.New("trivia provider unavailable")

// Open Trivia DB category IDs for the categories the bot exposes.
var categoryIDs = map[string]int{
	"general":       9,
	"entertainment": 11,
	"science":       17,
	"sports":        21,
	"geography":     22,
	"history":       23,
}

// Suggested point values by difficulty, as hinted by the API tier.
var suggestedPoints = map[string]int{
	"easy":   10,
	"medium": 20,
	"hard":   30,
}

// Client fetches multiple-choice questions from the Open Trivia Database.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Client for the given endpoint with a bounded
// per-request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type apiResponse struct {
	ResponseCode int         `json:"response_code"`
	Results      []apiResult `json:"results"`
}

type apiResult struct {
	Category         string   `json:"category"`
	Difficulty       string   `json:"difficulty"`
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

// FetchQuestion requests one multiple-choice question. Empty category
// or difficulty means "any". All failures, including timeouts and
// empty result sets, surface as ErrUnavailable so the caller can
// treat them as a retryable outage.
func (c *Client) FetchQuestion(ctx context.Context, category, difficulty string) (*entities.Question, error) {
	params := url.Values{}
	params.Set("amount", "1")
	params.Set("type", "multiple")
	if id, ok := categoryIDs[category]; ok {
		params.Set("category", strconv.Itoa(id))
	}
	if difficulty != "" {
		params.Set("difficulty", difficulty)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var body apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrUnavailable, err)
	}

	if body.ResponseCode != 0 || len(body.Results) == 0 {
		return nil, fmt.Errorf("%w: response code %d", ErrUnavailable, body.ResponseCode)
	}

	r := body.Results[0]

	// The API returns HTML-escaped text.
	incorrect := make([]string, len(r.IncorrectAnswers))
	for i, a := range r.IncorrectAnswers {
		incorrect[i] = html.UnescapeString(a)
	}

	return &entities.Question{
		Text:          html.UnescapeString(r.Question),
		CorrectAnswer: html.UnescapeString(r.CorrectAnswer),
		Incorrect:     incorrect,
		Category:      html.UnescapeString(r.Category),
		Difficulty:    r.Difficulty,
		Points:        suggestedPoints[r.Difficulty],
	}, nil
}

// Categories returns the category keys the bot understands.
func Categories() []string {
	return []string{"general", "entertainment", "science", "sports", "geography", "history"}
}
