// ABOUTME: HTTP client for the external answer endpoint
// ABOUTME: Formats answers with citation blocks and records transcript turns
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/chairaharder/askchaira/internal/models"
	"github.com/chairaharder/askchaira/internal/session"
)

// AskRequest is the JSON body sent to the answer endpoint.
type AskRequest struct {
	Query     string   `json:"query"`
	Sources   []string `json:"sources"`
	SessionID string   `json:"session_id"`
	UserLabel string   `json:"user_label"`
}

// askResponse covers both answer field spellings the endpoint may use.
type askResponse struct {
	Answer  string         `json:"answer"`
	Result  string         `json:"result"`
	Matches []models.Match `json:"matches"`
	Error   string         `json:"error"`
}

// Answer is the parsed reply: the text plus ranked citations.
type Answer struct {
	Text    string
	Matches []models.Match
}

// Client talks to the answer endpoint.
type Client struct {
	url  string
	http *http.Client
}

// NewClient creates a Client for the given endpoint URL.
func NewClient(url string) *Client {
	return &Client{
		url:  url,
		http: &http.Client{Timeout: 60 * time.Second},
	}
}

// Ask posts a question and returns the parsed answer. Non-2xx responses are
// errors; the body's error field is included when present.
func (c *Client) Ask(ctx context.Context, req AskRequest) (*Answer, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding ask request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building ask request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("calling answer endpoint: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading answer response: %w", err)
	}

	var parsed askResponse
	if len(raw) > 0 {
		// Tolerate non-JSON error bodies; the status check below still fires.
		_ = json.Unmarshal(raw, &parsed)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if parsed.Error != "" {
			return nil, fmt.Errorf("answer endpoint returned HTTP %d: %s", resp.StatusCode, parsed.Error)
		}
		return nil, fmt.Errorf("answer endpoint returned HTTP %d", resp.StatusCode)
	}

	text := parsed.Answer
	if text == "" {
		text = parsed.Result
	}
	if text == "" {
		return nil, fmt.Errorf("answer endpoint returned an empty answer")
	}

	return &Answer{Text: text, Matches: parsed.Matches}, nil
}

// FormatAnswer renders an answer with its citation block: one line per
// match, "[#i] title - url", appended after a blank line. Matches without a
// title fall back to the source name; the url part is omitted when absent.
func FormatAnswer(a *Answer) string {
	if len(a.Matches) == 0 {
		return a.Text
	}

	lines := make([]string, 0, len(a.Matches))
	for i, m := range a.Matches {
		label := m.Title
		if label == "" {
			label = m.Source
		}
		if label == "" {
			continue
		}
		line := fmt.Sprintf("[#%d] %s", i+1, label)
		if m.URL != "" {
			line += " - " + m.URL
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return a.Text
	}
	return a.Text + "\n\n" + strings.Join(lines, "\n")
}

// Submitter ties the client to a session and the configured identity.
type Submitter struct {
	client    *Client
	sources   []string
	userLabel string
}

// NewSubmitter creates a Submitter. Nil sources defaults to every source.
func NewSubmitter(client *Client, sources []string, userLabel string) *Submitter {
	if len(sources) == 0 {
		sources = models.DefaultSources()
	}
	return &Submitter{client: client, sources: sources, userLabel: userLabel}
}

// Respond asks the endpoint and returns the assistant content for one
// question. A transport or endpoint failure becomes a visible assistant
// message rather than an error: failures stay in the transcript. Respond
// never touches a session, so callers may run it off the goroutine that
// owns the transcript.
func (s *Submitter) Respond(ctx context.Context, sessionID, query string) string {
	answer, err := s.client.Ask(ctx, AskRequest{
		Query:     query,
		Sources:   s.sources,
		SessionID: sessionID,
		UserLabel: s.userLabel,
	})
	if err != nil {
		return fmt.Sprintf("Sorry, something went wrong answering that. (%v)", err)
	}
	return FormatAnswer(answer)
}

// Submit records the user turn, asks the endpoint, and records the
// assistant turn, all on the caller's goroutine.
func (s *Submitter) Submit(ctx context.Context, sess *session.Session, query string) string {
	sess.Append(session.RoleUser, query)
	content := s.Respond(ctx, sess.ID, query)
	sess.Append(session.RoleAssistant, content)
	return content
}
