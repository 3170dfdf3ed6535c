package anki

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

const (
	// DefaultURL is where a stock AnkiConnect add-on listens
	DefaultURL = "http://localhost:8765"

	apiVersion = 6

	pingTimeout = 5 * time.Second
)

// ServiceError is a non-null error field in an AnkiConnect response
type ServiceError struct {
	Action  string
	Message string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("ankiconnect %s: %s", e.Action, e.Message)
}

// Client talks the AnkiConnect JSON POST protocol: request bodies are
// {action, params, version} and responses carry exactly a result and an
// error key. Requests share a circuit breaker so a dead Anki instance
// fails fast instead of stalling every prompt on a TCP timeout.
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	log        *logrus.Logger
}

// NewClient creates an AnkiConnect client for the given service URL
func NewClient(baseURL string, log *logrus.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	if log == nil {
		log = logrus.New()
	}
	return &Client{
		baseURL: baseURL,
		// No request timeout: addNote can legitimately block on Anki
		// dialogs, and cancellation comes from the caller's context.
		httpClient: &http.Client{},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "ankiconnect",
			Timeout: 15 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 3
			},
		}),
		log: log,
	}
}

// request is the AnkiConnect envelope
type request struct {
	Action  string `json:"action"`
	Params  any    `json:"params,omitempty"`
	Version int    `json:"version"`
}

// Ping checks that the service answers at all. AnkiConnect responds to a
// plain GET with its version banner and status 200.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("anki is not reachable at %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("anki returned status %d", resp.StatusCode)
	}
	return nil
}

// invoke performs one AnkiConnect action. A transport or shape failure is
// returned as an error; a non-null service error is logged and returned as
// a *ServiceError so callers can treat it as "no result for this call".
func (c *Client) invoke(ctx context.Context, action string, params any) (json.RawMessage, error) {
	body, err := json.Marshal(request{Action: action, Params: params, Version: apiVersion})
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s request: %w", action, err)
	}

	raw, err := c.breaker.Execute(func() (any, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("status %d: %s", resp.StatusCode, data)
		}
		return data, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", action, err)
	}

	// The protocol promises exactly two top-level keys. Anything else is
	// not an AnkiConnect response.
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw.([]byte), &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode %s response: %w", action, err)
	}
	result, hasResult := envelope["result"]
	rawErr, hasError := envelope["error"]
	if len(envelope) != 2 || !hasResult || !hasError {
		return nil, fmt.Errorf("unexpected %s response shape", action)
	}

	var errMsg *string
	if err := json.Unmarshal(rawErr, &errMsg); err == nil && errMsg != nil {
		svcErr := &ServiceError{Action: action, Message: *errMsg}
		c.log.WithField("action", action).Warn(svcErr.Error())
		return nil, svcErr
	}

	return result, nil
}

// DeckNames lists the decks known to Anki
func (c *Client) DeckNames(ctx context.Context) ([]string, error) {
	result, err := c.invoke(ctx, "deckNames", nil)
	if err != nil {
		return nil, err
	}
	var names []string
	if err := json.Unmarshal(result, &names); err != nil {
		return nil, fmt.Errorf("failed to decode deck names: %w", err)
	}
	return names, nil
}

// FindNotes returns the IDs of notes matching an Anki search query
func (c *Client) FindNotes(ctx context.Context, query string) ([]int64, error) {
	params := map[string]string{"query": query}
	result, err := c.invoke(ctx, "findNotes", params)
	if err != nil {
		return nil, err
	}
	var ids []int64
	if err := json.Unmarshal(result, &ids); err != nil {
		return nil, fmt.Errorf("failed to decode note ids: %w", err)
	}
	return ids, nil
}

// AddNote submits a note and returns the created note identifier. A null
// result means Anki refused the note; the returned ID is 0 then.
func (c *Client) AddNote(ctx context.Context, note *Note) (int64, error) {
	params := map[string]*Note{"note": note}
	result, err := c.invoke(ctx, "addNote", params)
	if err != nil {
		return 0, err
	}
	var id *int64
	if err := json.Unmarshal(result, &id); err != nil {
		return 0, fmt.Errorf("failed to decode note id: %w", err)
	}
	if id == nil {
		return 0, nil
	}
	return *id, nil
}

// StoreMediaFile persists a base64-encoded file under the given name in
// Anki's media collection
func (c *Client) StoreMediaFile(ctx context.Context, filename, dataBase64 string) error {
	params := map[string]string{
		"filename": filename,
		"data":     dataBase64,
	}
	if _, err := c.invoke(ctx, "storeMediaFile", params); err != nil {
		return err
	}
	return nil
}
