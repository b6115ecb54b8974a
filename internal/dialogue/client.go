package dialogue

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"souschef/internal/domain"
)

// DefaultVersion is the API version date sent with every message call
const DefaultVersion = "2016-07-11"

// Client talks to a Watson Conversation compatible workspace
type Client struct {
	BaseURL     string
	WorkspaceID string
	Version     string
	Username    string
	Password    string
	Client      *http.Client
}

// NewClient creates a dialogue engine client
func NewClient(baseURL, workspaceID, version, username, password string) *Client {
	if version == "" {
		version = DefaultVersion
	}
	return &Client{
		BaseURL:     strings.TrimRight(baseURL, "/"),
		WorkspaceID: workspaceID,
		Version:     version,
		Username:    username,
		Password:    password,
		Client:      &http.Client{Timeout: 15 * time.Second},
	}
}

type messageReq struct {
	Input   messageInput           `json:"input"`
	Context domain.DialogueContext `json:"context,omitempty"`
}

type messageInput struct {
	Text string `json:"text"`
}

type messageResp struct {
	Output struct {
		Text []string `json:"text"`
	} `json:"output"`
	Context  domain.DialogueContext  `json:"context"`
	Entities []domain.DialogueEntity `json:"entities"`
}

// Message sends one user utterance with the previous turn's context
// and returns the engine's reply. A nil dctx starts a new conversation.
func (c *Client) Message(ctx context.Context, text string, dctx domain.DialogueContext) (*domain.DialogueResponse, error) {
	if c.Client == nil {
		return nil, fmt.Errorf("%w: http client is nil", domain.ErrDialogueEngine)
	}

	body, err := json.Marshal(messageReq{Input: messageInput{Text: text}, Context: dctx})
	if err != nil {
		return nil, fmt.Errorf("%w: encode request: %w", domain.ErrDialogueEngine, err)
	}

	endpoint := fmt.Sprintf("%s/v1/workspaces/%s/message?version=%s",
		c.BaseURL, url.PathEscape(c.WorkspaceID), url.QueryEscape(c.Version))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", domain.ErrDialogueEngine, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.Username != "" {
		req.SetBasicAuth(c.Username, c.Password)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDialogueEngine, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d: %s", domain.ErrDialogueEngine, resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var decoded messageResp
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", domain.ErrDialogueEngine, err)
	}
	if decoded.Context == nil {
		return nil, fmt.Errorf("%w: response has no context", domain.ErrDialogueEngine)
	}

	return &domain.DialogueResponse{
		Context:  decoded.Context,
		Entities: decoded.Entities,
		Output:   decoded.Output.Text,
	}, nil
}
