package recipeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"souschef/internal/domain"
)

// DefaultBaseURL is the Spoonacular endpoint on the RapidAPI marketplace
const DefaultBaseURL = "https://spoonacular-recipe-food-nutrition-v1.p.rapidapi.com/"

// resultLimit is how many candidates a search asks for
const resultLimit = "5"

// Client is a stateless facade over the Spoonacular recipe API.
// It neither retries nor caches.
type Client struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewClient creates a recipe API client
func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client:  &http.Client{Timeout: 20 * time.Second},
	}
}

type candidateResp struct {
	ID    json.Number `json:"id"`
	Title string      `json:"title"`
}

type searchResp struct {
	Results []candidateResp `json:"results"`
}

type infoResp struct {
	ID             json.Number `json:"id"`
	Title          string      `json:"title"`
	ReadyInMinutes int         `json:"readyInMinutes"`
	Servings       int         `json:"servings"`
}

type instructionResp struct {
	Name  string `json:"name"`
	Steps []struct {
		Number    int    `json:"number"`
		Step      string `json:"step"`
		Equipment []struct {
			Name string `json:"name"`
		} `json:"equipment"`
	} `json:"steps"`
}

// FindByIngredients returns recipes that use the comma-separated ingredients
func (c *Client) FindByIngredients(ctx context.Context, ingredients string) ([]domain.RecipeCandidate, error) {
	params := url.Values{}
	params.Set("fillIngredients", "false")
	params.Set("ingredients", ingredients)
	params.Set("limitLicense", "false")
	params.Set("number", resultLimit)
	params.Set("ranking", "1")

	var decoded []candidateResp
	if err := c.get(ctx, "recipes/findByIngredients", params, &decoded); err != nil {
		return nil, err
	}
	return toCandidates(decoded), nil
}

// FindByCuisine returns recipes of the cuisine
func (c *Client) FindByCuisine(ctx context.Context, cuisine string) ([]domain.RecipeCandidate, error) {
	params := url.Values{}
	params.Set("number", resultLimit)
	params.Set("query", " ")
	params.Set("cuisine", cuisine)

	var decoded searchResp
	if err := c.get(ctx, "recipes/search", params, &decoded); err != nil {
		return nil, err
	}
	return toCandidates(decoded.Results), nil
}

// GetInfo returns the recipe summary
func (c *Client) GetInfo(ctx context.Context, recipeID string) (*domain.RecipeInfo, error) {
	params := url.Values{}
	params.Set("includeNutrition", "false")

	var decoded infoResp
	if err := c.get(ctx, "recipes/"+url.PathEscape(recipeID)+"/information", params, &decoded); err != nil {
		return nil, err
	}
	return &domain.RecipeInfo{
		ID:             decoded.ID.String(),
		Title:          decoded.Title,
		ReadyInMinutes: decoded.ReadyInMinutes,
		Servings:       decoded.Servings,
	}, nil
}

// GetSteps returns the analyzed instructions with a per-step breakdown
func (c *Client) GetSteps(ctx context.Context, recipeID string) ([]domain.Instruction, error) {
	params := url.Values{}
	params.Set("stepBreakdown", "true")

	var decoded []instructionResp
	if err := c.get(ctx, "recipes/"+url.PathEscape(recipeID)+"/analyzedInstructions", params, &decoded); err != nil {
		return nil, err
	}

	out := make([]domain.Instruction, 0, len(decoded))
	for _, in := range decoded {
		ins := domain.Instruction{Name: in.Name}
		for _, s := range in.Steps {
			step := domain.RecipeStep{Number: s.Number, Text: s.Step}
			for _, e := range s.Equipment {
				step.Equipment = append(step.Equipment, e.Name)
			}
			ins.Steps = append(ins.Steps, step)
		}
		out = append(out, ins)
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if c.Client == nil {
		return fmt.Errorf("%w: http client is nil", domain.ErrLookupClient)
	}

	u := c.BaseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("%w: build request: %w", domain.ErrLookupClient, err)
	}
	req.Header.Set("X-Mashape-Key", c.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrLookupClient, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %s: status %d", domain.ErrLookupClient, path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s: %w", domain.ErrLookupClient, path, err)
	}
	return nil
}

func toCandidates(in []candidateResp) []domain.RecipeCandidate {
	out := make([]domain.RecipeCandidate, 0, len(in))
	for _, r := range in {
		out = append(out, domain.RecipeCandidate{ID: r.ID.String(), Title: r.Title})
	}
	return out
}
