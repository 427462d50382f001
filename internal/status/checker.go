// Package status probes the external services the planner depends on
// and reports per-service availability. Probes are read-only and run
// concurrently; a slow or failing service never blocks the others.
package status

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/oakbuilt/renoplan/internal/config"
)

// Service states. A missing or placeholder credential is a distinct
// state from a probe failure.
const (
	StateConfigured    = "configured"
	StateNotConfigured = "not_configured"
	StateError         = "error"
)

// Service names in canonical report order.
const (
	ServiceOpenAI   = "openai"
	ServiceAirtable = "airtable"
	ServiceNotion   = "notion"
)

const probeTimeout = 10 * time.Second

// Rate-limit guidance is static text, not measured. Each provider
// publishes fixed tiers; echoing them saves an operator a docs lookup.
const (
	openAIRateLimits   = "Varies by model and account tier, see platform.openai.com/account/rate-limits"
	airtableRateLimits = "5 requests/second (Free), 10 requests/second (Plus)"
	notionRateLimits   = "3 requests/second (averaged over 60 seconds)"
)

// ServiceStatus is the outcome of one availability probe.
type ServiceStatus struct {
	Service    string `json:"service"`
	State      string `json:"state"`
	Detail     string `json:"detail,omitempty"`
	RateLimits string `json:"rateLimits"`
}

// Report aggregates all probe outcomes plus summary counts.
type Report struct {
	CheckedAt     time.Time       `json:"checkedAt"`
	Services      []ServiceStatus `json:"services"`
	Configured    int             `json:"configured"`
	NotConfigured int             `json:"notConfigured"`
	Errors        int             `json:"errors"`
}

// modelLister is the slice of the OpenAI API the probe needs.
type modelLister interface {
	CountModels(ctx context.Context) (int, error)
}

type openAIClient struct {
	client *openai.Client
}

func (c *openAIClient) CountModels(ctx context.Context) (int, error) {
	page, err := c.client.Models.List(ctx)
	if err != nil {
		return 0, err
	}
	return len(page.Data), nil
}

// Checker probes all three services.
type Checker struct {
	cfg        *config.Config
	httpClient *http.Client

	// newModelLister is swappable for tests.
	newModelLister func(apiKey string) modelLister

	// Probe targets for the two REST services.
	airtableMetaURL string
	notionUsersURL  string
}

// NewChecker creates a checker over the loaded configuration.
func NewChecker(cfg *config.Config) *Checker {
	return &Checker{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: probeTimeout},
		newModelLister: func(apiKey string) modelLister {
			client := openai.NewClient(option.WithAPIKey(apiKey))
			return &openAIClient{client: client}
		},
		airtableMetaURL: "https://api.airtable.com/v0/meta/bases",
		notionUsersURL:  "https://api.notion.com/v1/users/me",
	}
}

// Check runs all probes concurrently and returns the aggregated report.
// Services appear in fixed order regardless of completion order.
func (c *Checker) Check(ctx context.Context) *Report {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	var (
		wg       sync.WaitGroup
		openaiSt ServiceStatus
		airSt    ServiceStatus
		notionSt ServiceStatus
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		openaiSt = c.checkOpenAI(ctx)
	}()
	go func() {
		defer wg.Done()
		airSt = c.checkAirtable(ctx)
	}()
	go func() {
		defer wg.Done()
		notionSt = c.checkNotion(ctx)
	}()
	wg.Wait()

	report := &Report{
		CheckedAt: time.Now().UTC(),
		Services:  []ServiceStatus{openaiSt, airSt, notionSt},
	}
	for _, s := range report.Services {
		switch s.State {
		case StateConfigured:
			report.Configured++
		case StateNotConfigured:
			report.NotConfigured++
		default:
			report.Errors++
		}
	}
	return report
}

func (c *Checker) checkOpenAI(ctx context.Context) ServiceStatus {
	st := ServiceStatus{Service: ServiceOpenAI, RateLimits: openAIRateLimits}
	if !c.cfg.OpenAI.Configured() {
		st.State = StateNotConfigured
		st.Detail = "OPENAI_API_KEY is not set"
		return st
	}

	count, err := c.newModelLister(c.cfg.OpenAI.APIKey).CountModels(ctx)
	if err != nil {
		st.State = StateError
		st.Detail = err.Error()
		return st
	}
	st.State = StateConfigured
	st.Detail = fmt.Sprintf("%d models available", count)
	return st
}

func (c *Checker) checkAirtable(ctx context.Context) ServiceStatus {
	st := ServiceStatus{Service: ServiceAirtable, RateLimits: airtableRateLimits}
	if !config.CredentialSet(c.cfg.Airtable.APIKey) {
		st.State = StateNotConfigured
		st.Detail = "AIRTABLE_API_KEY is not set"
		return st
	}

	var meta struct {
		Bases []struct {
			ID string `json:"id"`
		} `json:"bases"`
	}
	if err := c.probe(ctx, c.airtableMetaURL, c.cfg.Airtable.APIKey, &meta); err != nil {
		st.State = StateError
		st.Detail = err.Error()
		return st
	}
	st.State = StateConfigured
	st.Detail = fmt.Sprintf("API key is valid. %d bases accessible", len(meta.Bases))
	return st
}

func (c *Checker) checkNotion(ctx context.Context) ServiceStatus {
	st := ServiceStatus{Service: ServiceNotion, RateLimits: notionRateLimits}
	if !config.CredentialSet(c.cfg.Notion.APIKey) {
		st.State = StateNotConfigured
		st.Detail = "NOTION_API_KEY is not set"
		return st
	}

	var user struct {
		Name string `json:"name"`
	}
	if err := c.probe(ctx, c.notionUsersURL, c.cfg.Notion.APIKey, &user, "Notion-Version", "2022-06-28"); err != nil {
		st.State = StateError
		st.Detail = err.Error()
		return st
	}
	if user.Name == "" {
		user.Name = "Unknown"
	}
	st.State = StateConfigured
	st.Detail = fmt.Sprintf("API key is valid. User: %s", user.Name)
	return st
}

// probe issues an authenticated GET, decodes the JSON body into out, and
// treats any non-2xx answer as an error. Extra header pairs are applied
// in order.
func (c *Checker) probe(ctx context.Context, url, apiKey string, out any, headers ...string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("probe returned %s", resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode probe response: %w", err)
	}
	return nil
}
