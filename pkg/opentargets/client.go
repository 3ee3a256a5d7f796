package opentargets

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/phytolab/herbnet/pkg/cache"
	"github.com/phytolab/herbnet/pkg/httputil"
)

const (
	defaultBaseURL  = "https://api.platform.opentargets.org/api/v4/graphql"
	defaultPageSize = 500
	httpTimeout     = 30 * time.Second
)

var (
	// ErrNotFound is returned when a disease cannot be resolved upstream.
	ErrNotFound = errors.New("disease not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = errors.New("network error")
)

// Target is one disease-associated target with its association score.
type Target struct {
	Symbol string  `json:"symbol"` // Approved gene symbol (e.g., "TNF")
	Name   string  `json:"name"`   // Approved gene name (may be empty)
	Score  float64 `json:"score"`  // Overall association score in [0, 1]
}

// Disease holds a resolved disease and its associated targets,
// ordered by descending association score as returned upstream.
type Disease struct {
	ID      string   `json:"id"`   // Resolved ontology id (EFO_/MONDO_/ORPHA_)
	Name    string   `json:"name"` // Display name from the platform
	Targets []Target `json:"targets"`
}

// Client provides access to the Open Targets Platform GraphQL API.
// It handles caching and automatic retries for transient failures.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	http     *http.Client
	cache    cache.Cache
	keyer    cache.Keyer
	ttl      time.Duration
	baseURL  string
	pageSize int
}

// NewClient creates an Open Targets client with the given cache backend.
// Pass a NullCache to disable caching. The returned Client is safe for
// concurrent use.
func NewClient(backend cache.Cache, cacheTTL time.Duration) *Client {
	if backend == nil {
		backend = cache.NewNullCache()
	}
	return &Client{
		http:     &http.Client{Timeout: httpTimeout},
		cache:    backend,
		keyer:    cache.NewDefaultKeyer(),
		ttl:      cacheTTL,
		baseURL:  defaultBaseURL,
		pageSize: defaultPageSize,
	}
}

// FetchDisease resolves id and retrieves its associated targets.
//
// Identifiers with an EFO_, MONDO_ or ORPHA_ prefix are used directly.
// Anything else is treated as a search term and resolved to the first
// disease hit before fetching.
//
// If refresh is true, the cache is bypassed and a fresh API call is made.
//
// Returns [ErrNotFound] if the disease does not exist upstream, and
// [ErrNetwork] for HTTP failures after retries are exhausted.
func (c *Client) FetchDisease(ctx context.Context, id string, refresh bool) (*Disease, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: empty disease id", ErrNotFound)
	}

	var d Disease
	key := c.keyer.DiseaseKey(id, cache.DiseaseKeyOpts{PageSize: c.pageSize})
	err := c.cached(ctx, key, refresh, &d, func() error {
		return c.fetch(ctx, id, &d)
	})
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (c *Client) fetch(ctx context.Context, id string, d *Disease) error {
	if !hasOntologyPrefix(id) {
		resolved, err := c.resolve(ctx, id)
		if err != nil {
			return err
		}
		id = resolved
	}

	// The platform caps page size at 500; larger target lists span pages.
	var targets []Target
	for index := 0; ; index++ {
		var resp diseaseResponse
		err := c.post(ctx, diseaseQuery, map[string]any{
			"efoId": id,
			"index": index,
			"size":  c.pageSize,
		}, &resp)
		if err != nil {
			return err
		}
		if resp.Data.Disease == nil {
			if index == 0 {
				return fmt.Errorf("%w: %s", ErrNotFound, id)
			}
			break
		}

		d.ID = resp.Data.Disease.ID
		d.Name = resp.Data.Disease.Name
		rows := resp.Data.Disease.AssociatedTargets.Rows
		for _, row := range rows {
			targets = append(targets, Target{
				Symbol: row.Target.ApprovedSymbol,
				Name:   row.Target.ApprovedName,
				Score:  row.Score,
			})
		}
		if len(rows) == 0 || len(targets) >= resp.Data.Disease.AssociatedTargets.Count {
			break
		}
	}
	d.Targets = targets
	return nil
}

// resolve searches for a disease by name and returns the id of the first hit.
func (c *Client) resolve(ctx context.Context, term string) (string, error) {
	var resp searchResponse
	err := c.post(ctx, searchQuery, map[string]any{"queryString": term}, &resp)
	if err != nil {
		return "", err
	}
	hits := resp.Data.Search.Hits
	if len(hits) == 0 {
		return "", fmt.Errorf("%w: %s", ErrNotFound, term)
	}
	return hits[0].ID, nil
}

// cached retrieves a value from cache or executes fetch (with retries) and
// caches the result. If refresh is true, the cache is bypassed.
func (c *Client) cached(ctx context.Context, key string, refresh bool, v any, fetch func() error) error {
	if !refresh {
		if data, ok, err := c.cache.Get(ctx, key); err == nil && ok {
			if json.Unmarshal(data, v) == nil {
				return nil
			}
		}
	}
	if err := httputil.RetryWithBackoff(ctx, fetch); err != nil {
		return err
	}
	if data, err := json.Marshal(v); err == nil {
		_ = c.cache.Set(ctx, key, data, c.ttl)
	}
	return nil
}

// post sends a GraphQL request and decodes the response into v.
func (c *Client) post(ctx context.Context, query string, vars map[string]any, v any) error {
	payload, err := json.Marshal(gqlRequest{Query: query, Variables: vars})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &httputil.RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		return &httputil.RetryableError{Err: fmt.Errorf("%w: status %d", ErrNetwork, resp.StatusCode)}
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

func hasOntologyPrefix(id string) bool {
	return strings.HasPrefix(id, "EFO_") ||
		strings.HasPrefix(id, "MONDO_") ||
		strings.HasPrefix(id, "ORPHA_")
}

const searchQuery = `query Search($queryString: String!) {
  search(queryString: $queryString, entityNames: ["disease"], page: {index: 0, size: 1}) {
    hits { id name }
  }
}`

const diseaseQuery = `query DiseaseTargets($efoId: String!, $index: Int!, $size: Int!) {
  disease(efoId: $efoId) {
    id
    name
    associatedTargets(page: {index: $index, size: $size}) {
      count
      rows {
        target { approvedSymbol approvedName }
        score
      }
    }
  }
}`

type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type searchResponse struct {
	Data struct {
		Search struct {
			Hits []struct {
				ID   string `json:"id"`
				Name string `json:"name"`
			} `json:"hits"`
		} `json:"search"`
	} `json:"data"`
}

type diseaseResponse struct {
	Data struct {
		Disease *struct {
			ID                string `json:"id"`
			Name              string `json:"name"`
			AssociatedTargets struct {
				Count int `json:"count"`
				Rows  []struct {
					Target struct {
						ApprovedSymbol string `json:"approvedSymbol"`
						ApprovedName   string `json:"approvedName"`
					} `json:"target"`
					Score float64 `json:"score"`
				} `json:"rows"`
			} `json:"associatedTargets"`
		} `json:"disease"`
	} `json:"data"`
}
