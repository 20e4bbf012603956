package pokemon

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const DefaultBaseURL = "https://pokeapi.co/api/v2"

// Client fetches species and move data from PokeAPI, caching raw responses.
type Client struct {
	BaseURL  string
	CacheTTL time.Duration

	httpClient *http.Client

	cacheLock sync.RWMutex
	cache     map[string][]byte
	cacheTTL  map[string]time.Time
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		CacheTTL: time.Hour,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		cache:    make(map[string][]byte),
		cacheTTL: make(map[string]time.Time),
	}
}

func fetchData[T any](ctx context.Context, c *Client, url string, result *T) error {
	c.cacheLock.RLock()
	cachedData, exists := c.cache[url]
	expiryTime, timeExists := c.cacheTTL[url]
	c.cacheLock.RUnlock()

	if exists && timeExists && time.Now().Before(expiryTime) {
		return json.Unmarshal(cachedData, result)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: %s", url, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	c.cacheLock.Lock()
	c.cache[url] = body
	c.cacheTTL[url] = time.Now().Add(c.CacheTTL)
	c.cacheLock.Unlock()

	return json.Unmarshal(body, result)
}

// FetchPokemon accepts a species name or national dex number.
func (c *Client) FetchPokemon(ctx context.Context, identifier any) (*Pokemon, error) {
	var url string
	switch v := identifier.(type) {
	case string:
		url = fmt.Sprintf("%s/pokemon/%s/", c.BaseURL, strings.ToLower(v))
	case int:
		url = fmt.Sprintf("%s/pokemon/%d/", c.BaseURL, v)
	default:
		return nil, fmt.Errorf("invalid identifier type %T", identifier)
	}

	var p Pokemon
	if err := fetchData(ctx, c, url, &p); err != nil {
		return nil, fmt.Errorf("fetch pokemon %v: %w", identifier, err)
	}
	return &p, nil
}

func (c *Client) FetchMoveData(ctx context.Context, url string) (*MoveInfo, error) {
	var move MoveInfo
	if err := fetchData(ctx, c, url, &move); err != nil {
		return nil, fmt.Errorf("fetch move: %w", err)
	}
	return &move, nil
}

func (c *Client) FetchMoveByName(ctx context.Context, name string) (*MoveInfo, error) {
	return c.FetchMoveData(ctx, fmt.Sprintf("%s/move/%s/", c.BaseURL, name))
}

// FetchMovesInParallel fetches every URL with at most 10 requests in flight.
// The first error aborts the batch.
func (c *Client) FetchMovesInParallel(ctx context.Context, moveURLs []string) ([]*MoveInfo, error) {
	moves := make([]*MoveInfo, len(moveURLs))
	var wg sync.WaitGroup
	errChan := make(chan error, len(moveURLs))

	semaphore := make(chan struct{}, 10)

	for i, url := range moveURLs {
		wg.Add(1)
		go func(idx int, moveURL string) {
			defer wg.Done()

			select {
			case semaphore <- struct{}{}:
			case <-ctx.Done():
				errChan <- ctx.Err()
				return
			}
			defer func() { <-semaphore }()

			move, err := c.FetchMoveData(ctx, moveURL)
			if err != nil {
				errChan <- err
				return
			}
			moves[idx] = move
		}(i, url)
	}

	wg.Wait()
	close(errChan)

	if err, ok := <-errChan; ok {
		log.Debug().Err(err).Int("batch", len(moveURLs)).Msg("parallel move fetch failed")
		return nil, err
	}
	return moves, nil
}
