package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pricecart/backend/internal/domain"
)

func referenceFeed() feedResponse {
	var feed feedResponse
	for _, p := range ReferenceProducts() {
		prices := map[string]float64{}
		for s, price := range p.Prices {
			prices[s.String()] = price
		}
		feed.Products = append(feed.Products, feedProduct{
			ID: p.ID, Name: p.Name, Keywords: p.Keywords, Unit: p.Unit, Prices: prices,
		})
	}
	return feed
}

func TestNewFeedClient(t *testing.T) {
	client := NewFeedClient("https://feed.example.com/", 0)

	assert.Equal(t, "https://feed.example.com", client.baseURL)
	assert.Equal(t, 30*time.Second, client.httpClient.Timeout)
	assert.NotNil(t, client.rateLimiter)
	assert.False(t, client.debug)

	client.SetDebug(true)
	assert.True(t, client.debug)
}

func TestExponentialBackoff(t *testing.T) {
	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{1, 500 * time.Millisecond},
		{2, 1000 * time.Millisecond},
		{3, 2000 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.expected.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, exponentialBackoff(tt.attempt))
		})
	}
}

func TestFeedClient_LoadProducts_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
		assert.Equal(t, "PriceCart/1.0", r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(referenceFeed())
	}))
	defer server.Close()

	client := NewFeedClient(server.URL, 5*time.Second)
	products, err := client.LoadProducts(context.Background())

	require.NoError(t, err)
	assert.Equal(t, ReferenceProducts(), products)
}

func TestFeedClient_LoadProducts_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(referenceFeed())
	}))
	defer server.Close()

	client := NewFeedClient(server.URL, 5*time.Second)
	products, err := client.LoadProducts(context.Background())

	require.NoError(t, err)
	assert.Len(t, products, len(referenceProducts))
	assert.Equal(t, int32(2), calls.Load())
}

func TestFeedClient_LoadProducts_InvalidCatalog(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{
			name: "malformed json",
			body: `{"products": [`,
			want: domain.ErrInvalidCatalog,
		},
		{
			name: "unknown store",
			body: `{"products":[{"id":"p","name":"P","unit":"each","prices":{"maxi":1,"metro":1,"provigo":1,"superc":1,"costco":1}}]}`,
			want: domain.ErrUnknownStore,
		},
		{
			name: "missing store price",
			body: `{"products":[{"id":"p","name":"P","unit":"each","prices":{"maxi":1}}]}`,
			want: domain.ErrInvalidCatalog,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewFeedClient(server.URL, 5*time.Second)
			_, err := client.LoadProducts(context.Background())
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestFeedClient_LoadProducts_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	client := NewFeedClient(server.URL, 5*time.Second)
	_, err := client.LoadProducts(ctx)
	assert.Error(t, err)
}
