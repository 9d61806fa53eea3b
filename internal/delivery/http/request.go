package http

import (
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-viper/mapstructure/v2"

	"github.com/pricecart/backend/internal/domain"
	"github.com/pricecart/backend/internal/usecase"
)

// ClientIDHeader identifies the caller for history and rate limiting.
const ClientIDHeader = "X-Client-ID"

// compareBody is the loosely typed request body. Every field is optional and
// any shape is accepted; decodeCompareRequest coerces it.
type compareBody struct {
	Items     any `mapstructure:"items"`
	List      any `mapstructure:"list"`
	MaxStores any `mapstructure:"maxStores"`
	Strategy  any `mapstructure:"strategy"`
}

type itemBody struct {
	Query  string      `mapstructure:"query"`
	Parsed *parsedBody `mapstructure:"parsed"`
}

type parsedBody struct {
	Qty  *float64 `mapstructure:"qty"`
	Unit string   `mapstructure:"unit"`
}

// bindCompareRequest reads the request body. Malformed JSON and unexpected
// shapes degrade to an empty request rather than an error.
func bindCompareRequest(c *gin.Context) *domain.ComparisonRequest {
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		raw = nil
	}

	request := decodeCompareRequest(raw)
	request.ClientID = clientID(c)
	return request
}

func decodeCompareRequest(raw map[string]any) *domain.ComparisonRequest {
	var body compareBody
	if err := weakDecode(raw, &body); err != nil {
		log.Printf("[COMPARE] Ignoring undecodable request body: %v", err)
		body = compareBody{}
	}

	request := &domain.ComparisonRequest{
		Items:     decodeItems(body.Items),
		MaxStores: coerceMaxStores(body.MaxStores),
		Strategy:  coerceStrategy(body.Strategy),
	}

	if list, ok := body.List.(string); ok && strings.TrimSpace(list) != "" {
		request.Items = append(request.Items, usecase.CollectList(list)...)
		request.RawInput = list
	}

	return request
}

// decodeItems accepts a list of {query, parsed} objects or bare strings.
// Anything that is not a list yields no items.
func decodeItems(v any) []domain.QueryItem {
	list, ok := v.([]any)
	if !ok {
		return []domain.QueryItem{}
	}

	items := make([]domain.QueryItem, 0, len(list))
	for _, entry := range list {
		switch e := entry.(type) {
		case string:
			items = append(items, domain.QueryItem{RawText: e, Query: e})
		case map[string]any:
			var ib itemBody
			if err := weakDecode(e, &ib); err != nil {
				// keep the query even when parsed is garbage
				q, _ := e["query"].(string)
				ib = itemBody{Query: q}
			}
			item := domain.QueryItem{RawText: ib.Query, Query: ib.Query}
			if ib.Parsed != nil && (ib.Parsed.Qty != nil || ib.Parsed.Unit != "") {
				item.Parsed = &domain.ParsedQuantity{Qty: ib.Parsed.Qty, Unit: ib.Parsed.Unit}
			}
			items = append(items, item)
		default:
			items = append(items, domain.QueryItem{})
		}
	}
	return items
}

// coerceMaxStores truncates a number or numeric string and clamps it into
// range. Missing or non-numeric input falls back to the default.
func coerceMaxStores(v any) int {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case int:
		f = float64(n)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return domain.DefaultMaxStores
		}
		f = parsed
	default:
		return domain.DefaultMaxStores
	}

	if math.IsNaN(f) {
		return domain.DefaultMaxStores
	}
	f = math.Trunc(f)
	if f < domain.MinMaxStores {
		return domain.MinMaxStores
	}
	if f > domain.MaxMaxStores {
		return domain.MaxMaxStores
	}
	return int(f)
}

func coerceStrategy(v any) domain.Strategy {
	s, _ := v.(string)
	return domain.ParseStrategy(s)
}

func weakDecode(input any, output any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           output,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}

// clientID prefers the X-Client-ID header and falls back to the client IP.
func clientID(c *gin.Context) string {
	if id := strings.TrimSpace(c.GetHeader(ClientIDHeader)); id != "" {
		return id
	}
	return c.ClientIP()
}
