package usecase

import (
	"iter"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/pricecart/backend/internal/domain"
)

// Matches an optional leading quantity ("2", "1.5"), an optional multiplier
// ("x", "×") and an optional unit token, e.g. "2 kg chicken", "3x bananas",
// "500 ml cream". The remainder is captured as the query.
var quantityPrefixPattern = regexp.MustCompile(
	`(?i)^(?:(\d+(?:\.\d+)?)\s*(?:(?:x|×)(?:\s+|$))?)?(?:(kg|g|lb|l|ml)(?:\s+|$))?(.*)$`,
)

// ParseList splits a raw shopping list on newlines and commas into query
// items, in input order. The sequence is lazy and can be ranged over any
// number of times.
func ParseList(raw string) iter.Seq[domain.QueryItem] {
	return func(yield func(domain.QueryItem) bool) {
		rest := raw
		for len(rest) > 0 {
			end := strings.IndexAny(rest, "\n,")
			var segment string
			if end < 0 {
				segment, rest = rest, ""
			} else {
				segment, rest = rest[:end], rest[end+1:]
			}

			segment = strings.Join(strings.Fields(segment), " ")
			if segment == "" {
				continue
			}
			if !yield(ParseLine(segment)) {
				return
			}
		}
	}
}

// CollectList materializes ParseList.
func CollectList(raw string) []domain.QueryItem {
	return slices.Collect(ParseList(raw))
}

// ParseLine extracts the leading quantity/unit from one list line. Lines
// without a usable prefix, or whose prefix would leave nothing to search for,
// become the query verbatim.
func ParseLine(line string) domain.QueryItem {
	line = strings.Join(strings.Fields(line), " ")
	item := domain.QueryItem{RawText: line, Query: line}

	m := quantityPrefixPattern.FindStringSubmatch(line)
	if m == nil {
		return item
	}
	qtyRaw, unit, query := m[1], strings.ToLower(m[2]), strings.TrimSpace(m[3])
	if qtyRaw == "" && unit == "" {
		return item
	}
	if query == "" {
		return item
	}

	parsed := &domain.ParsedQuantity{Unit: unit}
	if qtyRaw != "" {
		qty, err := strconv.ParseFloat(qtyRaw, 64)
		if err != nil {
			return item
		}
		parsed.Qty = &qty
	}

	item.Query = query
	item.Parsed = parsed
	return item
}
