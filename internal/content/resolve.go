// Package content resolves the backend-owned records shown on the site.
// Every section is fetched independently and falls back to static defaults.
package content

import (
	"bytes"
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"

	"inno8-site/internal/backend"
	xlog "inno8-site/internal/log"
)

// Fetcher is the slice of the backend client the resolver needs.
type Fetcher interface {
	GetJSON(ctx context.Context, path string, out any) error
}

const (
	sourceNetwork  = "network"
	sourceFallback = "fallback"
)

type options[T any] struct {
	name string
	post func([]T) []T
}

// Option configures a single Resolve call.
type Option[T any] func(*options[T])

// WithPostFilter runs f on the resolved list, whichever source it came from.
func WithPostFilter[T any](f func([]T) []T) Option[T] {
	return func(o *options[T]) { o.post = f }
}

// WithName labels logs and metrics for this resolution.
func WithName[T any](name string) Option[T] {
	return func(o *options[T]) { o.name = name }
}

// Resolve fetches endpoint once. A 2xx list body is returned verbatim;
// any failure returns fallback unchanged. The post filter, if set, is then
// applied to whichever list was chosen.
func Resolve[T any](ctx context.Context, f Fetcher, endpoint string, fallback []T, opts ...Option[T]) []T {
	o := options[T]{name: strings.Trim(endpoint, "/")}
	for _, opt := range opts {
		opt(&o)
	}

	var items []T
	err := f.GetJSON(ctx, endpoint, &items)
	if err == nil && items == nil {
		err = fmt.Errorf("%s: %w: null body", endpoint, backend.ErrMalformed)
	}

	result, source := items, sourceNetwork
	if err != nil {
		result, source = fallback, sourceFallback
		logFallback(ctx, o.name, endpoint, err)
	}
	MetricSectionResolutions.WithLabelValues(o.name, source).Inc()

	if o.post != nil {
		result = o.post(result)
	}
	return result
}

// ResolveOne is Resolve for endpoints that return a single object. A list
// body is accepted and its first element used; an empty list counts as failure.
func ResolveOne[T any](ctx context.Context, f Fetcher, endpoint string, fallback T, opts ...Option[T]) T {
	o := options[T]{name: strings.Trim(endpoint, "/")}
	for _, opt := range opts {
		opt(&o)
	}

	var raw json.RawMessage
	err := f.GetJSON(ctx, endpoint, &raw)
	var result T
	if err == nil {
		result, err = decodeOne[T](endpoint, raw)
	}

	source := sourceNetwork
	if err != nil {
		result, source = fallback, sourceFallback
		logFallback(ctx, o.name, endpoint, err)
	}
	MetricSectionResolutions.WithLabelValues(o.name, source).Inc()
	return result
}

func decodeOne[T any](endpoint string, raw json.RawMessage) (T, error) {
	var zero T
	trimmed := bytes.TrimSpace(raw)
	switch {
	case len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")):
		return zero, fmt.Errorf("%s: %w: empty body", endpoint, backend.ErrMalformed)
	case trimmed[0] == '[':
		var list []T
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return zero, fmt.Errorf("%s: %w: %v", endpoint, backend.ErrMalformed, err)
		}
		if len(list) == 0 {
			return zero, fmt.Errorf("%s: %w: empty list", endpoint, backend.ErrMalformed)
		}
		return list[0], nil
	default:
		var v T
		if err := json.Unmarshal(trimmed, &v); err != nil {
			return zero, fmt.Errorf("%s: %w: %v", endpoint, backend.ErrMalformed, err)
		}
		return v, nil
	}
}

func logFallback(ctx context.Context, name, endpoint string, err error) {
	l := xlog.FromContext(ctx, "content")
	l.Warn().
		Err(err).
		Str(xlog.FieldSection, name).
		Str(xlog.FieldEndpoint, endpoint).
		Str("kind", backend.Kind(err)).
		Msg("section fetch failed, serving fallback")
}

// ActiveOrdered keeps active items and stable-sorts them by order. The input
// slice is not modified.
func ActiveOrdered[T Listable](items []T) []T {
	out := lo.Filter(items, func(item T, _ int) bool { return item.IsActive() })
	slices.SortStableFunc(out, func(a, b T) int { return cmp.Compare(a.SortOrder(), b.SortOrder()) })
	return out
}

// ActiveNewestFirst keeps active posts, most recently published first.
func ActiveNewestFirst(posts []BlogPost) []BlogPost {
	out := lo.Filter(posts, func(p BlogPost, _ int) bool { return p.Active })
	slices.SortStableFunc(out, func(a, b BlogPost) int { return strings.Compare(b.PublishedAt, a.PublishedAt) })
	return out
}
