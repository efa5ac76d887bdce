package theme

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inno8-site/internal/backend"
)

var sixHex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func TestValidateColor(t *testing.T) {
	cases := map[string]string{
		"#abc":        "#aabbcc",
		"#ABC":        "#AABBCC",
		"#0477BF":     "#0477BF",
		" #012340 ":   "#012340",
		"not-a-color": FallbackColor,
		"#1234567":    FallbackColor,
		"#12345":      FallbackColor,
		"#ggg":        FallbackColor,
		"abc":         FallbackColor,
		"#":           FallbackColor,
		"":            FallbackColor,
		"rgb(1,2,3)":  FallbackColor,
	}
	for in, want := range cases {
		assert.Equal(t, want, ValidateColor(in), "input %q", in)
	}
}

func TestValidateColorAlwaysSixHexDigits(t *testing.T) {
	inputs := []string{"#fff", "#FFFFFF", "#12", "###", "#12345g", "hello", "#a1b2c3", "\t#9f9\n", "#ÿÿÿ"}
	for _, in := range inputs {
		assert.Regexp(t, sixHex, ValidateColor(in), "input %q", in)
	}
}

type stubSource struct {
	mu    sync.Mutex
	calls int
	p     Palette
	err   error
}

func (s *stubSource) FetchPalette(context.Context) (Palette, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.p, s.err
}

func TestStoreStartsWithDefault(t *testing.T) {
	s := NewStore()
	assert.Equal(t, StateDefault, s.State())
	assert.Equal(t, Palette{Primary: "#0477BF", Secondary: "#012340", Accent: "#FCB316", Light: "#048ABF"}, s.Snapshot())
}

func TestStoreResolveValidatesEverySlot(t *testing.T) {
	s := NewStore()
	src := &stubSource{p: Palette{Primary: "#abc", Secondary: "bogus", Accent: "#112233", Light: "#1234567"}}

	state := s.Resolve(context.Background(), src)

	assert.Equal(t, StateResolved, state)
	assert.Equal(t, Palette{Primary: "#aabbcc", Secondary: FallbackColor, Accent: "#112233", Light: FallbackColor}, s.Snapshot())
}

func TestStoreKeepsDefaultOnFailureWithoutRetry(t *testing.T) {
	s := NewStore()
	failing := &stubSource{err: errors.New("connection refused")}

	assert.Equal(t, StateDefault, s.Resolve(context.Background(), failing))
	assert.Equal(t, DefaultPalette, s.Snapshot())

	good := &stubSource{p: Palette{Primary: "#111111", Secondary: "#222222", Accent: "#333333", Light: "#444444"}}
	assert.Equal(t, StateDefault, s.Resolve(context.Background(), good))
	assert.Equal(t, DefaultPalette, s.Snapshot())
	assert.Equal(t, 1, failing.calls)
	assert.Zero(t, good.calls)
}

func TestStoreResolvesOnceUnderConcurrency(t *testing.T) {
	s := NewStore()
	src := &stubSource{p: Palette{Primary: "#111111", Secondary: "#222222", Accent: "#333333", Light: "#444444"}}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Resolve(context.Background(), src)
			_ = s.Snapshot()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, src.calls)
	assert.Equal(t, "#111111", s.Snapshot().Primary)
}

type getterFunc func(ctx context.Context, path string, out any) error

func (f getterFunc) GetJSON(ctx context.Context, path string, out any) error {
	return f(ctx, path, out)
}

func TestRemoteSourceUsesEndpoint(t *testing.T) {
	var gotPath string
	src := RemoteSource{
		Endpoint: "/color-palette",
		Client: getterFunc(func(_ context.Context, path string, out any) error {
			gotPath = path
			*(out.(*json.RawMessage)) = json.RawMessage(`{"primary_color":"#010203"}`)
			return nil
		}),
	}

	p, err := src.FetchPalette(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/color-palette", gotPath)
	assert.Equal(t, "#010203", p.Primary)
}

func TestStoreKeepsDefaultOnMalformedBody(t *testing.T) {
	for name, body := range map[string]string{
		"null":   `null`,
		"empty":  ``,
		"list":   `[{"primary_color":"#123456"}]`,
		"string": `"#123456"`,
		"number": `42`,
		"broken": `{"primary_color":`,
	} {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(body))
			}))
			t.Cleanup(srv.Close)
			client := backend.NewClient(srv.URL, time.Second)
			t.Cleanup(client.HTTPClient.CloseIdleConnections)

			src := RemoteSource{Client: client, Endpoint: EndpointPalette}
			_, err := src.FetchPalette(context.Background())
			assert.ErrorIs(t, err, backend.ErrMalformed)

			s := NewStore()
			assert.Equal(t, StateDefault, s.Resolve(context.Background(), src))
			assert.Equal(t, DefaultPalette, s.Snapshot())
		})
	}
}

func TestMiddlewareDistributesSnapshot(t *testing.T) {
	s := NewStore()
	s.Resolve(context.Background(), &stubSource{p: Palette{Primary: "#fff", Secondary: "#000", Accent: "#f00", Light: "#0f0"}})

	var seen Palette
	h := Middleware(s)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = FromContext(r.Context())
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "#ffffff", seen.Primary)
	assert.Equal(t, "#00ff00", seen.Light)
}

func TestFromContextDefaults(t *testing.T) {
	assert.Equal(t, DefaultPalette, FromContext(context.Background()))
}

func TestCSSVariables(t *testing.T) {
	css := DefaultPalette.CSSVariables()
	assert.Equal(t, ":root{--color-primary:#0477BF;--color-secondary:#012340;--color-accent:#FCB316;--color-light:#048ABF;}", css)
}
