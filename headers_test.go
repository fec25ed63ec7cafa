package fetch_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alkaid-labs/fetch"
)

func newClient(t *testing.T, opts ...fetch.Option) *fetch.Client {
	t.Helper()
	client, err := fetch.New(opts...)
	require.NoError(t, err)
	return client
}

func TestSetGlobalHeaders(t *testing.T) {
	client := newClient(t)

	client.SetGlobalHeaders(fetch.Headers{"X-A": fetch.String("1")})
	assert.Equal(t, map[string]string{"X-A": "1"}, client.GlobalHeaders(fetch.ScopeCommon))

	t.Run("overwrite", func(t *testing.T) {
		client.SetGlobalHeaders(fetch.Headers{"X-A": fetch.String("2")})
		assert.Equal(t, "2", client.GlobalHeaders(fetch.ScopeCommon)["X-A"])
	})

	t.Run("nil deletes", func(t *testing.T) {
		client.SetGlobalHeaders(fetch.Headers{"X-A": nil})
		assert.NotContains(t, client.GlobalHeaders(fetch.ScopeCommon), "X-A")
	})

	t.Run("deleting absent is a no-op", func(t *testing.T) {
		client.SetGlobalHeaders(fetch.Headers{"Never-Set": nil})
		assert.Empty(t, client.GlobalHeaders(fetch.ScopeCommon))
	})
}

func TestSetScopedHeaders(t *testing.T) {
	client := newClient(t)

	client.SetScopedHeaders(fetch.ScopedHeaders{
		fetch.ScopeCommon: {"A": fetch.String("1")},
		fetch.ScopePost:   {"B": fetch.String("2")},
	})

	assert.Equal(t, map[string]string{"A": "1"}, client.GlobalHeaders(fetch.ScopeCommon))
	assert.Equal(t, map[string]string{"B": "2"}, client.GlobalHeaders(fetch.ScopePost))
	assert.Empty(t, client.GlobalHeaders(fetch.ScopeGet))

	t.Run("unknown scope ignored", func(t *testing.T) {
		client.SetScopedHeaders(fetch.ScopedHeaders{
			fetch.Scope("trace"): {"C": fetch.String("3")},
		})
		for _, scope := range []fetch.Scope{fetch.ScopeCommon, fetch.ScopeGet, fetch.ScopePost} {
			assert.NotContains(t, client.GlobalHeaders(scope), "C")
		}
	})
}

func TestClearGlobalHeaders(t *testing.T) {
	client := newClient(t)
	client.SetScopedHeaders(fetch.ScopedHeaders{
		fetch.ScopeCommon: {"A": fetch.String("1")},
		fetch.ScopePost:   {"B": fetch.String("2")},
	})

	client.ClearGlobalHeaders()

	// Scopes survive a clear, their contents do not
	assert.Empty(t, client.GlobalHeaders(fetch.ScopeCommon))
	assert.Empty(t, client.GlobalHeaders(fetch.ScopePost))

	client.SetScopedHeaders(fetch.ScopedHeaders{
		fetch.ScopePost: {"B": fetch.String("3")},
	})
	assert.Equal(t, "3", client.GlobalHeaders(fetch.ScopePost)["B"])
}

func TestConstructionSeedsHeaders(t *testing.T) {
	client := newClient(t,
		fetch.WithHeaders(map[string]string{"X-App": "demo"}),
		fetch.WithHeaderScopes(fetch.ScopedHeaders{
			fetch.ScopeDelete: {"X-Confirm": fetch.String("yes")},
		}),
	)

	assert.Equal(t, "demo", client.GlobalHeaders(fetch.ScopeCommon)["X-App"])
	assert.Equal(t, "yes", client.GlobalHeaders(fetch.ScopeDelete)["X-Confirm"])
}
