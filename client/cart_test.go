package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cartServer is a minimal in-memory stand-in for the cart endpoints, with
// switches to simulate failures.
type cartServer struct {
	items    []Line
	failNext bool
}

func (cs *cartServer) handler() http.Handler {
	fail := func(w http.ResponseWriter) bool {
		if cs.failNext {
			cs.failNext = false
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"message": "Internal server error"})
			return true
		}
		return false
	}
	respond := func(w http.ResponseWriter) {
		json.NewEncoder(w).Encode(Cart{Items: cs.items})
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/cart":
			respond(w)
		case r.Method == http.MethodPost && r.URL.Path == "/api/cart":
			if fail(w) {
				return
			}
			var line Line
			json.NewDecoder(r.Body).Decode(&line)
			merged := false
			for i := range cs.items {
				if cs.items[i].ProductID == line.ProductID {
					cs.items[i].Quantity += line.Quantity
					merged = true
				}
			}
			if !merged {
				cs.items = append(cs.items, line)
			}
			respond(w)
		case r.Method == http.MethodPut && r.URL.Path == "/api/cart":
			if fail(w) {
				return
			}
			var req struct {
				ProductID int `json:"productId"`
				Quantity  int `json:"quantity"`
			}
			json.NewDecoder(r.Body).Decode(&req)
			kept := cs.items[:0]
			for _, l := range cs.items {
				if l.ProductID == req.ProductID {
					if req.Quantity <= 0 {
						continue
					}
					l.Quantity = req.Quantity
				}
				kept = append(kept, l)
			}
			cs.items = kept
			respond(w)
		case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/api/cart/"):
			if fail(w) {
				return
			}
			id, _ := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/api/cart/"))
			kept := cs.items[:0]
			for _, l := range cs.items {
				if l.ProductID != id {
					kept = append(kept, l)
				}
			}
			cs.items = kept
			respond(w)
		case r.Method == http.MethodDelete && r.URL.Path == "/api/cart":
			if fail(w) {
				return
			}
			cs.items = nil
			json.NewEncoder(w).Encode(map[string]string{"message": "Cart emptied"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

func newCartTestState(t *testing.T) (*CartState, *cartServer) {
	t.Helper()
	cs := &cartServer{}
	srv := httptest.NewServer(cs.handler())
	t.Cleanup(srv.Close)
	return NewCartState(New(srv.URL)), cs
}

func line(productID, qty int) Line {
	return Line{ProductID: productID, Title: "Thing", Price: 2.5, Quantity: qty}
}

func TestLoadPopulatesMirror(t *testing.T) {
	state, cs := newCartTestState(t)
	cs.items = []Line{line(1, 2)}

	require.NoError(t, state.Load(context.Background()))
	assert.Equal(t, cs.items, state.Items())
	assert.False(t, state.Loading())
}

func TestAddIsOptimisticAndConfirmed(t *testing.T) {
	state, cs := newCartTestState(t)
	require.NoError(t, state.Load(context.Background()))

	require.NoError(t, state.Add(context.Background(), line(1, 0)))
	items := state.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity, "zero quantity defaults to one")

	// Same product merges into one line both locally and server-side.
	require.NoError(t, state.Add(context.Background(), line(1, 2)))
	items = state.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
	require.Len(t, cs.items, 1)
	assert.Equal(t, 3, cs.items[0].Quantity)
}

func TestAddFailureRollsBackToSnapshot(t *testing.T) {
	state, cs := newCartTestState(t)
	cs.items = []Line{line(1, 2)}
	require.NoError(t, state.Load(context.Background()))

	cs.failNext = true
	err := state.Add(context.Background(), line(9, 1))
	require.Error(t, err)

	// The optimistically-added line is gone; the pre-mutation state is back.
	items := state.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].ProductID)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestMutationFailureWithoutSnapshotRefetches(t *testing.T) {
	state, cs := newCartTestState(t)
	cs.items = []Line{line(5, 4)}

	// The mirror was never loaded, so there is no snapshot to restore;
	// rollback degrades to a refetch of the authoritative cart.
	cs.failNext = true
	err := state.Add(context.Background(), line(9, 1))
	require.Error(t, err)

	items := state.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].ProductID)
}

func TestSetQuantityZeroDropsLine(t *testing.T) {
	state, _ := newCartTestState(t)
	require.NoError(t, state.Load(context.Background()))
	require.NoError(t, state.Add(context.Background(), line(1, 2)))

	require.NoError(t, state.SetQuantity(context.Background(), 1, 0))
	assert.Empty(t, state.Items())
}

func TestIncrementDecrement(t *testing.T) {
	state, _ := newCartTestState(t)
	require.NoError(t, state.Load(context.Background()))
	require.NoError(t, state.Add(context.Background(), line(1, 1)))

	require.NoError(t, state.Increment(context.Background(), 1))
	require.Len(t, state.Items(), 1)
	assert.Equal(t, 2, state.Items()[0].Quantity)

	require.NoError(t, state.Decrement(context.Background(), 1))
	assert.Equal(t, 1, state.Items()[0].Quantity)

	// Decrement at quantity one removes the line.
	require.NoError(t, state.Decrement(context.Background(), 1))
	assert.Empty(t, state.Items())

	// Unknown product is a no-op.
	require.NoError(t, state.Increment(context.Background(), 42))
}

func TestTotalsAreDerived(t *testing.T) {
	state, _ := newCartTestState(t)
	require.NoError(t, state.Load(context.Background()))
	require.NoError(t, state.Add(context.Background(), Line{ProductID: 1, Price: 2.5, Title: "A", Quantity: 2}))
	require.NoError(t, state.Add(context.Background(), Line{ProductID: 2, Price: 10, Title: "B", Quantity: 1}))

	assert.InDelta(t, 15.0, state.Total(), 1e-9)
	assert.Equal(t, 3, state.Count())

	require.NoError(t, state.Empty(context.Background()))
	assert.Zero(t, state.Total())
	assert.Zero(t, state.Count())
}

func TestClearOnLogoutIsUnconditional(t *testing.T) {
	state, cs := newCartTestState(t)
	cs.items = []Line{line(1, 2)}
	require.NoError(t, state.Load(context.Background()))
	require.NotEmpty(t, state.Items())

	state.Clear()
	assert.Empty(t, state.Items())
	assert.Zero(t, state.Count())
}
