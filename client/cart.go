package client

import (
	"context"
	"sync"
)

// CartState is the client-side mirror of the server cart. Every mutation
// is applied locally first so the caller sees the change with zero
// latency, then confirmed against the server. On failure the pre-mutation
// snapshot is restored; a refetch is used only when no snapshot exists
// (nothing was ever loaded). On success the server's returned cart is
// adopted as the authoritative item list.
//
// The mirror is never a source of truth: it is reconstructed from the
// server on login and cleared unconditionally on logout.
type CartState struct {
	api *Client

	mu      sync.Mutex
	items   []Line
	loading bool
	loaded  bool
}

func NewCartState(api *Client) *CartState {
	return &CartState{api: api}
}

// Load replaces the mirror with the authoritative server cart. Called
// when the owning identity becomes authenticated.
func (s *CartState) Load(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	crt, err := s.api.Cart(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		return err
	}
	s.items = append([]Line(nil), crt.Items...)
	s.loaded = true
	return nil
}

// Clear empties the mirror immediately and unconditionally. Called on
// logout; the pre-logout state is not preserved anywhere.
func (s *CartState) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.loaded = false
}

func (s *CartState) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Items returns a copy of the current mirror lines.
func (s *CartState) Items() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Line(nil), s.items...)
}

// Total is the sum of unit price times quantity over all lines. Derived on
// every call, never cached.
func (s *CartState) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0.0
	for _, l := range s.items {
		total += l.Price * float64(l.Quantity)
	}
	return total
}

// Count is the sum of quantities over all lines.
func (s *CartState) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, l := range s.items {
		count += l.Quantity
	}
	return count
}

// Add optimistically adds line (or merges it into an existing line with
// the same product id), then confirms with the server.
func (s *CartState) Add(ctx context.Context, line Line) error {
	if line.Quantity <= 0 {
		line.Quantity = 1
	}
	s.mu.Lock()
	snapshot := append([]Line(nil), s.items...)
	merged := false
	for i := range s.items {
		if s.items[i].ProductID == line.ProductID {
			s.items[i].Quantity += line.Quantity
			merged = true
			break
		}
	}
	if !merged {
		s.items = append(s.items, line)
	}
	s.mu.Unlock()

	crt, err := s.api.AddItem(ctx, line)
	return s.settle(ctx, snapshot, crt, err)
}

// SetQuantity optimistically sets the line's quantity, dropping the line
// at zero or below, then confirms with the server.
func (s *CartState) SetQuantity(ctx context.Context, productID, quantity int) error {
	s.mu.Lock()
	snapshot := append([]Line(nil), s.items...)
	kept := s.items[:0]
	for _, l := range s.items {
		if l.ProductID == productID {
			if quantity <= 0 {
				continue
			}
			l.Quantity = quantity
		}
		kept = append(kept, l)
	}
	s.items = kept
	s.mu.Unlock()

	crt, err := s.api.SetQuantity(ctx, productID, quantity)
	return s.settle(ctx, snapshot, crt, err)
}

// Remove optimistically drops the line, then confirms with the server.
func (s *CartState) Remove(ctx context.Context, productID int) error {
	s.mu.Lock()
	snapshot := append([]Line(nil), s.items...)
	kept := s.items[:0]
	for _, l := range s.items {
		if l.ProductID != productID {
			kept = append(kept, l)
		}
	}
	s.items = kept
	s.mu.Unlock()

	crt, err := s.api.RemoveItem(ctx, productID)
	return s.settle(ctx, snapshot, crt, err)
}

// Increment raises the line's quantity by one.
func (s *CartState) Increment(ctx context.Context, productID int) error {
	if qty, ok := s.quantityOf(productID); ok {
		return s.SetQuantity(ctx, productID, qty+1)
	}
	return nil
}

// Decrement lowers the line's quantity by one, removing the line when it
// was at one.
func (s *CartState) Decrement(ctx context.Context, productID int) error {
	qty, ok := s.quantityOf(productID)
	switch {
	case !ok:
		return nil
	case qty <= 1:
		return s.Remove(ctx, productID)
	default:
		return s.SetQuantity(ctx, productID, qty-1)
	}
}

// Empty optimistically clears all lines, then confirms with the server.
func (s *CartState) Empty(ctx context.Context) error {
	s.mu.Lock()
	snapshot := append([]Line(nil), s.items...)
	s.items = nil
	s.mu.Unlock()

	err := s.api.EmptyCart(ctx)
	return s.settle(ctx, snapshot, nil, err)
}

func (s *CartState) quantityOf(productID int) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.items {
		if l.ProductID == productID {
			return l.Quantity, true
		}
	}
	return 0, false
}

// settle finishes a mutation: on failure roll back to the snapshot (or
// refetch when the mirror was never populated), on success adopt the
// server's cart when one was returned.
func (s *CartState) settle(ctx context.Context, snapshot []Line, crt *Cart, err error) error {
	if err != nil {
		s.mu.Lock()
		wasLoaded := s.loaded
		if wasLoaded {
			s.items = snapshot
		}
		s.mu.Unlock()
		if !wasLoaded {
			if loadErr := s.Load(ctx); loadErr != nil {
				return loadErr
			}
		}
		return err
	}
	if crt != nil {
		s.mu.Lock()
		s.items = append([]Line(nil), crt.Items...)
		s.loaded = true
		s.mu.Unlock()
	}
	return nil
}
