package cart

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrCartNotFound = errors.New("cart: cart not found")
	ErrItemNotFound = errors.New("cart: item not in cart")
)

// Service holds the cart business logic, keyed by the authenticated user's
// id. Every mutation returns the full updated cart so the client can adopt
// it as authoritative state.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetOrCreate returns the user's cart, lazily creating an empty one on
// first access. Two concurrent first-requests can both attempt the insert;
// the unique userId index lets exactly one succeed and the loser retries
// into a read of the now-existing cart.
func (s *Service) GetOrCreate(ctx context.Context, userID primitive.ObjectID) (*Cart, error) {
	c, err := s.repo.FindByUser(ctx, userID)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	created := &Cart{UserID: userID, Items: []Item{}}
	if err := s.repo.Insert(ctx, created); err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			return s.repo.FindByUser(ctx, userID)
		}
		return nil, err
	}
	return created, nil
}

// AddItem adds a line for item.ProductID, or increments the existing
// line's quantity by item.Quantity. No upper bound is enforced; stock
// levels are informational and live outside this flow.
func (s *Service) AddItem(ctx context.Context, userID primitive.ObjectID, item Item) (*Cart, error) {
	if item.Quantity <= 0 {
		item.Quantity = 1
	}
	c, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	items := c.Items
	found := false
	for i := range items {
		if items[i].ProductID == item.ProductID {
			items[i].Quantity += item.Quantity
			found = true
			break
		}
	}
	if !found {
		items = append(items, item)
	}
	return s.repo.SaveItems(ctx, userID, items)
}

// SetQuantity sets the line's quantity. A quantity <= 0 removes the line
// entirely; it is never persisted as zero or negative.
func (s *Service) SetQuantity(ctx context.Context, userID primitive.ObjectID, productID, quantity int) (*Cart, error) {
	c, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrCartNotFound
		}
		return nil, err
	}
	idx := -1
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrItemNotFound
	}
	items := c.Items
	if quantity <= 0 {
		items = append(items[:idx], items[idx+1:]...)
	} else {
		items[idx].Quantity = quantity
	}
	return s.repo.SaveItems(ctx, userID, items)
}

// RemoveItem removes the line for productID. A missing line is a no-op,
// not an error; a missing cart is.
func (s *Service) RemoveItem(ctx context.Context, userID primitive.ObjectID, productID int) (*Cart, error) {
	c, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrCartNotFound
		}
		return nil, err
	}
	items := make([]Item, 0, len(c.Items))
	for _, it := range c.Items {
		if it.ProductID != productID {
			items = append(items, it)
		}
	}
	if len(items) == len(c.Items) {
		return c, nil
	}
	return s.repo.SaveItems(ctx, userID, items)
}

// Empty resets the cart to an empty item list with upsert semantics: the
// document is created if it did not exist, so Empty never fails with
// "not found".
func (s *Service) Empty(ctx context.Context, userID primitive.ObjectID) error {
	return s.repo.EmptyUpsert(ctx, userID)
}
