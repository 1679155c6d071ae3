// Package client is a Go SDK for the storefront API: a typed HTTP client
// plus an optimistic in-memory cart mirror (CartState).
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"
)

// APIError is a non-2xx response decoded from the server's error body.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

type User struct {
	ID       string `json:"id"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Wishlist []int  `json:"wishlist"`
}

// Line is one cart line as the server reports it.
type Line struct {
	ProductID int     `json:"productId"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
}

type Cart struct {
	Items []Line `json:"items"`
}

type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

type Product struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Rating      Rating  `json:"rating"`
	Stock       int     `json:"stock"`
}

type session struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// Client talks to the storefront API using the bearer transport. The token
// obtained at login is attached to every subsequent request.
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) Signup(ctx context.Context, name, email, password string) (*User, error) {
	var s session
	err := c.do(ctx, http.MethodPost, "/api/auth/signup", map[string]string{
		"name": name, "email": email, "password": password,
	}, &s)
	if err != nil {
		return nil, err
	}
	c.SetToken(s.Token)
	return s.User, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	var s session
	err := c.do(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"email": email, "password": password,
	}, &s)
	if err != nil {
		return nil, err
	}
	c.SetToken(s.Token)
	return s.User, nil
}

// Logout discards the stored token. The server is stateless with respect
// to bearer tokens, so no request is needed.
func (c *Client) Logout() {
	c.SetToken("")
}

func (c *Client) Me(ctx context.Context) (*User, error) {
	var resp struct {
		User *User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

func (c *Client) Cart(ctx context.Context) (*Cart, error) {
	var crt Cart
	if err := c.do(ctx, http.MethodGet, "/api/cart", nil, &crt); err != nil {
		return nil, err
	}
	return &crt, nil
}

func (c *Client) AddItem(ctx context.Context, line Line) (*Cart, error) {
	var crt Cart
	if err := c.do(ctx, http.MethodPost, "/api/cart", line, &crt); err != nil {
		return nil, err
	}
	return &crt, nil
}

func (c *Client) SetQuantity(ctx context.Context, productID, quantity int) (*Cart, error) {
	var crt Cart
	body := map[string]int{"productId": productID, "quantity": quantity}
	if err := c.do(ctx, http.MethodPut, "/api/cart", body, &crt); err != nil {
		return nil, err
	}
	return &crt, nil
}

func (c *Client) RemoveItem(ctx context.Context, productID int) (*Cart, error) {
	var crt Cart
	path := "/api/cart/" + strconv.Itoa(productID)
	if err := c.do(ctx, http.MethodDelete, path, nil, &crt); err != nil {
		return nil, err
	}
	return &crt, nil
}

func (c *Client) EmptyCart(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/api/cart", nil, nil)
}

// ProductQuery mirrors the server's list filters; zero values are omitted.
type ProductQuery struct {
	Category string
	MinPrice float64
	MaxPrice float64
	Text     string
	Sort     string
	Limit    int
	Skip     int
}

func (c *Client) Products(ctx context.Context, q ProductQuery) ([]Product, error) {
	path := "/api/products" + q.encode()
	var products []Product
	if err := c.do(ctx, http.MethodGet, path, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) Product(ctx context.Context, id int) (*Product, error) {
	var p Product
	if err := c.do(ctx, http.MethodGet, "/api/products/"+strconv.Itoa(id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := c.do(ctx, http.MethodGet, "/api/products/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) Wishlist(ctx context.Context) ([]int, error) {
	var resp struct {
		Wishlist []int `json:"wishlist"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/wishlist", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Wishlist, nil
}

func (c *Client) AddToWishlist(ctx context.Context, productID int) ([]int, error) {
	var resp struct {
		Wishlist []int `json:"wishlist"`
	}
	body := map[string]int{"productId": productID}
	if err := c.do(ctx, http.MethodPost, "/api/wishlist", body, &resp); err != nil {
		return nil, err
	}
	return resp.Wishlist, nil
}

func (c *Client) RemoveFromWishlist(ctx context.Context, productID int) ([]int, error) {
	var resp struct {
		Wishlist []int `json:"wishlist"`
	}
	path := "/api/wishlist/" + strconv.Itoa(productID)
	if err := c.do(ctx, http.MethodDelete, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Wishlist, nil
}

func (q ProductQuery) encode() string {
	params := url.Values{}
	if q.Category != "" {
		params.Set("category", q.Category)
	}
	if q.Text != "" {
		params.Set("q", q.Text)
	}
	if q.Sort != "" {
		params.Set("sort", q.Sort)
	}
	if q.MinPrice > 0 {
		params.Set("minPrice", strconv.FormatFloat(q.MinPrice, 'f', -1, 64))
	}
	if q.MaxPrice > 0 {
		params.Set("maxPrice", strconv.FormatFloat(q.MaxPrice, 'f', -1, 64))
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Skip > 0 {
		params.Set("skip", strconv.Itoa(q.Skip))
	}
	if len(params) == 0 {
		return ""
	}
	return "?" + params.Encode()
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(raw)
	} else {
		rd = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var payload struct {
			Message string `json:"message"`
		}
		if json.NewDecoder(resp.Body).Decode(&payload) == nil {
			apiErr.Message = payload.Message
		}
		return apiErr
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
