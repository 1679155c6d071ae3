// Command cli is a small interactive storefront client built on the SDK.
// It drives the same API the web frontend uses, keeping a local optimistic
// cart mirror in sync with the server.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/term"

	"storefront/client"
)

func main() {
	_ = godotenv.Load()

	baseURL := os.Getenv("STOREFRONT_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8800"
	}

	app := &app{
		api:  client.New(baseURL),
		in:   bufio.NewReader(os.Stdin),
		quit: false,
	}
	app.cart = client.NewCartState(app.api)

	fmt.Printf("storefront cli (%s), type 'help' for commands\n", baseURL)
	for !app.quit {
		fmt.Print("> ")
		line, err := app.in.ReadString('\n')
		if err != nil {
			break
		}
		app.dispatch(strings.Fields(strings.TrimSpace(line)))
	}
}

type app struct {
	api  *client.Client
	cart *client.CartState
	in   *bufio.Reader
	quit bool
}

func (a *app) dispatch(args []string) {
	if len(args) == 0 {
		return
	}
	ctx := context.Background()
	var err error
	switch args[0] {
	case "help":
		a.help()
	case "register":
		err = a.register(ctx)
	case "login":
		err = a.login(ctx)
	case "logout":
		a.api.Logout()
		a.cart.Clear()
		fmt.Println("logged out")
	case "whoami":
		err = a.whoami(ctx)
	case "products":
		err = a.products(ctx, args[1:])
	case "cart":
		a.showCart()
	case "add":
		err = a.add(ctx, args[1:])
	case "qty":
		err = a.setQuantity(ctx, args[1:])
	case "remove":
		err = a.remove(ctx, args[1:])
	case "clear":
		err = a.cart.Empty(ctx)
	case "wishlist":
		err = a.wishlist(ctx, args[1:])
	case "exit", "quit":
		a.quit = true
	default:
		fmt.Printf("unknown command %q\n", args[0])
	}
	if err != nil {
		fmt.Println("error:", err)
	}
}

func (a *app) help() {
	fmt.Print(`commands:
  register             create an account and sign in
  login                sign in
  logout               sign out and drop the local cart
  whoami               show the current account
  products [category]  list catalog products
  cart                 show the local cart mirror
  add <productId>      add a product to the cart
  qty <productId> <n>  set a line's quantity (0 removes it)
  remove <productId>   remove a line
  clear                empty the cart
  wishlist [add|rm id] show or edit the wishlist
  exit
`)
}

func (a *app) prompt(label string) (string, error) {
	fmt.Print(label)
	line, err := a.in.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (a *app) promptPassword(label string) (string, error) {
	fmt.Print(label)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func (a *app) register(ctx context.Context) error {
	name, err := a.prompt("name: ")
	if err != nil {
		return err
	}
	email, err := a.prompt("email: ")
	if err != nil {
		return err
	}
	password, err := a.promptPassword("password: ")
	if err != nil {
		return err
	}
	u, err := a.api.Signup(ctx, name, email, password)
	if err != nil {
		return err
	}
	fmt.Printf("welcome, %s\n", u.Email)
	return a.cart.Load(ctx)
}

func (a *app) login(ctx context.Context) error {
	email, err := a.prompt("email: ")
	if err != nil {
		return err
	}
	password, err := a.promptPassword("password: ")
	if err != nil {
		return err
	}
	u, err := a.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	fmt.Printf("welcome back, %s\n", u.Email)
	return a.cart.Load(ctx)
}

func (a *app) whoami(ctx context.Context) error {
	u, err := a.api.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s (%s) role=%s wishlist=%v\n", u.Email, u.Name, u.Role, u.Wishlist)
	return nil
}

func (a *app) products(ctx context.Context, args []string) error {
	q := client.ProductQuery{Limit: 20}
	if len(args) > 0 {
		q.Category = args[0]
	}
	products, err := a.api.Products(ctx, q)
	if err != nil {
		return err
	}
	for _, p := range products {
		fmt.Printf("%4d  %-50.50s  %8.2f  %s\n", p.ID, p.Title, p.Price, p.Category)
	}
	return nil
}

func (a *app) showCart() {
	items := a.cart.Items()
	if len(items) == 0 {
		fmt.Println("cart is empty")
		return
	}
	for _, l := range items {
		fmt.Printf("%4d  %-50.50s  %3d x %8.2f\n", l.ProductID, l.Title, l.Quantity, l.Price)
	}
	fmt.Printf("total: %.2f (%d items)\n", a.cart.Total(), a.cart.Count())
}

func (a *app) add(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: add <productId>")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid product id %q", args[0])
	}
	p, err := a.api.Product(ctx, id)
	if err != nil {
		return err
	}
	return a.cart.Add(ctx, client.Line{
		ProductID: p.ID,
		Title:     p.Title,
		Price:     p.Price,
		Image:     p.Image,
		Quantity:  1,
	})
}

func (a *app) setQuantity(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: qty <productId> <n>")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid product id %q", args[0])
	}
	qty, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid quantity %q", args[1])
	}
	return a.cart.SetQuantity(ctx, id, qty)
}

func (a *app) remove(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: remove <productId>")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid product id %q", args[0])
	}
	return a.cart.Remove(ctx, id)
}

func (a *app) wishlist(ctx context.Context, args []string) error {
	if len(args) == 0 {
		list, err := a.api.Wishlist(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("wishlist: %v\n", list)
		return nil
	}
	if len(args) < 2 {
		return fmt.Errorf("usage: wishlist [add|rm <productId>]")
	}
	id, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid product id %q", args[1])
	}
	var list []int
	switch args[0] {
	case "add":
		list, err = a.api.AddToWishlist(ctx, id)
	case "rm":
		list, err = a.api.RemoveFromWishlist(ctx, id)
	default:
		return fmt.Errorf("usage: wishlist [add|rm <productId>]")
	}
	if err != nil {
		return err
	}
	fmt.Printf("wishlist: %v\n", list)
	return nil
}
