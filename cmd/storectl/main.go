// cmd/storectl is a small operator CLI for the storefront service. It
// talks to the API exclusively through the client façade, so it keeps
// working unchanged when the generated bindings are refreshed.
//
// Usage:
//
//	storectl users list
//	storectl users get <id>
//	storectl users create < user.json
//	storectl users delete <id>
//	storectl products list
//	storectl products get <id>
//	storectl products create < product.json
//	storectl products delete <id>
//
// The server address comes from API_BASE_URL (default
// http://localhost:8080).
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/mattbenson/storefront/client"
	"github.com/mattbenson/storefront/internal/config"
	"github.com/mattbenson/storefront/model"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("storectl: ")

	if len(os.Args) < 3 {
		usage()
	}
	collection, verb := os.Args[1], os.Args[2]

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	c := client.New(cfg.Client.BaseURL)
	ctx := context.Background()

	switch collection {
	case "users":
		runUsers(ctx, c, verb, os.Args[3:])
	case "products":
		runProducts(ctx, c, verb, os.Args[3:])
	default:
		usage()
	}
}

func runUsers(ctx context.Context, c *client.Client, verb string, args []string) {
	switch verb {
	case "list":
		users, err := c.Users.List(ctx)
		if err != nil {
			log.Fatalf("listing users: %v", err)
		}
		printJSON(users)
	case "get":
		u, err := c.Users.Get(ctx, parseIDArg(args))
		if err != nil {
			log.Fatalf("getting user: %v", err)
		}
		printJSON(u)
	case "create":
		var u model.User
		if err := json.NewDecoder(os.Stdin).Decode(&u); err != nil {
			log.Fatalf("decoding user payload: %v", err)
		}
		created, err := c.Users.Create(ctx, u)
		if err != nil {
			log.Fatalf("creating user: %v", err)
		}
		printJSON(created)
	case "delete":
		id := parseIDArg(args)
		if err := c.Users.Delete(ctx, id); err != nil {
			log.Fatalf("deleting user: %v", err)
		}
		fmt.Printf("deleted user %d\n", id)
	default:
		usage()
	}
}

func runProducts(ctx context.Context, c *client.Client, verb string, args []string) {
	switch verb {
	case "list":
		products, err := c.Products.List(ctx)
		if err != nil {
			log.Fatalf("listing products: %v", err)
		}
		printJSON(products)
	case "get":
		p, err := c.Products.Get(ctx, parseIDArg(args))
		if err != nil {
			log.Fatalf("getting product: %v", err)
		}
		printJSON(p)
	case "create":
		var p model.Product
		if err := json.NewDecoder(os.Stdin).Decode(&p); err != nil {
			log.Fatalf("decoding product payload: %v", err)
		}
		created, err := c.Products.Create(ctx, p)
		if err != nil {
			log.Fatalf("creating product: %v", err)
		}
		printJSON(created)
	case "delete":
		id := parseIDArg(args)
		if err := c.Products.Delete(ctx, id); err != nil {
			log.Fatalf("deleting product: %v", err)
		}
		fmt.Printf("deleted product %d\n", id)
	default:
		usage()
	}
}

func parseIDArg(args []string) int64 {
	if len(args) < 1 {
		usage()
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		log.Fatalf("invalid id %q", args[0])
	}
	return id
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		log.Fatalf("encoding output: %v", err)
	}
	fmt.Println(string(out))
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: storectl {users|products} {list|get|create|delete} [id]")
	os.Exit(2)
}
