package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/fandressouza/indicacoes/internal/app"
	"github.com/fandressouza/indicacoes/internal/config"
)

// Grants the admin flag to a registered account. Admins are never created through the web.
func main() {
	email := flag.String("email", "", "email of the account to promote")
	revoke := flag.Bool("revoke", false, "remove the admin flag instead")
	flag.Parse()

	if *email == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := app.OpenStore(ctx, cfg)
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer store.Close()

	user, err := app.SetAdminByEmail(ctx, store.UserRepo, *email, !*revoke)
	if err != nil {
		log.Fatalf("Failed to update %s: %v", *email, err)
	}

	fmt.Printf("✓ %s (%s) admin=%v\n", user.Email, user.ID, user.IsAdmin)
	fmt.Println("The change applies from the user's next login.")
}
