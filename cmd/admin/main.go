// Command admin bootstraps the first superadmin account. It talks to the
// database directly through the repository layer, so it works before the API
// server has ever started.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/fieldpass/fieldpass/internal/admincli"
	"github.com/fieldpass/fieldpass/internal/server/auth"
	"github.com/fieldpass/fieldpass/internal/server/config"
	"github.com/fieldpass/fieldpass/internal/server/models"
	"github.com/fieldpass/fieldpass/internal/server/repositories/repomanager"
	"github.com/fieldpass/fieldpass/internal/server/shared/db"
	"github.com/google/uuid"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()

	reader := bufio.NewReader(os.Stdin)

	email, err := admincli.GetSimpleText(reader, "Superadmin email", os.Stdout)
	if err != nil {
		log.Fatalf("read email: %v", err)
	}
	name, err := admincli.GetSimpleText(reader, "Display name", os.Stdout)
	if err != nil {
		log.Fatalf("read name: %v", err)
	}
	password, err := admincli.GetPassword(os.Stdout)
	if err != nil {
		log.Fatalf("read password: %v", err)
	}
	if len(password) < 8 {
		log.Fatal("password must be at least 8 characters")
	}

	database, err := db.OpenPostgres(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer database.Close()

	repos := repomanager.NewPostgresRepositoryManager()
	if err := repos.RunMigrations(ctx, database); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	hash, err := auth.HashPassword(password, cfg.PasswordHashCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: hash,
		Name:         name,
		Provider:     models.ProviderCredentials,
		Verified:     true,
		Role:         models.RoleSuperAdmin,
		TeamIDs:      []string{},
	}

	created, err := repos.Users(database).Create(ctx, user)
	if err != nil {
		log.Fatalf("create superadmin: %v", err)
	}

	fmt.Printf("superadmin created: id=%s email=%s\n", created.ID, created.Email)
}
