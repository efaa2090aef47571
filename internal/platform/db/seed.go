package db

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"hrrecords/internal/domain/auth"
	"hrrecords/internal/platform/config"
)

// Seed creates the bootstrap HR account. It is a no-op without SEED_ADMIN_EMAIL.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	email := strings.TrimSpace(cfg.SeedAdminEmail)
	if email == "" || cfg.SeedAdminPassword == "" {
		return nil
	}
	hash, err := auth.HashPassword(cfg.SeedAdminPassword)
	if err != nil {
		return err
	}
	_, err = auth.NewStore(pool).EnsureUser(ctx, strings.ToLower(email), cfg.SeedAdminName, auth.RoleHR, hash)
	return err
}
