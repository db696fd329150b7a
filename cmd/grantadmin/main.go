// grantadmin grants the isAdmin claim to an account by email.
//
// The running service only lets existing admins grant admin, so the
// very first admin of an environment is created here, out of band, by
// an operator holding the provider's admin credentials.
package main

import (
	"context"
	"flag"
	"time"

	"github.com/graciegould/snaglet/internal/auth"
	"github.com/graciegould/snaglet/internal/auth/provider/oidcidp"
	"github.com/graciegould/snaglet/internal/config"
	"github.com/graciegould/snaglet/internal/logger"
)

func main() {
	logger.Init()
	cfg := config.Load()

	email := flag.String("email", "", "email of the account to make admin")
	flag.Parse()

	if *email == "" {
		logger.Fatal("missing -email flag", nil)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	idp, err := oidcidp.New(ctx, oidcidp.Config{
		IssuerURL:         cfg.ProviderIssuerURL,
		ClientID:          cfg.ProviderClientID,
		AdminBaseURL:      cfg.ProviderAdminURL,
		AdminClientID:     cfg.AdminClientID,
		AdminClientSecret: cfg.AdminClientSecret,
	})
	if err != nil {
		logger.Fatal("failed to init identity provider", map[string]any{
			"error": err.Error(),
		})
	}

	target, err := idp.LookupByEmail(ctx, *email)
	if err != nil {
		logger.Fatal("account lookup failed", map[string]any{
			"email": *email,
			"error": err.Error(),
		})
	}

	if err := idp.SetClaims(ctx, target.SubjectID, map[string]any{
		auth.AdminClaim: true,
	}); err != nil {
		logger.Fatal("claim update failed", map[string]any{
			"subject": target.SubjectID,
			"error":   err.Error(),
		})
	}

	logger.Info("admin claim granted", map[string]any{
		"email":   *email,
		"subject": target.SubjectID,
	})
}
