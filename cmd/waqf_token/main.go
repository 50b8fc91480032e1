package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/awqaf-platform/waqf_ledger/internal/platform/config"
	"github.com/awqaf-platform/waqf_ledger/internal/utils"
)

// waqf_token mints a bearer token signed with the configured JWT secret, for
// service accounts and local development.
func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	userID := flag.String("user", "", "subject of the token (required)")
	roles := flag.String("roles", "", "comma separated approver roles, e.g. accountant,nazer")
	ttl := flag.Duration("ttl", 12*time.Hour, "token lifetime")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var roleList []string
	if *roles != "" {
		roleList = strings.Split(*roles, ",")
	}
	token, err := utils.GenerateJWT(*userID, roleList, cfg.JWTSecret, *ttl, cfg.JWTIssuer)
	if err != nil {
		logger.Error("Failed to generate token", slog.String("error", err.Error()))
		os.Exit(1)
	}
	fmt.Println(token)
}
