// Command admintoken mints an admin token for the device's maintenance API.
//
// It reads the signing key and issuer from the same sources as the agent.
// Agent flags go after "--":
//
//	admintoken -operator alice -duration 30m -- -c /etc/attendance/device.toml
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/MKhiriev/go-attendance-sync/internal/config"
	"github.com/MKhiriev/go-attendance-sync/internal/logger"
	"github.com/MKhiriev/go-attendance-sync/internal/utils"
)

var errNoAdminKey = errors.New("admin token key is not configured")

func main() {
	log := logger.NewLogger("admintoken")

	token, err := run(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error minting admin token")
	}

	fmt.Println(token)
}

func run(args []string) (string, error) {
	fs := flag.NewFlagSet("admintoken", flag.ContinueOnError)
	operator := fs.String("operator", "maintenance", "Operator name stored as the token subject")
	duration := fs.Duration("duration", 0, "Token lifetime, defaults to the configured admin token duration")
	if err := fs.Parse(args); err != nil {
		return "", err
	}

	cfg, err := config.LoadStructuredConfig(fs.Args())
	if err != nil {
		return "", fmt.Errorf("error getting configs: %w", err)
	}
	if cfg.App.AdminTokenKey == "" {
		return "", errNoAdminKey
	}

	if *duration <= 0 {
		*duration = cfg.App.AdminTokenDuration
	}

	token, err := utils.GenerateJWTToken(cfg.App.AdminTokenIssuer, *operator, *duration, cfg.App.AdminTokenKey)
	if err != nil {
		return "", err
	}

	return token.SignedString, nil
}
