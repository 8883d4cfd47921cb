package cmd

import (
	"fmt"
	"time"

	"example.com/fleetops/config"
	"example.com/fleetops/internal/auth"

	"github.com/spf13/cobra"
)

var (
	// Token command flags
	tokenSubject  string
	tokenRole     string
	tokenFleetID  string
	tokenTTLHours int
)

// tokenCmd represents the token command
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a fleet-scoped bearer token",
	Long: `Issues a signed bearer token for testing and operational access.
The token carries a role (admin or driver) and the fleet it is scoped to.`,
	Run: func(cmd *cobra.Command, args []string) {
		issueToken()
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)

	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "", "Token subject (user or service identifier)")
	tokenCmd.Flags().StringVar(&tokenRole, "role", "driver", "Token role (admin or driver)")
	tokenCmd.Flags().StringVar(&tokenFleetID, "fleet", "", "Fleet UID the token is scoped to")
	tokenCmd.Flags().IntVar(&tokenTTLHours, "ttl", 24, "Token lifetime in hours")
	tokenCmd.MarkFlagRequired("subject")
	tokenCmd.MarkFlagRequired("fleet")
}

// issueToken generates and prints a signed token
func issueToken() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if tokenRole != "admin" && tokenRole != "driver" {
		log.Fatalf("Invalid role: %s", tokenRole)
	}

	token, expiresAt, err := auth.GenerateToken(
		cfg.Auth,
		tokenSubject,
		tokenRole,
		tokenFleetID,
		time.Duration(tokenTTLHours)*time.Hour,
	)
	if err != nil {
		log.Fatalf("Failed to generate token: %v", err)
	}

	fmt.Println(token)
	log.WithField("expires_at", expiresAt.Format(time.RFC3339)).Info("Token issued")
}
