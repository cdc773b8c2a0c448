package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// defaultFunctionBase is the fallback upstream host for function URLs that
// have no environment override. Keeps the service reachable without a full
// environment, at the cost of baking in the upstream project host.
const defaultFunctionBase = "https://pncwojaybqomxoddmwmo.supabase.co/functions/v1"

const defaultUpstreamTimeout = 15 * time.Second

type Config struct {
	Port              int
	Production        bool
	AllowedOrigins    []string
	ServiceCredential string
	UpstreamTimeout   time.Duration
	Functions         FunctionURLs
}

// FunctionURLs holds one resolved upstream URL per proxied operation.
// ResetPartnerPassword and ResetUserPassword have no hardcoded fallback;
// they stay empty when unconfigured and the handler fails closed with 500.
type FunctionURLs struct {
	Login                string
	CreateAdmin          string
	CreatePartner        string
	CreateUser           string
	AdminStats           string
	AllPartners          string
	AllUsers             string
	PartnerStats         string
	PartnerUsers         string
	ResetPartnerPassword string
	ResetUserPassword    string
	UpdateAdmin          string
	UpdatePartner        string
	UpdateUser           string
}

// ParseFlags validates flags and environment configuration
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var origins string

	fs := flag.NewFlagSet("partner-portal", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&origins, "origins", "", "Comma-separated allowed origins")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.ServiceCredential, "anon-key", "", "Upstream service credential (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3548 // default
		}
	}

	cfg.Production = os.Getenv("APP_ENV") == "production"

	if origins == "" {
		origins = os.Getenv("ALLOWED_ORIGINS")
	}
	cfg.AllowedOrigins = SplitOrigins(origins)

	cfg.UpstreamTimeout = defaultUpstreamTimeout
	if secs := os.Getenv("UPSTREAM_TIMEOUT_SECONDS"); secs != "" {
		n, err := strconv.Atoi(secs)
		if err != nil || n <= 0 {
			return Config{}, errors.New("invalid UPSTREAM_TIMEOUT_SECONDS env variable")
		}
		cfg.UpstreamTimeout = time.Duration(n) * time.Second
	}

	// Secret - MUST be provided
	if cfg.ServiceCredential == "" {
		cfg.ServiceCredential = os.Getenv("SUPABASE_PROJECT_ANON_KEY")
	}
	if cfg.ServiceCredential == "" {
		return Config{}, errors.New("SUPABASE_PROJECT_ANON_KEY required")
	}

	cfg.Functions = FunctionURLs{
		Login:                functionURL("SUPABASE_CUSTOM_LOGIN_FUNCTION_URL", "custom-login"),
		CreateAdmin:          functionURL("SUPABASE_CREATE_ADMIN_FUNCTION_URL", "create-admin"),
		CreatePartner:        functionURL("SUPABASE_CREATE_PARTNER_FUNCTION_URL", "create-partner"),
		CreateUser:           functionURL("SUPABASE_CREATE_USER_FUNCTION_URL", "create-user"),
		AdminStats:           functionURL("SUPABASE_GET_ADMIN_STATS_FUNCTION_URL", "get-admin-stats"),
		AllPartners:          functionURL("SUPABASE_GET_ALL_PARTNERS_FUNCTION_URL", "get-all-partners"),
		AllUsers:             functionURL("SUPABASE_GET_ALL_USERS_FUNCTION_URL", "get-all-users"),
		PartnerStats:         functionURL("SUPABASE_GET_PARTNER_STATS_FUNCTION_URL", "get-partner-stats"),
		PartnerUsers:         functionURL("SUPABASE_GET_PARTNER_USERS_FUNCTION_URL", "get-partner-users-by-partner"),
		ResetPartnerPassword: os.Getenv("SUPABASE_RESET_PARTNER_PASSWORD_FUNCTION_URL"),
		ResetUserPassword:    os.Getenv("SUPABASE_RESET_USER_PASSWORD_FUNCTION_URL"),
		UpdateAdmin:          functionURL("SUPABASE_UPDATE_ADMIN_DATA_FUNCTION_URL", "update-admin-data"),
		UpdatePartner:        functionURL("SUPABASE_UPDATE_PARTNER_DATA_FUNCTION_URL", "update-partner-data"),
		UpdateUser:           functionURL("SUPABASE_UPDATE_USER_DATA_FUNCTION_URL", "update-user-data"),
	}

	return cfg, nil
}

// SplitOrigins parses a comma-separated origin list, trimming whitespace
// and dropping empty entries.
func SplitOrigins(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func functionURL(envKey, function string) string {
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	return defaultFunctionBase + "/" + function
}
