package config

import (
	"fmt"
	"os"
	"strconv"
)

// Provider identifiers for connected mailboxes.
const (
	ProviderREST = "rest"
	ProviderIMAP = "imap"
)

// Config holds the application configuration. It is resolved once at
// startup and injected into every component that needs it.
type Config struct {
	// Mirror database settings
	DatabasePath string
	LogLevel     string

	// Sync settings
	SyncIntervalMinutes  int
	BackfillMessageLimit int
	BackfillWindowDays   int

	// Accounts
	Accounts []AccountConfig
}

// AccountConfig holds configuration for a single connected mailbox.
type AccountConfig struct {
	Name     string
	UserID   string
	Provider string

	// REST provider settings
	APIBaseURL string
	APIToken   string
	GrantID    string

	// IMAP provider settings
	IMAPHost     string
	IMAPPort     int
	IMAPUsername string
	IMAPPassword string
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		DatabasePath:         getEnv("DATABASE_PATH", "/data/easemail_mirror.db"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		SyncIntervalMinutes:  getEnvInt("SYNC_INTERVAL_MINUTES", 20),
		BackfillMessageLimit: getEnvInt("BACKFILL_MESSAGE_LIMIT", 200),
		BackfillWindowDays:   getEnvInt("BACKFILL_WINDOW_DAYS", 30),
	}

	accounts, err := loadAccounts()
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}
	if len(accounts) == 0 {
		return nil, fmt.Errorf("no mailbox accounts configured")
	}

	cfg.Accounts = accounts
	return cfg, nil
}

// loadAccounts loads mailbox account configurations from environment
// variables: either a single unprefixed account (ACCOUNT_*), or numbered
// accounts (ACCOUNT_1_*, ACCOUNT_2_*, ...).
func loadAccounts() ([]AccountConfig, error) {
	if getEnv("ACCOUNT_NAME", "") != "" {
		account, err := loadAccount("ACCOUNT_")
		if err != nil {
			return nil, err
		}
		return []AccountConfig{*account}, nil
	}

	var accounts []AccountConfig
	for num := 1; ; num++ {
		prefix := fmt.Sprintf("ACCOUNT_%d_", num)
		if getEnv(prefix+"NAME", "") == "" {
			break
		}
		account, err := loadAccount(prefix)
		if err != nil {
			return nil, fmt.Errorf("account %d: %w", num, err)
		}
		accounts = append(accounts, *account)
	}

	if len(accounts) == 0 {
		return nil, fmt.Errorf("no accounts found in environment variables")
	}
	return accounts, nil
}

// loadAccount loads one account using the given env prefix.
func loadAccount(prefix string) (*AccountConfig, error) {
	acc := &AccountConfig{
		Name:     getEnv(prefix+"NAME", ""),
		UserID:   getEnv(prefix+"USER_ID", ""),
		Provider: getEnv(prefix+"PROVIDER", ProviderREST),

		APIBaseURL: getEnv(prefix+"API_BASE_URL", ""),
		APIToken:   getEnv(prefix+"API_TOKEN", ""),
		GrantID:    getEnv(prefix+"GRANT_ID", ""),

		IMAPHost:     getEnv(prefix+"IMAP_HOST", ""),
		IMAPPort:     getEnvInt(prefix+"IMAP_PORT", 993),
		IMAPUsername: getEnv(prefix+"IMAP_USERNAME", ""),
		IMAPPassword: getEnv(prefix+"IMAP_PASSWORD", ""),
	}

	if acc.Name == "" {
		return nil, fmt.Errorf("NAME is required")
	}
	if acc.UserID == "" {
		return nil, fmt.Errorf("USER_ID is required")
	}

	switch acc.Provider {
	case ProviderREST:
		if acc.APIBaseURL == "" || acc.APIToken == "" || acc.GrantID == "" {
			return nil, fmt.Errorf("API_BASE_URL, API_TOKEN and GRANT_ID are required for the rest provider")
		}
	case ProviderIMAP:
		if acc.IMAPHost == "" || acc.IMAPUsername == "" || acc.IMAPPassword == "" {
			return nil, fmt.Errorf("IMAP_HOST, IMAP_USERNAME and IMAP_PASSWORD are required for the imap provider")
		}
	default:
		return nil, fmt.Errorf("unknown provider: %s", acc.Provider)
	}

	return acc, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an environment variable as an integer or returns a
// default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// GetAccountByName finds an account by name.
func (c *Config) GetAccountByName(name string) (*AccountConfig, error) {
	for i := range c.Accounts {
		if c.Accounts[i].Name == name {
			return &c.Accounts[i], nil
		}
	}
	return nil, fmt.Errorf("account not found: %s", name)
}

// AccountNames returns the names of all configured accounts.
func (c *Config) AccountNames() []string {
	names := make([]string, len(c.Accounts))
	for i := range c.Accounts {
		names[i] = c.Accounts[i].Name
	}
	return names
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("DATABASE_PATH is required")
	}
	if c.SyncIntervalMinutes < 1 {
		return fmt.Errorf("SYNC_INTERVAL_MINUTES must be at least 1")
	}
	if c.BackfillMessageLimit < 1 || c.BackfillMessageLimit > 10000 {
		return fmt.Errorf("BACKFILL_MESSAGE_LIMIT must be between 1 and 10000")
	}
	if c.BackfillWindowDays < 1 {
		return fmt.Errorf("BACKFILL_WINDOW_DAYS must be at least 1")
	}
	if len(c.Accounts) == 0 {
		return fmt.Errorf("at least one account must be configured")
	}

	seen := make(map[string]bool, len(c.Accounts))
	for i := range c.Accounts {
		acc := &c.Accounts[i]
		if seen[acc.Name] {
			return fmt.Errorf("duplicate account name: %s", acc.Name)
		}
		seen[acc.Name] = true

		if acc.Provider == ProviderIMAP && (acc.IMAPPort < 1 || acc.IMAPPort > 65535) {
			return fmt.Errorf("account %s: invalid IMAP_PORT", acc.Name)
		}
	}

	return nil
}
