package config

// Configuration keys resolved through the Resolver. Absence of any of
// them is a recognized degraded mode, not an error: no store means
// bundled fallback content, no AI key means the chat assistant answers
// with a fixed offline message.
const (
	KeyStoreURL     = "STORE_URL"
	KeyStoreKey     = "STORE_KEY"
	KeyDatabasePath = "DATABASE_PATH"
	KeyAuthURL      = "AUTH_URL"
	KeyAuthKey      = "AUTH_KEY"
	KeyGeminiAPIKey = "GEMINI_API_KEY"
	KeyHost         = "HOST"
	KeyPort         = "PORT"
	KeyCookieDomain = "COOKIE_DOMAIN"
)

type Config struct {
	StoreURL     string
	StoreKey     string
	DatabasePath string
	AuthURL      string
	AuthKey      string
	GeminiAPIKey string
	Host         string
	Port         string
	CookieDomain string
}

// Load resolves every known key. Nothing is required; the only values
// with defaults are the listen address.
func Load() *Config {
	return LoadWith(NewResolver())
}

func LoadWith(r *Resolver) *Config {
	c := &Config{
		StoreURL:     r.Get(KeyStoreURL),
		StoreKey:     r.Get(KeyStoreKey),
		DatabasePath: r.Get(KeyDatabasePath),
		AuthURL:      r.Get(KeyAuthURL),
		AuthKey:      r.Get(KeyAuthKey),
		GeminiAPIKey: r.Get(KeyGeminiAPIKey),
		Host:         r.Get(KeyHost),
		Port:         r.Get(KeyPort),
		CookieDomain: r.Get(KeyCookieDomain),
	}

	if c.Host == "" {
		c.Host = "0.0.0.0"
	}
	if c.Port == "" {
		c.Port = "3000"
	}

	return c
}

func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

// StoreConfigured reports whether the hosted remote store can be reached.
// Both the base URL and the access key must be present.
func (c *Config) StoreConfigured() bool {
	return c.StoreURL != "" && c.StoreKey != ""
}
