package config

// AppConfig holds the application configuration
type AppConfig struct {
	DBURL         string
	RedisAddress  string
	SessionKey    string
	Port          string
	CorsOrigins   []string
	AdminUsername string
	AdminPassword string
	SMTPHost      string
	SMTPPort      int
	SMTPUser      string
	SMTPPass      string
}
