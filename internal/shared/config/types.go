// Package config defines configuration structures shared across layers.
package config

import "fmt"

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Mode     string `mapstructure:"mode"`
	Timezone string `mapstructure:"timezone"`
}

// GetAddr returns the listen address in host:port form.
func (c *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DatabaseConfig holds MySQL connection configuration.
type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// AuthConfig holds identity verification configuration. The work log
// service does not own user identity; it only verifies tokens issued by
// the surrounding tracker.
type AuthConfig struct {
	JWTSecret           string `mapstructure:"jwt_secret"`
	TrustedUserHeader   string `mapstructure:"trusted_user_header"`
	AllowHeaderFallback bool   `mapstructure:"allow_header_fallback"`
}

// EmailConfig holds SMTP configuration for ticket-change notifications.
type EmailConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	SMTPHost      string `mapstructure:"smtp_host"`
	SMTPPort      int    `mapstructure:"smtp_port"`
	SMTPUser      string `mapstructure:"smtp_user"`
	SMTPPassword  string `mapstructure:"smtp_password"`
	FromAddress   string `mapstructure:"from_address"`
	FromName      string `mapstructure:"from_name"`
	NotifyAddress string `mapstructure:"notify_address"`
}

// WorklogConfig holds service-wide fallbacks for per-scope settings.
// Scoped values stored in the database take precedence.
type WorklogConfig struct {
	AutoComment         bool   `mapstructure:"auto_comment"`
	AutoStopOnClose     bool   `mapstructure:"auto_stop_on_close"`
	AutoReassignOnStart bool   `mapstructure:"auto_reassign_on_start"`
	ReassignStatus      string `mapstructure:"reassign_status"`
	ReassignResolution  string `mapstructure:"reassign_resolution"`
	AllowTaskSwitch     bool   `mapstructure:"allow_task_switch"`
	EligibleStatuses    string `mapstructure:"eligible_statuses"`
	RecordHoursField    bool   `mapstructure:"record_hours_field"`
	RecordTotalHours    bool   `mapstructure:"record_total_hours"`
	RoundUpMinutes      int    `mapstructure:"round_up_minutes"`
}
