package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Storage  StorageConfig  `mapstructure:"storage" validate:"required"`
	SMTP     SMTPConfig     `mapstructure:"smtp" validate:"required"`
	Task     TaskConfig     `mapstructure:"task" validate:"required"`
}

// ServerConfig contains all HTTP server related settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database related settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// StorageConfig contains the resume file storage settings.
type StorageConfig struct {
	// ResumeDir is the directory resumes are written under.
	ResumeDir string `mapstructure:"resume_dir" validate:"required"`
	// BaseURL is the public prefix resume paths are resolved against.
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
}

// SMTPConfig contains the outgoing mail settings used by the notifier.
type SMTPConfig struct {
	Host     string `mapstructure:"host" validate:"required"`
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from" validate:"required,email"`
}

// TaskConfig contains the background task runner settings.
type TaskConfig struct {
	Workers   int `mapstructure:"workers" validate:"required,gt=0"`
	QueueSize int `mapstructure:"queue_size" validate:"required,gt=0"`
}
