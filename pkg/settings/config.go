package settings

// Config is the configuration of the queuepipe driver.
type Config struct {
	Logger Logger `mapstructure:"logger"`
}

// Logger is the configuration for the logger
type Logger struct {
	LogLevel    string `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	FileLogName string `mapstructure:"file_log_name"`
	MaxBackups  int    `mapstructure:"max_backups" validate:"gte=0"`
	MaxAge      int    `mapstructure:"max_age" validate:"gte=0"`  // Days
	MaxSize     int    `mapstructure:"max_size" validate:"gte=0"` // Megabytes
	Compress    bool   `mapstructure:"compress"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Logger: Logger{
			LogLevel:   "warn",
			MaxBackups: 3,
			MaxAge:     7,
			MaxSize:    100,
		},
	}
}
