package config

import (
	"flag"
	"fmt"
)

const HelpMessage = `bitacora - driver's daily logbook service

Usage:
  bitacora [-config-path config.yaml]

Configuration is read from the YAML file, then overridden by environment
variables (SERVER_*, DATABASE_*, RABBITMQ_*, EXPORT_*, AUTH_*, LOG_*).
`

func PrintHelp() {
	if HelpMessage != "" {
		fmt.Printf("%s", HelpMessage)
	} else {
		flag.Usage()
	}
}

// PrintConfig prints the effective configuration with secrets redacted.
func PrintConfig(cfg *Config) {
	fmt.Printf("server:   %s\n", cfg.Server.Addr())
	fmt.Printf("database: %s:%s/%s\n", cfg.Database.Host, cfg.Database.Port, cfg.Database.Database)
	fmt.Printf("rabbitmq: %s:%s\n", cfg.RabbitMQ.Host, cfg.RabbitMQ.Port)
	fmt.Printf("exports:  %s\n", cfg.Export.Dir)
	fmt.Printf("log:      %s\n", cfg.Log.Level)
}
