// Package config provides configuration management for the rotor viewer.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file (via godotenv).
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: port, API key and the views, public and three.js directories
//   - Viewer: model path, environment URL and cache settings
//   - Storage: S3/MinIO credentials, bucket and model object
//   - Database: load history connection details
//   - Log: Logging level and format
//
// Defaults come from the `default` struct tags. Environment variables map to
// nested keys with underscores, so SERVER_PORT sets server.port.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
