// Package config provides configuration management for the adherence sync service.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file. Defaults are declared on the partial config structs through
// `default` struct tags.
//
// # Configuration Structure
//
// The Config struct is divided into subsections:
//   - Server: HTTP ingest server settings (port, API key)
//   - Database: reporting database connection (mysql, postgres or sqlite)
//   - Storage: S3/MinIO credentials and the bucket holding raw vendor payloads
//   - Nats: load queue subject and server URL
//   - Log: Logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Database.Driver)
package config
