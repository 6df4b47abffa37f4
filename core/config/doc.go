// Package config provides configuration management for the reconciliation engine.
//
// It uses Viper to merge struct tag defaults, an optional recon.yaml settings file, a .env
// file and environment variables. Environment keys map to nested keys by replacing the dot
// with an underscore, so SERVER_PORT sets server.port and RUN_OUTPUT_DIR sets run.output_dir.
//
// # Configuration Structure
//
//   - Server: HTTP port, API key, request limits
//   - Storage: S3/MinIO credentials and the bucket holding source objects and reports
//   - Log: logging level and format
//   - Database: driver (sqlite or mysql) for table sources and run history
//   - Run: project name, report directory, publishing and history switches
//   - Source: PostgreSQL URL for query sources
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Run.OutputDir)
package config
