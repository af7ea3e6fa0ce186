// Package config loads the settings of an application that embeds the
// sequence engine.
//
// It uses Viper to read a YAML file and godotenv to load a .env file, then
// lets environment variables override file values. Nested keys map to
// underscore-separated variables, so PIPELINE_TRACE sets pipeline.trace.
//
// # Usage
//
//	cfg, err := config.Load("reports")
//	if err != nil {
//	    return err
//	}
//	log := logger.WithComponent(cfg.Name)
package config
