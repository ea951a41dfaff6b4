// Package config loads typed configuration from environment variables.
//
// It combines github.com/joho/godotenv, which reads optional .env files into
// the process environment, with github.com/caarlos0/env/v11, which parses the
// environment into structs annotated with `env` and `envDefault` tags.
//
// Each configuration type is parsed once per process and cached, so
// infrastructure packages can call Load for their own Config type wherever
// they are wired without re-reading the environment. ResetCache clears the
// cache between tests.
//
//	var cfg pg.Config
//	if err := config.Load(&cfg); err != nil {
//	    log.Fatal(err)
//	}
package config
