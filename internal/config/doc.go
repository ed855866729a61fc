// Package config loads the storefront client's TOML configuration.
//
// Load reads ~/.config/storefront/config.toml unless a path is given. A
// missing file is not an error; defaults apply:
//
//	backend_url             = "http://127.0.0.1:4000"
//	currency                = "LKR "
//	delivery_fee            = 350
//	catalog_refresh_seconds = 0      # fetch the catalog once at startup
//	log_level               = "info"
//	log_file                = "~/.local/state/storefront/storefront.log"
//
// Blank values fall back to their defaults and tilde paths are expanded. The
// STOREFRONT_BACKEND_URL environment variable overrides backend_url.
package config
