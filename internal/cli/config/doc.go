// Package config provides CLI configuration for zkadmin.
//
// This package defines CLI-specific configuration:
//
//   - config.go: Config struct (~/.zerokit-admin/config.yaml) and validation
//   - loader.go: Koanf-based loading and source merging
//   - provider.go: map provider for defaults and flag overrides
//
// Configuration includes:
//
//   - Tenant endpoint and credentials (or a profile reference)
//   - Output format preferences
//   - Request timeout
//   - Logging and metrics settings
package config
