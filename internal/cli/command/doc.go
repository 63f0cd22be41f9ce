// Package command provides CLI command definitions for zkadmin.
//
// This package defines all CLI commands using urfave/cli/v2:
//
//   - root.go: Root command, global flags, config and client wiring
//   - user.go: Tenant user subcommand group
//   - tenant.go: Custom content subcommand group
//   - call.go: Raw signed request escape hatch
//   - profile.go: Credential profile subcommand group
//
// Commands follow a consistent pattern of parsing flags, calling the
// admin API client, and formatting output.
package command
