// Package main provides the entry point for zkadmin.
//
// The CLI tool administers a ZeroKit tenant over its signed admin API:
//
//   - User registration (init, validate, enable/disable)
//   - Custom content upload and directory sync
//   - Raw signed requests against any admin endpoint
//   - Encrypted credential profiles
//
// Usage:
//
//	zkadmin [command] [flags]
//	zkadmin user init-registration --output json
//	zkadmin tenant sync-content ./branding --watch
//	zkadmin call POST /api/v4/admin/user/init-user-registration
//
// Credentials come from flags, ZKADMIN_* environment variables,
// ~/.zerokit-admin/config.yaml, or a stored profile, in that order.
package main
