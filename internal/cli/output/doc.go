// Package output provides output formatting for zkadmin.
//
// Command results render through a Formatter chosen by the --output flag:
//
//   - json.go: indented JSON
//   - yaml.go: YAML via gopkg.in/yaml.v3
//   - table.go: aligned text tables with reflection-based conversion
//
// The table formatter accepts explicit Table values, slices of structs,
// maps and single structs; other shapes fall back to JSON.
package output
