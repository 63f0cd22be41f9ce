// Package buildinfo exposes the version stamped into zkadmin at build
// time.
//
// Release builds inject Version, Commit and BuildTime via ldflags; a
// plain go build reports "dev". The values surface in --version output
// and in the User-Agent of every administrative API call, so support can
// correlate server logs with the client build that produced them.
package buildinfo
