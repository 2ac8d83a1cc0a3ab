// Package sanitize normalizes untrusted settings input before it is saved.
//
// Nothing in this package fails: malformed input degrades to a best-effort
// cleaned string (possibly empty) so a settings submission is never rejected.
// Every function is idempotent, sanitizing an already sanitized value returns
// it unchanged.
package sanitize
