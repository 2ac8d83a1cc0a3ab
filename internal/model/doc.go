// Package model defines the settings record persisted by upstream and the
// typed view the rest of the application reads.
//
// # Record
//
// [Record] is the raw mapping stored under [OptionName]:
//
//	{"update_type": "plugin", "repo_url": "https://github.com/acme/widget", "access_token": "..."}
//
// Every field is optional and independently present. Saving a fragment
// replaces the keys it contains and keeps the others (see [Record.Merge]).
//
// # Config
//
// [Config] is built with [ConfigFromRecord] at read time. Defaults are applied
// here and nowhere else: a missing or unrecognized update_type reads as
// [UpdateTypePlugin].
package model
