// Package jsonl parses JSON Lines data into Relations. This parser uses https://github.com/tidwall/gjson
// to process data: each column is read from the gjson path configured for it, which defaults to the
// column's name.
package jsonl
