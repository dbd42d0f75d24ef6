//go:build release
// +build release

package main

const (
	DEBUG       = false
	SecretsPath = "secrets.json"
)
