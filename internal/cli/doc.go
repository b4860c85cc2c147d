// Package cli implements notepadctl, a small command line tool that stores
// the Azure OpenAI API key and checks the configured connection without
// starting the API server.
package cli
