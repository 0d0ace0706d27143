// Package client implements the REST API client used by the CLI.
//
// It wraps the shared HTTP client with typed calls for the authentication
// surface of the server and maps non-2xx responses to sentinel errors.
package client
