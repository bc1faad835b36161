// Package spotify looks up official artist profile URLs through the Spotify
// Web API using the client-credentials flow. Tokens are fetched lazily and
// reused until shortly before expiry.
package spotify
