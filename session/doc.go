// Package session stores the server-side session records that make refresh
// authority revocable: a Redis mapping from user id to a JSON user snapshot
// with the refresh-token lifetime as TTL.
package session
