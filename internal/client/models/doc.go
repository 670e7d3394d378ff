// Package models defines the client-side records shared by the RaisinEat
// packages: identity and credentials, and the restaurant catalog.
package models
