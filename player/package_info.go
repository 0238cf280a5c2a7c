// Package player performs the requests of a ".http" file and runs the tests that each
// response handler declares.
//
// Every request that names a response handler gets its own framework.Registry. The
// handler registers tests on it, and the player runs them against the response once
// the handler returns. Registries are never reused between requests.
package player
