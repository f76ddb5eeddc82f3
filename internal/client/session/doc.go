// Package session holds the client's observable authentication state.
//
// A Controller owns the single in-memory view of the session
// (user, loading flag, derived authenticated flag), restores it from the
// credential store on start and updates it after each successful auth
// operation. Front-ends read snapshots with State or receive them as they
// change through Subscribe.
package session
