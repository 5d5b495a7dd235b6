// Package mockserver is an in-process stand-in for the contest judge,
// built on github.com/gin-gonic/gin, exposing /register /select
// /explore /guess /spoiler. Each registered id holds one hidden
// Ædificium and a running query count, guarded by a single
// sync.RWMutex over the session map. /spoiler has no counterpart on the
// real judge; it exists only so local testing (for example the
// integration tests, through judge.Client.Spoiler) can inspect what the
// mock server is hiding.
package mockserver
