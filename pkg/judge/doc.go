// Package judge is a thin HTTP client for the register/select/explore/
// guess/spoiler protocol shared by the real contest judge and the
// in-process mock server in pkg/mockserver. Every method takes a
// context.Context as its first parameter and wraps transport and
// protocol errors for the caller rather than retrying: retries are an
// orchestrator-level policy, not a transport concern.
package judge
