// Package reconnect turns a partial door-destination map — the output
// common to every reconstruction solver — into a consistent set of
// Connections: a total involution on doors. This is the shared last
// mile every solver variant (SAT, annealing, fingerprint, duplication
// lifter) funnels through before an Aedificium can be built.
package reconnect
