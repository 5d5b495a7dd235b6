// Package aedificium implements the hidden labelled-door-regular graph
// model at the heart of the reconstruction engine: rooms, doors, the
// step involution derived from connections, route-plan parsing, walk
// simulation, charcoal semantics, and the random-plan equivalence check
// used to accept a candidate reconstruction.
package aedificium
