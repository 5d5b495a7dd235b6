package aedificium

import (
	"fmt"
	"strings"
)

// RenderText produces a human-readable debug dump of a: room count,
// door count, starting room, per-room labels, and the connection list.
// It is a plain-text debugging aid that needs no visualiser; nothing in
// the module calls it.
func (a *Aedificium) RenderText() string {
	if a == nil {
		return "<nil Aedificium>"
	}

	var sb strings.Builder
	sb.WriteString("Aedificium\n")
	sb.WriteString(fmt.Sprintf("  rooms: %d\n", a.N()))
	sb.WriteString(fmt.Sprintf("  doors: %d\n", a.N()*Doors))
	sb.WriteString(fmt.Sprintf("  starting room: %d\n", a.Start))
	sb.WriteString("  labels:\n")
	for r, l := range a.Labels {
		sb.WriteString(fmt.Sprintf("    room %d: label %d\n", r, l))
	}
	sb.WriteString("  connections:\n")
	for _, c := range a.Connections {
		sb.WriteString(fmt.Sprintf("    %s\n", c))
	}
	return sb.String()
}
