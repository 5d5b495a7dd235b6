package aedificium

import "encoding/json"

// MapDoc is the wire representation of an Aedificium, matching the
// judge's /guess request body and /spoiler response body: labels under
// "rooms", the starting room, and the connection list.
type MapDoc struct {
	Rooms       []int        `json:"rooms"`
	StartingRoom int         `json:"startingRoom"`
	Connections []Connection `json:"connections"`
}

// ToDict converts a to its wire representation.
func (a *Aedificium) ToDict() MapDoc {
	return MapDoc{
		Rooms:        append([]int(nil), a.Labels...),
		StartingRoom: a.Start,
		Connections:  append([]Connection(nil), a.Connections...),
	}
}

// FromDict builds and validates an Aedificium from its wire
// representation. from_dict(to_dict(A)) is structurally equivalent to A.
func FromDict(doc MapDoc) (*Aedificium, error) {
	return New(doc.Rooms, doc.StartingRoom, doc.Connections)
}

// MarshalJSON serializes a via its MapDoc wire representation.
func (a *Aedificium) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.ToDict())
}

// UnmarshalJSON decodes a MapDoc and rebuilds a's step table, so an
// Aedificium populated via json.Unmarshal is immediately usable.
func (a *Aedificium) UnmarshalJSON(data []byte) error {
	var doc MapDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	built, err := FromDict(doc)
	if err != nil {
		return err
	}
	*a = *built
	return nil
}
