package accessibility

import (
	"encoding/json"
	"fmt"
)

// Record is the wire representation of a UINode. Field names and the numeric
// string formats are a stable contract: positions use two decimals, sizes
// zero, both as "x;y" pairs, so repeated snapshots diff cleanly.
type Record struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Role             string   `json:"role"`
	Description      string   `json:"description"`
	RoleDescription  string   `json:"role_description"`
	Value            any      `json:"value"`
	AbsolutePosition string   `json:"absolute_position"`
	Position         string   `json:"position"`
	Size             string   `json:"size"`
	Enabled          bool     `json:"enabled"`
	BBox             *Rect    `json:"bbox"`
	VisibleBBox      *Rect    `json:"visible_bbox"`
	Children         []Record `json:"children"`
}

// ToRecord serializes a node tree into Records, children in original order.
// No node is ever omitted. A value that is itself a node is rendered as
// indented JSON text rather than a nested structure, so consumers cannot
// confuse values with children.
func ToRecord(n *UINode) Record {
	r := Record{
		ID:              n.Identifier,
		Name:            n.Name,
		Role:            n.Role,
		Description:     n.Description,
		RoleDescription: n.RoleDescription,
		Value:           n.Value,
		Enabled:         n.Enabled,
		BBox:            n.BBox,
		VisibleBBox:     n.VisibleBBox,
		Children:        make([]Record, 0, len(n.Children)),
	}

	if nested, ok := n.Value.(*UINode); ok {
		// Errors cannot occur here: Record marshals to plain JSON types.
		text, err := json.MarshalIndent(ToRecord(nested), "", "    ")
		if err == nil {
			r.Value = string(text)
		} else {
			r.Value = ""
		}
	}

	if n.AbsolutePosition != nil {
		r.AbsolutePosition = fmt.Sprintf("%.2f;%.2f", n.AbsolutePosition.X, n.AbsolutePosition.Y)
	}
	if n.Position != nil {
		r.Position = fmt.Sprintf("%.2f;%.2f", n.Position.X, n.Position.Y)
	}
	if n.Size != nil {
		r.Size = fmt.Sprintf("%.0f;%.0f", n.Size.Width, n.Size.Height)
	}

	for _, child := range n.Children {
		r.Children = append(r.Children, ToRecord(child))
	}
	return r
}
