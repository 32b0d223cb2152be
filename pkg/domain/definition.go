package domain

import "time"

// Definition is a named workflow as persisted by the catalog.
// Credits and CoverImage are carried for the marketplace and never interpreted here.
type Definition struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Credits     int       `json:"credits"`
	CoverImage  string    `json:"coverImage,omitempty"`
	Nodes       []Node    `json:"nodes"`
	Edges       []Edge    `json:"edges"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Graph returns the workflow graph of the definition.
func (d Definition) Graph() Graph {
	return Graph{Nodes: d.Nodes, Edges: d.Edges}
}

// Clone returns a copy that shares no slices with d.
func (d Definition) Clone() Definition {
	c := d
	c.Nodes = append([]Node(nil), d.Nodes...)
	c.Edges = append([]Edge(nil), d.Edges...)
	return c
}
