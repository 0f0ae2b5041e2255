package graph

import "errors"

var (
	// ErrNodeNotFound is returned when no node exists for a guid
	ErrNodeNotFound = errors.New("node not found")

	// ErrEdgeNotFound is returned when no edge exists for an edge identifier
	ErrEdgeNotFound = errors.New("edge not found")

	// ErrNoSuchRelation is returned when a node has no edge with the requested label
	ErrNoSuchRelation = errors.New("no edge with requested label")
)
