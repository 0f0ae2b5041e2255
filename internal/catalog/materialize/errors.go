package materialize

import "errors"

var (
	// ErrNotANode is returned when a value expected to be a graph node is not one
	ErrNotANode = errors.New("persisted value is not a graph node")

	// ErrNotASequence is returned when an array-typed value is not an ordered sequence
	ErrNotASequence = errors.New("persisted value is not an ordered sequence")

	// ErrNotAnEdgeID is returned when a collection entry expected to be an
	// edge identifier is not a string
	ErrNotAnEdgeID = errors.New("collection entry is not an edge identifier")

	// ErrNoFieldMapper is returned when materialization needs the field
	// mapper but none is wired
	ErrNoFieldMapper = errors.New("no field mapper configured")
)
