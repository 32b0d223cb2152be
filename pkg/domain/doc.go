/*
Package domain contains the core model of the flowdsl compiler.

It defines the workflow graph handed over by a visual editor and the values the compiler
produces from it. This package is kept pure and free of I/O, persistence or transport
concerns, following Hexagonal Architecture principles.

# Key Entities

  - Node: a point in the graph. Its payload is one of InputData, ActionData or OutputData.
  - Edge: a directed connection from a source node to a target node.
  - Graph: the ordered set of nodes and edges. Insertion order breaks ordering ties.
  - ValidationResult: structural errors and advisory warnings for a graph.
  - ExecutionPlan: a human summary of a sequenced graph.
  - Definition: a persisted, named workflow as stored by the catalog.
*/
package domain
