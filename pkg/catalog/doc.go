/*
Package catalog manages stored workflow definitions.

The Manager serialises writes per workflow id (ref-counted local mutexes plus an optional
distributed lock for multi-replica deployments), assigns ids and timestamps, and validates
every definition as it is saved so the editor can show errors next to the draft. Invalid
drafts are still stored; only compilation requires a valid graph.
*/
package catalog
