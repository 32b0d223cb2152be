/*
Package ports defines the driven ports (interfaces) around the flowdsl core.

The compile pipeline itself is pure and needs no ports. These interfaces decouple the
workflow catalog from its storage backends so the same manager runs on memory, files,
Redis or Badger.

# Key Interfaces

  - WorkflowStore: persists and loads workflow definitions.
  - DistributedLocker: serialises writes to one workflow across instances.

RunWorkflowStoreContract is a reusable test suite every WorkflowStore adapter runs.
*/
package ports
