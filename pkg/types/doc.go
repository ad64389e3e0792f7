// Package types defines the shared data model of the traffic-law QA engine:
// typed knowledge-graph nodes and edges, the ETL-produced violation record,
// the per-request query context and the structured answer record.
package types
