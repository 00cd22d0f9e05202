// Package services implements the driving ports: ingestion, retrieval,
// prompt assembly, drafting, knowledge base administration and settings.
//
// Services depend only on driven ports. Concrete stores, AI clients and
// the document writer are injected by the CLI at start-up.
package services
