// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - EmbeddingService: Embeds chunk and query text. Used identically by ingestion and retrieval.
//   - VectorPartition: One durable partition of the dual vector store.
//   - Extractor: Turns uploaded bytes into plain text, dispatched by extension.
//   - PostProcessor / PostProcessorPipeline: Chunking and chunk identity.
//   - DocumentWriter: Emits the formatted output document.
//   - ConfigStore: Application configuration.
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - LLMService: Without it, drafting is disabled but ingestion and retrieval work.
//   - PromptStore: Without it, the built-in petition template is used.
//   - RuleStore: Without it, no required sections are listed in the prompt.
//   - SampleCorpus: Without it, no style excerpt is included and seeding is disabled.
//   - SampleSource: Remote download of reference samples (Google Drive).
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
