// Package connectors provides the document sources that feed the knowledge
// base from outside a single CLI invocation: a filesystem watcher that
// re-ingests changed files and a Google Drive puller that refreshes the
// reference sample corpus.
package connectors
