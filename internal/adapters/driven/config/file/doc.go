// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to the local filesystem.
//
// Adapters:
//   - ConfigStore: TOML configuration with environment overrides
//   - PromptStore: user-editable text/template prompts
//   - RuleStore: YAML rule files per draft type
//   - SampleCorpus: reference samples, one sub-directory per category
package file
