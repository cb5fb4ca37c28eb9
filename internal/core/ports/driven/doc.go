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
//   - Vault: Markdown note storage (filesystem in production)
//   - Provider: AI text-generation backend
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - RunStore: Batch-run history. Without it, the history surface is empty.
//   - PromptStore: User-editable prompts. Without it, the embedded default is used.
//   - ModelLister: Model enumeration, detected per provider by type assertion.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
