// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
//   - Directory: the role directory (validation, comparison policy, locking)
//   - SettingsService: role store settings backed by a ConfigStore
package services
