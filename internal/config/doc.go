// Package config handles loading, validation and persistence of the bg3mm
// configuration.
//
// Configuration is read from <user config dir>/bg3mm/config.toml with
// environment variable overrides.
//
// # Configuration Sources (highest priority first)
//
//   - BG3MM_INSTANCES_DIR env var: instances directory
//   - Config file settings
//   - Default values
//
// BG3MM_CONFIG moves the config file itself.
//
// # Key Settings
//
//   - instances_dir: base directory for instance folders and
//     instances.index.json (must be absolute or ~/...)
//   - game_dir: optional game install directory
//
// # Concurrency
//
// The loaded configuration is shared through a [Provider], which guards it
// with its own mutex. Callers read what they need and release the lock
// before doing any other work.
package config
