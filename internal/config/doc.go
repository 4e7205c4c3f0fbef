// Package config provides the configuration system for ned.
//
// Configuration is organized in layers with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Command Line Flags      │  ← Highest priority
//	├─────────────────────────────┤
//	│  3. Environment Variables   │  ← NED_LOG_LEVEL, NED_MAX_ROWS, ...
//	├─────────────────────────────┤
//	│  2. Config File             │  ← ~/.config/ned/config.toml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// Each layer is a nested map produced by the loader sub-package; the maps
// are combined with loader.DeepMerge and decoded into a typed Config.
//
// # Basic Usage
//
//	cfg, err := config.Load(config.Options{Path: flagPath})
//	if err != nil {
//	    return err
//	}
//	quit := cfg.QuitEvent()
//
// Load validates the result, so a returned Config always carries a known
// log level, a parsable quit key and a non-negative row cap.
package config
