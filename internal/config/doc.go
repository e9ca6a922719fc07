// Package config provides user settings for cupcraft.
//
// Settings live in a small YAML file that follows OS-specific conventions:
//   - Linux: $XDG_CONFIG_HOME/cupcraft/config.yaml or $HOME/.config/cupcraft/config.yaml
//   - macOS: $HOME/.config/cupcraft/config.yaml
//   - Windows: %LOCALAPPDATA%\cupcraft\config.yaml
//
// A missing file is not an error; defaults are returned instead. Saves are
// atomic (temp file then rename).
//
// # Preferences
//
//	version: 1
//	preferences:
//	  default_size: large
//	  default_temperature: iced
//	  catalog_path: /home/me/beans.yaml
//	  counter_addr: 192.168.1.20:8787
//	  auto_discover: false
//	  discover_timeout: 3
//	  log_level: info
//	counters:
//	  front:
//	    addr: 192.168.1.20:8787
//
// Command-line flags always take precedence over preferences.
//
// # Usage Example
//
//	settings, err := config.LoadSettings()
//	if err != nil {
//	    return err
//	}
//	sel := order.NewSelection(settings.Preferences.Size(), settings.Preferences.Temperature())
package config
