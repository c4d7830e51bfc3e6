package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// KeyBindingsConfig holds modifier customization and optional per-action overrides
type KeyBindingsConfig struct {
	Modifiers ModifierConfig    `toml:"modifiers"`
	Actions   map[string]string `toml:"actions"` // Optional overrides for specific actions
}

type ModifierConfig struct {
	Primary   string `toml:"primary"`   // e.g., "alt", "ctrl", "meta", "super"
	Secondary string `toml:"secondary"` // e.g., "alt+shift", "ctrl+shift"
}

// actionDef defines the default modifier and key for an action
type actionDef struct {
	modifier string // "primary", "secondary", or "none"
	key      string
}

// actionRegistry maps action names to their default keybindings
var actionRegistry = map[string]actionDef{
	"help":              {"primary", "h"},
	"quit":              {"primary", "q"},
	"open_camera":       {"primary", "c"},
	"open_voice":        {"primary", "v"},
	"close_overlay":     {"none", "esc"},
	"search_findings":   {"primary", "f"},
	"yank_last_result":  {"primary", "y"},
	"yank_conversation": {"secondary", "y"},
	"scroll_down":       {"primary", "j"},
	"scroll_up":         {"primary", "k"},
	"page_down":         {"none", "pgdown"},
	"page_up":           {"none", "pgup"},
	"scroll_to_top":     {"primary", "g"},
	"scroll_to_bottom":  {"secondary", "g"},
}

// ActionNames returns every configurable action
func ActionNames() []string {
	names := make([]string, 0, len(actionRegistry))
	for name := range actionRegistry {
		names = append(names, name)
	}
	return names
}

// LoadKeyBindings reads keybindings.toml at path, creating it on first run
func LoadKeyBindings(path string) (*KeyBindingsConfig, error) {
	cfg := &KeyBindingsConfig{
		Modifiers: ModifierConfig{Primary: "alt", Secondary: "alt+shift"},
		Actions:   map[string]string{},
	}

	if !FileExists(path) {
		if err := CreateDefaultKeybindings(path); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse keybindings: %w", err)
	}

	for action := range cfg.Actions {
		if _, ok := actionRegistry[action]; !ok {
			Log.Sugar().Warnf("ignoring unknown keybinding action %q", action)
			delete(cfg.Actions, action)
		}
	}

	// Validate and apply defaults if missing
	if cfg.Modifiers.Primary == "" {
		cfg.Modifiers.Primary = "alt"
	}
	if cfg.Modifiers.Secondary == "" {
		cfg.Modifiers.Secondary = "alt+shift"
	}

	return cfg, nil
}

// DefaultKeyBindings returns the built-in bindings without touching disk
func DefaultKeyBindings() *KeyBindingsConfig {
	return &KeyBindingsConfig{
		Modifiers: ModifierConfig{Primary: "alt", Secondary: "alt+shift"},
		Actions:   map[string]string{},
	}
}

// CreateDefaultKeybindings creates default keybindings.toml
func CreateDefaultKeybindings(path string) error {
	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if FileExists(path) {
		return nil
	}

	if err := os.WriteFile(path, []byte(GenerateKeybindingsTemplate()), 0600); err != nil {
		return fmt.Errorf("failed to write keybindings: %w", err)
	}
	return nil
}

// GenerateKeybindingsTemplate returns the default TOML template
func GenerateKeybindingsTemplate() string {
	return `# ingredi keybindings
# Location: ~/.config/ingredi/keybindings.toml

[modifiers]
primary = "alt"          # Options: alt, ctrl, meta, super
secondary = "alt+shift"

# Per-action overrides. Actions: help, quit, open_camera, open_voice,
# close_overlay, search_findings, yank_last_result, yank_conversation,
# scroll_down, scroll_up, page_down, page_up, scroll_to_top, scroll_to_bottom
[actions]
# open_camera = "ctrl+o"
# quit = "ctrl+q"
`
}

// Primary returns the primary modifier
func (kb *KeyBindingsConfig) Primary() string {
	if kb.Modifiers.Primary == "" {
		return "alt"
	}
	return kb.Modifiers.Primary
}

// Secondary returns the secondary modifier
func (kb *KeyBindingsConfig) Secondary() string {
	if kb.Modifiers.Secondary == "" {
		return "alt+shift"
	}
	return kb.Modifiers.Secondary
}

// PrimaryKey builds a keybinding string with primary modifier
// Example: PrimaryKey("c") returns "alt+c" (or "ctrl+c" if primary is "ctrl")
func (kb *KeyBindingsConfig) PrimaryKey(key string) string {
	return kb.Primary() + "+" + key
}

// SecondaryKey builds a keybinding string with secondary modifier.
// Shift plus a single lowercase letter becomes the uppercase letter, which
// is what terminals report: SecondaryKey("y") returns "alt+Y".
func (kb *KeyBindingsConfig) SecondaryKey(key string) string {
	secondary := kb.Secondary()

	if strings.Contains(strings.ToLower(secondary), "shift") && len(key) == 1 && key[0] >= 'a' && key[0] <= 'z' {
		var cleanMods []string
		for _, part := range strings.Split(secondary, "+") {
			if strings.ToLower(part) != "shift" {
				cleanMods = append(cleanMods, part)
			}
		}
		if len(cleanMods) > 0 {
			return strings.Join(cleanMods, "+") + "+" + strings.ToUpper(key)
		}
		return strings.ToUpper(key)
	}

	return secondary + "+" + key
}

// GetActionKey returns the keybinding for a specific action.
// User overrides win over registry defaults; unknown actions return "".
func (kb *KeyBindingsConfig) GetActionKey(action string) string {
	if kb.Actions != nil {
		if override, exists := kb.Actions[action]; exists && override != "" {
			return override
		}
	}

	if def, exists := actionRegistry[action]; exists {
		switch def.modifier {
		case "primary":
			return kb.PrimaryKey(def.key)
		case "secondary":
			return kb.SecondaryKey(def.key)
		case "none":
			return def.key
		}
	}

	return ""
}

// DisplayActionKey returns a display-friendly version of an action's keybinding
// Example: "ctrl+shift+j" -> "Ctrl+Shift+J"
func (kb *KeyBindingsConfig) DisplayActionKey(action string) string {
	key := kb.GetActionKey(action)
	if key == "" {
		return ""
	}
	parts := strings.Split(key, "+")
	for i, part := range parts {
		if len(part) > 0 {
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, "+")
}
