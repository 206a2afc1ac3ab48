package input

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/fazai/fazai-dash/terminal"
)

// Rune aliases for keys that can't be bare single-char TOML keys
var runeAliases = map[string]rune{
	"space":     ' ',
	"backslash": '\\',
	"quote":     '"',
}

// keymapFile is the keymap TOML layout:
//
//	[keys]
//	q = "none"
//	x = "quit"
//
//	[special]
//	f10 = "quit"
type keymapFile struct {
	Keys    map[string]string `toml:"keys"`
	Special map[string]string `toml:"special"`
}

// KeyOverrides is a sparse keymap; ActionNone entries unbind the key
type KeyOverrides struct {
	Runes   map[rune]Action
	Special map[terminal.Key]Action
}

// ParseKeyConfig parses TOML keymap data into sparse overrides.
// Unknown sections, key names and action names are errors.
func ParseKeyConfig(data []byte) (*KeyOverrides, error) {
	var raw keymapFile
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, fmt.Errorf("keymap parse: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("keymap: unknown entry %q", undecoded[0].String())
	}

	ov := &KeyOverrides{
		Runes:   make(map[rune]Action, len(raw.Keys)),
		Special: make(map[terminal.Key]Action, len(raw.Special)),
	}

	for keyStr, actionName := range raw.Keys {
		r, err := resolveRune(keyStr)
		if err != nil {
			return nil, fmt.Errorf("[keys] key %q: %w", keyStr, err)
		}
		a, err := resolveAction(actionName)
		if err != nil {
			return nil, fmt.Errorf("[keys] key %q: %w", keyStr, err)
		}
		ov.Runes[r] = a
	}

	for keyStr, actionName := range raw.Special {
		k, ok := terminal.KeyByName(strings.ToLower(keyStr))
		if !ok {
			return nil, fmt.Errorf("[special] unknown key name: %q", keyStr)
		}
		a, err := resolveAction(actionName)
		if err != nil {
			return nil, fmt.Errorf("[special] key %q: %w", keyStr, err)
		}
		ov.Special[k] = a
	}

	return ov, nil
}

// LoadKeyTable builds the effective key table: defaults merged with the keymap
// file at path. An empty path or a missing file yields the defaults.
func LoadKeyTable(path string) (*KeyTable, error) {
	base := DefaultKeyTable()
	if path == "" {
		return base, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return base, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read keymap %s: %w", path, err)
	}

	ov, err := ParseKeyConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return MergeKeyTable(base, ov), nil
}

// resolveRune converts a TOML key string to a rune
// Accepts single characters and named aliases
func resolveRune(s string) (rune, error) {
	if r, ok := runeAliases[strings.ToLower(s)]; ok {
		return r, nil
	}

	runes := []rune(s)
	if len(runes) == 1 {
		return runes[0], nil
	}

	return 0, fmt.Errorf("invalid rune key: %q (expected single character or alias)", s)
}

func resolveAction(name string) (Action, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	a, ok := ActionByName(name)
	if !ok {
		return ActionNone, fmt.Errorf("unknown action: %q", name)
	}
	return a, nil
}

// MergeKeyTable returns a new KeyTable with base values overridden.
// Override entries with ActionNone delete the key from the result.
func MergeKeyTable(base *KeyTable, ov *KeyOverrides) *KeyTable {
	result := base.Clone()
	if ov == nil {
		return result
	}
	mergeMap(result.Runes, ov.Runes)
	mergeMap(result.Special, ov.Special)
	return result
}

func mergeMap[K comparable](base, override map[K]Action) {
	for k, v := range override {
		if v == ActionNone {
			delete(base, k)
		} else {
			base[k] = v
		}
	}
}
