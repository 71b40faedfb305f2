// Package config manages webnav configuration: a static table of option
// definitions, per-option layered values (temporary override > config file >
// built-in default), and loading through Viper from .webnav.yml, WEBNAV_*
// environment variables, and command-line flags.
package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/conneroisu/webnav/internal/command"
	"github.com/conneroisu/webnav/internal/errors"
)

// Store holds the layered values for every known option. Unknown options
// are rejected, except that new search engines may be defined freely.
type Store struct {
	values map[string]*Value
	order  []string
}

// NewStore builds a store from the definition table with all defaults in
// place.
func NewStore() (*Store, error) {
	s := &Store{values: make(map[string]*Value)}
	for _, opt := range Definitions() {
		value, err := NewValue(opt.Type, opt.Default)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeConfig, "bad_definition",
				"option "+opt.Key())
		}
		s.values[opt.Key()] = value
		s.order = append(s.order, opt.Key())
	}
	return s, nil
}

// Get returns the current value of section.name.
func (s *Store) Get(section, name string) (string, error) {
	value, ok := s.values[section+"."+name]
	if !ok {
		return "", errors.Newf(errors.ErrorTypeConfig, "unknown_option",
			"no option %s.%s", section, name)
	}
	return value.Get(), nil
}

// Set validates and stores a value on the given layer. Setting an unknown
// option fails unless it defines a new search engine.
func (s *Store) Set(layer Layer, section, name, raw string) error {
	key := section + "." + name
	value, ok := s.values[key]
	if !ok {
		if section != "searchengines" {
			return errors.Newf(errors.ErrorTypeConfig, "unknown_option",
				"no option %s", key)
		}
		fresh := &Value{typ: SearchEngineType{}}
		if err := fresh.Set(layer, raw); err != nil {
			return err
		}
		s.values[key] = fresh
		s.order = append(s.order, key)
		return nil
	}
	return value.Set(layer, raw)
}

// Value returns the layered value for an option key, for callers that need
// layer-level access.
func (s *Store) Value(section, name string) (*Value, bool) {
	value, ok := s.values[section+"."+name]
	return value, ok
}

// Keys returns all option keys in definition order, dynamically added
// search engines last.
func (s *Store) Keys() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Section returns the name -> current value mapping of one section.
func (s *Store) Section(section string) map[string]string {
	out := make(map[string]string)
	prefix := section + "."
	for key, value := range s.values {
		if strings.HasPrefix(key, prefix) {
			out[strings.TrimPrefix(key, prefix)] = value.Get()
		}
	}
	return out
}

// Config is the loaded runtime configuration.
type Config struct {
	store *Store
}

// Load builds the store and overlays everything Viper collected (config
// file, WEBNAV_* environment, bound flags) onto the conf layer. Values that
// fail their type's validation abort the load.
func Load() (*Config, error) {
	store, err := NewStore()
	if err != nil {
		return nil, err
	}

	for _, opt := range Definitions() {
		if !viper.IsSet(opt.Key()) {
			continue
		}
		raw := viper.GetString(opt.Key())
		if err := store.Set(LayerConf, opt.Section, opt.Name, raw); err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeConfig, "invalid_value",
				"option "+opt.Key())
		}
	}

	// Search engines beyond the defined ones come in as a whole section.
	if viper.IsSet("searchengines") {
		for name, engine := range viper.GetStringMapString("searchengines") {
			// Viper lowercases keys; map the default engine back to its
			// canonical spelling so overrides hit the defined option.
			if name == "default" {
				name = "DEFAULT"
			}
			if err := store.Set(LayerConf, "searchengines", name, engine); err != nil {
				return nil, errors.Wrap(err, errors.ErrorTypeConfig, "invalid_value",
					"search engine "+name)
			}
		}
	}

	return &Config{store: store}, nil
}

// FromStore wraps an existing store, mainly for tests.
func FromStore(store *Store) *Config {
	return &Config{store: store}
}

// Store exposes the underlying layered store.
func (c *Config) Store() *Store {
	return c.store
}

func (c *Config) get(section, name string) string {
	value, err := c.store.Get(section, name)
	if err != nil {
		// Only reachable for options missing from the definition table,
		// which is a programming error.
		panic(err)
	}
	return value
}

// AutoSearch returns the general.auto-search mode: naive, dns, or false.
func (c *Config) AutoSearch() string {
	return c.get("general", "auto-search")
}

// StartPage returns the URL opened when no argument is given.
func (c *Config) StartPage() string {
	return c.get("general", "startpage")
}

// Editor returns the parsed external editor template.
func (c *Config) Editor() (*command.Template, error) {
	return command.ParseTemplate(c.get("general", "editor"))
}

// Browser returns the parsed browser command template.
func (c *Config) Browser() (*command.Template, error) {
	return command.ParseTemplate(c.get("general", "browser"))
}

// SearchEngines returns the engine name -> URL template mapping.
func (c *Config) SearchEngines() map[string]string {
	return c.store.Section("searchengines")
}

// Proxy returns the network.proxy value.
func (c *Config) Proxy() string {
	return c.get("network", "proxy")
}

// SocketName returns the configured IPC socket name override, possibly
// empty.
func (c *Config) SocketName() string {
	return c.get("ipc", "socket-name")
}

// DefaultYAML renders the definition table as a commented YAML document,
// used by `webnav config init`.
func DefaultYAML() ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	root.HeadComment = "Configuration for webnav. Regenerate with: webnav config init"

	sections := make(map[string]*yaml.Node)
	var sectionOrder []string
	for _, opt := range Definitions() {
		node, ok := sections[opt.Section]
		if !ok {
			node = &yaml.Node{Kind: yaml.MappingNode}
			sections[opt.Section] = node
			sectionOrder = append(sectionOrder, opt.Section)
		}
		key := &yaml.Node{
			Kind:        yaml.ScalarNode,
			Value:       opt.Name,
			HeadComment: wrapComment(opt.Description),
		}
		value := &yaml.Node{Kind: yaml.ScalarNode, Value: opt.Default}
		node.Content = append(node.Content, key, value)
	}

	for _, section := range sectionOrder {
		key := &yaml.Node{
			Kind:        yaml.ScalarNode,
			Value:       section,
			HeadComment: wrapComment(SectionDescriptions[section]),
		}
		root.Content = append(root.Content, key, sections[section])
	}

	return yaml.Marshal(root)
}

// WriteDefault writes the default config file unless path already exists.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return errors.Newf(errors.ErrorTypeConfig, "config_exists",
			"%s already exists", path)
	}
	data, err := DefaultYAML()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Describe renders one line per option for `config list`: key, type,
// current value, and a star when it differs from the default.
func (c *Config) Describe() []string {
	keys := c.store.Keys()
	sort.Strings(keys)

	out := make([]string, 0, len(keys))
	for _, key := range keys {
		parts := strings.SplitN(key, ".", 2)
		value, _ := c.store.Value(parts[0], parts[1])
		current := value.Get()
		marker := " "
		if current != value.Default() {
			marker = "*"
		}
		out = append(out, fmt.Sprintf("%s %-28s %-18s %s",
			marker, key, value.Type().Name(), current))
	}
	return out
}

func wrapComment(s string) string {
	if s == "" {
		return s
	}
	const width = 72
	var b strings.Builder
	line := 0
	for _, word := range strings.Fields(s) {
		if line > 0 && line+len(word)+1 > width {
			b.WriteString("\n")
			line = 0
		} else if line > 0 {
			b.WriteString(" ")
			line++
		}
		b.WriteString(word)
		line += len(word)
	}
	return b.String()
}
