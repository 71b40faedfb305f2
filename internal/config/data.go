package config

// The static option definition table. It drives validation, default config
// generation, and the `config list` output. Options not listed here (except
// custom search engines) cannot be set.

// Option defines one known configuration option.
type Option struct {
	Section     string
	Name        string
	Type        Type
	Default     string
	Description string
}

// Key returns the option's section.name key.
func (o Option) Key() string {
	return o.Section + "." + o.Name
}

// SectionDescriptions documents each config section.
var SectionDescriptions = map[string]string{
	"general":       "General/misc. options.",
	"searchengines": "Search engines usable via the address input. The engine named DEFAULT is used when auto-search is active and the input is not a URL. Other engines are selected with bang syntax, e.g. `!ddg term`. The string {} is replaced by the search term.",
	"network":       "Settings related to the network.",
	"ipc":           "Single-instance IPC settings.",
}

// definitions is ordered the way sections and options are presented.
var definitions = []Option{
	{
		Section: "general",
		Name:    "auto-search",
		Type:    EnumType{Valid: []string{"naive", "dns", "false"}},
		Default: "naive",
		Description: "Whether to try interpreting non-URL input as a search " +
			"term: naive checks the host shape, dns resolves it, false " +
			"treats everything as a URL.",
	},
	{
		Section:     "general",
		Name:        "editor",
		Type:        ShellCommandType{Placeholder: true},
		Default:     `gvim -f "{}"`,
		Description: "External editor command. {} is replaced by the file name.",
	},
	{
		Section:     "general",
		Name:        "browser",
		Type:        ShellCommandType{Placeholder: true},
		Default:     `xdg-open "{}"`,
		Description: "Browser command used to open resolved URLs. {} is replaced by the URL.",
	},
	{
		Section:     "general",
		Name:        "startpage",
		Type:        StringType{NonEmpty: true},
		Default:     "https://duckduckgo.com/",
		Description: "URL opened when no argument is given.",
	},
	{
		Section:     "searchengines",
		Name:        "DEFAULT",
		Type:        SearchEngineType{},
		Default:     "https://duckduckgo.com/?q={}",
		Description: "Search engine used when no bang is given.",
	},
	{
		Section:     "searchengines",
		Name:        "ddg",
		Type:        SearchEngineType{},
		Default:     "https://duckduckgo.com/?q={}",
		Description: "DuckDuckGo.",
	},
	{
		Section:     "searchengines",
		Name:        "wikipedia",
		Type:        SearchEngineType{},
		Default:     "https://en.wikipedia.org/w/index.php?search={}",
		Description: "Wikipedia (English).",
	},
	{
		Section:     "network",
		Name:        "proxy",
		Type:        ProxyType{},
		Default:     "system",
		Description: "Proxy to use: system, none, or a proxy URL.",
	},
	{
		Section: "ipc",
		Name:    "socket-name",
		Type:    StringType{},
		Default: "",
		Description: "Override for the IPC socket name. Empty derives " +
			"webnav-<username> automatically.",
	},
}

// Definitions returns the option definition table in presentation order.
func Definitions() []Option {
	out := make([]Option, len(definitions))
	copy(out, definitions)
	return out
}

// LookupDefinition finds a defined option by section and name.
func LookupDefinition(section, name string) (Option, bool) {
	for _, opt := range definitions {
		if opt.Section == section && opt.Name == name {
			return opt, true
		}
	}
	return Option{}, false
}
