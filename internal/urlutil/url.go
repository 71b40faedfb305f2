// Package urlutil decides whether user input is a URL or a search term and
// resolves it either way. The heuristics mirror a browser address bar:
// anything with a scheme or a plausible host is a URL, anything with
// whitespace is a search, and search terms expand through configurable
// search-engine templates with bang syntax (`!ddg term`).
package urlutil

import (
	"net"
	"net/url"
	"os"
	"regexp"
	"strings"

	"golang.org/x/net/publicsuffix"
	"golang.org/x/text/unicode/norm"

	"github.com/conneroisu/webnav/internal/errors"
	"github.com/conneroisu/webnav/internal/splitter"
)

// Auto-search modes. Naive inspects the host shape, DNS additionally
// resolves it, and off treats every input as a URL.
const (
	AutoSearchNaive = "naive"
	AutoSearchDNS   = "dns"
	AutoSearchOff   = "false"
)

// DefaultEngine is the search engine used when no bang is given.
const DefaultEngine = "DEFAULT"

var schemeRe = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*://`)

// specialSchemes are always URLs, even with auto-search disabled.
var specialSchemes = []string{"about:", "file:"}

// Resolver applies the URL-vs-search heuristic with a fixed configuration.
type Resolver struct {
	autoSearch string
	engines    map[string]string

	// lookupHost is swappable for tests; nil means net.LookupHost.
	lookupHost func(host string) ([]string, error)
}

// NewResolver creates a resolver. autoSearch is one of the AutoSearch
// constants; engines maps engine names to URL templates with a {} slot and
// should contain DefaultEngine.
func NewResolver(autoSearch string, engines map[string]string) *Resolver {
	return &Resolver{autoSearch: autoSearch, engines: engines}
}

// IsURL reports whether input looks like a URL rather than a search term.
func (r *Resolver) IsURL(input string) bool {
	input = normalize(input)

	if r.autoSearch == AutoSearchOff {
		// No auto-search, so everything is a URL.
		return true
	}
	if strings.ContainsAny(input, " \t") {
		// A URL never contains whitespace.
		return false
	}
	if isSpecialURL(input) {
		return true
	}
	if _, err := os.Stat(input); err == nil {
		// Local file.
		return true
	}

	switch r.autoSearch {
	case AutoSearchDNS:
		return r.isURLDNS(input)
	default:
		return isURLNaive(input)
	}
}

// FuzzyURL turns user input into a target URL: the input itself when it
// looks like a URL, otherwise a search URL. Input that is neither (e.g. a
// bang with no term) falls back to being treated as a URL.
func (r *Resolver) FuzzyURL(input string) (string, error) {
	input = normalize(strings.TrimSpace(input))
	if input == "" {
		return "", errors.New(errors.ErrorTypeURL, "empty_input", "nothing to open")
	}
	if r.IsURL(input) {
		return FromUserInput(input), nil
	}
	searchURL, err := r.SearchURL(input)
	if err != nil {
		return FromUserInput(input), nil
	}
	return searchURL, nil
}

// SearchURL expands a search term through the configured engines. A token
// of the form !name anywhere in the term selects that engine; unknown
// engines and plain terms use DefaultEngine.
func (r *Resolver) SearchURL(term string) (string, error) {
	engine := DefaultEngine
	parts := splitter.Split(term, splitter.Options{})

	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if len(part) > 1 && strings.HasPrefix(part, "!") && engine == DefaultEngine {
			name := part[1:]
			if _, ok := r.engines[name]; ok {
				engine = name
				continue
			}
		}
		kept = append(kept, part)
	}

	rest := strings.Join(kept, " ")
	if rest == "" {
		return "", errors.New(errors.ErrorTypeURL, "no_search_term",
			"no search term given")
	}

	template, ok := r.engines[engine]
	if !ok {
		return "", errors.Newf(errors.ErrorTypeURL, "no_search_engine",
			"no search engine %s defined", engine)
	}
	return strings.Replace(template, "{}", url.QueryEscape(rest), 1), nil
}

// FromUserInput completes a bare input into a full URL the way browsers do:
// existing schemes stay, local paths become file URLs, and everything else
// gets http:// prepended.
func FromUserInput(input string) string {
	if schemeRe.MatchString(input) || isSpecialURL(input) {
		return input
	}
	if abs, err := toFileURL(input); err == nil {
		return abs
	}
	return "http://" + input
}

func toFileURL(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", err
	}
	u := url.URL{Scheme: "file", Path: path}
	return u.String(), nil
}

func isSpecialURL(input string) bool {
	for _, scheme := range specialSchemes {
		if strings.HasPrefix(input, scheme) {
			return true
		}
	}
	return false
}

// isURLNaive checks the host shape without any network traffic: an
// explicit http(s) scheme, localhost, or a dotted host whose trailing label
// is a known public suffix.
func isURLNaive(input string) bool {
	if strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://") {
		return true
	}
	host := hostOf(input)
	if host == "localhost" {
		return true
	}
	if ip := net.ParseIP(host); ip != nil {
		return true
	}
	if !strings.Contains(host, ".") {
		return false
	}
	suffix, icann := publicsuffix.PublicSuffix(strings.ToLower(host))
	return icann && suffix != ""
}

func (r *Resolver) isURLDNS(input string) bool {
	host := hostOf(input)
	if host == "" {
		return false
	}
	lookup := r.lookupHost
	if lookup == nil {
		lookup = net.LookupHost
	}
	addrs, err := lookup(host)
	return err == nil && len(addrs) > 0
}

// hostOf extracts the host part of a possibly scheme-less URL string.
func hostOf(input string) string {
	candidate := input
	if !schemeRe.MatchString(candidate) {
		candidate = "http://" + candidate
	}
	u, err := url.Parse(candidate)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// normalize applies NFC so visually identical input compares and parses
// consistently.
func normalize(s string) string {
	return norm.NFC.String(s)
}
