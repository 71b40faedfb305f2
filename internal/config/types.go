package config

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/conneroisu/webnav/internal/command"
	"github.com/conneroisu/webnav/internal/errors"
)

// Type validates raw option values. Every option in the definition table
// carries one.
type Type interface {
	// Name is the type name shown in option listings.
	Name() string
	// Validate checks a raw string value.
	Validate(value string) error
}

// StringType accepts any value, optionally rejecting the empty string.
type StringType struct {
	NonEmpty bool
}

func (StringType) Name() string { return "string" }

func (t StringType) Validate(value string) error {
	if t.NonEmpty && value == "" {
		return errors.New(errors.ErrorTypeValidation, "empty_value",
			"value may not be empty")
	}
	return nil
}

// BoolType accepts true/false.
type BoolType struct{}

func (BoolType) Name() string { return "bool" }

func (BoolType) Validate(value string) error {
	if _, err := strconv.ParseBool(value); err != nil {
		return errors.Newf(errors.ErrorTypeValidation, "invalid_bool",
			"%q is not a boolean value", value)
	}
	return nil
}

// EnumType accepts one of a fixed set of values.
type EnumType struct {
	Valid []string
}

func (EnumType) Name() string { return "enum" }

func (t EnumType) Validate(value string) error {
	for _, valid := range t.Valid {
		if value == valid {
			return nil
		}
	}
	return errors.Newf(errors.ErrorTypeValidation, "invalid_enum",
		"%q is not one of: %s", value, strings.Join(t.Valid, ", "))
}

// ShellCommandType is a command string split via the shell-like splitter.
// With Placeholder set the command must contain exactly one {} slot.
type ShellCommandType struct {
	Placeholder bool
}

func (ShellCommandType) Name() string { return "shell-command" }

func (t ShellCommandType) Validate(value string) error {
	if !t.Placeholder {
		if strings.TrimSpace(value) == "" {
			return errors.New(errors.ErrorTypeValidation, "empty_value",
				"command may not be empty")
		}
		return nil
	}
	_, err := command.ParseTemplate(value)
	return err
}

// SearchEngineType is a search URL template with a {} slot for the
// percent-encoded search term.
type SearchEngineType struct{}

func (SearchEngineType) Name() string { return "search-engine-url" }

func (SearchEngineType) Validate(value string) error {
	if !strings.Contains(value, "{}") {
		return errors.Newf(errors.ErrorTypeValidation, "missing_placeholder",
			"search engine URL %q needs to contain a {}-placeholder", value)
	}
	if _, err := url.Parse(strings.Replace(value, "{}", "term", 1)); err != nil {
		return errors.Wrap(err, errors.ErrorTypeValidation, "invalid_url",
			"search engine URL does not parse")
	}
	return nil
}

// ProxyType accepts "system", "none", or a proxy URL.
type ProxyType struct{}

func (ProxyType) Name() string { return "proxy" }

func (ProxyType) Validate(value string) error {
	if value == "system" || value == "none" {
		return nil
	}
	u, err := url.Parse(value)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.Newf(errors.ErrorTypeValidation, "invalid_proxy",
			"%q is neither system, none, nor a proxy URL", value)
	}
	return nil
}
