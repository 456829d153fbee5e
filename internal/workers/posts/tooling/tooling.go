// Package tooling holds the argument handling shared by the post tools: the
// credential override properties, schema-driven parsing and the error text
// rendered back to tool callers.
package tooling

import (
	"fmt"
	"strings"

	"wordpress-posts/internal/common/config"
	"wordpress-posts/internal/common/errors"
	"wordpress-posts/internal/common/validation"
	"wordpress-posts/internal/common/wordpress"
	"wordpress-posts/pkg/registry"
)

const (
	Category = "posts"
	Version  = "1.0.0"
)

// CredentialArgs are the per-call overrides of the configured site.
type CredentialArgs struct {
	SiteURL  string `json:"siteUrl,omitempty"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
}

// Resolve fills blank arguments from defaults. The password never appears in
// a schema default so it is not published by tools/list.
func (a CredentialArgs) Resolve(defaults config.WordPressConfig) (wordpress.Credentials, error) {
	creds := wordpress.Credentials{
		SiteURL:  a.SiteURL,
		Username: a.Username,
		Password: a.Password,
	}
	if creds.SiteURL == "" {
		creds.SiteURL = defaults.SiteURL
	}
	if creds.Username == "" {
		creds.Username = defaults.Username
	}
	if creds.Password == "" {
		creds.Password = defaults.Password
	}
	creds.SiteURL = strings.TrimRight(creds.SiteURL, "/")

	if !creds.Complete() {
		return creds, errors.NewCredentialsMissingError()
	}
	if !validation.ValidateURL(creds.SiteURL) {
		return creds, errors.NewValidationError([]string{fmt.Sprintf("siteUrl: %q is not an http(s) URL", creds.SiteURL)})
	}
	return creds, nil
}

// CredentialProperties are merged into every tool schema.
func CredentialProperties() map[string]validation.Property {
	return map[string]validation.Property{
		"siteUrl": {
			Type:        "string",
			Description: "WordPress site URL (defaults to env WORDPRESS_SITE_URL)",
		},
		"username": {
			Type:        "string",
			Description: "WordPress username (defaults to env WORDPRESS_USERNAME)",
		},
		"password": {
			Type:        "string",
			Description: "WordPress application password (defaults to env WORDPRESS_PASSWORD)",
		},
	}
}

// WithCredentials returns schema with the credential properties added.
func WithCredentials(schema validation.JSONSchema) validation.JSONSchema {
	props := make(map[string]validation.Property, len(schema.Properties)+3)
	for name, p := range CredentialProperties() {
		props[name] = p
	}
	for name, p := range schema.Properties {
		props[name] = p
	}
	schema.Properties = props
	return schema
}

// ParseArgs applies schema defaults, validates and decodes args into out.
func ParseArgs(args map[string]interface{}, schema validation.JSONSchema, out interface{}) error {
	withDefaults := validation.ApplyDefaults(args, schema)

	result := validation.ValidateInput(withDefaults, schema)
	if !result.Valid {
		return errors.NewValidationError(result.GetErrorMessages())
	}

	if err := validation.Decode(withDefaults, out); err != nil {
		return errors.NewInputParsingError(err)
	}
	return nil
}

// ClientFactory builds a WordPress client for one call's credentials.
type ClientFactory func(creds wordpress.Credentials) *wordpress.Client

func NewClientFactory(httpClient wordpress.Doer) ClientFactory {
	return func(creds wordpress.Credentials) *wordpress.Client {
		return wordpress.NewClient(creds, httpClient)
	}
}

// ErrorText renders a failed call, e.g. "Error creating post: <remote message>".
func ErrorText(verb string, err error) string {
	stdErr, ok := errors.AsStandard(err)
	if !ok {
		return fmt.Sprintf("Error %s: %s", verb, err.Error())
	}

	switch stdErr.Code {
	case errors.ErrCodeCredentialsMissing:
		return fmt.Sprintf("Error: %s. %s", stdErr.Message, stdErr.Details)
	case errors.ErrCodeNoUpdateFields:
		return fmt.Sprintf("%s. %s", stdErr.Message, stdErr.Details)
	case errors.ErrCodeWordPressAPI:
		return fmt.Sprintf("Error %s: %s", verb, stdErr.Details)
	default:
		return fmt.Sprintf("Error %s: %s", verb, stdErr.Summary())
	}
}

// Descriptor assembles the catalog entry shared by both tool surfaces.
func Descriptor(name, displayName, description, taskType string, schema validation.JSONSchema, errorCodes []errors.ErrorCode, timeout string) registry.ToolDescriptor {
	inputSchema, err := registry.SchemaMap(schema)
	if err != nil {
		inputSchema = map[string]interface{}{"type": "object"}
	}

	codes := make([]string, len(errorCodes))
	retries := 0
	for i, code := range errorCodes {
		codes[i] = string(code)
		if n := errors.GetRetryCount(code); n > retries {
			retries = n
		}
	}

	return registry.ToolDescriptor{
		Name:        name,
		DisplayName: displayName,
		Description: description,
		Category:    Category,
		Version:     Version,
		TaskType:    taskType,
		InputSchema: inputSchema,
		ErrorCodes:  codes,
		Timeout:     timeout,
		Retries:     retries,
		Tags:        []string{"wordpress", Category},
	}
}

// Truncate returns the first n runes of s.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// ToMap converts a result struct into the loose map used for structured
// content and job variables.
func ToMap(v interface{}) map[string]interface{} {
	m, err := registry.SchemaMap(v)
	if err != nil {
		return map[string]interface{}{}
	}
	return m
}
