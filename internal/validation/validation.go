// Package validation applies ordered per-field rule chains to submitted
// form values. Rules either transform the value (Trim, Escape, ISODate)
// or assert a predicate (Required, MinLength, Alphanumeric). Assertions
// never stop the chain: every rule for every field runs, and all failures
// are collected so a single form re-render can show every problem at once.
package validation

import (
	"html"
	"net/url"
	"strings"
	"time"
)

// ISODateFormat is the accepted calendar date layout.
const ISODateFormat = "2006-01-02"

// FieldError is one failed assertion, reported in rule order.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Form collects sanitized values and errors across all field chains.
type Form struct {
	values url.Values
	errs   []FieldError
}

// NewForm wraps a submitted field-value map.
func NewForm(values url.Values) *Form {
	return &Form{values: values}
}

// Field starts a rule chain over the named raw value.
func (f *Form) Field(name string) *Chain {
	return &Chain{form: f, name: name, value: f.values.Get(name)}
}

// Errors returns every collected (field, message) pair. Empty means acceptable.
func (f *Form) Errors() []FieldError {
	return f.errs
}

// Valid reports whether no assertion has failed so far.
func (f *Form) Valid() bool {
	return len(f.errs) == 0
}

// Chain is an in-progress rule chain for one field. Transformations
// rewrite the working value; assertions record a FieldError on the form
// and leave the value untouched, so later rules still run.
type Chain struct {
	form     *Form
	name     string
	value    string
	optional bool
}

func (c *Chain) fail(message string) {
	c.form.errs = append(c.form.errs, FieldError{Field: c.name, Message: message})
}

// skip reports whether assertions should be bypassed for an optional,
// currently empty value.
func (c *Chain) skip() bool {
	return c.optional && c.value == ""
}

// Trim removes surrounding whitespace.
func (c *Chain) Trim() *Chain {
	c.value = strings.TrimSpace(c.value)
	return c
}

// Escape replaces HTML-significant characters with entities.
func (c *Chain) Escape() *Chain {
	c.value = html.EscapeString(c.value)
	return c
}

// Optional marks the field as allowed to be empty: assertions after this
// point are skipped while the value is empty.
func (c *Chain) Optional() *Chain {
	c.optional = true
	return c
}

// Required asserts the value is non-empty.
func (c *Chain) Required(message string) *Chain {
	if c.value == "" {
		c.fail(message)
	}
	return c
}

// MinLength asserts the value has at least n characters.
func (c *Chain) MinLength(n int, message string) *Chain {
	if c.skip() {
		return c
	}
	if len([]rune(c.value)) < n {
		c.fail(message)
	}
	return c
}

// MaxLength asserts the value has at most n characters.
func (c *Chain) MaxLength(n int, message string) *Chain {
	if c.skip() {
		return c
	}
	if len([]rune(c.value)) > n {
		c.fail(message)
	}
	return c
}

// Alphanumeric asserts the value contains only ASCII letters and digits.
func (c *Chain) Alphanumeric(message string) *Chain {
	if c.skip() {
		return c
	}
	for _, r := range c.value {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		default:
			c.fail(message)
			return c
		}
	}
	return c
}

// OneOf asserts the value is one of the allowed strings.
func (c *Chain) OneOf(message string, allowed ...string) *Chain {
	if c.skip() {
		return c
	}
	for _, a := range allowed {
		if c.value == a {
			return c
		}
	}
	c.fail(message)
	return c
}

// ISODate asserts the value parses as an ISO-8601 calendar date.
func (c *Chain) ISODate(message string) *Chain {
	if c.skip() {
		return c
	}
	if _, err := time.Parse(ISODateFormat, c.value); err != nil {
		c.fail(message)
	}
	return c
}

// Value returns the sanitized value as it stands at the end of the chain.
// Available even when assertions failed, so forms can re-render pre-filled.
func (c *Chain) Value() string {
	return c.value
}

// Date returns the sanitized value coerced to a calendar date, or nil
// when the value is empty or does not parse.
func (c *Chain) Date() *time.Time {
	if c.value == "" {
		return nil
	}
	t, err := time.Parse(ISODateFormat, c.value)
	if err != nil {
		return nil
	}
	return &t
}
