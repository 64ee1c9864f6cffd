package validation

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForm_TrimAndValue(t *testing.T) {
	f := NewForm(url.Values{"name": {"  Jane  "}})

	got := f.Field("name").Trim().Value()

	assert.Equal(t, "Jane", got)
	assert.True(t, f.Valid())
}

func TestForm_RequiredFailsOnEmpty(t *testing.T) {
	f := NewForm(url.Values{"name": {"   "}})

	f.Field("name").Trim().Required("Name must be specified.")

	require.Len(t, f.Errors(), 1)
	assert.Equal(t, "name", f.Errors()[0].Field)
	assert.Equal(t, "Name must be specified.", f.Errors()[0].Message)
}

func TestForm_RequiredMissingField(t *testing.T) {
	f := NewForm(url.Values{})

	f.Field("name").Trim().Required("Name must be specified.")

	assert.False(t, f.Valid())
}

func TestForm_EscapeRewritesValue(t *testing.T) {
	f := NewForm(url.Values{"name": {"<script>alert(1)</script>"}})

	got := f.Field("name").Trim().Escape().Value()

	assert.Equal(t, "&lt;script&gt;alert(1)&lt;/script&gt;", got)
	assert.NotContains(t, got, "<script>")
}

func TestForm_ChainDoesNotShortCircuit(t *testing.T) {
	f := NewForm(url.Values{"name": {""}})

	f.Field("name").Trim().
		Required("Name must be specified.").
		MinLength(3, "Name must contain at least 3 characters.")

	// Both assertions run and both failures are collected.
	require.Len(t, f.Errors(), 2)
	assert.Equal(t, "Name must be specified.", f.Errors()[0].Message)
	assert.Equal(t, "Name must contain at least 3 characters.", f.Errors()[1].Message)
}

func TestForm_ErrorsAcrossFieldsKeepOrder(t *testing.T) {
	f := NewForm(url.Values{"first": {""}, "second": {""}})

	f.Field("first").Required("first missing")
	f.Field("second").Required("second missing")

	require.Len(t, f.Errors(), 2)
	assert.Equal(t, "first", f.Errors()[0].Field)
	assert.Equal(t, "second", f.Errors()[1].Field)
}

func TestChain_MinMaxLength(t *testing.T) {
	f := NewForm(url.Values{"short": {"ab"}, "long": {"abcdef"}})

	f.Field("short").MinLength(3, "too short")
	f.Field("long").MaxLength(5, "too long")

	require.Len(t, f.Errors(), 2)
	assert.Equal(t, "too short", f.Errors()[0].Message)
	assert.Equal(t, "too long", f.Errors()[1].Message)
}

func TestChain_LengthCountsRunes(t *testing.T) {
	f := NewForm(url.Values{"name": {"héllo"}})

	f.Field("name").MaxLength(5, "too long")

	assert.True(t, f.Valid())
}

func TestChain_Alphanumeric(t *testing.T) {
	cases := []struct {
		value string
		valid bool
	}{
		{"Jane", true},
		{"R2D2", true},
		{"Jane Austen", false},
		{"O'Brien", false},
		{"name<tag>", false},
	}

	for _, tc := range cases {
		f := NewForm(url.Values{"name": {tc.value}})
		f.Field("name").Alphanumeric("bad characters")
		assert.Equal(t, tc.valid, f.Valid(), "value %q", tc.value)
	}
}

func TestChain_OneOf(t *testing.T) {
	f := NewForm(url.Values{"status": {"Lost"}})

	f.Field("status").OneOf("Invalid status", "Available", "Maintenance", "Loaned", "Reserved")

	require.Len(t, f.Errors(), 1)
	assert.Equal(t, "Invalid status", f.Errors()[0].Message)
}

func TestChain_ISODate(t *testing.T) {
	f := NewForm(url.Values{"good": {"1775-12-16"}, "bad": {"16/12/1775"}})

	f.Field("good").ISODate("invalid date")
	f.Field("bad").ISODate("invalid date")

	require.Len(t, f.Errors(), 1)
	assert.Equal(t, "bad", f.Errors()[0].Field)
}

func TestChain_OptionalSkipsAssertionsWhenEmpty(t *testing.T) {
	f := NewForm(url.Values{"date_of_death": {""}})

	got := f.Field("date_of_death").Trim().Optional().ISODate("invalid date").Date()

	assert.True(t, f.Valid())
	assert.Nil(t, got)
}

func TestChain_OptionalStillChecksNonEmpty(t *testing.T) {
	f := NewForm(url.Values{"date_of_death": {"not-a-date"}})

	f.Field("date_of_death").Trim().Optional().ISODate("invalid date")

	assert.False(t, f.Valid())
}

func TestChain_Date(t *testing.T) {
	f := NewForm(url.Values{"d": {"1817-07-18"}})

	got := f.Field("d").Trim().ISODate("invalid").Date()

	require.NotNil(t, got)
	assert.Equal(t, time.Date(1817, time.July, 18, 0, 0, 0, 0, time.UTC), *got)
}

func TestChain_DateNilOnUnparseable(t *testing.T) {
	f := NewForm(url.Values{"d": {"soon"}})

	got := f.Field("d").Date()

	assert.Nil(t, got)
}

func TestChain_ValueAvailableAfterFailure(t *testing.T) {
	f := NewForm(url.Values{"name": {"Jane Austen"}})

	got := f.Field("name").Trim().
		Alphanumeric("bad characters").
		Escape().Value()

	assert.False(t, f.Valid())
	assert.Equal(t, "Jane Austen", got)
}
