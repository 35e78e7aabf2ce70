package api

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseOrdering(t *testing.T) {
	t.Parallel()

	field, desc := parseOrdering("created_at")
	assert.Equal(t, "created_at", field)
	assert.False(t, desc)

	field, desc = parseOrdering("-created_at")
	assert.Equal(t, "created_at", field)
	assert.True(t, desc)

	field, desc = parseOrdering("")
	assert.Equal(t, "", field)
	assert.False(t, desc)
}

func TestQueryInt(t *testing.T) {
	t.Parallel()
	values := url.Values{"limit": {"25"}, "offset": {"-3"}, "bad": {"abc"}}

	assert.Equal(t, 25, queryInt(values, "limit", 0))
	assert.Equal(t, 0, queryInt(values, "offset", 0))
	assert.Equal(t, 7, queryInt(values, "bad", 7))
	assert.Equal(t, 7, queryInt(values, "missing", 7))
}

func TestQueryTime(t *testing.T) {
	t.Parallel()
	values := url.Values{
		"rfc":  {"2026-01-02T15:04:05Z"},
		"date": {"2026-01-02"},
		"bad":  {"yesterday"},
	}

	assert.Equal(t, time.Date(2026, time.January, 2, 15, 4, 5, 0, time.UTC), queryTime(values, "rfc"))
	assert.Equal(t, time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC), queryTime(values, "date"))
	assert.True(t, queryTime(values, "bad").IsZero())
	assert.True(t, queryTime(values, "missing").IsZero())
}

func TestSnakeCase(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"Status":     "status",
		"AdminEmail": "admin_email",
		"AdminName":  "admin_name",
		"Feedback":   "feedback",
	}
	for in, want := range cases {
		assert.Equal(t, want, snakeCase(in))
	}
}
