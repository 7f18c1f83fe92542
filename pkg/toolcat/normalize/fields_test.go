package normalize

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPopularity(t *testing.T) {
	tests := []struct {
		name   string
		in     any
		want   int
		wantOK bool
	}{
		{"negative clamps to zero", -50, 0, true},
		{"large clamps to max", 5000, 1000, true},
		{"non-numeric defaults", "abc", DefaultPopularity, false},
		{"blank defaults", "", DefaultPopularity, false},
		{"nil defaults", nil, DefaultPopularity, false},
		{"float truncates", 750.9, 750, true},
		{"numeric string", " 640 ", 640, true},
		{"thousands separator", "1,200", 1000, true},
		{"float string", "512.0", 512, true},
		{"nan defaults", math.NaN(), DefaultPopularity, false},
		{"int64", int64(300), 300, true},
		{"huge float clamps to max", 1e30, 1000, true},
		{"huge exponent string clamps to max", "1e30", 1000, true},
		{"huge digit string clamps to max", "9999999999999999999999", 1000, true},
		{"huge negative clamps to zero", -1e30, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Popularity(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestURL(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"https://kimi.moonshot.cn", "https://kimi.moonshot.cn", true},
		{"http://example.com/a?b=c", "http://example.com/a?b=c", true},
		{"  www.deepseek.com ", "https://www.deepseek.com", true},
		{"HTTPS://Example.com", "HTTPS://Example.com", true},
		{"", "", true},
		{"无", "", true},
		{"none", "", true},
		{"None", "", true},
		{"not a url", "", false},
		{"https://", "", false},
	}
	for _, tt := range tests {
		got, ok := URL(tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
		assert.Equal(t, tt.wantOK, ok, "input %q", tt.in)
	}
}

func TestURLIsIdempotent(t *testing.T) {
	once, _ := URL("www.example.com/path")
	twice, ok := URL(once)
	assert.True(t, ok)
	assert.Equal(t, once, twice)
}

func TestOpenSource(t *testing.T) {
	for _, in := range []any{"是", "YES", " y ", "True", "开源", true} {
		assert.True(t, OpenSource(in), "input %v", in)
	}
	for _, in := range []any{"否", "no", "", nil, "maybe", false, 1} {
		assert.False(t, OpenSource(in), "input %v", in)
	}
}

func TestMentionsOpenSource(t *testing.T) {
	assert.True(t, MentionsOpenSource("完全开源的大模型"))
	assert.True(t, MentionsOpenSource("An Open-Source agent framework"))
	assert.False(t, MentionsOpenSource("closed beta"))
}

func TestFormatOpenSourceRoundTrip(t *testing.T) {
	for _, v := range []bool{true, false} {
		assert.Equal(t, v, OpenSource(FormatOpenSource(v)))
	}
}
