package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAction(t *testing.T) {
	tests := []struct {
		in   string
		want Action
	}{
		{"open", ActionOpen},
		{" Close ", ActionClose},
		{"SEARCH", ActionSearch},
		{"launch", ActionUnknown},
		{"", ActionUnknown},
		{"unknown", ActionUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseAction(tt.in))
		})
	}
}

func TestDefaultProcessName(t *testing.T) {
	assert.Equal(t, "notepad", DefaultProcessName(`C:\Windows\system32\notepad.exe`))
	assert.Equal(t, "winword", DefaultProcessName(`C:\Program Files\Microsoft Office\root\Office16\WINWORD.EXE`))
	assert.Equal(t, "firefox", DefaultProcessName("/usr/bin/firefox"))
	assert.Equal(t, "code", DefaultProcessName("code"))
}

func TestFormatSearchResults(t *testing.T) {
	out := FormatSearchResults([]SearchResult{
		{Title: "Go", URL: "https://go.dev", Snippet: "The Go language"},
		{Title: "No snippet", URL: "https://example.com"},
	})

	assert.Equal(t, "1. Go (https://go.dev)\n   The Go language\n2. No snippet (https://example.com)", out)
	assert.Empty(t, FormatSearchResults(nil))
}
