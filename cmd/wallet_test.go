package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"  y  \n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"maybe\n", false},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		got := confirm(strings.NewReader(tt.input), &out, "Sure? ")
		if got != tt.want {
			t.Errorf("confirm(%q) = %v, want %v", tt.input, got, tt.want)
		}
		if out.String() != "Sure? " {
			t.Errorf("prompt = %q", out.String())
		}
	}
}

func TestRewardTypeNames(t *testing.T) {
	got := strings.Join(rewardTypeNames(), ",")
	if got != "check-in,video-watch,code-scan" {
		t.Errorf("rewardTypeNames = %q", got)
	}
}
