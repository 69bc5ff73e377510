package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		allowed  []string
		expected []string
	}{
		{
			name:     "separate value kept",
			args:     []string{"-e", "dev.env", "-x", "other"},
			allowed:  []string{"-e"},
			expected: []string{"-e", "dev.env"},
		},
		{
			name:     "equals form kept",
			args:     []string{"--env-file=dev.env", "-x=1"},
			allowed:  []string{"--env-file"},
			expected: []string{"--env-file=dev.env"},
		},
		{
			name:     "flag without value",
			args:     []string{"-e", "-x"},
			allowed:  []string{"-e"},
			expected: []string{"-e"},
		},
		{
			name:     "nothing allowed",
			args:     []string{"-a", "1", "-b", "2"},
			allowed:  []string{"-c"},
			expected: []string{},
		},
		{
			name:     "empty args",
			args:     []string{},
			allowed:  []string{"-e"},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FilterArgs(tt.args, tt.allowed))
		})
	}
}
