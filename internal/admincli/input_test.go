package admincli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSimpleText_TrimsNewline(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("admin@fieldpass.io\n"))

	got, err := GetSimpleText(reader, "Email", &out)
	require.NoError(t, err)
	assert.Equal(t, "admin@fieldpass.io", got)
	assert.Contains(t, out.String(), "Email")
}

func TestGetSimpleText_PartialLineAtEOF(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("no-newline"))

	got, err := GetSimpleText(reader, "Name", &out)
	require.NoError(t, err)
	assert.Equal(t, "no-newline", got)
}

func TestGetSimpleText_EmptyInput(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader(""))

	_, err := GetSimpleText(reader, "Name", &out)
	require.Error(t, err)
}

func TestGetPassword_UsesSeam(t *testing.T) {
	orig := readPassword
	defer func() { readPassword = orig }()
	readPassword = func(fd int) ([]byte, error) {
		return []byte("s3cret-pass"), nil
	}

	var out bytes.Buffer
	pw, err := GetPassword(&out)
	require.NoError(t, err)
	assert.Equal(t, "s3cret-pass", pw)
	assert.Contains(t, out.String(), "Enter password:")
}
