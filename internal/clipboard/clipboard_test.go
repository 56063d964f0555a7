package clipboard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func installed(names ...string) func(string) (string, error) {
	return func(name string) (string, error) {
		for _, n := range names {
			if n == name {
				return "/usr/bin/" + name, nil
			}
		}
		return "", errors.New("not found")
	}
}

func TestCommand(t *testing.T) {
	argv, err := command("linux", installed("xsel", "xclip"))
	require.NoError(t, err)
	assert.Equal(t, []string{"xclip", "-selection", "clipboard"}, argv, "xclip is preferred")

	argv, err = command("linux", installed("wl-copy"))
	require.NoError(t, err)
	assert.Equal(t, []string{"wl-copy"}, argv)

	argv, err = command("darwin", installed("pbcopy"))
	require.NoError(t, err)
	assert.Equal(t, []string{"pbcopy"}, argv)

	argv, err = command("freebsd", installed("xclip"))
	require.NoError(t, err)
	assert.Equal(t, "xclip", argv[0], "unknown systems try the X11 tools")
}

func TestCommandUnavailable(t *testing.T) {
	_, err := command("linux", installed())
	assert.ErrorIs(t, err, ErrUnavailable)
}
