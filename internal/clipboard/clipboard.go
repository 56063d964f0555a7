// Package clipboard copies text to the system clipboard through the platform's copy tool.
package clipboard

import (
	"context"
	"errors"
	"os/exec"
	"runtime"
	"strings"
)

// ErrUnavailable means no supported copy tool is installed.
var ErrUnavailable = errors.New("no clipboard tool found (install xclip or xsel)")

// candidates lists the copy tools per GOOS, in preference order.
var candidates = map[string][][]string{
	"darwin":  {{"pbcopy"}},
	"linux":   {{"xclip", "-selection", "clipboard"}, {"xsel", "--clipboard", "--input"}, {"wl-copy"}},
	"windows": {{"cmd", "/c", "clip"}},
}

// command picks the first installed tool for goos.
func command(goos string, lookPath func(string) (string, error)) ([]string, error) {
	tools, ok := candidates[goos]
	if !ok {
		tools = candidates["linux"]
	}
	for _, tool := range tools {
		if _, err := lookPath(tool[0]); err == nil {
			return tool, nil
		}
	}
	return nil, ErrUnavailable
}

// Write copies text to the system clipboard.
func Write(ctx context.Context, text string) error {
	argv, err := command(runtime.GOOS, exec.LookPath)
	if err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}

// Available checks if clipboard functionality is available.
func Available() bool {
	_, err := command(runtime.GOOS, exec.LookPath)
	return err == nil
}
