// Package clipboard copies dialog text to the system clipboard.
package clipboard

import (
	"errors"
	"log/slog"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
	"github.com/vidyasagar/tpopup/internal/logging"
)

// ErrUnavailable is returned when neither the system clipboard nor OSC52 can be used.
var ErrUnavailable = errors.New("clipboard unavailable")

// Copy writes text to the system clipboard, falling back to an OSC52
// escape sequence for terminals without a local clipboard (ssh, tmux).
func Copy(text string) error {
	log := logging.ForComponent(logging.CompClipboard)

	if !clipboard.Unsupported {
		err := clipboard.WriteAll(text)
		if err == nil {
			return nil
		}
		log.Debug("system clipboard failed", slog.String("error", err.Error()))
	}

	if !osc52Supported() {
		return ErrUnavailable
	}
	seq := osc52.New(text)
	if os.Getenv("TMUX") != "" {
		seq = seq.Tmux()
	}
	if _, err := seq.WriteTo(os.Stderr); err != nil {
		return err
	}
	log.Debug("copied via OSC52", slog.Int("bytes", len(text)))
	return nil
}

func osc52Supported() bool {
	term := os.Getenv("TERM")
	return term != "" && !strings.EqualFold(term, "dumb")
}
