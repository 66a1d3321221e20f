package stderr

import (
	"bufio"
	"io"
	"strings"

	"go.uber.org/zap"
)

const linesBuffer = 100

// pump logs every non-blank line of r and forwards it to lines without
// blocking. lines is closed when r is exhausted.
func pump(r io.Reader, log *zap.Logger, lines chan<- string) {
	defer close(lines)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		log.Warn("native stderr", zap.String("line", line))
		select {
		case lines <- line:
		default:
			// Channel full, drop message to avoid blocking
		}
	}
}
