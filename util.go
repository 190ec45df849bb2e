package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"upsidedown/internal/logging"
)

// dirExists returns true if the given path exists and is a directory.
func dirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false
		}
		logWarn("Error checking directory existence: %v", err)
		return false
	}
	return info.IsDir()
}

// formatUptime returns a human-readable string for a duration.
func formatUptime(d time.Duration) string {
	seconds := int(d.Seconds()) % 60
	minutes := int(d.Minutes()) % 60
	hours := int(d.Hours())
	switch {
	case hours > 0:
		return fmt.Sprintf("%d hour%s, %d minute%s, %d second%s",
			hours, plural(hours),
			minutes, plural(minutes),
			seconds, plural(seconds))
	case minutes > 0:
		return fmt.Sprintf("%d minute%s, %d second%s",
			minutes, plural(minutes),
			seconds, plural(seconds))
	default:
		return fmt.Sprintf("%d second%s", seconds, plural(seconds))
	}
}

// plural returns "s" if n != 1, otherwise "".
func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func logInfo(format string, v ...any)  { logging.Info(format, v...) }
func logWarn(format string, v ...any)  { logging.Warn(format, v...) }
func logFatal(format string, v ...any) { logging.Fatal(format, v...) }

func logInfoCtx(ctx context.Context, format string, v ...any) { logging.InfoCtx(ctx, format, v...) }
func logWarnCtx(ctx context.Context, format string, v ...any) { logging.WarnCtx(ctx, format, v...) }
