// Package logging configures the process-wide slog default.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/lmittmann/tint"
)

var once sync.Once

// Setup reads LOG_LEVEL and installs the default logger once. Debug level
// gets colored tint output with trimmed source paths, everything else JSON on
// stderr.
func Setup() {
	once.Do(func() {
		level := slog.LevelInfo
		if raw := os.Getenv("LOG_LEVEL"); raw != "" {
			if err := level.UnmarshalText([]byte(raw)); err != nil {
				fmt.Fprintf(os.Stderr, "invalid LOG_LEVEL %q, using info\n", raw)
				level = slog.LevelInfo
			}
		}
		slog.SetDefault(New(os.Stderr, level))
	})
}

// New builds the logger Setup installs, writing to w.
func New(w io.Writer, level slog.Level) *slog.Logger {
	if level > slog.LevelDebug {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	}

	modulePrefix := getModulePrefix()
	replacer := func(_ []string, a slog.Attr) slog.Attr {
		if a.Key == slog.SourceKey {
			if source, ok := a.Value.Any().(*slog.Source); ok {
				source.File = cleanSourcePath(source.File, modulePrefix)
			}
		}
		if err, ok := a.Value.Any().(error); ok {
			aErr := tint.Err(err)
			aErr.Key = a.Key
			return aErr
		}
		return a
	}

	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:       level,
		TimeFormat:  time.TimeOnly,
		ReplaceAttr: replacer,
		AddSource:   true,
	}))
}

// getModulePrefix returns "/<last module path element>/", e.g. "/valu-store/".
func getModulePrefix() string {
	info, ok := debug.ReadBuildInfo()
	if !ok || info.Main.Path == "" {
		if wd, err := os.Getwd(); err == nil {
			return "/" + filepath.Base(wd) + "/"
		}
		return "/valu-store/"
	}

	parts := strings.Split(info.Main.Path, "/")
	return "/" + parts[len(parts)-1] + "/"
}

// cleanSourcePath keeps the part of filePath after the module directory.
func cleanSourcePath(filePath, modulePrefix string) string {
	if _, rest, found := strings.Cut(filePath, modulePrefix); found {
		return rest
	}

	if idx := strings.LastIndex(filePath, "/go/src/"); idx != -1 {
		return filePath[idx+len("/go/src/"):]
	}
	if idx := strings.LastIndex(filePath, "/src/"); idx != -1 {
		return filePath[idx+len("/src/"):]
	}
	return filePath
}
