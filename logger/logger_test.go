package logger_test

import (
	"bytes"
	"io"
	"log"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/switchback/logger"
)

var (
	logLevelRegexp = regexp.MustCompile(`^\[[A-Z]+\]`)
	fpRegexp       = regexp.MustCompile(`logger/logger_test\.go:\d+`)
	msgRegexp      = regexp.MustCompile(`'(.*)'`)
)

func newTestLogger(w io.Writer) *log.Logger {
	return log.New(w, "", 0)
}

func TestNewLogLevel(t *testing.T) {
	for _, tc := range []struct {
		input    string
		expected logger.LogLevel
	}{
		{"DEBUG", logger.LogLevelDebug},
		{"INFO", logger.LogLevelInfo},
		{"WARN", logger.LogLevelWarn},
		{"ERROR", logger.LogLevelError},
		{"FATAL", logger.LogLevelFatal},
		{"info", logger.LogLevelUnk},
		{"", logger.LogLevelUnk},
	} {
		t.Run(tc.input, func(t *testing.T) {
			require.Equal(t, tc.expected, logger.NewLogLevel(tc.input))
		})
	}
}

func TestSwitchbackLoggerLevels(t *testing.T) {
	// Arrange
	b := new(bytes.Buffer)
	l := logger.NewLogger(logger.WithLogger(newTestLogger(b)), logger.WithLevel(logger.LogLevelWarn))

	// Act
	l.Debug("can't see me", nil)
	l.Info("can't see me", nil)

	// Assert
	require.Zero(t, b.Len())

	// Act
	l.Warn("trouble brewing", nil)

	// Assert
	line, err := b.ReadString('\n')
	require.Nil(t, err)
	require.Regexp(t, logLevelRegexp, line)
	require.Regexp(t, fpRegexp, line)

	matches := msgRegexp.FindStringSubmatch(line)
	require.Len(t, matches, 2)
	require.Equal(t, "trouble brewing", matches[1])

	// Act
	l.Error("it broke", &logger.LogContext{Data: map[string]any{"attempt": 1}})

	// Assert
	line, err = b.ReadString('\n')
	require.Nil(t, err)
	require.Contains(t, line, "it broke")
	require.Contains(t, line, "log_context:")
	require.Contains(t, line, `attempt`)
}

func TestSwitchbackLoggerCallerOverride(t *testing.T) {
	// Arrange
	b := new(bytes.Buffer)
	l := logger.NewLogger(logger.WithLogger(newTestLogger(b)))

	// Act
	l.Info("spawned", &logger.LogContext{Caller: "worker/worker.go:88"})

	// Assert
	line, err := b.ReadString('\n')
	require.Nil(t, err)
	require.Contains(t, line, "worker/worker.go:88")
	require.NotRegexp(t, fpRegexp, line)
}

func TestSwitchbackLoggerAddSkip(t *testing.T) {
	// Arrange
	b := new(bytes.Buffer)
	l := logger.NewLogger(logger.WithLogger(newTestLogger(b)))
	sl, ok := l.(logger.SkipLogger)
	require.True(t, ok)

	// Act
	helper := func(l logger.SkipLogger, msg string) {
		l.AddSkip(l.Skip() + 1).Info(msg, nil)
	}
	helper(sl, "from the helper's caller")

	// Assert
	line, err := b.ReadString('\n')
	require.Nil(t, err)
	require.Regexp(t, fpRegexp, line)
}

func TestCurrentCaller(t *testing.T) {
	// Act
	caller := func() string { return logger.CurrentCaller() }()

	// Assert
	require.Regexp(t, fpRegexp, caller)
}

func TestNewSentryLogger(t *testing.T) {
	// Arrange
	t.Setenv("SENTRY_DSN", "")

	b := new(bytes.Buffer)
	l := logger.NewLogger(logger.WithLogger(newTestLogger(b)))
	sl, ok := l.(*logger.SwitchbackLogger)
	require.True(t, ok)

	// Act
	got := logger.NewSentryLogger(sl, "not-a-dsn")

	// Assert
	require.Same(t, sl, got)
	require.Contains(t, b.String(), "unable to init Sentry")

	// Act
	b.Reset()
	got = logger.NewSentryLogger(sl, "")

	// Assert
	require.IsType(t, &logger.SentryLogger{}, got)
	require.Equal(t, sl.LogLevel(), got.LogLevel())
}
