// internal/logger/pretty.go
package logger

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Colors for terminal output
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorPurple = "\033[35m"
	ColorCyan   = "\033[36m"
	ColorBold   = "\033[1m"
)

func prettyEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		MessageKey:     "msg",
		LevelKey:       "level",
		TimeKey:        "time",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    customLevelEncoder,
		EncodeTime:     customTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
}

// customLevelEncoder formats log levels with colors
func customLevelEncoder(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	switch level {
	case zapcore.DebugLevel:
		enc.AppendString(ColorCyan + "[DEBUG]" + ColorReset)
	case zapcore.InfoLevel:
		enc.AppendString(ColorGreen + "[INFO]" + ColorReset)
	case zapcore.WarnLevel:
		enc.AppendString(ColorYellow + "[WARN]" + ColorReset)
	case zapcore.ErrorLevel:
		enc.AppendString(ColorRed + "[ERROR]" + ColorReset)
	case zapcore.FatalLevel:
		enc.AppendString(ColorRed + ColorBold + "[FATAL]" + ColorReset)
	default:
		enc.AppendString("[" + level.CapitalString() + "]")
	}
}

func customTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("15:04:05"))
}

func levelFor(debug bool) zapcore.Level {
	if debug {
		return zap.DebugLevel
	}
	return zap.InfoLevel
}

// CreatePrettyLogger creates a console logger that prints FormatMessage
// one-liners instead of structured fields.
func CreatePrettyLogger(debug bool) (*zap.Logger, error) {
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(prettyEncoderConfig()),
		zapcore.Lock(os.Stdout),
		levelFor(debug),
	)
	return zap.New(&FieldFilterCore{core: core}), nil
}

// CreateTUILoggerWithBuffer creates a logger that only writes JSON into the
// buffer so nothing is printed over the alternate screen.
func CreateTUILoggerWithBuffer(debug bool, buffer *LogBuffer) (*zap.Logger, error) {
	if buffer == nil {
		return nil, fmt.Errorf("buffer is required for TUI logger")
	}

	encoderConfig := zapcore.EncoderConfig{
		MessageKey:     "msg",
		LevelKey:       "level",
		TimeKey:        "time",
		NameKey:        "logger",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), buffer, levelFor(debug))
	return zap.New(core), nil
}

// FormatMessage turns well-known launchpad log lines into short one-liners.
// Unknown messages are returned unchanged.
func FormatMessage(msg string, fields ...zap.Field) string {
	switch msg {
	case "Launch created":
		name := extractField(fields, "sale_name")
		return fmt.Sprintf("%s🚀 Presale %q created (%s → %s)%s", ColorGreen, name,
			extractField(fields, "start"), extractField(fields, "end"), ColorReset)

	case "Purchase recorded":
		return fmt.Sprintf("%s💰 Purchase of %s recorded: %s%s", ColorGreen,
			extractField(fields, "quantity"), shortenHash(extractField(fields, "tx_hash")), ColorReset)

	case "Token deployed":
		return fmt.Sprintf("%s🪙 Token %s deployed at %s%s", ColorPurple,
			extractField(fields, "symbol"), shortenAddress(extractField(fields, "token")), ColorReset)

	case "Approval confirmed":
		return fmt.Sprintf("%s✓ Allowance set to %s%s", ColorBlue, extractField(fields, "allowance"), ColorReset)

	case "Batch transfer confirmed":
		return fmt.Sprintf("%s📤 Sent to %s recipients: %s%s", ColorGreen,
			extractField(fields, "recipients"), shortenHash(extractField(fields, "tx_hash")), ColorReset)

	case "Record excluded":
		return fmt.Sprintf("%s⊘ Skipped %s/%s (%s)%s", ColorYellow,
			shortenAddress(extractField(fields, "creator")), extractField(fields, "launch_id"),
			extractField(fields, "reason"), ColorReset)

	case "Sale listed":
		return fmt.Sprintf("%s%-8s%s %s by %s  %s → %s", ColorCyan, extractField(fields, "status"), ColorReset,
			extractField(fields, "sale_name"), shortenAddress(extractField(fields, "creator")),
			extractField(fields, "start"), extractField(fields, "end"))

	case "Network switched":
		return fmt.Sprintf("%s🔗 Switched to %s%s", ColorBlue, extractField(fields, "network"), ColorReset)

	default:
		if err := extractField(fields, "error"); err != "" {
			return msg + ": " + err
		}
		return msg
	}
}

func extractField(fields []zap.Field, key string) string {
	for _, field := range fields {
		if field.Key != key {
			continue
		}
		switch field.Type {
		case zapcore.StringType:
			return field.String
		case zapcore.Int64Type, zapcore.Int32Type, zapcore.Uint64Type, zapcore.Uint32Type:
			return fmt.Sprintf("%d", field.Integer)
		case zapcore.BoolType:
			return fmt.Sprintf("%t", field.Integer == 1)
		case zapcore.ErrorType:
			if err, ok := field.Interface.(error); ok {
				return err.Error()
			}
		}
		if field.Interface != nil {
			return fmt.Sprintf("%v", field.Interface)
		}
		return ""
	}
	return ""
}

func shortenAddress(addr string) string {
	if len(addr) > 12 {
		return addr[:6] + "..." + addr[len(addr)-4:]
	}
	return addr
}

func shortenHash(hash string) string {
	if len(hash) > 18 {
		return hash[:10] + "..." + hash[len(hash)-6:]
	}
	return hash
}

// FieldFilterCore rewrites each entry through FormatMessage and drops the
// structured fields.
type FieldFilterCore struct {
	core   zapcore.Core
	fields []zapcore.Field
}

func (c *FieldFilterCore) Enabled(level zapcore.Level) bool {
	return c.core.Enabled(level)
}

func (c *FieldFilterCore) With(fields []zapcore.Field) zapcore.Core {
	merged := append(append([]zapcore.Field(nil), c.fields...), fields...)
	return &FieldFilterCore{core: c.core, fields: merged}
}

func (c *FieldFilterCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return checked.AddCore(entry, c)
	}
	return checked
}

func (c *FieldFilterCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	all := append(append([]zapcore.Field(nil), c.fields...), fields...)
	entry.Message = FormatMessage(entry.Message, all...)
	return c.core.Write(entry, nil)
}

func (c *FieldFilterCore) Sync() error {
	return c.core.Sync()
}
