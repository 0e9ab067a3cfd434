package logger

import (
	"encoding/json"
	"strings"
	"sync"

	"github.com/fatih/color"
	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

const prettyEncoderName = "foodcatalog-pretty"

//nolint:gochecknoglobals // zap encoders are registered process wide
var registerPrettyOnce sync.Once

// registerPrettyEncoder makes the pretty encoder available to zap.Config by name.
func registerPrettyEncoder() {
	registerPrettyOnce.Do(func() {
		_ = zap.RegisterEncoder(prettyEncoderName, func(cfg zapcore.EncoderConfig) (zapcore.Encoder, error) {
			return newPrettyEncoder(cfg), nil
		})
	})
}

// prettyEncoder writes a console line with a colored level, followed by the
// structured fields as indented JSON.
type prettyEncoder struct {
	zapcore.Encoder
	cfg  zapcore.EncoderConfig
	pool buffer.Pool
}

func newPrettyEncoder(cfg zapcore.EncoderConfig) zapcore.Encoder {
	return &prettyEncoder{
		Encoder: zapcore.NewConsoleEncoder(cfg),
		cfg:     cfg,
		pool:    buffer.NewPool(),
	}
}

func (e *prettyEncoder) Clone() zapcore.Encoder {
	return &prettyEncoder{Encoder: e.Encoder.Clone(), cfg: e.cfg, pool: e.pool}
}

func (e *prettyEncoder) EncodeEntry(entry zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	line, err := e.Encoder.EncodeEntry(entry, nil)
	if err != nil {
		return nil, err
	}
	head := colorizeLevel(strings.TrimRight(line.String(), "\n"), entry.Level)
	line.Free()

	buf := e.pool.Get()
	buf.AppendString(head)

	if extra := e.fieldsJSON(fields); extra != "" {
		buf.AppendString("\n")
		buf.AppendString(extra)
	}
	buf.AppendString("\n")

	return buf, nil
}

// fieldsJSON renders call-site fields as indented JSON, or "" when there are none.
// Fields added with With are already part of the console line.
func (e *prettyEncoder) fieldsJSON(fields []zapcore.Field) string {
	if len(fields) == 0 {
		return ""
	}

	enc := zapcore.NewMapObjectEncoder()
	for _, f := range fields {
		f.AddTo(enc)
	}

	pretty, err := json.MarshalIndent(enc.Fields, "", "  ")
	if err != nil {
		return ""
	}
	return string(pretty)
}

func colorizeLevel(line string, level zapcore.Level) string {
	var c *color.Color

	switch level {
	case zapcore.DebugLevel:
		c = color.New(color.FgCyan)
	case zapcore.InfoLevel:
		c = color.New(color.FgGreen)
	case zapcore.WarnLevel:
		c = color.New(color.FgYellow)
	case zapcore.ErrorLevel, zapcore.DPanicLevel, zapcore.PanicLevel, zapcore.FatalLevel:
		c = color.New(color.FgRed, color.Bold)
	default:
		return line
	}

	return strings.Replace(line, level.CapitalString(), c.Sprint(level.CapitalString()), 1)
}
