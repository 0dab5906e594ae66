package logbuf

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// captureCore tees zap output into a buffer Set. Tee it next to the app's
// real core (zapcore.NewTee) and the panel sees every line the app logs,
// with the logger name acting as the buffer tag.
type captureCore struct {
	zapcore.LevelEnabler
	enc zapcore.Encoder
	set *Set
}

// NewCaptureCore builds a zapcore.Core that forwards formatted entries to
// the given Set.
func NewCaptureCore(set *Set, enab zapcore.LevelEnabler) zapcore.Core {
	return &captureCore{
		LevelEnabler: enab,
		enc:          zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		set:          set,
	}
}

func (c *captureCore) With(fields []zapcore.Field) zapcore.Core {
	clone := &captureCore{LevelEnabler: c.LevelEnabler, enc: c.enc.Clone(), set: c.set}
	for _, f := range fields {
		f.AddTo(clone.enc)
	}
	return clone
}

func (c *captureCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *captureCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	buf, err := c.enc.EncodeEntry(ent, fields)
	if err != nil {
		return err
	}
	line := strings.TrimRight(buf.String(), "\n")
	buf.Free()
	c.set.Dispatch(line, ent.Message, ent.LoggerName)
	return nil
}

func (c *captureCore) Sync() error { return nil }
