package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	buf.Reset()
	return out
}

func TestPgxLogger_HidesStatementsAboveTrace(t *testing.T) {
	prev := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	var buf bytes.Buffer
	l := newPgxLogger(zerolog.New(&buf).Level(zerolog.TraceLevel))

	l.Log(context.Background(), tracelog.LogLevelInfo, "Query", map[string]any{
		"sql":  "SELECT email FROM users",
		"args": []any{"x"},
		"time": 3 * time.Millisecond,
	})
	line := decodeLine(t, &buf)
	assert.Equal(t, "pgx", line["component"])
	assert.NotContains(t, line, "sql")
	assert.NotContains(t, line, "args")
	assert.Contains(t, line, "took")

	l.Log(context.Background(), tracelog.LogLevelTrace, "Query", map[string]any{"sql": "SELECT 1"})
	line = decodeLine(t, &buf)
	assert.Equal(t, "SELECT 1", line["sql"])
}

func TestPgxLogger_ErrorsAndDisabledLevels(t *testing.T) {
	var buf bytes.Buffer
	l := newPgxLogger(zerolog.New(&buf).Level(zerolog.WarnLevel))

	l.Log(context.Background(), tracelog.LogLevelDebug, "noise", nil)
	assert.Zero(t, buf.Len())

	l.Log(context.Background(), tracelog.LogLevelNone, "nothing", nil)
	assert.Zero(t, buf.Len())

	l.Log(context.Background(), tracelog.LogLevelError, "Query", map[string]any{"err": errors.New("boom")})
	line := decodeLine(t, &buf)
	assert.Equal(t, "boom", line["error"])
	assert.Equal(t, "error", line["level"])
}
