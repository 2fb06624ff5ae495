package diagnostic

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typegraph/internal/ctxlog"
)

func TestDiagnostics_Err(t *testing.T) {
	var d Diagnostics
	assert.NoError(t, d.Err())

	d.AddWarning(CodeUnsupportedType, "func types are described without components", "store.Handler", "")
	assert.NoError(t, d.Err())

	d.AddError(CodeUnknownEntry, "no entry named tree", "forest", "children[0]")
	err := d.Err()
	require.Error(t, err)
	assert.Equal(t, "[forest] children[0]: [unknown-entry] no entry named tree", err.Error())
}

func TestDiagnostics_MergeAndAll(t *testing.T) {
	var a, b Diagnostics
	a.AddInfo("info", "loaded", "", "")
	b.AddError(CodeFreeze, "boom", "x", "")
	b.AddWarning(CodeUnsupportedType, "chan", "", "")

	a.Merge(b)
	all := a.All()
	require.Len(t, all, 3)
	assert.Equal(t, SeverityError, all[0].Severity)
	assert.Equal(t, SeverityWarning, all[1].Severity)
	assert.Equal(t, SeverityInfo, all[2].Severity)
}

func TestDiagnostics_Log(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))
	ctx := ctxlog.WithLogger(context.Background(), logger)

	var d Diagnostics
	d.AddInfo(CodeExternalType, "described by name only", "time.Time", "")
	d.AddWarning(CodeUnsupportedType, "described as any", "store.Handler", "")
	d.AddError(CodeUnknownEntry, "no entry named tree", "forest", "children[0]")
	d.Log(ctx)

	out := buf.String()
	assert.Contains(t, out, `level=WARN msg="described as any" code=unsupported-type subject=store.Handler`)
	assert.Contains(t, out, `level=ERROR msg="no entry named tree" code=unknown-entry subject=forest field=children[0]`)
	assert.NotContains(t, out, "time.Time")
}

func TestSeverity_Level(t *testing.T) {
	assert.Equal(t, slog.LevelInfo, SeverityInfo.Level())
	assert.Equal(t, slog.LevelWarn, SeverityWarning.Level())
	assert.Equal(t, slog.LevelError, SeverityError.Level())
}

func TestSeverity_String(t *testing.T) {
	assert.Equal(t, "info", SeverityInfo.String())
	assert.Equal(t, "warning", SeverityWarning.String())
	assert.Equal(t, "error", SeverityError.String())
	assert.Equal(t, "unknown", Severity(42).String())
}
