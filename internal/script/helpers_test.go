package script

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/scriptkit/internal/logging"
)

func testLogger(t *testing.T) (*slog.Logger, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	logger, cleanup, err := logging.Setup(logging.Config{Level: "DEBUG"}, buf)
	require.NoError(t, err)
	t.Cleanup(cleanup)
	return logger, buf
}
