package version

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "1.2", Normalize("1.2.0"))
	assert.Equal(t, "1", Normalize("1.0.0"))
	assert.Equal(t, "1.2.3", Normalize("1.2.3"))
	assert.Equal(t, "2.0.1", Normalize("2.0.1"))
	assert.Equal(t, "0", Normalize("0"))
}

func capture(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	defer func() { os.Stdout = old }()

	fn()
	require.NoError(t, w.Close())
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

func TestPrint(t *testing.T) {
	out := capture(t, Print)
	assert.Contains(t, out, "vendorwatch")
}

func TestPrintFullIncludesBuildDetails(t *testing.T) {
	out := capture(t, PrintFull)
	assert.Contains(t, out, "vendorwatch")
	assert.Contains(t, out, "revision")
	assert.Contains(t, out, "build date")
	assert.Contains(t, out, "go version")
}
