//go:build !windows

package shortcut

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDesktopEntryLinker(t *testing.T) {
	dir := t.TempDir()
	link := Link{
		Path:       filepath.Join(dir, "Mangyomi.desktop"),
		Name:       "Mangyomi",
		Target:     "/opt/Mangyomi $1/mangyomi",
		WorkingDir: "/opt/Mangyomi $1",
		Icon:       "/opt/Mangyomi $1/mangyomi",
	}

	require.NoError(t, NewSystemLinker().CreateLink(context.Background(), link))

	data, err := os.ReadFile(link.Path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "[Desktop Entry]\n")
	assert.Contains(t, content, "Name=Mangyomi\n")
	assert.Contains(t, content, `Exec="/opt/Mangyomi \$1/mangyomi"`)
	assert.Contains(t, content, "Path=/opt/Mangyomi $1\n")

	info, err := os.Stat(link.Path)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode().Perm()&0o100)
}

func TestDesktopEntryLinkerMissingDirectory(t *testing.T) {
	link := Link{Path: filepath.Join(t.TempDir(), "missing", "Mangyomi.desktop"), Target: "/bin/true"}

	assert.Error(t, NewSystemLinker().CreateLink(context.Background(), link))
}
