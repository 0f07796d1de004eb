//go:build !windows

package shortcut

import (
	"context"
	"fmt"
	"os"
	"strings"
)

const linkExt = ".desktop"

type desktopEntryLinker struct{}

// NewSystemLinker returns a linker writing freedesktop.org desktop entries
func NewSystemLinker() Linker {
	return desktopEntryLinker{}
}

func (desktopEntryLinker) CreateLink(_ context.Context, link Link) error {
	var b strings.Builder
	b.WriteString("[Desktop Entry]\n")
	b.WriteString("Type=Application\n")
	fmt.Fprintf(&b, "Name=%s\n", link.Name)
	fmt.Fprintf(&b, "Exec=%s\n", execQuote(link.Target))
	fmt.Fprintf(&b, "Path=%s\n", link.WorkingDir)
	fmt.Fprintf(&b, "Icon=%s\n", link.Icon)
	b.WriteString("Terminal=false\n")

	// desktop environments only trust executable entries
	return os.WriteFile(link.Path, []byte(b.String()), 0o755)
}

// execQuote quotes an Exec= argument using freedesktop quoting rules
func execQuote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "`", "\\`", "$", `\$`)
	return `"` + r.Replace(s) + `"`
}
