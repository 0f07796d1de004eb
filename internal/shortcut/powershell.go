package shortcut

import (
	"fmt"
	"strings"
)

// powershellScript builds the WScript.Shell one-liner used when in-process
// COM automation is unavailable.
func powershellScript(link Link) string {
	return fmt.Sprintf(
		"$s=(New-Object -COM WScript.Shell).CreateShortcut(%s);$s.TargetPath=%s;$s.WorkingDirectory=%s;$s.IconLocation=%s;$s.Save()",
		psQuote(link.Path), psQuote(link.Target), psQuote(link.WorkingDir), psQuote(link.Icon+",0"),
	)
}

// psQuote wraps s in a PowerShell single-quoted literal
func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
