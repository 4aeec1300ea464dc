package output

import (
	"strings"

	"github.com/pterm/pterm"

	"github.com/arthur-debert/getpkg/pkg/manifest"
)

// VersionTable renders version/channel pairs as an aligned table with
// a header row. Rows preserve the given order.
func VersionTable(versions []manifest.VersionAndChannel) (string, error) {
	data := pterm.TableData{{"Version", "Channel"}}
	for _, v := range versions {
		data = append(data, []string{v.Version, v.Channel})
	}

	rendered, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return "", err
	}
	return strings.TrimRight(rendered, "\n"), nil
}

// RenderError formats an error for the CLI's stderr
func RenderError(err error) string {
	return ErrorStyle.Render("Error:") + " " + err.Error()
}
