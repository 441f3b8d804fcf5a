package caddy

import (
	"fmt"
	"strings"

	"github.com/firefly-engineering/portman/internal/registry"
)

// Render generates the Caddyfile fragment for the projects. The fragment
// serves the gallery at localhost, proxies {name}.localhost to each project,
// and routes each linked port to its project by proxy or redirect.
func Render(projects []registry.NamedProject, galleryDir string, redirectLinked bool) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "localhost {\n\tfile_server {\n\t\troot %q\n\t}\n}\n\n", galleryDir)

	blocks := make([]string, 0, len(projects))
	for _, p := range projects {
		blocks = append(blocks, siteBlock(p.Name+".localhost", fmt.Sprintf("reverse_proxy localhost:%d", p.Port)))
		if p.LinkedPort == 0 {
			continue
		}
		action := fmt.Sprintf("reverse_proxy localhost:%d", p.Port)
		if redirectLinked {
			action = fmt.Sprintf("redir http://localhost:%d", p.Port)
		}
		blocks = append(blocks, siteBlock(fmt.Sprintf("http://localhost:%d", p.LinkedPort), action))
	}
	sb.WriteString(strings.Join(blocks, "\n"))

	return sb.String()
}

func siteBlock(address, directive string) string {
	return fmt.Sprintf("%s {\n\t%s\n}\n", address, directive)
}

// ImportStatement returns the root Caddyfile line that includes the fragment.
func ImportStatement(fragmentPath string) string {
	return fmt.Sprintf("import %q\n", fragmentPath)
}

// EnsureImport adds the fragment import to the top of the root Caddyfile.
// It reports false when a line of the file already imports the fragment.
func EnsureImport(existing, fragmentPath string) (string, bool) {
	statement := ImportStatement(fragmentPath)
	want := strings.TrimSpace(statement)
	for _, line := range strings.Split(existing, "\n") {
		if strings.TrimSpace(line) == want {
			return existing, false
		}
	}
	return statement + existing, true
}
