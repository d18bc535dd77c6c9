package main

import (
	"os"
	"strings"

	"kanban-cli/internal/cli"
	"kanban-cli/internal/model"
)

// lookupCommand maps a bare id to the command that shows it.
func lookupCommand(s string) []string {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, model.ItemPrefix) && len(s) > len(model.ItemPrefix):
		return []string{"items", "show"}
	case strings.HasPrefix(s, model.ContainerPrefix) && len(s) > len(model.ContainerPrefix):
		return []string{"containers", "show"}
	}
	return nil
}

// rewriteDirectLookupArgs turns `kanban <item-id>` into `kanban items show <item-id>` (and
// likewise for container ids). Cobra treats the first positional token as a subcommand, so
// argv is rewritten before parsing; persistent flags may come first.
func rewriteDirectLookupArgs(argv []string) []string {
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--dir":          true,
		"--backend":      true,
		"--format":       true,
		"--metrics-addr": true,
	}

	insert := func(i int, sub []string) []string {
		out := make([]string, 0, len(argv)+len(sub))
		out = append(out, argv[:i]...)
		out = append(out, sub...)
		return append(out, argv[i:]...)
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			if i+1 < len(argv) {
				if sub := lookupCommand(argv[i+1]); sub != nil {
					return insert(i+1, sub)
				}
			}
			return argv
		}
		if strings.HasPrefix(a, "-") {
			if !strings.Contains(a, "=") && valueFlags[a] {
				i++
			}
			continue
		}

		// First positional token.
		if sub := lookupCommand(a); sub != nil {
			return insert(i, sub)
		}
		return argv
	}
	return argv
}

func main() {
	os.Args = rewriteDirectLookupArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
