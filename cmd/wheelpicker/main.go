package main

import (
	"os"
	"strings"

	"wheelpicker/internal/cli"
	"wheelpicker/internal/region"
)

func isRegionCode(s string) bool {
	return region.ValidCode(strings.TrimSpace(s))
}

func rewriteDirectCodeLookupArgs(argv []string) []string {
	// Convenience: `wheelpicker 310115` works like `wheelpicker region lookup 310115`.
	//
	// Cobra treats the first non-flag token as a subcommand, so we rewrite argv before parsing.
	// Persistent flags may come first (e.g. `wheelpicker --state-dir ... 310115`), so we look
	// for the first positional token rather than argv[1].
	if len(argv) < 2 {
		return argv
	}

	// Unknown flags are skipped without consuming a value so a code is never swallowed.
	valueFlags := map[string]bool{
		"--config":    true,
		"--state-dir": true,
		"--dataset":   true,
		"--locale":    true,
		"--log-level": true,
		"--log-file":  true,
		"--format":    true,
	}
	boolFlags := map[string]bool{
		"--pretty": true,
	}

	rewrite := func(at int) []string {
		out := make([]string, 0, len(argv)+2)
		out = append(out, argv[:at]...)
		out = append(out, "region", "lookup")
		out = append(out, argv[at:]...)
		return out
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			if i+1 < len(argv) && isRegionCode(argv[i+1]) {
				return rewrite(i + 1)
			}
			return argv
		}

		if strings.HasPrefix(a, "-") {
			if strings.Contains(a, "=") || boolFlags[a] {
				continue
			}
			if valueFlags[a] {
				i++
			}
			continue
		}

		if isRegionCode(a) {
			return rewrite(i)
		}
		return argv
	}

	return argv
}

func main() {
	os.Args = rewriteDirectCodeLookupArgs(os.Args)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
