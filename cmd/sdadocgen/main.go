// Command sdadocgen renders the tool catalogue as Markdown, for keeping
// client-facing docs in sync with the registered schemas.
package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/sudandigitalarchive/sda-mcp/internal/bridge"
)

func main() {
	defs := bridge.Definitions()

	fmt.Fprintln(os.Stdout, "# Archive MCP Tools (Generated)")
	fmt.Fprintln(os.Stdout)
	fmt.Fprintln(os.Stdout, "This file is generated from `internal/bridge/tools.go`.")
	fmt.Fprintln(os.Stdout)

	for _, d := range defs {
		fmt.Fprintf(os.Stdout, "- `%s`\n", d.Name)
		if d.Description != "" {
			fmt.Fprintf(os.Stdout, "  - Description: %s\n", d.Description)
		}

		requiredSet := make(map[string]bool, len(d.InputSchema.Required))
		for _, r := range d.InputSchema.Required {
			requiredSet[r] = true
		}

		keys := make([]string, 0, len(d.InputSchema.Properties))
		for k := range d.InputSchema.Properties {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		if len(keys) > 0 {
			fmt.Fprintln(os.Stdout, "  - Input:")
			for _, k := range keys {
				req := "optional"
				if requiredSet[k] {
					req = "required"
				}
				desc := ""
				if prop, ok := d.InputSchema.Properties[k].(map[string]any); ok {
					if s, ok := prop["description"].(string); ok {
						desc = ": " + s
					}
				}
				fmt.Fprintf(os.Stdout, "    - `%s` (%s)%s\n", k, req, desc)
			}
		}
		fmt.Fprintln(os.Stdout)
	}
}
