// incidentctl operates an incident desk kept in a local YAML or JSON file.
//
// Usage:
//
//	incidentctl list [--category=<label>]
//	incidentctl show <id>
//	incidentctl add --caller=<c> --category=<label> --priority=<label> --name=<n> --note=<n>
//	incidentctl dispatch <id> --action=<action> --note=<n> [--owner --hold-reason --resolution --cancellation]
//	incidentctl delete <id>
//	incidentctl import <src> | export <dst> | reset
//	incidentctl token --subject=<id> --role=<operator|supervisor>
package main

import (
	"fmt"
	"os"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
