// Copyright 2026 The go-strops Authors. SPDX-License-Identifier: Apache-2.0

// Command stropscaps prints the library version, the hardware tiers detected
// on this machine, and the per-slot effect of forcing a capability set.
//
// Usage:
//
//	stropscaps                 # detected tiers
//	stropscaps --force serial  # what a forced build would select
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/strops/go-strops/strops"
)

func main() {
	var force string

	root := &cobra.Command{
		Use:   "stropscaps",
		Short: "Show detected hardware tiers for go-strops",
		RunE: func(cmd *cobra.Command, args []string) error {
			caps := strops.Detect()
			if force != "" {
				parsed, err := strops.ParseCapabilities(force)
				if err != nil {
					return err
				}
				caps = parsed
			}
			strops.Update(caps)

			fmt.Printf("go-strops %d.%d.%d\n",
				strops.VersionMajor(), strops.VersionMinor(), strops.VersionPatch())
			fmt.Printf("capabilities: %s\n\n", strops.Capabilities())
			fmt.Print(strops.Describe(strops.Capabilities()))
			return nil
		},
	}
	root.Flags().StringVar(&force, "force", "", "comma-separated tier list to force instead of detecting")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
