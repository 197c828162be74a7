package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lilydev/bg3mm/internal/resolve"
)

// completeInstanceNames completes the first argument with instance names.
// Completion runs without the root pre-run, so it bootstraps on its own.
func completeInstanceNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	st, err := loadState(context.Background(), false)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var matches []string
	for _, name := range resolve.Names(st.Index.Read()) {
		if strings.HasPrefix(name, toComplete) {
			matches = append(matches, name)
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}
