package main

import (
	"fmt"
	"sort"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/gurre/mws/sections"
)

// newStatusCmd checks GetServiceStatus across sections, concurrently
// when more than one is queried.
func newStatusCmd() *cobra.Command {
	var only string
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check MWS service status per section",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c, err := newClient(ctx)
			if err != nil {
				return err
			}
			all := sections.All(c)
			if only != "" {
				s := sectionByName(all, only)
				if s == nil {
					return fmt.Errorf("unknown section %q", only)
				}
				all = []sections.Section{s}
			}

			var mu sync.Mutex
			results := map[string]string{}

			g, gctx := errgroup.WithContext(ctx)
			g.SetLimit(4)
			for _, s := range all {
				s := s
				g.Go(func() error {
					res, err := s.GetServiceStatus(gctx)
					status := "UNREACHABLE"
					if err == nil {
						if dict := res.ParsedDict(); dict != nil {
							status = dict.GetString("Status")
						}
					}
					mu.Lock()
					results[s.Descriptor().Name] = status
					mu.Unlock()
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			names := make([]string, 0, len(results))
			for name := range results {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Printf("%-32s %s\n", name, results[name])
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&only, "section", "", "check a single section by name")
	return cmd
}
