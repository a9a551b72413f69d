// Command mws is a small operational CLI over the MWS client: service
// status checks, order listing and the report request/list/download
// round trip. Credentials come from the AWS default chain plus the
// MWS_SELLER_ID and MWS_AUTH_TOKEN environment variables.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gurre/mws/client"
	"github.com/gurre/mws/creds"
	"github.com/gurre/mws/sections"
)

var (
	flagRegion  string
	flagVerbose bool

	log = logrus.New()
)

func main() {
	root := &cobra.Command{
		Use:           "mws",
		Short:         "Amazon MWS seller API client",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flagRegion, "region", "US", "MWS region code (US, GB, DE, JP, ...)")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newStatusCmd())
	root.AddCommand(newOrdersCmd())
	root.AddCommand(newReportsCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newClient builds the pipeline client shared by all subcommands.
func newClient(ctx context.Context) (*client.Client, error) {
	if flagVerbose {
		log.SetLevel(logrus.DebugLevel)
	}
	credentials, err := creds.LoadDefault(ctx)
	if err != nil {
		return nil, err
	}
	return client.New(credentials, flagRegion, client.WithLogger(log))
}

// printParsed writes a response payload to stdout: JSON for XML
// payloads, raw text otherwise.
func printParsed(res interface {
	Parsed() any
	Text() string
}) error {
	switch parsed := res.Parsed().(type) {
	case interface{ JSON() ([]byte, error) }:
		out, err := parsed.JSON()
		if err != nil {
			return fmt.Errorf("failed to render response: %w", err)
		}
		fmt.Println(string(out))
	default:
		fmt.Println(res.Text())
	}
	return nil
}

// sectionByName finds one facade for the status command's filter.
func sectionByName(all []sections.Section, name string) sections.Section {
	for _, s := range all {
		if s.Descriptor().Name == name {
			return s
		}
	}
	return nil
}
