// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.

// Package cmd implements the hoptrace command line interface.
package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hoptrace/hoptrace/log"
	"github.com/hoptrace/hoptrace/trace"
	"github.com/hoptrace/hoptrace/transport"
)

type args struct {
	destination     string
	port            int
	timeout         int
	maxHops         int
	nameserver      string
	receiver        string
	jsonOutput      bool
	reverseDns      bool
	sourcePublicIP  bool
	skipPrivateHops bool
	verbose         bool
}

var Args args

var rootCmd = &cobra.Command{
	Use:   "hoptrace",
	Short: "Discover the network hops between this host and a destination",
	RunE: func(cmd *cobra.Command, _ []string) error {
		log.SetVerbose(Args.verbose)

		params := trace.Params{
			Destination:           Args.destination,
			Port:                  Args.port,
			Timeout:               time.Duration(Args.timeout) * time.Millisecond,
			MaxHops:               Args.maxHops,
			Nameserver:            Args.nameserver,
			UseICMPReceiver:       Args.receiver == "icmp",
			ReverseDns:            Args.reverseDns,
			CollectSourcePublicIP: Args.sourcePublicIP,
			SkipPrivateHops:       Args.skipPrivateHops,
		}

		res, err := trace.NewTracer().Run(cmd.Context(), params)
		if err != nil {
			traceErr := trace.ClassifyError(err)
			return fmt.Errorf("%s: %s", traceErr.Code, traceErr.Message)
		}

		if Args.jsonOutput {
			jsonStr, err := json.MarshalIndent(res, "", "  ")
			if err != nil {
				return fmt.Errorf("JSON marshalling failed: %v", err)
			}
			fmt.Println(string(jsonStr))
			return nil
		}
		fmt.Print(res.Render())
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&Args.destination, "destination", "d", "", "Destination hostname or address")
	rootCmd.Flags().IntVarP(&Args.port, "port", "p", transport.DefaultPort, "Destination and receiver port")
	rootCmd.Flags().IntVarP(&Args.timeout, "timeout", "t", int(transport.DefaultTimeout.Milliseconds()), "Per-hop receive timeout (ms)")
	rootCmd.Flags().IntVarP(&Args.maxHops, "max-hops", "m", 30, "Maximum hops to probe (0 = unbounded)")
	rootCmd.Flags().StringVarP(&Args.nameserver, "nameserver", "n", "", "Resolve the destination against this nameserver instead of the OS resolver")
	rootCmd.Flags().StringVarP(&Args.receiver, "receiver", "r", "udp", "Response receiver (udp, icmp)")
	rootCmd.Flags().BoolVarP(&Args.jsonOutput, "json", "j", false, "Print the full result as JSON")
	rootCmd.Flags().BoolVarP(&Args.reverseDns, "reverse-dns", "", false, "Enrich hops with reverse DNS names")
	rootCmd.Flags().BoolVarP(&Args.sourcePublicIP, "public-ip", "", false, "Include this host's public IP in the result")
	rootCmd.Flags().BoolVarP(&Args.skipPrivateHops, "skip-private-hops", "", false, "Redact hops in private address ranges")
	rootCmd.Flags().BoolVarP(&Args.verbose, "verbose", "v", false, "verbose")

	if err := rootCmd.MarkFlagRequired("destination"); err != nil {
		panic(err)
	}
}
