package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yukin371/lspenc/internal/lsp"
)

func newNegotiateCmd(a *app) *cobra.Command {
	var (
		supported []string
		strict    bool
	)

	cmd := &cobra.Command{
		Use:   "negotiate [file|-]",
		Short: "Pick the position encoding for an initialize request",
		Long: `Read an initialize request, or its params, as JSON and print the
InitializeResult capabilities a server would answer with.

The client's capabilities.general.positionEncodings are walked in order;
the first kind the server supports wins, and utf-16 is used otherwise.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := a.cfg.Encoding
			if cmd.Flags().Changed("supported") {
				enc.Supported = supported
			}
			if cmd.Flags().Changed("strict") {
				enc.Strict = strict
			}

			n, err := enc.Negotiator(a.log)
			if err != nil {
				return err
			}

			raw, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			k, err := n.NegotiateParams(raw)
			if err != nil {
				return err
			}
			a.log.Info("Negotiated position encoding: %s", k)

			result := lsp.InitializeResult{Capabilities: lsp.ServerCapabilitiesFor(k)}
			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal result: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&supported, "supported", nil, "encodings the server accepts (overrides encoding.supported)")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail on unknown offered encodings (overrides encoding.strict)")
	return cmd
}
