package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/yukin371/lspenc/internal/lsp"
)

type kindInfo struct {
	Kind    lsp.PositionEncodingKind `json:"kind" yaml:"kind"`
	Default bool                     `json:"default" yaml:"default"`
}

func newKindsCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "kinds",
		Short: "List the known position encoding kinds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var infos []kindInfo
			for _, k := range lsp.PositionEncodingKinds() {
				infos = append(infos, kindInfo{Kind: k, Default: k == lsp.DefaultPositionEncoding()})
			}
			return writeKinds(cmd.OutOrStdout(), output, infos)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format: text, json or yaml")
	return cmd
}

func writeKinds(w io.Writer, format string, infos []kindInfo) error {
	switch format {
	case "text":
		for _, info := range infos {
			if info.Default {
				fmt.Fprintf(w, "%s (default)\n", info.Kind)
			} else {
				fmt.Fprintln(w, info.Kind)
			}
		}
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(infos); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func newParseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <tag>",
		Short: "Validate a position encoding wire tag",
		Long:  "Validate a position encoding wire tag. The match is exact: case and surrounding whitespace matter.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := lsp.ParsePositionEncodingKind(args[0])
			if err != nil {
				return err
			}
			a.log.Debug("Parsed %q as %s", args[0], k)
			fmt.Fprintln(cmd.OutOrStdout(), k)
			return nil
		},
	}
}

// readInput reads the named file, or the command's stdin for "" and "-".
func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	return data, nil
}

// kindValue adapts a PositionEncodingKind to a pflag.Value.
type kindValue struct {
	kind *lsp.PositionEncodingKind
}

func newKindValue(k *lsp.PositionEncodingKind, def lsp.PositionEncodingKind) *kindValue {
	*k = def
	return &kindValue{kind: k}
}

func (v *kindValue) String() string {
	if v.kind == nil {
		return ""
	}
	return v.kind.Tag()
}

func (v *kindValue) Set(s string) error {
	return v.kind.UnmarshalText([]byte(s))
}

func (v *kindValue) Type() string {
	tags := make([]string, 0, 3)
	for _, k := range lsp.PositionEncodingKinds() {
		tags = append(tags, k.Tag())
	}
	return strings.Join(tags, "|")
}
