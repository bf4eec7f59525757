package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yukin371/lspenc/internal/lsp"
)

func newConvertCmd(a *app) *cobra.Command {
	var (
		from, to lsp.PositionEncodingKind
		pos      lsp.Position
	)

	cmd := &cobra.Command{
		Use:   "convert [file|-]",
		Short: "Convert a position between encodings",
		Long: `Convert a zero-based line/character position over the given text from
one position encoding to another and print it as line:character.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			converted, err := lsp.ConvertPosition(string(text), pos, from, to)
			if err != nil {
				return err
			}
			a.log.Debug("Converted %d:%d (%s) to %d:%d (%s)",
				pos.Line, pos.Character, from, converted.Line, converted.Character, to)

			fmt.Fprintf(cmd.OutOrStdout(), "%d:%d\n", converted.Line, converted.Character)
			return nil
		},
	}

	cmd.Flags().Var(newKindValue(&from, lsp.DefaultPositionEncoding()), "from", "encoding of the input position")
	cmd.Flags().Var(newKindValue(&to, lsp.UTF8), "to", "encoding of the output position")
	cmd.Flags().Uint32Var(&pos.Line, "line", 0, "zero-based line")
	cmd.Flags().Uint32Var(&pos.Character, "character", 0, "zero-based character offset")
	return cmd
}
