package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/ipoadmin/internal/ipo"
)

func (a *app) normalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize <file.json>",
		Short: "Normalize raw remote IPO records into canonical JSON",
		Long: "Reads raw records of the remote listing (a bare array, a single record\n" +
			"or a full listing envelope) and prints the canonical IPO records as JSON.\n" +
			"Use - to read standard input.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			raws, err := ipo.DecodeRecords(b)
			if err != nil {
				return fmt.Errorf("decode %s: %w", args[0], err)
			}
			return a.writeJSON(ipo.NormalizeBatch(raws))
		},
	}
}

func readInput(stdin io.Reader, name string) ([]byte, error) {
	if name == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return b, nil
	}

	b, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return b, nil
}
