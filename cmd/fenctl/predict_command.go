package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

// clipboardWrite is swapped out in tests.
var clipboardWrite = clipboard.WriteAll

func newPredictCommand(ctx *commandContext) *cobra.Command {
	var copyFEN bool
	cmd := &cobra.Command{
		Use:   "predict <image>",
		Short: "Recognize the position in a chessboard image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := ctx.controller(cmd.Context())
			if err != nil {
				return err
			}
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			pred, err := ctrl.Predict(cmd.Context(), filepath.Base(args[0]), f)
			if err != nil {
				return err
			}

			var out bytes.Buffer
			if err := json.Indent(&out, pred.Body, "", "  "); err != nil {
				out.Reset()
				out.Write(pred.Body)
			}
			fmt.Fprintln(cmd.OutOrStdout(), out.String())

			if copyFEN {
				fen := extractFEN(pred.Body)
				if fen == "" {
					return fmt.Errorf("prediction has no fen to copy")
				}
				if err := clipboardWrite(fen); err != nil {
					return fmt.Errorf("copy to clipboard: %w", err)
				}
				fmt.Fprintln(cmd.ErrOrStderr(), "FEN copied to clipboard")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&copyFEN, "copy", false, "Copy the predicted FEN to the clipboard")
	return cmd
}

func extractFEN(body []byte) string {
	var payload struct {
		FEN string `json:"fen"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.FEN
}
