package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/mangohow/toolbox/toolbox"
	"github.com/spf13/cobra"
)

var errToolFailed = errors.New("tool failed")

var runCmd = &cobra.Command{
	Use:   "run <tool> [action] <input>",
	Short: "Run one tool and print the result",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		cmd.SilenceErrors = true
		return runTool(cmd.OutOrStdout(), cmd.ErrOrStderr(), args, cfg.Tools.MaxInputBytes)
	},
}

// runTool 与JSON接口行为一致, 错误信息写到errOut
func runTool(out, errOut io.Writer, args []string, maxInputLength int) error {
	req := toolbox.Request{Tool: args[0], Input: args[len(args)-1]}
	if len(args) == 3 {
		req.Action = args[1]
	}

	d := toolbox.New(toolbox.WithMaxInputLength(maxInputLength), toolbox.WithHexFallback())
	res, err := d.Dispatch(req)
	if err != nil {
		fmt.Fprintln(errOut, toolbox.APIMessage(err))
		return errToolFailed
	}

	if res.IsImage() {
		fmt.Fprintln(out, res.DataURI)
	} else {
		fmt.Fprintln(out, res.Text)
	}

	return nil
}
