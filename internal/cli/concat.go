package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Epixu/literal-t/internal/harness"
)

// ConcatOptions holds flags for the concat command.
type ConcatOptions struct {
	*RootOptions
	Literal LiteralFlags
	Append  bool
}

// NewConcatCommand creates the concat command.
func NewConcatCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ConcatOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "concat <a> <b>",
		Short: "Concatenate two string literals",
		Long: `Concatenate two string literals of the same character kind.

By default the result gets the power of two ceiling of both capacities, so
nothing is lost. With --append, <b> is appended in place and the result
keeps the capacity of <a>, truncating what does not fit. --capacity applies
to <a> only.

Examples:
  literal concat abc def
  literal concat --append --capacity 4 abc def`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConcat(cmd, opts, args)
		},
	}

	addLiteralFlags(cmd, &opts.Literal)
	cmd.Flags().BoolVar(&opts.Append, "append", false, "append in place, keeping the capacity of <a>")

	return cmd
}

func runConcat(cmd *cobra.Command, opts *ConcatOptions, args []string) error {
	out := opts.formatter(cmd)

	if opts.Literal.Type != "" || opts.Literal.Undefined {
		return out.Fail(ExitCommandError, CodeInput, fmt.Errorf("concat joins string literals only"))
	}
	a, err := opts.Literal.Build(args[0])
	if err != nil {
		return out.Fail(ExitCommandError, CodeInput, err)
	}
	second := opts.Literal
	second.Capacity = 0
	b, err := second.Build(args[1])
	if err != nil {
		return out.Fail(ExitCommandError, CodeInput, err)
	}

	op := harness.OpConcat
	if opts.Append {
		op = harness.OpAppend
	}
	ev, produced, err := harness.Eval(harness.Step{Op: op, Target: "a", Other: "b"}, a, b, harness.WithLogger(opts.logger()))
	if err != nil {
		return out.Fail(ExitFailure, CodeLiteral, err)
	}
	if produced == nil {
		return out.Fail(ExitFailure, CodeLiteral, fmt.Errorf("%s failed: %s", op, ev.Error))
	}
	result, err := inspect(produced)
	if err != nil {
		return out.Fail(ExitFailure, CodeLiteral, err)
	}
	return out.Success(result)
}
