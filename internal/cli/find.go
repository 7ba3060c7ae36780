package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/Epixu/literal-t/internal/harness"
)

// searchOps are the operations the find command accepts.
var searchOps = []string{
	harness.OpFind, harness.OpRFind,
	harness.OpFindFirstOf, harness.OpFindLastOf,
	harness.OpFindFirstNotOf, harness.OpFindLastNotOf,
	harness.OpStartsWith, harness.OpEndsWith, harness.OpContains,
}

// FindOptions holds flags for the find command.
type FindOptions struct {
	*RootOptions
	Literal LiteralFlags
	Op      string
	Pos     int
}

// FindResult reports a search. Result is a position, "npos", or a bool for
// the affix operations.
type FindResult struct {
	Op     string `json:"op"`
	Needle string `json:"needle"`
	Result any    `json:"result"`
}

// String renders the result for text output.
func (r FindResult) String() string {
	return fmt.Sprintf("%s %q: %v", r.Op, r.Needle, r.Result)
}

// NewFindCommand creates the find command.
func NewFindCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FindOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "find <haystack> <needle>",
		Short: "Search a string literal",
		Long: fmt.Sprintf(`Search a string literal for a substring or a set of characters.

Operations: %v

Forward searches start at --pos (default 0); reverse searches start at
--pos (default the end). A position that is not found prints "npos".

Examples:
  literal find "Hello, World" o
  literal find --op rfind "Hello, World" o
  literal find --op find_first_not_of --pos 2 "  padded" " "
  literal find --op starts_with --char char16 "Hello" He`, searchOps),
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFind(cmd, opts, args)
		},
	}

	addLiteralFlags(cmd, &opts.Literal)
	cmd.Flags().StringVar(&opts.Op, "op", harness.OpFind, "search operation")
	cmd.Flags().IntVar(&opts.Pos, "pos", -1, "start position (-1 for the default)")

	return cmd
}

func runFind(cmd *cobra.Command, opts *FindOptions, args []string) error {
	out := opts.formatter(cmd)

	if !slices.Contains(searchOps, opts.Op) {
		return out.Fail(ExitCommandError, CodeInput, fmt.Errorf("unknown operation %q", opts.Op))
	}
	if opts.Literal.Type != "" || opts.Literal.Undefined {
		return out.Fail(ExitCommandError, CodeInput, fmt.Errorf("%s searches string literals only", opts.Op))
	}

	haystack, err := opts.Literal.Build(args[0])
	if err != nil {
		return out.Fail(ExitCommandError, CodeInput, err)
	}

	needle := args[1]
	step := harness.Step{Op: opts.Op, Target: "haystack", Text: &needle}
	if opts.Pos >= 0 {
		step.Pos = &opts.Pos
	}
	ev, _, err := harness.Eval(step, haystack, nil, harness.WithLogger(opts.logger()))
	if err != nil {
		return out.Fail(ExitFailure, CodeLiteral, err)
	}
	return out.Success(FindResult{Op: opts.Op, Needle: needle, Result: ev.Result})
}
