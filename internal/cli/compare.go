package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Epixu/literal-t/internal/harness"
	"github.com/Epixu/literal-t/literal"
)

// CompareOptions holds flags for the compare command.
type CompareOptions struct {
	*RootOptions
	Literal LiteralFlags
}

// CompareResult reports how two literals relate.
type CompareResult struct {
	Equal     bool `json:"equal"`
	HashEqual bool `json:"hash_equal"`
	SameID    bool `json:"same_id"`
	Order     *int `json:"order,omitempty"` // lexicographic order, strings only
}

// String renders the result for text output.
func (r CompareResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "equal:      %t\n", r.Equal)
	fmt.Fprintf(&b, "hash_equal: %t\n", r.HashEqual)
	fmt.Fprintf(&b, "same_id:    %t", r.SameID)
	if r.Order != nil {
		fmt.Fprintf(&b, "\norder:      %d", *r.Order)
	}
	return b.String()
}

// NewCompareCommand creates the compare command.
func NewCompareCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompareOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compare <a> <b>",
		Short: "Compare two literals",
		Long: `Build two literals with the same flags and report whether they are
equal, hash equal and share a content ID. Strings also report their
lexicographic order (-1, 0 or 1).

The --capacity flag applies to <a> only, so capacity independence can be
checked directly:

  literal compare --capacity 64 abc abc`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, opts, args)
		},
	}

	addLiteralFlags(cmd, &opts.Literal)
	return cmd
}

func runCompare(cmd *cobra.Command, opts *CompareOptions, args []string) error {
	out := opts.formatter(cmd)

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

	result, err := compare(a, b, opts.logger())
	if err != nil {
		return out.Fail(ExitFailure, CodeLiteral, err)
	}
	return out.Success(result)
}

func compare(a, b literal.Literal, logger *slog.Logger) (CompareResult, error) {
	var result CompareResult
	for _, op := range []string{harness.OpEqual, harness.OpHashEqual} {
		ev, _, err := harness.Eval(harness.Step{Op: op, Target: "a", Other: "b"}, a, b, harness.WithLogger(logger))
		if err != nil {
			return result, err
		}
		eq, _ := ev.Result.(bool)
		if op == harness.OpEqual {
			result.Equal = eq
		} else {
			result.HashEqual = eq
		}
	}

	idA, err := literal.ID(a)
	if err != nil {
		return result, err
	}
	idB, err := literal.ID(b)
	if err != nil {
		return result, err
	}
	result.SameID = idA == idB

	if literal.IsString(a, b) {
		ev, _, err := harness.Eval(harness.Step{Op: harness.OpCompare, Target: "a", Other: "b"}, a, b, harness.WithLogger(logger))
		if err != nil {
			return result, err
		}
		if order, ok := ev.Result.(int); ok {
			result.Order = &order
		}
	}
	return result, nil
}
