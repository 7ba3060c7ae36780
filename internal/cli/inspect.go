package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Epixu/literal-t/internal/harness"
	"github.com/Epixu/literal-t/literal"
)

// InspectOptions holds flags for the inspect command.
type InspectOptions struct {
	*RootOptions
	Literal LiteralFlags
	File    string
}

// InspectResult describes one literal.
type InspectResult struct {
	harness.LiteralSummary
	Empty     bool            `json:"empty"`
	ID        string          `json:"id"`
	Canonical json.RawMessage `json:"canonical"`
}

// String renders the result for text output.
func (r InspectResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "kind:      %s\n", r.Kind)
	fmt.Fprintf(&b, "type:      %s\n", r.Type)
	fmt.Fprintf(&b, "capacity:  %d\n", r.Capacity)
	fmt.Fprintf(&b, "size:      %d\n", r.Size)
	fmt.Fprintf(&b, "empty:     %t\n", r.Empty)
	fmt.Fprintf(&b, "text:      %q\n", r.Text)
	fmt.Fprintf(&b, "canonical: %s\n", r.Canonical)
	fmt.Fprintf(&b, "id:        %s", r.ID)
	return b.String()
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InspectOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "inspect [text]",
		Short: "Show the capacity and identity of a literal",
		Long: `Build a literal from text and report its kind, type, capacity, size,
canonical form and content ID.

The canonical form and ID do not depend on capacity: the same content at
capacity 8 and capacity 64 has the same ID.

Examples:
  literal inspect "Hello, World"
  literal inspect --char char16 "Hello, World"
  literal inspect --capacity 64 abc
  literal inspect --type float32 5.5
  literal inspect --file greeting.txt --char rune`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, opts, args)
		},
	}

	addLiteralFlags(cmd, &opts.Literal)
	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "read the text from a file (UTF-8, or UTF-16 with a BOM)")

	return cmd
}

func runInspect(cmd *cobra.Command, opts *InspectOptions, args []string) error {
	out := opts.formatter(cmd)

	text := ""
	if !opts.Literal.Undefined {
		var err error
		if text, err = operand(args, 0, opts.File); err != nil {
			return out.Fail(ExitCommandError, CodeInput, err)
		}
	}
	l, err := opts.Literal.Build(text)
	if err != nil {
		return out.Fail(ExitCommandError, CodeInput, err)
	}

	result, err := inspect(l)
	if err != nil {
		return out.Fail(ExitFailure, CodeLiteral, err)
	}
	opts.logger().Debug("inspected literal", "kind", result.Kind, "capacity", result.Capacity, "id", result.ID)
	return out.Success(result)
}

func inspect(l literal.Literal) (InspectResult, error) {
	canonical, err := literal.Canonical(l)
	if err != nil {
		return InspectResult{}, err
	}
	id, err := literal.ID(l)
	if err != nil {
		return InspectResult{}, err
	}
	return InspectResult{
		LiteralSummary: harness.Summarize("", l),
		Empty:          l.Empty(),
		ID:             id,
		Canonical:      canonical,
	}, nil
}
