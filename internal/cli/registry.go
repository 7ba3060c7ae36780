package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Epixu/literal-t/internal/registry"
	"github.com/Epixu/literal-t/internal/store"
)

// RegistryOptions holds flags shared by the registry subcommands.
type RegistryOptions struct {
	*RootOptions
	Database string
}

// AddResult reports the entries an add command registered.
type AddResult struct {
	Entries  []registry.Entry `json:"entries"`
	Inserted int              `json:"inserted"`
	Total    int              `json:"total"`
}

// String renders the result for text output.
func (r AddResult) String() string {
	var b strings.Builder
	for _, e := range r.Entries {
		fmt.Fprintf(&b, "%s  %s\n", e.ID, e.Key)
	}
	fmt.Fprintf(&b, "%d new, %d total", r.Inserted, r.Total)
	return b.String()
}

// EntryList is the output of the list command.
type EntryList []registry.Entry

// String renders the list for text output.
func (l EntryList) String() string {
	if len(l) == 0 {
		return "No entries."
	}
	var b strings.Builder
	for i, e := range l {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%4d  %s  %-18s %s", e.Seq, e.ID, e.Key, e.Content)
	}
	return b.String()
}

// BucketList is the output of the buckets command.
type BucketList []registry.Bucket

// String renders the list for text output.
func (l BucketList) String() string {
	if len(l) == 0 {
		return "No entries."
	}
	var b strings.Builder
	for i, bucket := range l {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%-18s %d", bucket.Key, bucket.Count)
	}
	return b.String()
}

// NewRegistryCommand creates the registry command and its subcommands.
func NewRegistryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RegistryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "registry",
		Short: "Manage a persistent registry of literals",
		Long: `Intern literals into a SQLite-backed registry.

Entries are keyed by type and capacity. Registering the same content at the
same capacity twice yields the same entry; the same content at a different
capacity yields a different entry with the same digest.

Examples:
  literal registry add --db ./literals.db abc
  literal registry add --db ./literals.db --capacity 64 abc
  literal registry list --db ./literals.db
  literal registry buckets --db ./literals.db`,
	}

	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkPersistentFlagRequired("db")

	cmd.AddCommand(newRegistryAddCommand(opts))
	cmd.AddCommand(newRegistryListCommand(opts))
	cmd.AddCommand(newRegistryBucketsCommand(opts))
	cmd.AddCommand(newRegistryGetCommand(opts))

	return cmd
}

func newRegistryAddCommand(opts *RegistryOptions) *cobra.Command {
	var lf LiteralFlags
	var maxEntries int

	cmd := &cobra.Command{
		Use:           "add <text>...",
		Short:         "Register one or more literals",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := opts.formatter(cmd)
			st, err := opts.open()
			if err != nil {
				return out.Fail(ExitCommandError, CodeStore, err)
			}
			defer opts.close(st)

			ropts := []registry.Option{registry.WithLogger(opts.logger())}
			if maxEntries > 0 {
				ropts = append(ropts, registry.WithMaxEntries(maxEntries))
			}
			reg := registry.New(ropts...)

			ctx := commandContext(cmd)
			if _, err := st.LoadRegistry(ctx, reg); err != nil {
				return out.Fail(ExitCommandError, CodeStore, err)
			}

			result := AddResult{}
			for _, text := range args {
				l, err := lf.Build(text)
				if err != nil {
					return out.Fail(ExitCommandError, CodeInput, err)
				}
				entry, _, err := reg.Register(l)
				if err != nil {
					return out.Fail(ExitFailure, CodeLiteral, err)
				}
				result.Entries = append(result.Entries, entry)
			}

			if result.Inserted, err = st.SaveRegistry(ctx, reg); err != nil {
				return out.Fail(ExitCommandError, CodeStore, err)
			}
			result.Total = reg.Len()
			return out.Success(result)
		},
	}

	addLiteralFlags(cmd, &lf)
	cmd.Flags().IntVar(&maxEntries, "max-entries", 0, "refuse to grow the registry past this many entries (0 for no limit)")

	return cmd
}

func newRegistryListCommand(opts *RegistryOptions) *cobra.Command {
	var digest string

	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List registered entries in registration order",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := opts.formatter(cmd)
			st, err := opts.open()
			if err != nil {
				return out.Fail(ExitCommandError, CodeStore, err)
			}
			defer opts.close(st)

			var entries []registry.Entry
			if digest != "" {
				entries, err = st.ReadEntriesByDigest(commandContext(cmd), digest)
			} else {
				entries, err = st.ReadEntries(commandContext(cmd))
			}
			if err != nil {
				return out.Fail(ExitCommandError, CodeStore, err)
			}
			return out.Success(EntryList(entries))
		},
	}

	cmd.Flags().StringVar(&digest, "digest", "", "only list entries with this content digest")
	return cmd
}

func newRegistryBucketsCommand(opts *RegistryOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "buckets",
		Short:         "Count entries per type and capacity",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := opts.formatter(cmd)
			st, err := opts.open()
			if err != nil {
				return out.Fail(ExitCommandError, CodeStore, err)
			}
			defer opts.close(st)

			buckets, err := st.ReadBuckets(commandContext(cmd))
			if err != nil {
				return out.Fail(ExitCommandError, CodeStore, err)
			}
			return out.Success(BucketList(buckets))
		},
	}
}

func newRegistryGetCommand(opts *RegistryOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "get <id>",
		Short:         "Rebuild a registered literal and inspect it",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := opts.formatter(cmd)
			st, err := opts.open()
			if err != nil {
				return out.Fail(ExitCommandError, CodeStore, err)
			}
			defer opts.close(st)

			entry, err := st.ReadEntry(commandContext(cmd), args[0])
			if errors.Is(err, sql.ErrNoRows) {
				return out.Fail(ExitFailure, CodeInput, fmt.Errorf("no entry %s", args[0]))
			}
			if err != nil {
				return out.Fail(ExitCommandError, CodeStore, err)
			}

			l, err := registry.Materialize(entry)
			if err != nil {
				return out.Fail(ExitFailure, CodeLiteral, err)
			}
			result, err := inspect(l)
			if err != nil {
				return out.Fail(ExitFailure, CodeLiteral, err)
			}
			result.Name = entry.ID
			return out.Success(result)
		},
	}
}

func (o *RegistryOptions) open() (*store.Store, error) {
	o.logger().Debug("opening database", "path", o.Database)
	return store.Open(o.Database)
}

func (o *RegistryOptions) close(st *store.Store) {
	if err := st.Close(); err != nil {
		o.logger().Error("error closing database", "error", err)
	}
}

// commandContext returns the command's context, or a background context
// when the command runs without one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

