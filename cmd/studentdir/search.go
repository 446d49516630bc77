package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/kailas-cloud/studentdir/internal/domain/loadstate"
	"github.com/kailas-cloud/studentdir/internal/domain/search/highlight"
	"github.com/kailas-cloud/studentdir/internal/domain/search/result"
	searchuc "github.com/kailas-cloud/studentdir/internal/usecase/search"
)

// errLoadFailed is returned after the failure message has been printed.
var errLoadFailed = errors.New("directory load failed")

// printer renders matches for the terminal.
type printer struct {
	match lipgloss.Style
	name  lipgloss.Style
	muted lipgloss.Style
	plain bool
}

func newPrinter(plain bool) printer {
	return printer{
		match: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#101F38")).Background(lipgloss.Color("#FFC107")),
		name:  lipgloss.NewStyle().Bold(true),
		muted: lipgloss.NewStyle().Foreground(lipgloss.Color("#8a94a6")),
		plain: plain,
	}
}

func newSearchCmd(flags *globalFlags) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "search [term]",
		Short: "Load the directory once and print matching students",
		Long: `Fetch the student collection and print every record whose name, email
or major contains the term, ignoring case. The term is matched literally.
Without a term all students are printed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			term := ""
			if len(args) == 1 {
				term = args[0]
			}
			return runSearch(cmd, flags, term, plain)
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "Mark matches with [brackets] instead of colors")
	return cmd
}

func runSearch(cmd *cobra.Command, flags *globalFlags, term string, plain bool) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}

	level := cfg.Logging.Level
	if flags.logLevel == "" {
		level = "warn"
	}
	logger, err := newLogger(flags, level)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	a, err := buildApp(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	st := a.directory.Load(cmd.Context())
	if st.Kind() != loadstate.Loaded {
		msg := st.Message()
		if msg == "" {
			msg = "directory is " + st.Kind().String()
		}
		fmt.Fprintln(cmd.ErrOrStderr(), msg)
		return errLoadFailed
	}

	matches, err := searchuc.New(a.directory, 1).Search(cmd.Context(), term)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}

	newPrinter(plain).render(cmd.OutOrStdout(), matches)
	return nil
}

func (p printer) render(w io.Writer, matches []result.Match) {
	if len(matches) == 0 {
		fmt.Fprintln(w, "No students found.")
		return
	}
	for i := range matches {
		m := &matches[i]
		r := m.Record()

		var line strings.Builder
		line.WriteString(p.field(m.Name(), p.name))
		if r.Email() != "" {
			line.WriteString(" <" + p.field(m.Email(), lipgloss.NewStyle()) + ">")
		}
		if r.Major() != "" {
			line.WriteString(" " + p.style(p.muted, "·") + " " + p.field(m.Major(), lipgloss.NewStyle()))
		}
		fmt.Fprintln(w, line.String())
	}
	fmt.Fprintln(w, p.style(p.muted, fmt.Sprintf("%d student(s)", len(matches))))
}

func (p printer) field(segs []highlight.Segment, base lipgloss.Style) string {
	var b strings.Builder
	for _, s := range segs {
		switch {
		case s.Match && p.plain:
			b.WriteString("[" + s.Text + "]")
		case s.Match:
			b.WriteString(p.match.Render(s.Text))
		default:
			b.WriteString(p.style(base, s.Text))
		}
	}
	return b.String()
}

func (p printer) style(s lipgloss.Style, text string) string {
	if p.plain || text == "" {
		return text
	}
	return s.Render(text)
}
