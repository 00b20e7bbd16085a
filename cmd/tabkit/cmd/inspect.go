package cmd

import (
	"strconv"

	"tabkit/internal/cli/output"
	"tabkit/internal/tabs"

	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect FILE",
	Short: "List the tab groups of a document and their state",
	Long: `Discover every tab group in an HTML document and print its triggers,
panels and the state derived from the markup: which tab is active, the
aria-selected and tabindex values, and which panel is visible.

Examples:
  tabkit inspect page.html
  tabkit inspect -o json page.html
  curl -s https://example.com/docs | tabkit inspect -`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	out, err := newOutput(cmd)
	if err != nil {
		return err
	}

	doc, err := loadDocument(cmd, args[0])
	if err != nil {
		return err
	}
	groups, err := initGroups(doc)
	if err != nil {
		return err
	}

	if len(groups) == 0 {
		out.Warn("No tab groups found in " + args[0])
	}
	return out.Write(newReport(args[0], doc.Title(), groups))
}

// report is the result of inspecting a document.
type report struct {
	File   string          `json:"file" yaml:"file"`
	Title  string          `json:"title,omitempty" yaml:"title,omitempty"`
	Groups []tabs.Snapshot `json:"groups" yaml:"groups"`
}

func newReport(file, title string, groups []*tabs.Group) report {
	r := report{File: file, Title: title, Groups: make([]tabs.Snapshot, 0, len(groups))}
	for _, g := range groups {
		r.Groups = append(r.Groups, g.Snapshot())
	}
	return r
}

// Names implements output.Named.
func (r report) Names() []string {
	names := make([]string, len(r.Groups))
	for i, g := range r.Groups {
		names[i] = g.Name
	}
	return names
}

// TableData implements output.Tabular with one row per trigger/panel pair.
func (r report) TableData() *output.Table {
	t := output.NewTable("group", "index", "tab", "selected", "tabindex", "panel", "visible")
	for _, g := range r.Groups {
		rows := max(len(g.Triggers), len(g.Panels))
		if rows == 0 {
			t.AddRow(g.Name, "-", "(empty)")
			continue
		}
		for i := range rows {
			row := []string{g.Name, strconv.Itoa(i), "", "", "", "", ""}
			if i < len(g.Triggers) {
				tr := g.Triggers[i]
				row[2] = tr.Label
				row[3] = mark(tr.Selected)
				row[4] = strconv.Itoa(tr.TabIndex)
			}
			if i < len(g.Panels) {
				p := g.Panels[i]
				row[5] = p.Summary
				row[6] = mark(p.Visible)
			}
			t.AddRow(row...)
		}
	}
	return t
}

func mark(b bool) string {
	if b {
		return "✓"
	}
	return ""
}
