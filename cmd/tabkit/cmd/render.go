package cmd

import (
	"os"

	clierrors "tabkit/internal/cli/errors"
	"tabkit/internal/dom"

	"github.com/spf13/cobra"
)

var (
	renderActivations activationList
	renderOut         string
)

var renderCmd = &cobra.Command{
	Use:   "render FILE",
	Short: "Write a document with chosen tabs active",
	Long: `Activate tabs headlessly and write the synchronized HTML.

Every group is first brought into a consistent state (one active trigger
with aria-selected="true" and tabindex="0", one visible panel). Each
--activate GROUP=INDEX then switches a group, where GROUP is the group's
id or its position in the document.

Examples:
  tabkit render page.html --activate install=1
  tabkit render page.html --activate 0=2,1=0 --out page.rendered.html`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().VarP(&renderActivations, "activate", "a", "activate tab INDEX of GROUP (repeatable)")
	renderCmd.Flags().StringVar(&renderOut, "out", "", "write to this file instead of stdout")
}

func runRender(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument(cmd, args[0])
	if err != nil {
		return err
	}
	groups, err := initGroups(doc)
	if err != nil {
		return err
	}
	if err := renderActivations.apply(groups); err != nil {
		return err
	}

	if renderOut == "" {
		if err := doc.Render(cmd.OutOrStdout()); err != nil {
			return err
		}
	} else if err := renderFile(doc, renderOut); err != nil {
		return err
	}
	commandLogger().Debug("document rendered", "groups", len(groups), "activations", len(renderActivations))
	return nil
}

// renderFile writes doc to path. Write and close failures are both reported.
func renderFile(doc *dom.Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return clierrors.Wrap(err, clierrors.CodeFileNotFound, "Output file could not be created").
			WithDetails("File: " + path)
	}
	err = doc.Render(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return clierrors.Wrap(err, clierrors.CodeFileNotFound, "Output file could not be written").
			WithDetails("File: " + path)
	}
	return nil
}
