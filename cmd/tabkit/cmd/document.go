package cmd

import (
	"bytes"
	"errors"
	"io"
	"os"

	clierrors "tabkit/internal/cli/errors"
	"tabkit/internal/dom"
	"tabkit/internal/tabs"

	"github.com/spf13/cobra"
)

// stdinPath reads the document from standard input.
const stdinPath = "-"

// readSource reads the raw HTML of path, or of stdin for "-".
func readSource(cmd *cobra.Command, path string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if path == stdinPath {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, clierrors.DocumentUnreadable(path, err)
	}
	return data, nil
}

// loadDocument reads and parses the document at path.
func loadDocument(cmd *cobra.Command, path string) (*dom.Document, error) {
	data, err := readSource(cmd, path)
	if err != nil {
		return nil, err
	}
	doc, err := dom.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, clierrors.Wrap(err, clierrors.CodeParse, "Document is not valid HTML").
			WithDetails("File: " + path)
	}
	return doc, nil
}

// selectors returns the markup selectors from the loaded config.
func selectors() tabs.Selectors {
	return tabs.SelectorsFromConfig(cfg.Markup)
}

// initGroups builds the tab groups of doc with the configured selectors.
func initGroups(doc *dom.Document) ([]*tabs.Group, error) {
	groups, err := tabs.Init(doc,
		tabs.WithSelectors(selectors()),
		tabs.WithLogger(commandLogger()),
	)
	if err != nil {
		return nil, selectorError(err)
	}
	return groups, nil
}

// selectorError converts invalid selector failures into a Rich error.
func selectorError(err error) error {
	if errors.Is(err, dom.ErrInvalidSelector) {
		return clierrors.InvalidSelector(err)
	}
	return err
}
