package main

import (
	"io"
	"os"

	"github.com/fwojciec/placelist"
)

// Run executes the parse command.
func (c *ParseCmd) Run(deps *Dependencies) error {
	html, err := readInput(deps.Stdin, c.File)
	if err != nil {
		return err
	}

	list, err := deps.Scraper.Parse(html)
	if err != nil {
		return err
	}
	return writeJSON(deps.Stdout, list)
}

// Run executes the lines command.
func (c *LinesCmd) Run(deps *Dependencies) error {
	text, err := readInput(deps.Stdin, c.File)
	if err != nil {
		return err
	}

	list := deps.Scraper.Segmenter.Parse(placelist.SplitLines(text))
	return writeJSON(deps.Stdout, list)
}

// readInput reads path, or stdin when path is "-".
func readInput(stdin io.Reader, path string) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(stdin)
		return string(b), err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", placelist.Errorf(placelist.EINVALID, "cannot read %s: %v", path, err)
	}
	return string(b), nil
}
