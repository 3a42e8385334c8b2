package main

import (
	"fmt"

	"github.com/fwojciec/placelist"
)

// Run executes the history list command.
func (c *HistoryListCmd) Run(deps *Dependencies) error {
	filter := placelist.ListFilter{Limit: c.Limit}
	if c.URL != "" {
		filter.SourceURL = &c.URL
	}

	lists, err := deps.Lists.FindLists(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", placelist.ErrorMessage(err))
		return err
	}

	if len(lists) == 0 {
		fmt.Fprintln(deps.Stdout, "No saved lists. Use 'placelist fetch --save' to save one.")
		return nil
	}

	for _, l := range lists {
		fmt.Fprintf(deps.Stdout, "%s  %s  %d places  %s\n",
			l.ID, l.FetchedAt.Local().Format("2006-01-02 15:04"), l.PlaceCount, l.SourceURL)
	}
	return nil
}

// Run executes the history show command.
func (c *HistoryShowCmd) Run(deps *Dependencies) error {
	list, err := deps.Lists.FindListByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", placelist.ErrorMessage(err))
		return err
	}
	return writeJSON(deps.Stdout, list.PlaceList())
}

// Run executes the history delete command.
func (c *HistoryDeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return placelist.Errorf(placelist.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Lists.DeleteList(deps.Ctx, c.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", placelist.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted list %s\n", c.ID)
	return nil
}
