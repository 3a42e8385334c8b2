package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fwojciec/placelist"
)

// fetchResult is one entry of fetch output when several URLs are given.
type fetchResult struct {
	URL    string               `json:"url"`
	ID     string               `json:"id,omitempty"`
	Result *placelist.PlaceList `json:"result"`
	Error  string               `json:"error,omitempty"`
}

// Run executes the fetch command. A single URL prints its PlaceList; several
// URLs print an array of results in argument order.
func (c *FetchCmd) Run(deps *Dependencies) error {
	results := deps.Scraper.ScrapeAll(deps.Ctx, c.URLs, c.Concurrency)

	out := make([]fetchResult, len(results))
	var failed int
	for i, r := range results {
		out[i] = fetchResult{URL: r.URL, Result: r.List}
		if r.Err != nil {
			failed++
			out[i].Error = errorText(r.Err)
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", r.URL, out[i].Error)
			continue
		}
		if c.Save {
			list := &placelist.List{
				SourceURL:       r.URL,
				ListDescription: r.List.ListDescription,
				Items:           r.List.Items,
			}
			if err := deps.Lists.CreateList(deps.Ctx, list); err != nil {
				fmt.Fprintf(deps.Stderr, "error: %s\n", placelist.ErrorMessage(err))
				return err
			}
			out[i].ID = list.ID
			fmt.Fprintf(deps.Stderr, "Saved %s as %s\n", r.URL, list.ID)
		}
	}

	if len(results) == 1 {
		if results[0].Err != nil {
			return results[0].Err
		}
		return writeJSON(deps.Stdout, results[0].List)
	}

	if err := writeJSON(deps.Stdout, out); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d URLs failed", failed, len(results))
	}
	return nil
}

// errorText returns the message of application errors and the full text of
// anything else.
func errorText(err error) string {
	if placelist.ErrorCode(err) == placelist.EINTERNAL {
		return err.Error()
	}
	return placelist.ErrorMessage(err)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
