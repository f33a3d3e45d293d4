package cli

import (
	"flag"
	"os"
)

type listFlags struct {
	Search   string
	Page     int
	PageSize int
}

func newListFlagSet(name string, defaultPageSize int) (*flag.FlagSet, *listFlags) {
	lf := &listFlags{}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.StringVar(&lf.Search, "search", "", "Case-insensitive substring filter")
	fs.IntVar(&lf.Page, "page", 1, "Page number (1-based)")
	fs.IntVar(&lf.PageSize, "page-size", defaultPageSize, "Rows per page")
	return fs, lf
}

// listPage is the JSON envelope for paginated list commands.
type listPage[T any] struct {
	Items      []T    `json:"items"`
	Total      int    `json:"total"`
	Page       int    `json:"page"`
	TotalPages int    `json:"total_pages"`
	Search     string `json:"search,omitempty"`
}
