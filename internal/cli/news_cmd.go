package cli

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/agisilaos/skydesk/internal/model"
	"github.com/agisilaos/skydesk/internal/state"
)

func (a App) cmdNews(g globalFlags, args []string) error {
	if len(args) == 0 {
		args = []string{"list"}
	}
	sub := args[0]
	argv := args[1:]
	switch sub {
	case "list":
		return a.newsList(g, argv)
	case "create":
		return a.newsCreate(g, argv)
	case "update":
		return a.newsUpdate(g, argv)
	case "publish":
		return a.newsPublish(g, argv)
	case "delete":
		return a.newsDelete(g, argv)
	default:
		return newExitError(ExitInvalidUsage, "usage: skydesk news <list|create|update|publish|delete>")
	}
}

func (a App) newsList(g globalFlags, args []string) error {
	e, err := a.authedEnvironment(g)
	if err != nil {
		return err
	}
	fs, lf := newListFlagSet("news list", e.cfg.PageSize)
	if err := fs.Parse(args); err != nil {
		return newExitError(ExitInvalidUsage, "%v", err)
	}

	items, err := e.client.News()
	if err != nil {
		return wrapAPIError(err)
	}
	list := state.NewNews(lf.PageSize)
	list.Replace(items)
	list.Search(lf.Search)
	list.SetPage(lf.Page)

	page := list.PageItems()
	if g.JSON {
		return writeJSON(listPage[model.News]{
			Items:      page,
			Total:      len(list.Filtered()),
			Page:       list.Page(),
			TotalPages: list.TotalPages(),
			Search:     lf.Search,
		})
	}
	writePlainTableHeader("id", "status", "title")
	for _, n := range page {
		writePlainTableRow(strconv.FormatInt(n.ID, 10), n.Status, n.Title)
	}
	if !g.Quiet {
		fmt.Printf("page %d/%d (%d matching)\n", list.Page(), list.TotalPages(), len(list.Filtered()))
	}
	return nil
}

func newNewsFormFlagSet(name string, form *state.NewsForm) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.StringVar(&form.Title, "title", form.Title, "Headline")
	fs.StringVar(&form.Content, "content", form.Content, "Body text")
	return fs
}

func (a App) newsCreate(g globalFlags, args []string) error {
	form := state.NewNewsForm()
	fs := newNewsFormFlagSet("news create", &form)
	if err := fs.Parse(args); err != nil {
		return newExitError(ExitInvalidUsage, "%v", err)
	}
	if errs := form.Validate(); len(errs) > 0 {
		return validationError(errs)
	}
	e, err := a.authedEnvironment(g)
	if err != nil {
		return err
	}
	created, err := e.client.CreateNews(form.Record())
	if err != nil {
		return wrapAPIError(err)
	}
	if g.JSON {
		return writeJSON(created)
	}
	if !g.Quiet {
		fmt.Printf("News %q created as %s (id %d).\n", created.Title, created.Status, created.ID)
	}
	return nil
}

func (a App) newsUpdate(g globalFlags, args []string) error {
	if len(args) == 0 {
		return newExitError(ExitInvalidUsage, "usage: skydesk news update <id> [flags]")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return newExitError(ExitInvalidUsage, "invalid news id %q", args[0])
	}
	e, err := a.authedEnvironment(g)
	if err != nil {
		return err
	}
	items, err := e.client.News()
	if err != nil {
		return wrapAPIError(err)
	}
	var form state.NewsForm
	found := false
	for _, n := range items {
		if n.ID == id {
			form = state.EditNewsForm(n)
			found = true
			break
		}
	}
	if !found {
		return newExitError(ExitGenericFailure, "news %d not found", id)
	}
	fs := newNewsFormFlagSet("news update", &form)
	if err := fs.Parse(args[1:]); err != nil {
		return newExitError(ExitInvalidUsage, "%v", err)
	}
	if errs := form.Validate(); len(errs) > 0 {
		return validationError(errs)
	}
	updated, err := e.client.UpdateNews(id, form.Record())
	if err != nil {
		return wrapAPIError(err)
	}
	if g.JSON {
		return writeJSON(updated)
	}
	if !g.Quiet {
		fmt.Printf("News %d updated.\n", id)
	}
	return nil
}

// newsPublish moves a DRAFT item to PUBLISHED. The transition is one way,
// so a published item is refused here rather than sent to the backend.
func (a App) newsPublish(g globalFlags, args []string) error {
	if len(args) != 1 {
		return newExitError(ExitInvalidUsage, "usage: skydesk news publish <id>")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return newExitError(ExitInvalidUsage, "invalid news id %q", args[0])
	}
	e, err := a.authedEnvironment(g)
	if err != nil {
		return err
	}
	items, err := e.client.News()
	if err != nil {
		return wrapAPIError(err)
	}
	for _, n := range items {
		if n.ID == id && n.Status != model.NewsDraft {
			return newExitError(ExitGenericFailure, "news %d is already %s", id, n.Status)
		}
	}
	if err := e.client.PublishNews(id); err != nil {
		return wrapAPIError(err)
	}
	if g.JSON {
		return writeJSON(map[string]any{"status": "ok", "published": id})
	}
	if !g.Quiet {
		fmt.Printf("News %d published.\n", id)
	}
	return nil
}

func (a App) newsDelete(g globalFlags, args []string) error {
	id, force, err := parseDeleteArgs("news delete", args)
	if err != nil {
		return err
	}
	if err := confirmDestructive(g, force, fmt.Sprintf("Delete news %d?", id)); err != nil {
		return err
	}
	e, err := a.authedEnvironment(g)
	if err != nil {
		return err
	}
	if err := e.client.DeleteNews(id); err != nil {
		return wrapAPIError(err)
	}
	if g.JSON {
		return writeJSON(map[string]any{"status": "ok", "deleted": id})
	}
	if !g.Quiet {
		fmt.Printf("News %d deleted.\n", id)
	}
	return nil
}
