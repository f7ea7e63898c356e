package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/Rodert/learn-hub/core"
	"github.com/Rodert/learn-hub/core/form"
	"github.com/Rodert/learn-hub/core/listing"
)

type (
	pageCommand func(ctx context.Context, args []string) error

	subCommand struct {
		route string // defaults to the page route
		run   pageCommand
	}

	// resource is the list page and form dialog of one entity.
	resource[T any, F any, C any, U any] struct {
		cli     *commandLine
		route   string
		name    string
		list    *listing.Controller[T, F]
		form    *form.Controller[T, C, U]
		columns []listing.Column[T]
		id      func(T) int
		// filterFlags registers the filter flags of `list` and returns a func applying them.
		filterFlags func(fs *flag.FlagSet) func(F) F
		// get fetches one record. When nil, records are looked up on a list page.
		get   func(ctx context.Context, id int) (T, error)
		extra map[string]subCommand
	}
)

func newResource[T any, F any, C any, U any](
	cli *commandLine,
	route, name string,
	spec form.Spec[T, C, U],
	list listing.ListFunc[T, F],
	del listing.DeleteFunc,
	filter F,
	columns []listing.Column[T],
) *resource[T, F, C, U] {
	fc := form.New(spec, cli)
	lc := listing.New(listing.Options[T, F]{
		Entity:    spec.Entity,
		Plural:    name,
		PageSize:  cli.conf.PageSize,
		Filter:    filter,
		List:      list,
		Delete:    del,
		Form:      fc,
		Notifier:  cli,
		Confirmer: cli,
	})
	fc.OnSaved(lc.Reload)
	return &resource[T, F, C, U]{
		cli:     cli,
		route:   route,
		name:    name,
		list:    lc,
		form:    fc,
		columns: columns,
		id:      spec.ID,
		extra:   make(map[string]subCommand),
	}
}

func (r *resource[T, F, C, U]) run(ctx context.Context, args []string) error {
	sub := "list"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		sub, args = args[0], args[1:]
	}

	var cmd pageCommand
	route := r.route
	switch sub {
	case "list":
		cmd = r.runList
	case "create":
		cmd = r.runCreate
	case "update":
		cmd = r.runUpdate
	case "delete":
		cmd = r.runDelete
	default:
		extra, ok := r.extra[sub]
		if !ok {
			fmt.Fprintf(r.cli.out, "%s: unknown command %q\n", r.name, sub)
			r.cli.printUsage()
			return errHelp
		}
		cmd = extra.run
		if extra.route != "" {
			route = extra.route
		}
	}

	if err := r.cli.open(route); err != nil {
		return err
	}
	return cmd(ctx, args)
}

func (r *resource[T, F, C, U]) flagSet(cmd string) *flag.FlagSet {
	fs := flag.NewFlagSet(r.name+" "+cmd, flag.ContinueOnError)
	fs.SetOutput(r.cli.out)
	return fs
}

func (r *resource[T, F, C, U]) runList(ctx context.Context, args []string) error {
	fs := r.flagSet("list")
	page := fs.Int("page", 1, "Page number.")
	limit := fs.Int("limit", r.cli.conf.PageSize, "Rows per page.")
	var apply func(F) F
	if r.filterFlags != nil {
		apply = r.filterFlags(fs)
	}
	if err := fs.Parse(args); err != nil {
		return errHelp
	}

	r.list.SetPageSize(*limit)
	if apply != nil {
		r.list.SetFilter(apply(r.list.Filter()))
	}
	if err := r.list.OnPageChange(ctx, *page); err != nil {
		return err
	}
	r.render()
	return nil
}

func (r *resource[T, F, C, U]) runCreate(ctx context.Context, args []string) error {
	fs := r.flagSet("create")
	r.fieldFlags(fs)
	if err := fs.Parse(args); err != nil {
		return errHelp
	}

	if err := r.list.OnCreateOrEdit(nil); err != nil {
		return err
	}
	if err := r.applyFields(fs); err != nil {
		r.form.Close()
		return err
	}
	return r.submit(ctx)
}

func (r *resource[T, F, C, U]) runUpdate(ctx context.Context, args []string) error {
	fs := r.flagSet("update")
	id := fs.Int("id", 0, "ID of the record to update.")
	page := fs.Int("page", 1, "List page holding the record.")
	r.fieldFlags(fs)
	if err := fs.Parse(args); err != nil {
		return errHelp
	}
	if *id <= 0 {
		fs.Usage()
		return errHelp
	}

	rec, err := r.find(ctx, *id, *page)
	if err != nil {
		return err
	}
	if err := r.list.OnCreateOrEdit(&rec); err != nil {
		return err
	}
	if err := r.applyFields(fs); err != nil {
		r.form.Close()
		return err
	}
	return r.submit(ctx)
}

func (r *resource[T, F, C, U]) runDelete(ctx context.Context, args []string) error {
	fs := r.flagSet("delete")
	id := fs.Int("id", 0, "ID of the record to delete.")
	page := fs.Int("page", 1, "List page to show afterwards.")
	yes := fs.Bool("yes", false, "Do not ask for confirmation.")
	if err := fs.Parse(args); err != nil {
		return errHelp
	}
	if *id <= 0 {
		fs.Usage()
		return errHelp
	}

	if err := r.list.OnPageChange(ctx, *page); err != nil {
		return err
	}
	r.cli.assumeYes = *yes
	defer func() { r.cli.assumeYes = false }()
	if err := r.list.OnDelete(ctx, *id); err != nil {
		return err
	}
	r.render()
	return nil
}

// find returns record id, read from page `page` of the list unless the entity can be fetched alone.
func (r *resource[T, F, C, U]) find(ctx context.Context, id, page int) (T, error) {
	if r.get != nil {
		rec, err := r.get(ctx, id)
		if err != nil {
			r.cli.Error(core.UserMessage(err, "failed to load "+r.list.Entity()))
		}
		return rec, err
	}
	var zero T
	if err := r.list.OnPageChange(ctx, page); err != nil {
		return zero, err
	}
	rec, ok := r.list.Find(func(t T) bool { return r.id(t) == id })
	if !ok {
		return zero, fmt.Errorf("%s #%d is not on page %d", r.list.Entity(), id, page)
	}
	return rec, nil
}

// fieldFlags registers one string flag per form field.
func (r *resource[T, F, C, U]) fieldFlags(fs *flag.FlagSet) {
	for _, f := range r.form.Fields() {
		usage := f.Label
		if len(f.Options) > 0 {
			vals := make([]string, len(f.Options))
			for i, o := range f.Options {
				vals[i] = o.Value
			}
			usage += " (" + strings.Join(vals, "|") + ")"
		}
		if f.Help != "" {
			usage += "; " + f.Help
		}
		fs.String(f.Name, "", usage)
	}
}

// applyFields copies the field flags given on the command line into the open form.
func (r *resource[T, F, C, U]) applyFields(fs *flag.FlagSet) error {
	var err error
	fs.Visit(func(fl *flag.Flag) {
		if err != nil {
			return
		}
		if _, ok := r.form.Field(fl.Name); ok {
			err = r.form.Set(fl.Name, fl.Value.String())
		}
	})
	return err
}

func (r *resource[T, F, C, U]) submit(ctx context.Context) error {
	if _, err := r.form.Submit(ctx); err != nil {
		var vErr *core.ValidationError
		if errors.As(err, &vErr) {
			r.cli.printFieldErrors(vErr)
		}
		return err
	}
	r.render()
	return nil
}

func (r *resource[T, F, C, U]) render() {
	renderPage(r.cli.out, r.name, r.columns, r.list.State(), r.list.TotalPages())
}

func (cli *commandLine) printFieldErrors(vErr *core.ValidationError) {
	if len(vErr.Fields) == 0 {
		cli.Error(vErr.Error())
		return
	}
	cli.Error("invalid input")
	for _, f := range vErr.Fields {
		fmt.Fprintf(cli.out, "  -%s: %s\n", f.Field, f.Error)
	}
}
