package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/Rodert/learn-hub/core"
	"github.com/Rodert/learn-hub/core/form"
	"github.com/Rodert/learn-hub/core/nav"
	"github.com/Rodert/learn-hub/core/question"
	"github.com/Rodert/learn-hub/core/user"
)

type (
	rowFailure struct {
		Row int // 1-based, the header is row 1
		Err error
	}

	importResult struct {
		Created  int
		Failures []rowFailure
	}
)

// importCSV creates users or questions from the rows of a CSV file.
func (cli *commandLine) importCSV(ctx context.Context, args []string) error {
	if len(args) < 1 || strings.HasPrefix(args[0], "-") {
		cli.printUsage()
		return errHelp
	}
	kind := args[0]
	importCmd := flag.NewFlagSet("import "+kind, flag.ContinueOnError)
	importCmd.SetOutput(cli.out)
	file := importCmd.String("file", "", "CSV file. The header row names the form fields.")
	if err := importCmd.Parse(args[1:]); err != nil {
		return errHelp
	}
	if *file == "" {
		importCmd.Usage()
		return errHelp
	}

	var (
		route string
		run   func(r io.Reader) (importResult, error)
	)
	switch kind {
	case "users":
		route = nav.UsersRoute
		run = func(r io.Reader) (importResult, error) {
			return importRows(ctx, form.New(user.FormSpec(cli.users), nil), r)
		}
	case "questions":
		route = nav.QuestionsRoute
		run = func(r io.Reader) (importResult, error) {
			return importRows(ctx, form.New(question.FormSpec(cli.questions), nil), r)
		}
	default:
		cli.printUsage()
		return errHelp
	}
	if err := cli.open(route); err != nil {
		return err
	}

	f, err := os.Open(*file)
	if err != nil {
		return err
	}
	defer f.Close()

	res, err := run(f)
	for _, fail := range res.Failures {
		fmt.Fprintf(cli.out, "row %d: %s\n", fail.Row, core.UserMessage(fail.Err, fail.Err.Error()))
	}
	if err != nil {
		cli.Error(err.Error())
		return err
	}
	cli.Success(fmt.Sprintf("imported %d %s, %d failed", res.Created, kind, len(res.Failures)))
	if len(res.Failures) > 0 {
		return errors.Errorf("%d of %d rows failed", len(res.Failures), res.Created+len(res.Failures))
	}
	return nil
}

// importRows submits every data row of r through fc. A failing row does not stop the import.
func importRows[T any, C any, U any](ctx context.Context, fc *form.Controller[T, C, U], r io.Reader) (importResult, error) {
	var res importResult

	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err == io.EOF {
		return res, errors.New("the file is empty")
	}
	if err != nil {
		return res, errors.Wrap(err, "reading header")
	}
	for i, name := range header {
		header[i] = strings.TrimSpace(name)
		if _, ok := fc.Field(header[i]); !ok {
			return res, errors.Errorf("unknown column %q", header[i])
		}
	}

	for row := 2; ; row++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return res, errors.Wrapf(err, "reading row %d", row)
		}
		if len(rec) != len(header) {
			res.Failures = append(res.Failures, rowFailure{
				Row: row,
				Err: errors.Errorf("has %d fields, want %d", len(rec), len(header)),
			})
			continue
		}

		fc.Open(nil)
		if err := setRow(fc, header, rec); err != nil {
			fc.Close()
			res.Failures = append(res.Failures, rowFailure{Row: row, Err: err})
			continue
		}
		if _, err := fc.Submit(ctx); err != nil {
			fc.Close()
			res.Failures = append(res.Failures, rowFailure{Row: row, Err: err})
			continue
		}
		res.Created++
	}
	return res, nil
}

func setRow[T any, C any, U any](fc *form.Controller[T, C, U], header, rec []string) error {
	for i, v := range rec {
		if v == "" {
			continue
		}
		if err := fc.Set(header[i], v); err != nil {
			return err
		}
	}
	return nil
}
