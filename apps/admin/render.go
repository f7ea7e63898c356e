package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/Rodert/learn-hub/core"
	"github.com/Rodert/learn-hub/core/course"
	"github.com/Rodert/learn-hub/core/listing"
)

var cellReplacer = strings.NewReplacer("\t", " ", "\r", " ", "\n", " ")

// renderTable writes items as aligned columns, or empty when there are none.
func renderTable[T any](w io.Writer, cols []listing.Column[T], items []T, empty string) {
	if len(items) == 0 {
		fmt.Fprintln(w, empty)
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	row := make([]string, len(cols))
	for i, c := range cols {
		row[i] = c.Title
	}
	fmt.Fprintln(tw, strings.Join(row, "\t"))
	for _, item := range items {
		for i, c := range cols {
			row[i] = cellReplacer.Replace(c.Value(item))
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	tw.Flush()
}

// renderPage writes one list page followed by its position.
func renderPage[T any](w io.Writer, plural string, cols []listing.Column[T], st listing.State[T], totalPages int) {
	renderTable(w, cols, st.Items, "no "+plural+" found")
	if st.Total > 0 {
		fmt.Fprintf(w, "page %d of %d (%s %s)\n", st.Page, totalPages, humanize.Comma(st.Total), plural)
	}
}

func renderCourse(w io.Writer, c course.Course) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\t%d\n", c.ID)
	fmt.Fprintf(tw, "Title\t%s\n", c.Title)
	fmt.Fprintf(tw, "Type\t%s\n", core.Label(course.ContentTypeLabels, c.ContentType))
	fmt.Fprintf(tw, "Status\t%s\n", core.Label(course.StatusLabels, c.Status))
	fmt.Fprintf(tw, "Duration\t%s\n", c.DisplayDuration())
	fmt.Fprintf(tw, "Sort order\t%d\n", c.SortOrder)
	if c.CoverImage != "" {
		fmt.Fprintf(tw, "Cover\t%s\n", c.CoverImage)
	}
	if c.VideoURL != "" {
		fmt.Fprintf(tw, "Video\t%s\n", c.VideoURL)
	}
	fmt.Fprintf(tw, "Updated\t%s\n", c.UpdatedAt.Relative())
	tw.Flush()
	if d := core.Preview(c.Description, 200); d != "" {
		fmt.Fprintf(w, "\n%s\n", d)
	}
	if t := core.Preview(c.TextContent, 200); t != "" {
		fmt.Fprintf(w, "\n%s\n", t)
	}
}
