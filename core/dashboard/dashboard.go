// Package dashboard gathers the record counts shown on the landing page.
package dashboard

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/Rodert/learn-hub/core"
	"github.com/Rodert/learn-hub/core/listing"
)

type (
	CountFunc func(ctx context.Context) (int64, error)

	Source struct {
		Title string
		Route string
		Count CountFunc
	}

	Stat struct {
		Title string
		Route string
		Count int64
	}
)

// CountOf counts the records list returns for filter by reading the total of a one-item page.
func CountOf[T any, F any](list listing.ListFunc[T, F], filter F) CountFunc {
	return func(ctx context.Context) (int64, error) {
		page, err := list(ctx, core.PageQuery[F]{Page: 1, Limit: 1, Filter: filter})
		if err != nil {
			return 0, err
		}
		return page.Total, nil
	}
}

// Collect runs every count concurrently. The first failure cancels the others.
func Collect(ctx context.Context, sources []Source) ([]Stat, error) {
	stats := make([]Stat, len(sources))
	g, ctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		i, src := i, src
		stats[i] = Stat{Title: src.Title, Route: src.Route}
		g.Go(func() error {
			n, err := src.Count(ctx)
			if err != nil {
				return errors.Wrapf(err, "counting %s", src.Title)
			}
			stats[i].Count = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}
