package export

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"github.com/vanderheijden86/archguide/pkg/catalog"
	"github.com/vanderheijden86/archguide/pkg/content"
	"github.com/vanderheijden86/archguide/pkg/toggle"

	"golang.org/x/sync/errgroup"
)

// BatchOptions controls SaveAll.
type BatchOptions struct {
	Dir        string                          // Output directory
	Format     string                          // One of Formats; defaults to svg
	Preset     string                          // Passed through to each export
	Selections map[string]toggle.State[int]    // Selection per diagram id; missing means absent
	Open       map[string]toggle.State[string] // Open entry per question list id
	Workers    int                             // Concurrent exports; 0 means 4
}

// SaveAll exports every diagram of the guide into opts.Dir, one file per
// diagram named after its id. It returns the written paths in guide order.
func SaveAll(ctx context.Context, g *content.Guide, opts BatchOptions) ([]string, error) {
	if opts.Dir == "" {
		return nil, fmt.Errorf("output directory is required")
	}
	format := opts.Format
	if format == "" {
		format = FormatSVG
	}
	if _, err := resolveFormat(&Options{Format: format}); err != nil {
		return nil, err
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = 4
	}

	type job struct {
		order int
		part  content.Part
	}
	var jobs []job
	for i, p := range g.Parts {
		if p.Diagram != nil {
			jobs = append(jobs, job{order: i, part: p})
		}
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)

	var mu sync.Mutex
	written := make(map[int]string, len(jobs))
	for _, j := range jobs {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			d := j.part.Diagram
			path := filepath.Join(opts.Dir, d.ID()+"."+format)
			var lists []*catalog.QAList
			if j.part.Questions != nil {
				lists = append(lists, j.part.Questions)
			}
			err := SaveDiagram(Options{
				Path:      path,
				Format:    format,
				Title:     j.part.Title,
				Preset:    opts.Preset,
				Diagram:   d,
				Selection: opts.Selections[d.ID()],
				Questions: lists,
				Open:      opts.Open,
			})
			if err != nil {
				return fmt.Errorf("export %s: %w", d.ID(), err)
			}
			mu.Lock()
			written[j.order] = path
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	orders := make([]int, 0, len(written))
	for o := range written {
		orders = append(orders, o)
	}
	sort.Ints(orders)
	paths := make([]string, 0, len(orders))
	for _, o := range orders {
		paths = append(paths, written[o])
	}
	return paths, nil
}
