package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/gridplan/internal/history"
)

// saveHistory records rep in the SQLite database at path.
func saveHistory(ctx context.Context, path string, rep Report) (err error) {
	store, err := history.Open(ctx, path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := store.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close history database: %w", cerr)
		}
	}()

	run := history.Run{
		ID:           rep.RunID,
		Unit:         rep.Unit,
		HorizonStart: rep.Horizon[0],
		HorizonEnd:   rep.Horizon[1],
		Placed:       rep.Placed,
		Unplaced:     rep.Unplaced,
		Outcomes:     make([]history.Outcome, 0, len(rep.Tasks)),
	}
	for _, t := range rep.Tasks {
		run.Outcomes = append(run.Outcomes, history.Outcome{
			TaskID:      t.ID,
			Status:      t.Status,
			Start:       t.Start,
			End:         t.End,
			Flexibility: t.Flexibility,
			Endangered:  t.Endangered,
			Step:        t.Step,
		})
	}
	if err := store.Save(ctx, run); err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}
