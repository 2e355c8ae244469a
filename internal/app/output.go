package app

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/gookit/color"
	"github.com/mitchellh/go-wordwrap"
	"github.com/specialistvlad/gridplan/internal/planner"
	"github.com/specialistvlad/gridplan/internal/quantity"
	"github.com/vmihailenco/msgpack/v5"
)

// constraintWidth is where constraint descriptions wrap in the text report.
const constraintWidth = 72

// Report is the rendered outcome of a run, independent of the axis unit.
type Report struct {
	RunID    string       `json:"run_id"`
	Unit     string       `json:"unit"`
	Horizon  [2]float64   `json:"horizon"`
	Placed   int          `json:"placed"`
	Unplaced int          `json:"unplaced"`
	Tasks    []TaskReport `json:"tasks"`
}

// TaskReport is one row of a Report. Start and End are nil for tasks that
// were not placed.
type TaskReport struct {
	ID          string   `json:"id"`
	Status      string   `json:"status"`
	Start       *float64 `json:"start,omitempty"`
	End         *float64 `json:"end,omitempty"`
	Flexibility float64  `json:"flexibility"`
	Endangered  bool     `json:"endangered"`
	Step        int      `json:"step,omitempty"`
	Constraint  string   `json:"constraint,omitempty"`
}

func newReport[U quantity.Unit](runID string, prob planner.Problem[U], result *planner.Result[U]) Report {
	var u U
	rep := Report{
		RunID:   runID,
		Unit:    u.Symbol(),
		Horizon: [2]float64{prob.Horizon.Start().Value(), prob.Horizon.End().Value()},
		Tasks:   make([]TaskReport, 0, len(result.Outcomes)),
	}

	described := make(map[string]string, len(prob.Tasks))
	for _, t := range prob.Tasks {
		if tree := t.Constraints(); tree != nil {
			described[t.ID()] = tree.String()
		}
	}

	for _, o := range result.Outcomes {
		row := TaskReport{
			ID:          o.ID,
			Status:      o.Status.String(),
			Flexibility: o.Flexibility,
			Endangered:  o.Endangered,
			Step:        o.Step,
			Constraint:  described[o.ID],
		}
		if o.Status == planner.Placed {
			start, end := o.Interval.Start().Value(), o.Interval.End().Value()
			row.Start, row.End = &start, &end
			rep.Placed++
		} else {
			rep.Unplaced++
		}
		rep.Tasks = append(rep.Tasks, row)
	}
	return rep
}

// writeReport renders rep in the given format.
func writeReport(w io.Writer, format string, colored bool, rep Report) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			return fmt.Errorf("failed to encode JSON report: %w", err)
		}
		return nil
	case OutputMsgpack:
		enc := msgpack.NewEncoder(w)
		enc.SetCustomStructTag("json")
		if err := enc.Encode(rep); err != nil {
			return fmt.Errorf("failed to encode msgpack report: %w", err)
		}
		return nil
	case OutputText, "":
		return writeText(w, colored, rep)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

var (
	headerStyle     = color.New(color.OpBold)
	placedStyle     = color.New(color.FgGreen)
	blockedStyle    = color.New(color.FgYellow)
	infeasibleStyle = color.New(color.FgRed)
	endangeredStyle = color.New(color.FgYellow, color.OpBold)
)

// textPrinter styles cells only when color is on. Cells are padded before
// styling so escape codes do not skew the columns.
type textPrinter struct {
	w       io.Writer
	colored bool
	err     error
}

func (p *textPrinter) style(s color.Style, text string) string {
	if !p.colored {
		return text
	}
	return s.Sprint(text)
}

func (p *textPrinter) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func writeText(w io.Writer, colored bool, rep Report) error {
	p := &textPrinter{w: w, colored: colored}

	p.printf("Horizon [%.3f, %.3f) %s: %d placed, %d unplaced\n\n", rep.Horizon[0], rep.Horizon[1], rep.Unit, rep.Placed, rep.Unplaced)
	if len(rep.Tasks) == 0 {
		p.printf("No tasks.\n")
		return p.err
	}

	idWidth := len("TASK")
	for _, t := range rep.Tasks {
		idWidth = max(idWidth, len(t.ID))
	}
	row := func(step, id, status, start, end, flex string) string {
		return fmt.Sprintf("%-4s  %-*s  %s  %12s  %12s  %8s", step, idWidth, id, status, start, end, flex)
	}

	p.printf("%s\n", p.style(headerStyle, row("STEP", "TASK", fmt.Sprintf("%-10s", "STATUS"), "START", "END", "FLEX")))
	for _, t := range rep.Tasks {
		step, start, end := "-", "-", "-"
		if t.Step > 0 {
			step = fmt.Sprint(t.Step)
		}
		if t.Start != nil && t.End != nil {
			start, end = fmt.Sprintf("%.3f", *t.Start), fmt.Sprintf("%.3f", *t.End)
		}
		status := p.style(statusStyle(t.Status), fmt.Sprintf("%-10s", t.Status))
		line := row(step, t.ID, status, start, end, fmt.Sprintf("%.3f", t.Flexibility))

		if t.Endangered {
			line += "  " + p.style(endangeredStyle, "endangered")
		}
		p.printf("%s\n", line)
	}

	var constrained []TaskReport
	for _, t := range rep.Tasks {
		if t.Constraint != "" {
			constrained = append(constrained, t)
		}
	}
	if len(constrained) == 0 {
		return p.err
	}

	p.printf("\n%s\n", p.style(headerStyle, "Constraints:"))
	indent := strings.Repeat(" ", idWidth+4)
	for _, t := range constrained {
		wrapped := wordwrap.WrapString(t.Constraint, constraintWidth)
		lines := strings.Split(wrapped, "\n")
		p.printf("  %-*s  %s\n", idWidth, t.ID, lines[0])
		for _, l := range lines[1:] {
			p.printf("%s%s\n", indent, l)
		}
	}
	return p.err
}

func statusStyle(status string) color.Style {
	switch status {
	case planner.Placed.String():
		return placedStyle
	case planner.Blocked.String():
		return blockedStyle
	default:
		return infeasibleStyle
	}
}
