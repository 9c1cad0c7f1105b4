package analytics

import (
	"sort"
	"strings"

	"likecli/pkg/contracts/domain"
)

// MaxDifficultObjectives is how many leading rows of the export are considered
const MaxDifficultObjectives = 5

// SelectDifficultObjectives takes the first five objectives in export order,
// orders them by "Unconsciously Incompetent" descending (stable, missing
// last) and removes the "Open in Curator" link column. A table without rows
// gives an empty result that still carries its headers.
func SelectDifficultObjectives(table domain.ObjectiveTable) domain.ObjectiveTable {
	columns := table.Columns
	if len(columns) == 0 {
		columns = domain.CanonicalObjectiveColumns
	}
	drop := curatorColumn(columns)

	n := len(table.Rows)
	if n > MaxDifficultObjectives {
		n = MaxDifficultObjectives
	}
	head := append([]domain.ObjectiveRow(nil), table.Rows[:n]...)
	sort.SliceStable(head, func(i, j int) bool {
		a, b := head[i].UnconsciouslyIncompetent, head[j].UnconsciouslyIncompetent
		if a.Valid != b.Valid {
			return a.Valid
		}
		return a.Valid && a.Value > b.Value
	})

	out := domain.ObjectiveTable{
		Columns: withoutIndex(columns, drop),
		Rows:    make([]domain.ObjectiveRow, 0, len(head)),
	}
	for _, row := range head {
		out.Rows = append(out.Rows, domain.ObjectiveRow{
			Cells:                    withoutIndex(row.Cells, drop),
			UnconsciouslyIncompetent: row.UnconsciouslyIncompetent,
		})
	}
	return out
}

func curatorColumn(columns []string) int {
	for i, c := range columns {
		if strings.EqualFold(strings.TrimSpace(c), domain.ObjectiveColumnOpenInCurator) {
			return i
		}
	}
	return -1
}

func withoutIndex(values []string, drop int) []string {
	out := make([]string, 0, len(values))
	for i, v := range values {
		if i != drop {
			out = append(out, v)
		}
	}
	return out
}
