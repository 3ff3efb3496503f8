package ui

import (
	"context"
	"fmt"
	"strings"

	"tablelens/adapters/stats/engine"
	"tablelens/domain/analysis"
	"tablelens/domain/table"
	"tablelens/ports"
)

// BuildReport runs the standard battery of analyses over one table and
// renders the results as a markdown document. Sections that do not apply
// to the table's shape are skipped rather than failing the whole report.
func BuildReport(ctx context.Context, e *engine.Engine, source ports.ColumnSource, name string) (string, error) {
	snapshot, err := source.Table(ctx, name)
	if err != nil {
		return "", err
	}

	numeric, categorical := classifyColumns(snapshot)

	var b strings.Builder
	fmt.Fprintf(&b, "# Analysis Report: %s\n\n", snapshot.Name)
	fmt.Fprintf(&b, "%d rows, %d columns (%d numeric, %d categorical)\n",
		len(snapshot.Rows), len(snapshot.Columns), len(numeric), len(categorical))

	if len(numeric) > 0 {
		writeBasicStats(ctx, &b, e, name, numeric)
	}
	if len(numeric) >= 2 {
		writeCorrelation(ctx, &b, e, name, numeric)
	}
	if len(numeric) > 0 {
		writeChangePoints(ctx, &b, e, name, numeric[0])
	}
	if len(categorical) >= 2 {
		writeAssociationRules(ctx, &b, e, name, categorical)
	}
	return b.String(), nil
}

// classifyColumns splits columns into numeric and categorical by probing
// each for usable numeric values
func classifyColumns(t *table.Table) (numeric, categorical []string) {
	for _, col := range t.Columns {
		data, err := t.NumericColumn(col, nil, table.MissingFlags{})
		if err == nil && len(data) >= 2 {
			numeric = append(numeric, col)
		} else {
			categorical = append(categorical, col)
		}
	}
	return numeric, categorical
}

func writeBasicStats(ctx context.Context, b *strings.Builder, e *engine.Engine, tableName string, columns []string) {
	result, err := e.Run(ctx, analysis.Request{
		Type:    analysis.TypeBasicStats,
		Table:   tableName,
		Columns: columns,
	})
	if err != nil {
		writeSectionError(b, "Descriptive Statistics", err)
		return
	}

	b.WriteString("\n## Descriptive Statistics\n\n")
	b.WriteString("| Column | Count | Mean | Std Dev | Min | Median | Max |\n")
	b.WriteString("|---|---|---|---|---|---|---|\n")
	for _, cs := range result.BasicStats.Columns {
		fmt.Fprintf(b, "| %s | %d | %.4f | %.4f | %.4f | %.4f | %.4f |\n",
			cs.Column, cs.Count, cs.Mean, cs.StdDev, cs.Min, cs.Median, cs.Max)
	}
}

func writeCorrelation(ctx context.Context, b *strings.Builder, e *engine.Engine, tableName string, columns []string) {
	result, err := e.Run(ctx, analysis.Request{
		Type:    analysis.TypeCorrelation,
		Table:   tableName,
		Columns: columns,
	})
	if err != nil {
		writeSectionError(b, "Correlation", err)
		return
	}

	corr := result.Correlation
	b.WriteString("\n## Correlation\n\n")
	b.WriteString("| |")
	for _, col := range corr.Columns {
		fmt.Fprintf(b, " %s |", col)
	}
	b.WriteString("\n|---|")
	for range corr.Columns {
		b.WriteString("---|")
	}
	b.WriteString("\n")
	for i, col := range corr.Columns {
		fmt.Fprintf(b, "| %s |", col)
		for j := range corr.Columns {
			fmt.Fprintf(b, " %.3f |", corr.Matrix[i][j])
		}
		b.WriteString("\n")
	}
}

func writeChangePoints(ctx context.Context, b *strings.Builder, e *engine.Engine, tableName, column string) {
	result, err := e.Run(ctx, analysis.Request{
		Type:    analysis.TypeChangePoints,
		Table:   tableName,
		Columns: []string{column},
	})
	if err != nil {
		writeSectionError(b, "Change Points", err)
		return
	}

	cp := result.ChangePoints
	fmt.Fprintf(b, "\n## Change Points (%s, %s)\n\n", cp.Column, cp.Algorithm)
	if len(cp.Points) == 0 {
		b.WriteString("No change points detected.\n")
		return
	}
	b.WriteString("| Index | Value | Confidence |\n|---|---|---|\n")
	for _, p := range cp.Points {
		fmt.Fprintf(b, "| %d | %.4f | %.2f |\n", p.Index, p.Value, p.Confidence)
	}
}

func writeAssociationRules(ctx context.Context, b *strings.Builder, e *engine.Engine, tableName string, columns []string) {
	result, err := e.Run(ctx, analysis.Request{
		Type:    analysis.TypeAssociationRules,
		Table:   tableName,
		Columns: columns,
	})
	if err != nil {
		writeSectionError(b, "Association Rules", err)
		return
	}

	rules := result.AssociationRules
	b.WriteString("\n## Association Rules\n\n")
	if len(rules.Rules) == 0 {
		fmt.Fprintf(b, "No rules above support %.2f and confidence %.2f.\n",
			rules.MinSupport, rules.MinConfidence)
		return
	}
	b.WriteString("| Rule | Support | Confidence | Lift | Conviction |\n|---|---|---|---|---|\n")
	for _, rule := range rules.Rules {
		fmt.Fprintf(b, "| %s → %s | %.3f | %.3f | %.3f | %s |\n",
			strings.Join(rule.Antecedent, ", "), strings.Join(rule.Consequent, ", "),
			rule.Support, rule.Confidence, rule.Lift, rule.ConvictionLabel())
	}
}

func writeSectionError(b *strings.Builder, section string, err error) {
	fmt.Fprintf(b, "\n## %s\n\n_Skipped: %v_\n", section, err)
}
