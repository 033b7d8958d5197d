package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/pivolan/campaign_analyzer/domain/models"
	"github.com/pivolan/campaign_analyzer/stats"
)

// Description is everything the describe procedure prints.
type Description struct {
	Rows, Cols  int
	Columns     []models.ColumnInfo
	Stats       []stats.ColumnStats
	Missing     []models.ColumnCount
	Head        [][]string
	Correlation stats.Matrix
}

// FormatNumber prints v with the given decimals. Non-finite values print
// as NaN, inf and -inf.
func FormatNumber(v float64, decimals int) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	if v == 0 {
		v = 0 // drops the sign of -0
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

func newTable(header table.Row) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(header)

	configs := make([]table.ColumnConfig, 0, len(header))
	for i := 2; i <= len(header); i++ {
		configs = append(configs, table.ColumnConfig{Number: i, Align: text.AlignRight})
	}
	t.SetColumnConfigs(configs)
	return t
}

func section(b *strings.Builder, title string) {
	if b.Len() > 0 {
		b.WriteString("\n")
	}
	fmt.Fprintf(b, "=== %s ===\n", title)
}

// WriteDescription prints the dataset overview sections.
func WriteDescription(w io.Writer, d Description) error {
	b := &strings.Builder{}

	section(b, "INFORMACIÓN DEL DATASET")
	fmt.Fprintf(b, "Dimensiones: (%d, %d)\n\nTipos de datos:\n", d.Rows, d.Cols)
	types := newTable(table.Row{"Columna", "Tipo"})
	for _, c := range d.Columns {
		types.AppendRow(table.Row{c.Name, c.DType})
	}
	b.WriteString(types.Render() + "\n")

	section(b, "ESTADÍSTICAS DESCRIPTIVAS")
	b.WriteString(describeTable(d.Stats) + "\n")

	section(b, "VALORES FALTANTES")
	missing := newTable(table.Row{"Columna", "Faltantes"})
	for _, m := range d.Missing {
		missing.AppendRow(table.Row{m.Name, strconv.Itoa(m.Count)})
	}
	b.WriteString(missing.Render() + "\n")

	section(b, "PRIMERAS FILAS")
	header := table.Row{""}
	for _, c := range d.Columns {
		header = append(header, c.Name)
	}
	head := newTable(header)
	for i, row := range d.Head {
		r := table.Row{strconv.Itoa(i)}
		for _, cell := range row {
			r = append(r, cell)
		}
		head.AppendRow(r)
	}
	b.WriteString(head.Render() + "\n")

	section(b, "COLUMNAS")
	names := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		names[i] = strconv.Quote(c.Name)
	}
	b.WriteString("[" + strings.Join(names, ", ") + "]\n")

	section(b, "CORRELACIÓN")
	b.WriteString(correlationTable(d.Correlation) + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func describeTable(columns []stats.ColumnStats) string {
	header := table.Row{""}
	for _, c := range columns {
		header = append(header, c.Name)
	}
	t := newTable(header)

	rows := []struct {
		name  string
		value func(stats.NumberStats) float64
	}{
		{"count", func(s stats.NumberStats) float64 { return float64(s.Count) }},
		{"mean", func(s stats.NumberStats) float64 { return s.Mean }},
		{"std", func(s stats.NumberStats) float64 { return s.Std }},
		{"min", func(s stats.NumberStats) float64 { return s.Min }},
		{"25%", func(s stats.NumberStats) float64 { return s.Q1 }},
		{"50%", func(s stats.NumberStats) float64 { return s.Median }},
		{"75%", func(s stats.NumberStats) float64 { return s.Q3 }},
		{"max", func(s stats.NumberStats) float64 { return s.Max }},
	}
	for _, row := range rows {
		r := table.Row{row.name}
		for _, c := range columns {
			r = append(r, FormatNumber(row.value(c.NumberStats), 4))
		}
		t.AppendRow(r)
	}
	return t.Render()
}

func correlationTable(m stats.Matrix) string {
	header := table.Row{""}
	for _, name := range m.Columns {
		header = append(header, name)
	}
	t := newTable(header)
	for i, name := range m.Columns {
		r := table.Row{name}
		for j := range m.Columns {
			r = append(r, FormatNumber(m.Values[i][j], 4))
		}
		t.AppendRow(r)
	}
	return t.Render()
}

// WriteSaved confirms that an image was written.
func WriteSaved(w io.Writer, what, path string) error {
	_, err := fmt.Fprintf(w, "✓ %s guardado como '%s'\n", what, path)
	return err
}

// WriteSummary prints the executive summary that closes the charts procedure.
func WriteSummary(w io.Writer, platforms []models.PlatformSummary, campaigns []models.CampaignSummary, audiences []models.AudienceSummary) error {
	b := &strings.Builder{}
	rule := strings.Repeat("=", 60)
	fmt.Fprintf(b, "\n%s\nRESUMEN EJECUTIVO DEL ANÁLISIS\n%s\n", rule, rule)

	b.WriteString("\n📊 RENDIMIENTO POR PLATAFORMA:\n")
	t := newTable(table.Row{"plataforma", "revenue_generado", "costo_total", "conversiones", "roas", "conversion_rate"})
	for _, p := range platforms {
		t.AppendRow(table.Row{p.Platform, money(p.Revenue), money(p.Cost), money(p.Conversions), money(p.ROAS), money(p.ConversionRate)})
	}
	b.WriteString(t.Render() + "\n")

	b.WriteString("\n📊 RENDIMIENTO POR TIPO DE CAMPAÑA:\n")
	t = newTable(table.Row{"tipo_campana", "revenue_generado", "costo_total", "conversiones", "roi", "roas"})
	for _, c := range campaigns {
		t.AppendRow(table.Row{c.CampaignType, money(c.Revenue), money(c.Cost), money(c.Conversions), money(c.ROI), money(c.ROAS)})
	}
	b.WriteString(t.Render() + "\n")

	b.WriteString("\n📊 AUDIENCIA MÁS EFECTIVA:\n")
	t = newTable(table.Row{"audiencia_objetivo", "conversion_rate", "engagement_rate", "cpc", "conversiones"})
	for _, a := range audiences {
		t.AppendRow(table.Row{a.Audience, money(a.ConversionRate), money(a.EngagementRate), money(a.CPC), money(a.Conversions)})
	}
	b.WriteString(t.Render() + "\n")

	b.WriteString("\n✓ Análisis completado exitosamente\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func money(v float64) string {
	return FormatNumber(v, 2)
}
