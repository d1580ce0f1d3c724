package dashboard

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/sirupsen/logrus"

	"github.com/frostdev-ops/sales-insights-go/internal/core/dataset"
	"github.com/frostdev-ops/sales-insights-go/internal/core/insights"
)

const chartHeight = "360px"

// Renderer builds the server-rendered overview dashboard from whatever
// dimensions the current view carries. Charts for absent columns are simply
// left off the page.
type Renderer struct {
	engine *insights.Engine
	logger *logrus.Logger
	title  string
	theme  string
}

// NewRenderer creates a dashboard renderer. An empty theme falls back to
// Westeros.
func NewRenderer(engine *insights.Engine, logger *logrus.Logger, title, theme string) *Renderer {
	if theme == "" {
		theme = types.ThemeWesteros
	}
	return &Renderer{engine: engine, logger: logger, title: title, theme: theme}
}

// RenderOverview writes the dashboard HTML for a view.
func (r *Renderer) RenderOverview(w io.Writer, v *dataset.View) error {
	page := components.NewPage()
	page.PageTitle = r.title
	page.SetLayout(components.PageFlexLayout)

	rendered := 0
	if chart := r.categoryRevenueChart(v); chart != nil {
		page.AddCharts(chart)
		rendered++
	}
	if chart := r.dailyTrendChart(v); chart != nil {
		page.AddCharts(chart)
		rendered++
	}
	if chart := r.statusChart(v); chart != nil {
		page.AddCharts(chart)
		rendered++
	}
	if chart := r.topStatesChart(v); chart != nil {
		page.AddCharts(chart)
		rendered++
	}
	if chart := r.fulfillmentChart(v); chart != nil {
		page.AddCharts(chart)
		rendered++
	}

	r.logger.WithFields(logrus.Fields{
		"charts": rendered,
		"rows":   v.Len(),
	}).Debug("Dashboard rendered")

	return page.Render(w)
}

func (r *Renderer) categoryRevenueChart(v *dataset.View) *charts.Bar {
	analysis := r.engine.CategoryAnalysis(v)
	rows, ok := analysis["category_revenue"].([]insights.CategoryRevenueRow)
	if !ok || len(rows) == 0 {
		return nil
	}
	if len(rows) > 10 {
		rows = rows[:10]
	}

	labels := make([]string, len(rows))
	data := make([]opts.BarData, len(rows))
	for i, row := range rows {
		labels[i] = row.Category
		data[i] = opts.BarData{Value: float64(row.TotalRevenue)}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(r.globalOptions("Revenue by Category", "Top 10 categories by total revenue")...)
	bar.SetXAxis(labels)
	bar.AddSeries("Total Revenue", data)
	return bar
}

func (r *Renderer) dailyTrendChart(v *dataset.View) *charts.Line {
	trends := r.engine.SalesTrends(v)
	rows, ok := trends["daily_sales"].([]map[string]any)
	if !ok || len(rows) == 0 {
		return nil
	}
	dateCol := v.Capabilities().DateColumn

	labels := make([]string, len(rows))
	data := make([]opts.LineData, len(rows))
	for i, row := range rows {
		labels[i], _ = row[dateCol].(string)
		amount, _ := row["Amount"].(insights.Float)
		data[i] = opts.LineData{Value: float64(amount)}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(r.globalOptions("Daily Sales", "Amount per calendar day")...)
	line.SetXAxis(labels)
	line.AddSeries("Amount", data)
	line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	return line
}

func (r *Renderer) statusChart(v *dataset.View) *charts.Pie {
	if !v.Capabilities().HasStatus {
		return nil
	}
	counts := v.ValueCounts(dataset.ColStatus)
	if len(counts) == 0 {
		return nil
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(r.globalOptions("Order Status", "")...)
	pie.AddSeries("Status", toPieData(counts))
	return pie
}

func (r *Renderer) topStatesChart(v *dataset.View) *charts.Bar {
	if !v.Capabilities().HasState {
		return nil
	}
	counts := v.ValueCounts(dataset.ColShipState)
	if len(counts) == 0 {
		return nil
	}
	if len(counts) > 10 {
		counts = counts[:10]
	}

	labels := make([]string, len(counts))
	data := make([]opts.BarData, len(counts))
	for i, c := range counts {
		labels[i] = c.Value
		data[i] = opts.BarData{Value: c.Count}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(r.globalOptions("Top States", "Order volume by destination state")...)
	bar.SetXAxis(labels)
	bar.AddSeries("Orders", data)
	return bar
}

func (r *Renderer) fulfillmentChart(v *dataset.View) *charts.Pie {
	if !v.Capabilities().HasFulfilment {
		return nil
	}
	counts := v.ValueCounts(dataset.ColFulfilment)
	if len(counts) == 0 {
		return nil
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(r.globalOptions("Fulfillment Split", "")...)
	pie.AddSeries("Fulfilment", toPieData(counts))
	return pie
}

func toPieData(counts []dataset.ValueCount) []opts.PieData {
	data := make([]opts.PieData, len(counts))
	for i, c := range counts {
		data[i] = opts.PieData{Name: c.Value, Value: c.Count}
	}
	return data
}

func (r *Renderer) globalOptions(title, subtitle string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme:  r.theme,
			Width:  "550px",
			Height: chartHeight,
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
}
