package render

import (
	"strconv"
	"strings"
	"time"

	"github.com/fazai/fazai-dash/input"
	"github.com/fazai/fazai-dash/provider"
	"github.com/fazai/fazai-dash/stats"
	"github.com/fazai/fazai-dash/terminal"
	"github.com/fazai/fazai-dash/terminal/tui"
	"github.com/fazai/fazai-dash/view"
)

// NoData is shown in place of a panel whose provider has not published yet
const NoData = "no data"

// maxSourceWidth caps the log source shown in the Logs card title; long paths keep their tail
const maxSourceWidth = 40

// Options carries the inputs that are not part of the view state
type Options struct {
	Theme *tui.Theme   // nil selects tui.DefaultTheme
	Hints []input.Hint // Footer entries, in display order
	Stats []stats.Entry
	Now   time.Time // Header clock; zero hides it
}

func (o Options) theme() *tui.Theme {
	if o.Theme != nil {
		return o.Theme
	}
	return &tui.DefaultTheme
}

// Render draws a complete frame. It reads st and snap and never changes them.
func Render(st view.State, rg Regions, snap provider.Snapshot, opts Options) *Frame {
	th := opts.theme()
	f := NewFrame(rg.Screen.W, rg.Screen.H, th.Bg)
	f.Regions = rg

	drawHeader(f.Region(rg.Header), st.Panel, opts.Now, th)
	drawBody(f.Region(rg.Body), st, snap, opts, th)
	drawFooter(f.Region(rg.Footer), opts.Hints, th)
	return f
}

// PanelExtent reports the active panel's content length and visible height,
// the bounds scroll commands are applied against
func PanelExtent(st view.State, rg Regions, snap provider.Snapshot, opts Options) view.Extent {
	p := buildPanel(st.Panel, snap, opts, opts.theme())
	return view.Extent{Lines: len(p.rows), Page: rg.Content().H}
}

func drawHeader(r tui.Region, active view.Panel, now time.Time, th *tui.Theme) {
	if r.Empty() {
		return
	}
	r.Fill(th.HeaderBg)
	inner := r
	if r.H >= HeaderHeight {
		r.Box(tui.LineRounded, th.Border)
		inner = r.Inset(1)
	}

	x := inner.Text(1, 0, title, th.Banner, th.HeaderBg, terminal.AttrBold) + 3

	titles := make([]string, len(view.Panels))
	for i, p := range view.Panels {
		titles[i] = p.String()
	}
	opts := tui.DefaultTabBarOpts()
	opts.ActiveStyle = tui.Style{Fg: th.TabFg, Bg: th.TabBg, Attr: terminal.AttrBold}
	opts.InactiveStyle = tui.Style{Fg: th.HeaderFg, Bg: th.HeaderBg}
	inner.TabBar(x, 0, titles, int(active), opts)

	if !now.IsZero() {
		clock := now.Format("15:04:05")
		if inner.W-tui.Width(clock)-1 > x+tui.TabBarWidth(titles, opts) {
			inner.TextRight(0, clock+" ", th.StatusFg, th.HeaderBg, terminal.AttrNone)
		}
	}
}

func drawFooter(r tui.Region, hints []input.Hint, th *tui.Theme) {
	if r.Empty() {
		return
	}
	inner := r.Card("keys", tui.LineRounded, th.Border)

	x := 1
	for _, h := range hints {
		entry := "[" + h.Keys + "] " + h.Label
		if x+tui.Width(entry) > inner.W {
			break
		}
		inner.Text(x, 0, "["+h.Keys+"]", th.KeyFg, terminal.RGB{}, terminal.AttrBold)
		inner.Text(x+tui.Width(h.Keys)+3, 0, h.Label, th.HintFg, terminal.RGB{}, terminal.AttrNone)
		x += tui.Width(entry) + 2
	}
}

func drawBody(r tui.Region, st view.State, snap provider.Snapshot, opts Options, th *tui.Theme) {
	if r.Empty() {
		return
	}
	p := buildPanel(st.Panel, snap, opts, th)
	content := r.Card(p.title, tui.LineRounded, th.Border)
	if content.Empty() {
		return
	}

	if len(p.rows) == 0 {
		msg := p.placeholder
		if msg == "" {
			msg = NoData
		}
		content.TextCenter(content.H/2, tui.Truncate(msg, content.W), th.StatusFg, terminal.RGB{}, terminal.AttrDim)
		return
	}

	// Offsets past the last full page show the last page
	visible := content.H
	start := tui.ClampScroll(st.Offset(st.Panel), visible, len(p.rows))
	for y := 0; y < visible && start+y < len(p.rows); y++ {
		p.rows[start+y].draw(content, y, p.keyW, th)
	}

	if len(p.rows) > visible && content.H < r.H {
		track := r.Sub(r.W-1, 1, 1, r.H-2)
		tui.ScrollBar(track, 0, start, visible, len(p.rows), th.Border)
		tui.ScrollIndicator(r.Sub(1, r.H-1, r.W-3, 1), 0, start, visible, len(p.rows), th.HintFg)
	}
}

// row is one content line of a panel
type row struct {
	key    string // Drawn as key/value when set
	text   string
	style  tui.Style
	metric *provider.Metric
}

func (rw row) draw(r tui.Region, y, keyW int, th *tui.Theme) {
	switch {
	case rw.metric != nil:
		drawMetric(r, y, *rw.metric, keyW, th)
	case rw.key != "":
		r.KeyValue(y, rw.key, rw.text, keyW, tui.Style{Fg: th.KeyFg}, rw.style, ':')
	default:
		r.TextStyled(0, y, rw.text, rw.style)
	}
}

const (
	metricValueW = 12
	gaugeW       = 18
)

func drawMetric(r tui.Region, y int, m provider.Metric, keyW int, th *tui.Theme) {
	x := r.Text(0, y, tui.PadLeft(tui.Truncate(m.Name, keyW), keyW), th.KeyFg, terminal.RGB{}, terminal.AttrNone)
	x += 2
	x += r.Text(x, y, tui.PadRight(tui.Truncate(m.Value, metricValueW), metricValueW), th.Fg, terminal.RGB{}, terminal.AttrBold)
	x++

	if m.Ratio >= 0 && x+gaugeW < r.W {
		fg := th.Healthy
		switch {
		case m.Ratio >= 0.9:
			fg = th.Unhealthy
		case m.Ratio >= 0.7:
			fg = th.Warning
		}
		r.Gauge(x, y, gaugeW, m.Ratio, fg, terminal.RGB{})
		x += gaugeW + 1
	}

	if w := r.W - x; w > 0 && len(m.History) > 0 {
		r.Sparkline(x, y, w, m.History, tui.SparklineOpts{Style: tui.Style{Fg: th.Spark}})
	}
}

type panel struct {
	title       string
	rows        []row
	keyW        int
	placeholder string // Shown when rows is empty
}

func buildPanel(p view.Panel, snap provider.Snapshot, opts Options, th *tui.Theme) panel {
	switch p {
	case view.PanelLogs:
		return logsPanel(snap.Logs, th)
	case view.PanelStatus:
		return statusPanel(snap.Status, th)
	case view.PanelMetrics:
		return metricsPanel(snap.Metrics, th)
	default:
		return homePanel(snap, opts.Stats, th)
	}
}

func homePanel(snap provider.Snapshot, entries []stats.Entry, th *tui.Theme) panel {
	p := panel{title: title, keyW: 10}
	for _, line := range banner {
		p.rows = append(p.rows, row{text: line, style: tui.Style{Fg: th.Banner, Attr: terminal.AttrBold}})
	}
	p.rows = append(p.rows,
		row{text: subtitle, style: tui.Style{Fg: th.StatusFg, Attr: terminal.AttrDim}},
		row{},
		summaryLogs(snap.Logs, th),
		summaryStatus(snap.Status, th),
		summaryMetrics(snap.Metrics, th),
	)

	if len(entries) > 0 {
		p.rows = append(p.rows, row{}, row{text: "session", style: tui.Style{Fg: th.Title, Attr: terminal.AttrBold}})
		for _, e := range entries {
			p.rows = append(p.rows, row{key: e.Key, text: e.Value, style: tui.Style{Fg: th.Fg}})
		}
	}
	return p
}

func summaryLogs(s *provider.LogSnapshot, th *tui.Theme) row {
	r := row{key: "logs", style: tui.Style{Fg: th.Fg}}
	switch {
	case s == nil:
		r.text, r.style.Fg = NoData, th.StatusFg
	case s.Err != "":
		r.text, r.style.Fg = s.Err, th.Warning
	default:
		r.text = plural(len(s.Lines), "line") + " from " + s.Source
	}
	return r
}

func summaryStatus(s *provider.StatusSnapshot, th *tui.Theme) row {
	r := row{key: "status"}
	if s == nil {
		r.text, r.style.Fg = NoData, th.StatusFg
		return r
	}
	healthy := 0
	for _, f := range s.Facts {
		if f.Healthy {
			healthy++
		}
	}
	r.text = strconv.Itoa(healthy) + "/" + strconv.Itoa(len(s.Facts)) + " checks healthy"
	r.style.Fg = th.Healthy
	if healthy < len(s.Facts) {
		r.style.Fg = th.Unhealthy
	}
	return r
}

func summaryMetrics(s *provider.MetricsSnapshot, th *tui.Theme) row {
	r := row{key: "metrics", style: tui.Style{Fg: th.Fg}}
	switch {
	case s == nil:
		r.text, r.style.Fg = NoData, th.StatusFg
	case len(s.Metrics) == 0 && s.Err != "":
		r.text, r.style.Fg = s.Err, th.Warning
	default:
		parts := make([]string, 0, 2)
		for _, m := range s.Metrics {
			if m.Name == provider.MetricCPU || m.Name == provider.MetricMemory {
				parts = append(parts, m.Name+" "+m.Value)
			}
		}
		if len(parts) == 0 {
			parts = append(parts, plural(len(s.Metrics), "metric"))
		}
		r.text = strings.Join(parts, "  ")
	}
	return r
}

func logsPanel(s *provider.LogSnapshot, th *tui.Theme) panel {
	p := panel{title: "Logs"}
	if s == nil {
		return p
	}
	if s.Source != "" {
		p.title = "Logs " + tui.TruncateLeft(s.Source, maxSourceWidth)
	}
	if s.Err != "" {
		p.rows = append(p.rows, row{text: s.Err, style: tui.Style{Fg: th.Warning, Attr: terminal.AttrBold}})
	}
	for _, line := range s.Lines {
		p.rows = append(p.rows, row{text: line, style: tui.Style{Fg: logLineColor(line, th)}})
	}
	if len(p.rows) == 0 {
		p.placeholder = "log is empty"
	}
	return p
}

func logLineColor(line string, th *tui.Theme) terminal.RGB {
	switch {
	case strings.Contains(line, "ERROR"), strings.Contains(line, "FATAL"):
		return th.Unhealthy
	case strings.Contains(line, "WARN"):
		return th.Warning
	case strings.Contains(line, "DEBUG"):
		return th.StatusFg
	}
	return th.Fg
}

func statusPanel(s *provider.StatusSnapshot, th *tui.Theme) panel {
	p := panel{title: "Status"}
	if s == nil {
		return p
	}
	for _, f := range s.Facts {
		p.keyW = max(p.keyW, tui.Width(f.Key))
		fg := th.Healthy
		mark := "✓ "
		if !f.Healthy {
			fg = th.Unhealthy
			mark = "✗ "
		}
		p.rows = append(p.rows, row{key: f.Key, text: mark + f.Value, style: tui.Style{Fg: fg}})
	}
	if len(p.rows) == 0 {
		p.placeholder = "no checks configured"
	}
	return p
}

func metricsPanel(s *provider.MetricsSnapshot, th *tui.Theme) panel {
	p := panel{title: "Metrics"}
	if s == nil {
		return p
	}
	if s.Err != "" {
		p.rows = append(p.rows, row{text: s.Err, style: tui.Style{Fg: th.Warning}})
	}
	for i := range s.Metrics {
		p.keyW = max(p.keyW, tui.Width(s.Metrics[i].Name))
		p.rows = append(p.rows, row{metric: &s.Metrics[i]})
	}
	if len(p.rows) == 0 {
		p.placeholder = NoData
	}
	return p
}

func plural(n int, noun string) string {
	s := strconv.Itoa(n) + " " + noun
	if n != 1 {
		s += "s"
	}
	return s
}
