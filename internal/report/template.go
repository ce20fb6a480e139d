package report

// ReportTemplate is the HTML template for the statement analysis report.
// It is embedded as a Go constant with no external file dependencies.
const ReportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<style>
  :root {
    --bg: #ffffff;
    --text: #1a1a2e;
    --muted: #6b7280;
    --border: #e5e7eb;
    --accent: #2563eb;
    --green: #16a34a;
    --red: #dc2626;
    --section-bg: #f8fafc;
  }
  * { margin: 0; padding: 0; box-sizing: border-box; }
  body {
    font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
    color: var(--text);
    background: var(--bg);
    line-height: 1.6;
    max-width: 900px;
    margin: 0 auto;
    padding: 20px;
  }
  h1, h2, h3 { font-weight: 600; }
  h1 { font-size: 1.5rem; margin-bottom: 4px; color: var(--accent); }
  h2 { font-size: 1.2rem; margin: 24px 0 12px; padding-bottom: 6px; border-bottom: 2px solid var(--accent); }
  h3 { font-size: 1rem; margin: 16px 0 8px; }
  p { margin: 6px 0; }
  .muted { color: var(--muted); font-size: 0.85rem; }
  .positive { color: var(--green); }
  .negative { color: var(--red); }

  /* Header */
  .header {
    display: flex;
    justify-content: space-between;
    align-items: flex-start;
    border-bottom: 3px solid var(--accent);
    padding-bottom: 12px;
    margin-bottom: 16px;
  }
  .header-right { text-align: right; }

  /* Fact grid */
  .fact-grid {
    display: grid;
    grid-template-columns: repeat(auto-fill, minmax(160px, 1fr));
    gap: 8px;
    margin: 10px 0 16px;
  }
  .fact-card {
    background: var(--section-bg);
    padding: 8px 12px;
    border-radius: 6px;
    text-align: center;
  }
  .fact-card .label { font-size: 0.75rem; color: var(--muted); text-transform: uppercase; }
  .fact-card .value { font-size: 1.05rem; font-weight: 600; }

  /* Revenue table */
  table { width: 100%; border-collapse: collapse; margin: 8px 0 16px; font-size: 0.9rem; }
  th { background: var(--section-bg); text-align: left; padding: 8px; font-weight: 600; }
  td { padding: 8px; border-bottom: 1px solid var(--border); }
  td.num, th.num { text-align: right; font-variant-numeric: tabular-nums; }

  /* Chart container */
  .chart-container {
    margin: 12px 0;
    overflow-x: auto;
  }
  .chart-container svg { max-width: 100%; height: auto; }

  /* Section */
  .section { margin: 20px 0; }
  .section-summary {
    background: var(--section-bg);
    padding: 12px;
    border-radius: 6px;
    margin: 8px 0;
    font-size: 0.95rem;
  }
  .issues { border-left: 5px solid var(--red); background: #fef2f2; padding: 12px; border-radius: 6px; }
  .issues li { margin-left: 18px; }

  /* Footer */
  .footer {
    margin-top: 30px;
    padding-top: 12px;
    border-top: 2px solid var(--border);
    font-size: 0.8rem;
    color: var(--muted);
    text-align: center;
  }

  @media print {
    body { max-width: 100%; padding: 10px; }
    .section { page-break-inside: avoid; }
  }
</style>
</head>
<body>

<!-- ═══════ HEADER ═══════ -->
<div class="header">
  <div class="header-left">
    <h1>{{.Title}}</h1>
    <p class="muted">{{len .Statements}} statement(s) analysed</p>
  </div>
  <div class="header-right">
    <p class="muted">{{.GeneratedAt}}</p>
    <p class="muted">Run {{.RunID}}</p>
  </div>
</div>

{{if not .Statements}}
<div class="section-summary">No statements with a date column were found.</div>
{{end}}

<!-- ═══════ STATEMENTS ═══════ -->
{{range .Statements}}
<div class="section">
  <h2>{{.Name}}</h2>
  <div class="fact-grid">
    <div class="fact-card"><div class="label">Frequency</div><div class="value">{{.Frequency}}</div></div>
    <div class="fact-card"><div class="label">Total Periods</div><div class="value">{{.TotalPeriods}}</div></div>
    <div class="fact-card"><div class="label">Full Years</div><div class="value">{{.FullYears}}</div></div>
    <div class="fact-card"><div class="label">Fiscal Year End</div><div class="value">{{.FiscalMonth}} ({{.FiscalYearEnd}})</div></div>
    <div class="fact-card"><div class="label">Date Column</div><div class="value">{{.DateColumn}}</div></div>
  </div>

  {{if .ShowRevenue}}
  <h3>Revenue Growth</h3>
  {{if .RevenueFound}}
  <div class="fact-grid">
    <div class="fact-card"><div class="label">Average Growth</div><div class="value">{{.AverageGrowth}}</div></div>
    <div class="fact-card"><div class="label">CAGR</div><div class="value">{{.CAGR}}</div></div>
  </div>
  <div class="chart-container">{{.RevenueChart}}</div>
  <div class="chart-container">{{.GrowthChart}}</div>
  <table>
    <thead><tr><th>Period</th><th class="num">{{.RevenueColumn}}</th><th class="num">Revenue Growth</th></tr></thead>
    <tbody>
    {{range .RevenueRows}}
      <tr><td>{{.Period}}</td><td class="num">{{.Revenue}}</td><td class="num {{.GrowthClass}}">{{.Growth}}</td></tr>
    {{end}}
    </tbody>
  </table>
  {{else}}
  <div class="section-summary">Revenue data is missing from the dataset.</div>
  {{end}}
  {{end}}
</div>
{{end}}

<!-- ═══════ LOAD ISSUES ═══════ -->
{{if .Issues}}
<div class="section">
  <h2>Load Issues</h2>
  <div class="issues">
    <ul>
    {{range .Issues}}
      <li><strong>{{.Statement}}</strong>{{if .Path}} <span class="muted">({{.Path}})</span>{{end}}: {{.Error}}</li>
    {{end}}
    </ul>
  </div>
</div>
{{end}}

<div class="footer">
  Generated by autodcf · {{.GeneratedAt}}
</div>

</body>
</html>
`
