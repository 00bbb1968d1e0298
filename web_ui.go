package main

// webUIHTML is the embedded web interface HTML
const webUIHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>KiwiSaver Fund Comparison Calculator</title>
    <style>
        :root {
            --primary: #2563eb;
            --primary-dark: #1d4ed8;
            --success: #16a34a;
            --danger: #dc2626;
            --bg: #f1f5f9;
            --card-bg: #ffffff;
            --text: #1e293b;
            --text-muted: #64748b;
            --border: #e2e8f0;
        }
        * { box-sizing: border-box; margin: 0; padding: 0; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            background: var(--bg);
            color: var(--text);
            line-height: 1.5;
        }
        .layout { display: grid; grid-template-columns: 340px 1fr; min-height: 100vh; }
        @media (max-width: 900px) { .layout { grid-template-columns: 1fr; } }
        aside { background: var(--card-bg); border-right: 1px solid var(--border); padding: 1.5rem; }
        main { padding: 1.5rem; overflow-x: auto; }
        h1 { font-size: 1.25rem; color: var(--primary); margin-bottom: 1rem; }
        h2 { font-size: 1.1rem; margin: 1rem 0 0.75rem; }
        label { display: block; font-size: 0.85rem; font-weight: 600; margin-top: 0.9rem; }
        input[type=number], select {
            width: 100%; padding: 0.45rem; border: 1px solid var(--border); border-radius: 6px; font-size: 0.95rem;
        }
        input[type=range] { width: 100%; }
        .value { float: right; color: var(--primary); font-weight: 600; }
        .hint { font-size: 0.8rem; color: var(--text-muted); }
        .recommend { margin-top: 1rem; padding: 0.6rem; border-radius: 6px; background: var(--bg); font-size: 0.9rem; }
        .recommend b.ok { color: var(--success); }
        .recommend b.missing { color: var(--danger); }
        button {
            margin-top: 1rem; width: 100%; padding: 0.6rem; border: none; border-radius: 6px;
            background: var(--primary); color: #fff; font-weight: 600; cursor: pointer;
        }
        button:hover { background: var(--primary-dark); }
        button.secondary { background: #475569; }
        .card { background: var(--card-bg); border-radius: 8px; box-shadow: 0 1px 3px rgba(0,0,0,0.1); padding: 1.25rem; margin-bottom: 1.25rem; }
        .error { color: var(--danger); margin-top: 0.75rem; font-size: 0.9rem; }
        .invalid { border-color: var(--danger) !important; }
        table { width: 100%; border-collapse: collapse; font-size: 0.85rem; }
        th, td { padding: 0.45rem 0.5rem; text-align: right; border-bottom: 1px solid var(--border); white-space: nowrap; }
        th { background: var(--bg); position: sticky; top: 0; }
        th:first-child, td:first-child { text-align: left; }
        tr.best { background: #dcfce7; }
        td.negative { color: var(--danger); }
        img.chart { width: 100%; height: auto; }
        .muted { color: var(--text-muted); }
        .status { font-size: 0.85rem; margin-top: 0.5rem; color: var(--success); }
    </style>
</head>
<body>
<div class="layout">
    <aside>
        <h1>KiwiSaver Fund Comparison</h1>

        <label for="starting_balance">Starting Balance ($)</label>
        <input type="number" id="starting_balance" min="0" step="100">

        <label for="annual_income">Annual Income ($)</label>
        <input type="number" id="annual_income" min="1000" step="1000">

        <label for="employee_rate">Your Contribution <span class="value" id="employee_rate_v"></span></label>
        <input type="range" id="employee_rate" min="3" max="10" step="1">

        <label for="employer_rate">Employer Contribution <span class="value" id="employer_rate_v"></span></label>
        <input type="range" id="employer_rate" min="3" max="10" step="1">

        <label for="government_contribution">Government Contribution ($/year)</label>
        <input type="number" id="government_contribution" min="0" step="1">

        <label for="investment_years">Investment Period <span class="value" id="investment_years_v"></span></label>
        <input type="range" id="investment_years" min="1" max="40" step="1">

        <div class="recommend" id="recommend"></div>

        <label for="category">Fund Type</label>
        <select id="category"></select>

        <button id="calculate">Calculate</button>
        <button id="export_pdf" class="secondary">Save PDF Report</button>
        <button id="export_csv" class="secondary">Save CSV</button>
        <div class="error" id="error"></div>
        <div class="status" id="status"></div>
    </aside>
    <main>
        <div class="card">
            <img class="chart" id="chart" alt="Growth chart">
            <p class="muted" id="chart_placeholder">Press Calculate to compare funds.</p>
        </div>
        <div class="card">
            <h2 id="table_title">Projected KiwiSaver Balances</h2>
            <div id="table"></div>
        </div>
        <div class="card">
            <h2>Final Balance Ranking</h2>
            <div id="ranking"></div>
        </div>
    </main>
</div>
<script>
const money = new Intl.NumberFormat('en-NZ', { style: 'currency', currency: 'NZD', currencyDisplay: 'narrowSymbol' });
const $ = function(id) { return document.getElementById(id); };
let catalog = null;
let userPickedCategory = false;

function escapeHTML(s) {
    return String(s).replace(/[&<>"']/g, function(c) {
        return { '&': '&amp;', '<': '&lt;', '>': '&gt;', '"': '&quot;', "'": '&#39;' }[c];
    });
}

function inputs() {
    return {
        starting_balance: parseFloat($('starting_balance').value) || 0,
        annual_income: parseFloat($('annual_income').value) || 0,
        employee_rate: parseInt($('employee_rate').value, 10) / 100,
        employer_rate: parseInt($('employer_rate').value, 10) / 100,
        investment_years: parseInt($('investment_years').value, 10),
        government_contribution: parseFloat($('government_contribution').value) || 0,
        category: $('category').value
    };
}

function updateLabels() {
    $('employee_rate_v').textContent = $('employee_rate').value + '%';
    $('employer_rate_v').textContent = $('employer_rate').value + '%';
    $('investment_years_v').textContent = $('investment_years').value + ' years';
}

async function updateRecommendation() {
    const years = $('investment_years').value;
    const resp = await fetch('/api/recommend?years=' + encodeURIComponent(years));
    const data = await resp.json();
    const rec = data.recommendation;
    const cls = rec.in_catalog ? 'ok' : 'missing';
    const note = rec.in_catalog ? '' : ' (not in catalog)';
    $('recommend').innerHTML = 'Recommended for ' + years + ' years: <b class="' + cls + '">' + escapeHTML(rec.category) + note + '</b>';
    if (!userPickedCategory && rec.in_catalog) {
        $('category').value = rec.category;
    }
}

function post(path) {
    return fetch(path, {
        method: 'POST',
        headers: { 'Content-Type': 'application/json' },
        body: JSON.stringify(inputs())
    });
}

function showError(data) {
    document.querySelectorAll('.invalid').forEach(function(el) { el.classList.remove('invalid'); });
    $('error').textContent = data ? data.error || data.message || '' : '';
    if (data && data.fields) {
        data.fields.forEach(function(f) { if ($(f)) { $(f).classList.add('invalid'); } });
    }
}

function renderTable(c) {
    let html = '<table><thead><tr><th>Year</th>';
    c.results.forEach(function(r) { html += '<th>' + escapeHTML(r.fund) + '</th>'; });
    html += '</tr></thead><tbody>';
    c.years.forEach(function(year, i) {
        html += '<tr><td>' + year + '</td>';
        c.results.forEach(function(r) {
            const v = r.balances[i];
            html += '<td' + (v < 0 ? ' class="negative"' : '') + '>' + money.format(v) + '</td>';
        });
        html += '</tr>';
    });
    html += '</tbody></table>';
    $('table').innerHTML = c.years.length ? html : '<p class="muted">No projection years.</p>';
}

function renderRanking(c) {
    if (!c.ranking.length) {
        $('ranking').innerHTML = '<p class="muted">No projection years.</p>';
        return;
    }
    const best = c.ranking[0].final_balance;
    let html = '<table><thead><tr><th>Rank</th><th>Fund</th><th>Final Balance</th><th>Behind Best</th></tr></thead><tbody>';
    c.ranking.forEach(function(r, i) {
        html += '<tr' + (i === 0 ? ' class="best"' : '') + '><td>' + (i + 1) + '</td><td style="text-align:left">' +
            escapeHTML(r.fund) + '</td><td>' + money.format(r.final_balance) + '</td><td>' + money.format(best - r.final_balance) + '</td></tr>';
    });
    html += '</tbody></table>';
    $('ranking').innerHTML = html;
}

async function calculate() {
    $('status').textContent = '';
    const resp = await post('/api/project');
    const data = await resp.json();
    if (!data.success) {
        showError(data);
        return;
    }
    showError(null);
    $('table_title').textContent = data.table_title;
    renderTable(data.comparison);
    renderRanking(data.comparison);

    const chart = await post('/api/chart.png');
    if (chart.ok) {
        const blob = await chart.blob();
        const old = $('chart').src;
        $('chart').src = URL.createObjectURL(blob);
        if (old && old.startsWith('blob:')) { URL.revokeObjectURL(old); }
        $('chart').alt = data.chart_title;
        $('chart_placeholder').style.display = 'none';
    }
}

async function exportFile(path) {
    const resp = await post(path);
    const data = await resp.json();
    if (!data.success) {
        showError(data);
        return;
    }
    showError(null);
    $('status').textContent = data.message;
}

async function init() {
    const [cfgResp, catResp] = await Promise.all([fetch('/api/config'), fetch('/api/catalog')]);
    const cfg = await cfgResp.json();
    catalog = await catResp.json();

    catalog.categories.forEach(function(cat) {
        const opt = document.createElement('option');
        opt.value = cat.name;
        opt.textContent = cat.name + ' (' + cat.funds.length + ' funds)';
        $('category').appendChild(opt);
    });

    const inp = cfg.inputs || {};
    $('starting_balance').value = inp.starting_balance || 0;
    $('annual_income').value = inp.annual_income || 70000;
    $('employee_rate').value = Math.round((inp.employee_rate || 0.03) * 100);
    $('employer_rate').value = Math.round((inp.employer_rate || 0.03) * 100);
    $('investment_years').value = inp.investment_years || 20;
    $('government_contribution').value = inp.government_contribution !== undefined ? inp.government_contribution : 521;

    updateLabels();
    await updateRecommendation();

    ['employee_rate', 'employer_rate'].forEach(function(id) { $(id).addEventListener('input', updateLabels); });
    $('investment_years').addEventListener('input', function() { updateLabels(); updateRecommendation(); });
    $('category').addEventListener('change', function() { userPickedCategory = true; });
    $('calculate').addEventListener('click', calculate);
    $('export_pdf').addEventListener('click', function() { exportFile('/api/export-pdf'); });
    $('export_csv').addEventListener('click', function() { exportFile('/api/export-csv'); });

    calculate();
}

init();
</script>
</body>
</html>
`
