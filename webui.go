package main

// webUIHTML is the single-page UI served at "/". All numbers shown come
// preformatted from /api/compare so the page never formats amounts itself.
const webUIHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Tax Regime Comparator</title>
    <style>
        :root {
            --primary: #2563eb;
            --success: #16a34a;
            --danger: #dc2626;
            --bg: #f8fafc;
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
            line-height: 1.6;
            padding: 1.5rem;
        }
        .container { max-width: 1200px; margin: 0 auto; }
        h1 { font-size: 1.6rem; color: var(--primary); }
        h2 { font-size: 1.15rem; margin-bottom: 0.75rem; }
        .subtitle { color: var(--text-muted); margin-bottom: 1rem; }
        .card {
            background: var(--card-bg);
            border-radius: 8px;
            box-shadow: 0 1px 3px rgba(0,0,0,0.1);
            padding: 1.25rem;
            margin-bottom: 1.25rem;
        }
        .controls { display: flex; flex-wrap: wrap; gap: 0.75rem; align-items: center; }
        .controls input[type=number] { width: 12rem; padding: 0.4rem; border: 1px solid var(--border); border-radius: 4px; }
        .controls input[type=range] { flex: 1; min-width: 200px; }
        .presets { margin-top: 0.75rem; display: flex; flex-wrap: wrap; gap: 0.5rem; }
        button {
            padding: 0.45rem 1rem;
            border: none;
            border-radius: 4px;
            background: var(--primary);
            color: white;
            cursor: pointer;
        }
        button.secondary { background: #e2e8f0; color: var(--text); }
        button:disabled { opacity: 0.6; cursor: wait; }
        .recommendation {
            background-color: #E0F7FA;
            padding: 10px;
            border-radius: 5px;
            text-align: center;
            margin-bottom: 1.25rem;
        }
        .error { color: var(--danger); font-weight: bold; margin-top: 0.75rem; }
        .grid { display: grid; gap: 1rem; grid-template-columns: repeat(2, 1fr); }
        @media (max-width: 768px) { .grid { grid-template-columns: 1fr; } }
        table { width: 100%; border-collapse: collapse; font-size: 0.9rem; }
        th, td { padding: 0.35rem 0.5rem; border-bottom: 1px solid var(--border); text-align: right; }
        th:first-child, td:first-child { text-align: left; }
        tr.total td { font-weight: bold; border-top: 2px solid var(--text); }
        table.regime-a tbody tr { background-color: #F0F8FF; }
        table.regime-b tbody tr { background-color: #FAFAD2; }
        table.savings tbody tr { background-color: #FFFACD; }
        td.negative { color: var(--danger); }
        img.chart { max-width: 100%; }
        .hidden { display: none; }
        .notification { margin-top: 0.5rem; color: var(--text-muted); }
    </style>
</head>
<body>
<div class="container">
    <h1>💰 Tax Regime Comparator</h1>
    <p class="subtitle" id="subtitle">Compare two tax regimes for one annual income.</p>

    <div class="card">
        <div class="controls">
            <label for="income">Annual income</label>
            <input type="number" id="income" min="0" step="50000">
            <input type="range" id="income-slider" min="0" step="50000">
            <button id="calculate">Calculate</button>
            <button id="reset" class="secondary">Reset</button>
        </div>
        <div class="presets" id="presets"></div>
        <div class="error hidden" id="error"></div>
    </div>

    <div id="results" class="hidden">
        <div class="recommendation" id="recommendation"></div>

        <div class="card" id="final-comparison">
            <h2>📊 Final Comparison</h2>
            <ul id="final-list"></ul>
            <div class="controls" style="margin-top: 0.75rem;">
                <button id="export-pdf" class="secondary">Save PDF</button>
                <button id="download-pdf" class="secondary">Download PDF</button>
                <button id="export-csv" class="secondary">Save CSV</button>
                <button id="export-html" class="secondary">Save HTML</button>
            </div>
            <div class="notification" id="notification"></div>
        </div>

        <div class="grid">
            <div class="card">
                <h2 id="breakdown-a-title"></h2>
                <table class="breakdown regime-a" id="breakdown-a"></table>
            </div>
            <div class="card">
                <h2 id="breakdown-b-title"></h2>
                <table class="breakdown regime-b" id="breakdown-b"></table>
            </div>
        </div>

        <div class="grid">
            <div class="card">
                <h2>Tax Comparison</h2>
                <img class="chart" id="comparison-chart" alt="Tax comparison chart">
            </div>
            <div class="card">
                <h2>Tax Trend Analysis</h2>
                <img class="chart" id="trend-chart" alt="Tax trend chart">
            </div>
        </div>

        <div class="card">
            <h2 id="savings-title">Savings per Bracket</h2>
            <table class="savings" id="savings-table"></table>
        </div>
    </div>
</div>

<script>
    let settings = null;
    let requestSeq = 0;
    let lastResult = null;

    const $ = (id) => document.getElementById(id);

    function escapeHTML(s) {
        return String(s).replace(/[&<>"']/g, c => ({'&': '&amp;', '<': '&lt;', '>': '&gt;', '"': '&quot;', "'": '&#39;'}[c]));
    }

    function showError(message) {
        const el = $('error');
        el.textContent = '❌ Error: Invalid income input! ' + (message || '');
        el.classList.remove('hidden');
    }

    function clearError() {
        $('error').classList.add('hidden');
        $('error').textContent = '';
    }

    function setIncome(value) {
        $('income').value = value;
        $('income-slider').value = Math.min(value, settings.max_income);
    }

    async function loadConfig() {
        const resp = await fetch('/api/config');
        settings = await resp.json();

        $('subtitle').textContent = 'Compare ' + settings.regime_a_name + ' vs ' + settings.regime_b_name + '.';
        $('income').max = settings.max_income;
        $('income').step = settings.income_step;
        $('income-slider').max = settings.max_income;
        $('income-slider').step = settings.income_step;
        setIncome(settings.default_income);

        const presets = $('presets');
        presets.innerHTML = '';
        for (const p of settings.presets) {
            const btn = document.createElement('button');
            btn.className = 'secondary';
            btn.textContent = p.label;
            btn.addEventListener('click', () => { setIncome(p.income); runComparison(); });
            presets.appendChild(btn);
        }
    }

    function readIncome() {
        const raw = $('income').value.trim();
        if (raw === '') {
            return null;
        }
        const value = Number(raw);
        if (!Number.isFinite(value) || value < 0) {
            return null;
        }
        return value;
    }

    async function runComparison() {
        const income = readIncome();
        if (income === null) {
            // keep the previous results on screen
            showError();
            return;
        }

        const seq = ++requestSeq;
        $('calculate').disabled = true;
        try {
            const resp = await fetch('/api/compare', {
                method: 'POST',
                headers: {'Content-Type': 'application/json'},
                body: JSON.stringify({income: income})
            });
            const data = await resp.json();

            // Drop responses overtaken by a newer request or a changed input
            if (seq !== requestSeq || readIncome() !== data.income) {
                return;
            }
            if (!data.success) {
                showError(data.error);
                return;
            }
            clearError();
            lastResult = data;
            renderResult(data);
        } catch (err) {
            if (seq === requestSeq) {
                showError(err.message);
            }
        } finally {
            if (seq === requestSeq) {
                $('calculate').disabled = false;
            }
        }
    }

    function renderBreakdown(tableId, titleId, regime) {
        $(titleId).textContent = regime.regime_name + ' Breakdown';
        let html = '<thead><tr><th>Slab Range</th><th>Taxable Amount</th><th>Rate</th><th>Tax</th></tr></thead><tbody>';
        for (const line of regime.breakdown) {
            html += '<tr><td>' + escapeHTML(line.range_label) + '</td><td>' + escapeHTML(line.taxable_display) +
                '</td><td>' + escapeHTML(line.rate_display) + '</td><td>' + escapeHTML(line.tax_display) + '</td></tr>';
        }
        const total = regime.grand_total;
        html += '<tr class="total"><td>Grand Total</td><td>' + escapeHTML(total.taxable_display) +
            '</td><td></td><td>' + escapeHTML(total.tax_display) + '</td></tr></tbody>';
        $(tableId).innerHTML = html;
    }

    function renderResult(data) {
        $('results').classList.remove('hidden');
        $('notification').textContent = '';

        $('recommendation').innerHTML = '<b>💡 Recommendation:</b> ' + escapeHTML(data.recommendation_text) +
            ' | <b>Total Savings:</b> ' + escapeHTML(data.savings_display) + ' (' + escapeHTML(data.savings_percent_display) + ')';

        $('final-list').innerHTML =
            '<li><b>' + escapeHTML(data.regime_a.regime_name) + ' Tax:</b> ' + escapeHTML(data.regime_a.total_tax_display) + '</li>' +
            '<li><b>' + escapeHTML(data.regime_b.regime_name) + ' Tax:</b> ' + escapeHTML(data.regime_b.total_tax_display) + '</li>' +
            '<li><b>Total Savings:</b> ' + escapeHTML(data.savings_display) + ' (' + escapeHTML(data.savings_percent_display) + ' reduction)</li>';

        renderBreakdown('breakdown-a', 'breakdown-a-title', data.regime_a);
        renderBreakdown('breakdown-b', 'breakdown-b-title', data.regime_b);

        const query = '?income=' + encodeURIComponent(data.income);
        $('comparison-chart').src = '/api/chart/comparison.png' + query;
        $('trend-chart').src = '/api/chart/trend.png' + query;

        let html = '<thead><tr><th>Income Bracket</th><th>' + escapeHTML(data.regime_a.regime_id) + ' Tax</th><th>' +
            escapeHTML(data.regime_b.regime_id) + ' Tax</th><th>Savings</th></tr></thead><tbody>';
        for (const p of data.sweep) {
            const cls = p.savings < 0 ? ' class="negative"' : '';
            html += '<tr><td>' + escapeHTML(p.label) + '</td><td>' + escapeHTML(p.tax_a_display) + '</td><td>' +
                escapeHTML(p.tax_b_display) + '</td><td' + cls + '>' + escapeHTML(p.savings_display) + '</td></tr>';
        }
        $('savings-table').innerHTML = html + '</tbody>';
    }

    function resetAll() {
        requestSeq++;
        lastResult = null;
        clearError();
        setIncome(settings.default_income);
        $('results').classList.add('hidden');
        $('calculate').disabled = false;
    }

    async function exportFile(endpoint, label) {
        if (!lastResult) {
            return;
        }
        $('notification').textContent = 'Saving ' + label + '...';
        try {
            const resp = await fetch(endpoint, {
                method: 'POST',
                headers: {'Content-Type': 'application/json'},
                body: JSON.stringify({income: lastResult.income})
            });
            const data = await resp.json();
            $('notification').textContent = data.message;
        } catch (err) {
            $('notification').textContent = 'Export failed: ' + err.message;
        }
    }

    async function downloadPDF() {
        if (!lastResult) {
            return;
        }
        const resp = await fetch('/api/download-pdf', {
            method: 'POST',
            headers: {'Content-Type': 'application/json'},
            body: JSON.stringify({income: lastResult.income})
        });
        if (!resp.ok) {
            $('notification').textContent = 'Download failed: ' + await resp.text();
            return;
        }
        const blob = await resp.blob();
        const a = document.createElement('a');
        a.href = URL.createObjectURL(blob);
        a.download = 'tax-comparison-' + lastResult.calculation_id + '.pdf';
        a.click();
        URL.revokeObjectURL(a.href);
    }

    $('calculate').addEventListener('click', runComparison);
    $('reset').addEventListener('click', resetAll);
    $('income').addEventListener('keydown', (e) => { if (e.key === 'Enter') runComparison(); });
    $('income-slider').addEventListener('input', (e) => { $('income').value = e.target.value; });
    $('income-slider').addEventListener('change', runComparison);
    $('export-pdf').addEventListener('click', () => exportFile('/api/export-pdf', 'PDF'));
    $('export-csv').addEventListener('click', () => exportFile('/api/export-csv', 'CSV'));
    $('export-html').addEventListener('click', () => exportFile('/api/export-html', 'HTML report'));
    $('download-pdf').addEventListener('click', downloadPDF);

    loadConfig().then(runComparison);
</script>
</body>
</html>
`
