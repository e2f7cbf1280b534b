package app

import (
	"fmt"
	"strings"
)

// driftAlertEmail renders a reconcile result as a small HTML report.
func driftAlertEmail(result *ReconcileResult) (subject string, body string) {
	subject = fmt.Sprintf("assetgraph: %d node(s) drifted in run %s", len(result.Drift), result.RunID)

	var b strings.Builder
	fmt.Fprintf(&b, "<p>Reconcile run %s checked %d node(s) and found %d drifted.</p>", result.RunID, result.Checked, len(result.Drift))
	b.WriteString(`<table border="1" cellpadding="4">`)
	b.WriteString("<tr><th>node</th><th>cached</th><th>recomputed</th></tr>")
	for _, d := range result.Drift {
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%s</td><td>%s</td></tr>", d.NodeID, d.Cached.String(), d.Recomputed.String())
	}
	b.WriteString("</table>")

	return subject, b.String()
}
