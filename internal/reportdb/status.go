package reportdb

import (
	"fmt"
	"io"
	"slices"

	"github.com/huangsam/homebase/schema"
)

// PrintReportStatus writes report store status information to w.
func PrintReportStatus(w io.Writer, status schema.ReportStatus) {
	_, _ = fmt.Fprintf(w, "Report Backend: %s\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	_, _ = fmt.Fprintf(w, "Has Report: %t\n", status.HasReport)
	if status.HasReport {
		_, _ = fmt.Fprintf(w, "Run ID: %s\n", status.RunID)
		_, _ = fmt.Fprintf(w, "Source: %s\n", status.Source)
		_, _ = fmt.Fprintf(w, "Generated: %s\n", status.GeneratedAt.Local().Format("2006-01-02 15:04:05"))
		_, _ = fmt.Fprintf(w, "Days: %d (%d anomalies)\n", status.TotalDays, status.Anomalies)
	}
	_, _ = fmt.Fprintln(w, "Table Sizes:")
	tables := make([]string, 0, len(status.TableSizes))
	for table := range status.TableSizes {
		tables = append(tables, table)
	}
	slices.Sort(tables)
	for _, table := range tables {
		_, _ = fmt.Fprintf(w, "  %s: %d rows\n", table, status.TableSizes[table])
	}
}
