package events

import (
	"context"
	"log/slog"

	greptime "github.com/GreptimeTeam/greptimedb-ingester-go"
	ingesterContext "github.com/GreptimeTeam/greptimedb-ingester-go/context"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table/types"
)

// GreptimeWriter writes dispatch events to GreptimeDB via the ingester
// client, for after-the-fact inspection of trigger timing.
type GreptimeWriter struct {
	client greptime.Client
	db     string
	table  string
	log    *slog.Logger
}

// NewGreptimeWriter creates a new GreptimeDB writer and auto-creates the
// table if needed.
func NewGreptimeWriter(endpoint, database string, log *slog.Logger) (*GreptimeWriter, error) {
	ctx := ingesterContext.NewContext(context.Background())
	client, err := greptime.NewClient(ctx, &greptime.Config{
		Endpoint: endpoint,
	})
	if err != nil {
		return nil, err
	}

	ddl := `
CREATE TABLE IF NOT EXISTS ` + TableName + ` (
  subarray_id STRING TAG,
  run_id STRING TAG,
  operation STRING TAG,
  antenna STRING TAG,
  requested DOUBLE,
  actual DOUBLE,
  on_frac DOUBLE,
  cycle_len DOUBLE,
  status STRING,
  ts TIMESTAMP TIME INDEX
) WITH (ttl='90d')
`
	if _, err := client.SQL(ctx, ddl); err != nil {
		return nil, err
	}

	return &GreptimeWriter{client: client, db: database, table: TableName, log: log}, nil
}

// Write inserts a single event row.
func (w *GreptimeWriter) Write(row Row) error {
	return w.WriteBatch([]Row{row})
}

// WriteBatch inserts multiple event rows.
func (w *GreptimeWriter) WriteBatch(rows []Row) error {
	if len(rows) == 0 {
		return nil
	}

	ctx := ingesterContext.NewContext(context.Background())

	tbl := table.New(w.table)
	tbl.AddTagColumn("subarray_id", types.StringType, 0)
	tbl.AddTagColumn("run_id", types.StringType, 0)
	tbl.AddTagColumn("operation", types.StringType, 0)
	tbl.AddTagColumn("antenna", types.StringType, 0)
	tbl.AddFieldColumn("requested", types.Float64Type)
	tbl.AddFieldColumn("actual", types.Float64Type)
	tbl.AddFieldColumn("on_frac", types.Float64Type)
	tbl.AddFieldColumn("cycle_len", types.Float64Type)
	tbl.AddFieldColumn("status", types.StringType)
	tbl.SetTimeIndex("ts", types.TimestampType)

	for _, r := range rows {
		tbl.AppendTagValue("subarray_id", r.SubarrayID)
		tbl.AppendTagValue("run_id", r.RunID)
		tbl.AppendTagValue("operation", r.Operation)
		tbl.AppendTagValue("antenna", r.Antenna)
		tbl.AppendFieldValue("requested", r.Requested)
		tbl.AppendFieldValue("actual", r.Actual)
		tbl.AppendFieldValue("on_frac", r.OnFrac)
		tbl.AppendFieldValue("cycle_len", r.CycleLen)
		tbl.AppendFieldValue("status", r.Status)
		tbl.AppendTimeIndex(r.Timestamp)
	}

	if err := w.client.Write(ctx, w.db, []*table.Table{tbl}); err != nil {
		w.log.Error("greptime write failed", "rows", len(rows), "err", err)
		return err
	}
	w.log.Debug("wrote dispatch events", "rows", len(rows))
	return nil
}
