// Package sql embeds the audit schema migrations and the queries run
// against it.
package sql

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS

//go:embed queries/insert_run.sql
var InsertRun string

//go:embed queries/finish_run.sql
var FinishRun string

//go:embed queries/update_run_status.sql
var UpdateRunStatus string

//go:embed queries/insert_column_stat.sql
var InsertColumnStat string

//go:embed queries/delete_run_problems.sql
var DeleteRunProblems string

//go:embed queries/lookup_runs_by_sha.sql
var LookupRunsBySHA string

//go:embed queries/list_runs.sql
var ListRuns string
