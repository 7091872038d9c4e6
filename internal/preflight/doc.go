// Package preflight provides readiness checks for the catalog tool and the
// filesystem paths a conversion depends on.
//
// These checks run in two contexts:
//   - convert.Run calls RunAll before touching the output and stops on the
//     first failed check so a doomed run never creates a partial database.
//   - The CLI "rdbsql check" command prints every result as a table.
package preflight
