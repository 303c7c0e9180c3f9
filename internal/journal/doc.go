// Package journal keeps a SQLite history of extraction runs.
//
// Every run of the extract or copy command is recorded with its source,
// mode, outcome and the output written per stream, so `subsift history` can
// answer "what did I extract from this file, and when". Schema changes are
// numbered SQL files under migrations/, applied in order on Open.
package journal
