// Package logtail reads the tail of the client log for the in-app activity
// view.
//
// The client logs with log/slog's text handler, one record per line:
//
//	time=2025-12-26T10:00:00.100+01:00 level=INFO msg="menu refreshed" categories=6 items=39
//
// Read returns the last N raw lines using a sliding window, so memory stays
// bounded by N regardless of file size. A missing log file is not an error;
// the activity view simply starts empty.
//
// Tail parses those lines into Entry values. Quoted values are unquoted with
// strconv, so messages containing spaces or escaped quotes survive intact.
// Lines that do not look like key=value records are kept verbatim in Raw and
// Msg.
package logtail
