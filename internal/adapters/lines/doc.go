// Package lines turns a byte stream into a lazy sequence of positioned text lines
//
// Lines are split with bufio.ScanLines: the terminator and one preceding \r are
// stripped, a final line without terminator is still yielded, and an empty
// stream yields nothing.
//
// Line length is capped (default 1 MiB, terminator excluded). An oversized line
// is a read failure, not a silent cut.
//
// Read failures are yielded once as a typed SourceRead error and end the
// sequence. Nothing in here aborts the process.
package lines
