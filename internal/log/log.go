// Package log provides the optional audit log for slides-mcp.
// When enabled with `log.audit: true`, entries are stored in
// ~/.slides-mcp/log/audit.db and record every MCP tool invocation and CLI
// API command. The audit log never stores the bearer token or the prompt
// text sent for generation.
//
// # Fluent API
//
// Use the fluent builder API to construct and write log entries:
//
//	log.Event("mcp:jobs_get", "get").
//		RequestID(id).
//		Status(resp.StatusCode).
//		Detail("job_id", req.JobID).
//		Write(err)
//
// The source parameter follows the format "mcp:{tool}" for MCP tools or
// "api:{command}" for CLI commands. Examples: "mcp:slides_generate",
// "api:themes".
package log

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Entry represents a single audit log entry.
type Entry struct {
	Source    string // e.g., "mcp:slides_generate", "api:job"
	Action    string // verb: generate, get, search
	RequestID string // correlates with the operational log on stderr
	Status    int    // remote HTTP status, 0 when no response was received

	// Timing, unix milliseconds
	Start int64
	End   int64

	Success bool           // whether the remote reported success
	Error   string         // error message if failed
	Detail  map[string]any // additional operation-specific data
}

// Builder constructs a log entry using a fluent API.
// Create with [Event], chain methods to set fields, then call [Builder.Write]
// to write the entry.
type Builder struct {
	entry Entry
}

// Event creates a new log entry builder for an operation.
//
// The source identifies where the operation originated:
//   - MCP tools: "mcp:{tool}" (e.g., "mcp:themes_search")
//   - CLI commands: "api:{command}" (e.g., "api:generate")
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			Source: source,
			Action: action,
			Start:  time.Now().UnixMilli(),
		},
	}
}

// RequestID sets the per-invocation correlation id.
func (b *Builder) RequestID(id string) *Builder {
	b.entry.RequestID = id
	return b
}

// Status sets the HTTP status returned by the remote API.
func (b *Builder) Status(code int) *Builder {
	b.entry.Status = code
	return b
}

// Detail adds a key-value pair to the log entry's detail map.
//
// Use for operation-specific data such as job ids, theme ids or result
// counts. Never pass credentials or user prompt text.
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write writes the log entry, deriving success/failure from err and the
// recorded status. A remote error status without a Go error is logged as a
// failure with the status text.
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().UnixMilli()
	b.entry.Success = err == nil && (b.entry.Status == 0 || (b.entry.Status >= 200 && b.entry.Status < 300))
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// Open initialises the global logger. Safe to call multiple times.
// Errors are returned but callers may choose to ignore them (best-effort logging).
func Open() error {
	mu.Lock()
	defer mu.Unlock()

	if global != nil {
		return nil
	}

	p := dbPath()
	if err := os.MkdirAll(filepath.Dir(p), 0700); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", p)
	if err != nil {
		return err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return err
	}

	global = &Logger{db: db}
	return nil
}

// Enabled reports whether an audit logger is open.
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return global != nil
}

// SetProject sets the project identifier for subsequent log entries.
// The dir should be the absolute working directory of the process.
func SetProject(dir string) {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.project = hash(dir)
	}
}

// Log writes an entry. Safe to call if logger not initialised (no-op).
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}
