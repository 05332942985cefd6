package export

import (
	"reflect"

	"github.com/sarchlab/akita/v4/datarecording"
)

// A Recorder persists experiment rows into a SQLite database through the
// Akita data-recording backend. The backend buffers rows and registers an
// exit hook that flushes them; call Flush to force a write earlier.
type Recorder struct {
	backend datarecording.DataRecorder
}

// NewRecorder creates a recorder writing to path. The backend appends the
// ".sqlite3" extension and refuses to overwrite an existing database.
func NewRecorder(path string) *Recorder {
	return &Recorder{backend: datarecording.NewDataRecorder(path)}
}

// RecordTable creates a table shaped like the row structs and inserts every
// row. Rows must be a slice of flat structs with scalar or string fields.
func (r *Recorder) RecordTable(name string, rows any) {
	v := reflect.ValueOf(rows)

	sample := reflect.Zero(v.Type().Elem()).Interface()
	r.backend.CreateTable(name, sample)

	for i := 0; i < v.Len(); i++ {
		r.backend.InsertData(name, v.Index(i).Interface())
	}
}

// Tables lists the tables recorded so far.
func (r *Recorder) Tables() []string {
	return r.backend.ListTables()
}

// Flush writes all buffered rows to the database.
func (r *Recorder) Flush() {
	r.backend.Flush()
}
