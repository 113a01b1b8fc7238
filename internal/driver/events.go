package driver

import "time"

// Stage describes a phase of formatting one file.
type Stage string

const (
	// StageCollect is the file discovery stage (File is empty).
	StageCollect Stage = "collect"
	// StageRead loads and decodes the file.
	StageRead Stage = "read"
	// StageLex is the lexing stage.
	StageLex Stage = "lex"
	// StagePrint is the printing stage.
	StagePrint Stage = "print"
	// StageWrite writes the formatted file back.
	StageWrite Stage = "write"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the file is waiting for a worker.
	StatusQueued Status = "queued"
	// StatusWorking indicates the stage is running.
	StatusWorking Status = "working"
	// StatusDone indicates the file was formatted (and written if needed).
	StatusDone Status = "done"
	// StatusUnchanged indicates the file was already formatted.
	StatusUnchanged Status = "unchanged"
	// StatusError indicates the file failed.
	StatusError Status = "error"
)

// Event reports progress for a file (or for the whole run when File is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. Implementations must be safe for
// concurrent use; workers report from their own goroutines.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// FuncSink adapts a function to ProgressSink.
type FuncSink func(Event)

func (f FuncSink) OnEvent(evt Event) {
	if f != nil {
		f(evt)
	}
}

func emit(sink ProgressSink, evt Event) {
	if sink != nil {
		sink.OnEvent(evt)
	}
}
