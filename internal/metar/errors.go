package metar

import "fmt"

// errorSink accumulates parse errors for a single Parse call. It is created
// by the assembler and handed to each decoder in turn; nothing else holds it.
type errorSink struct {
	messages []string
}

func (s *errorSink) add(msg string) {
	s.messages = append(s.messages, msg)
}

func (s *errorSink) addf(format string, args ...any) {
	s.messages = append(s.messages, fmt.Sprintf(format, args...))
}

// merge appends every message of other with the given prefix.
func (s *errorSink) merge(prefix string, other *errorSink) {
	for _, msg := range other.messages {
		s.messages = append(s.messages, prefix+msg)
	}
}

// freeze returns a copy of the messages that is never nil.
func (s *errorSink) freeze() []string {
	out := make([]string, len(s.messages))
	copy(out, s.messages)
	return out
}
