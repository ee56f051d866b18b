// Package queryfwd forwards Device Attribute and Device Status Report
// queries issued by a floating shell's PTY to the user's terminal, and
// routes the resulting response back to that same PTY instead of letting it
// fall through as ordinary keystrokes.
//
// The user terminal is the only authoritative responder to DA/DSR queries.
// A floating shell's output is consumed by its ScreenModel rather than
// passed straight through, so without this forwarding its queries would
// simply be swallowed and it would hang waiting for a response.
package queryfwd

// Forwarder recognizes DA/DSR query sequences in floating-shell output and,
// once forwarded, remembers which PTY to route the matching response to.
type Forwarder struct {
	armed   bool
	pending int // index of the PTY awaiting a response; meaningless unless armed
}

// Scan inspects data (raw bytes read from a floating PTY) for a recognized
// query sequence. Each recognized sequence found is appended verbatim to
// out, and the forwarder is armed to route the next matching stdin response
// to ptyID. Returns the bytes to write to the user terminal (may be empty).
func (f *Forwarder) Scan(data []byte, ptyID int) []byte {
	var out []byte
	i := 0
	for i < len(data) {
		if seq, n := matchQuery(data[i:]); n > 0 {
			out = append(out, seq...)
			f.armed = true
			f.pending = ptyID
			i += n
			continue
		}
		i++
	}
	return out
}

// RouteResponse checks whether data (raw bytes read from stdin) looks like a
// DA/DSR response while the forwarder is armed. If so it disarms, returns
// the PTY to write data to, and ok is true; the caller must not also treat
// data as ordinary keystrokes. Otherwise ok is false and the forwarder is
// left untouched.
func (f *Forwarder) RouteResponse(data []byte) (ptyID int, ok bool) {
	if !f.armed {
		return 0, false
	}
	if !looksLikeResponse(data) {
		return 0, false
	}
	f.armed = false
	return f.pending, true
}

func looksLikeResponse(data []byte) bool {
	if len(data) < 3 {
		return false
	}
	if data[0] != 0x1b || data[1] != '[' {
		return false
	}
	last := data[len(data)-1]
	return last == 'c' || last == 'n' || last == 'R'
}

// matchQuery reports the length of a recognized query sequence at the start
// of data, or 0 if none matches at that position.
//
// Recognized: Primary DA (ESC[c, ESC[0c), Secondary DA (ESC[>c, ESC[>0c),
// DSR (ESC[5n, ESC[6n).
func matchQuery(data []byte) (seq []byte, n int) {
	if len(data) < 3 || data[0] != 0x1b || data[1] != '[' {
		return nil, 0
	}
	i := 2
	secondary := false
	if i < len(data) && data[i] == '>' {
		secondary = true
		i++
	}
	digitsStart := i
	for i < len(data) && data[i] >= '0' && data[i] <= '9' {
		i++
	}
	if i >= len(data) {
		return nil, 0
	}
	final := data[i]
	params := string(data[digitsStart:i])

	switch {
	case final == 'c' && (params == "" || params == "0"):
		return data[:i+1], i + 1
	case final == 'n' && !secondary && (params == "5" || params == "6"):
		return data[:i+1], i + 1
	default:
		return nil, 0
	}
}
