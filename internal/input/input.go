// Package input turns raw terminal bytes into per-frame key and mouse presses.
package input

import (
	"bufio"
	"strconv"
	"strings"
)

// Click is a mouse button press at a 1-based terminal position.
type Click struct {
	Col, Row int
}

// Input represents the keys pressed since the previous frame.
type Input struct {
	Quit   bool
	Left   bool // a, A, left arrow
	Right  bool // l, L, right arrow
	Up     bool
	Down   bool
	Space  bool
	Enter  bool
	Escape bool
	Back   bool // b, B
	Reset  bool // r, R
	Help   bool // h, H
	Number int  // last digit pressed, -1 if none
	Clicks []Click

	Pressed []byte // every byte read this frame
	Closed  bool   // the reader hit EOF or an error
}

// Stream delivers input bytes via a channel.
type Stream struct {
	ch     chan byte
	closed bool
	parser Parser
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 256)}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// drain collects every byte currently available without blocking.
func (s *Stream) drain() []byte {
	var buf []byte
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				return buf
			}
			buf = append(buf, b)
		default:
			return buf
		}
	}
}

// ResetKeyInput discards any buffered bytes, e.g. after a screen change.
func ResetKeyInput(s *Stream) {
	if s != nil {
		s.drain()
		s.parser.pending = nil
	}
}

// ReadInput drains all available bytes from the stream (non-blocking).
func ReadInput(s *Stream) Input {
	buf := s.drain()
	in := s.parser.feed(buf, len(buf) == 0 || s.closed)
	in.Closed = s.closed
	return in
}

// maxPending bounds a held escape sequence; longer tails are parsed as keys.
const maxPending = 32

// Parser decodes input across frames. A frame that ends inside an escape
// sequence keeps the tail until the next frame, so a click or arrow key split
// between two drains is not read as Escape.
type Parser struct {
	pending []byte
}

// Feed decodes buf after any tail held from the previous call. An escape
// sequence still incomplete at the end of buf is held back. A call with no new
// bytes flushes the held tail, so a lone Escape is reported one frame late.
func (p *Parser) Feed(buf []byte) Input {
	return p.feed(buf, len(buf) == 0)
}

func (p *Parser) feed(buf []byte, final bool) Input {
	data := buf
	if len(p.pending) > 0 {
		data = append(p.pending, buf...)
		p.pending = nil
	}
	in, rest := parse(data, final)
	if len(rest) > 0 {
		p.pending = append([]byte(nil), rest...)
	}
	in.Pressed = buf
	return in
}

// Parse decodes a complete frame's worth of bytes, including arrow-key and
// SGR mouse escape sequences. A trailing partial sequence is read as keys.
func Parse(buf []byte) Input {
	in, _ := parse(buf, true)
	return in
}

// parse decodes data. Unless final, it stops at a trailing incomplete escape
// sequence and returns it as rest.
func parse(data []byte, final bool) (in Input, rest []byte) {
	in = Input{Number: -1, Pressed: data}
	buf := data

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && !final && incompleteEscape(buf[i:]) {
			return in, buf[i:]
		}

		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'A':
				in.Up = true
				i += 2
				continue
			case 'B':
				in.Down = true
				i += 2
				continue
			case 'C':
				in.Right = true
				i += 2
				continue
			case 'D':
				in.Left = true
				i += 2
				continue
			case '<':
				if click, n, ok := parseSGRMouse(buf[i+3:]); ok {
					if click != nil {
						in.Clicks = append(in.Clicks, *click)
					}
					i += 2 + n
					continue
				}
			}
		}

		applyByte(&in, b)
	}
	return in, nil
}

// incompleteEscape reports whether seq, starting at ESC, is a prefix of an
// arrow-key or SGR mouse sequence that more bytes could still complete.
func incompleteEscape(seq []byte) bool {
	if len(seq) >= maxPending {
		return false
	}
	if len(seq) == 1 {
		return true
	}
	if seq[1] != '[' {
		return false
	}
	if len(seq) == 2 {
		return true
	}
	if seq[2] != '<' {
		return false
	}
	for _, b := range seq[3:] {
		if (b < '0' || b > '9') && b != ';' {
			return false
		}
	}
	return true
}

// parseSGRMouse decodes "Cb;Cx;CyM" (press) or "...m" (release) following
// "ESC [ <". It returns the click for a left-button press, the number of bytes
// consumed and whether a complete sequence was found.
func parseSGRMouse(buf []byte) (*Click, int, bool) {
	end := -1
	for j, b := range buf {
		if b == 'M' || b == 'm' {
			end = j
			break
		}
		if (b < '0' || b > '9') && b != ';' {
			return nil, 0, false
		}
	}
	if end < 0 {
		return nil, 0, false
	}

	parts := strings.Split(string(buf[:end]), ";")
	if len(parts) != 3 {
		return nil, end + 1, true
	}
	button, err1 := strconv.Atoi(parts[0])
	col, err2 := strconv.Atoi(parts[1])
	row, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return nil, end + 1, true
	}
	// Left button press only; ignore releases, drags and wheel events.
	if buf[end] != 'M' || button&^0x1C != 0 {
		return nil, end + 1, true
	}
	return &Click{Col: col, Row: row}, end + 1, true
}

func applyByte(in *Input, b byte) {
	switch b {
	case 'q', 'Q', 0x03: // ctrl+c
		in.Quit = true
	case 'a', 'A':
		in.Left = true
	case 'l', 'L':
		in.Right = true
	case 'w', 'W', 'k', 'K':
		in.Up = true
	case 's', 'S', 'j', 'J':
		in.Down = true
	case ' ':
		in.Space = true
	case '\n', '\r':
		in.Enter = true
	case '\x1b':
		in.Escape = true
	case 'b', 'B', '\x7f', '\b':
		in.Back = true
	case 'r', 'R':
		in.Reset = true
	case 'h', 'H', '?':
		in.Help = true
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		in.Number = int(b - '0')
	}
}
