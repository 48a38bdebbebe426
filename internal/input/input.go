// Package input turns raw terminal bytes into discrete per-frame commands.
package input

import (
	"bufio"
)

// Command is a player action decoded from one key press.
type Command int

const (
	CmdNone Command = iota
	CmdQuit
	CmdConfirm
	CmdBack
	CmdSettings
	CmdLeft
	CmdRight
	CmdUp
	CmdDown
	CmdSortFruit
	CmdSortTech
	CmdSortDefective
	CmdPowerUpSlow
	CmdPowerUpAutoSort
	CmdPowerUpBonus
	CmdPause
	CmdRestart
	CmdToggleSound
)

var commandNames = [...]string{
	CmdNone:            "none",
	CmdQuit:            "quit",
	CmdConfirm:         "confirm",
	CmdBack:            "back",
	CmdSettings:        "settings",
	CmdLeft:            "left",
	CmdRight:           "right",
	CmdUp:              "up",
	CmdDown:            "down",
	CmdSortFruit:       "sort fruit",
	CmdSortTech:        "sort tech",
	CmdSortDefective:   "sort defective",
	CmdPowerUpSlow:     "slow",
	CmdPowerUpAutoSort: "auto-sort",
	CmdPowerUpBonus:    "bonus",
	CmdPause:           "pause",
	CmdRestart:         "restart",
	CmdToggleSound:     "toggle sound",
}

func (c Command) String() string {
	if c < 0 || int(c) >= len(commandNames) {
		return "unknown"
	}
	return commandNames[c]
}

// Input is everything the player did since the previous frame.
type Input struct {
	Commands []Command
	Active   bool // Any byte arrived, recognised or not
	Closed   bool // The byte source is exhausted
}

// Has reports whether cmd was issued this frame.
func (in Input) Has(cmd Command) bool {
	for _, c := range in.Commands {
		if c == cmd {
			return true
		}
	}
	return false
}

// Stream delivers input bytes via a channel.
type Stream struct {
	ch      chan byte
	closed  bool
	pending []byte // Escape sequence split across frames
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 128)}
	go func() {
		defer close(s.ch)
		for {
			b, err := r.ReadByte()
			if err != nil {
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadInput drains all available bytes from the stream without blocking
// and decodes them.
func ReadInput(s *Stream) Input {
	buf := s.pending
	s.pending = nil
	fresh := 0
drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
			fresh++
		default:
			break drain
		}
	}

	// Hold a sequence cut short by the frame boundary. A lone ESC that
	// gets nothing more by the next frame is decoded as itself.
	if fresh > 0 && !s.closed {
		if n := partialEscape(buf); n > 0 {
			s.pending = append([]byte(nil), buf[len(buf)-n:]...)
			buf = buf[:len(buf)-n]
		}
	}

	return Input{
		Commands: Decode(buf),
		Active:   fresh > 0,
		Closed:   s.closed,
	}
}

func partialEscape(buf []byte) int {
	n := len(buf)
	switch {
	case n >= 1 && buf[n-1] == '\x1b':
		return 1
	case n >= 2 && buf[n-2] == '\x1b' && buf[n-1] == '[':
		return 2
	}
	return 0
}

// Decode maps raw bytes to commands. Arrow keys arrive as CSI escape
// sequences; a lone ESC pauses.
func Decode(buf []byte) []Command {
	var cmds []Command
	for i := 0; i < len(buf); i++ {
		b := buf[i]
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			if cmd := arrow(buf[i+2]); cmd != CmdNone {
				cmds = append(cmds, cmd)
				i += 2
				continue
			}
		}
		if cmd := key(b); cmd != CmdNone {
			cmds = append(cmds, cmd)
		}
	}
	return cmds
}

func arrow(code byte) Command {
	switch code {
	case 'A':
		return CmdUp
	case 'B':
		return CmdDown
	case 'C':
		return CmdRight
	case 'D':
		return CmdLeft
	}
	return CmdNone
}

func key(b byte) Command {
	switch b {
	case 'q', 'Q', '\x03':
		return CmdQuit
	case ' ', '\n', '\r':
		return CmdConfirm
	case 'b', 'B':
		return CmdBack
	case 's', 'S':
		return CmdSettings
	case 'a', 'A', 'h', 'H':
		return CmdLeft
	case 'd', 'D', 'l', 'L':
		return CmdRight
	case 'w', 'W', 'k', 'K':
		return CmdUp
	case 'j', 'J':
		return CmdDown
	case 'f', 'F':
		return CmdSortFruit
	case 't', 'T':
		return CmdSortTech
	case 'x', 'X':
		return CmdSortDefective
	case '1':
		return CmdPowerUpSlow
	case '2':
		return CmdPowerUpAutoSort
	case '3':
		return CmdPowerUpBonus
	case 'p', 'P', '\x1b':
		return CmdPause
	case 'r', 'R':
		return CmdRestart
	case 'm', 'M':
		return CmdToggleSound
	}
	return CmdNone
}
