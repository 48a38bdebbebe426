package input

import (
	"bufio"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Command
	}{
		{"sort keys", "ftx", []Command{CmdSortFruit, CmdSortTech, CmdSortDefective}},
		{"power-ups", "123", []Command{CmdPowerUpSlow, CmdPowerUpAutoSort, CmdPowerUpBonus}},
		{"arrows", "\x1b[D\x1b[C\x1b[A\x1b[B", []Command{CmdLeft, CmdRight, CmdUp, CmdDown}},
		{"lone escape pauses", "\x1b", []Command{CmdPause}},
		{"confirm", " \r\n", []Command{CmdConfirm, CmdConfirm, CmdConfirm}},
		{"ctrl-c quits", "\x03", []Command{CmdQuit}},
		{"unknown bytes dropped", "z9?", nil},
		{"menu keys", "sbrmpq", []Command{CmdSettings, CmdBack, CmdRestart, CmdToggleSound, CmdPause, CmdQuit}},
		{"upper case", "F", []Command{CmdSortFruit}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decode([]byte(tt.in)))
		})
	}
}

func TestReadInputDrainsStream(t *testing.T) {
	s := StartStream(bufio.NewReader(strings.NewReader("f\x1b[C")))

	var got []Command
	require.Eventually(t, func() bool {
		in := ReadInput(s)
		got = append(got, in.Commands...)
		return in.Closed
	}, time.Second, time.Millisecond)

	assert.Equal(t, []Command{CmdSortFruit, CmdRight}, got)
	assert.True(t, ReadInput(s).Closed, "closed stays closed")
}

func TestInputHas(t *testing.T) {
	in := Input{Commands: []Command{CmdPause, CmdSortTech}}
	assert.True(t, in.Has(CmdSortTech))
	assert.False(t, in.Has(CmdQuit))
	assert.Equal(t, "sort tech", CmdSortTech.String())
}

func TestReadInputJoinsSplitEscapeSequence(t *testing.T) {
	s := &Stream{ch: make(chan byte, 8)}

	s.ch <- 'f'
	s.ch <- '\x1b'
	in := ReadInput(s)
	assert.Equal(t, []Command{CmdSortFruit}, in.Commands)
	assert.True(t, in.Active)

	s.ch <- '['
	s.ch <- 'D'
	in = ReadInput(s)
	assert.Equal(t, []Command{CmdLeft}, in.Commands)
}

func TestReadInputFlushesLoneEscape(t *testing.T) {
	s := &Stream{ch: make(chan byte, 8)}

	s.ch <- '\x1b'
	assert.Empty(t, ReadInput(s).Commands)

	in := ReadInput(s)
	assert.Equal(t, []Command{CmdPause}, in.Commands)
	assert.False(t, in.Active)
}
