package loop

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/tomz197/assemblyline/internal/draw"
	"github.com/tomz197/assemblyline/internal/game"
	"github.com/tomz197/assemblyline/internal/object"
)

const playingHelp = "←/→ select  F/T/X sort  1-3 power-ups  P pause  R restart  B menu  Q quit"

// layout places the playing screen on a canvas of the given size.
type layout struct {
	width      int
	height     int
	hudRow     int
	statusRow  int
	beltBox    int // Row of the belt frame's top edge
	belt       object.Belt
	powerRow   int
	binsRow    int
	helpRow    int
	powerWidth int // Cells per power-up slot
}

func newLayout(width, height int) layout {
	beltHeight := max(height-9, 1)
	l := layout{
		width:      width,
		height:     height,
		hudRow:     0,
		statusRow:  1,
		beltBox:    2,
		belt:       object.Belt{Col: 1, Row: 3, Width: max(width-2, 0), Height: beltHeight},
		powerWidth: width / len(game.PowerUpKinds),
	}
	l.powerRow = l.beltBox + beltHeight + 2
	l.binsRow = l.powerRow + 1
	l.helpRow = height - 1
	return l
}

// binCol returns the left edge of bin i, centered in its third of the width.
func (l layout) binCol(i, bins int) int {
	center := (2*i + 1) * l.width / (2 * bins)
	return max(center-object.BinWidth/2, 0)
}

// drawFrame draws the current screen into the canvas and queues the changes.
func (c *Client) drawFrame() {
	c.canvas.Clear()
	switch {
	case c.tooSmall:
		c.drawTooSmall()
	case c.screen == ScreenStart:
		c.drawStartScreen()
	case c.screen == ScreenSettings:
		c.drawSettingsScreen()
	case c.screen == ScreenPlaying:
		c.drawPlayingScreen()
	case c.screen == ScreenGameOver:
		c.drawGameOverScreen()
	case c.screen == ScreenShutdown:
		c.drawShutdownScreen()
	}
	if c.inactive && c.screen != ScreenShutdown {
		c.drawInactivityWarning()
	}
	c.canvas.Render(c.cw)
}

func (c *Client) drawTooSmall() {
	cv := c.canvas
	row := cv.Height() / 2
	cv.PutCentered(row-1, "Terminal too small", draw.StyleBold)
	cv.PutCentered(row, fmt.Sprintf("Please resize to at least %dx%d", MinTermWidth, MinTermHeight), draw.StylePlain)
}

// drawStartScreen draws the title screen.
func (c *Client) drawStartScreen() {
	cv := c.canvas
	row := cv.Height()/2 - 6

	cv.PutCentered(row, "A S S E M B L Y   L I N E", draw.Foreground(draw.ColorCyan).WithBold())
	cv.PutCentered(row+2, "🍎 🍌 📱 💻  Sort the items before they fall off the belt!  🍎⚠️", draw.StylePlain)
	cv.PutCentered(row+4, "Press SPACE to Start", draw.StyleBold)
	cv.PutCentered(row+6, fmt.Sprintf("Difficulty: %s   Sound: %s", strings.ToUpper(c.settings.Difficulty.String()), onOff(c.settings.SoundEnabled)), draw.StylePlain)
	if c.player != "" {
		cv.PutCentered(row+7, "Player: "+draw.Truncate(c.player, MaxPlayerLength), draw.StyleDim)
	}
	cv.PutCentered(row+9, "Controls: ←/→ select item, F/T/X sort into Fruit/Tech/Defective", draw.StyleDim)
	cv.PutCentered(row+10, "1/2/3 power-ups, P pause, M sound, B menu", draw.StyleDim)
	cv.PutCentered(row+12, "S settings   Q quit", draw.StylePlain)
}

// drawSettingsScreen draws the difficulty and sound settings.
func (c *Client) drawSettingsScreen() {
	cv := c.canvas
	row := cv.Height()/2 - 4

	cv.PutCentered(row, "S E T T I N G S", draw.StyleBold)
	lines := [settingsRows]string{
		rowDifficulty: fmt.Sprintf("Difficulty:  ◀ %-6s ▶", c.settings.Difficulty),
		rowSound:      fmt.Sprintf("Sound:       ◀ %-6s ▶", onOff(c.settings.SoundEnabled)),
	}
	for i, line := range lines {
		style := draw.StylePlain
		if settingsRow(i) == c.settingsRow {
			style = draw.StyleReverse
		}
		cv.PutCentered(row+2+i*2, line, style)
	}

	if p, err := c.session.Config().Profile(c.settings.Difficulty); err == nil {
		desc := fmt.Sprintf("Items cross in %s, one every %s", p.ItemSpeed, p.SpawnInterval)
		cv.PutCentered(row+7, desc, draw.StyleDim)
	}
	cv.PutCentered(row+9, "↑/↓ choose   ←/→ change   B back", draw.StyleDim)
}

// drawPlayingScreen draws the HUD, conveyor, power-ups and bins.
func (c *Client) drawPlayingScreen() {
	cv := c.canvas
	l := newLayout(cv.Width(), cv.Height())
	now := c.sched.Now()

	c.drawHUD(l)
	c.drawStatus(l)

	cv.Box(0, l.beltBox, l.width, l.belt.Height+2, draw.StyleDim)
	cv.Put(2, l.beltBox, " CONVEYOR ▶ ", draw.StyleDim)
	cv.Put(l.width-8, l.beltBox, " END ", draw.Foreground(draw.ColorRed))

	selected, _ := c.selectedItem()
	c.view.Select(selected.ID)
	for i, b := range c.view.bins {
		b.Col = l.binCol(i, len(c.view.bins))
		b.Row = l.binsRow
	}
	ctx := object.DrawContext{Canvas: cv, Belt: l.belt, Now: now}
	if err := c.view.Draw(ctx); err != nil {
		c.logger.Warn("draw objects", "err", err)
	}

	for i, st := range c.view.PowerUps() {
		c.drawPowerUp(l, i, st, now)
	}

	help := object.Text{X: 1, Y: l.helpRow, Value: playingHelp, Style: draw.StyleDim}
	_ = help.Draw(ctx)

	if c.session.Paused() {
		c.drawCenteredBox(l.belt.Row+l.belt.Height/2-1, []string{"P A U S E D", "Press P to resume"})
	}
}

func (c *Client) drawHUD(l layout) {
	cv := c.canvas
	cv.Put(1, l.hudRow, fmt.Sprintf("Score: %d", c.view.Score()), draw.StyleBold)

	center := strings.ToUpper(c.session.Difficulty().String())
	if c.best > 0 {
		center = fmt.Sprintf("%s   Best: %d", center, c.best)
	}
	cv.PutCentered(l.hudRow, center, draw.StylePlain)

	lives := c.view.Lives()
	hearts := strings.Repeat("♥", lives) + strings.Repeat("♡", max(c.session.Config().InitialLives-lives, 0))
	text := "Lives: " + hearts
	cv.Put(l.width-draw.Width(text)-1, l.hudRow, text, draw.Foreground(draw.ColorRed))
}

func (c *Client) drawStatus(l layout) {
	cv := c.canvas
	switch {
	case c.statusLeft > 0 && c.status != "":
		cv.Put(1, l.statusRow, c.status, draw.Foreground(draw.ColorYellow))
	default:
		if it, ok := c.selectedItem(); ok {
			cv.Put(1, l.statusRow, "▶ "+it.Name, draw.Foreground(object.ColorSelected))
		}
	}
	if n := len(c.session.Items()); n > 0 {
		text := fmt.Sprintf("%d on belt", n)
		cv.Put(l.width-draw.Width(text)-1, l.statusRow, text, draw.StyleDim)
	}
}

// drawPowerUp draws one power-up slot: key, name, meter and state.
func (c *Client) drawPowerUp(l layout, i int, st game.PowerUpStatus, now time.Duration) {
	cfg := c.session.Config().PowerUps[st.Kind]
	var fraction float64
	var label string
	style := draw.StylePlain

	switch {
	case st.State.Active:
		fraction = ratio(st.ActiveUntil-now, cfg.Duration)
		label = "ACTIVE"
		style = draw.Foreground(draw.ColorGreen).WithBold()
	case st.State.OnCooldown:
		fraction = 1 - ratio(st.CooldownEnd-now, cfg.Cooldown)
		label = fmt.Sprintf("%ds", int(math.Ceil((st.CooldownEnd - now).Seconds())))
		style = draw.Style{Fg: draw.ColorGray}
	case st.Ready:
		fraction = 1
		label = "READY!"
		style = draw.Foreground(draw.ColorYellow).WithBold()
	case st.Enabled:
		fraction = 1
		label = "ready"
	default:
		label = "waiting"
		style = draw.StyleDim
	}

	text := fmt.Sprintf("[%d] %s %s %s", i+1, powerUpName(st.Kind), draw.Meter(fraction, 6), label)
	c.canvas.Put(i*l.powerWidth+1, l.powerRow, draw.Truncate(text, l.powerWidth-1), style)
}

// drawGameOverScreen draws the final score.
func (c *Client) drawGameOverScreen() {
	cv := c.canvas
	row := cv.Height()/2 - 3
	_, final := c.view.GameOver()

	cv.PutCentered(row, "G A M E   O V E R", draw.Foreground(draw.ColorRed).WithBold())
	cv.PutCentered(row+2, fmt.Sprintf("Final score: %d", final), draw.StyleBold)
	best := fmt.Sprintf("Best: %d", c.best)
	if final > 0 && final >= c.best {
		best += "  NEW RECORD!"
	}
	cv.PutCentered(row+3, best, draw.StylePlain)
	cv.PutCentered(row+5, "Press SPACE to Restart", draw.StylePlain)
	cv.PutCentered(row+6, "B menu   S settings   Q quit", draw.StyleDim)
}

// drawShutdownScreen draws the shutdown notice with a countdown.
func (c *Client) drawShutdownScreen() {
	cv := c.canvas
	row := cv.Height()/2 - 2
	secs := int(math.Ceil(c.shutdownLeft.Seconds()))

	cv.PutCentered(row, "SERVER SHUTTING DOWN", draw.Foreground(draw.ColorYellow).WithBold())
	cv.PutCentered(row+2, "The server is restarting for maintenance.", draw.StylePlain)
	cv.PutCentered(row+3, fmt.Sprintf("Disconnecting in %d seconds...", max(secs, 0)), draw.StylePlain)
	cv.PutCentered(row+5, "Press Q to quit now", draw.StyleDim)
}

// drawInactivityWarning overlays the idle warning.
func (c *Client) drawInactivityWarning() {
	left := InactivityDisconnectUser - c.clock.Since(c.lastInput)
	secs := max(int(math.Ceil(left.Seconds())), 0)
	c.drawCenteredBox(c.canvas.Height()/2-2, []string{
		"Are you still there?",
		fmt.Sprintf("Disconnecting in %d seconds", secs),
		"Press any key to stay",
	})
}

// drawCenteredBox draws lines inside a frame centered on the canvas.
func (c *Client) drawCenteredBox(row int, lines []string) {
	w := 0
	for _, line := range lines {
		w = max(w, draw.Width(line))
	}
	w += 4
	col := (c.canvas.Width() - w) / 2
	for y := row; y < row+len(lines)+2; y++ {
		c.canvas.Fill(col, y, w, ' ', draw.StylePlain)
	}
	c.canvas.Box(col, row, w, len(lines)+2, draw.StyleBold)
	for i, line := range lines {
		c.canvas.PutCentered(row+1+i, line, draw.StyleBold)
	}
}

func ratio(part, whole time.Duration) float64 {
	if whole <= 0 {
		return 0
	}
	return max(0, min(1, float64(part)/float64(whole)))
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
