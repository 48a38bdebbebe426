package loop

import (
	"context"
	"time"

	"github.com/tomz197/assemblyline/internal/game"
	"github.com/tomz197/assemblyline/internal/input"
)

// updateStartState handles the title menu.
func (c *Client) updateStartState(ctx context.Context, in input.Input) {
	for _, cmd := range in.Commands {
		switch cmd {
		case input.CmdConfirm:
			c.startGame()
			return
		case input.CmdSettings:
			c.screen = ScreenSettings
			c.settingsRow = rowDifficulty
			return
		case input.CmdToggleSound:
			c.toggleSound(ctx)
		}
	}
}

// updateSettingsState handles the settings screen. Changes are saved when
// the player leaves it.
func (c *Client) updateSettingsState(ctx context.Context, in input.Input) {
	for _, cmd := range in.Commands {
		switch cmd {
		case input.CmdUp:
			c.settingsRow = (c.settingsRow + settingsRows - 1) % settingsRows
		case input.CmdDown:
			c.settingsRow = (c.settingsRow + 1) % settingsRows
		case input.CmdLeft, input.CmdRight:
			if c.settingsRow == rowSound {
				c.settings.SoundEnabled = !c.settings.SoundEnabled
				c.sound.SetEnabled(c.settings.SoundEnabled)
				continue
			}
			d := c.settings.Difficulty.Next()
			if cmd == input.CmdLeft {
				d = c.settings.Difficulty.Prev()
			}
			if err := c.session.SetDifficulty(d); err == nil {
				c.settings.Difficulty = d
			}
		case input.CmdToggleSound:
			c.settings.SoundEnabled = !c.settings.SoundEnabled
			c.sound.SetEnabled(c.settings.SoundEnabled)
		case input.CmdBack, input.CmdSettings, input.CmdConfirm, input.CmdPause:
			c.saveSettings(ctx)
			c.screen = ScreenStart
			return
		}
	}
}

// updatePlayingState routes the player's commands to the session.
func (c *Client) updatePlayingState(ctx context.Context, in input.Input) {
	for _, cmd := range in.Commands {
		switch cmd {
		case input.CmdPause:
			c.session.TogglePause()
			c.autoPaused = false
		case input.CmdLeft:
			c.moveSelection(-1)
		case input.CmdRight:
			c.moveSelection(1)
		case input.CmdSortFruit:
			c.sort(game.CategoryFruit)
		case input.CmdSortTech:
			c.sort(game.CategoryTech)
		case input.CmdSortDefective:
			c.sort(game.CategoryDefective)
		case input.CmdPowerUpSlow:
			c.activate(game.PowerUpSlow)
		case input.CmdPowerUpAutoSort:
			c.activate(game.PowerUpAutoSort)
		case input.CmdPowerUpBonus:
			c.activate(game.PowerUpBonus)
		case input.CmdToggleSound:
			c.toggleSound(ctx)
		case input.CmdRestart:
			c.leaveGame()
			c.startGame()
			return
		case input.CmdBack:
			c.leaveGame()
			c.screen = ScreenStart
			return
		}
		if !c.session.Running() {
			return
		}
	}
}

// updateGameOverState handles the final score screen.
func (c *Client) updateGameOverState(ctx context.Context, in input.Input) {
	for _, cmd := range in.Commands {
		switch cmd {
		case input.CmdConfirm, input.CmdRestart:
			c.startGame()
			return
		case input.CmdBack:
			c.screen = ScreenStart
			return
		case input.CmdSettings:
			c.screen = ScreenSettings
			c.settingsRow = rowDifficulty
			return
		case input.CmdToggleSound:
			c.toggleSound(ctx)
		}
	}
}

// updateShutdownState counts down the shutdown notice.
func (c *Client) updateShutdownState(delta time.Duration) {
	c.shutdownLeft -= delta
	if c.shutdownLeft <= 0 {
		c.running = false
	}
}

func powerUpName(k game.PowerUpKind) string {
	switch k {
	case game.PowerUpSlow:
		return "Slow"
	case game.PowerUpAutoSort:
		return "Auto-sort"
	case game.PowerUpBonus:
		return "Bonus"
	default:
		return k.String()
	}
}
