package main

import (
	"bytes"
	"io"
	"slices"

	"lessonreel/internal/playback"
)

type keyAction int

const (
	keyNone keyAction = iota
	keyToggle
	keyNext
	keyPrev
	keyFaster
	keySlower
	keyRestart
	keyQuit
)

const ctrlC = 0x03

// speedSteps are the speeds the +/- keys move between.
var speedSteps = []float64{0.25, 0.5, 0.75, 1, 1.25, 1.5, 2, 3, 4}

func actionForKey(b byte) keyAction {
	switch b {
	case ' ', 'k':
		return keyToggle
	case 'n', 'l', '.':
		return keyNext
	case 'p', 'h', ',':
		return keyPrev
	case '+', '=':
		return keyFaster
	case '-', '_':
		return keySlower
	case 'r', '0':
		return keyRestart
	case 'q', 'Q', ctrlC:
		return keyQuit
	default:
		return keyNone
	}
}

// stepSpeed returns the next speed step above (dir > 0) or below current.
func stepSpeed(current float64, dir int) float64 {
	if dir > 0 {
		for _, step := range speedSteps {
			if step > current+1e-9 {
				return step
			}
		}
		return speedSteps[len(speedSteps)-1]
	}
	for _, step := range slices.Backward(speedSteps) {
		if step < current-1e-9 {
			return step
		}
	}
	return speedSteps[0]
}

// applyKey performs action on player. It reports whether playback should end.
func applyKey(player *playback.Player, action keyAction) (bool, error) {
	switch action {
	case keyToggle:
		return false, player.Toggle()
	case keyNext, keyPrev:
		// Seeking pauses; keep playing if we were.
		playing := player.State().Playing()
		move := player.Next
		if action == keyPrev {
			move = player.Prev
		}
		if err := move(); err != nil || !playing {
			return false, err
		}
		return false, player.Play()
	case keyFaster:
		return false, player.SetSpeed(stepSpeed(player.State().Speed(), 1))
	case keySlower:
		return false, player.SetSpeed(stepSpeed(player.State().Speed(), -1))
	case keyRestart:
		if err := player.Seek(0); err != nil {
			return false, err
		}
		return false, player.Play()
	case keyQuit:
		return true, nil
	default:
		return false, nil
	}
}

// crlfWriter restores carriage returns lost when the terminal is in raw mode.
type crlfWriter struct {
	w io.Writer
}

func (c crlfWriter) Write(p []byte) (int, error) {
	if _, err := c.w.Write(bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))); err != nil {
		return 0, err
	}
	return len(p), nil
}
