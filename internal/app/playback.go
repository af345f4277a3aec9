package app

import (
	"fmt"

	"github.com/llehouerou/tides/internal/seek"
)

type PlayCmd struct {
	Position int `arg:"" optional:"" help:"Queue position to start playing from. Resumes when omitted."`
}

func (c *PlayCmd) Run(env *Env) error {
	if c.Position < 0 {
		return fmt.Errorf("invalid queue position %d", c.Position)
	}
	// Position 0 means no argument: MPD resumes the current song.
	return env.Client.Play(c.Position - 1)
}

type PauseCmd struct{}

func (c *PauseCmd) Run(env *Env) error { return env.Client.Pause(true) }

type ToggleCmd struct{}

func (c *ToggleCmd) Run(env *Env) error { return env.Client.Toggle() }

type StopCmd struct{}

func (c *StopCmd) Run(env *Env) error { return env.Client.Stop() }

type NextCmd struct{}

func (c *NextCmd) Run(env *Env) error { return env.Client.Next() }

type PrevCmd struct{}

func (c *PrevCmd) Run(env *Env) error { return env.Client.Previous() }

type SeekCmd struct {
	Position []string `arg:"" help:"Position as [+-][[hh:]mm:]ss. A sign seeks relative to the current position."`
}

func (c *SeekCmd) Run(env *Env) error {
	if len(c.Position) != 1 {
		return fmt.Errorf("expected one position, got %d arguments", len(c.Position))
	}
	arg, err := seek.Parse(c.Position[0])
	if err != nil {
		return err
	}

	song, err := currentSong(env)
	if err != nil {
		return err
	}
	status, err := env.Client.Status()
	if err != nil {
		return err
	}

	return env.Client.SeekID(song.ID, arg.Target(status.Elapsed))
}
