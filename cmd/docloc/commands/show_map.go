package commands

import (
	"fmt"
)

// ShowMapCmd prints the effective filename map, one "source -> target" per line.
type ShowMapCmd struct{}

func (s *ShowMapCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	names, err := cfg.FilenameMap()
	if err != nil {
		return err
	}
	for _, key := range names.Keys() {
		if _, err := fmt.Fprintf(g.Stdout, "%s -> %s\n", key, names.Lookup(key)); err != nil {
			return err
		}
	}
	return nil
}
