package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cory-johannsen/armorsim/internal/game/combat"
	"github.com/cory-johannsen/armorsim/internal/game/damage"
)

// summary tallies resolution outcomes across trials.
type summary struct {
	trials    int
	full      int
	reduced   int
	deflected int
	absorbed  int
	converted int
	destroyed int
	damage    int
}

// add records one result and the number of worn pieces it destroyed. Outcomes
// are exclusive: a shield absorption is not also counted as a deflection.
func (s *summary) add(in combat.Attack, res combat.Result, destroyed int) {
	s.trials++
	s.destroyed += destroyed
	s.damage += res.Damage()
	switch {
	case res.ShieldAbsorbed:
		s.absorbed++
	case res.Deflected:
		s.deflected++
	case res.ArmorReduced:
		s.reduced++
	default:
		s.full++
	}
	if res.Attack.Def != in.Def && res.Attack.Def.IsBlunt() {
		s.converted++
	}
}

// meanDamage returns the average damage that got through, or 0 with no trials.
func (s *summary) meanDamage() float64 {
	if s.trials == 0 {
		return 0
	}
	return float64(s.damage) / float64(s.trials)
}

func (s *summary) print(w io.Writer) {
	fmt.Fprintf(w, "trials:          %d\n", s.trials)
	fmt.Fprintf(w, "full damage:     %d\n", s.full)
	fmt.Fprintf(w, "armor reduced:   %d\n", s.reduced)
	fmt.Fprintf(w, "deflected:       %d\n", s.deflected)
	fmt.Fprintf(w, "shield absorbed: %d\n", s.absorbed)
	fmt.Fprintf(w, "became blunt:    %d\n", s.converted)
	fmt.Fprintf(w, "pieces broken:   %d\n", s.destroyed)
	fmt.Fprintf(w, "mean damage:     %.2f\n", s.meanDamage())
}

// parseStats parses a comma-separated list of stat=value pairs.
//
// Postcondition: Returns an empty map for an empty string, or an error naming
// the first malformed pair.
func parseStats(s string) (map[damage.StatID]float64, error) {
	out := map[damage.StatID]float64{}
	for _, pair := range splitList(s) {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, fmt.Errorf("stat %q: want stat=value", pair)
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, fmt.Errorf("stat %q: %w", pair, err)
		}
		out[damage.StatID(strings.TrimSpace(k))] = f
	}
	return out, nil
}
