// tablecheck validates a loot table YAML file and prints its entry counts.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/ayuyan/bot/internal/data"
	"github.com/ayuyan/bot/internal/random"
	"github.com/ayuyan/bot/internal/render"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: tablecheck <tables.yaml> [samples]")
		os.Exit(1)
	}
	if err := check(os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func check(path string, rest []string) error {
	reg, err := data.LoadRegistry(path)
	if err != nil {
		return err
	}

	samples := 0
	if len(rest) > 0 {
		samples, err = strconv.Atoi(rest[0])
		if err != nil || samples < 0 {
			return fmt.Errorf("samples must be a non-negative number, got %q", rest[0])
		}
	}

	rng, err := random.NewFromEntropy()
	if err != nil {
		return err
	}
	for c := data.CategoryArmour; c.Valid(); c++ {
		t := reg.Table(c)
		fmt.Printf("%-16s %3d\n", c, t.Len())
		if samples == 0 {
			continue
		}
		labels := make([]string, 0, samples)
		for i := 0; i < samples; i++ {
			idx, err := rng.Sample(0, t.Len())
			if err != nil {
				return fmt.Errorf("sample %s: %w", c, err)
			}
			labels = append(labels, t.LabelAt(idx))
		}
		fmt.Printf("%-16s %s\n", "", render.Fragments(labels))
	}
	fmt.Printf("%s: %d tables ok\n", path, reg.Count())
	return nil
}
