// bench_cmd.go - `manta bench kdtree`
//
// Baut den Demo-Szene-KD-Baum und druckt eine kleine Zusammenfassung
// (Knotenzahl, Laenge der flachen Blatt-Face-Liste, Bauzeit) als
// tablewriter-Tabelle, wie
// der Teacher's `cmd list` Modell-Listen formatiert.
package main

import (
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/mantaray/manta/internal/accel"
)

func newBenchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Micro-benchmarks for renderer internals",
	}
	cmd.AddCommand(newBenchKDTreeCmd())
	return cmd
}

func newBenchKDTreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kdtree",
		Short: "Build the demo scene's KD-trees and report leaf statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := buildDemoScene()
			if err != nil {
				return fmt.Errorf("bench kdtree: %w", err)
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"OBJECT", "NODES", "LEAF FACES", "BUILD TIME"})
			table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			table.SetHeaderLine(false)
			table.SetBorder(false)

			for i, obj := range s.Objects {
				start := time.Now()
				rebuilt := accel.Build(obj.Geometry, obj.Tree.Bounds, accel.BuildOptions{MaxLeafSize: 2})
				elapsed := time.Since(start)
				table.Append([]string{
					fmt.Sprintf("object[%d]", i),
					fmt.Sprintf("%d", len(rebuilt.Nodes)),
					fmt.Sprintf("%d", len(rebuilt.Faces)),
					elapsed.Round(time.Microsecond).String(),
				})
			}
			table.Render()
			return nil
		},
	}
}
