// root.go - Haupt-CLI-Setup, Root-Command und Env-Dokumentation
//
// Folgt dem Teacher-Muster aus cmd/cmd.go: ein rootCmd ohne eigene
// Ausfuehrung ausser Usage-Druck, appendEnvDocs haengt eine
// "Environment Variables:"-Sektion an die Usage-Vorlage jedes
// Subcommands.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mantaray/manta/internal/envconfig"
)

func appendEnvDocs(cmd *cobra.Command, envs []envconfig.EnvVar) {
	if len(envs) == 0 {
		return
	}
	usage := "\nEnvironment Variables:\n"
	for _, e := range envs {
		usage += fmt.Sprintf("      %-28s   %s\n", e.Name, e.Description)
	}
	cmd.SetUsageTemplate(cmd.UsageTemplate() + usage)
}

func newRootCmd() *cobra.Command {
	cobra.EnableCommandSorting = false

	rootCmd := &cobra.Command{
		Use:           "manta",
		Short:         "Monte-Carlo path tracer",
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Print(cmd.UsageString())
		},
	}

	slog.SetLogLoggerLevel(envconfig.LogLevel())

	renderCmd := newRenderCmd()
	benchCmd := newBenchCmd()
	convertCmd := newConvertCmd()

	envVars := envconfig.AsMap()
	appendEnvDocs(renderCmd, []envconfig.EnvVar{
		envVars["MANTA_THREADS"],
		envVars["MANTA_MULTITHREADED"],
		envVars["MANTA_SPP"],
		envVars["MANTA_MAX_DEPTH"],
		envVars["MANTA_DIRECT_LIGHT_SAMPLING"],
		envVars["MANTA_TILE_SIZE"],
		envVars["MANTA_RENDER_PATTERN"],
		envVars["MANTA_DETERMINISTIC_SEED"],
		envVars["MANTA_JPEG_QUALITY"],
		envVars["MANTA_DEBUG"],
	})

	rootCmd.AddCommand(renderCmd, benchCmd, convertCmd)
	return rootCmd
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
