package cli

import (
	"context"
	"strconv"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/gsearch/internal/config"
)

// PrintConfigCmd returns the print-config command.
func PrintConfigCmd(cfg *config.Config) *Command {
	return &Command{
		Flags: flag.NewFlagSet("print-config", flag.ContinueOnError),
		Usage: "print-config",
		Short: "Show resolved configuration",
		Long:  "Print the effective settings as key=value lines, then the config files they came from.",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			printSettings(o, [][2]string{
				{"effective_cwd", cfg.EffectiveCwd},
				{"recent_file", cfg.RecentFileAbs},
				{"max_recent", strconv.Itoa(cfg.MaxRecent)},
				{"browser", cfg.Browser},
			})

			o.Println()
			o.Println("# sources")

			if cfg.Sources == (config.Sources{}) {
				o.Println("(defaults only)")

				return nil
			}

			printSettings(o, [][2]string{
				{"global_config", cfg.Sources.Global},
				{"project_config", cfg.Sources.Project},
			})

			return nil
		},
	}
}

// printSettings prints key=value for every non-empty value.
func printSettings(o *IO, kvs [][2]string) {
	for _, kv := range kvs {
		if kv[1] != "" {
			o.Println(kv[0] + "=" + kv[1])
		}
	}
}
