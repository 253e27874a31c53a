package commands

import (
	"time"

	"github.com/spf13/cobra"

	"funnelzip-demo/internal/common/config"
	apihttp "funnelzip-demo/internal/common/http"
	"funnelzip-demo/internal/common/logger"
	"funnelzip-demo/internal/demo/fixtures"
	"funnelzip-demo/pkg/catalog"
)

// env is what every subcommand runs against.
type env struct {
	cfg     *config.Config
	log     logger.Logger
	catalog *fixtures.Catalog
	remote  *apihttp.Client
}

type rootFlags struct {
	configPath string
	serverURL  string
	verbose    bool
}

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	var (
		flags rootFlags
		e     = &env{}
	)

	root := &cobra.Command{
		Use:           "democtl",
		Short:         "Drive the FunnelZip pitch demo from a terminal",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if flags.configPath != "" {
				e.cfg, err = config.LoadFromFile(flags.configPath)
			} else {
				e.cfg, err = config.Load()
			}
			if err != nil {
				return err
			}

			level := "warn"
			if flags.verbose {
				level = "debug"
			}
			e.log = logger.NewStructured(level, "console", "stderr")

			e.catalog, err = catalog.Resolve(e.cfg.Demo.CatalogPath)
			if err != nil {
				return err
			}
			if flags.serverURL != "" {
				e.remote = apihttp.NewClient(flags.serverURL, 30*time.Second)
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default ./configs/config.yaml)")
	root.PersistentFlags().StringVar(&flags.serverURL, "server", "", "demo server base URL (e.g. http://127.0.0.1:8080); local when empty")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "debug logging on stderr")

	root.AddCommand(scanCmd(e), resultsCmd(e), submitCmd(e), logCmd(e))
	return root
}
