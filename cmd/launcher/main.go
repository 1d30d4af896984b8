package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"task-launcher/internal/application/port/output"
	"task-launcher/internal/di"
	"task-launcher/internal/domain/entity"
	"task-launcher/internal/infrastructure/appconfig"
	"task-launcher/internal/infrastructure/env"
	"task-launcher/internal/infrastructure/httpapi"
	"task-launcher/internal/infrastructure/logger"
	"task-launcher/internal/infrastructure/userinteraction"
	"task-launcher/internal/usecase/session"
	"task-launcher/internal/usecase/setup"

	"github.com/spf13/cobra"
)

const (
	defaultServeAddr    = "127.0.0.1:8765"
	defaultRegistryFile = "apps.yaml"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "launcher [command...]",
		Short: "Natural-language desktop assistant",
		Long: "Launcher opens and closes applications and searches the web from plain English commands.\n" +
			"Without arguments it starts an interactive session; with arguments it runs them as one command.",
		SilenceUsage: true,
		Args:         cobra.ArbitraryArgs,
		RunE:         runAssistant,
	}

	root.AddCommand(newAppsCmd(), newServeCmd(), newSetupCmd())
	return root
}

func runAssistant(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	envService := env.NewEnvService(".")

	cfg, err := loadConfig(envService)
	if err != nil {
		return err
	}

	container, err := di.NewContainer(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}
	defer container.Close()
	logEnvironment(container.Logger, envService)

	if len(args) > 0 {
		result, err := container.Processor.Process(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Response)
		return nil
	}

	console := userinteraction.NewConsoleUserInteraction(envService.Get("HISTORY_FILE"))
	defer console.Close()

	return session.New(container.Processor, console, container.Logger).Run(ctx)
}

func newAppsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apps",
		Short: "List the applications the assistant can open and close",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			envService := env.NewEnvService(".")
			registry, err := di.BuildRegistry(envService.Get("APP_REGISTRY_FILE"), logger.NewNop())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tEXECUTABLE\tPROCESSES")
			for _, app := range registry.List() {
				exe := strings.TrimSpace(app.Executable + " " + strings.Join(app.Args, " "))
				fmt.Fprintf(w, "%s\t%s\t%s\n", app.Name, exe, strings.Join(app.ProcessNames, ","))
			}
			return w.Flush()
		},
	}

	cmd.AddCommand(newAppsAddCmd())
	return cmd
}

func newAppsAddCmd() *cobra.Command {
	var (
		file      string
		processes []string
	)

	cmd := &cobra.Command{
		Use:   "add NAME EXECUTABLE [ARGS...]",
		Short: "Add or replace an application in the registry file",
		Long: "Add or replace an application in the registry file.\n" +
			"Put -- before executable arguments that start with a dash.",
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				file = env.NewEnvService(".").GetWithDefault("APP_REGISTRY_FILE", defaultRegistryFile)
			}

			entry := entity.AppEntry{
				Name:         args[0],
				Executable:   args[1],
				Args:         args[2:],
				ProcessNames: processes,
			}
			if len(entry.Args) == 0 {
				entry.Args = nil
			}
			if err := appconfig.Upsert(file, entry); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s to %s\n", entry.Name, file)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "registry file (default $APP_REGISTRY_FILE or "+defaultRegistryFile+")")
	cmd.Flags().StringSliceVar(&processes, "process", nil, "process names used when closing the application")
	return cmd
}

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Accept commands over a local HTTP endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			envService := env.NewEnvService(".")

			cfg, err := loadConfig(envService)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = envService.GetWithDefault("SERVE_ADDR", defaultServeAddr)
			}

			container, err := di.NewContainer(ctx, cfg)
			if err != nil {
				return fmt.Errorf("initialization failed: %w", err)
			}
			defer container.Close()
			logEnvironment(container.Logger, envService)

			fmt.Fprintf(cmd.OutOrStdout(), "Listening on http://%s\n", addr)
			server := httpapi.NewServer(container.Processor, container.Registry, container.Logger)
			return server.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default $SERVE_ADDR or "+defaultServeAddr+")")
	return cmd
}

func newSetupCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Create or verify the .env file",
	}
	cmd.PersistentFlags().StringVar(&path, "file", ".env", "path of the .env file")

	cmd.AddCommand(&cobra.Command{
		Use:   "create",
		Short: "Write a new .env file with your OpenAI API key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			console := userinteraction.NewConsoleUserInteraction("")
			defer console.Close()

			err := setup.New(console, cmd.OutOrStdout()).Create(cmd.Context(), path)
			if errors.Is(err, setup.ErrCancelled) {
				return nil
			}
			return err
		},
	}, &cobra.Command{
		Use:   "test",
		Short: "Check that the .env file loads and carries an API key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return setup.New(nil, cmd.OutOrStdout()).Check(path)
		},
	})

	return cmd
}

func logEnvironment(log output.LoggerPort, envService *env.EnvService) {
	log.Info("Environment loaded", "app_env", envService.AppEnv(), "files", envService.LoadedFiles())
}

func loadConfig(envService output.ConfigPort) (di.Config, error) {
	apiKey := envService.Get("OPENAI_API_KEY")
	if apiKey == "" {
		return di.Config{}, fmt.Errorf("OPENAI_API_KEY not found in environment variables\n" +
			"Create a .env file in the working directory with your API key:\n" +
			"  OPENAI_API_KEY=your_api_key_here\n" +
			"  OPENAI_MODEL=gpt-4o\n" +
			"or run 'launcher setup create'")
	}

	return di.Config{
		OpenAIAPIKey:      apiKey,
		OpenAIModel:       envService.GetWithDefault("OPENAI_MODEL", "gpt-4o"),
		OpenAIBaseURL:     envService.Get("OPENAI_BASE_URL"),
		LLMDebug:          envService.GetBool("LLM_DEBUG", false),
		AppRegistryFile:   envService.Get("APP_REGISTRY_FILE"),
		SearchBackend:     envService.GetWithDefault("SEARCH_BACKEND", di.SearchBackendDuckDuckGo),
		SearchMaxResults:  envService.GetInt("SEARCH_MAX_RESULTS", 5),
		SearchOpenBrowser: envService.GetBool("SEARCH_OPEN_BROWSER", true),
		SearchURLTemplate: envService.Get("SEARCH_URL_TEMPLATE"),
		SearchSnapshotDir: envService.Get("SEARCH_SNAPSHOT_DIR"),
		BrowserHeadless:   envService.GetBool("BROWSER_HEADLESS", true),
		LogDir:            envService.GetWithDefault("LOG_DIR", "log"),
		LogLevel:          envService.GetWithDefault("LOG_LEVEL", "info"),
	}, nil
}
