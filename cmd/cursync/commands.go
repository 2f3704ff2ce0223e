package cursync

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/cursync/cursync/internal/version"
	"github.com/cursync/cursync/pkg/commands"
	"github.com/cursync/cursync/pkg/config"
	"github.com/cursync/cursync/pkg/docs"
	"github.com/cursync/cursync/pkg/filesystem"
	"github.com/cursync/cursync/pkg/logging"
	"github.com/cursync/cursync/pkg/paths"
	"github.com/cursync/cursync/pkg/planner"
	"github.com/cursync/cursync/pkg/rules"
	"github.com/cursync/cursync/pkg/style"
	"github.com/cursync/cursync/pkg/watch"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	var (
		verbosity int
		dryRun    bool
		rootFlag  string
	)

	rootCmd := &cobra.Command{
		Use:     "cursync",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			if !style.IsTerminal() {
				pterm.DisableStyling()
			}
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand: show help but exit non-zero.
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", "", MsgFlagRoot)

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.AddCommand(newSyncCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newCleanCmd())
	rootCmd.AddCommand(newDocsCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// initEnv resolves the repository root and loads configuration, warning
// on stderr when the working-directory fallback is in use.
func initEnv(cmd *cobra.Command) (commands.Env, error) {
	rootFlag, _ := cmd.Root().PersistentFlags().GetString("root")

	p, err := paths.New(rootFlag, paths.Options{})
	if err != nil {
		return commands.Env{}, fmt.Errorf(MsgErrInitPaths, err)
	}
	if p.UsedFallback() {
		fmt.Fprintf(os.Stderr, MsgFallbackWarning, p.RepoRoot())
	}

	cfg, err := config.Load(p.RepoRoot())
	if err != nil {
		return commands.Env{}, fmt.Errorf(MsgErrLoadConf, err)
	}

	// The config file can rename the resources and target directories;
	// rebuild paths with the configured names, keeping the root found
	// with the defaults.
	if cfg.Resources.Dir != paths.DefaultResourcesDirName || cfg.Target.Dir != paths.DefaultTargetDirName {
		p, err = paths.New(p.RepoRoot(), paths.Options{
			ResourcesDirName: cfg.Resources.Dir,
			TargetDirName:    cfg.Target.Dir,
		})
		if err != nil {
			return commands.Env{}, fmt.Errorf(MsgErrInitPaths, err)
		}
	}

	return commands.Env{FS: filesystem.NewOS(), Paths: p, Config: cfg}, nil
}

// categoryCompletion provides shell completion for --rules from the
// categories present in the resource tree.
func categoryCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	env, err := initEnv(cmd)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	found, err := rules.Discover(env.FS, env.Paths.RulesDir(), env.Config.Rules.Pattern)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	seen := make(map[string]bool)
	var categories []string
	for _, rule := range found {
		if !seen[rule.Category] {
			seen[rule.Category] = true
			categories = append(categories, rule.Category)
		}
	}
	return categories, cobra.ShellCompDirectiveNoFileComp
}

func newSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sync",
		Short:   MsgSyncShort,
		Long:    MsgSyncLong,
		Example: MsgSyncExample,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := initEnv(cmd)
			if err != nil {
				return err
			}

			dryRun, _ := cmd.Root().PersistentFlags().GetBool("dry-run")
			ruleSpec, _ := cmd.Flags().GetString("rules")
			watchMode, _ := cmd.Flags().GetBool("watch")

			log.Info().
				Str("repo_root", env.Paths.RepoRoot()).
				Bool("dry_run", dryRun).
				Msg("Syncing resource tree")

			opts := commands.SyncOptions{
				Env:    env,
				Filter: rules.ParseFilter(ruleSpec),
				DryRun: dryRun,
			}

			if err := runSync(opts); err != nil {
				return err
			}
			if !watchMode {
				return nil
			}

			fmt.Println(MsgWatchingNotice)
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			debouncer := watch.NewDebouncer(env.Config.Sync.WatchDebounce())
			return watch.Run(ctx, env.Paths.ResourcesDir(), debouncer, func() {
				if err := runSync(opts); err != nil {
					fmt.Fprintln(os.Stderr, style.Error(err))
				}
			})
		},
	}

	cmd.Flags().String("rules", "", MsgFlagRules)
	cmd.Flags().Bool("watch", false, MsgFlagWatch)
	_ = cmd.RegisterFlagCompletionFunc("rules", categoryCompletion)

	return cmd
}

// runSync applies one sync pass and renders the outcome.
func runSync(opts commands.SyncOptions) error {
	result, err := commands.Sync(opts)
	if result != nil {
		if opts.DryRun {
			fmt.Println(MsgDryRunNotice)
		}
		if len(result.Results) == 0 {
			fmt.Println(MsgNoOperations)
		} else {
			fmt.Println(style.RenderResults(result.Results))
		}
		if msgs := warningMessages(result.Warnings); len(msgs) > 0 {
			fmt.Println(style.RenderWarnings(msgs))
		}
	}
	if err != nil {
		return fmt.Errorf(MsgErrSync, err)
	}
	return nil
}

func warningMessages(warnings []planner.Warning) []string {
	var msgs []string
	for _, w := range warnings {
		msgs = append(msgs, w.Message)
	}
	return msgs
}

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "status",
		Short:   MsgStatusShort,
		Long:    MsgStatusLong,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := initEnv(cmd)
			if err != nil {
				return err
			}

			ruleSpec, _ := cmd.Flags().GetString("rules")

			log.Info().Str("repo_root", env.Paths.RepoRoot()).Msg("Checking link status")

			result, err := commands.Status(commands.StatusOptions{
				Env:    env,
				Filter: rules.ParseFilter(ruleSpec),
			})
			if err != nil {
				return fmt.Errorf(MsgErrStatus, err)
			}

			fmt.Println(style.RenderStatus(result.Statuses, result.Shadowed))
			return nil
		},
	}

	cmd.Flags().String("rules", "", MsgFlagRules)
	_ = cmd.RegisterFlagCompletionFunc("rules", categoryCompletion)

	return cmd
}

func newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "clean",
		Short:   MsgCleanShort,
		Long:    MsgCleanLong,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := initEnv(cmd)
			if err != nil {
				return err
			}

			dryRun, _ := cmd.Root().PersistentFlags().GetBool("dry-run")

			log.Info().
				Str("repo_root", env.Paths.RepoRoot()).
				Bool("dry_run", dryRun).
				Msg("Cleaning links")

			result, err := commands.Clean(commands.CleanOptions{Env: env, DryRun: dryRun})
			if result != nil {
				if dryRun {
					fmt.Println(MsgDryRunNotice)
				}
				if len(result.Results) == 0 {
					fmt.Println(MsgNoOperations)
				} else {
					fmt.Println(style.RenderResults(result.Results))
				}
			}
			if err != nil {
				return fmt.Errorf(MsgErrClean, err)
			}
			return nil
		},
	}
}

func newDocsCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "docs [name]",
		Short:             MsgDocsShort,
		Long:              MsgDocsLong,
		Example:           MsgDocsExample,
		Args:              cobra.MaximumNArgs(1),
		GroupID:           "misc",
		ValidArgsFunction: docNamesCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := initEnv(cmd)
			if err != nil {
				return err
			}

			agentsDir := env.Paths.AgentsDir()
			skillsDir := env.Paths.SkillsDir()

			if len(args) == 0 {
				found := docs.List(env.FS, agentsDir, skillsDir)
				if len(found) == 0 {
					fmt.Println(MsgNoDocs)
					return nil
				}
				for _, doc := range found {
					fmt.Printf("  %-8s %s\n", doc.Kind, doc.Name)
				}
				return nil
			}

			doc, err := docs.Find(env.FS, agentsDir, skillsDir, args[0])
			if err != nil {
				return err
			}
			content, err := env.FS.ReadFile(doc.Path)
			if err != nil {
				return fmt.Errorf(MsgErrReadDoc, err)
			}

			fmt.Println(docs.NewRenderer().Render(string(content)))
			return nil
		},
	}
}

// docNamesCompletion provides shell completion for document names
func docNamesCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	env, err := initEnv(cmd)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	var names []string
	for _, doc := range docs.List(env.FS, env.Paths.AgentsDir(), env.Paths.SkillsDir()) {
		names = append(names, doc.Name)
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "init",
		Short:   MsgInitShort,
		Long:    MsgInitLong,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			rootFlag, _ := cmd.Root().PersistentFlags().GetString("root")

			p, err := paths.New(rootFlag, paths.Options{})
			if err != nil {
				return fmt.Errorf(MsgErrInitPaths, err)
			}

			log.Info().Str("repo_root", p.RepoRoot()).Msg("Scaffolding repository")

			// Init runs before any config file exists, so defaults are
			// enough here.
			result, err := commands.Init(commands.InitOptions{
				Env: commands.Env{FS: filesystem.NewOS(), Paths: p, Config: config.Default()},
			})
			if err != nil {
				return fmt.Errorf(MsgErrInit, err)
			}

			if len(result.CreatedDirs) == 0 && result.CreatedConfigFile == "" {
				fmt.Println(MsgInitNothingToDo)
				return nil
			}
			for _, dir := range result.CreatedDirs {
				fmt.Printf(MsgInitCreatedDir, dir)
			}
			if result.CreatedConfigFile != "" {
				fmt.Printf(MsgInitCreatedFile, result.CreatedConfigFile)
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("cursync %s (commit %s, built %s)\n",
				version.Version, version.Commit, version.Date)
			return nil
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
}
