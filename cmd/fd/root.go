package main

import (
	"bufio"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jmcomets/fd/internal/version"
	"github.com/jmcomets/fd/pkg/config"
	"github.com/jmcomets/fd/pkg/errors"
	"github.com/jmcomets/fd/pkg/logging"
	"github.com/jmcomets/fd/pkg/lscolors"
	"github.com/jmcomets/fd/pkg/scan"
	"github.com/jmcomets/fd/pkg/ui"
)

var (
	verbosity     int
	caseSensitive bool
	fullPath      bool
	hidden        bool
	noIgnore      bool
	follow        bool
	print0        bool
	absolutePath  bool
	noColor       bool
	maxDepth      int

	rootCmd = &cobra.Command{
		Use:     "fd [flags] [pattern] [path]",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Args:    cobra.MaximumNArgs(2),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE:          runSearch,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command. This is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")

	rootCmd.Flags().BoolVarP(&caseSensitive, "case-sensitive", "s", false, "Case-sensitive search (default: smart case)")
	rootCmd.Flags().BoolVarP(&fullPath, "full-path", "p", false, "Search full path (default: file-/dirname only)")
	rootCmd.Flags().BoolVarP(&hidden, "hidden", "H", false, "Search hidden files and directories")
	rootCmd.Flags().BoolVarP(&noIgnore, "no-ignore", "I", false, "Do not respect .(git)ignore files")
	rootCmd.Flags().BoolVarP(&follow, "follow", "f", false, "Follow symlinks")
	rootCmd.Flags().BoolVarP(&print0, "print0", "0", false, "Separate results by the null character")
	rootCmd.Flags().BoolVarP(&absolutePath, "absolute-path", "a", false, "Show absolute instead of relative paths")
	rootCmd.Flags().BoolVarP(&noColor, "no-color", "n", false, "Do not colorize output")
	rootCmd.Flags().IntVarP(&maxDepth, "max-depth", "d", 0, "Set maximum search depth (default: none)")

	initTemplateFormatting()

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(docsCmd)
	rootCmd.AddCommand(genConfigCmd)
	rootCmd.AddCommand(completionCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	pattern := ""
	if len(args) > 0 {
		pattern = args[0]
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	applyConfigDefaults(cmd, cfg)

	currentDir, err := os.Getwd()
	if err != nil {
		return errors.Wrap(err, errors.ErrCurrentDir, "could not get current directory")
	}

	rootDir := currentDir
	rootIsAbsolute := false
	if len(args) > 1 {
		rootIsAbsolute = filepath.IsAbs(args[1])
		rootDir, err = canonicalize(args[1])
		if err != nil {
			return errors.Wrapf(err, errors.ErrInvalidRoot, "could not find directory %q", args[1])
		}
	}
	if info, err := os.Stat(rootDir); err != nil || !info.IsDir() {
		return errors.Newf(errors.ErrNotADir, "%q is not a directory", rootDir)
	}

	re, err := scan.CompilePattern(pattern, scan.SmartCase(pattern, caseSensitive))
	if err != nil {
		return err
	}

	var colors *lscolors.LsColors
	if !noColor && ui.DetectFormat(os.Stdout) == ui.FormatTerminal {
		spec := cfg.LsColors
		if spec == "" {
			spec = os.Getenv("LS_COLORS")
		}
		if spec == "" {
			colors = lscolors.Default()
		} else {
			colors = lscolors.Parse(spec)
		}
	}

	absolute := absolutePath || rootIsAbsolute
	base := currentDir
	if absolute {
		base = string(filepath.Separator)
	}

	pipeline := scan.New(scan.Options{
		CaseSensitive:   caseSensitive,
		SearchFullPath:  fullPath,
		IncludeHidden:   hidden,
		ReadIgnoreFiles: !noIgnore,
		FollowSymlinks:  follow,
		NullSeparator:   print0,
		Absolute:        absolute,
		MaxDepth:        maxDepth,
		Colors:          colors,
	})

	writer := bufio.NewWriter(os.Stdout)
	defer func() {
		if err := writer.Flush(); err != nil {
			log.Error().Err(err).Msg("Failed flushing output")
		}
	}()

	return pipeline.Run(rootDir, base, re, writer)
}

// applyConfigDefaults fills flag values from the config file for every
// flag the user did not set explicitly.
func applyConfigDefaults(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if !flags.Changed("case-sensitive") {
		caseSensitive = cfg.CaseSensitive
	}
	if !flags.Changed("full-path") {
		fullPath = cfg.FullPath
	}
	if !flags.Changed("hidden") {
		hidden = cfg.Hidden
	}
	if !flags.Changed("no-ignore") {
		noIgnore = cfg.NoIgnore
	}
	if !flags.Changed("follow") {
		follow = cfg.Follow
	}
	if !flags.Changed("absolute-path") {
		absolutePath = cfg.AbsolutePath
	}
	if !flags.Changed("no-color") {
		noColor = cfg.NoColor
	}
	if !flags.Changed("max-depth") {
		maxDepth = cfg.MaxDepth
	}
}

// canonicalize resolves a user-supplied root to an absolute path with
// symlinks evaluated.
func canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("fd version %s\n", version.Version)
		cmd.Printf("  commit: %s\n", version.Commit)
		cmd.Printf("  built:  %s\n", version.Date)
	},
}

var completionCmd = &cobra.Command{
	Use:                   "completion [bash|zsh|fish|powershell]",
	Short:                 "Generate shell completion script",
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	Run: func(cmd *cobra.Command, args []string) {
		switch args[0] {
		case "bash":
			if err := cmd.Root().GenBashCompletion(cmd.OutOrStdout()); err != nil {
				log.Error().Err(err).Msg("Failed to generate bash completion")
			}
		case "zsh":
			if err := cmd.Root().GenZshCompletion(cmd.OutOrStdout()); err != nil {
				log.Error().Err(err).Msg("Failed to generate zsh completion")
			}
		case "fish":
			if err := cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true); err != nil {
				log.Error().Err(err).Msg("Failed to generate fish completion")
			}
		case "powershell":
			if err := cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout()); err != nil {
				log.Error().Err(err).Msg("Failed to generate powershell completion")
			}
		}
	},
}
