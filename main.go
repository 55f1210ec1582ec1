// Package main provides the entry point for the relisten CLI application.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/dgnsrekt/relisten/align"
	"github.com/dgnsrekt/relisten/audio"
	"github.com/dgnsrekt/relisten/playback"
	"github.com/dgnsrekt/relisten/transcript"
	"github.com/dgnsrekt/relisten/ui"
	"github.com/dgnsrekt/relisten/utils"
)

var (
	// Version as provided by goreleaser.
	Version = ""
	// CommitSHA as provided by goreleaser.
	CommitSHA = ""

	configFile   string
	repeatMode   string
	repeatTarget int
	tolerance    time.Duration
	interval     time.Duration
	watch        bool
	mouse        bool

	rootCmd = &cobra.Command{
		Use:   "relisten AUDIO [TRANSCRIPT]",
		Short: "Practice listening one sentence at a time",
		Long: paragraph(
			fmt.Sprintf("\nPlay a recording %s, with optional automatic repetition of each sentence before moving on. The transcript defaults to the audio path with a .json extension.", keyword("one sentence at a time")),
		),
		SilenceErrors:    false,
		SilenceUsage:     true,
		TraverseChildren: true,
		Args:             cobra.RangeArgs(1, 2),
		ValidArgsFunction: func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
			return nil, cobra.ShellCompDirectiveDefault
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return validateOptions(cmd)
		},
		RunE: execute,
	}
)

func validateOptions(_ *cobra.Command) error {
	// grab config values from Viper
	repeatMode = viper.GetString("playback.repeat_mode")
	repeatTarget = viper.GetInt("playback.repeat_target")
	tolerance = viper.GetDuration("playback.boundary_tolerance")
	interval = viper.GetDuration("playback.sample_interval")
	watch = viper.GetBool("watch")
	mouse = viper.GetBool("mouse")

	switch repeatMode {
	case "off", "sentence", "all":
	default:
		return fmt.Errorf("invalid repeat mode %q: use off, sentence or all", repeatMode)
	}
	if repeatTarget < 1 {
		repeatTarget = 1
	}
	if tolerance <= 0 {
		tolerance = playback.DefaultBoundaryTolerance
	}
	if interval <= 0 {
		interval = playback.DefaultSampleInterval
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("relisten needs a terminal to run in")
	}
	return nil
}

// transcriptPathFor derives the transcript path when it was not given
// explicitly: the audio path with its extension swapped for .json.
func transcriptPathFor(audioPath string) string {
	ext := filepath.Ext(audioPath)
	return strings.TrimSuffix(audioPath, ext) + ".json"
}

func execute(_ *cobra.Command, args []string) error {
	audioPath := utils.ExpandPath(args[0])
	transcriptPath := transcriptPathFor(audioPath)
	if len(args) > 1 {
		transcriptPath = utils.ExpandPath(args[1])
	}

	wav, err := audio.LoadWAV(audioPath)
	if err != nil {
		return err
	}
	log.Debug("Audio loaded",
		"path", audioPath,
		"sample_rate", wav.SampleRate,
		"channels", wav.Channels,
		"duration", wav.Duration(),
	)

	words, err := transcript.Load(transcriptPath)
	if err != nil {
		return err
	}
	segments := align.Align(words)
	log.Debug("Transcript aligned", "words", len(words), "segments", len(segments))

	player, err := audio.NewPlayer(wav)
	if err != nil {
		return err
	}

	return runTUI(audioPath, transcriptPath, player, segments)
}

func runTUI(audioPath, transcriptPath string, player ui.Player, segments []align.Segment) error {
	// Read environment to get debugging stuff
	cfg, err := env.ParseAs[ui.Config]()
	if err != nil {
		return fmt.Errorf("error parsing config: %v", err)
	}

	cfg.AudioPath = audioPath
	cfg.TranscriptPath = transcriptPath
	cfg.RepeatMode = repeatMode
	cfg.RepeatTarget = repeatTarget
	cfg.BoundaryTolerance = tolerance
	cfg.SampleInterval = interval
	cfg.WatchTranscript = watch
	cfg.EnableMouse = mouse

	// Run Bubble Tea program
	if _, err := ui.NewProgram(cfg, player, segments).Run(); err != nil {
		return fmt.Errorf("unable to run tui program: %w", err)
	}
	return nil
}

func main() {
	closer, err := setupLog()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if err := rootCmd.Execute(); err != nil {
		_ = closer()
		os.Exit(1)
	}
	_ = closer()
}

func init() {
	tryLoadConfigFromDefaultPlaces()
	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		Version = "unknown (built from source)"
	}
	rootCmd.Version = Version
	rootCmd.InitDefaultCompletionCmd()

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", fmt.Sprintf("config file (default %s)", viper.GetViper().ConfigFileUsed()))
	rootCmd.Flags().StringVarP(&repeatMode, "repeat", "r", "off", "repeat mode: off, sentence or all")
	rootCmd.Flags().IntVarP(&repeatTarget, "count", "c", 2, "plays per sentence when repeating")
	rootCmd.Flags().DurationVar(&tolerance, "tolerance", playback.DefaultBoundaryTolerance, "sentence-end detection window")
	rootCmd.Flags().DurationVar(&interval, "interval", playback.DefaultSampleInterval, "position sampling period")
	rootCmd.Flags().BoolVarP(&watch, "watch", "w", false, "reload when the transcript changes")
	rootCmd.Flags().BoolVarP(&mouse, "mouse", "m", false, "enable mouse wheel")
	_ = rootCmd.Flags().MarkHidden("mouse")

	// Config bindings
	_ = viper.BindPFlag("playback.repeat_mode", rootCmd.Flags().Lookup("repeat"))
	_ = viper.BindPFlag("playback.repeat_target", rootCmd.Flags().Lookup("count"))
	_ = viper.BindPFlag("playback.boundary_tolerance", rootCmd.Flags().Lookup("tolerance"))
	_ = viper.BindPFlag("playback.sample_interval", rootCmd.Flags().Lookup("interval"))
	_ = viper.BindPFlag("watch", rootCmd.Flags().Lookup("watch"))
	_ = viper.BindPFlag("mouse", rootCmd.Flags().Lookup("mouse"))

	viper.SetDefault("playback.repeat_mode", "off")
	viper.SetDefault("playback.repeat_target", 2)
	viper.SetDefault("playback.boundary_tolerance", playback.DefaultBoundaryTolerance)
	viper.SetDefault("playback.sample_interval", playback.DefaultSampleInterval)
	viper.SetDefault("watch", false)

	rootCmd.AddCommand(configCmd, manCmd)
}

func tryLoadConfigFromDefaultPlaces() {
	scope := gap.NewScope(gap.User, "relisten")
	dirs, err := scope.ConfigDirs()
	if err != nil {
		fmt.Println("Could not load find configuration directory.")
		os.Exit(1)
	}

	if c := os.Getenv("XDG_CONFIG_HOME"); c != "" {
		dirs = append([]string{filepath.Join(c, "relisten")}, dirs...)
	}

	if c := os.Getenv("RELISTEN_CONFIG_HOME"); c != "" {
		dirs = append([]string{c}, dirs...)
	}

	for _, v := range dirs {
		viper.AddConfigPath(v)
	}

	viper.SetConfigName("relisten")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("relisten")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Warn("Could not parse configuration file", "err", err)
		}
	}

	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug("Using configuration file", "path", viper.ConfigFileUsed())
		return
	}

	if viper.ConfigFileUsed() == "" {
		configFile = filepath.Join(dirs[0], "relisten.yml")
	}
	if err := ensureConfigFile(); err != nil {
		log.Error("Could not create default configuration", "error", err)
	}
}
