package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/wren/pkg/config"
	"github.com/simonhull/firebird-suite/wren/pkg/grammar"
	"github.com/simonhull/firebird-suite/wren/pkg/loader"
	"github.com/simonhull/firebird-suite/wren/pkg/logger"
	"github.com/simonhull/firebird-suite/wren/pkg/output"
)

// session is everything a command needs after configuration is resolved
type session struct {
	cfg *config.Config
	log logger.Logger
}

// newSession loads configuration and builds the logger. --verbose forces
// debug level regardless of log.level.
func newSession(cmd *cobra.Command) (*session, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log.level: %w", err)
	}
	if output.IsVerbose() {
		level = logger.LevelDebug
	}

	log := logger.NewLogger(level, cmd.ErrOrStderr())
	logger.SetDefault(log)
	return &session{cfg: cfg, log: log}, nil
}

// schemaPath picks the schema location: positional argument, then --schema,
// then schema.path from configuration.
func (s *session) schemaPath(cmd *cobra.Command, args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	if flag, _ := cmd.Flags().GetString("schema"); flag != "" {
		return flag
	}
	return s.cfg.Schema.Path
}

// load reads and parses the schema at path with a fresh parser. Commands
// that print diagnostics themselves pass quiet so each problem shows once.
func (s *session) load(path string, quiet bool) (*loader.Source, *grammar.Parser, error) {
	output.Verbose("Loading schema from: " + path)

	src, err := loader.LoadWithOptions(path, loader.Options{Extension: s.cfg.Schema.Extension})
	if err != nil {
		return nil, nil, err
	}

	parseLog := s.log.WithFields(logger.F("source", path))
	if quiet && !output.IsVerbose() {
		parseLog = logger.NewSilentLogger()
	}

	p := grammar.NewParser(
		grammar.WithLogger(parseLog),
		grammar.WithTranslatableType(s.cfg.Schema.TranslatableType),
	)
	p.Parse(src.Text, false)

	output.Verbose(fmt.Sprintf("Parsed %d tags from %d file(s)", p.Grammar().Len(), len(src.Files)))
	return src, p, nil
}
