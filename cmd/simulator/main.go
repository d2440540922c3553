package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/fightcore/fight-engine/internal/arena"
	"github.com/fightcore/fight-engine/internal/combat"
	"github.com/fightcore/fight-engine/internal/config"
	"github.com/fightcore/fight-engine/internal/scoreboard"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configPath = flag.String("config", "", "path to configuration file (defaults apply when empty)")
	seed       = flag.Int64("seed", 0, "RNG seed; 0 picks one from the wall clock")
	maxSimTime = flag.Duration("max-sim-time", 10*time.Minute, "abort the bout after this much simulated time")
	version    = "dev" // set via ldflags during build
)

// playerCommands is the scripted stand-in for the voice-command
// boundary: the player side issues one of these at a fixed cadence.
var playerCommands = []string{"Punch", "Kick", "UpperCut", "Block"}

const playerCommandInterval = 3 * time.Second

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(rngSeed))

	logger.Info("starting fight simulator",
		zap.String("version", version),
		zap.String("config", *configPath),
		zap.Int64("seed", rngSeed),
	)

	ctx := context.Background()

	var store scoreboard.Store
	if cfg.Database.Enabled {
		pgStore, storeErr := scoreboard.NewPostgresStore(ctx, cfg.Database.DSN, logger)
		if storeErr != nil {
			logger.Fatal("failed to connect score store", zap.Error(storeErr))
		}
		defer pgStore.Close()
		store = pgStore
	} else {
		store = scoreboard.NewMemoryStore()
		logger.Info("using in-memory score store")
	}

	opts := arena.Options{
		Combat:        cfg.Combat,
		AI:            cfg.AI,
		PlayerName:    cfg.Bout.PlayerName,
		OpponentName:  cfg.Bout.OpponentName,
		SpawnDistance: cfg.Bout.SpawnDistance,
	}
	engine := arena.NewEngine(opts, rng, logger)

	engine.Bus().SubscribeTyped(combat.EventHitLanded, func(evt combat.Event) {
		logger.Debug("hit",
			zap.String("kind", evt.Kind.String()),
			zap.Float64("damage", evt.Amount),
		)
	})

	bout := arena.NewBout(engine, cfg.Bout.RoundsToWin, store, logger)
	defer bout.Close()

	runBout(engine, bout, cfg, rng, logger)

	if !bout.Finished() {
		logger.Warn("bout did not finish within the simulation budget",
			zap.Duration("max_sim_time", *maxSimTime),
		)
		return
	}

	logger.Info("bout finished",
		zap.String("winner", bout.Winner()),
		zap.Int("player_rounds", bout.Wins(cfg.Bout.PlayerName)),
		zap.Int("opponent_rounds", bout.Wins(cfg.Bout.OpponentName)),
	)

	wins, err := store.Wins(ctx, bout.Winner())
	if err != nil {
		logger.Warn("failed to read score store", zap.Error(err))
		return
	}
	logger.Info("career wins", zap.String("fighter", bout.Winner()), zap.Int("wins", wins))
}

// runBout ticks the simulation at the configured rate until the bout
// finishes or the simulated-time budget runs out. The player side is
// scripted: it issues a random command at a fixed cadence.
func runBout(engine *arena.Engine, bout *arena.Bout, cfg *config.Config, rng *rand.Rand, logger *zap.Logger) {
	dt := time.Second / time.Duration(cfg.Bout.TickRate)
	nextCommand := playerCommandInterval

	for !bout.Finished() && engine.Clock().Now() < *maxSimTime {
		bout.Tick(dt)

		if bout.RoundOver() && !bout.Finished() {
			bout.StartNextRound()
			nextCommand = engine.Clock().Now() + playerCommandInterval
			continue
		}

		if engine.Clock().Now() >= nextCommand {
			cmd := playerCommands[rng.Intn(len(playerCommands))]
			if engine.PlayerCommand(cmd) {
				logger.Debug("player command", zap.String("command", cmd))
			}
			nextCommand = engine.Clock().Now() + playerCommandInterval
		}
	}
}

// initLogger initializes the zap logger based on configuration
func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
