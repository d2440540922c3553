package arena

import (
	"context"
	"time"

	"github.com/fightcore/fight-engine/internal/combat"
	"github.com/fightcore/fight-engine/internal/scoreboard"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Bout runs rounds on an engine until one fighter reaches the win
// target. It is the round-management collaborator: it listens for the
// death signal, records the round winner, resets the arena between
// rounds and persists the bout result through the score store.
type Bout struct {
	id     string
	logger *zap.Logger

	engine      *Engine
	store       scoreboard.Store
	roundsToWin int

	round     int
	wins      map[string]int
	roundOver bool
	winner    string

	deathHandle int
}

// NewBout creates a bout on the given engine and starts round one.
func NewBout(engine *Engine, roundsToWin int, store scoreboard.Store, logger *zap.Logger) *Bout {
	if logger == nil {
		logger = zap.NewNop()
	}
	if roundsToWin < 1 {
		roundsToWin = 1
	}
	b := &Bout{
		id:          uuid.NewString(),
		logger:      logger,
		engine:      engine,
		store:       store,
		roundsToWin: roundsToWin,
		round:       1,
		wins:        make(map[string]int),
	}
	b.deathHandle = engine.Bus().SubscribeTyped(combat.EventCharacterDied, b.onDeath)
	return b
}

// ID returns the bout's unique ID.
func (b *Bout) ID() string {
	return b.id
}

// Round returns the current round number, 1-based.
func (b *Bout) Round() int {
	return b.round
}

// RoundOver reports whether the current round has ended.
func (b *Bout) RoundOver() bool {
	return b.roundOver
}

// Finished reports whether a fighter has won the bout.
func (b *Bout) Finished() bool {
	return b.winner != ""
}

// Winner returns the bout winner's name, empty while unfinished.
func (b *Bout) Winner() string {
	return b.winner
}

// Wins returns the round wins recorded for a fighter this bout.
func (b *Bout) Wins(fighter string) int {
	return b.wins[fighter]
}

// Tick advances the simulation unless the current round is over.
func (b *Bout) Tick(dt time.Duration) {
	if b.roundOver {
		return
	}
	b.engine.Tick(dt)
}

// StartNextRound resets the arena for the next round. No-op while the
// current round is still running or once the bout is finished.
func (b *Bout) StartNextRound() {
	if !b.roundOver || b.Finished() {
		return
	}
	b.round++
	b.roundOver = false
	b.engine.ResetRound()

	evt := combat.NewEvent(combat.EventRoundReset, "", b.id, b.engine.Clock().Now())
	evt.Amount = float64(b.round)
	b.engine.Bus().Publish(evt)
}

// Close unsubscribes the bout from the engine bus.
func (b *Bout) Close() {
	b.engine.Bus().Unsubscribe(b.deathHandle)
}

// onDeath ends the round. The first death event wins; a simultaneous
// double knockout still records exactly one round winner.
func (b *Bout) onDeath(evt combat.Event) {
	if b.roundOver {
		return
	}
	b.roundOver = true

	winner := b.engine.Player()
	if evt.TargetID == winner.ID() {
		winner = b.engine.Opponent()
	}
	b.wins[winner.Name()]++

	b.logger.Info("round ended",
		zap.String("bout", b.id),
		zap.Int("round", b.round),
		zap.String("winner", winner.Name()),
		zap.Int("wins", b.wins[winner.Name()]),
	)

	ended := combat.NewEvent(combat.EventRoundEnded, winner.ID(), b.id, b.engine.Clock().Now())
	ended.Amount = float64(b.round)
	ended.Data = winner.Name()
	b.engine.Bus().Publish(ended)

	if b.wins[winner.Name()] >= b.roundsToWin {
		b.finish(winner.Name())
	}
}

func (b *Bout) finish(winner string) {
	b.winner = winner
	b.logger.Info("bout ended",
		zap.String("bout", b.id),
		zap.String("winner", winner),
	)

	if b.store != nil {
		if err := b.store.RecordWin(context.Background(), winner); err != nil {
			b.logger.Warn("failed to persist bout result", zap.Error(err))
		}
	}

	evt := combat.NewEvent(combat.EventBoutEnded, "", b.id, b.engine.Clock().Now())
	evt.Data = winner
	b.engine.Bus().Publish(evt)
}
