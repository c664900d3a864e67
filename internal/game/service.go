package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mlarsden/PocketFarm_Go/internal/domain"
	"github.com/mlarsden/PocketFarm_Go/internal/event"
	"github.com/mlarsden/PocketFarm_Go/internal/logger"
	"github.com/mlarsden/PocketFarm_Go/internal/metrics"
	"github.com/mlarsden/PocketFarm_Go/internal/reconcile"
	"github.com/mlarsden/PocketFarm_Go/internal/reducer"
	"github.com/mlarsden/PocketFarm_Go/internal/repository"
	"github.com/mlarsden/PocketFarm_Go/internal/state"
)

// Service is the dispatch surface over the reducer: it owns per-player
// sessions, routes player intents into reducer transitions, and leaves
// persistence to each session's reconcile manager.
type Service interface {
	GetState(ctx context.Context, playerID string) (domain.GameState, error)
	BoostCost(ctx context.Context, playerID, slotID string) (int, error)
	SlotProgress(ctx context.Context, playerID, slotID string) (float64, error)

	Plant(ctx context.Context, playerID, slotID string) (domain.GameState, error)
	Feed(ctx context.Context, playerID, slotID string) (domain.GameState, error)
	Harvest(ctx context.Context, playerID, slotID string) (domain.GameState, error)
	Collect(ctx context.Context, playerID, slotID string) (domain.GameState, error)
	Boost(ctx context.Context, playerID, slotID string) (domain.GameState, error)
	Upgrade(ctx context.Context, playerID, slotID string) (domain.GameState, error)
	GemUpgrade(ctx context.Context, playerID, slotID string) (domain.GameState, error)
	UnlockSlot(ctx context.Context, playerID, slotID string) (domain.GameState, error)
	SellProduce(ctx context.Context, playerID string) (domain.GameState, error)
	BuyFeed(ctx context.Context, playerID string) (domain.GameState, error)
	ExchangeGemsToCoins(ctx context.Context, playerID string) (domain.GameState, error)
	ExchangeCoinsToGems(ctx context.Context, playerID string) (domain.GameState, error)

	Shutdown(ctx context.Context) error
}

// Options tunes session reconciliation.
type Options struct {
	SyncDebounce  time.Duration
	FlushInterval time.Duration
	PullInterval  time.Duration
}

type service struct {
	repo   repository.Snapshot
	engine *reducer.Engine
	bus    event.Bus
	opts   Options

	mu       sync.Mutex
	sessions map[string]*reconcile.Manager
}

// NewService creates a new game service
func NewService(repo repository.Snapshot, engine *reducer.Engine, bus event.Bus, opts Options) Service {
	return &service{
		repo:     repo,
		engine:   engine,
		bus:      bus,
		opts:     opts,
		sessions: make(map[string]*reconcile.Manager),
	}
}

// session returns the player's reconcile manager, creating and seeding it
// on first use. A player with no stored snapshot starts from the template.
func (s *service) session(ctx context.Context, playerID string) (*reconcile.Manager, error) {
	s.mu.Lock()
	if sess, ok := s.sessions[playerID]; ok {
		s.mu.Unlock()
		return sess, nil
	}
	s.mu.Unlock()

	log := logger.FromContext(ctx)

	initial, err := s.repo.GetSnapshot(ctx, playerID)
	if err != nil {
		if !errors.Is(err, domain.ErrSnapshotNotFound) {
			return nil, fmt.Errorf("failed to load snapshot: %w", err)
		}
		fresh := state.NewGameState()
		initial = &fresh
		// Best effort; the session flushes again on the first action.
		if err := s.repo.SaveSnapshot(ctx, playerID, fresh); err != nil {
			log.Warn("Initial snapshot save failed", "playerID", playerID, "error", err)
		}
		log.Info("New farm created", "playerID", playerID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[playerID]; ok {
		return sess, nil
	}
	sess := reconcile.NewManager(playerID, state.EnsureExtendedState(*initial), s.repo, s.bus, s.opts.SyncDebounce)
	sess.Start(s.opts.FlushInterval, s.opts.PullInterval)
	s.sessions[playerID] = sess
	return sess, nil
}

// GetState returns the player's current local snapshot.
func (s *service) GetState(ctx context.Context, playerID string) (domain.GameState, error) {
	sess, err := s.session(ctx, playerID)
	if err != nil {
		return domain.GameState{}, err
	}
	return sess.Current(), nil
}

// BoostCost is the read-only affordability query for the boost action.
func (s *service) BoostCost(ctx context.Context, playerID, slotID string) (int, error) {
	sess, err := s.session(ctx, playerID)
	if err != nil {
		return 0, err
	}
	return s.engine.BoostCost(sess.Current(), slotID), nil
}

// SlotProgress reports how far along the slot's timer is, from 0 (just
// started or no timer running) to 1 (complete).
func (s *service) SlotProgress(ctx context.Context, playerID, slotID string) (float64, error) {
	sess, err := s.session(ctx, playerID)
	if err != nil {
		return 0, err
	}
	current := sess.Current()
	slot := current.FindSlot(slotID)
	if slot == nil {
		return 0, fmt.Errorf("%w: %s", domain.ErrSlotNotFound, slotID)
	}
	return s.engine.TimerProgress(slot.Timer), nil
}

// dispatch runs one reducer transition through the player's session and
// publishes the outcome.
func (s *service) dispatch(ctx context.Context, playerID, action, slotID string, apply func(domain.GameState) (domain.GameState, error)) (domain.GameState, error) {
	log := logger.FromContext(ctx)
	log.Info("Action dispatched", "playerID", playerID, "action", action, "slotID", slotID)

	sess, err := s.session(ctx, playerID)
	if err != nil {
		return domain.GameState{}, err
	}

	next, err := sess.Dispatch(apply)
	if err != nil {
		log.Info("Action rejected", "playerID", playerID, "action", action, "reason", err)
		s.publish(ctx, event.NewActionRejectedEvent(playerID, action, slotID, err.Error()))
		return next, err
	}

	s.publish(ctx, event.NewActionAppliedEvent(playerID, action, slotID, next.Revision))
	return next, nil
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn("Event publish failed", "type", evt.Type, "error", err)
	}
}

func (s *service) Plant(ctx context.Context, playerID, slotID string) (domain.GameState, error) {
	return s.dispatch(ctx, playerID, reducer.ActionPlant, slotID, func(gs domain.GameState) (domain.GameState, error) {
		return s.engine.Plant(gs, slotID)
	})
}

func (s *service) Feed(ctx context.Context, playerID, slotID string) (domain.GameState, error) {
	return s.dispatch(ctx, playerID, reducer.ActionFeed, slotID, func(gs domain.GameState) (domain.GameState, error) {
		return s.engine.Feed(gs, slotID)
	})
}

func (s *service) Harvest(ctx context.Context, playerID, slotID string) (domain.GameState, error) {
	return s.dispatch(ctx, playerID, reducer.ActionHarvest, slotID, func(gs domain.GameState) (domain.GameState, error) {
		return s.engine.Harvest(gs, slotID)
	})
}

func (s *service) Collect(ctx context.Context, playerID, slotID string) (domain.GameState, error) {
	return s.dispatch(ctx, playerID, reducer.ActionCollect, slotID, func(gs domain.GameState) (domain.GameState, error) {
		return s.engine.Collect(gs, slotID)
	})
}

func (s *service) Boost(ctx context.Context, playerID, slotID string) (domain.GameState, error) {
	return s.dispatch(ctx, playerID, reducer.ActionBoost, slotID, func(gs domain.GameState) (domain.GameState, error) {
		return s.engine.Boost(gs, slotID)
	})
}

func (s *service) Upgrade(ctx context.Context, playerID, slotID string) (domain.GameState, error) {
	return s.dispatch(ctx, playerID, reducer.ActionUpgrade, slotID, func(gs domain.GameState) (domain.GameState, error) {
		return s.engine.Upgrade(gs, slotID)
	})
}

func (s *service) GemUpgrade(ctx context.Context, playerID, slotID string) (domain.GameState, error) {
	return s.dispatch(ctx, playerID, reducer.ActionGemUpgrade, slotID, func(gs domain.GameState) (domain.GameState, error) {
		return s.engine.GemUpgrade(gs, slotID)
	})
}

func (s *service) UnlockSlot(ctx context.Context, playerID, slotID string) (domain.GameState, error) {
	return s.dispatch(ctx, playerID, reducer.ActionUnlock, slotID, func(gs domain.GameState) (domain.GameState, error) {
		return s.engine.UnlockSlot(gs, slotID)
	})
}

func (s *service) SellProduce(ctx context.Context, playerID string) (domain.GameState, error) {
	return s.dispatch(ctx, playerID, reducer.ActionSell, "", func(gs domain.GameState) (domain.GameState, error) {
		next, err := s.engine.SellProduce(gs)
		if err == nil {
			metrics.ProduceSold.Add(float64(next.Resources.Coins - gs.Resources.Coins))
		}
		return next, err
	})
}

func (s *service) BuyFeed(ctx context.Context, playerID string) (domain.GameState, error) {
	return s.dispatch(ctx, playerID, reducer.ActionBuyFeed, "", func(gs domain.GameState) (domain.GameState, error) {
		return s.engine.BuyFeed(gs)
	})
}

func (s *service) ExchangeGemsToCoins(ctx context.Context, playerID string) (domain.GameState, error) {
	return s.dispatch(ctx, playerID, reducer.ActionExchangeGems, "", func(gs domain.GameState) (domain.GameState, error) {
		return s.engine.ExchangeGemsToCoins(gs)
	})
}

func (s *service) ExchangeCoinsToGems(ctx context.Context, playerID string) (domain.GameState, error) {
	return s.dispatch(ctx, playerID, reducer.ActionExchangeCoins, "", func(gs domain.GameState) (domain.GameState, error) {
		return s.engine.ExchangeCoinsToGems(gs)
	})
}

// Shutdown stops every session, performing a best-effort final flush of
// unsent local progress.
func (s *service) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	sessions := make([]*reconcile.Manager, 0, len(s.sessions))
	for _, sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	s.sessions = make(map[string]*reconcile.Manager)
	s.mu.Unlock()

	for _, sess := range sessions {
		sess.Stop(ctx)
	}
	return nil
}
