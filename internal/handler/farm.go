package handler

import (
	"net/http"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/mlarsden/PocketFarm_Go/internal/domain"
	"github.com/mlarsden/PocketFarm_Go/internal/game"
	"github.com/mlarsden/PocketFarm_Go/internal/logger"
)

// SlotActionRequest represents a player action targeting a single farm slot
type SlotActionRequest struct {
	PlayerID string `json:"player_id" validate:"required,max=100"`
	SlotID   string `json:"slot_id" validate:"required,slotid"`
}

// PlayerActionRequest represents a player action with no slot target (economy actions)
type PlayerActionRequest struct {
	PlayerID string `json:"player_id" validate:"required,max=100"`
}

// StateResponse wraps the resulting farm state after an action
type StateResponse struct {
	Message string           `json:"message,omitempty"`
	State   domain.GameState `json:"state"`
}

// BoostCostResponse reports the gem price to force-complete a slot's timer
type BoostCostResponse struct {
	SlotID string `json:"slot_id"`
	Gems   int    `json:"gems"`
}

// SlotProgressResponse reports how far along a slot's timer is, 0 to 1
type SlotProgressResponse struct {
	SlotID   string  `json:"slot_id"`
	Progress float64 `json:"progress"`
}

// FarmHandler handles farm gameplay HTTP requests
type FarmHandler struct {
	gameSvc game.Service
	printer *message.Printer
}

// NewFarmHandler creates a new farm handler
func NewFarmHandler(gameSvc game.Service) *FarmHandler {
	return &FarmHandler{
		gameSvc: gameSvc,
		printer: message.NewPrinter(language.English),
	}
}

// HandleGetState returns the player's current farm state
func (h *FarmHandler) HandleGetState(w http.ResponseWriter, r *http.Request) {
	playerID, ok := GetQueryParam(r, w, "player_id")
	if !ok {
		return
	}

	st, err := h.gameSvc.GetState(r.Context(), playerID)
	if err != nil {
		logger.FromContext(r.Context()).Error("Get state failed", "error", err, "playerID", playerID)
		statusCode, userMsg := mapServiceErrorToUserMessage(err)
		respondError(w, statusCode, userMsg)
		return
	}

	respondJSON(w, http.StatusOK, StateResponse{State: st})
}

// HandleBoostCost returns the current gem price to boost a slot
func (h *FarmHandler) HandleBoostCost(w http.ResponseWriter, r *http.Request) {
	playerID, ok := GetQueryParam(r, w, "player_id")
	if !ok {
		return
	}
	slotID, ok := GetQueryParam(r, w, "slot_id")
	if !ok {
		return
	}

	gems, err := h.gameSvc.BoostCost(r.Context(), playerID, slotID)
	if err != nil {
		logger.FromContext(r.Context()).Error("Boost cost failed", "error", err, "playerID", playerID, "slotID", slotID)
		statusCode, userMsg := mapServiceErrorToUserMessage(err)
		respondError(w, statusCode, userMsg)
		return
	}

	respondJSON(w, http.StatusOK, BoostCostResponse{SlotID: slotID, Gems: gems})
}

// HandleSlotProgress returns the completion fraction of a slot's timer
func (h *FarmHandler) HandleSlotProgress(w http.ResponseWriter, r *http.Request) {
	playerID, ok := GetQueryParam(r, w, "player_id")
	if !ok {
		return
	}
	slotID, ok := GetQueryParam(r, w, "slot_id")
	if !ok {
		return
	}

	progress, err := h.gameSvc.SlotProgress(r.Context(), playerID, slotID)
	if err != nil {
		logger.FromContext(r.Context()).Error("Slot progress failed", "error", err, "playerID", playerID, "slotID", slotID)
		statusCode, userMsg := mapServiceErrorToUserMessage(err)
		respondError(w, statusCode, userMsg)
		return
	}

	respondJSON(w, http.StatusOK, SlotProgressResponse{SlotID: slotID, Progress: progress})
}

// slotAction is the shared flow for all slot-targeted actions: decode,
// validate, dispatch, map errors, respond with the new state.
func (h *FarmHandler) slotAction(w http.ResponseWriter, r *http.Request, opName string, call func(playerID, slotID string) (domain.GameState, error)) {
	log := logger.FromContext(r.Context())

	var req SlotActionRequest
	if err := DecodeAndValidateRequest(r, w, &req, opName); err != nil {
		return
	}

	log.Info(opName+" request received", "playerID", req.PlayerID, "slotID", req.SlotID)

	st, err := call(req.PlayerID, req.SlotID)
	if err != nil {
		log.Warn(opName+" rejected", "error", err, "playerID", req.PlayerID, "slotID", req.SlotID)
		statusCode, userMsg := mapServiceErrorToUserMessage(err)
		respondError(w, statusCode, userMsg)
		return
	}

	respondJSON(w, http.StatusOK, StateResponse{State: st})
}

// playerAction is the shared flow for economy actions with no slot target.
func (h *FarmHandler) playerAction(w http.ResponseWriter, r *http.Request, opName string, call func(playerID string) (domain.GameState, error)) {
	log := logger.FromContext(r.Context())

	var req PlayerActionRequest
	if err := DecodeAndValidateRequest(r, w, &req, opName); err != nil {
		return
	}

	log.Info(opName+" request received", "playerID", req.PlayerID)

	st, err := call(req.PlayerID)
	if err != nil {
		log.Warn(opName+" rejected", "error", err, "playerID", req.PlayerID)
		statusCode, userMsg := mapServiceErrorToUserMessage(err)
		respondError(w, statusCode, userMsg)
		return
	}

	respondJSON(w, http.StatusOK, StateResponse{
		Message: h.printer.Sprintf("Balance: %d coins, %d gems", st.Resources.Coins, st.Resources.Gems),
		State:   st,
	})
}

// HandlePlant starts crop production on an unlocked, idle crop slot
func (h *FarmHandler) HandlePlant(w http.ResponseWriter, r *http.Request) {
	h.slotAction(w, r, "Plant", func(playerID, slotID string) (domain.GameState, error) {
		return h.gameSvc.Plant(r.Context(), playerID, slotID)
	})
}

// HandleFeed starts animal production on an unlocked, idle animal slot
func (h *FarmHandler) HandleFeed(w http.ResponseWriter, r *http.Request) {
	h.slotAction(w, r, "Feed", func(playerID, slotID string) (domain.GameState, error) {
		return h.gameSvc.Feed(r.Context(), playerID, slotID)
	})
}

// HandleHarvest collects a finished crop
func (h *FarmHandler) HandleHarvest(w http.ResponseWriter, r *http.Request) {
	h.slotAction(w, r, "Harvest", func(playerID, slotID string) (domain.GameState, error) {
		return h.gameSvc.Harvest(r.Context(), playerID, slotID)
	})
}

// HandleCollect collects finished animal produce
func (h *FarmHandler) HandleCollect(w http.ResponseWriter, r *http.Request) {
	h.slotAction(w, r, "Collect", func(playerID, slotID string) (domain.GameState, error) {
		return h.gameSvc.Collect(r.Context(), playerID, slotID)
	})
}

// HandleBoost force-completes a running timer for gems
func (h *FarmHandler) HandleBoost(w http.ResponseWriter, r *http.Request) {
	h.slotAction(w, r, "Boost", func(playerID, slotID string) (domain.GameState, error) {
		return h.gameSvc.Boost(r.Context(), playerID, slotID)
	})
}

// HandleUpgrade raises a slot's level for coins
func (h *FarmHandler) HandleUpgrade(w http.ResponseWriter, r *http.Request) {
	h.slotAction(w, r, "Upgrade", func(playerID, slotID string) (domain.GameState, error) {
		return h.gameSvc.Upgrade(r.Context(), playerID, slotID)
	})
}

// HandleGemUpgrade raises a slot's gem upgrade level
func (h *FarmHandler) HandleGemUpgrade(w http.ResponseWriter, r *http.Request) {
	h.slotAction(w, r, "Gem upgrade", func(playerID, slotID string) (domain.GameState, error) {
		return h.gameSvc.GemUpgrade(r.Context(), playerID, slotID)
	})
}

// HandleUnlockSlot unlocks a gated slot once its requirements are met
func (h *FarmHandler) HandleUnlockSlot(w http.ResponseWriter, r *http.Request) {
	h.slotAction(w, r, "Unlock slot", func(playerID, slotID string) (domain.GameState, error) {
		return h.gameSvc.UnlockSlot(r.Context(), playerID, slotID)
	})
}

// HandleSellProduce sells the entire barn for coins
func (h *FarmHandler) HandleSellProduce(w http.ResponseWriter, r *http.Request) {
	h.playerAction(w, r, "Sell produce", func(playerID string) (domain.GameState, error) {
		return h.gameSvc.SellProduce(r.Context(), playerID)
	})
}

// HandleBuyFeed buys a pack of animal feed for coins
func (h *FarmHandler) HandleBuyFeed(w http.ResponseWriter, r *http.Request) {
	h.playerAction(w, r, "Buy feed", func(playerID string) (domain.GameState, error) {
		return h.gameSvc.BuyFeed(r.Context(), playerID)
	})
}

// HandleExchangeGems converts gems into coins
func (h *FarmHandler) HandleExchangeGems(w http.ResponseWriter, r *http.Request) {
	h.playerAction(w, r, "Exchange gems", func(playerID string) (domain.GameState, error) {
		return h.gameSvc.ExchangeGemsToCoins(r.Context(), playerID)
	})
}

// HandleExchangeCoins converts coins into gems
func (h *FarmHandler) HandleExchangeCoins(w http.ResponseWriter, r *http.Request) {
	h.playerAction(w, r, "Exchange coins", func(playerID string) (domain.GameState, error) {
		return h.gameSvc.ExchangeCoinsToGems(r.Context(), playerID)
	})
}
