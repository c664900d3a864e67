package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlarsden/PocketFarm_Go/internal/domain"
	"github.com/mlarsden/PocketFarm_Go/internal/handler"
	"github.com/mlarsden/PocketFarm_Go/internal/state"
)

// fakeGameService implements game.Service with canned responses.
type fakeGameService struct {
	state     domain.GameState
	boostCost int
	progress  float64
	err       error

	lastPlayerID string
	lastSlotID   string
	calls        int
}

func (f *fakeGameService) record(playerID, slotID string) (domain.GameState, error) {
	f.calls++
	f.lastPlayerID = playerID
	f.lastSlotID = slotID
	if f.err != nil {
		return f.state, f.err
	}
	return f.state, nil
}

func (f *fakeGameService) GetState(_ context.Context, playerID string) (domain.GameState, error) {
	return f.record(playerID, "")
}

func (f *fakeGameService) BoostCost(_ context.Context, playerID, slotID string) (int, error) {
	_, err := f.record(playerID, slotID)
	return f.boostCost, err
}

func (f *fakeGameService) SlotProgress(_ context.Context, playerID, slotID string) (float64, error) {
	_, err := f.record(playerID, slotID)
	return f.progress, err
}

func (f *fakeGameService) Plant(_ context.Context, playerID, slotID string) (domain.GameState, error) {
	return f.record(playerID, slotID)
}

func (f *fakeGameService) Feed(_ context.Context, playerID, slotID string) (domain.GameState, error) {
	return f.record(playerID, slotID)
}

func (f *fakeGameService) Harvest(_ context.Context, playerID, slotID string) (domain.GameState, error) {
	return f.record(playerID, slotID)
}

func (f *fakeGameService) Collect(_ context.Context, playerID, slotID string) (domain.GameState, error) {
	return f.record(playerID, slotID)
}

func (f *fakeGameService) Boost(_ context.Context, playerID, slotID string) (domain.GameState, error) {
	return f.record(playerID, slotID)
}

func (f *fakeGameService) Upgrade(_ context.Context, playerID, slotID string) (domain.GameState, error) {
	return f.record(playerID, slotID)
}

func (f *fakeGameService) GemUpgrade(_ context.Context, playerID, slotID string) (domain.GameState, error) {
	return f.record(playerID, slotID)
}

func (f *fakeGameService) UnlockSlot(_ context.Context, playerID, slotID string) (domain.GameState, error) {
	return f.record(playerID, slotID)
}

func (f *fakeGameService) SellProduce(_ context.Context, playerID string) (domain.GameState, error) {
	return f.record(playerID, "")
}

func (f *fakeGameService) BuyFeed(_ context.Context, playerID string) (domain.GameState, error) {
	return f.record(playerID, "")
}

func (f *fakeGameService) ExchangeGemsToCoins(_ context.Context, playerID string) (domain.GameState, error) {
	return f.record(playerID, "")
}

func (f *fakeGameService) ExchangeCoinsToGems(_ context.Context, playerID string) (domain.GameState, error) {
	return f.record(playerID, "")
}

func (f *fakeGameService) Shutdown(_ context.Context) error { return nil }

func postJSON(t *testing.T, h http.HandlerFunc, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestFarmHandler_SlotActions(t *testing.T) {
	handler.InitValidator()

	tests := []struct {
		name    string
		handle  func(*handler.FarmHandler) http.HandlerFunc
		request interface{}
		err     error

		expectedStatus int
		expectedError  string
	}{
		{
			name:           "Plant success",
			handle:         func(h *handler.FarmHandler) http.HandlerFunc { return h.HandlePlant },
			request:        handler.SlotActionRequest{PlayerID: "p1", SlotID: "crop-1"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Plant on busy slot",
			handle:         func(h *handler.FarmHandler) http.HandlerFunc { return h.HandlePlant },
			request:        handler.SlotActionRequest{PlayerID: "p1", SlotID: "crop-1"},
			err:            domain.ErrSlotBusy,
			expectedStatus: http.StatusConflict,
			expectedError:  handler.ErrMsgSlotBusyError,
		},
		{
			name:           "Harvest not ready",
			handle:         func(h *handler.FarmHandler) http.HandlerFunc { return h.HandleHarvest },
			request:        handler.SlotActionRequest{PlayerID: "p1", SlotID: "crop-1"},
			err:            domain.ErrSlotNotReady,
			expectedStatus: http.StatusConflict,
			expectedError:  handler.ErrMsgSlotNotReadyError,
		},
		{
			name:           "Feed without funds",
			handle:         func(h *handler.FarmHandler) http.HandlerFunc { return h.HandleFeed },
			request:        handler.SlotActionRequest{PlayerID: "p1", SlotID: "animal-1"},
			err:            domain.ErrInsufficientFunds,
			expectedStatus: http.StatusBadRequest,
			expectedError:  handler.ErrMsgNotEnoughMoneyError,
		},
		{
			name:           "Unlock gated slot",
			handle:         func(h *handler.FarmHandler) http.HandlerFunc { return h.HandleUnlockSlot },
			request:        handler.SlotActionRequest{PlayerID: "p1", SlotID: "crop-4"},
			err:            domain.ErrUnlockGated,
			expectedStatus: http.StatusForbidden,
			expectedError:  handler.ErrMsgUnlockGatedError,
		},
		{
			name:           "Missing player id",
			handle:         func(h *handler.FarmHandler) http.HandlerFunc { return h.HandlePlant },
			request:        handler.SlotActionRequest{SlotID: "crop-1"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Bad slot id",
			handle:         func(h *handler.FarmHandler) http.HandlerFunc { return h.HandlePlant },
			request:        handler.SlotActionRequest{PlayerID: "p1", SlotID: "barn-7"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeGameService{state: state.NewGameState(), err: tt.err}
			h := handler.NewFarmHandler(svc)

			rec := postJSON(t, tt.handle(h), tt.request)
			assert.Equal(t, tt.expectedStatus, rec.Code)

			if tt.expectedStatus == http.StatusOK {
				var resp handler.StateResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, state.NewGameState(), resp.State)
				assert.Equal(t, 1, svc.calls)
			}
			if tt.expectedError != "" {
				var resp handler.ErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, tt.expectedError, resp.Error)
			}
		})
	}
}

func TestFarmHandler_GetState(t *testing.T) {
	handler.InitValidator()

	t.Run("Success", func(t *testing.T) {
		svc := &fakeGameService{state: state.NewGameState()}
		h := handler.NewFarmHandler(svc)

		req := httptest.NewRequest(http.MethodGet, "/?player_id=p1", nil)
		rec := httptest.NewRecorder()
		h.HandleGetState(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "p1", svc.lastPlayerID)

		var resp handler.StateResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, state.NewGameState(), resp.State)
	})

	t.Run("Missing player id", func(t *testing.T) {
		h := handler.NewFarmHandler(&fakeGameService{})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		h.HandleGetState(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestFarmHandler_BoostCost(t *testing.T) {
	handler.InitValidator()

	svc := &fakeGameService{state: state.NewGameState(), boostCost: 3}
	h := handler.NewFarmHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/?player_id=p1&slot_id=crop-1", nil)
	rec := httptest.NewRecorder()
	h.HandleBoostCost(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp handler.BoostCostResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Gems)
	assert.Equal(t, "crop-1", resp.SlotID)
}

func TestFarmHandler_SlotProgress(t *testing.T) {
	handler.InitValidator()

	t.Run("Success", func(t *testing.T) {
		svc := &fakeGameService{state: state.NewGameState(), progress: 0.25}
		h := handler.NewFarmHandler(svc)

		req := httptest.NewRequest(http.MethodGet, "/?player_id=p1&slot_id=crop-1", nil)
		rec := httptest.NewRecorder()
		h.HandleSlotProgress(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "p1", svc.lastPlayerID)
		assert.Equal(t, "crop-1", svc.lastSlotID)

		var resp handler.SlotProgressResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "crop-1", resp.SlotID)
		assert.Equal(t, 0.25, resp.Progress)
	})

	t.Run("Unknown slot", func(t *testing.T) {
		svc := &fakeGameService{err: domain.ErrSlotNotFound}
		h := handler.NewFarmHandler(svc)

		req := httptest.NewRequest(http.MethodGet, "/?player_id=p1&slot_id=barn-9", nil)
		rec := httptest.NewRecorder()
		h.HandleSlotProgress(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Missing slot id", func(t *testing.T) {
		h := handler.NewFarmHandler(&fakeGameService{})

		req := httptest.NewRequest(http.MethodGet, "/?player_id=p1", nil)
		rec := httptest.NewRecorder()
		h.HandleSlotProgress(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestFarmHandler_EconomyActions(t *testing.T) {
	handler.InitValidator()

	t.Run("Sell produce", func(t *testing.T) {
		s := state.NewGameState()
		s.Resources.Coins = 1234
		svc := &fakeGameService{state: s}
		h := handler.NewFarmHandler(svc)

		rec := postJSON(t, h.HandleSellProduce, handler.PlayerActionRequest{PlayerID: "p1"})
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp handler.StateResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 1234, resp.State.Resources.Coins)
		assert.Contains(t, resp.Message, "1,234 coins")
	})

	t.Run("Sell with empty barn", func(t *testing.T) {
		svc := &fakeGameService{state: state.NewGameState(), err: domain.ErrNothingToSell}
		h := handler.NewFarmHandler(svc)

		rec := postJSON(t, h.HandleSellProduce, handler.PlayerActionRequest{PlayerID: "p1"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var resp handler.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, handler.ErrMsgNothingToSellError, resp.Error)
	})

	t.Run("Invalid JSON body", func(t *testing.T) {
		h := handler.NewFarmHandler(&fakeGameService{state: state.NewGameState()})

		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("{not json")))
		rec := httptest.NewRecorder()
		h.HandleBuyFeed(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
