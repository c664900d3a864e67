package handler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mlarsden/PocketFarm_Go/internal/handler"
)

func TestValidator_SlotID(t *testing.T) {
	handler.InitValidator()
	v := handler.GetValidator()

	type req struct {
		SlotID string `validate:"required,slotid"`
	}

	tests := []struct {
		name    string
		slotID  string
		wantErr bool
	}{
		{name: "Crop slot", slotID: "crop-1", wantErr: false},
		{name: "Animal slot", slotID: "animal-6", wantErr: false},
		{name: "Multi digit", slotID: "crop-12", wantErr: false},
		{name: "Wrong prefix", slotID: "barn-1", wantErr: true},
		{name: "No index", slotID: "crop-", wantErr: true},
		{name: "Non numeric index", slotID: "crop-x", wantErr: true},
		{name: "Empty", slotID: "", wantErr: true},
		{name: "Injection attempt", slotID: "crop-1; DROP TABLE", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateStruct(req{SlotID: tt.slotID})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFormatValidationError(t *testing.T) {
	handler.InitValidator()
	v := handler.GetValidator()

	type req struct {
		PlayerID string `validate:"required,max=100"`
		SlotID   string `validate:"required,slotid"`
	}

	err := v.ValidateStruct(req{})
	fields := handler.FormatValidationError(err)

	assert.Equal(t, "This field is required", fields["playerid"])
	assert.Equal(t, "This field is required", fields["slotid"])
}
