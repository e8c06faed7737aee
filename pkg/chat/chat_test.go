package chat

import (
	"testing"

	"github.com/google/uuid"
)

func TestChatRequestValidate(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name    string
		req     ChatRequest
		wantErr bool
	}{
		{"plain message", ChatRequest{SessionID: id, Message: "I open the door."}, false},
		{"empty message", ChatRequest{SessionID: id}, true},
		{"look around needs no message", ChatRequest{SessionID: id, LookAround: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
