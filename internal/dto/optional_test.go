package dto

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdatePlaylistRequest_Decode(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name       string
		body       string
		wantName   Optional[string]
		wantDesc   Optional[string]
		wantTracks Optional[[]uuid.UUID]
	}{
		{
			name: "empty body leaves everything absent",
			body: `{}`,
		},
		{
			name:     "explicit null description",
			body:     `{"name":"Chill","description":null}`,
			wantName: Some("Chill"),
			wantDesc: Null[string](),
		},
		{
			name:       "track ids value",
			body:       `{"track_ids":["` + id.String() + `"]}`,
			wantTracks: Some([]uuid.UUID{id}),
		},
		{
			name:       "null track ids",
			body:       `{"track_ids":null}`,
			wantTracks: Null[[]uuid.UUID](),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req UpdatePlaylistRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			assert.Equal(t, tt.wantName, req.Name)
			assert.Equal(t, tt.wantDesc, req.Description)
			assert.Equal(t, tt.wantTracks, req.TrackIDs)
		})
	}
}

func TestOptional_RejectsWrongType(t *testing.T) {
	var req UpdatePlaylistRequest
	assert.Error(t, json.Unmarshal([]byte(`{"name":42}`), &req))
	assert.Error(t, json.Unmarshal([]byte(`{"track_ids":["nope"]}`), &req))
}
