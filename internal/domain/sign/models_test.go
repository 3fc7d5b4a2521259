package sign

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseItems_PreservesOrder(t *testing.T) {
	body := []byte(`{"items":[
		{"category":"NOPARKING","direction":"LEFT","isnow":true,"friendlydesc":"No Parking"},
		{"category":"PARKING","direction":"LEFT","isnow":true,"hours":2,"metered":true,"friendlydesc":"2P"}
	]}`)

	items, err := ParseItems(body)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, CategoryNoParking, items[0].Category)
	assert.Equal(t, CategoryParking, items[1].Category)
	assert.Equal(t, Hours("2"), items[1].Hours)
	assert.True(t, items[1].Metered)
}

func TestParseItems_MissingItemsMeansNoSigns(t *testing.T) {
	for _, body := range []string{`{}`, `{"items":null}`, `{"other":1}`} {
		items, err := ParseItems([]byte(body))
		require.NoError(t, err, body)
		assert.Empty(t, items, body)
		assert.NotNil(t, items, body)
	}
}

func TestParseItems_MalformedBody(t *testing.T) {
	_, err := ParseItems([]byte(`not json`))
	assert.Error(t, err)
}

func TestHours_UnmarshalNumberAndString(t *testing.T) {
	tests := []struct {
		raw  string
		want Hours
	}{
		{`{"hours":2}`, "2"},
		{`{"hours":1.5}`, "1.5"},
		{`{"hours":"2"}`, "2"},
		{`{"hours":""}`, ""},
		{`{"hours":null}`, ""},
	}
	for _, tt := range tests {
		var item SignItem
		require.NoError(t, json.Unmarshal([]byte(tt.raw), &item), tt.raw)
		assert.Equal(t, tt.want, item.Hours, tt.raw)
	}
}

func TestHours_RejectsObjects(t *testing.T) {
	var item SignItem
	err := json.Unmarshal([]byte(`{"hours":{}}`), &item)
	assert.Error(t, err)
}
