package registry

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	reg := Default()
	require.Len(t, reg.Activities, 3)

	for _, taskType := range []string{"resolve-keyword-page", "search-content", "submit-enquiry"} {
		a, ok := reg.Find(taskType)
		require.True(t, ok, taskType)
		assert.NotEmpty(t, a.ErrorCodes, taskType)
	}

	_, ok := reg.Find("validate-subscription")
	assert.False(t, ok)
}

func TestLoadRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activities.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"version": "1.0.0",
		"activities": [
			{"id": "search-content", "displayName": "Search", "category": "landing", "taskType": "search-content", "timeout": "2s"}
		]
	}`), 0o644))

	reg, err := LoadRegistry(path)
	require.NoError(t, err)

	a, ok := reg.Find("search-content")
	require.True(t, ok)
	assert.Equal(t, 2*time.Second, a.TimeoutDuration(time.Minute))

	_, err = LoadRegistry(filepath.Join(t.TempDir(), "missing.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestValidate(t *testing.T) {
	valid := Activity{ID: "a", DisplayName: "A", Category: "landing", TaskType: "a"}

	tests := []struct {
		name        string
		activities  []Activity
		expectedErr string
	}{
		{name: "empty", expectedErr: "no activities"},
		{
			name:        "duplicate id",
			activities:  []Activity{valid, valid},
			expectedErr: "duplicate activity ID: a",
		},
		{
			name:        "duplicate task type",
			activities:  []Activity{valid, {ID: "b", DisplayName: "B", Category: "landing", TaskType: "a"}},
			expectedErr: "duplicate task type: a",
		},
		{
			name:        "missing task type",
			activities:  []Activity{{ID: "a", DisplayName: "A", Category: "landing"}},
			expectedErr: "missing required field: TaskType",
		},
		{
			name:        "bad timeout",
			activities:  []Activity{{ID: "a", DisplayName: "A", Category: "landing", TaskType: "a", Timeout: "soon"}},
			expectedErr: "invalid timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := (&ActivityRegistry{Activities: tt.activities}).Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedErr)
		})
	}
}

func TestTimeoutDuration_Fallback(t *testing.T) {
	assert.Equal(t, time.Minute, Activity{}.TimeoutDuration(time.Minute))
	assert.Equal(t, time.Minute, Activity{Timeout: "-1s"}.TimeoutDuration(time.Minute))
}
