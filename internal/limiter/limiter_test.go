package limiter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid limit only",
			cfg:     Config{Limit: 10},
			wantErr: false,
		},
		{
			name:    "valid offset only",
			cfg:     Config{Offset: 5},
			wantErr: false,
		},
		{
			name:    "valid limit and offset",
			cfg:     Config{Limit: 10, Offset: 5},
			wantErr: false,
		},
		{
			name:    "valid tail only",
			cfg:     Config{Tail: 10},
			wantErr: false,
		},
		{
			name:    "tail ignores offset (valid)",
			cfg:     Config{Tail: 10, Offset: 5},
			wantErr: false,
		},
		{
			name:    "limit and tail mutually exclusive",
			cfg:     Config{Limit: 10, Tail: 5},
			wantErr: true,
			errMsg:  "mutually exclusive",
		},
		{
			name:    "negative limit invalid",
			cfg:     Config{Limit: -1},
			wantErr: true,
			errMsg:  "non-negative",
		},
		{
			name:    "negative offset invalid",
			cfg:     Config{Offset: -1},
			wantErr: true,
			errMsg:  "non-negative",
		},
		{
			name:    "negative tail invalid",
			cfg:     Config{Tail: -1},
			wantErr: true,
			errMsg:  "non-negative",
		},
		{
			name:    "zero values valid",
			cfg:     Config{Limit: 0, Offset: 0, Tail: 0},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestConfigIsActive(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		wantBool bool
	}{
		{
			name:     "no flags set",
			cfg:      Config{},
			wantBool: false,
		},
		{
			name:     "limit set",
			cfg:      Config{Limit: 10},
			wantBool: true,
		},
		{
			name:     "offset set",
			cfg:      Config{Offset: 5},
			wantBool: true,
		},
		{
			name:     "tail set",
			cfg:      Config{Tail: 10},
			wantBool: true,
		},
		{
			name:     "all flags set",
			cfg:      Config{Limit: 10, Offset: 5, Tail: 0}, // tail not really set
			wantBool: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.cfg.IsActive()
			assert.Equal(t, tt.wantBool, got)
		})
	}
}

func TestApply(t *testing.T) {
	arr := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	tests := []struct {
		name string
		cfg  Config
		want []int
	}{
		{name: "inactive returns input", cfg: Config{}, want: arr},
		{name: "limit", cfg: Config{Limit: 3}, want: []int{1, 2, 3}},
		{name: "offset", cfg: Config{Offset: 7}, want: []int{8, 9, 10}},
		{name: "offset and limit", cfg: Config{Offset: 2, Limit: 3}, want: []int{3, 4, 5}},
		{name: "tail", cfg: Config{Tail: 2}, want: []int{9, 10}},
		{name: "tail ignores offset", cfg: Config{Tail: 2, Offset: 5}, want: []int{9, 10}},
		{name: "limit beyond length", cfg: Config{Limit: 50}, want: arr},
		{name: "offset beyond length", cfg: Config{Offset: 50}, want: []int{}},
		{name: "tail beyond length", cfg: Config{Tail: 50}, want: arr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Apply(tt.cfg, arr))
		})
	}
}

func TestApplyEmpty(t *testing.T) {
	assert.Empty(t, Apply(Config{Limit: 2}, []string{}))
	assert.Nil(t, Apply(Config{Limit: 2}, []string(nil)))
}

func TestWindow(t *testing.T) {
	start, end := Config{Offset: 1, Limit: 2}.Window(5)
	assert.Equal(t, 1, start)
	assert.Equal(t, 3, end)

	start, end = Config{Tail: 3}.Window(2)
	assert.Equal(t, 0, start)
	assert.Equal(t, 2, end)
}
