package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvString(t *testing.T) {
	t.Setenv("NN_STRING", "")
	assert.Equal(t, "def", GetEnvString("NN_STRING", "def"))

	t.Setenv("NN_STRING", "value")
	assert.Equal(t, "value", GetEnvString("NN_STRING", "def"))
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{name: "unset", value: "", want: 10},
		{name: "valid", value: "25", want: 25},
		{name: "padded", value: " 7 ", want: 7},
		{name: "garbage", value: "12abc", want: 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NN_INT", tt.value)
			assert.Equal(t, tt.want, GetEnvInt("NN_INT", 10))
		})
	}
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("NN_BOOL", "true")
	assert.True(t, GetEnvBool("NN_BOOL", false))

	t.Setenv("NN_BOOL", "nope")
	assert.False(t, GetEnvBool("NN_BOOL", false))
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("NN_DUR", "90s")
	assert.Equal(t, 90*time.Second, GetEnvDuration("NN_DUR", time.Minute))

	t.Setenv("NN_DUR", "soon")
	assert.Equal(t, time.Minute, GetEnvDuration("NN_DUR", time.Minute))
}

func TestGetEnvStringList(t *testing.T) {
	t.Setenv("NN_LIST", "редиска, негодяй,, ")
	assert.Equal(t, []string{"редиска", "негодяй"}, GetEnvStringList("NN_LIST", nil))

	t.Setenv("NN_LIST", " , ")
	assert.Equal(t, []string{"x"}, GetEnvStringList("NN_LIST", []string{"x"}))
}
