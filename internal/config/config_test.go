package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("TELEGRAM_BOT_TOKEN", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "puzzleU46.xlsx", cfg.Bank.Path)
	assert.Equal(t, 10, cfg.Quiz.QuestionsPerRound)
	assert.Equal(t, 3, cfg.Quiz.MaxRounds)
	assert.Equal(t, "sqlite3", cfg.Database.Driver)
	assert.Equal(t, 24*time.Hour, cfg.Sessions.TTL)
	assert.Equal(t, time.Hour, cfg.Sessions.PurgeInterval)

	_, err = cfg.RequireToken()
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("APP_ENV", "production")
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("BANK_PATH", "terms.csv")
	t.Setenv("QUIZ_QUESTIONS_PER_ROUND", "5")
	t.Setenv("MAX_ROUNDS", "4")
	t.Setenv("DATABASE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://quiz@localhost/quiz")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "terms.csv", cfg.Bank.Path)
	assert.Equal(t, 5, cfg.Quiz.QuestionsPerRound)
	assert.Equal(t, 4, cfg.Quiz.MaxRounds)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "postgres://quiz@localhost/quiz", cfg.Database.DSN)

	token, err := cfg.RequireToken()
	require.NoError(t, err)
	assert.Equal(t, "123:abc", token)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"zero questions", "QUIZ_QUESTIONS_PER_ROUND", "0"},
		{"negative rounds", "QUIZ_MAX_ROUNDS", "-1"},
		{"unknown driver", "DATABASE_DRIVER", "oracle"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdir(t, t.TempDir())
			t.Setenv(tt.key, tt.val)

			_, err := Load()
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}
