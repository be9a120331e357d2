package player

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPlayers(t *testing.T) {
	human := NewHuman("You", nil)
	bot := NewBot("Bot", nil)

	assert.False(t, human.IsBot)
	assert.True(t, bot.IsBot)
	assert.NotEmpty(t, human.ID)
	assert.NotEqual(t, human.ID, bot.ID)
	assert.Equal(t, "Bot", bot.String())
}
