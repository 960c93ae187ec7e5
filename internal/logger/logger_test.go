package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestInitLevels(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, Init("debug").GetLevel())
	assert.Equal(t, logrus.InfoLevel, Init("INFO").GetLevel())
	assert.Equal(t, logrus.WarnLevel, Init("chatty").GetLevel())
	assert.Same(t, Logger, Init("error"))
}
