package services

import (
	"os"
	"testing"

	"amora_server/config"
	"amora_server/logger"
)

func TestMain(m *testing.M) {
	logger.Init("test")
	config.AppConfig = &config.Config{JWTSecret: "test-secret"}
	os.Exit(m.Run())
}
