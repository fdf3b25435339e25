package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Port         string `mapstructure:"PORT"`
	AppEnv       string `mapstructure:"APP_ENV"`
	AWSRegion    string `mapstructure:"AWS_REGION"`
	S3BucketName string `mapstructure:"S3_BUCKET_NAME"`
	JWTSecret    string `mapstructure:"JWT_SECRET"`
	AdminEmail   string `mapstructure:"ADMIN_EMAIL"`
}

var AppConfig *Config

// LoadConfig reads .env (if present) and the environment into AppConfig.
func LoadConfig() {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("APP_ENV", "development")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Unable to decode config: %v", err)
	}
}
