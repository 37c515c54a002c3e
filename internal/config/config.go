package config

import (
	"os"
)

type Config struct {
	DBUrl     string
	JWTSecret string
	Supabase  string

	// Backend de stockage des médias : "imagekit" (défaut) ou "s3"
	StorageBackend     string
	ImageKitPrivateKey string
	ImageKitUploadURL  string
	ImageKitAPIURL     string

	AWSAccessKeyID     string
	AWSSecretAccessKey string
	AWSRegion          string
	AWSBucket          string
}

func LoadConfig() *Config {
	return &Config{
		DBUrl:     os.Getenv("SUPABASE_DB_URL"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		Supabase:  os.Getenv("NEXT_PUBLIC_SUPABASE_URL"),

		StorageBackend:     os.Getenv("STORAGE_BACKEND"),
		ImageKitPrivateKey: os.Getenv("IMAGEKIT_PRIVATE_KEY"),
		ImageKitUploadURL:  os.Getenv("IMAGEKIT_UPLOAD_URL"),
		ImageKitAPIURL:     os.Getenv("IMAGEKIT_API_URL"),

		AWSAccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		AWSRegion:          os.Getenv("AWS_REGION"),
		AWSBucket:          os.Getenv("AWS_BUCKET_NAME"),
	}
}
