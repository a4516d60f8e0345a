package config

import "testing"

func TestLoadReadsInfraSettings(t *testing.T) {
	t.Setenv("REDIS_ADDR", "redis:6380")
	t.Setenv("REDIS_PASSWORD", "s3cret")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")
	t.Setenv("KAFKA_TOPIC", "transcare.test")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_USERNAME", "mailer")
	t.Setenv("SUPPORT_EMAIL", "suporte@transcare.com")

	cfg := Load()

	if cfg.RedisAddr != "redis:6380" || cfg.RedisPassword != "s3cret" || cfg.RedisDB != 2 {
		t.Fatalf("redis settings not loaded: %+v", cfg)
	}
	if cfg.KafkaBrokers != "kafka-1:9092,kafka-2:9092" || cfg.KafkaTopic != "transcare.test" {
		t.Fatalf("kafka settings not loaded: %+v", cfg)
	}
	if cfg.SMTPHost != "smtp.example.com" || cfg.SMTPUsername != "mailer" || cfg.SupportEmail != "suporte@transcare.com" {
		t.Fatalf("smtp settings not loaded: %+v", cfg)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("SMTP_PORT", "")
	t.Setenv("KAFKA_TOPIC", "")
	t.Setenv("FRONTEND_URL", "")

	cfg := Load()

	if cfg.Port != "8080" {
		t.Fatalf("port default = %q", cfg.Port)
	}
	if cfg.SMTPPort != "587" {
		t.Fatalf("smtp port default = %q", cfg.SMTPPort)
	}
	if cfg.KafkaTopic != "transcare.events" {
		t.Fatalf("kafka topic default = %q", cfg.KafkaTopic)
	}
	if cfg.FrontendURL != "http://localhost:5173" {
		t.Fatalf("frontend url default = %q", cfg.FrontendURL)
	}
}
