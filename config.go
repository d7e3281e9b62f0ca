package main

import (
	"fmt"
	"os"

	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi/config"
)

const (
	packagingZip   = "zip"
	packagingImage = "image"
)

// Settings holds the stack configuration. Only the deployment reads it; the
// function itself has no configuration surface.
type Settings struct {
	FunctionName     string
	Packaging        string
	LogRetentionDays int
	DomainName       string
	HostedZone       string
	CertificateArn   string
}

func defaultSettings() Settings {
	return Settings{
		FunctionName:     "HomeLambdaFunction",
		Packaging:        packagingZip,
		LogRetentionDays: 7,
	}
}

func loadSettings(ctx *pulumi.Context) (Settings, error) {
	cfg := config.New(ctx, "")
	s := defaultSettings()

	if v := cfg.Get("functionName"); v != "" {
		s.FunctionName = v
	}
	if v := cfg.Get("packaging"); v != "" {
		s.Packaging = v
	}
	if v := cfg.GetInt("logRetentionDays"); v > 0 {
		s.LogRetentionDays = v
	}
	s.DomainName = cfg.Get("domainName")
	s.HostedZone = cfg.Get("hostedZone")
	s.CertificateArn = cfg.Get("certificateArn")
	if s.CertificateArn == "" {
		s.CertificateArn = os.Getenv("CERTIFICATE_ARN")
	}

	if err := s.validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func (s Settings) validate() error {
	switch s.Packaging {
	case packagingZip, packagingImage:
	default:
		return fmt.Errorf("unknown packaging %q, want %q or %q", s.Packaging, packagingZip, packagingImage)
	}
	if s.DomainName == "" {
		return nil
	}
	if s.CertificateArn == "" {
		return fmt.Errorf("certificate ARN is required for domain %s", s.DomainName)
	}
	if s.HostedZone == "" {
		return fmt.Errorf("hosted zone is required for domain %s", s.DomainName)
	}
	return nil
}
