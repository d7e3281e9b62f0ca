package main

import (
	"testing"

	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTestSettings(t *testing.T, config string) (Settings, error) {
	t.Helper()
	t.Setenv("PULUMI_CONFIG", config)

	var (
		settings Settings
		loadErr  error
	)
	err := pulumi.RunErr(func(ctx *pulumi.Context) error {
		settings, loadErr = loadSettings(ctx)
		return nil
	}, pulumi.WithMocks(testProject, testStack, &mocks{}))
	require.NoError(t, err)
	return settings, loadErr
}

func TestLoadSettingsDefaults(t *testing.T) {
	t.Setenv("CERTIFICATE_ARN", "")

	s, err := loadTestSettings(t, `{}`)
	require.NoError(t, err)
	assert.Equal(t, defaultSettings(), s)
}

func TestLoadSettingsOverrides(t *testing.T) {
	t.Setenv("CERTIFICATE_ARN", "")

	s, err := loadTestSettings(t, `{
		"home-api:functionName": "Home",
		"home-api:packaging": "image",
		"home-api:logRetentionDays": "14",
		"home-api:domainName": "example.cristallum.io",
		"home-api:hostedZone": "cristallum.io",
		"home-api:certificateArn": "arn:aws:acm:us-east-1:123456789012:certificate/abc"
	}`)
	require.NoError(t, err)
	assert.Equal(t, Settings{
		FunctionName:     "Home",
		Packaging:        packagingImage,
		LogRetentionDays: 14,
		DomainName:       "example.cristallum.io",
		HostedZone:       "cristallum.io",
		CertificateArn:   "arn:aws:acm:us-east-1:123456789012:certificate/abc",
	}, s)
}

func TestLoadSettingsCertificateFromEnv(t *testing.T) {
	t.Setenv("CERTIFICATE_ARN", "arn:aws:acm:us-east-1:123456789012:certificate/env")

	s, err := loadTestSettings(t, `{
		"home-api:domainName": "example.cristallum.io",
		"home-api:hostedZone": "cristallum.io"
	}`)
	require.NoError(t, err)
	assert.Equal(t, "arn:aws:acm:us-east-1:123456789012:certificate/env", s.CertificateArn)
}

func TestSettingsValidate(t *testing.T) {
	withDomain := func(mod func(*Settings)) Settings {
		s := defaultSettings()
		s.DomainName = "example.cristallum.io"
		s.HostedZone = "cristallum.io"
		s.CertificateArn = "arn:aws:acm:us-east-1:123456789012:certificate/abc"
		mod(&s)
		return s
	}

	tests := []struct {
		name     string
		settings Settings
		wantErr  string
	}{
		{name: "defaults", settings: defaultSettings()},
		{name: "domain", settings: withDomain(func(*Settings) {})},
		{
			name:     "unknown packaging",
			settings: withDomain(func(s *Settings) { s.Packaging = "tarball" }),
			wantErr:  `unknown packaging "tarball"`,
		},
		{
			name:     "missing certificate",
			settings: withDomain(func(s *Settings) { s.CertificateArn = "" }),
			wantErr:  "certificate ARN is required",
		},
		{
			name:     "missing hosted zone",
			settings: withDomain(func(s *Settings) { s.HostedZone = "" }),
			wantErr:  "hosted zone is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
