package main

import (
	"fmt"

	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
)

func main() {
	pulumi.Run(func(ctx *pulumi.Context) error {
		settings, err := loadSettings(ctx)
		if err != nil {
			return err
		}
		return deploy(ctx, settings)
	})
}

func deploy(ctx *pulumi.Context, settings Settings) error {
	api, err := NewApi(ctx)
	if err != nil {
		return err
	}

	handler, err := NewLambdaHandler(ctx, LambdaHandlerArgs{
		settings: settings,
	})
	if err != nil {
		return err
	}

	if err := api.registerLambda(ctx, handler.function); err != nil {
		return err
	}

	if settings.DomainName == "" {
		return nil
	}
	ctx.Log.Info(fmt.Sprintf("serving api on custom domain %s", settings.DomainName), nil)
	_, err = NewCustomDomain(ctx, CustomDomainArgs{
		api:            api,
		domainName:     settings.DomainName,
		hostedZone:     settings.HostedZone,
		certificateArn: settings.CertificateArn,
	})
	return err
}
