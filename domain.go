package main

import (
	"fmt"

	apigwv2 "github.com/pulumi/pulumi-aws/sdk/v6/go/aws/apigatewayv2"
	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/route53"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
)

type CustomDomainArgs struct {
	api            *Api
	domainName     string
	hostedZone     string
	certificateArn string
}

type CustomDomain struct {
	domain  *apigwv2.DomainName
	mapping *apigwv2.ApiMapping
	record  *route53.Record
}

// NewCustomDomain serves the API under domainName using an existing ACM
// certificate and points an alias record in hostedZone at it.
func NewCustomDomain(ctx *pulumi.Context, args CustomDomainArgs) (*CustomDomain, error) {
	cd := &CustomDomain{}
	var err error

	cd.domain, err = apigwv2.NewDomainName(ctx, "domain-name", &apigwv2.DomainNameArgs{
		DomainName: pulumi.String(args.domainName),
		DomainNameConfiguration: &apigwv2.DomainNameDomainNameConfigurationArgs{
			CertificateArn: pulumi.String(args.certificateArn),
			EndpointType:   pulumi.String("REGIONAL"),
			SecurityPolicy: pulumi.String("TLS_1_2"),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("Error creating domain name: %w", err)
	}

	cd.mapping, err = apigwv2.NewApiMapping(ctx, "api-mapping", &apigwv2.ApiMappingArgs{
		ApiId:      args.api.api.ID(),
		DomainName: cd.domain.ID(),
		Stage:      args.api.defaultStage.ID(),
	})
	if err != nil {
		return nil, fmt.Errorf("Error creating api mapping: %w", err)
	}

	zone, err := route53.LookupZone(ctx, &route53.LookupZoneArgs{
		Name: pulumi.StringRef(args.hostedZone),
	})
	if err != nil {
		return nil, fmt.Errorf("Error looking up hosted zone %s: %w", args.hostedZone, err)
	}

	target := cd.domain.DomainNameConfiguration
	cd.record, err = route53.NewRecord(ctx, "alias-record", &route53.RecordArgs{
		ZoneId: pulumi.String(zone.ZoneId),
		Name:   pulumi.String(args.domainName),
		Type:   pulumi.String("A"),
		Aliases: route53.RecordAliasArray{
			route53.RecordAliasArgs{
				Name:                 target.TargetDomainName().Elem(),
				ZoneId:               target.HostedZoneId().Elem(),
				EvaluateTargetHealth: pulumi.Bool(false),
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("Error creating alias record: %w", err)
	}

	ctx.Export("customDomainUrl", pulumi.String("https://"+args.domainName))

	return cd, nil
}
