package main

import (
	"fmt"
	"strings"

	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/cloudwatch"
	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/iam"
	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/lambda"
	"github.com/pulumi/pulumi-command/sdk/go/command/local"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
)

const handlerSource = "./cmd/app"

type LambdaHandler struct {
	function *lambda.Function
	logGroup *cloudwatch.LogGroup
}

type LambdaHandlerArgs struct {
	settings Settings
}

func NewLambdaHandler(ctx *pulumi.Context, args LambdaHandlerArgs) (*LambdaHandler, error) {
	lh := &LambdaHandler{}
	s := args.settings

	assumeRolePolicy, err := iam.GetPolicyDocument(ctx, &iam.GetPolicyDocumentArgs{
		Statements: []iam.GetPolicyDocumentStatement{
			{
				Actions: []string{"sts:AssumeRole"},
				Principals: []iam.GetPolicyDocumentStatementPrincipal{
					{Type: "Service", Identifiers: []string{"lambda.amazonaws.com"}},
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("Error creating AssumeRolePolicy: %w", err)
	}
	executionRole, err := iam.NewRole(ctx, "lambda-execution-role", &iam.RoleArgs{
		AssumeRolePolicy: pulumi.String(assumeRolePolicy.Json),
		ManagedPolicyArns: pulumi.ToStringArray([]string{
			string(iam.ManagedPolicyAWSLambdaBasicExecutionRole),
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("Error creating execution role: %w", err)
	}

	lh.logGroup, err = cloudwatch.NewLogGroup(ctx, "handler-log-group", &cloudwatch.LogGroupArgs{
		Name:            pulumi.String("/aws/lambda/" + s.FunctionName),
		RetentionInDays: pulumi.IntPtr(s.LogRetentionDays),
	})
	if err != nil {
		return nil, fmt.Errorf("Error creating log group: %w", err)
	}

	fnArgs := &lambda.FunctionArgs{
		Name:          pulumi.String(s.FunctionName),
		Architectures: pulumi.ToStringArray([]string{"arm64"}),
		Role:          executionRole.Arn,
		LoggingConfig: &lambda.FunctionLoggingConfigArgs{
			LogFormat:           pulumi.String("JSON"),
			LogGroup:            lh.logGroup.Name,
			ApplicationLogLevel: pulumi.String("INFO"),
			SystemLogLevel:      pulumi.String("WARN"),
		},
	}

	switch s.Packaging {
	case packagingImage:
		ctx.Log.Info("packaging handler as a container image", nil)
		build, err := NewEcrDockerBuild(ctx, EcrDockerBuildArgs{source: handlerSource})
		if err != nil {
			return nil, err
		}
		fnArgs.PackageType = pulumi.String("Image")
		fnArgs.ImageUri = build.image.RepoDigest
	default:
		if err := buildBootstrap(ctx); err != nil {
			return nil, err
		}
		fnArgs.Code = pulumi.NewAssetArchive(map[string]interface{}{"bootstrap": pulumi.NewFileAsset("./asset/bootstrap")})
		fnArgs.Handler = pulumi.String("bootstrap")
		fnArgs.Runtime = pulumi.String("provided.al2023")
	}

	lh.function, err = lambda.NewFunction(ctx, "handler", fnArgs, pulumi.DependsOn([]pulumi.Resource{lh.logGroup}))
	if err != nil {
		return nil, fmt.Errorf("Error creating lambda function: %w", err)
	}

	return lh, nil
}

// buildBootstrap compiles the handler into ./asset/bootstrap for the
// provided.al2023 runtime.
func buildBootstrap(ctx *pulumi.Context) error {
	_, err := local.Run(ctx, &local.RunArgs{
		Dir: pulumi.StringRef("."),
		Command: strings.Join([]string{
			"rm -rf asset && mkdir asset",
			"GOOS=linux GOARCH=arm64 CGO_ENABLED=0 go build -mod=readonly -tags lambda.norpc -o ./asset/bootstrap " + handlerSource,
			"chmod +x ./asset/bootstrap",
		}, " && "),
		AssetPaths: []string{"asset/bootstrap"},
	})
	if err != nil {
		return fmt.Errorf("Error running local command: %w", err)
	}
	return nil
}
